// Folio: A streamlined CLI tool for searching and downloading web novels.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
)

// HTTPOptions configures an HTTPService
type HTTPOptions struct {
	Timeout        time.Duration
	ConnectTimeout time.Duration
	UserAgent      string
	Headers        map[string]string
	Retries        int
}

// HTTPService issues GET requests with a fixed header set and bounded retries
type HTTPService struct {
	Client         *http.Client
	DefaultHeaders http.Header
	DefaultRetries int
	Logger         logger.Logger
}

// NewHTTPService creates an HTTPService from options
func NewHTTPService(opts HTTPOptions, log logger.Logger) *HTTPService {
	if log == nil {
		log = logger.Nop()
	}

	dialer := &net.Dialer{Timeout: opts.ConnectTimeout, KeepAlive: 30 * time.Second}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = opts.ConnectTimeout

	headers := make(http.Header, len(opts.Headers)+1)
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}
	if opts.UserAgent != "" {
		headers.Set("User-Agent", opts.UserAgent)
	}

	return &HTTPService{
		Client:         &http.Client{Timeout: opts.Timeout, Transport: transport},
		DefaultHeaders: headers,
		DefaultRetries: opts.Retries,
		Logger:         log,
	}
}

// BuildURL joins a base address, a path and query parameters.
func BuildURL(base, path string, params url.Values) string {
	u := base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// FetchWithRetries performs a GET request, retrying transport failures and
// 5xx responses with exponential backoff. 4xx responses map to sentinel
// errors and are not retried.
func (h *HTTPService) FetchWithRetries(ctx context.Context, rawURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= h.DefaultRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			h.Logger.Debug("[HTTP] Retrying %s in %v...", rawURL, backoff)

			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, errors.Track(ctx.Err()).WithContext("url", rawURL).AsNetwork().Error()
			case <-timer.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, errors.Track(err).WithContext("url", rawURL).AsNetwork().Error()
		}
		for k, v := range h.DefaultHeaders {
			req.Header[k] = v
		}

		h.Logger.Debug("[HTTP] GET %s (attempt %d/%d)", rawURL, attempt+1, h.DefaultRetries+1)
		resp, err := h.Client.Do(req)
		if err != nil {
			lastErr = err
			h.Logger.Debug("[HTTP] Request failed: %v", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		switch {
		case resp.StatusCode >= 500:
			drain(resp)
			lastErr = fmt.Errorf("%w: status %d", errors.ErrServerError, resp.StatusCode)
			h.Logger.Debug("[HTTP] Server error %d from %s", resp.StatusCode, rawURL)
			continue
		case resp.StatusCode >= 400:
			drain(resp)
			return nil, errors.Track(statusError(resp.StatusCode)).
				WithHTTPContext(http.MethodGet, rawURL, resp.StatusCode).
				AsNetwork().
				Error()
		}

		return resp, nil
	}

	return nil, errors.Track(lastErr).WithContext("url", rawURL).AsNetwork().Error()
}

// FetchJSON fetches rawURL and decodes the body into result
func (h *HTTPService) FetchJSON(ctx context.Context, rawURL string, result interface{}) error {
	resp, err := h.FetchWithRetries(ctx, rawURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			h.Logger.Warn("failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Track(err).WithContext("url", rawURL).AsNetwork().Error()
	}

	sample := len(body)
	if sample > 1000 {
		sample = 1000
	}
	h.Logger.Debug("[HTTP] Response body sample (%d bytes): %s", len(body), string(body[:sample]))

	if err := json.Unmarshal(body, result); err != nil {
		return errors.Track(err).WithContext("url", rawURL).AsParser().Error()
	}
	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	default:
		return errors.ErrBadRequest
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
