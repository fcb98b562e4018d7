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
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(retries int) *HTTPService {
	return NewHTTPService(HTTPOptions{
		Timeout:        5 * time.Second,
		ConnectTimeout: time.Second,
		UserAgent:      "folio-test",
		Headers:        map[string]string{"Referer": "https://example.com/", "X-Requested-With": "XMLHttpRequest"},
		Retries:        retries,
	}, logger.Nop())
}

func TestFetchJSONSendsDefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"code":200}`))
	}))
	defer srv.Close()

	var out struct {
		Code int `json:"code"`
	}
	require.NoError(t, newTestService(0).FetchJSON(context.Background(), srv.URL, &out))

	assert.Equal(t, 200, out.Code)
	assert.Equal(t, "folio-test", got.Get("User-Agent"))
	assert.Equal(t, "https://example.com/", got.Get("Referer"))
	assert.Equal(t, "XMLHttpRequest", got.Get("X-Requested-With"))
}

func TestFetchWithRetriesClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestService(2).FetchWithRetries(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchWithRetriesServerErrorRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := newTestService(1).FetchWithRetries(context.Background(), srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchJSONInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	var out map[string]interface{}
	err := newTestService(0).FetchJSON(context.Background(), srv.URL, &out)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryParsing, errors.GetCategory(err))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "http://a/api/detail", BuildURL("http://a", "/api/detail", nil))
	assert.Equal(t, "http://a/api/detail?book_id=7",
		BuildURL("http://a", "/api/detail", url.Values{"book_id": {"7"}}))
}
