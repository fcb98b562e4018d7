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

package rpc

import (
	"fmt"
	"strings"
	"time"

	"Folio/pkg/errors"
)

// Error represents RPC-level errors with the tracked call chain attached
type Error struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`

	FunctionChain string               `json:"function_chain,omitempty"`
	ErrorCategory errors.ErrorCategory `json:"error_category,omitempty"`
	RootCause     string               `json:"root_cause,omitempty"`
	Timestamp     time.Time            `json:"timestamp"`

	Service string `json:"service,omitempty"`
	Method  string `json:"method,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("RPC Error %d: %s", e.Code, e.Message)
}

// RPC error codes grouped by category
const (
	// Input/Validation errors (1000-1099)
	ErrCodeInvalidInput     = -1001
	ErrCodeValidationFailed = -1003

	// Resource errors (1100-1199)
	ErrCodeResourceNotFound = -1102
	ErrCodeProviderError    = -1103

	// Operation errors (1200-1299)
	ErrCodeSearchFailed    = -1201
	ErrCodeFetchFailed     = -1202
	ErrCodeDirectoryFailed = -1204

	// Network errors (2000-2099)
	ErrCodeNetworkUnavailable = -2001
	ErrCodeNetworkTimeout     = -2002
	ErrCodeConnectionFailed   = -2003
	ErrCodeDNSFailure         = -2004
	ErrCodeNoEndpoint         = -2006

	// Timeout errors (2100-2199)
	ErrCodeTimeout         = -2101
	ErrCodeContextCanceled = -2103

	ErrCodeRateLimited = -2202

	// Parsing/Data errors (3000-3099)
	ErrCodeParsingFailed = -3001
	ErrCodeJSONError     = -3004

	// File system errors (3100-3199)
	ErrCodeFileSystemError  = -3103
	ErrCodePermissionDenied = -3102

	// Download errors (3200-3299)
	ErrCodeDownloadFailed = -3204

	ErrCodeInternalError = -9002
	ErrCodeUnknownError  = -9099
)

// NewError creates an RPC error from err
func NewError(err error, service, method string, requestData map[string]interface{}) *Error {
	rpcError := &Error{
		Data:      make(map[string]interface{}),
		Timestamp: time.Now(),
		Service:   service,
		Method:    method,
	}
	for k, v := range requestData {
		rpcError.Data[k] = v
	}

	var tracked *errors.TrackedError
	if errors.As(err, &tracked) {
		rpcError.Message = tracked.Error()
		rpcError.FunctionChain = tracked.GetFunctionChain()
		rpcError.ErrorCategory = tracked.Category
		if tracked.RootCause != nil {
			rpcError.RootCause = tracked.RootCause.Error()
		}
		for k, v := range tracked.GetContext() {
			rpcError.Data[k] = v
		}
		rpcError.Code = determineErrorCode(tracked)
		return rpcError
	}

	rpcError.Message = err.Error()
	rpcError.RootCause = err.Error()
	rpcError.ErrorCategory = errors.CategoryUnknown
	rpcError.Code = ErrCodeUnknownError
	return rpcError
}

func determineErrorCode(tracked *errors.TrackedError) int {
	errStr := strings.ToLower(tracked.Error())

	switch tracked.Category {
	case errors.CategoryNetwork:
		switch {
		case errors.Is(tracked, errors.ErrNoEndpointAvailable):
			return ErrCodeNoEndpoint
		case strings.Contains(errStr, "no such host"):
			return ErrCodeDNSFailure
		case strings.Contains(errStr, "connection refused"):
			return ErrCodeConnectionFailed
		case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline"):
			return ErrCodeNetworkTimeout
		}
		return ErrCodeNetworkUnavailable

	case errors.CategoryTimeout:
		if strings.Contains(errStr, "cancel") {
			return ErrCodeContextCanceled
		}
		return ErrCodeTimeout

	case errors.CategoryParsing:
		if strings.Contains(errStr, "json") {
			return ErrCodeJSONError
		}
		return ErrCodeParsingFailed

	case errors.CategoryValidation:
		return ErrCodeValidationFailed

	case errors.CategoryRateLimit:
		return ErrCodeRateLimited

	case errors.CategoryNotFound:
		return ErrCodeResourceNotFound

	case errors.CategoryFileSystem:
		if strings.Contains(errStr, "permission") {
			return ErrCodePermissionDenied
		}
		return ErrCodeFileSystemError

	case errors.CategoryDownload:
		return ErrCodeDownloadFailed

	case errors.CategoryProvider:
		return ErrCodeProviderError
	}

	if errors.Is(tracked, errors.ErrDirectoryUnavailable) {
		return ErrCodeDirectoryFailed
	}
	if n := len(tracked.CallChain); n > 0 {
		switch tracked.CallChain[n-1].Operation {
		case "search":
			return ErrCodeSearchFailed
		case "download":
			return ErrCodeDownloadFailed
		case "directory":
			return ErrCodeDirectoryFailed
		case "get":
			return ErrCodeFetchFailed
		}
	}
	return ErrCodeInternalError
}

// InvalidInput reports a missing or malformed request field
func InvalidInput(service, method, field, value string) *Error {
	return &Error{
		Code:          ErrCodeInvalidInput,
		Message:       fmt.Sprintf("invalid %s: %q", field, value),
		Data:          map[string]interface{}{"field": field, "value": value},
		ErrorCategory: errors.CategoryValidation,
		Timestamp:     time.Now(),
		Service:       service,
		Method:        method,
	}
}
