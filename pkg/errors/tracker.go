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

package errors

import (
	"runtime"
	"strings"
	"time"
)

// TrackedError wraps errors with automatic function call chain tracking
type TrackedError struct {
	Original    error                  `json:"original_error"`
	RootCause   error                  `json:"root_cause"`
	CallChain   []FunctionCall         `json:"call_chain"`
	Context     map[string]interface{} `json:"context,omitempty"`
	UserMessage string                 `json:"user_message,omitempty"`
	Category    ErrorCategory          `json:"category"`
}

// FunctionCall represents a single function in the call chain
type FunctionCall struct {
	Function  string    `json:"function"`
	ShortName string    `json:"short_name"`
	Package   string    `json:"package"`
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Timestamp time.Time `json:"timestamp"`
	Operation string    `json:"operation,omitempty"`
}

// ErrorCategory helps classify different types of errors
type ErrorCategory string

const (
	CategoryNetwork    ErrorCategory = "network"
	CategoryProvider   ErrorCategory = "provider"
	CategoryParsing    ErrorCategory = "parsing"
	CategoryValidation ErrorCategory = "validation"
	CategoryTimeout    ErrorCategory = "timeout"
	CategoryRateLimit  ErrorCategory = "rate_limit"
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryDownload   ErrorCategory = "download"
	CategoryUnknown    ErrorCategory = "unknown"
)

func (e *TrackedError) Error() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	if e.Original != nil {
		return e.Original.Error()
	}
	return "unknown error"
}

func (e *TrackedError) Unwrap() error {
	return e.Original
}

func (e *TrackedError) Is(target error) bool {
	return (e.Original != nil && Is(e.Original, target)) ||
		(e.RootCause != nil && Is(e.RootCause, target))
}

// GetFunctionChain returns the function call path as a string
func (e *TrackedError) GetFunctionChain() string {
	if len(e.CallChain) == 0 {
		return ""
	}

	functions := make([]string, len(e.CallChain))
	for i, call := range e.CallChain {
		functions[i] = call.ShortName
	}

	return strings.Join(functions, " -> ")
}

// GetContext returns the context data associated with the error
func (e *TrackedError) GetContext() map[string]interface{} {
	if e.Context == nil {
		return make(map[string]interface{})
	}
	return e.Context
}

// GetCategory returns the category of err, or CategoryUnknown for untracked errors.
func GetCategory(err error) ErrorCategory {
	var tracked *TrackedError
	if As(err, &tracked) {
		return tracked.Category
	}
	return CategoryUnknown
}

// trackError creates a TrackedError whose first call is the nearest caller
// outside this package.
func trackError(err error) *TrackedError {
	tracked := &TrackedError{
		Original:  err,
		RootCause: findRootCause(err),
		Context:   make(map[string]interface{}),
		Category:  classifyError(err),
	}
	if call, ok := callerFrame(); ok {
		tracked.CallChain = []FunctionCall{call}
	}
	return tracked
}

// appendCaller records the current caller on an already tracked error.
func (e *TrackedError) appendCaller() {
	call, ok := callerFrame()
	if !ok {
		return
	}
	if n := len(e.CallChain); n > 0 && e.CallChain[n-1].Function == call.Function && e.CallChain[n-1].Line == call.Line {
		return
	}
	e.CallChain = append(e.CallChain, call)
}

func callerFrame() (FunctionCall, bool) {
	for i := 1; i < 12; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "pkg/errors/") && !strings.HasSuffix(file, "_test.go") {
			continue
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			return FunctionCall{}, false
		}

		full := fn.Name()
		short := extractShortFunctionName(full)
		return FunctionCall{
			Function:  full,
			ShortName: short,
			Package:   extractPackageName(full),
			File:      extractFileName(file),
			Line:      line,
			Timestamp: time.Now(),
			Operation: detectOperation(short),
		}, true
	}
	return FunctionCall{}, false
}

func extractShortFunctionName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx != -1 {
		fullName = fullName[idx+1:]
	}
	// "pkg.(*Type).Method" -> "Type.Method"
	if idx := strings.Index(fullName, "."); idx != -1 {
		fullName = fullName[idx+1:]
	}
	fullName = strings.NewReplacer("(*", "", ")", "").Replace(fullName)
	return fullName
}

func extractPackageName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx != -1 {
		fullName = fullName[idx+1:]
	}
	if idx := strings.Index(fullName, "."); idx != -1 {
		return fullName[:idx]
	}
	return "unknown"
}

func extractFileName(fullPath string) string {
	if idx := strings.LastIndex(fullPath, "/"); idx != -1 {
		return fullPath[idx+1:]
	}
	return fullPath
}

func detectOperation(functionName string) string {
	lower := strings.ToLower(functionName)

	switch {
	case strings.Contains(lower, "search"):
		return "search"
	case strings.Contains(lower, "download"):
		return "download"
	case strings.Contains(lower, "resolve"), strings.Contains(lower, "directory"):
		return "directory"
	case strings.Contains(lower, "acquire"), strings.Contains(lower, "content"):
		return "content"
	case strings.Contains(lower, "build"), strings.Contains(lower, "write"):
		return "build"
	case strings.Contains(lower, "get"), strings.Contains(lower, "fetch"):
		return "get"
	default:
		return ""
	}
}

func classifyError(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryUnknown
	case Is(err, ErrNoEndpointAvailable), Is(err, ErrNetworkIssue), Is(err, ErrServerError):
		return CategoryNetwork
	case Is(err, ErrBookRemoved), Is(err, ErrNotFound):
		return CategoryNotFound
	case Is(err, ErrTimeout):
		return CategoryTimeout
	case Is(err, ErrRateLimit):
		return CategoryRateLimit
	case Is(err, ErrInvalidInput), Is(err, ErrNothingToDownload):
		return CategoryValidation
	case Is(err, ErrUnknownShape):
		return CategoryParsing
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case containsAny(errStr, "dial tcp", "connection refused", "no such host", "connection reset", "tls", "no route to host"):
		return CategoryNetwork
	case containsAny(errStr, "deadline exceeded", "timeout"):
		return CategoryTimeout
	case containsAny(errStr, "json", "unmarshal", "invalid character", "unexpected end"):
		return CategoryParsing
	case containsAny(errStr, "no such file", "permission denied", "file exists", "is a directory"):
		return CategoryFileSystem
	default:
		return CategoryUnknown
	}
}

func containsAny(s string, patterns ...string) bool {
	for _, pattern := range patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}

func findRootCause(err error) error {
	root := err
	for {
		unwrapped := Unwrap(root)
		if unwrapped == nil {
			return root
		}
		root = unwrapped
	}
}
