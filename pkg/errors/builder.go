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
	"context"
	"fmt"
)

// ErrorBuilder decorates a TrackedError step by step. Every method is safe on
// a nil builder, so Track(nil).AsNetwork().Error() is nil.
type ErrorBuilder struct {
	err *TrackedError
}

// Track records the caller on err and returns a builder for it. Errors that
// are already tracked keep their chain and gain one more frame.
func Track(err error) *ErrorBuilder {
	if err == nil {
		return nil
	}

	var tracked *TrackedError
	if As(err, &tracked) {
		tracked.appendCaller()
		return &ErrorBuilder{err: tracked}
	}
	return &ErrorBuilder{err: trackError(err)}
}

// New starts a tracked error from a plain message
func New(message string) *ErrorBuilder {
	return Track(fmt.Errorf("%s", message))
}

// Newf starts a tracked error from a format string
func Newf(format string, args ...interface{}) *ErrorBuilder {
	return Track(fmt.Errorf(format, args...))
}

// FromContext turns a finished context into a timeout-category error, or
// returns nil while ctx is still live.
func FromContext(ctx context.Context) *ErrorBuilder {
	err := ctx.Err()
	if err == nil {
		return nil
	}

	b := Track(err).in(CategoryTimeout)
	if Is(err, context.Canceled) {
		return b.WithMessage("Operation was cancelled")
	}
	return b.WithMessage("Operation timed out")
}

func (b *ErrorBuilder) apply(fn func(e *TrackedError)) *ErrorBuilder {
	if b != nil && b.err != nil {
		fn(b.err)
	}
	return b
}

func (b *ErrorBuilder) in(category ErrorCategory) *ErrorBuilder {
	return b.apply(func(e *TrackedError) { e.Category = category })
}

// WithContext attaches a key/value pair shown in debug output
func (b *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	return b.apply(func(e *TrackedError) { e.Context[key] = value })
}

// WithMessage replaces the text shown to the user
func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	return b.apply(func(e *TrackedError) { e.UserMessage = message })
}

// WithHTTPContext records the request that failed
func (b *ErrorBuilder) WithHTTPContext(method, url string, statusCode int) *ErrorBuilder {
	return b.WithContext("method", method).WithContext("url", url).WithContext("status_code", statusCode)
}

// WithFileContext records the file and the operation that failed on it
func (b *ErrorBuilder) WithFileContext(path, operation string) *ErrorBuilder {
	return b.WithContext("file_path", path).WithContext("file_operation", operation)
}

func (b *ErrorBuilder) AsNetwork() *ErrorBuilder    { return b.in(CategoryNetwork) }
func (b *ErrorBuilder) AsParser() *ErrorBuilder     { return b.in(CategoryParsing) }
func (b *ErrorBuilder) AsNotFound() *ErrorBuilder   { return b.in(CategoryNotFound) }
func (b *ErrorBuilder) AsValidation() *ErrorBuilder { return b.in(CategoryValidation) }
func (b *ErrorBuilder) AsFileSystem() *ErrorBuilder { return b.in(CategoryFileSystem) }
func (b *ErrorBuilder) AsDownload() *ErrorBuilder   { return b.in(CategoryDownload) }

// AsProvider marks a failure reported by a content provider
func (b *ErrorBuilder) AsProvider(providerID string) *ErrorBuilder {
	return b.in(CategoryProvider).WithContext("provider_id", providerID)
}

// Error returns the built error, or nil for a nil builder
func (b *ErrorBuilder) Error() error {
	if b == nil || b.err == nil {
		return nil
	}
	return b.err
}
