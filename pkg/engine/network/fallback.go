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
	"fmt"

	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
)

// Fallback walks an ordered list of base addresses, one at a time
type Fallback struct {
	addresses []string
	logger    logger.Logger
}

// NewFallback creates a Fallback over addresses. The slice is copied.
func NewFallback(addresses []string, log logger.Logger) *Fallback {
	if log == nil {
		log = logger.Nop()
	}
	return &Fallback{
		addresses: append([]string(nil), addresses...),
		logger:    log,
	}
}

// Addresses returns a copy of the configured addresses in order.
func (f *Fallback) Addresses() []string {
	return append([]string(nil), f.addresses...)
}

// haltError stops the fallback walk and is surfaced to the caller unchanged.
type haltError struct {
	err error
}

func (h *haltError) Error() string { return h.err.Error() }
func (h *haltError) Unwrap() error { return h.err }

// Halt marks err as final: the remaining addresses are not tried.
func Halt(err error) error {
	if err == nil {
		return nil
	}
	return &haltError{err: err}
}

// Try runs op against each address in order and returns the first success.
// Intermediate failures are logged and discarded. When every address fails
// the result wraps errors.ErrNoEndpointAvailable. A cancelled context ends
// the walk before the next address is attempted.
func Try[T any](ctx context.Context, f *Fallback, op func(ctx context.Context, base string) (T, error)) (T, error) {
	var zero T

	for i, base := range f.addresses {
		if err := ctx.Err(); err != nil {
			return zero, errors.FromContext(ctx).WithContext("attempts", i).Error()
		}

		result, err := op(ctx, base)
		if err == nil {
			return result, nil
		}

		var halt *haltError
		if errors.As(err, &halt) {
			return zero, halt.err
		}

		f.logger.Debug("[Fallback] %s failed (%d/%d): %v", base, i+1, len(f.addresses), err)
	}

	return zero, errors.Track(fmt.Errorf("%w after %d attempts", errors.ErrNoEndpointAvailable, len(f.addresses))).
		WithContext("attempts", len(f.addresses)).
		AsNetwork().
		Error()
}
