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
	"testing"

	"Folio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mirrors = []string{"http://m1", "http://m2", "http://m3", "http://m4"}

func TestTryStopsAtFirstSuccess(t *testing.T) {
	var attempted []string
	f := NewFallback(mirrors, nil)

	got, err := Try(context.Background(), f, func(ctx context.Context, base string) (string, error) {
		attempted = append(attempted, base)
		if base == "http://m2" {
			return "ok from " + base, nil
		}
		return "", fmt.Errorf("down")
	})

	require.NoError(t, err)
	assert.Equal(t, "ok from http://m2", got)
	assert.Equal(t, []string{"http://m1", "http://m2"}, attempted)
}

func TestTryExhaustsEveryAddressInOrder(t *testing.T) {
	var attempted []string
	f := NewFallback(mirrors, nil)

	_, err := Try(context.Background(), f, func(ctx context.Context, base string) (int, error) {
		attempted = append(attempted, base)
		return 0, fmt.Errorf("down")
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoEndpointAvailable))
	assert.Equal(t, mirrors, attempted)
}

func TestTryHaltSkipsRemainingAddresses(t *testing.T) {
	calls := 0
	f := NewFallback(mirrors, nil)

	_, err := Try(context.Background(), f, func(ctx context.Context, base string) (int, error) {
		calls++
		return 0, Halt(errors.ErrBookRemoved)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(err, errors.ErrBookRemoved))
	assert.False(t, errors.Is(err, errors.ErrNoEndpointAvailable))
}

func TestTryCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := NewFallback(mirrors, nil)
	calls := 0

	_, err := Try(ctx, f, func(ctx context.Context, base string) (int, error) {
		calls++
		cancel()
		return 0, fmt.Errorf("down")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTryEmptyAddressList(t *testing.T) {
	_, err := Try(context.Background(), NewFallback(nil, nil), func(ctx context.Context, base string) (int, error) {
		t.Fatal("op must not be called")
		return 0, nil
	})
	assert.True(t, errors.Is(err, errors.ErrNoEndpointAvailable))
}

func TestNewFallbackCopiesAddresses(t *testing.T) {
	in := []string{"a", "b"}
	f := NewFallback(in, nil)
	in[0] = "z"
	assert.Equal(t, []string{"a", "b"}, f.Addresses())
}
