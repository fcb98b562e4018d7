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
	"testing"
	"time"

	"Folio/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestThrottleWaits(t *testing.T) {
	th := NewThrottle(20 * time.Millisecond)
	start := time.Now()
	assert.NoError(t, th.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestThrottleDisabled(t *testing.T) {
	assert.NoError(t, NewThrottle(0).Wait(context.Background()))
}

func TestThrottleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewThrottle(time.Hour).Wait(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
