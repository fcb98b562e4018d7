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

import stderrors "errors"

var (
	As     = stderrors.As
	Is     = stderrors.Is
	Unwrap = stderrors.Unwrap
)

// HTTP-level sentinels
var (
	ErrNotFound     = stderrors.New("resource not found")
	ErrUnauthorized = stderrors.New("unauthorized")
	ErrBadRequest   = stderrors.New("bad request")
	ErrServerError  = stderrors.New("server error")
	ErrTimeout      = stderrors.New("operation timed out")
	ErrRateLimit    = stderrors.New("rate limit exceeded")
	ErrInvalidInput = stderrors.New("invalid input")
	ErrNetworkIssue = stderrors.New("network connection issue")
)

// Content pipeline sentinels
var (
	// ErrNoEndpointAvailable is returned when every mirror failed an operation.
	ErrNoEndpointAvailable = stderrors.New("no endpoint available")
	// ErrBookRemoved marks a book the provider has delisted.
	ErrBookRemoved = stderrors.New("book has been removed from the catalogue")
	// ErrDirectoryUnavailable means neither directory source produced chapters.
	ErrDirectoryUnavailable = stderrors.New("chapter directory unavailable")
	ErrBulkUnavailable      = stderrors.New("bulk content unavailable")
	ErrEmptyContent         = stderrors.New("chapter content is empty")
	ErrNothingToDownload    = stderrors.New("nothing to download")
	// ErrUnexpectedStatus is an envelope whose code is not the success code.
	ErrUnexpectedStatus = stderrors.New("unexpected response status")
	ErrUnknownShape     = stderrors.New("response matches no known shape")
)

func IsNotFound(err error) bool    { return Is(err, ErrNotFound) }
func IsBookRemoved(err error) bool { return Is(err, ErrBookRemoved) }
