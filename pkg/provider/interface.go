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

package provider

import (
	"context"

	"Folio/pkg/core"
)

// Source is a content provider reachable through one or more mirrors. Every
// operation walks the mirrors in order and returns the first success.
type Source interface {
	ID() string
	Name() string

	Search(ctx context.Context, keyword string, offset int) (*core.SearchResult, error)
	BookDetail(ctx context.Context, bookID string) (*core.Book, error)

	// Directory returns the primary chapter listing. Entries may lack an ID.
	Directory(ctx context.Context, bookID string) ([]core.ChapterStub, error)
	// BookLayout returns the secondary directory description.
	BookLayout(ctx context.Context, bookID string) (*core.BookLayout, error)

	// ChapterContent returns the normalized text of one chapter.
	ChapterContent(ctx context.Context, itemID string) (string, error)
	// BulkContent returns normalized text for as many chapters of the book as
	// the provider is willing to deliver in one response.
	BulkContent(ctx context.Context, bookID string) (map[string]string, error)

	// Endpoints returns every configured mirror in fallback order.
	Endpoints() []core.Endpoint
	// ListedEndpoints returns the mirrors meant for display.
	ListedEndpoints() []core.Endpoint
}
