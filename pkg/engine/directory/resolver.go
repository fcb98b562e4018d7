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

package directory

import (
	"context"
	"fmt"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
)

const untitledChapter = "Untitled chapter"

// Lister is the part of a source the resolver depends on
type Lister interface {
	Directory(ctx context.Context, bookID string) ([]core.ChapterStub, error)
	BookLayout(ctx context.Context, bookID string) (*core.BookLayout, error)
}

// Resolver builds the ordered chapter list of a book from a primary directory
// listing, falling back to the book layout when the listing is empty.
type Resolver struct {
	source Lister
	logger logger.Logger
}

// NewResolver creates a Resolver over source
func NewResolver(source Lister, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{source: source, logger: log}
}

// Resolve returns the chapters of bookID with indices 0..n-1. The book layout
// is only consulted when the primary listing fails or yields no chapters.
func (r *Resolver) Resolve(ctx context.Context, bookID string) ([]core.ChapterRef, error) {
	stubs, err := r.source.Directory(ctx, bookID)
	if err != nil {
		r.logger.Warn("[Directory] Primary listing for %s failed: %v", bookID, err)
	}

	if chapters := index(stubs); len(chapters) > 0 {
		r.logger.Debug("[Directory] %d chapters from primary listing", len(chapters))
		return chapters, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(ctx).Error()
	}

	layout, err := r.source.BookLayout(ctx, bookID)
	if err != nil {
		return nil, errors.Track(fmt.Errorf("%w: %w", errors.ErrDirectoryUnavailable, err)).
			WithContext("book_id", bookID).
			AsNotFound().
			Error()
	}

	if chapters := index(flatten(layout.Volumes)); len(chapters) > 0 {
		r.logger.Debug("[Directory] %d chapters from volume layout", len(chapters))
		return chapters, nil
	}

	if chapters := numbered(layout.ItemIDs); len(chapters) > 0 {
		r.logger.Debug("[Directory] %d chapters from identifier list", len(chapters))
		return chapters, nil
	}

	return nil, errors.Track(errors.ErrDirectoryUnavailable).
		WithContext("book_id", bookID).
		AsNotFound().
		Error()
}

// index drops stubs without an identifier and numbers the rest.
func index(stubs []core.ChapterStub) []core.ChapterRef {
	chapters := make([]core.ChapterRef, 0, len(stubs))
	for _, stub := range stubs {
		if stub.ID == "" {
			continue
		}
		title := stub.Title
		if title == "" {
			title = untitledChapter
		}
		chapters = append(chapters, core.ChapterRef{ID: stub.ID, Title: title, Index: len(chapters)})
	}
	return chapters
}

func flatten(volumes [][]core.ChapterStub) []core.ChapterStub {
	var stubs []core.ChapterStub
	for _, volume := range volumes {
		stubs = append(stubs, volume...)
	}
	return stubs
}

// numbered titles bare identifiers "Chapter N", counting from 1.
func numbered(ids []string) []core.ChapterRef {
	chapters := make([]core.ChapterRef, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		n := len(chapters)
		chapters = append(chapters, core.ChapterRef{ID: id, Title: fmt.Sprintf("Chapter %d", n+1), Index: n})
	}
	return chapters
}
