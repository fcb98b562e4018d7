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

package search

import (
	"context"
	"sort"
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Searcher is the part of a source the search service depends on
type Searcher interface {
	Search(ctx context.Context, keyword string, offset int) (*core.SearchResult, error)
}

// Options tune a search call
type Options struct {
	Offset int
	// Rank re-orders the page by how closely titles match the keyword.
	Rank bool
	// Filters keep only books whose field contains the value. Supported
	// fields are title, author, category and status.
	Filters map[string]string
}

// Service provides search over a single source
type Service struct {
	source Searcher
	logger logger.Logger
}

// NewSearchService creates a new search service
func NewSearchService(source Searcher, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{source: source, logger: log}
}

// Search fetches one page of results for keyword
func (s *Service) Search(ctx context.Context, keyword string, opts Options) (*core.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("search keyword is empty").AsValidation().Error()
	}

	s.logger.Info("[Search] Searching for: %s (offset %d)", keyword, opts.Offset)
	result, err := s.source.Search(ctx, keyword, opts.Offset)
	if err != nil {
		return nil, errors.Track(err).WithContext("keyword", keyword).Error()
	}

	if len(opts.Filters) > 0 {
		before := len(result.Books)
		result.Books = FilterResults(result.Books, opts.Filters)
		s.logger.Debug("[Search] Filtered from %d to %d results", before, len(result.Books))
	}
	if opts.Rank {
		result.Books = Rank(keyword, result.Books)
	}

	s.logger.Info("[Search] Found %d results for: %s", len(result.Books), keyword)
	return result, nil
}

// Rank orders books by title similarity to query, best first. Ties keep
// their original order.
func Rank(query string, books []core.Book) []core.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(books) == 0 {
		return books
	}

	type rankedBook struct {
		book  core.Book
		score int
	}

	ranked := make([]rankedBook, len(books))
	for i, b := range books {
		ranked[i] = rankedBook{book: b, score: matchScore(strings.ToLower(b.Title), query)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	out := make([]core.Book, len(ranked))
	for i, r := range ranked {
		out[i] = r.book
	}
	return out
}

// matchScore is lower for closer matches
func matchScore(title, query string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, title)
}

// FilterResults keeps books matching every filter, case-insensitively.
func FilterResults(books []core.Book, filters map[string]string) []core.Book {
	if len(filters) == 0 {
		return books
	}

	filtered := make([]core.Book, 0, len(books))
	for _, b := range books {
		matches := true
		for field, value := range filters {
			if !fieldContains(b, strings.ToLower(field), strings.ToLower(value)) {
				matches = false
				break
			}
		}
		if matches {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func fieldContains(b core.Book, field, value string) bool {
	var target string
	switch field {
	case "title":
		target = b.Title
	case "author":
		target = b.Author
	case "category", "genre":
		if b.Category != nil {
			target = *b.Category
		}
	case "status":
		if b.Status != nil {
			target = *b.Status
		}
	default:
		return true
	}
	return strings.Contains(strings.ToLower(target), value)
}

// chapterTitles implements sfuzzy.Source over lowercase chapter titles
type chapterTitles []string

func (c chapterTitles) String(i int) string { return c[i] }
func (c chapterTitles) Len() int            { return len(c) }

// FilterChapters returns the chapters whose title fuzzily matches query, in
// directory order. An empty query returns every chapter.
func FilterChapters(query string, chapters []core.ChapterRef) []core.ChapterRef {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return chapters
	}

	titles := make(chapterTitles, len(chapters))
	for i, ch := range chapters {
		titles[i] = strings.ToLower(ch.Title)
	}

	matches := sfuzzy.FindFrom(query, titles)
	indexes := make([]int, len(matches))
	for i, m := range matches {
		indexes[i] = m.Index
	}
	sort.Ints(indexes)

	out := make([]core.ChapterRef, len(indexes))
	for i, idx := range indexes {
		out[i] = chapters[idx]
	}
	return out
}
