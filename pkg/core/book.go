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

package core

import (
	"strings"
	"time"
)

// ProgressChannel is the name under which progress events are published.
const ProgressChannel = "download-progress"

// Book represents the metadata of a single novel
type Book struct {
	ID           string  `json:"book_id"`
	Title        string  `json:"book_name"`
	Author       string  `json:"author"`
	CoverURL     string  `json:"cover_url,omitempty"`
	Description  string  `json:"description,omitempty"`
	WordCount    *int64  `json:"word_count,omitempty"`
	ChapterCount *int64  `json:"chapter_count,omitempty"`
	Category     *string `json:"category,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// SearchResult is one page of search hits
type SearchResult struct {
	Books   []Book `json:"books"`
	Total   int    `json:"total"`
	HasMore bool   `json:"has_more"`
}

// ChapterRef identifies a chapter and its position in the book
type ChapterRef struct {
	ID    string `json:"item_id"`
	Title string `json:"title"`
	Index int    `json:"index"`
}

// Chapter is the normalized body of a chapter
type Chapter struct {
	ID    string `json:"item_id"`
	Title string `json:"title"`
	Text  string `json:"content"`
	Index int    `json:"index"`
}

// ChapterStub is a raw directory entry as reported by a source. The ID may be
// empty.
type ChapterStub struct {
	ID    string `json:"item_id"`
	Title string `json:"title"`
}

// BookLayout is the secondary directory description of a book: chapters
// grouped in volumes, and/or a bare list of chapter identifiers.
type BookLayout struct {
	Volumes [][]ChapterStub `json:"volumes,omitempty"`
	ItemIDs []string        `json:"item_ids,omitempty"`
}

// Format is an output artifact format
type Format string

const (
	FormatText Format = "txt"
	FormatEPUB Format = "epub"
)

// ParseFormat maps a user-provided format name to a Format. Unknown names fall
// back to FormatText.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "epub":
		return FormatEPUB
	default:
		return FormatText
	}
}

// DownloadRequest describes one download run. Start is inclusive and End is
// exclusive; nil means unbounded.
type DownloadRequest struct {
	BookID    string `json:"book_id"`
	OutputDir string `json:"save_path"`
	Format    Format `json:"format"`
	Start     *int   `json:"start_chapter,omitempty"`
	End       *int   `json:"end_chapter,omitempty"`
}

// Selects reports whether the chapter at index falls inside the requested range.
func (r DownloadRequest) Selects(index int) bool {
	if r.Start != nil && index < *r.Start {
		return false
	}
	if r.End != nil && index >= *r.End {
		return false
	}
	return true
}

// ProgressEvent is emitted during a download run
type ProgressEvent struct {
	Current int     `json:"current"`
	Total   int     `json:"total"`
	Percent float64 `json:"percentage"`
	Message string  `json:"message"`
	BookID  string  `json:"book_id"`
}

// NewProgressEvent builds an event, deriving Percent from current and total.
func NewProgressEvent(bookID string, current, total int, message string) ProgressEvent {
	percent := 0.0
	if total > 0 {
		percent = float64(current) / float64(total) * 100
	}
	return ProgressEvent{
		Current: current,
		Total:   total,
		Percent: percent,
		Message: message,
		BookID:  bookID,
	}
}

// AcquireMode records how chapter bodies were obtained
type AcquireMode string

const (
	ModeBulk       AcquireMode = "bulk"
	ModeSequential AcquireMode = "sequential"
)

// ChapterFailure records a chapter that could not be fetched
type ChapterFailure struct {
	ID     string `json:"item_id"`
	Title  string `json:"title"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// DownloadOutcome is the terminal result of a download run
type DownloadOutcome struct {
	Success   bool             `json:"success"`
	FilePath  string           `json:"file_path,omitempty"`
	Error     string           `json:"error,omitempty"`
	BookName  string           `json:"book_name,omitempty"`
	RunID     string           `json:"run_id"`
	BookID    string           `json:"book_id"`
	Format    Format           `json:"format"`
	Mode      AcquireMode      `json:"mode,omitempty"`
	Requested int              `json:"requested"`
	Chapters  int              `json:"chapters"`
	Failed    []ChapterFailure `json:"failed,omitempty"`
	Started   time.Time        `json:"started"`
	Finished  time.Time        `json:"finished"`
}

// Endpoint is one mirror of the content provider
type Endpoint struct {
	Name    string `json:"name"`
	Address string `json:"url"`
	Listed  bool   `json:"-"`
}
