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

package rpc

import (
	"context"
	"encoding/json"
	"io"
	"runtime"
	"strings"
	"sync"

	"Folio/pkg/core"
	"Folio/pkg/engine"
	"Folio/pkg/engine/download"
	"Folio/pkg/engine/logger"
	"Folio/pkg/engine/search"
)

// Services holds the state shared by all RPC services
type Services struct {
	engine  *engine.Engine
	version string
	events  *Emitter
}

// Emitter writes progress notifications as JSON lines
type Emitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// Event is one notification line
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// NewEmitter creates an Emitter writing to w. A nil writer drops events.
func NewEmitter(w io.Writer) *Emitter {
	if w == nil {
		w = io.Discard
	}
	return &Emitter{enc: json.NewEncoder(w)}
}

// Emit writes one event line
func (e *Emitter) Emit(name string, payload interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.enc.Encode(Event{Event: name, Payload: payload})
}

// --- Version Service ---

type VersionService struct {
	services *Services
}

type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	LogFile   string `json:"log_file"`
}

func (s *VersionService) Get(args *struct{}, reply *VersionInfo) error {
	*reply = VersionInfo{
		Version:   s.services.version,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		LogFile:   "disabled",
	}
	if svc, ok := s.services.engine.Logger.(*logger.Service); ok && svc.LogFile() != "" {
		reply.LogFile = svc.LogFile()
	}
	return nil
}

// --- Sources Service ---

type SourcesService struct {
	services *Services
}

type SourceInfo struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Endpoints []core.Endpoint `json:"endpoints"`
}

func (s *SourcesService) List(args *struct{}, reply *SourceInfo) error {
	src := s.services.engine.Source
	*reply = SourceInfo{
		ID:        src.ID(),
		Name:      src.Name(),
		Endpoints: s.services.engine.Endpoints(),
	}
	return nil
}

// --- Search Service ---

type SearchService struct {
	services *Services
}

type SearchRequest struct {
	Query   string            `json:"query"`
	Offset  int               `json:"offset,omitempty"`
	Rank    bool              `json:"rank,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

func (s *SearchService) Search(args *SearchRequest, reply *core.SearchResult) error {
	if strings.TrimSpace(args.Query) == "" {
		return InvalidInput("Search", "Search", "query", args.Query)
	}

	result, err := s.services.engine.Search.Search(context.Background(), args.Query, search.Options{
		Offset:  args.Offset,
		Rank:    args.Rank,
		Filters: args.Filters,
	})
	if err != nil {
		return NewError(err, "Search", "Search", map[string]interface{}{"query": args.Query})
	}

	*reply = *result
	return nil
}

// --- Book Service ---

type BookService struct {
	services *Services
}

type BookRequest struct {
	BookID string `json:"book_id"`
	Match  string `json:"match,omitempty"`
}

func (s *BookService) Detail(args *BookRequest, reply *core.Book) error {
	if args.BookID == "" {
		return InvalidInput("Book", "Detail", "book_id", args.BookID)
	}

	book, err := s.services.engine.BookDetail(context.Background(), args.BookID)
	if err != nil {
		return NewError(err, "Book", "Detail", map[string]interface{}{"book_id": args.BookID})
	}
	*reply = *book
	return nil
}

func (s *BookService) Chapters(args *BookRequest, reply *[]core.ChapterRef) error {
	if args.BookID == "" {
		return InvalidInput("Book", "Chapters", "book_id", args.BookID)
	}

	chapters, err := s.services.engine.Chapters(context.Background(), args.BookID)
	if err != nil {
		return NewError(err, "Book", "Chapters", map[string]interface{}{"book_id": args.BookID})
	}
	*reply = search.FilterChapters(args.Match, chapters)
	return nil
}

// --- Download Service ---

type DownloadService struct {
	services *Services
}

// Start runs a download to completion, emitting progress events meanwhile.
// Failed runs are reported in the outcome, not as an RPC error.
func (s *DownloadService) Start(args *core.DownloadRequest, reply *core.DownloadOutcome) error {
	if args.BookID == "" {
		return InvalidInput("Download", "Start", "book_id", args.BookID)
	}

	sink := download.ProgressFunc(func(e core.ProgressEvent) {
		s.services.events.Emit(core.ProgressChannel, e)
	})
	*reply = s.services.engine.Download.Download(context.Background(), *args, sink)
	return nil
}
