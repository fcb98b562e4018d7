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

package download

import (
	"context"
	"fmt"
	"time"

	"Folio/pkg/artifact"
	"Folio/pkg/core"
	"Folio/pkg/engine/acquire"
	"Folio/pkg/engine/history"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/provider"
)

// Progress checkpoints on the fixed 0-100 scale
const (
	stageStart       = 0
	stageMetadata    = 5
	stageDirectory   = 10
	stageCounted     = 15
	stageBulk        = 20
	stageBulkMissing = 25
	stageBulkDone    = 50
	stageBulkPartial = 55
	stageBuilding    = 85
	stageDone        = 100
	progressScale    = 100
)

// ProgressSink receives progress events. Implementations must not block.
type ProgressSink interface {
	Progress(event core.ProgressEvent)
}

// ProgressFunc adapts a function to ProgressSink
type ProgressFunc func(event core.ProgressEvent)

// Progress calls f(event)
func (f ProgressFunc) Progress(event core.ProgressEvent) { f(event) }

// Resolver produces the ordered chapter list of a book
type Resolver interface {
	Resolve(ctx context.Context, bookID string) ([]core.ChapterRef, error)
}

// Acquirer obtains chapter bodies
type Acquirer interface {
	Acquire(ctx context.Context, bookID string, chapters []core.ChapterRef, obs acquire.Observer) (*acquire.Report, error)
}

// Recorder stores finished runs
type Recorder interface {
	Record(outcome *core.DownloadOutcome) error
}

// Service runs a book download end to end: metadata, directory, range
// filter, content acquisition and artifact build.
type Service struct {
	source   provider.Source
	resolver Resolver
	acquirer Acquirer
	builders *artifact.Registry
	recorder Recorder
	logger   logger.Logger
	now      func() time.Time
}

// NewService creates a new download service
func NewService(source provider.Source, resolver Resolver, acquirer Acquirer, builders *artifact.Registry, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		source:   source,
		resolver: resolver,
		acquirer: acquirer,
		builders: builders,
		logger:   log,
		now:      time.Now,
	}
}

// SetRecorder makes the service record every outcome. nil disables recording.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// Download performs one run and never returns a raw error: fatal failures are
// reported through DownloadOutcome.Error and no file is written for them.
func (s *Service) Download(ctx context.Context, req core.DownloadRequest, sink ProgressSink) core.DownloadOutcome {
	outcome := core.DownloadOutcome{
		RunID:   history.NewRunID(),
		BookID:  req.BookID,
		Format:  req.Format,
		Started: s.now(),
	}

	err := s.run(ctx, req, newTracker(req.BookID, sink), &outcome)
	if err != nil {
		s.logger.Error("[Download] Run %s for book %s failed: %v", outcome.RunID, req.BookID, err)
		outcome.Success = false
		outcome.FilePath = ""
		outcome.Error = err.Error()
	} else {
		outcome.Success = true
	}
	outcome.Finished = s.now()

	if s.recorder != nil {
		if rerr := s.recorder.Record(&outcome); rerr != nil {
			s.logger.Warn("[Download] Could not record run %s: %v", outcome.RunID, rerr)
		}
	}
	return outcome
}

func (s *Service) run(ctx context.Context, req core.DownloadRequest, p *tracker, outcome *core.DownloadOutcome) error {
	if req.BookID == "" {
		return errors.New("book id is required").AsValidation().Error()
	}

	p.emit(stageStart, "Fetching book information...")
	book, err := s.source.BookDetail(ctx, req.BookID)
	if err != nil {
		return errors.Track(err).WithContext("book_id", req.BookID).Error()
	}
	outcome.BookName = book.Title
	p.emit(stageMetadata, fmt.Sprintf("Found: %s", book.Title))

	if err := checkpoint(ctx); err != nil {
		return err
	}
	p.emit(stageDirectory, "Fetching chapter directory...")
	chapters, err := s.resolver.Resolve(ctx, req.BookID)
	if err != nil {
		return errors.Track(err).WithContext("book_id", req.BookID).Error()
	}
	p.emit(stageCounted, fmt.Sprintf("%d chapters", len(chapters)))

	selected := filterRange(chapters, req)
	outcome.Requested = len(selected)
	if len(selected) == 0 {
		return errors.Track(errors.ErrNothingToDownload).
			WithContext("book_id", req.BookID).
			WithContext("chapters", len(chapters)).
			AsValidation().
			Error()
	}

	if err := checkpoint(ctx); err != nil {
		return err
	}
	p.emit(stageBulk, "Trying bulk download...")
	report, err := s.acquirer.Acquire(ctx, req.BookID, selected, &observer{tracker: p})
	if err != nil {
		return errors.Track(err).AsDownload().Error()
	}
	outcome.Mode = report.Mode
	outcome.Failed = report.Failed
	outcome.Chapters = len(report.Chapters)
	if len(report.Chapters) == 0 {
		return errors.Newf("none of the %d requested chapters could be downloaded", len(selected)).
			WithContext("book_id", req.BookID).
			AsDownload().
			Error()
	}

	if err := checkpoint(ctx); err != nil {
		return err
	}
	p.emit(stageBuilding, "Building file...")
	builder, err := s.builders.Get(req.Format)
	if err != nil {
		return err
	}
	outcome.Format = builder.Format()

	dir := req.OutputDir
	if dir == "" {
		dir = "."
	}
	path, err := builder.Build(book, report.Chapters, dir)
	if err != nil {
		return errors.Track(err).AsFileSystem().Error()
	}
	outcome.FilePath = path

	s.logger.Info("[Download] Wrote %d/%d chapters of %s to %s", len(report.Chapters), len(selected), req.BookID, path)
	p.emit(stageDone, "Download complete!")
	return nil
}

func checkpoint(ctx context.Context) error {
	if ctx.Err() != nil {
		return errors.FromContext(ctx).Error()
	}
	return nil
}

// filterRange keeps the chapters whose index falls inside the requested range.
func filterRange(chapters []core.ChapterRef, req core.DownloadRequest) []core.ChapterRef {
	out := make([]core.ChapterRef, 0, len(chapters))
	for _, ch := range chapters {
		if req.Selects(ch.Index) {
			out = append(out, ch)
		}
	}
	return out
}
