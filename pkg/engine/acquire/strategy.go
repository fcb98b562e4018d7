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

package acquire

import (
	"context"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
)

// Fetcher is the part of a source the strategy depends on
type Fetcher interface {
	ChapterContent(ctx context.Context, itemID string) (string, error)
	BulkContent(ctx context.Context, bookID string) (map[string]string, error)
}

// Pacer is waited on between two consecutive single-chapter fetches
type Pacer interface {
	Wait(ctx context.Context) error
}

// BulkOutcome describes how the bulk attempt ended
type BulkOutcome int

const (
	// BulkComplete means the bulk response covered every requested chapter.
	BulkComplete BulkOutcome = iota
	// BulkIncomplete means the bulk response missed at least one chapter.
	BulkIncomplete
	// BulkUnavailable means no mirror delivered bulk content.
	BulkUnavailable
)

func (o BulkOutcome) String() string {
	switch o {
	case BulkComplete:
		return "complete"
	case BulkIncomplete:
		return "incomplete"
	default:
		return "unavailable"
	}
}

// Observer receives notifications while chapters are acquired. Calls are
// made synchronously from the acquiring goroutine.
type Observer interface {
	BulkFinished(outcome BulkOutcome, covered, requested int)
	ChapterStarted(position, total int, chapter core.ChapterRef)
	ChapterFailed(chapter core.ChapterRef, err error)
}

// Report is the result of one acquisition
type Report struct {
	Chapters []core.Chapter
	Failed   []core.ChapterFailure
	Mode     core.AcquireMode
}

// Strategy obtains chapter bodies, preferring a single bulk request and
// degrading to one request per chapter.
type Strategy struct {
	source Fetcher
	pacer  Pacer
	logger logger.Logger
}

// NewStrategy creates a Strategy. A nil pacer disables pausing.
func NewStrategy(source Fetcher, pacer Pacer, log logger.Logger) *Strategy {
	if log == nil {
		log = logger.Nop()
	}
	return &Strategy{source: source, pacer: pacer, logger: log}
}

// Acquire returns the bodies of chapters in index order. When the bulk
// response covers every requested identifier it is used as is; otherwise it
// is discarded and every chapter is fetched on its own. Individual failures
// are reported in Report.Failed and do not abort the run.
func (s *Strategy) Acquire(ctx context.Context, bookID string, chapters []core.ChapterRef, obs Observer) (*Report, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	if len(chapters) == 0 {
		return &Report{Mode: core.ModeBulk}, nil
	}

	bulk, err := s.source.BulkContent(ctx, bookID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.FromContext(ctx).Error()
		}
		s.logger.Info("[Acquire] Bulk content unavailable for %s: %v", bookID, err)
		obs.BulkFinished(BulkUnavailable, 0, len(chapters))
	} else {
		covered := coverage(bulk, chapters)
		if covered == len(chapters) {
			obs.BulkFinished(BulkComplete, covered, len(chapters))
			return &Report{Chapters: assemble(bulk, chapters), Mode: core.ModeBulk}, nil
		}
		s.logger.Info("[Acquire] Bulk content covers %d/%d chapters, fetching individually", covered, len(chapters))
		obs.BulkFinished(BulkIncomplete, covered, len(chapters))
	}

	return s.sequential(ctx, chapters, obs)
}

func (s *Strategy) sequential(ctx context.Context, chapters []core.ChapterRef, obs Observer) (*Report, error) {
	report := &Report{
		Chapters: make([]core.Chapter, 0, len(chapters)),
		Mode:     core.ModeSequential,
	}

	for i, ch := range chapters {
		if i > 0 && s.pacer != nil {
			if err := s.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.FromContext(ctx).Error()
		}

		obs.ChapterStarted(i, len(chapters), ch)

		text, err := s.source.ChapterContent(ctx, ch.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.FromContext(ctx).Error()
			}
			s.logger.Warn("[Acquire] Chapter %d (%s) failed: %v", ch.Index, ch.ID, err)
			report.Failed = append(report.Failed, core.ChapterFailure{
				ID:     ch.ID,
				Title:  ch.Title,
				Index:  ch.Index,
				Reason: err.Error(),
			})
			obs.ChapterFailed(ch, err)
			continue
		}

		report.Chapters = append(report.Chapters, core.Chapter{
			ID:    ch.ID,
			Title: ch.Title,
			Text:  text,
			Index: ch.Index,
		})
	}

	return report, nil
}

// coverage counts requested chapters present in bulk.
func coverage(bulk map[string]string, chapters []core.ChapterRef) int {
	n := 0
	for _, ch := range chapters {
		if _, ok := bulk[ch.ID]; ok {
			n++
		}
	}
	return n
}

func assemble(bulk map[string]string, chapters []core.ChapterRef) []core.Chapter {
	out := make([]core.Chapter, len(chapters))
	for i, ch := range chapters {
		out[i] = core.Chapter{ID: ch.ID, Title: ch.Title, Text: bulk[ch.ID], Index: ch.Index}
	}
	return out
}

type nopObserver struct{}

func (nopObserver) BulkFinished(BulkOutcome, int, int)       {}
func (nopObserver) ChapterStarted(int, int, core.ChapterRef) {}
func (nopObserver) ChapterFailed(core.ChapterRef, error)     {}
