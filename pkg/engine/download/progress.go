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
	"fmt"

	"Folio/pkg/core"
	"Folio/pkg/engine/acquire"
)

// tracker emits events with a current value that never decreases.
type tracker struct {
	sink    ProgressSink
	bookID  string
	current int
	floor   int
}

func newTracker(bookID string, sink ProgressSink) *tracker {
	return &tracker{sink: sink, bookID: bookID}
}

func (t *tracker) emit(current int, message string) {
	if current < t.current {
		current = t.current
	}
	t.current = current
	if t.sink == nil {
		return
	}
	t.sink.Progress(core.NewProgressEvent(t.bookID, current, progressScale, message))
}

// observer maps acquisition notifications onto the progress scale.
type observer struct {
	tracker *tracker
}

func (o *observer) BulkFinished(outcome acquire.BulkOutcome, covered, requested int) {
	switch outcome {
	case acquire.BulkComplete:
		o.tracker.emit(stageBulkDone, "Bulk download succeeded, processing content...")
	case acquire.BulkIncomplete:
		o.tracker.emit(stageBulkPartial, fmt.Sprintf("Bulk content incomplete (%d/%d), switching to chapter mode...", covered, requested))
	default:
		o.tracker.emit(stageBulkMissing, "Bulk download unavailable, using chapter mode...")
	}
	o.tracker.floor = o.tracker.current
}

func (o *observer) ChapterStarted(position, total int, chapter core.ChapterRef) {
	span := stageBuilding - o.tracker.floor
	current := o.tracker.floor
	if total > 0 && span > 0 {
		current += position * span / total
	}
	o.tracker.emit(current, fmt.Sprintf("Downloading %d/%d - %s", position+1, total, chapter.Title))
}

func (o *observer) ChapterFailed(core.ChapterRef, error) {}
