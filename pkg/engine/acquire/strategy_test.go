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
	"fmt"
	"testing"

	"Folio/pkg/core"
	"Folio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	bulk    map[string]string
	bulkErr error
	fail    map[string]bool
	fetched []string
	cancel  context.CancelFunc
}

func (f *fakeFetcher) BulkContent(ctx context.Context, bookID string) (map[string]string, error) {
	return f.bulk, f.bulkErr
}

func (f *fakeFetcher) ChapterContent(ctx context.Context, itemID string) (string, error) {
	f.fetched = append(f.fetched, itemID)
	if f.cancel != nil && len(f.fetched) == 2 {
		f.cancel()
		return "", ctx.Err()
	}
	if f.fail[itemID] {
		return "", fmt.Errorf("no mirror served %s", itemID)
	}
	return "text of " + itemID, nil
}

type countingPacer struct{ waits int }

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

type recordingObserver struct {
	outcome BulkOutcome
	covered int
	started []int
	failed  []string
}

func (o *recordingObserver) BulkFinished(outcome BulkOutcome, covered, requested int) {
	o.outcome, o.covered = outcome, covered
}

func (o *recordingObserver) ChapterStarted(position, total int, ch core.ChapterRef) {
	o.started = append(o.started, position)
}

func (o *recordingObserver) ChapterFailed(ch core.ChapterRef, err error) {
	o.failed = append(o.failed, ch.ID)
}

func refs(n int) []core.ChapterRef {
	out := make([]core.ChapterRef, n)
	for i := range out {
		out[i] = core.ChapterRef{ID: fmt.Sprintf("c%d", i), Title: fmt.Sprintf("T%d", i), Index: i}
	}
	return out
}

func bulkFor(chapters []core.ChapterRef) map[string]string {
	m := make(map[string]string, len(chapters))
	for _, ch := range chapters {
		m[ch.ID] = "bulk " + ch.ID
	}
	return m
}

func TestCompleteBulkSkipsSequential(t *testing.T) {
	chapters := refs(3)
	src := &fakeFetcher{bulk: bulkFor(chapters)}
	src.bulk["extra"] = "not requested"
	pacer := &countingPacer{}
	obs := &recordingObserver{}

	report, err := NewStrategy(src, pacer, nil).Acquire(context.Background(), "b", chapters, obs)
	require.NoError(t, err)

	assert.Equal(t, core.ModeBulk, report.Mode)
	assert.Empty(t, src.fetched)
	assert.Zero(t, pacer.waits)
	assert.Equal(t, BulkComplete, obs.outcome)
	require.Len(t, report.Chapters, 3)
	for i, ch := range report.Chapters {
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, "bulk "+ch.ID, ch.Text)
	}
}

func TestIncompleteBulkRefetchesEverything(t *testing.T) {
	chapters := refs(100)
	bulk := bulkFor(chapters)
	delete(bulk, "c57")
	src := &fakeFetcher{bulk: bulk}
	pacer := &countingPacer{}
	obs := &recordingObserver{}

	report, err := NewStrategy(src, pacer, nil).Acquire(context.Background(), "b", chapters, obs)
	require.NoError(t, err)

	assert.Equal(t, core.ModeSequential, report.Mode)
	assert.Equal(t, BulkIncomplete, obs.outcome)
	assert.Equal(t, 99, obs.covered)
	assert.Len(t, src.fetched, 100)
	assert.Equal(t, 99, pacer.waits)
	for _, ch := range report.Chapters {
		assert.Equal(t, "text of "+ch.ID, ch.Text, "bulk results are discarded")
	}
}

func TestBulkUnavailableFallsBack(t *testing.T) {
	chapters := refs(2)
	src := &fakeFetcher{bulkErr: errors.ErrNoEndpointAvailable}
	obs := &recordingObserver{}

	report, err := NewStrategy(src, nil, nil).Acquire(context.Background(), "b", chapters, obs)
	require.NoError(t, err)
	assert.Equal(t, BulkUnavailable, obs.outcome)
	assert.Equal(t, []int{0, 1}, obs.started)
	assert.Len(t, report.Chapters, 2)
}

func TestFailedChapterIsOmitted(t *testing.T) {
	chapters := refs(3)
	src := &fakeFetcher{bulkErr: errors.ErrBulkUnavailable, fail: map[string]bool{"c1": true}}
	obs := &recordingObserver{}

	report, err := NewStrategy(src, &countingPacer{}, nil).Acquire(context.Background(), "b", chapters, obs)
	require.NoError(t, err)

	require.Len(t, report.Chapters, 2)
	assert.Equal(t, "c0", report.Chapters[0].ID)
	assert.Equal(t, "c2", report.Chapters[1].ID)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 1, report.Failed[0].Index)
	assert.Equal(t, []string{"c1"}, obs.failed)
}

func TestCancellationAbortsSequential(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &fakeFetcher{bulkErr: errors.ErrBulkUnavailable, cancel: cancel}

	_, err := NewStrategy(src, &countingPacer{}, nil).Acquire(ctx, "b", refs(5), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, src.fetched, 2)
}

func TestEmptySelection(t *testing.T) {
	src := &fakeFetcher{}
	report, err := NewStrategy(src, nil, nil).Acquire(context.Background(), "b", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Chapters)
	assert.Empty(t, src.fetched)
}

func TestBulkOutcomeString(t *testing.T) {
	assert.Equal(t, "complete", BulkComplete.String())
	assert.Equal(t, "incomplete", BulkIncomplete.String())
	assert.Equal(t, "unavailable", BulkUnavailable.String())
}
