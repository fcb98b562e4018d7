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

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/provider/fanqie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) ID() string   { return "stub" }
func (stubSource) Name() string { return "Stub" }

func (stubSource) Search(ctx context.Context, keyword string, offset int) (*core.SearchResult, error) {
	return &core.SearchResult{Books: []core.Book{{ID: "1", Title: keyword}}}, nil
}

func (stubSource) BookDetail(ctx context.Context, bookID string) (*core.Book, error) {
	return &core.Book{ID: bookID, Title: "Tide", Author: "Qin"}, nil
}

func (stubSource) Directory(ctx context.Context, bookID string) ([]core.ChapterStub, error) {
	return []core.ChapterStub{{ID: "a", Title: "One"}, {ID: "b", Title: "Two"}}, nil
}

func (stubSource) BookLayout(ctx context.Context, bookID string) (*core.BookLayout, error) {
	return nil, fmt.Errorf("unused")
}

func (stubSource) ChapterContent(ctx context.Context, itemID string) (string, error) {
	return "text " + itemID, nil
}

func (stubSource) BulkContent(ctx context.Context, bookID string) (map[string]string, error) {
	return map[string]string{"a": "x", "b": "y"}, nil
}

func (stubSource) Endpoints() []core.Endpoint {
	return []core.Endpoint{{Name: "shown", Listed: true}, {Name: "hidden"}}
}

func (s stubSource) ListedEndpoints() []core.Endpoint {
	return s.Endpoints()[:1]
}

func TestEngineDownloadRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	e, err := NewWithSource(stubSource{}, Options{HistoryPath: filepath.Join(dir, "history.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Shutdown() })

	outcome := e.Download.Download(context.Background(), core.DownloadRequest{BookID: "9", OutputDir: dir, Format: core.FormatText}, nil)
	require.True(t, outcome.Success, outcome.Error)
	assert.Equal(t, core.ModeBulk, outcome.Mode)

	runs, err := e.History.List(0, "9")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, outcome.RunID, runs[0].RunID)
}

func TestEngineDelegates(t *testing.T) {
	e, err := NewWithSource(stubSource{}, Options{}, nil)
	require.NoError(t, err)
	assert.Nil(t, e.History)

	chapters, err := e.Chapters(context.Background(), "9")
	require.NoError(t, err)
	assert.Len(t, chapters, 2)
	assert.Equal(t, 1, chapters[1].Index)

	book, err := e.BookDetail(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "Tide", book.Title)

	assert.Len(t, e.Endpoints(), 1)
}

func TestFormatError(t *testing.T) {
	e, err := NewWithSource(stubSource{}, Options{}, nil)
	require.NoError(t, err)

	tracked := errors.New("mirror down").AsNetwork().Error()
	assert.Contains(t, e.FormatError(tracked), "mirror down")
	assert.Empty(t, e.FormatError(nil))
}

func TestConfiguredLogLevelSurvivesVerbosityReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.log")
	log := logger.NewService(path)

	e, err := NewWithSource(stubSource{}, Options{LogLevel: "error"}, log)
	require.NoError(t, err)

	e.SetDebugMode(true)
	log.Debug("visible while debugging")
	e.SetDebugMode(false)
	e.SetVerboseMode(false)
	log.Info("below the configured level")
	log.Error("at the configured level")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible while debugging")
	assert.NotContains(t, string(data), "below the configured level")
	assert.Contains(t, string(data), "at the configured level")
}

func TestEnginesShareHistoryPath(t *testing.T) {
	dir := t.TempDir()
	opts := Options{HistoryPath: filepath.Join(dir, "history.db")}

	first, err := NewWithSource(stubSource{}, opts, nil)
	require.NoError(t, err)
	second, err := NewWithSource(stubSource{}, opts, nil)
	require.NoError(t, err)
	require.NotNil(t, second.History)

	req := core.DownloadRequest{BookID: "9", OutputDir: dir, Format: core.FormatText}
	require.True(t, first.Download.Download(context.Background(), req, nil).Success)
	require.True(t, second.Download.Download(context.Background(), req, nil).Success)

	runs, err := first.History.List(0, "9")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestUnusableHistoryPathDisablesRecording(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	e, err := NewWithSource(stubSource{}, Options{HistoryPath: filepath.Join(blocker, "history.db")}, nil)
	require.NoError(t, err)
	assert.Nil(t, e.History)

	outcome := e.Download.Download(context.Background(), core.DownloadRequest{BookID: "9", OutputDir: dir}, nil)
	assert.True(t, outcome.Success, outcome.Error)
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, fanqie.DefaultChapterDelay, opts.ChapterDelay)
	assert.NotEmpty(t, opts.Endpoints)

	custom := Options{ChapterDelay: time.Second, Endpoints: []core.Endpoint{{Address: "http://mirror"}}}.withDefaults()
	assert.Equal(t, time.Second, custom.ChapterDelay)
	assert.Len(t, custom.Endpoints, 1)
}
