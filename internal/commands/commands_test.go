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

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"Folio/internal/config"
	"Folio/pkg/core"
	"Folio/pkg/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) ID() string   { return "stub" }
func (stubSource) Name() string { return "Stub Novels" }

func (stubSource) Search(ctx context.Context, keyword string, offset int) (*core.SearchResult, error) {
	return &core.SearchResult{Books: []core.Book{{ID: "1", Title: "Other"}, {ID: "2", Title: keyword}}, HasMore: true}, nil
}

func (stubSource) BookDetail(ctx context.Context, bookID string) (*core.Book, error) {
	if bookID == "gone" {
		return nil, fmt.Errorf("book removed")
	}
	return &core.Book{ID: bookID, Title: "Tide", Author: "Qin"}, nil
}

func (stubSource) Directory(ctx context.Context, bookID string) ([]core.ChapterStub, error) {
	return []core.ChapterStub{{ID: "a", Title: "Dawn"}, {ID: "b", Title: "Storm"}, {ID: "c", Title: "Storm Ends"}}, nil
}

func (stubSource) BookLayout(ctx context.Context, bookID string) (*core.BookLayout, error) {
	return nil, fmt.Errorf("unused")
}

func (stubSource) ChapterContent(ctx context.Context, itemID string) (string, error) {
	return "text " + itemID, nil
}

func (stubSource) BulkContent(ctx context.Context, bookID string) (map[string]string, error) {
	return nil, fmt.Errorf("no bulk")
}

func (stubSource) Endpoints() []core.Endpoint {
	return []core.Endpoint{{Name: "main", Address: "http://main.example", Listed: true}}
}

func (s stubSource) ListedEndpoints() []core.Endpoint { return s.Endpoints() }

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Download.OutputDir = dir
	cfg.History.Path = filepath.Join(dir, "history.db")

	opts := cfg.EngineOptions()
	e, err := engine.NewWithSource(stubSource{}, opts, nil)
	require.NoError(t, err)
	SetEngine(e, cfg)
	t.Cleanup(func() {
		_ = e.Shutdown()
		SetEngine(nil, nil)
		apiMode = false
	})
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommandJSON(t *testing.T) {
	setup(t)

	out, err := run(t, "search", "moon", "--rank", "--json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Results []core.Book `json:"results"`
			HasMore bool        `json:"has_more"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data.Results, 2)
	assert.Equal(t, "moon", resp.Data.Results[0].Title)
	assert.True(t, resp.Data.HasMore)
}

func TestInfoCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "info", "42", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Tide")
	assert.Contains(t, out, "Qin")
}

func TestInfoCommandFailure(t *testing.T) {
	setup(t)

	out, err := run(t, "info", "gone", "--json")
	require.Error(t, err)
	assert.Contains(t, out, `"status":"error"`)
	assert.Contains(t, out, "book removed")
}

func TestChaptersCommandMatch(t *testing.T) {
	setup(t)

	out, err := run(t, "chapters", "42", "--match", "storm", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Chapters (2 of 3)")
	assert.Contains(t, out, "Storm Ends")
	assert.NotContains(t, out, "Dawn")
}

func TestSourcesCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "sources", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "http://main.example")
}

func TestDownloadAndHistory(t *testing.T) {
	dir := setup(t)

	out, err := run(t, "download", "42", "--start", "1", "--format", "txt", "--json")
	require.NoError(t, err)

	var resp struct {
		Status string               `json:"status"`
		Data   core.DownloadOutcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 2, resp.Data.Chapters)
	assert.Equal(t, dir, filepath.Dir(resp.Data.FilePath))

	data, err := os.ReadFile(resp.Data.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Storm Ends")
	assert.NotContains(t, string(data), "Dawn")

	out, err = run(t, "history", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Tide")
	assert.Contains(t, out, "2/2")
}
