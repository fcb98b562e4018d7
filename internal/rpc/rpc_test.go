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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/rpc/jsonrpc"
	"strings"
	"sync"
	"testing"

	"Folio/pkg/core"
	"Folio/pkg/engine"
	"Folio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) ID() string   { return "stub" }
func (stubSource) Name() string { return "Stub Novels" }

func (stubSource) Search(ctx context.Context, keyword string, offset int) (*core.SearchResult, error) {
	return &core.SearchResult{Books: []core.Book{{ID: "1", Title: keyword}}, Total: 1}, nil
}

func (stubSource) BookDetail(ctx context.Context, bookID string) (*core.Book, error) {
	if bookID == "gone" {
		return nil, errors.Track(errors.ErrBookRemoved).AsNotFound().Error()
	}
	return &core.Book{ID: bookID, Title: "Tide", Author: "Qin"}, nil
}

func (stubSource) Directory(ctx context.Context, bookID string) ([]core.ChapterStub, error) {
	return []core.ChapterStub{{ID: "a", Title: "Dawn"}, {ID: "b", Title: "Dusk"}}, nil
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
	return []core.Endpoint{{Name: "main", Address: "http://main.example", Listed: true}}
}

func (s stubSource) ListedEndpoints() []core.Endpoint { return s.Endpoints() }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newClient(t *testing.T, events *syncBuffer) *clientConn {
	t.Helper()
	e, err := engine.NewWithSource(stubSource{}, engine.Options{}, nil)
	require.NoError(t, err)

	server, err := NewServer(e, "1.2.3", events)
	require.NoError(t, err)

	serverConn, clientSide := net.Pipe()
	go Serve(server, serverConn)

	client := jsonrpc.NewClient(clientSide)
	t.Cleanup(func() { _ = client.Close() })
	return &clientConn{call: client.Call}
}

type clientConn struct {
	call func(method string, args interface{}, reply interface{}) error
}

func TestVersionAndSources(t *testing.T) {
	c := newClient(t, &syncBuffer{})

	var version VersionInfo
	require.NoError(t, c.call("Version.Get", struct{}{}, &version))
	assert.Equal(t, "1.2.3", version.Version)
	assert.Equal(t, "disabled", version.LogFile)

	var sources SourceInfo
	require.NoError(t, c.call("Sources.List", struct{}{}, &sources))
	assert.Equal(t, "stub", sources.ID)
	require.Len(t, sources.Endpoints, 1)
}

func TestSearchAndBook(t *testing.T) {
	c := newClient(t, &syncBuffer{})

	var result core.SearchResult
	require.NoError(t, c.call("Search.Search", SearchRequest{Query: "moon"}, &result))
	require.Len(t, result.Books, 1)
	assert.Equal(t, "moon", result.Books[0].Title)

	var book core.Book
	require.NoError(t, c.call("Book.Detail", BookRequest{BookID: "7"}, &book))
	assert.Equal(t, "Tide", book.Title)

	var chapters []core.ChapterRef
	require.NoError(t, c.call("Book.Chapters", BookRequest{BookID: "7", Match: "dusk"}, &chapters))
	require.Len(t, chapters, 1)
	assert.Equal(t, 1, chapters[0].Index)
}

func TestErrorsCarryCode(t *testing.T) {
	c := newClient(t, &syncBuffer{})

	var book core.Book
	err := c.call("Book.Detail", BookRequest{BookID: "gone"}, &book)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("RPC Error %d", ErrCodeResourceNotFound))

	err = c.call("Search.Search", SearchRequest{Query: " "}, &core.SearchResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("RPC Error %d", ErrCodeInvalidInput))
}

func TestDownloadEmitsProgress(t *testing.T) {
	events := &syncBuffer{}
	c := newClient(t, events)

	var outcome core.DownloadOutcome
	req := core.DownloadRequest{BookID: "7", OutputDir: t.TempDir(), Format: core.FormatText}
	require.NoError(t, c.call("Download.Start", req, &outcome))
	assert.True(t, outcome.Success, outcome.Error)
	assert.Equal(t, core.ModeBulk, outcome.Mode)

	var last Event
	count := 0
	scanner := bufio.NewScanner(strings.NewReader(events.String()))
	for scanner.Scan() {
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &last))
		assert.Equal(t, core.ProgressChannel, last.Event)
		count++
	}
	assert.Greater(t, count, 3)
	payload := last.Payload.(map[string]interface{})
	assert.Equal(t, float64(100), payload["current"])
}

func TestNewErrorUntracked(t *testing.T) {
	rpcErr := NewError(fmt.Errorf("plain"), "Book", "Detail", map[string]interface{}{"book_id": "1"})
	assert.Equal(t, ErrCodeUnknownError, rpcErr.Code)
	assert.Equal(t, "1", rpcErr.Data["book_id"])
}
