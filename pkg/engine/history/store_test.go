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

package history

import (
	"path/filepath"
	"testing"

	"Folio/pkg/core"
	"Folio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	return s
}

func TestRecordAndGet(t *testing.T) {
	s := openTemp(t)

	outcome := &core.DownloadOutcome{Success: true, BookID: "42", BookName: "Stars", Chapters: 3}
	require.NoError(t, s.Record(outcome))
	require.NotEmpty(t, outcome.RunID)

	got, err := s.Get(outcome.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Stars", got.BookName)
	assert.Equal(t, 3, got.Chapters)

	_, err = s.Get("missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestListNewestFirst(t *testing.T) {
	s := openTemp(t)

	for _, id := range []string{"1", "2", "1", "3"} {
		require.NoError(t, s.Record(&core.DownloadOutcome{RunID: NewRunID(), BookID: id}))
	}

	all, err := s.List(0, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "3", all[0].BookID)
	assert.Equal(t, "1", all[3].BookID)

	limited, err := s.List(2, "")
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	forBook, err := s.List(0, "1")
	require.NoError(t, err)
	assert.Len(t, forBook, 2)

	require.NoError(t, s.Clear())
	all, err = s.List(0, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEmptyHistoryBeforeFirstWrite(t *testing.T) {
	s := openTemp(t)

	all, err := s.List(0, "")
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.Get("nothing")
	assert.True(t, errors.IsNotFound(err))
}

func TestStoresShareOneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := Open(path)
	require.NoError(t, err)
	second, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, first.Record(&core.DownloadOutcome{BookID: "a"}))
	require.NoError(t, second.Record(&core.DownloadOutcome{BookID: "b"}))
	require.NoError(t, first.Record(&core.DownloadOutcome{BookID: "c"}))

	runs, err := second.List(0, "")
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].BookID)
	assert.Equal(t, "a", runs[2].BookID)
}
