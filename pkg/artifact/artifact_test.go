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

package artifact

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"Folio/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBook() (*core.Book, []core.Chapter) {
	book := &core.Book{ID: "42", Title: "Stars/Sea", Author: "Lin", Description: "A voyage.\nAcross <seas>."}
	chapters := []core.Chapter{
		{ID: "a", Title: "Chapter 1", Text: "First & foremost.\n\nSecond line.", Index: 0},
		{ID: "c", Title: "Chapter 3", Text: "Third.", Index: 2},
	}
	return book, chapters
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{`a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"  padded  ", "padded"},
		{"", "untitled"},
		{"中文书名", "中文书名"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}

	long := SanitizeFilename(strings.Repeat("书", 100))
	assert.LessOrEqual(t, len(long), maxNameBytes)
	assert.True(t, strings.HasPrefix(strings.Repeat("书", 100), long), "truncated on a rune boundary")
}

func TestFileName(t *testing.T) {
	book, _ := sampleBook()
	assert.Equal(t, "Stars_Sea - Lin.txt", FileName(book, core.FormatText))
	assert.Equal(t, "Stars_Sea - Lin.epub", FileName(book, core.FormatEPUB))
}

func TestRegistryFallsBackToText(t *testing.T) {
	r := DefaultRegistry("en")

	b, err := r.Get(core.FormatEPUB)
	require.NoError(t, err)
	assert.Equal(t, core.FormatEPUB, b.Format())

	b, err = r.Get(core.Format("pdf"))
	require.NoError(t, err)
	assert.Equal(t, core.FormatText, b.Format())

	_, err = NewRegistry().Get(core.FormatText)
	assert.Error(t, err)
}

func TestTextBuilder(t *testing.T) {
	book, chapters := sampleBook()
	dir := t.TempDir()

	path, err := NewTextBuilder().Build(book, chapters, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Stars_Sea - Lin.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "Stars/Sea\nAuthor: Lin\n\nDescription:\nA voyage."))
	assert.Contains(t, text, strings.Repeat("=", 50))
	first := strings.Index(text, "Chapter 1")
	third := strings.Index(text, "Chapter 3")
	assert.True(t, first > 0 && third > first)
	assert.Contains(t, text, "First & foremost.\n\nSecond line.")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestTextBuilderWithoutDescription(t *testing.T) {
	book, chapters := sampleBook()
	book.Description = ""

	path, err := NewTextBuilder().Build(book, chapters, t.TempDir())
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Description:")
}

func readZip(t *testing.T, path string) (*zip.ReadCloser, map[string]string) {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = zr.Close() })

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		files[f.Name] = string(data)
	}
	return zr, files
}

func TestEPUBBuilder(t *testing.T) {
	book, chapters := sampleBook()
	builder := NewEPUBBuilder("en")
	builder.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	path, err := builder.Build(book, chapters, t.TempDir())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".epub"))

	zr, files := readZip(t, path)
	require.NotEmpty(t, zr.File)
	assert.Equal(t, "mimetype", zr.File[0].Name)
	assert.Equal(t, zip.Store, zr.File[0].Method)
	assert.Equal(t, epubMimetype, files["mimetype"])
	assert.Contains(t, files["META-INF/container.xml"], "OEBPS/content.opf")

	chapter1 := files["OEBPS/chapter_1.xhtml"]
	assert.Contains(t, chapter1, "<h1>Chapter 1</h1>")
	assert.Contains(t, chapter1, "<p>First &amp; foremost.</p>")
	assert.Contains(t, chapter1, "<p>Second line.</p>")
	assert.Contains(t, chapter1, `<meta charset="utf-8"/>`)
	assert.Contains(t, files["OEBPS/chapter_2.xhtml"], "<p>Third.</p>")

	intro := files["OEBPS/intro.xhtml"]
	assert.Contains(t, intro, "<p>Across &lt;seas&gt;.</p>")

	var pkg opfPackage
	require.NoError(t, xml.Unmarshal([]byte(files["OEBPS/content.opf"]), &pkg))
	assert.Equal(t, "3.0", pkg.Version)
	require.Len(t, pkg.Spine.Items, 3)
	assert.Equal(t, "intro", pkg.Spine.Items[0].IDRef)
	assert.Equal(t, "chapter_2", pkg.Spine.Items[2].IDRef)
	assert.Contains(t, files["OEBPS/content.opf"], "<dc:title>Stars/Sea</dc:title>")
	assert.Contains(t, files["OEBPS/content.opf"], "2025-03-01T12:00:00Z")

	assert.Contains(t, files["OEBPS/nav.xhtml"], `href="chapter_2.xhtml"`)
	assert.Contains(t, files["OEBPS/toc.ncx"], `playOrder="3"`)
}

func TestBookIdentifierIsStable(t *testing.T) {
	book, _ := sampleBook()
	assert.Equal(t, bookIdentifier(book), bookIdentifier(book))
	assert.NotEqual(t, bookIdentifier(book), bookIdentifier(&core.Book{ID: "43"}))
}
