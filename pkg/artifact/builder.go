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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"Folio/pkg/core"
	"Folio/pkg/errors"
)

// Builder turns a book and its chapters into a file inside dir and returns
// the path of that file.
type Builder interface {
	Format() core.Format
	Build(book *core.Book, chapters []core.Chapter, dir string) (string, error)
}

// Registry maps formats to builders
type Registry struct {
	builders map[core.Format]Builder
	fallback core.Format
}

// NewRegistry creates a Registry. Lookups of unknown formats resolve to the
// first builder given.
func NewRegistry(builders ...Builder) *Registry {
	r := &Registry{builders: make(map[core.Format]Builder, len(builders))}
	for i, b := range builders {
		if i == 0 {
			r.fallback = b.Format()
		}
		r.builders[b.Format()] = b
	}
	return r
}

// DefaultRegistry holds the text and EPUB builders, text being the fallback.
func DefaultRegistry(language string) *Registry {
	return NewRegistry(NewTextBuilder(), NewEPUBBuilder(language))
}

// Get returns the builder for format, or the fallback builder.
func (r *Registry) Get(format core.Format) (Builder, error) {
	if b, ok := r.builders[format]; ok {
		return b, nil
	}
	if b, ok := r.builders[r.fallback]; ok {
		return b, nil
	}
	return nil, errors.Newf("no artifact builder for format %q", format).AsValidation().Error()
}

// Formats lists the registered formats.
func (r *Registry) Formats() []core.Format {
	formats := make([]core.Format, 0, len(r.builders))
	for f := range r.builders {
		formats = append(formats, f)
	}
	return formats
}

// writeAtomic writes through a temporary file in the destination directory
// and renames it into place, so a failed write leaves nothing behind.
func writeAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Track(err).WithFileContext(dir, "mkdir").AsFileSystem().Error()
	}

	tmp, err := os.CreateTemp(dir, ".folio-*.tmp")
	if err != nil {
		return errors.Track(err).WithFileContext(dir, "create").AsFileSystem().Error()
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Track(err).WithFileContext(path, "write").AsFileSystem().Error()
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Track(err).WithFileContext(path, "close").AsFileSystem().Error()
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Track(err).WithFileContext(path, "rename").AsFileSystem().Error()
	}
	return nil
}

func outputPath(book *core.Book, format core.Format, dir string) string {
	return filepath.Join(dir, FileName(book, format))
}

// FileName returns the sanitized artifact file name for a book.
func FileName(book *core.Book, format core.Format) string {
	return SanitizeFilename(fmt.Sprintf("%s - %s", book.Title, book.Author)) + "." + string(format)
}
