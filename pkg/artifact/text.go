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
	"bufio"
	"fmt"
	"io"
	"strings"

	"Folio/pkg/core"
)

// TextBuilder writes a plain UTF-8 text file
type TextBuilder struct{}

func NewTextBuilder() *TextBuilder { return &TextBuilder{} }

func (b *TextBuilder) Format() core.Format { return core.FormatText }

// Build writes the title block followed by every chapter in the given order.
func (b *TextBuilder) Build(book *core.Book, chapters []core.Chapter, dir string) (string, error) {
	path := outputPath(book, core.FormatText, dir)

	err := writeAtomic(path, func(w io.Writer) error {
		return writeText(w, book, chapters)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeText(w io.Writer, book *core.Book, chapters []core.Chapter) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, book.Title)
	fmt.Fprintf(bw, "Author: %s\n", book.Author)
	if book.Description != "" {
		fmt.Fprintf(bw, "\nDescription:\n%s\n", book.Description)
	}
	fmt.Fprintf(bw, "\n%s\n\n", strings.Repeat("=", 50))

	for _, ch := range chapters {
		fmt.Fprintf(bw, "\n%s\n\n", ch.Title)
		fmt.Fprintf(bw, "%s\n\n", ch.Text)
	}

	return bw.Flush()
}
