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

package parser

import "strings"

// ParagraphSeparator separates paragraphs in normalized chapter text.
const ParagraphSeparator = "\n\n"

// Normalize converts raw chapter markup into plain paragraphs separated by
// a blank line. Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	text := lineBreakPattern.ReplaceAllString(raw, "\n")
	text = paragraphOpenPattern.ReplaceAllString(text, "\n")
	text = paragraphClosePattern.ReplaceAllString(text, "\n")
	text = tagPattern.ReplaceAllString(text, "")

	text = horizontalSpacePattern.ReplaceAllString(text, " ")
	text = leadingSpacePattern.ReplaceAllString(text, "\n")
	text = trailingSpacePattern.ReplaceAllString(text, "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	paragraphs := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, ParagraphSeparator)
}

// Paragraphs splits normalized text back into its paragraphs.
func Paragraphs(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, ParagraphSeparator)
}
