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

package fanqie

import (
	"encoding/json"
	"fmt"

	"Folio/pkg/errors"
)

// shape is one known layout of a response payload. extract reports false
// when the payload does not have this layout.
type shape[T any] struct {
	name    string
	extract func(json.RawMessage) (T, bool)
}

// matchShape tries shapes in declared order and returns the first match.
func matchShape[T any](raw json.RawMessage, shapes ...shape[T]) (T, string, error) {
	for _, s := range shapes {
		if v, ok := s.extract(raw); ok {
			return v, s.name, nil
		}
	}
	var zero T
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.name
	}
	return zero, "", fmt.Errorf("%w (tried %v)", errors.ErrUnknownShape, names)
}

// bookRecord holds every book field any endpoint is known to send.
type bookRecord struct {
	BookID         optString `json:"book_id"`
	BookName       optString `json:"book_name"`
	Author         optString `json:"author"`
	ThumbURL       optString `json:"thumb_url"`
	CoverURL       optString `json:"cover_url"`
	Abstract       optString `json:"abstract"`
	WordNumber     optInt    `json:"word_number"`
	WordCount      optInt    `json:"word_count"`
	SerialCount    optInt    `json:"serial_count"`
	ChapterNumber  optInt    `json:"chapter_number"`
	ChapterCount   optInt    `json:"chapter_count"`
	Category       optString `json:"category"`
	CreationStatus optString `json:"creation_status"`
	Message        optString `json:"message"`
}

func decodeRecord(raw json.RawMessage) (bookRecord, bool) {
	var rec bookRecord
	if !isObject(raw) || json.Unmarshal(raw, &rec) != nil {
		return bookRecord{}, false
	}
	return rec, true
}

// searchItem is one hit of a search tab.
type searchItem struct {
	id     optString
	record bookRecord
}

// Search hits either embed the book in a book_data array or carry the book
// fields themselves.
var searchItemShapes = []shape[searchItem]{
	{name: "embedded", extract: func(raw json.RawMessage) (searchItem, bool) {
		var item struct {
			BookID   optString       `json:"book_id"`
			BookData json.RawMessage `json:"book_data"`
		}
		if !isObject(raw) || json.Unmarshal(raw, &item) != nil {
			return searchItem{}, false
		}
		data, ok := asArray(item.BookData)
		if !ok || len(data) == 0 {
			return searchItem{}, false
		}
		rec, ok := decodeRecord(data[0])
		if !ok {
			return searchItem{}, false
		}
		return searchItem{id: item.BookID, record: rec}, true
	}},
	{name: "flat", extract: func(raw json.RawMessage) (searchItem, bool) {
		rec, ok := decodeRecord(raw)
		if !ok {
			return searchItem{}, false
		}
		return searchItem{id: rec.BookID, record: rec}, true
	}},
}

// Detail payloads are either wrapped in a second data object or flat.
var detailShapes = []shape[bookRecord]{
	{name: "nested", extract: func(raw json.RawMessage) (bookRecord, bool) {
		var outer struct {
			Data json.RawMessage `json:"data"`
		}
		if !isObject(raw) || json.Unmarshal(raw, &outer) != nil {
			return bookRecord{}, false
		}
		return decodeRecord(outer.Data)
	}},
	{name: "flat", extract: decodeRecord},
}

// Chapter content is either an object with a content field or a bare string.
var contentShapes = []shape[string]{
	{name: "object", extract: func(raw json.RawMessage) (string, bool) {
		var obj struct {
			Content optString `json:"content"`
		}
		if !isObject(raw) || json.Unmarshal(raw, &obj) != nil || !obj.Content.Set {
			return "", false
		}
		return obj.Content.Value, true
	}},
	{name: "text", extract: func(raw json.RawMessage) (string, bool) {
		var s optString
		if err := json.Unmarshal(raw, &s); err != nil || !s.Set {
			return "", false
		}
		return s.Value, true
	}},
}
