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
	"bytes"
	"encoding/json"
)

// optString is a JSON string field that is treated as absent when the value
// has any other JSON type.
type optString struct {
	Value string
	Set   bool
}

func (s *optString) UnmarshalJSON(b []byte) error {
	var v string
	if bytes.Equal(b, []byte("null")) || json.Unmarshal(b, &v) != nil {
		*s = optString{}
		return nil
	}
	*s = optString{Value: v, Set: true}
	return nil
}

// optInt is a JSON integer field that is treated as absent when the value is
// not an integral number.
type optInt struct {
	Value int64
	Set   bool
}

func (n *optInt) UnmarshalJSON(b []byte) error {
	var v json.Number
	if bytes.Equal(b, []byte("null")) || len(b) == 0 || b[0] == '"' || json.Unmarshal(b, &v) != nil {
		*n = optInt{}
		return nil
	}
	i, err := v.Int64()
	if err != nil {
		*n = optInt{}
		return nil
	}
	*n = optInt{Value: i, Set: true}
	return nil
}

type optBool struct {
	Value bool
	Set   bool
}

func (o *optBool) UnmarshalJSON(b []byte) error {
	var v bool
	if bytes.Equal(b, []byte("null")) || json.Unmarshal(b, &v) != nil {
		*o = optBool{}
		return nil
	}
	*o = optBool{Value: v, Set: true}
	return nil
}

// firstString returns the first set field, or def.
func firstString(def string, fields ...optString) string {
	for _, f := range fields {
		if f.Set {
			return f.Value
		}
	}
	return def
}

// firstInt returns a pointer to the first set field, or nil.
func firstInt(fields ...optInt) *int64 {
	for _, f := range fields {
		if f.Set {
			v := f.Value
			return &v
		}
	}
	return nil
}

func (s optString) ptr() *string {
	if !s.Set {
		return nil
	}
	v := s.Value
	return &v
}

// isObject reports whether raw holds a JSON object.
func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// asArray decodes raw as a JSON array, reporting false for any other type.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}
