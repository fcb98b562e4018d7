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

package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// APIResponse represents a standardized API response structure
type APIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewAPIResponse builds a response. A non-nil err forces the "error" status.
func NewAPIResponse(status string, data interface{}, err error) APIResponse {
	response := APIResponse{Status: status}
	if err != nil {
		response.Status = "error"
		response.Error = err.Error()
	} else if data != nil {
		response.Data = data
	}
	return response
}

// WriteJSON writes a standardized API response as one line to w
func WriteJSON(w io.Writer, status string, data interface{}, err error) error {
	jsonData, jsonErr := json.Marshal(NewAPIResponse(status, data, err))
	if jsonErr != nil {
		return jsonErr
	}
	_, werr := fmt.Fprintln(w, string(jsonData))
	return werr
}

// OutputJSON marshals and outputs a standardized API response on stdout
func OutputJSON(status string, data interface{}, err error) {
	if werr := WriteJSON(os.Stdout, status, data, err); werr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", werr)
	}
}
