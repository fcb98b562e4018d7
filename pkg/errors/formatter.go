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

package errors

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

//go:embed suggestions.json
var suggestionFS embed.FS

// SuggestionsMap holds suggestions for different error categories
type SuggestionsMap map[string][]string

// CLIFormatter provides user-friendly error formatting for command-line interface
type CLIFormatter struct {
	// ShowDebugInfo controls whether to show context and root cause details
	ShowDebugInfo bool

	// ShowFunctionChain controls whether to show the function call chain
	ShowFunctionChain bool

	Suggestions SuggestionsMap

	ErrorStyle       *color.Color
	NetworkStyle     *color.Color
	NotFoundStyle    *color.Color
	DownloadStyle    *color.Color
	HeaderStyle      *color.Color
	SectionStyle     *color.Color
	DetailLabelStyle *color.Color
	DetailValueStyle *color.Color
	HighlightStyle   *color.Color
	SecondaryStyle   *color.Color
}

// NewCLIFormatter creates a new CLI error formatter with default settings
func NewCLIFormatter() *CLIFormatter {
	f := &CLIFormatter{}
	f.initStyles()
	f.loadSuggestions()
	return f
}

// NewDebugCLIFormatter creates a CLI formatter with debug information enabled
func NewDebugCLIFormatter() *CLIFormatter {
	f := NewCLIFormatter()
	f.ShowDebugInfo = true
	f.ShowFunctionChain = true
	return f
}

func (f *CLIFormatter) initStyles() {
	f.ErrorStyle = color.New(color.FgRed)
	f.NetworkStyle = color.New(color.FgYellow)
	f.NotFoundStyle = color.New(color.FgCyan)
	f.DownloadStyle = color.New(color.FgMagenta)
	f.HeaderStyle = color.New(color.Bold, color.FgCyan)
	f.SectionStyle = color.New(color.Underline, color.FgHiCyan)
	f.DetailLabelStyle = color.New(color.FgHiBlue)
	f.DetailValueStyle = color.New(color.FgWhite)
	f.HighlightStyle = color.New(color.FgMagenta)
	f.SecondaryStyle = color.New(color.FgHiBlack)
}

func (f *CLIFormatter) loadSuggestions() {
	f.Suggestions = make(SuggestionsMap)
	data, err := suggestionFS.ReadFile("suggestions.json")
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, &f.Suggestions); err != nil {
		f.Suggestions = make(SuggestionsMap)
	}
}

// Format formats an error for CLI display
func (f *CLIFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var tracked *TrackedError
	if !As(err, &tracked) {
		return fmt.Sprintf("%s %s", f.HeaderStyle.Sprint("[ERROR]"), f.ErrorStyle.Sprint(err.Error()))
	}

	parts := []string{f.FormatSimple(err)}

	if guidance := f.guidance(tracked); guidance != "" {
		parts = append(parts, "", guidance)
	}

	if f.ShowFunctionChain && len(tracked.CallChain) > 0 {
		parts = append(parts, "", f.formatFunctionChain(tracked))
	}

	if f.ShowDebugInfo {
		parts = append(parts, "", f.formatDebugInfo(tracked))
	}

	return strings.Join(parts, "\n")
}

// FormatSimple provides a one-line error format for simple display
func (f *CLIFormatter) FormatSimple(err error) string {
	if err == nil {
		return ""
	}

	var tracked *TrackedError
	if !As(err, &tracked) {
		return err.Error()
	}

	prefix := f.HeaderStyle.Sprint(categoryPrefix(tracked.Category))
	return fmt.Sprintf("%s %s", prefix, f.categoryStyle(tracked.Category).Sprint(err.Error()))
}

func (f *CLIFormatter) guidance(tracked *TrackedError) string {
	category := string(tracked.Category)
	errStr := ""
	if tracked.RootCause != nil {
		errStr = strings.ToLower(tracked.RootCause.Error())
	}

	var suggestions []string
	switch {
	case category == "network" && strings.Contains(errStr, "no such host"):
		suggestions = f.Suggestions["network_no_such_host"]
	case category == "network" && strings.Contains(errStr, "connection refused"):
		suggestions = f.Suggestions["network_connection_refused"]
	case category == "network" && strings.Contains(errStr, "timeout"):
		suggestions = f.Suggestions["network_timeout"]
	case category == "filesystem" && strings.Contains(errStr, "permission"):
		suggestions = f.Suggestions["file_system_permission"]
	case category == "filesystem" && strings.Contains(errStr, "no space"):
		suggestions = f.Suggestions["file_system_no_space"]
	}
	if len(suggestions) == 0 {
		suggestions = f.Suggestions[category]
	}
	if len(suggestions) == 0 {
		return ""
	}

	lines := []string{f.SectionStyle.Sprint("Troubleshooting suggestions:")}
	for _, s := range suggestions {
		lines = append(lines, "  - "+f.DetailValueStyle.Sprint(s))
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatFunctionChain(tracked *TrackedError) string {
	parts := []string{f.SectionStyle.Sprint("Function Call Chain:")}
	for i, call := range tracked.CallChain {
		parts = append(parts, fmt.Sprintf("  %d. %s() at %s:%d",
			i+1, f.HighlightStyle.Sprint(call.ShortName),
			f.SecondaryStyle.Sprint(call.File), call.Line))
	}
	return strings.Join(parts, "\n")
}

func (f *CLIFormatter) formatDebugInfo(tracked *TrackedError) string {
	parts := []string{f.SectionStyle.Sprint("Debug Information")}

	if tracked.RootCause != nil {
		parts = append(parts, fmt.Sprintf("%s %s",
			f.DetailLabelStyle.Sprint("Root Cause:"),
			f.DetailValueStyle.Sprint(tracked.RootCause.Error())))
	}

	keys := make([]string, 0, len(tracked.Context))
	for k := range tracked.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("  %s %s",
			f.DetailLabelStyle.Sprintf("%s:", k),
			f.DetailValueStyle.Sprint(tracked.Context[k])))
	}

	return strings.Join(parts, "\n")
}

func (f *CLIFormatter) categoryStyle(category ErrorCategory) *color.Color {
	switch category {
	case CategoryNetwork, CategoryTimeout, CategoryRateLimit:
		return f.NetworkStyle
	case CategoryNotFound:
		return f.NotFoundStyle
	case CategoryDownload:
		return f.DownloadStyle
	default:
		return f.ErrorStyle
	}
}

func categoryPrefix(category ErrorCategory) string {
	switch category {
	case CategoryNetwork:
		return "[NETWORK]"
	case CategoryNotFound:
		return "[NOT FOUND]"
	case CategoryParsing:
		return "[PARSE]"
	case CategoryValidation:
		return "[INVALID]"
	case CategoryFileSystem:
		return "[FILE]"
	case CategoryDownload:
		return "[DOWNLOAD]"
	case CategoryTimeout:
		return "[TIMEOUT]"
	case CategoryProvider:
		return "[PROVIDER]"
	default:
		return "[ERROR]"
	}
}
