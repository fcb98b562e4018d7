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

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"Folio/pkg/core"
	pkgerrors "Folio/pkg/errors"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Formatter handles all CLI output formatting
type Formatter struct {
	// Writer is where the formatted output will be written
	Writer io.Writer

	// DisableColor disables colorized output
	DisableColor bool

	HeaderStyle      *color.Color
	TitleStyle       *color.Color
	SuccessStyle     *color.Color
	ErrorStyle       *color.Color
	WarningStyle     *color.Color
	InfoStyle        *color.Color
	HighlightStyle   *color.Color
	SecondaryStyle   *color.Color
	SectionStyle     *color.Color
	DetailLabelStyle *color.Color
	DetailValueStyle *color.Color
	IDStyle          *color.Color
	PathStyle        *color.Color
	NumberStyle      *color.Color
}

// NewFormatter creates a new CLI formatter writing to stdout
func NewFormatter() *Formatter {
	return NewWriterFormatter(os.Stdout, false)
}

// NewWriterFormatter creates a formatter writing to w
func NewWriterFormatter(w io.Writer, disableColor bool) *Formatter {
	f := &Formatter{Writer: w, DisableColor: disableColor}
	f.initStyles()
	return f
}

func (f *Formatter) initStyles() {
	f.HeaderStyle = color.New(color.Bold, color.FgCyan)
	f.TitleStyle = color.New(color.Bold, color.FgWhite)
	f.SuccessStyle = color.New(color.FgGreen)
	f.ErrorStyle = color.New(color.FgRed)
	f.WarningStyle = color.New(color.FgYellow)
	f.InfoStyle = color.New(color.FgBlue)
	f.HighlightStyle = color.New(color.FgMagenta)
	f.SecondaryStyle = color.New(color.FgHiBlack)
	f.SectionStyle = color.New(color.Underline, color.FgHiCyan)
	f.DetailLabelStyle = color.New(color.FgHiBlue)
	f.DetailValueStyle = color.New(color.FgWhite)
	f.IDStyle = color.New(color.FgHiMagenta)
	f.PathStyle = color.New(color.FgHiGreen)
	f.NumberStyle = color.New(color.FgHiYellow)

	if f.DisableColor {
		for _, c := range []*color.Color{
			f.HeaderStyle, f.TitleStyle, f.SuccessStyle, f.ErrorStyle, f.WarningStyle,
			f.InfoStyle, f.HighlightStyle, f.SecondaryStyle, f.SectionStyle,
			f.DetailLabelStyle, f.DetailValueStyle, f.IDStyle, f.PathStyle, f.NumberStyle,
		} {
			c.DisableColor()
		}
	}
}

// PrintHeader prints a header section
func (f *Formatter) PrintHeader(text string) {
	_, _ = f.HeaderStyle.Fprintln(f.Writer, text)
	f.PrintDivider()
}

// PrintTitle prints a title
func (f *Formatter) PrintTitle(text string) {
	_, _ = f.TitleStyle.Fprintln(f.Writer, text)
}

// PrintSuccess prints a success message
func (f *Formatter) PrintSuccess(text string) {
	_, _ = f.SuccessStyle.Fprintln(f.Writer, text)
}

// PrintError prints an error message
func (f *Formatter) PrintError(text string) {
	_, _ = f.ErrorStyle.Fprintln(f.Writer, text)
}

// PrintWarning prints a warning message
func (f *Formatter) PrintWarning(text string) {
	_, _ = f.WarningStyle.Fprintln(f.Writer, text)
}

// PrintInfo prints an informational message
func (f *Formatter) PrintInfo(text string) {
	_, _ = f.InfoStyle.Fprintln(f.Writer, text)
}

// PrintDetail prints a labeled detail
func (f *Formatter) PrintDetail(label, value string) {
	_, _ = f.DetailLabelStyle.Fprintf(f.Writer, "%s: ", label)
	_, _ = f.DetailValueStyle.Fprintln(f.Writer, value)
}

// PrintDivider prints a horizontal divider
func (f *Formatter) PrintDivider() {
	_, _ = fmt.Fprintln(f.Writer, strings.Repeat("-", 80))
}

// PrintSection prints a section header
func (f *Formatter) PrintSection(text string) {
	_, _ = fmt.Fprintln(f.Writer, "")
	_, _ = f.SectionStyle.Fprintln(f.Writer, text)
	_, _ = fmt.Fprintln(f.Writer, "")
}

// PrintNewLine prints a blank line
func (f *Formatter) PrintNewLine() {
	_, _ = fmt.Fprintln(f.Writer, "")
}

// FormatID formats an ID string
func (f *Formatter) FormatID(id string) string {
	return f.IDStyle.Sprint(id)
}

// FormatPath formats a file path
func (f *Formatter) FormatPath(path string) string {
	return f.PathStyle.Sprint(path)
}

// FormatNumber formats a number with styling
func (f *Formatter) FormatNumber(num interface{}) string {
	return f.NumberStyle.Sprintf("%v", num)
}

// FormatOptional formats an optional string, showing "Unknown" when nil
func (f *Formatter) FormatOptional(s *string) string {
	if s == nil || *s == "" {
		return f.SecondaryStyle.Sprint("Unknown")
	}
	return *s
}

// FormatCount formats an optional count, showing "Unknown" when nil
func (f *Formatter) FormatCount(n *int64) string {
	if n == nil {
		return f.SecondaryStyle.Sprint("Unknown")
	}
	return f.FormatNumber(*n)
}

// PrintTable prints data in a table format
func (f *Formatter) PrintTable(headers []string, data [][]string) {
	table := tablewriter.NewTable(f.Writer)
	table.Configure(func(tableConfig *tablewriter.Config) {
		tableConfig.Header.Alignment.Global = tw.AlignLeft
		tableConfig.Row.Alignment.Global = tw.AlignLeft
		tableConfig.Header.Padding.Global = tw.Padding{Left: " ", Right: " "}
		tableConfig.Row.Padding.Global = tw.Padding{Left: " ", Right: " "}
	})

	table.Header(headers)
	if err := table.Bulk(data); err != nil {
		return
	}
	_ = table.Render()
}

// HandleError prints err and reports whether there was one
func (f *Formatter) HandleError(err error) bool {
	if err == nil {
		return false
	}

	var tracked *pkgerrors.TrackedError
	if pkgerrors.As(err, &tracked) {
		f.PrintError(pkgerrors.NewCLIFormatter().Format(err))
	} else {
		f.PrintError(fmt.Sprintf("[ERROR] %s", err.Error()))
	}
	return true
}

// PrintEndpointList prints the mirrors the source may contact
func (f *Formatter) PrintEndpointList(sourceName string, endpoints []core.Endpoint) {
	f.PrintHeader(fmt.Sprintf("%s Mirrors", sourceName))

	if len(endpoints) == 0 {
		f.PrintWarning("No mirrors configured.")
		return
	}

	rows := make([][]string, len(endpoints))
	for i, ep := range endpoints {
		rows[i] = []string{strconv.Itoa(i + 1), ep.Name, ep.Address}
	}
	f.PrintTable([]string{"#", "Name", "Address"}, rows)
	f.PrintInfo("Mirrors are tried in the order shown.")
}

// PrintVersionInfo formats and prints version information
func (f *Formatter) PrintVersionInfo(version, goVersion, os, arch, logFile string) {
	f.PrintHeader("Folio Version Information")

	f.PrintDetail("Version", version)
	f.PrintDetail("Go version", goVersion)
	f.PrintDetail("OS/Arch", fmt.Sprintf("%s/%s", os, arch))

	if logFile != "" {
		f.PrintDetail("Log file", f.FormatPath(logFile))
	} else {
		f.PrintDetail("Logging to file", "disabled")
	}
}

// PrintSearchResults prints one page of search hits as a table
func (f *Formatter) PrintSearchResults(query string, offset int, result *core.SearchResult) {
	f.PrintHeader(fmt.Sprintf("Results for %s", f.HighlightStyle.Sprint(query)))

	if result == nil || len(result.Books) == 0 {
		f.PrintWarning("No books found.")
		return
	}

	rows := make([][]string, len(result.Books))
	for i, b := range result.Books {
		rows[i] = []string{
			strconv.Itoa(offset + i + 1),
			b.ID,
			b.Title,
			b.Author,
			f.FormatOptional(b.Status),
		}
	}
	f.PrintTable([]string{"#", "ID", "Title", "Author", "Status"}, rows)

	if result.HasMore {
		f.PrintInfo(fmt.Sprintf("More results available, use --offset %d", offset+len(result.Books)))
	}
}

// PrintBookInfo prints the metadata of a book
func (f *Formatter) PrintBookInfo(book *core.Book) {
	if book == nil {
		f.PrintError("No book information available.")
		return
	}

	f.PrintHeader(book.Title)
	f.PrintDetail("ID", f.FormatID(book.ID))
	f.PrintDetail("Author", book.Author)
	f.PrintDetail("Category", f.FormatOptional(book.Category))
	f.PrintDetail("Status", f.FormatOptional(book.Status))
	f.PrintDetail("Words", f.FormatCount(book.WordCount))
	f.PrintDetail("Chapters", f.FormatCount(book.ChapterCount))
	if book.CoverURL != "" {
		f.PrintDetail("Cover", book.CoverURL)
	}

	if book.Description != "" {
		f.PrintNewLine()
		_, _ = f.DetailLabelStyle.Fprintln(f.Writer, "Description:")
		_, _ = fmt.Fprintln(f.Writer, book.Description)
	}
}

// PrintChapterList prints chapters with their range index
func (f *Formatter) PrintChapterList(chapters []core.ChapterRef, total int) {
	if total > len(chapters) {
		f.PrintSection(fmt.Sprintf("Chapters (%d of %d)", len(chapters), total))
	} else {
		f.PrintSection(fmt.Sprintf("Chapters (%d)", len(chapters)))
	}

	if len(chapters) == 0 {
		f.PrintWarning("No chapters available.")
		return
	}

	rows := make([][]string, len(chapters))
	for i, ch := range chapters {
		rows[i] = []string{strconv.Itoa(ch.Index), ch.ID, ch.Title}
	}
	f.PrintTable([]string{"Index", "ID", "Title"}, rows)
}

// PrintDownloadOutcome prints the result of a download run
func (f *Formatter) PrintDownloadOutcome(outcome core.DownloadOutcome) {
	if !outcome.Success {
		f.PrintError(fmt.Sprintf("Download failed: %s", outcome.Error))
		return
	}

	f.PrintSuccess(fmt.Sprintf("Downloaded %s", outcome.BookName))
	f.PrintDetail("File", f.FormatPath(outcome.FilePath))
	f.PrintDetail("Chapters", fmt.Sprintf("%s of %s", f.FormatNumber(outcome.Chapters), f.FormatNumber(outcome.Requested)))
	f.PrintDetail("Mode", string(outcome.Mode))

	if len(outcome.Failed) > 0 {
		f.PrintWarning(fmt.Sprintf("%d chapters could not be downloaded:", len(outcome.Failed)))
		for _, c := range outcome.Failed {
			_, _ = f.SecondaryStyle.Fprintf(f.Writer, "  [%d] %s: %s\n", c.Index, c.Title, c.Reason)
		}
	}
}

// PrintHistory prints recorded download runs
func (f *Formatter) PrintHistory(outcomes []core.DownloadOutcome) {
	f.PrintHeader("Download History")

	if len(outcomes) == 0 {
		f.PrintWarning("No downloads recorded.")
		return
	}

	rows := make([][]string, len(outcomes))
	for i, o := range outcomes {
		result := "ok"
		if !o.Success {
			result = "failed"
		}
		rows[i] = []string{
			o.Started.Local().Format(time.DateTime),
			o.BookID,
			o.BookName,
			string(o.Format),
			fmt.Sprintf("%d/%d", o.Chapters, o.Requested),
			result,
		}
	}
	f.PrintTable([]string{"Started", "Book", "Title", "Format", "Chapters", "Result"}, rows)
}

// ProgressPrinter returns a function printing progress events on one line.
func (f *Formatter) ProgressPrinter() func(core.ProgressEvent) {
	return func(e core.ProgressEvent) {
		_, _ = fmt.Fprintf(f.Writer, "\r\033[K%s %s", f.NumberStyle.Sprintf("[%3.0f%%]", e.Percent), e.Message)
		if e.Current >= e.Total {
			_, _ = fmt.Fprintln(f.Writer, "")
		}
	}
}

// DefaultFormatter Global instance for convenience
var DefaultFormatter = NewFormatter()
