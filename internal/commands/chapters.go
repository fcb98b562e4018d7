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

package commands

import (
	"Folio/pkg/cli"
	"Folio/pkg/engine/search"

	"github.com/spf13/cobra"
)

var chaptersMatch string

var chaptersCmd = &cobra.Command{
	Use:   "chapters [book-id]",
	Short: "List the chapters of a book",
	Long: `List every chapter of a book with its index. The index is what
--start and --end of the download command refer to.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapters, err := appEngine.Chapters(commandContext(cmd), args[0])
		if err != nil {
			return fail(cmd, err)
		}

		shown := search.FilterChapters(chaptersMatch, chapters)
		data := map[string]interface{}{
			"book_id":  args[0],
			"total":    len(chapters),
			"chapters": shown,
		}
		return respond(cmd, data, func(f *cli.Formatter) {
			f.PrintChapterList(shown, len(chapters))
		})
	},
}

func init() {
	rootCmd.AddCommand(chaptersCmd)

	chaptersCmd.Flags().StringVar(&chaptersMatch, "match", "", "Only show chapters whose title fuzzily matches")
}
