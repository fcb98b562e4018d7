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

var (
	searchOffset  int
	searchRank    bool
	searchFilters map[string]string
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search for books",
	Long:  `Search the catalogue by title or author. Results are paged; use --offset to continue.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword := args[0]

		result, err := appEngine.Search.Search(commandContext(cmd), keyword, search.Options{
			Offset:  searchOffset,
			Rank:    searchRank,
			Filters: searchFilters,
		})
		if err != nil {
			return fail(cmd, err)
		}

		data := map[string]interface{}{
			"query":    keyword,
			"offset":   searchOffset,
			"results":  result.Books,
			"count":    len(result.Books),
			"has_more": result.HasMore,
		}
		return respond(cmd, data, func(f *cli.Formatter) {
			f.PrintSearchResults(keyword, searchOffset, result)
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "Result offset for paging")
	searchCmd.Flags().BoolVar(&searchRank, "rank", false, "Re-order results by title similarity")
	searchCmd.Flags().StringToStringVar(&searchFilters, "filter", nil, "Field filters (e.g., --filter author=lin,status=completed)")
}
