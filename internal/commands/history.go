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
	"Folio/pkg/errors"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyBook  string
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded downloads",
	Long:  `Show past download runs, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appEngine.History == nil {
			return fail(cmd, errors.New("download history is disabled").AsValidation().Error())
		}

		if historyClear {
			if err := appEngine.History.Clear(); err != nil {
				return fail(cmd, err)
			}
			return respond(cmd, map[string]interface{}{"cleared": true}, func(f *cli.Formatter) {
				f.PrintSuccess("Download history cleared.")
			})
		}

		runs, err := appEngine.History.List(historyLimit, historyBook)
		if err != nil {
			return fail(cmd, err)
		}
		return respond(cmd, runs, func(f *cli.Formatter) {
			f.PrintHistory(runs)
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show (0 for all)")
	historyCmd.Flags().StringVar(&historyBook, "book", "", "Only show runs of this book")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded runs")
}
