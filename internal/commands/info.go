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

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [book-id]",
	Short: "Show details about a book",
	Long:  `Fetch the metadata of a book: title, author, status, word count and description.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := appEngine.BookDetail(commandContext(cmd), args[0])
		if err != nil {
			return fail(cmd, err)
		}
		return respond(cmd, book, func(f *cli.Formatter) {
			f.PrintBookInfo(book)
		})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
