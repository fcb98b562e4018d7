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

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"mirrors"},
	Short:   "List the available mirrors",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoints := appEngine.Endpoints()
		data := map[string]interface{}{
			"source":    appEngine.Source.ID(),
			"name":      appEngine.Source.Name(),
			"endpoints": endpoints,
		}
		return respond(cmd, data, func(f *cli.Formatter) {
			f.PrintEndpointList(appEngine.Source.Name(), endpoints)
		})
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
