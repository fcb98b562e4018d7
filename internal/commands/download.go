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
	"encoding/json"
	"fmt"

	"Folio/pkg/cli"
	"Folio/pkg/core"
	"Folio/pkg/engine/download"
	"Folio/pkg/util"

	"github.com/spf13/cobra"
)

var (
	downloadOutput string
	downloadFormat string
	downloadStart  int
	downloadEnd    int
)

var downloadCmd = &cobra.Command{
	Use:   "download [book-id]",
	Short: "Download a book",
	Long: `Download a book as plain text or EPUB. --start is inclusive and --end is
exclusive; both refer to the indices shown by the chapters command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := core.DownloadRequest{
			BookID:    args[0],
			OutputDir: downloadOutput,
			Format:    core.ParseFormat(downloadFormat),
		}
		if req.OutputDir == "" {
			req.OutputDir = appConfig.Download.OutputDir
		}
		if downloadFormat == "" {
			req.Format = core.ParseFormat(appConfig.Download.Format)
		}
		if cmd.Flags().Changed("start") {
			req.Start = &downloadStart
		}
		if cmd.Flags().Changed("end") {
			req.End = &downloadEnd
		}

		outcome := appEngine.Download.Download(commandContext(cmd), req, progressSink(cmd))

		if apiMode {
			status := "success"
			if !outcome.Success {
				status = "error"
			}
			if err := writeOutcome(cmd, status, outcome); err != nil {
				return err
			}
		} else {
			formatterFor(cmd).PrintDownloadOutcome(outcome)
		}

		if !outcome.Success {
			return errReported{err: fmt.Errorf("%s", outcome.Error)}
		}
		return nil
	},
}

// progressSink prints events to stderr, as JSON lines in API mode
func progressSink(cmd *cobra.Command) download.ProgressSink {
	if apiMode {
		enc := json.NewEncoder(cmd.ErrOrStderr())
		return download.ProgressFunc(func(e core.ProgressEvent) {
			_ = enc.Encode(map[string]interface{}{"event": core.ProgressChannel, "payload": e})
		})
	}
	return download.ProgressFunc(cli.NewWriterFormatter(cmd.ErrOrStderr(), false).ProgressPrinter())
}

// writeOutcome keeps the outcome as data even for failed runs
func writeOutcome(cmd *cobra.Command, status string, outcome core.DownloadOutcome) error {
	return json.NewEncoder(cmd.OutOrStdout()).Encode(util.APIResponse{
		Status: status,
		Data:   outcome,
		Error:  outcome.Error,
	})
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output directory (default from config)")
	downloadCmd.Flags().StringVarP(&downloadFormat, "format", "f", "", "Output format: txt or epub (default from config)")
	downloadCmd.Flags().IntVar(&downloadStart, "start", 0, "First chapter index to download (inclusive)")
	downloadCmd.Flags().IntVar(&downloadEnd, "end", 0, "Chapter index to stop at (exclusive)")
}
