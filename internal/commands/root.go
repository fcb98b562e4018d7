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
	"context"
	"fmt"
	"os"

	"Folio/internal/config"
	"Folio/pkg/cli"
	"Folio/pkg/engine"
	"Folio/pkg/errors"
	"Folio/pkg/util"

	"github.com/spf13/cobra"
)

var (
	appEngine     *engine.Engine
	appConfig     *config.Config
	version       = "dev"
	debugMode     bool
	verboseErrors bool
	apiMode       bool
	configFile    string
)

// errReported marks an error that was already shown to the user
type errReported struct{ err error }

func (e errReported) Error() string { return e.err.Error() }
func (e errReported) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Folio is a CLI tool for searching and downloading web novels.",
	Long:          "Folio searches the Fanqie novel catalogue through a pool of mirrors and downloads books as plain text or EPUB.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appConfig == nil {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			appConfig = cfg
		}

		if appEngine == nil {
			e, err := engine.New(appConfig.EngineOptions())
			if err != nil {
				return err
			}
			appEngine = e
		}

		SetupDebugMode()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if appEngine != nil {
		_ = appEngine.Shutdown()
	}
	if err == nil {
		return 0
	}

	var reported errReported
	if !errors.As(err, &reported) {
		if apiMode {
			util.OutputJSON("error", nil, err)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return 1
}

// SetupDebugMode applies the verbosity flags to the engine
func SetupDebugMode() {
	if appEngine == nil {
		return
	}
	appEngine.SetDebugMode(debugMode)
	appEngine.SetVerboseMode(verboseErrors)
}

// SetEngine injects a pre-built engine and configuration
func SetEngine(e *engine.Engine, cfg *config.Config) {
	appEngine = e
	appConfig = cfg
}

// SetupVersion sets the version for all commands
func SetupVersion(v string) {
	version = v
	rootCmd.Version = v
}

// formatterFor returns a formatter writing to the command's output
func formatterFor(cmd *cobra.Command) *cli.Formatter {
	if cmd.OutOrStdout() == os.Stdout {
		return cli.DefaultFormatter
	}
	return cli.NewWriterFormatter(cmd.OutOrStdout(), true)
}

// respond writes data in API mode or calls show otherwise
func respond(cmd *cobra.Command, data interface{}, show func(f *cli.Formatter)) error {
	if apiMode {
		return util.WriteJSON(cmd.OutOrStdout(), "success", data, nil)
	}
	show(formatterFor(cmd))
	return nil
}

// fail reports err in the active output mode and returns it marked as shown
func fail(cmd *cobra.Command, err error) error {
	if apiMode {
		_ = util.WriteJSON(cmd.OutOrStdout(), "error", nil, err)
	} else {
		formatterFor(cmd).PrintError(appEngine.FormatError(err))
	}
	return errReported{err: err}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with detailed error information")
	rootCmd.PersistentFlags().BoolVar(&verboseErrors, "verbose-errors", false, "Show function call chains in errors")
	rootCmd.PersistentFlags().BoolVar(&apiMode, "json", false, "Output machine-readable JSON only")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file")
}
