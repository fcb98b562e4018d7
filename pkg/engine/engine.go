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

package engine

import (
	"context"
	"time"

	"Folio/pkg/artifact"
	"Folio/pkg/core"
	"Folio/pkg/engine/acquire"
	"Folio/pkg/engine/directory"
	"Folio/pkg/engine/download"
	"Folio/pkg/engine/history"
	"Folio/pkg/engine/logger"
	"Folio/pkg/engine/network"
	"Folio/pkg/engine/search"
	"Folio/pkg/errors"
	"Folio/pkg/provider"
	"Folio/pkg/provider/fanqie"
)

// Options configure an Engine. Zero values fall back to the built-in defaults
// in New; NewWithSource takes them as given.
type Options struct {
	Endpoints    []core.Endpoint
	HTTP         network.HTTPOptions
	ChapterDelay time.Duration
	Language     string
	HistoryPath  string
	LogFile      string
	LogLevel     string
}

// Engine is the central component wiring the source to the services
type Engine struct {
	Source   provider.Source
	Search   *search.Service
	Resolver *directory.Resolver
	Download *download.Service
	History  *history.Store
	Logger   logger.Logger

	baseLevel   logger.Level
	debugMode   bool
	verboseMode bool
}

func (o Options) withDefaults() Options {
	if len(o.Endpoints) == 0 {
		o.Endpoints = fanqie.DefaultEndpoints()
	}
	if o.ChapterDelay == 0 {
		o.ChapterDelay = fanqie.DefaultChapterDelay
	}
	return o
}

// New creates an Engine talking to the Fanqie mirror pool
func New(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	log := logger.NewService(opts.LogFile)

	httpOpts := opts.HTTP
	headers := fanqie.DefaultHeaders()
	for k, v := range httpOpts.Headers {
		headers[k] = v
	}
	httpOpts.Headers = headers
	if httpOpts.UserAgent == "" {
		httpOpts.UserAgent = fanqie.DefaultUserAgent
	}
	if httpOpts.Timeout == 0 {
		httpOpts.Timeout = fanqie.DefaultTimeout
	}
	if httpOpts.ConnectTimeout == 0 {
		httpOpts.ConnectTimeout = fanqie.DefaultConnectTimeout
	}

	source := fanqie.NewClient(network.NewHTTPService(httpOpts, log), opts.Endpoints, log)

	e, err := NewWithSource(source, opts, log)
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	return e, nil
}

// NewWithSource wires the services around an existing source
func NewWithSource(source provider.Source, opts Options, log logger.Logger) (*Engine, error) {
	if log == nil {
		log = logger.Nop()
	}

	resolver := directory.NewResolver(source, log)
	strategy := acquire.NewStrategy(source, network.NewThrottle(opts.ChapterDelay), log)
	downloads := download.NewService(source, resolver, strategy, artifact.DefaultRegistry(opts.Language), log)

	e := &Engine{
		Source:    source,
		Search:    search.NewSearchService(source, log),
		Resolver:  resolver,
		Download:  downloads,
		Logger:    log,
		baseLevel: logger.ParseLevel(opts.LogLevel),
	}
	log.SetLevel(e.baseLevel)

	if opts.HistoryPath != "" {
		store, err := history.Open(opts.HistoryPath)
		if err != nil {
			log.Warn("Download history disabled: %v", err)
		} else {
			e.History = store
			downloads.SetRecorder(store)
		}
	}

	log.Info("Engine initialized with %d endpoints", len(source.Endpoints()))
	return e, nil
}

// BookDetail fetches the metadata of a book
func (e *Engine) BookDetail(ctx context.Context, bookID string) (*core.Book, error) {
	return e.Source.BookDetail(ctx, bookID)
}

// Chapters resolves the chapter directory of a book
func (e *Engine) Chapters(ctx context.Context, bookID string) ([]core.ChapterRef, error) {
	return e.Resolver.Resolve(ctx, bookID)
}

// Endpoints returns the mirrors meant for display
func (e *Engine) Endpoints() []core.Endpoint {
	return e.Source.ListedEndpoints()
}

// Shutdown releases the log file
func (e *Engine) Shutdown() error {
	e.Logger.Info("Shutting down engine...")

	if closer, ok := e.Logger.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// SetDebugMode enables or disables debug logging to the console
func (e *Engine) SetDebugMode(enabled bool) {
	e.debugMode = enabled
	e.applyVerbosity()
	if enabled {
		e.Logger.Debug("Debug mode enabled")
	}
}

// SetVerboseMode enables or disables verbose error output
func (e *Engine) SetVerboseMode(enabled bool) {
	e.verboseMode = enabled
	e.applyVerbosity()
	if enabled {
		e.Logger.Info("Verbose mode enabled")
	}
}

func (e *Engine) applyVerbosity() {
	loud := e.debugMode || e.verboseMode
	if loud {
		e.Logger.SetLevel(logger.LevelDebug)
	} else {
		e.Logger.SetLevel(e.baseLevel)
	}
	if svc, ok := e.Logger.(*logger.Service); ok {
		svc.SetConsoleOutput(loud)
	}
}

// FormatError formats an error based on the current verbosity settings
func (e *Engine) FormatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case e.verboseMode:
		return errors.NewDebugCLIFormatter().Format(err)
	case e.debugMode:
		return errors.NewCLIFormatter().Format(err)
	default:
		return errors.NewCLIFormatter().FormatSimple(err)
	}
}
