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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"Folio/internal/config"
	"Folio/internal/rpc"
	"Folio/pkg/engine"
)

var (
	Version = "dev"
)

// stdInOutReadWriteCloser wraps stdin/stdout for JSON-RPC
type stdInOutReadWriteCloser struct {
	reader io.Reader
	writer io.Writer
}

func (s *stdInOutReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.reader.Read(p)
}

func (s *stdInOutReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.writer.Write(p)
}

func (s *stdInOutReadWriteCloser) Close() error {
	return nil
}

func main() {
	configFile := flag.String("config", "", "Path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appEngine, err := engine.New(cfg.EngineOptions())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = appEngine.Shutdown() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		appEngine.Logger.Info("RPC server shutting down...")
		_ = appEngine.Shutdown()
		os.Exit(0)
	}()

	// Progress events go to stderr so they never interleave with responses
	rpcServer, err := rpc.NewServer(appEngine, Version, os.Stderr)
	if err != nil {
		appEngine.Logger.Error("Failed to register RPC services: %v", err)
		os.Exit(1)
	}

	rwc := &stdInOutReadWriteCloser{
		reader: bufio.NewReader(os.Stdin),
		writer: os.Stdout,
	}

	appEngine.Logger.Info("Folio RPC server v%s started", Version)
	_, _ = fmt.Fprintf(os.Stderr, "Folio RPC v%s ready with %d mirrors\n", Version, len(appEngine.Source.Endpoints()))

	rpc.Serve(rpcServer, rwc)
	appEngine.Logger.Info("RPC connection closed")
}
