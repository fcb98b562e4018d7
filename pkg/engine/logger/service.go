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

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a textual level to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger interface for logging operations
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
}

// Service implements the Logger interface on top of zerolog. Entries always go
// to the log file; console output is opt-in.
type Service struct {
	mu      sync.Mutex
	level   Level
	logFile string
	file    *os.File
	console io.Writer
	zl      zerolog.Logger
}

// NewService creates a new logger service writing to logFile. An empty path
// or an unwritable location discards file output.
func NewService(logFile string) *Service {
	s := &Service{
		level:   LevelInfo,
		logFile: logFile,
	}
	s.rebuild()
	return s
}

// NewWriterService creates a logger that writes JSON lines to w.
func NewWriterService(w io.Writer) *Service {
	s := &Service{level: LevelInfo, console: w}
	s.zl = zerolog.New(w).With().Timestamp().Logger().Level(s.level.zerolog())
	return s
}

// Nop returns a logger that discards everything.
func Nop() *Service {
	return NewWriterService(io.Discard)
}

func (s *Service) rebuild() {
	var writers []io.Writer

	if s.logFile != "" && s.file == nil {
		if err := os.MkdirAll(filepath.Dir(s.logFile), 0755); err == nil {
			if f, err := os.OpenFile(s.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				s.file = f
			}
		}
	}
	if s.file != nil {
		writers = append(writers, s.file)
	}
	if s.console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: s.console, TimeFormat: time.TimeOnly})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	s.zl = zerolog.New(out).With().Timestamp().Int("pid", os.Getpid()).Logger().Level(s.level.zerolog())
}

// SetConsoleOutput mirrors log entries to stderr in human-readable form.
func (s *Service) SetConsoleOutput(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enabled {
		s.console = os.Stderr
	} else {
		s.console = nil
	}
	s.rebuild()
}

// SetLevel sets the minimum log level
func (s *Service) SetLevel(level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = level
	s.zl = s.zl.Level(level.zerolog())
}

// LogFile returns the path entries are written to, if any.
func (s *Service) LogFile() string {
	return s.logFile
}

// Close closes the log file if open
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.zl = zerolog.Nop()
	return err
}

// Debug logs a debug message
func (s *Service) Debug(format string, args ...interface{}) {
	s.log(zerolog.DebugLevel, format, args...)
}

// Info logs an info message
func (s *Service) Info(format string, args ...interface{}) {
	s.log(zerolog.InfoLevel, format, args...)
}

// Warn logs a warning message
func (s *Service) Warn(format string, args ...interface{}) {
	s.log(zerolog.WarnLevel, format, args...)
}

// Error logs an error message
func (s *Service) Error(format string, args ...interface{}) {
	s.log(zerolog.ErrorLevel, format, args...)
}

func (s *Service) log(level zerolog.Level, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.zl.WithLevel(level).Msg(fmt.Sprintf(format, args...))
}
