// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultPath returns the per-user UI log path, <home>/.wox/log/ui.log.
// Returns an error when the home directory cannot be resolved; the
// caller recovers by running with a discard logger.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".wox", "log", "ui.log"), nil
}

// Open creates the log file at path (truncating any previous launch's
// contents), and returns a logger writing plain-text lines in local
// time:
//
//	2026-08-30 12:34:56.789 info UI: hello
//
// The parent directory is created if missing. The returned closer
// flushes and closes the underlying file; the logger must not be used
// after Close.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("creating log file: %w", err)
	}
	handler := &lineHandler{
		sink:  &logSink{writer: file},
		level: level,
	}
	return slog.New(handler), file, nil
}

// Discard returns a logger that drops everything. Used when the home
// directory cannot be resolved — the shell keeps running, unlogged.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logSink serializes writes to the log file. The watchdog, the bridge
// relays, and the control server all log concurrently onto the same
// file; the sink is shared by every handler derived via WithAttrs so
// lines never interleave.
type logSink struct {
	mu     sync.Mutex
	writer io.Writer
}

func (s *logSink) writeLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.writer, line)
	return err
}

// lineHandler is a slog.Handler emitting one plain-text line per
// record: local timestamp with millisecond precision, lowercase level,
// message, then key=value attrs.
type lineHandler struct {
	sink  *logSink
	level slog.Level
	attrs []slog.Attr
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, record slog.Record) error {
	var line strings.Builder
	line.WriteString(record.Time.Local().Format("2006-01-02 15:04:05.000"))
	line.WriteByte(' ')
	line.WriteString(levelName(record.Level))
	line.WriteByte(' ')
	line.WriteString(record.Message)

	for _, attr := range h.attrs {
		appendAttr(&line, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(&line, attr)
		return true
	})
	line.WriteByte('\n')

	return h.sink.writeLine(line.String())
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &lineHandler{sink: h.sink, level: h.level, attrs: merged}
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	// Groups are not used by the shell; attrs keep their plain keys.
	return h
}

func appendAttr(line *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	line.WriteByte(' ')
	line.WriteString(attr.Key)
	line.WriteByte('=')
	line.WriteString(attr.Value.String())
}

// levelName renders slog levels the way the log file format expects:
// lowercase, no numeric offsets for the four standard levels.
func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}
