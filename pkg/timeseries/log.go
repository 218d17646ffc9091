// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package timeseries

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
)

// Log is an open time-series log. Append and Close are safe for concurrent
// use, though a session has a single writer.
type Log struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	sync   bool
	count  int
	closed bool
}

// Option configures a Log.
type Option func(*Log)

// WithSync controls whether each Append is followed by fsync. Default true.
func WithSync(enabled bool) Option {
	return func(l *Log) {
		l.sync = enabled
	}
}

// Open creates or truncates path and writes the header.
// Failures are IO errors.
func Open(path string, opts ...Option) (*Log, error) {
	if strings.TrimSpace(path) == "" {
		return nil, tmerrors.New(tmerrors.ErrCodeValidation, "output path is required")
	}

	l := &Log{path: path, sync: true}
	for _, opt := range opts {
		opt(l)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, tmerrors.WrapWithContext(tmerrors.ErrCodeIO, "failed to open output log", err,
			map[string]any{"path": path})
	}
	l.file = f

	if err := l.writeLine(Header); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close output log after header error", "path", path, "error", cerr)
		}
		return nil, tmerrors.WrapWithContext(tmerrors.ErrCodeIO, "failed to write log header", err,
			map[string]any{"path": path})
	}

	slog.Debug("output log opened", "path", path, "sync", l.sync)
	return l, nil
}

// Path returns the file path of the log.
func (l *Log) Path() string {
	return l.path
}

// Count returns the number of samples appended so far.
func (l *Log) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Append writes one sample line.
func (l *Log) Append(s Sample) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return tmerrors.NewWithContext(tmerrors.ErrCodeIO, "output log is closed",
			map[string]any{"path": l.path})
	}
	if err := l.writeLine(s.String()); err != nil {
		return tmerrors.WrapWithContext(tmerrors.ErrCodeIO, "failed to append sample", err,
			map[string]any{"path": l.path, "elapsed": s.ElapsedSeconds})
	}
	l.count++
	return nil
}

func (l *Log) writeLine(line string) error {
	if _, err := fmt.Fprintln(l.file, line); err != nil {
		return err
	}
	if l.sync {
		return l.file.Sync()
	}
	return nil
}

// Close syncs and releases the file. Subsequent calls are no-ops.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var syncErr error
	if !l.sync {
		syncErr = l.file.Sync()
	}
	closeErr := l.file.Close()

	if syncErr != nil {
		return tmerrors.Wrap(tmerrors.ErrCodeIO, "failed to flush output log", syncErr)
	}
	if closeErr != nil {
		return tmerrors.Wrap(tmerrors.ErrCodeIO, "failed to close output log", closeErr)
	}
	slog.Debug("output log closed", "path", l.path, "samples", l.count)
	return nil
}
