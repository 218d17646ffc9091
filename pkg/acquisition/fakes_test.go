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

package acquisition

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tempmon/tempmon/pkg/timeseries"
)

type fakeChannel struct {
	mu          sync.Mutex
	lines       chan string
	connectErr  error
	connected   bool
	connects    int
	disconnects int
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{lines: make(chan string, 64)}
}

func (f *fakeChannel) Connect(string, int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeChannel) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.connected = false
	return nil
}

func (f *fakeChannel) TryReadLine(timeout time.Duration) (string, bool, error) {
	f.mu.Lock()
	connected := f.connected
	f.mu.Unlock()
	if !connected {
		return "", false, errors.New("not connected")
	}

	select {
	case l := <-f.lines:
		return l, true, nil
	case <-time.After(timeout):
		return "", false, nil
	}
}

func (f *fakeChannel) isConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

type memLog struct {
	mu           sync.Mutex
	samples      []timeseries.Sample
	closed       bool
	failOn       int
	lateAppends  int
	closeInvoked int
}

func (l *memLog) Append(s timeseries.Sample) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		l.lateAppends++
		return errors.New("closed")
	}
	if l.failOn > 0 && len(l.samples)+1 == l.failOn {
		return errors.New("disk full")
	}
	l.samples = append(l.samples, s)
	return nil
}

func (l *memLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.closeInvoked++
	return nil
}

func (l *memLog) snapshot() ([]timeseries.Sample, bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := append([]timeseries.Sample(nil), l.samples...)
	return out, l.closed, l.lateAppends
}

// logRecorder hands out memLogs and counts how many were opened.
type logRecorder struct {
	mu    sync.Mutex
	logs  []*memLog
	err   error
	paths []string
}

func (r *logRecorder) open(path string) (SampleLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	if r.err != nil {
		return nil, r.err
	}
	l := &memLog{}
	r.logs = append(r.logs, l)
	return l, nil
}

func (r *logRecorder) opened() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

func (r *logRecorder) last() *memLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logs[len(r.logs)-1]
}

type fakeRenderer struct {
	mu     sync.Mutex
	calls  int
	err    error
	closed bool
}

func (r *fakeRenderer) Render(context.Context, string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.err
}

func (r *fakeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeRenderer) state() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls, r.closed
}
