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

package serial

import (
	"errors"
	"sync"
	"time"
)

// fakePort serves queued chunks, splitting those larger than the read
// buffer. Read honours the read timeout like a real
// device and returns (0, nil) when it expires.
type fakePort struct {
	mu      sync.Mutex
	chunks  chan []byte
	timeout time.Duration
	readErr error
	closed  bool
	rest    []byte
}

func newFakePort(chunks ...string) *fakePort {
	p := &fakePort{chunks: make(chan []byte, 64), timeout: time.Second}
	for _, c := range chunks {
		p.chunks <- []byte(c)
	}
	return p
}

func (p *fakePort) SetReadTimeout(t time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeout = t
	return nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	timeout, readErr, closed := p.timeout, p.readErr, p.closed
	if len(p.rest) > 0 && !closed && readErr == nil {
		n := copy(b, p.rest)
		p.rest = p.rest[n:]
		p.mu.Unlock()
		return n, nil
	}
	p.mu.Unlock()

	if closed {
		return 0, errors.New("port closed")
	}
	if readErr != nil {
		return 0, readErr
	}

	select {
	case c := <-p.chunks:
		n := copy(b, c)
		if n < len(c) {
			p.mu.Lock()
			p.rest = append(p.rest, c[n:]...)
			p.mu.Unlock()
		}
		return n, nil
	case <-time.After(timeout):
		return 0, nil
	}
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePort) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func openerFor(p *fakePort) Opener {
	return func(string, int) (Port, error) { return p, nil }
}
