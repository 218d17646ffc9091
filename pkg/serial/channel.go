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
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tempmon/tempmon/pkg/defaults"
	tmerrors "github.com/tempmon/tempmon/pkg/errors"
)

// Channel is a newline-delimited reader over a serial device.
// All methods are safe for concurrent use; reads are serialized.
type Channel struct {
	// mu is held across device reads.
	mu sync.Mutex

	opener   Opener
	bufSize  int
	encoding Encoding

	port Port

	// infoMu guards the fields below so accessors never wait on a read.
	infoMu    sync.RWMutex
	connected bool
	name      string
	baud      int

	pending    []byte
	discarding bool
	scratch    []byte
}

// Option configures a Channel.
type Option func(*Channel)

// WithOpener replaces the function used to open devices.
func WithOpener(o Opener) Option {
	return func(c *Channel) {
		if o != nil {
			c.opener = o
		}
	}
}

// WithReadBufferSize sets the longest accepted line in bytes.
func WithReadBufferSize(n int) Option {
	return func(c *Channel) {
		if n > 0 {
			c.bufSize = n
		}
	}
}

// WithEncoding sets how line bytes are decoded.
func WithEncoding(e Encoding) Option {
	return func(c *Channel) {
		if e != "" {
			c.encoding = e
		}
	}
}

// NewChannel returns a disconnected Channel.
func NewChannel(opts ...Option) *Channel {
	c := &Channel{
		opener:   OpenDevice,
		bufSize:  defaults.SerialReadBufferSize,
		encoding: EncodingUTF8,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scratch = make([]byte, c.bufSize)
	return c
}

// Connect opens the device. An already open device is closed first.
// Failures are CONNECT errors and leave the Channel disconnected.
func (c *Channel) Connect(name string, baud int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return tmerrors.New(tmerrors.ErrCodeConnect, "serial port name is required")
	}
	if baud <= 0 {
		return tmerrors.NewWithContext(tmerrors.ErrCodeConnect, "baud rate must be positive",
			map[string]any{"baud": baud})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.port != nil {
		if err := c.closeLocked(); err != nil {
			slog.Warn("failed to close previous serial port", "error", err)
		}
	}

	p, err := c.opener(name, baud)
	if err != nil {
		return tmerrors.WrapWithContext(tmerrors.ErrCodeConnect, "failed to open serial port", err,
			map[string]any{"port": name, "baud": baud})
	}

	c.port = p
	c.setInfo(true, name, baud)
	c.pending = c.pending[:0]
	c.discarding = false

	slog.Info("serial port connected", "port", name, "baud", baud)
	return nil
}

// Disconnect releases the device. Calling it on a closed Channel is a no-op.
func (c *Channel) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.port == nil {
		return nil
	}
	name := c.PortName()
	if err := c.closeLocked(); err != nil {
		return tmerrors.WrapWithContext(tmerrors.ErrCodeConnect, "failed to close serial port", err,
			map[string]any{"port": name})
	}
	slog.Info("serial port disconnected", "port", name)
	return nil
}

func (c *Channel) closeLocked() error {
	err := c.port.Close()
	c.port = nil
	c.setInfo(false, "", 0)
	c.pending = c.pending[:0]
	c.discarding = false
	return err
}

func (c *Channel) setInfo(connected bool, name string, baud int) {
	c.infoMu.Lock()
	defer c.infoMu.Unlock()
	c.connected = connected
	c.name = name
	c.baud = baud
}

// IsConnected reports whether a device is open.
func (c *Channel) IsConnected() bool {
	c.infoMu.RLock()
	defer c.infoMu.RUnlock()
	return c.connected
}

// PortName returns the open device name, or "" when disconnected.
func (c *Channel) PortName() string {
	c.infoMu.RLock()
	defer c.infoMu.RUnlock()
	return c.name
}

// Baud returns the open line speed, or 0 when disconnected.
func (c *Channel) Baud() int {
	c.infoMu.RLock()
	defer c.infoMu.RUnlock()
	return c.baud
}

// TryReadLine waits up to timeout for one complete, non-blank line.
// ok is false when nothing arrived in time. The returned line has its line
// terminator and surrounding whitespace removed.
func (c *Channel) TryReadLine(timeout time.Duration) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.port == nil {
		return "", false, tmerrors.New(tmerrors.ErrCodeConnect, "serial port is not connected")
	}

	deadline := time.Now().Add(timeout)
	for {
		line, found, err := c.nextLineLocked()
		if err != nil {
			return "", false, err
		}
		if found {
			return line, true, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", false, nil
		}

		if err := c.port.SetReadTimeout(remaining); err != nil {
			return "", false, tmerrors.Wrap(tmerrors.ErrCodeTransientRead, "failed to set read timeout", err)
		}
		n, err := c.port.Read(c.scratch)
		if err != nil {
			return "", false, tmerrors.Wrap(tmerrors.ErrCodeTransientRead, "serial read failed", err)
		}
		if n == 0 {
			// read timeout
			return "", false, nil
		}
		c.pending = append(c.pending, c.scratch[:n]...)
	}
}

// nextLineLocked extracts the next non-blank line from pending data.
// found is false when more bytes are needed.
func (c *Channel) nextLineLocked() (string, bool, error) {
	for {
		idx := bytes.IndexByte(c.pending, '\n')
		if idx < 0 {
			if len(c.pending) > c.bufSize {
				c.pending = c.pending[:0]
				c.discarding = true
				return "", false, tmerrors.NewWithContext(tmerrors.ErrCodeTransientRead,
					"line exceeds read buffer", map[string]any{"limit": c.bufSize})
			}
			return "", false, nil
		}

		raw := c.pending[:idx]
		c.pending = c.pending[idx+1:]

		if c.discarding {
			// tail of an oversized line
			c.discarding = false
			continue
		}
		if len(raw) > c.bufSize {
			return "", false, tmerrors.NewWithContext(tmerrors.ErrCodeTransientRead,
				"line exceeds read buffer", map[string]any{"limit": c.bufSize, "length": len(raw)})
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			continue
		}

		line, err := c.encoding.decode(trimmed)
		if err != nil {
			return "", false, tmerrors.Wrap(tmerrors.ErrCodeTransientRead, "failed to decode line", err)
		}
		return line, true, nil
	}
}
