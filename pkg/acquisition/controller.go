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
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/tempmon/tempmon/pkg/defaults"
	tmerrors "github.com/tempmon/tempmon/pkg/errors"
	"github.com/tempmon/tempmon/pkg/render"
	"github.com/tempmon/tempmon/pkg/timeseries"
)

// Channel is the serial connection used by the controller.
type Channel interface {
	Connect(port string, baud int) error
	Disconnect() error
	TryReadLine(timeout time.Duration) (string, bool, error)
}

// SampleLog receives the samples of one session.
type SampleLog interface {
	Append(s timeseries.Sample) error
	Close() error
}

// LogOpener creates the log for a new session.
type LogOpener func(path string) (SampleLog, error)

// RendererFactory creates the renderer for a new session. Renderers that
// implement io.Closer are closed when the session ends.
type RendererFactory func() (render.Renderer, error)

// Controller coordinates the acquisition lifecycle. Commands are serialized;
// observers never block on a running command.
type Controller struct {
	// cmdMu serializes commands.
	cmdMu sync.Mutex

	channel     Channel
	openLog     LogOpener
	newRenderer RendererFactory
	clock       clock.PassiveClock
	interval    time.Duration
	logSync     bool

	state  atomic.Int32
	latest atomic.Pointer[timeseries.Sample]
	sess   *session

	// viewMu guards the fields below, which back Status.
	viewMu  sync.RWMutex
	port    string
	baud    int
	info    *SessionInfo
	count   *atomic.Int64
	lastErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithPollInterval sets the cadence of both loops.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithClock sets the clock used to timestamp samples.
func WithClock(clk clock.PassiveClock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogOpener replaces how session logs are opened.
func WithLogOpener(o LogOpener) Option {
	return func(c *Controller) {
		if o != nil {
			c.openLog = o
		}
	}
}

// WithLogSync controls fsync after each appended sample for the default log.
func WithLogSync(enabled bool) Option {
	return func(c *Controller) {
		c.logSync = enabled
	}
}

// WithRendererFactory sets how session renderers are created.
func WithRendererFactory(f RendererFactory) Option {
	return func(c *Controller) {
		if f != nil {
			c.newRenderer = f
		}
	}
}

// NewController returns an Idle controller over ch.
func NewController(ch Channel, opts ...Option) *Controller {
	c := &Controller{
		channel:  ch,
		clock:    clock.RealClock{},
		interval: defaults.PollInterval,
		logSync:  true,
		newRenderer: func() (render.Renderer, error) {
			return render.Nop{}, nil
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.openLog == nil {
		syncWrites := c.logSync
		c.openLog = func(path string) (SampleLog, error) {
			return timeseries.Open(path, timeseries.WithSync(syncWrites))
		}
	}
	c.setState(StateIdle)
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	stateGauge.Set(float64(s))
	if prev != s {
		slog.Debug("controller state changed", "from", prev.String(), "to", s.String())
	}
}

// LatestSample returns the most recent sample of the current or last session.
func (c *Controller) LatestSample() (timeseries.Sample, bool) {
	p := c.latest.Load()
	if p == nil {
		return timeseries.Sample{}, false
	}
	return *p, true
}

// LastError returns the most recent error reported by a command or by a
// session that ended on its own. Successful Connect and Start clear it.
func (c *Controller) LastError() error {
	c.viewMu.RLock()
	defer c.viewMu.RUnlock()
	return c.lastErr
}

func (c *Controller) setLastError(err error) {
	c.viewMu.Lock()
	c.lastErr = err
	c.viewMu.Unlock()
}

// Status returns a snapshot for display.
func (c *Controller) Status() Status {
	st := Status{
		State:        c.State(),
		PollInterval: c.interval.String(),
	}
	if s, ok := c.LatestSample(); ok {
		st.LatestSample = &s
	}

	c.viewMu.RLock()
	defer c.viewMu.RUnlock()

	st.Port = c.port
	st.Baud = c.baud
	if c.info != nil {
		info := *c.info
		st.Session = &info
	}
	if c.count != nil {
		st.Samples = c.count.Load()
	}
	if c.lastErr != nil {
		st.LastError = c.lastErr.Error()
	}
	return st
}

// Connect opens the serial device. An existing connection is replaced.
// It is rejected while a session is running.
func (c *Controller) Connect(ctx context.Context, port string, baud int) error {
	if err := ctx.Err(); err != nil {
		return tmerrors.Wrap(tmerrors.ErrCodeTimeout, "connect cancelled", err)
	}

	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()
	c.reapLocked()

	switch c.State() {
	case StateAcquiring, StateStopping:
		return c.reject(tmerrors.NewWithContext(tmerrors.ErrCodeInvalidState,
			"cannot connect while acquiring, stop first", map[string]any{"state": c.State().String()}))
	case StateConnected:
		if err := c.channel.Disconnect(); err != nil {
			slog.Warn("failed to close previous connection", "error", err)
		}
		c.setConnection("", 0)
	}

	c.setState(StateConnecting)
	if err := c.channel.Connect(port, baud); err != nil {
		c.setState(StateIdle)
		if !tmerrors.IsCode(err, tmerrors.ErrCodeConnect) {
			err = tmerrors.WrapWithContext(tmerrors.ErrCodeConnect, "failed to connect", err,
				map[string]any{"port": port, "baud": baud})
		}
		slog.Error("connect failed", "port", port, "baud", baud, "error", err)
		c.setLastError(err)
		return err
	}

	c.setConnection(port, baud)
	c.setLastError(nil)
	c.setState(StateConnected)
	slog.Info("connected", "port", port, "baud", baud)
	return nil
}

// Start opens the log at outputPath and begins sampling and plotting.
func (c *Controller) Start(ctx context.Context, outputPath string) error {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()
	c.reapLocked()

	switch c.State() {
	case StateConnected:
	case StateAcquiring, StateStopping:
		return c.reject(tmerrors.New(tmerrors.ErrCodeInvalidState, "acquisition already running"))
	default:
		return c.reject(tmerrors.NewWithContext(tmerrors.ErrCodeInvalidState,
			"not connected", map[string]any{"state": c.State().String()}))
	}

	outputPath = strings.TrimSpace(outputPath)
	if outputPath == "" {
		return c.reject(tmerrors.New(tmerrors.ErrCodeValidation, "output path is required"))
	}

	sampleLog, err := c.openLog(outputPath)
	if err != nil {
		if !tmerrors.IsCode(err, tmerrors.ErrCodeIO) {
			err = tmerrors.WrapWithContext(tmerrors.ErrCodeIO, "failed to open output log", err,
				map[string]any{"path": outputPath})
		}
		slog.Error("start failed", "path", outputPath, "error", err)
		c.setLastError(err)
		return err
	}

	renderer, err := c.newRenderer()
	if err != nil {
		slog.Warn("renderer unavailable, plotting disabled for this session", "error", err)
		renderer = render.Nop{}
	}

	info := SessionInfo{
		ID:         uuid.New().String(),
		OutputPath: outputPath,
		StartTime:  c.clock.Now(),
	}
	s := newSession(context.WithoutCancel(ctx), c, info, sampleLog, renderer)

	c.viewMu.Lock()
	c.info = &info
	c.count = &s.count
	c.lastErr = nil
	c.viewMu.Unlock()
	c.latest.Store(nil)

	c.sess = s
	c.setState(StateAcquiring)
	sessionsTotal.WithLabelValues("started").Inc()
	slog.Info("acquisition started", "session", info.ID, "path", outputPath, "interval", c.interval.String())

	s.run()
	return nil
}

// Stop ends the running session. It returns after both loops have exited
// and the log is closed, so no sample is appended afterwards.
func (c *Controller) Stop() error {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()
	c.reapLocked()

	if c.State() != StateAcquiring {
		return c.reject(tmerrors.NewWithContext(tmerrors.ErrCodeInvalidState,
			"acquisition is not running", map[string]any{"state": c.State().String()}))
	}
	return c.stopLocked()
}

func (c *Controller) stopLocked() error {
	s := c.sess
	c.setState(StateStopping)
	s.stop()
	<-s.done
	c.sess = nil
	c.setState(StateConnected)

	if s.err != nil {
		c.setLastError(s.err)
	}
	slog.Info("acquisition stopped", "session", s.info.ID, "samples", s.count.Load())
	return s.err
}

// Disconnect stops any running session and closes the device.
func (c *Controller) Disconnect() error {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()
	c.reapLocked()

	switch c.State() {
	case StateIdle:
		return c.reject(tmerrors.New(tmerrors.ErrCodeInvalidState, "not connected"))
	case StateAcquiring:
		if err := c.stopLocked(); err != nil {
			slog.Warn("session ended with error during disconnect", "error", err)
		}
	}

	err := c.channel.Disconnect()
	c.setConnection("", 0)
	c.setState(StateIdle)
	if err != nil {
		slog.Warn("disconnect failed", "error", err)
		c.setLastError(err)
		return err
	}
	slog.Info("disconnected")
	return nil
}

// Shutdown stops and disconnects from any state. It never fails and may be
// called repeatedly.
func (c *Controller) Shutdown() {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()
	c.reapLocked()

	if c.State() == StateAcquiring {
		if err := c.stopLocked(); err != nil {
			slog.Warn("session ended with error during shutdown", "error", err)
		}
	}
	if c.State() != StateIdle {
		if err := c.channel.Disconnect(); err != nil {
			slog.Warn("disconnect during shutdown failed", "error", err)
		}
		c.setConnection("", 0)
		c.setState(StateIdle)
		slog.Info("controller shut down")
	}
}

// reapLocked forgets a session that ended on its own.
func (c *Controller) reapLocked() {
	if c.sess == nil || c.State() == StateAcquiring {
		return
	}
	<-c.sess.done
	c.sess = nil
}

func (c *Controller) setConnection(port string, baud int) {
	c.viewMu.Lock()
	c.port = port
	c.baud = baud
	c.viewMu.Unlock()
}

// reject records and returns a command error that leaves state unchanged.
func (c *Controller) reject(err error) error {
	var se *tmerrors.StructuredError
	if errors.As(err, &se) {
		slog.Warn("command rejected", "code", string(se.Code), "reason", se.Message)
	}
	c.setLastError(err)
	return err
}
