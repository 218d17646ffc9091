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
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
	"github.com/tempmon/tempmon/pkg/render"
	"github.com/tempmon/tempmon/pkg/timeseries"
)

// session is one Acquiring period: a log, a renderer and the two loops
// writing to and reading from it.
type session struct {
	c        *Controller
	info     SessionInfo
	log      SampleLog
	renderer render.Renderer
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	active atomic.Bool
	count  atomic.Int64

	// done is closed after the log is closed and the controller state has
	// been settled; err is valid after done.
	done chan struct{}
	err  error
}

func newSession(parent context.Context, c *Controller, info SessionInfo, log SampleLog, r render.Renderer) *session {
	ctx, cancel := context.WithCancel(parent)
	s := &session{
		c:        c,
		info:     info,
		log:      log,
		renderer: r,
		logger:   slog.Default().With("session", info.ID),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.active.Store(true)
	return s
}

// run starts both loops and the supervisor.
func (s *session) run() {
	g, gctx := errgroup.WithContext(s.ctx)
	g.Go(func() error { return s.acquire(gctx) })
	g.Go(func() error { return s.plot(gctx) })
	go s.supervise(g)
}

// stop signals both loops; callers wait on done.
func (s *session) stop() {
	s.active.Store(false)
	s.cancel()
}

func (s *session) supervise(g *errgroup.Group) {
	loopErr := g.Wait()
	s.active.Store(false)
	s.cancel()

	closeErr := s.log.Close()
	if closeErr != nil {
		s.logger.Error("failed to close output log", "path", s.info.OutputPath, "error", closeErr)
	}

	switch {
	case loopErr != nil:
		s.err = loopErr
		sessionsTotal.WithLabelValues("failed").Inc()
		s.logger.Error("acquisition ended with error", "error", loopErr, "samples", s.count.Load())
	case closeErr != nil:
		s.err = closeErr
		sessionsTotal.WithLabelValues("failed").Inc()
	default:
		sessionsTotal.WithLabelValues("stopped").Inc()
	}

	if s.err != nil {
		s.c.setLastError(s.err)
	}

	// A session that ends on its own hands the controller back to Connected.
	// During Stop the state is Stopping and Stop settles it instead.
	if s.c.state.CompareAndSwap(int32(StateAcquiring), int32(StateConnected)) {
		stateGauge.Set(float64(StateConnected))
		s.logger.Warn("acquisition terminated", "path", s.info.OutputPath)
	}

	close(s.done)
}

// acquire is the producer loop.
func (s *session) acquire(ctx context.Context) error {
	interval := s.c.interval
	var last int64

	for s.active.Load() {
		cycleStart := time.Now()

		line, ok, err := s.c.channel.TryReadLine(interval)
		switch {
		case err != nil:
			readErrorsTotal.Inc()
			s.logger.Debug("serial read failed", "error", err)
		case ok:
			if !s.active.Load() {
				return nil
			}
			elapsed := int64(s.c.clock.Since(s.info.StartTime) / time.Second)
			if elapsed < last {
				elapsed = last
			}
			last = elapsed

			sample := timeseries.Sample{ElapsedSeconds: elapsed, Value: line}
			if err := s.log.Append(sample); err != nil {
				if !tmerrors.IsCode(err, tmerrors.ErrCodeIO) {
					err = tmerrors.Wrap(tmerrors.ErrCodeIO, "failed to append sample", err)
				}
				return err
			}
			s.count.Add(1)
			s.c.latest.Store(&sample)
			samplesTotal.Inc()
			s.logger.Info("sample", "elapsed", elapsed, "value", line)
		}

		if wait := interval - time.Since(cycleStart); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

// plot is the consumer loop.
func (s *session) plot(ctx context.Context) error {
	defer func() {
		if closer, ok := s.renderer.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				s.logger.Warn("failed to close renderer", "error", err)
			}
		}
	}()

	ticker := time.NewTicker(s.c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !s.active.Load() {
				return nil
			}
			s.refresh(ctx)
		}
	}
}

func (s *session) refresh(ctx context.Context) {
	start := time.Now()
	err := s.renderer.Render(ctx, s.info.OutputPath)
	renderDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if !tmerrors.IsCode(err, tmerrors.ErrCodeRender) {
			err = tmerrors.Wrap(tmerrors.ErrCodeRender, "plot refresh failed", err)
		}
		renderTotal.WithLabelValues("error").Inc()
		s.c.setLastError(err)
		s.logger.Warn("plot refresh failed", "error", err)
		return
	}
	renderTotal.WithLabelValues("success").Inc()
}
