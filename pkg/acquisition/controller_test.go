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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
	"github.com/tempmon/tempmon/pkg/render"
	"github.com/tempmon/tempmon/pkg/timeseries"
)

const testInterval = 10 * time.Millisecond

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	c     *Controller
	ch    *fakeChannel
	logs  *logRecorder
	clock *clocktesting.FakeClock
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		ch:    newFakeChannel(),
		logs:  &logRecorder{},
		clock: clocktesting.NewFakeClock(testStart),
	}
	base := []Option{
		WithPollInterval(testInterval),
		WithClock(h.clock),
		WithLogOpener(h.logs.open),
	}
	h.c = NewController(h.ch, append(base, opts...)...)
	t.Cleanup(h.c.Shutdown)
	return h
}

func (h *harness) connect(t *testing.T) {
	t.Helper()
	require.NoError(t, h.c.Connect(context.Background(), "/dev/fake", 9600))
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	h.connect(t)
	require.NoError(t, h.c.Start(context.Background(), "run.txt"))
}

func (h *harness) waitSamples(t *testing.T, n int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.c.Status().Samples >= n
	}, 2*time.Second, time.Millisecond)
}

func TestController_InitialState(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, StateIdle, h.c.State())

	_, ok := h.c.LatestSample()
	assert.False(t, ok)
	assert.NoError(t, h.c.LastError())

	tests := []struct {
		name string
		call func() error
	}{
		{name: "start", call: func() error { return h.c.Start(context.Background(), "run.txt") }},
		{name: "stop", call: h.c.Stop},
		{name: "disconnect", call: h.c.Disconnect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeInvalidState))
			assert.Equal(t, StateIdle, h.c.State())
		})
	}
	assert.Equal(t, 0, h.logs.opened())
}

func TestController_ConnectUnavailable(t *testing.T) {
	h := newHarness(t)
	h.ch.connectErr = errors.New("no such device")

	err := h.c.Connect(context.Background(), "/dev/missing", 9600)
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeConnect))
	assert.Equal(t, StateIdle, h.c.State())
	assert.Error(t, h.c.LastError())
	assert.Contains(t, h.c.Status().LastError, "no such device")
}

func TestController_ConnectCancelled(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.c.Connect(ctx, "/dev/fake", 9600)
	require.Error(t, err)
	assert.Equal(t, StateIdle, h.c.State())
	assert.Equal(t, 0, h.ch.connects)
}

func TestController_Reconnect(t *testing.T) {
	h := newHarness(t)
	h.connect(t)
	require.NoError(t, h.c.Connect(context.Background(), "/dev/other", 115200))

	assert.Equal(t, StateConnected, h.c.State())
	assert.Equal(t, 2, h.ch.connects)
	assert.Equal(t, 1, h.ch.disconnects)

	st := h.c.Status()
	assert.Equal(t, "/dev/other", st.Port)
	assert.Equal(t, 115200, st.Baud)
}

func TestController_StartEmptyPath(t *testing.T) {
	h := newHarness(t)
	h.connect(t)

	for _, path := range []string{"", "   "} {
		err := h.c.Start(context.Background(), path)
		require.Error(t, err)
		assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeValidation))
		assert.Equal(t, StateConnected, h.c.State())
	}
	assert.Equal(t, 0, h.logs.opened())
}

func TestController_StartOpenFailure(t *testing.T) {
	h := newHarness(t)
	h.logs.err = errors.New("permission denied")
	h.connect(t)

	err := h.c.Start(context.Background(), "/root/run.txt")
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeIO))
	assert.Equal(t, StateConnected, h.c.State())
}

func TestController_DoubleStartRejected(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	err := h.c.Start(context.Background(), "other.txt")
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeInvalidState))
	assert.Equal(t, StateAcquiring, h.c.State())
	assert.Equal(t, 1, h.logs.opened())
}

func TestController_ConnectWhileAcquiringRejected(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	err := h.c.Connect(context.Background(), "/dev/other", 9600)
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeInvalidState))
	assert.Equal(t, StateAcquiring, h.c.State())
	assert.Equal(t, 1, h.ch.connects)
}

func TestController_ElapsedSeconds(t *testing.T) {
	h := newHarness(t, WithLogOpener(func(p string) (SampleLog, error) {
		return timeseries.Open(p)
	}))
	path := filepath.Join(t.TempDir(), "run.txt")

	h.connect(t)
	require.NoError(t, h.c.Start(context.Background(), path))

	for i, v := range []string{"21.50", "21.56", "21.61"} {
		if i > 0 {
			h.clock.Step(time.Second)
		}
		h.ch.lines <- v
		h.waitSamples(t, int64(i+1))
	}
	require.NoError(t, h.c.Stop())
	assert.Equal(t, StateConnected, h.c.State())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, []string{timeseries.Header, "0, 21.50", "1, 21.56", "2, 21.61"}, lines)

	samples, err := timeseries.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, samples, 3)

	latest, ok := h.c.LatestSample()
	require.True(t, ok)
	assert.Equal(t, timeseries.Sample{ElapsedSeconds: 2, Value: "21.61"}, latest)
}

func TestController_ElapsedNeverDecreases(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.clock.Step(3 * time.Second)
	h.ch.lines <- "a"
	h.waitSamples(t, 1)

	h.clock.SetTime(testStart.Add(time.Second))
	h.ch.lines <- "b"
	h.waitSamples(t, 2)

	require.NoError(t, h.c.Stop())
	samples, _, _ := h.logs.last().snapshot()
	require.Len(t, samples, 2)
	assert.Equal(t, int64(3), samples[0].ElapsedSeconds)
	assert.Equal(t, int64(3), samples[1].ElapsedSeconds)
}

func TestController_NoAppendAfterStop(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.ch.lines <- "1"
	h.waitSamples(t, 1)
	require.NoError(t, h.c.Stop())

	log := h.logs.last()
	before, closed, _ := log.snapshot()
	assert.True(t, closed)

	h.ch.lines <- "2"
	h.ch.lines <- "3"
	time.Sleep(5 * testInterval)

	after, _, late := log.snapshot()
	assert.Equal(t, before, after)
	assert.Zero(t, late)
	assert.Equal(t, StateConnected, h.c.State())

	err := h.c.Stop()
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeInvalidState))
}

func TestController_DisconnectWhileAcquiring(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.ch.lines <- "1"
	h.waitSamples(t, 1)

	require.NoError(t, h.c.Disconnect())
	assert.Equal(t, StateIdle, h.c.State())
	assert.False(t, h.ch.isConnected())

	log := h.logs.last()
	before, closed, _ := log.snapshot()
	assert.True(t, closed)

	h.ch.lines <- "2"
	time.Sleep(5 * testInterval)
	after, _, late := log.snapshot()
	assert.Equal(t, before, after)
	assert.Zero(t, late)
	assert.Empty(t, h.c.Status().Port)
}

func TestController_AppendFailureEndsSession(t *testing.T) {
	h := newHarness(t)
	h.connect(t)
	require.NoError(t, h.c.Start(context.Background(), "run.txt"))
	log := h.logs.last()
	log.mu.Lock()
	log.failOn = 2
	log.mu.Unlock()

	h.ch.lines <- "1"
	h.ch.lines <- "2"

	require.Eventually(t, func() bool {
		return h.c.State() == StateConnected
	}, 2*time.Second, time.Millisecond)

	err := h.c.LastError()
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeIO))

	_, closed, _ := log.snapshot()
	assert.True(t, closed)

	// the controller is usable again
	require.NoError(t, h.c.Start(context.Background(), "again.txt"))
	assert.Equal(t, StateAcquiring, h.c.State())
	assert.Equal(t, 2, h.logs.opened())
	require.NoError(t, h.c.Stop())
}

func TestController_RenderFailuresAreNonFatal(t *testing.T) {
	r := &fakeRenderer{err: errors.New("no display")}
	h := newHarness(t, WithRendererFactory(func() (render.Renderer, error) { return r, nil }))
	h.start(t)

	require.Eventually(t, func() bool {
		calls, _ := r.state()
		return calls >= 3
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, StateAcquiring, h.c.State())
	assert.True(t, tmerrors.IsCode(h.c.LastError(), tmerrors.ErrCodeRender))

	h.ch.lines <- "1"
	h.waitSamples(t, 1)

	require.NoError(t, h.c.Stop())
	_, closed := r.state()
	assert.True(t, closed, "renderer should be closed when the session ends")
}

func TestController_RendererFactoryError(t *testing.T) {
	h := newHarness(t, WithRendererFactory(func() (render.Renderer, error) {
		return nil, errors.New("gnuplot not installed")
	}))
	h.start(t)
	assert.Equal(t, StateAcquiring, h.c.State())
	h.ch.lines <- "1"
	h.waitSamples(t, 1)
	require.NoError(t, h.c.Stop())
}

func TestController_Shutdown(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		h := newHarness(t)
		h.c.Shutdown()
		h.c.Shutdown()
		assert.Equal(t, StateIdle, h.c.State())
		assert.Equal(t, 0, h.ch.disconnects)
	})

	t.Run("connected", func(t *testing.T) {
		h := newHarness(t)
		h.connect(t)
		h.c.Shutdown()
		assert.Equal(t, StateIdle, h.c.State())
		assert.False(t, h.ch.isConnected())
	})

	t.Run("acquiring", func(t *testing.T) {
		h := newHarness(t)
		h.start(t)
		h.c.Shutdown()
		h.c.Shutdown()
		assert.Equal(t, StateIdle, h.c.State())
		_, closed, _ := h.logs.last().snapshot()
		assert.True(t, closed)
	})
}

func TestController_Status(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.ch.lines <- "22.0"
	h.waitSamples(t, 1)

	st := h.c.Status()
	assert.Equal(t, StateAcquiring, st.State)
	assert.Equal(t, "/dev/fake", st.Port)
	assert.Equal(t, 9600, st.Baud)
	assert.Equal(t, testInterval.String(), st.PollInterval)
	require.NotNil(t, st.Session)
	assert.Equal(t, "run.txt", st.Session.OutputPath)
	assert.Equal(t, testStart, st.Session.StartTime)
	assert.NotEmpty(t, st.Session.ID)
	require.NotNil(t, st.LatestSample)
	assert.Equal(t, "22.0", st.LatestSample.Value)
	assert.Empty(t, st.LastError)
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateIdle:       "idle",
		StateConnecting: "connecting",
		StateConnected:  "connected",
		StateAcquiring:  "acquiring",
		StateStopping:   "stopping",
		State(42):       "unknown",
	}
	for s, want := range tests {
		assert.Equal(t, want, s.String())
		text, err := s.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(text))
	}
}
