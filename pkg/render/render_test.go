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

package render

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
)

func requireCommand(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeSession},
		{in: "session", want: ModeSession},
		{in: "ONESHOT", want: ModeOneshot},
		{in: " none ", want: ModeNone},
		{in: "window", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	r, err := New(ModeNone)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, r)
	assert.NoError(t, r.Render(context.Background(), "/tmp/x"))

	r, err = New(ModeSession)
	require.NoError(t, err)
	g, ok := r.(*Gnuplot)
	require.True(t, ok)
	assert.True(t, g.session)

	r, err = New(ModeOneshot, WithTitle("Sala"))
	require.NoError(t, err)
	g, ok = r.(*Gnuplot)
	require.True(t, ok)
	assert.False(t, g.session)
	assert.Equal(t, "Sala", g.title)

	_, err = New(Mode("bogus"))
	assert.Error(t, err)
}

func TestFunc(t *testing.T) {
	var got string
	r := Func(func(_ context.Context, p string) error {
		got = p
		return errors.New("boom")
	})
	err := r.Render(context.Background(), "run.txt")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, "run.txt", got)
}

func TestScript(t *testing.T) {
	s := Script("/data/o'brien.txt", "Temperatura")
	assert.Contains(t, s, "set datafile separator \",\"")
	assert.Contains(t, s, "plot '/data/o''brien.txt' skip 1 using 1:2 with lines title 'Temperatura'")
	assert.True(t, strings.HasSuffix(s, "\n"))
}

func TestGnuplot_Oneshot(t *testing.T) {
	cat := requireCommand(t, "cat")

	g := NewGnuplot(false, WithCommand(cat))
	require.NoError(t, g.Render(context.Background(), "run.txt"))
	require.NoError(t, g.Close())
}

func TestGnuplot_OneshotFailure(t *testing.T) {
	falseCmd := requireCommand(t, "false")

	g := NewGnuplot(false, WithCommand(falseCmd))
	err := g.Render(context.Background(), "run.txt")
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeRender))
}

func TestGnuplot_MissingBinary(t *testing.T) {
	for _, session := range []bool{true, false} {
		g := NewGnuplot(session, WithCommand("tempmon-no-such-renderer"))
		err := g.Render(context.Background(), "run.txt")
		require.Error(t, err)
		assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeRender))
		require.NoError(t, g.Close())
	}
}

func TestGnuplot_Session(t *testing.T) {
	cat := requireCommand(t, "cat")

	g := NewGnuplot(true, WithCommand(cat), WithCloseTimeout(time.Second))
	for i := 0; i < 3; i++ {
		require.NoError(t, g.Render(context.Background(), "run.txt"))
	}

	g.mu.Lock()
	first := g.proc
	g.mu.Unlock()
	require.NotNil(t, first)

	require.NoError(t, g.Render(context.Background(), "run.txt"))
	g.mu.Lock()
	assert.Same(t, first, g.proc, "session should reuse one process")
	g.mu.Unlock()

	require.NoError(t, g.Close())
	require.NoError(t, g.Close())

	g.mu.Lock()
	assert.Nil(t, g.proc)
	g.mu.Unlock()
}

func TestGnuplot_SessionRestartsAfterExit(t *testing.T) {
	trueCmd := requireCommand(t, "true")

	g := NewGnuplot(true, WithCommand(trueCmd))
	// "true" exits immediately; a later render starts a fresh process or
	// reports the broken pipe, never hangs.
	for i := 0; i < 3; i++ {
		err := g.Render(context.Background(), "run.txt")
		if err != nil {
			assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeRender))
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, g.Close())
}

func TestGnuplot_OneshotLingeringChild(t *testing.T) {
	requireCommand(t, "sh")
	requireCommand(t, "sleep")

	tests := []struct {
		name    string
		timeout time.Duration
		cancel  bool
		wantErr bool
	}{
		{name: "cancelled", timeout: 200 * time.Millisecond, cancel: true, wantErr: true},
		{name: "exited cleanly", timeout: 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGnuplot(false,
				WithCommand("sh", "-c", "sleep 3 & exit 0"),
				WithTimeout(tt.timeout),
				WithCloseTimeout(200*time.Millisecond))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				time.AfterFunc(100*time.Millisecond, cancel)
			}

			start := time.Now()
			err := g.Render(ctx, "run.txt")
			assert.Less(t, time.Since(start), 2*time.Second)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, tmerrors.IsCode(err, tmerrors.ErrCodeRender))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGnuplot_CloseWithFullInput(t *testing.T) {
	sleepCmd := requireCommand(t, "sleep")

	g := NewGnuplot(true, WithCommand(sleepCmd, "30"), WithCloseTimeout(200*time.Millisecond))
	require.NoError(t, g.Render(context.Background(), "run.txt"))

	g.mu.Lock()
	stdin := g.stdin
	g.mu.Unlock()

	// sleep never reads, so this fills the pipe and blocks until the process dies.
	filled := make(chan struct{})
	go func() {
		defer close(filled)
		_, _ = stdin.Write(make([]byte, 1<<20))
	}()
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	require.NoError(t, g.Close())
	assert.Less(t, time.Since(start), 3*time.Second)

	select {
	case <-filled:
	case <-time.After(3 * time.Second):
		t.Fatal("pending write was not released")
	}
}
