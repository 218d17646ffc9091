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
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/tempmon/tempmon/pkg/defaults"
	tmerrors "github.com/tempmon/tempmon/pkg/errors"
)

const (
	defaultCommand = "gnuplot"
	defaultTitle   = "Temperatura"
)

// Gnuplot renders through the gnuplot executable.
type Gnuplot struct {
	command      string
	args         []string
	title        string
	timeout      time.Duration
	closeTimeout time.Duration
	session      bool

	mu    sync.Mutex
	proc  *exec.Cmd
	stdin io.WriteCloser
	done  chan struct{}
}

// Option configures a Gnuplot renderer.
type Option func(*Gnuplot)

// WithCommand overrides the executable and its arguments.
func WithCommand(name string, args ...string) Option {
	return func(g *Gnuplot) {
		if name != "" {
			g.command = name
			g.args = args
		}
	}
}

// WithTitle sets the legend title of the plotted line.
func WithTitle(title string) Option {
	return func(g *Gnuplot) {
		if title != "" {
			g.title = title
		}
	}
}

// WithTimeout bounds a single Render call.
func WithTimeout(d time.Duration) Option {
	return func(g *Gnuplot) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithCloseTimeout bounds how long Close waits for a session process to exit.
func WithCloseTimeout(d time.Duration) Option {
	return func(g *Gnuplot) {
		if d > 0 {
			g.closeTimeout = d
		}
	}
}

// NewGnuplot returns a gnuplot renderer. With session set, one process is
// kept alive across Render calls until Close.
func NewGnuplot(session bool, opts ...Option) *Gnuplot {
	g := &Gnuplot{
		command:      defaultCommand,
		args:         []string{"-persist"},
		title:        defaultTitle,
		timeout:      defaults.RenderTimeout,
		closeTimeout: defaults.RenderCloseTimeout,
		session:      session,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Script returns the gnuplot commands that plot logPath.
func Script(logPath, title string) string {
	var b strings.Builder
	b.WriteString("set datafile separator \",\"\n")
	b.WriteString("set xlabel \"Tempo (s)\"\n")
	b.WriteString("set ylabel \"Temperatura (°C)\"\n")
	fmt.Fprintf(&b, "plot %s skip 1 using 1:2 with lines title %s\n", quote(logPath), quote(title))
	return b.String()
}

// quote produces a single-quoted gnuplot string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Render implements Renderer.
func (g *Gnuplot) Render(ctx context.Context, logPath string) error {
	if g.session {
		return g.renderSession(ctx, logPath)
	}
	return g.renderOneshot(ctx, logPath)
}

func (g *Gnuplot) renderOneshot(ctx context.Context, logPath string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, g.command, g.args...)
	cmd.Stdin = strings.NewReader(Script(logPath, g.title))
	// Children of gnuplot may inherit the output pipe and outlive it.
	cmd.WaitDelay = g.closeTimeout

	out, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return tmerrors.WrapWithContext(tmerrors.ErrCodeRender, "gnuplot did not finish in time", ctxErr,
			map[string]any{"command": g.command, "timeout": g.timeout.String()})
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		slog.Debug("gnuplot exited with its output still held open", "command", g.command)
		return nil
	}
	if err != nil {
		return tmerrors.WrapWithContext(tmerrors.ErrCodeRender, "gnuplot failed", err,
			map[string]any{"command": g.command, "output": strings.TrimSpace(string(out))})
	}
	return nil
}

func (g *Gnuplot) renderSession(ctx context.Context, logPath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.proc != nil && g.exitedLocked() {
		slog.Warn("gnuplot session exited, restarting", "command", g.command)
		g.resetLocked()
	}
	if g.proc == nil {
		if err := g.startLocked(); err != nil {
			return err
		}
	}

	script := Script(logPath, g.title)
	written := make(chan error, 1)
	stdin := g.stdin
	go func() {
		_, err := io.WriteString(stdin, script)
		written <- err
	}()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case err := <-written:
		if err != nil {
			g.killLocked()
			return tmerrors.Wrap(tmerrors.ErrCodeRender, "failed to send plot to gnuplot", err)
		}
		return nil
	case <-timer.C:
		g.killLocked()
		return tmerrors.New(tmerrors.ErrCodeRender, "gnuplot did not accept the plot in time")
	case <-ctx.Done():
		g.killLocked()
		return tmerrors.Wrap(tmerrors.ErrCodeRender, "render cancelled", ctx.Err())
	}
}

func (g *Gnuplot) startLocked() error {
	cmd := exec.Command(g.command, g.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return tmerrors.Wrap(tmerrors.ErrCodeRender, "failed to open gnuplot stdin", err)
	}
	if err := cmd.Start(); err != nil {
		return tmerrors.WrapWithContext(tmerrors.ErrCodeRender, "failed to start gnuplot", err,
			map[string]any{"command": g.command})
	}

	done := make(chan struct{})
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("gnuplot session ended", "error", err)
		}
		close(done)
	}()

	g.proc = cmd
	g.stdin = stdin
	g.done = done
	slog.Debug("gnuplot session started", "command", g.command, "pid", cmd.Process.Pid)
	return nil
}

func (g *Gnuplot) exitedLocked() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

func (g *Gnuplot) killLocked() {
	if g.proc == nil {
		return
	}
	if err := g.proc.Process.Kill(); err != nil {
		slog.Debug("failed to kill gnuplot", "error", err)
	}
	<-g.done
	g.resetLocked()
}

func (g *Gnuplot) resetLocked() {
	if g.stdin != nil {
		_ = g.stdin.Close()
	}
	g.proc = nil
	g.stdin = nil
	g.done = nil
}

// Close ends the session process, killing it if it does not quit within the
// close timeout. It is a no-op in oneshot mode and safe to call repeatedly.
func (g *Gnuplot) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.proc == nil {
		return nil
	}

	// The write can block on a full pipe, so it must not hold up the timeout.
	stdin := g.stdin
	go func() {
		if _, err := io.WriteString(stdin, "quit\n"); err != nil {
			slog.Debug("failed to send quit to gnuplot", "error", err)
		}
		_ = stdin.Close()
	}()

	timer := time.NewTimer(g.closeTimeout)
	defer timer.Stop()

	select {
	case <-g.done:
	case <-timer.C:
		slog.Warn("gnuplot did not exit in time, killing", "timeout", g.closeTimeout)
		if err := g.proc.Process.Kill(); err != nil {
			slog.Debug("failed to kill gnuplot", "error", err)
		}
		<-g.done
		_ = stdin.Close()
	}

	g.proc = nil
	g.stdin = nil
	g.done = nil
	return nil
}
