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
	"fmt"
	"strings"
)

// Renderer draws the series stored in the log at logPath.
type Renderer interface {
	Render(ctx context.Context, logPath string) error
}

// Func adapts a function to Renderer.
type Func func(ctx context.Context, logPath string) error

// Render implements Renderer.
func (f Func) Render(ctx context.Context, logPath string) error {
	return f(ctx, logPath)
}

// Nop discards every render request.
type Nop struct{}

// Render implements Renderer.
func (Nop) Render(context.Context, string) error { return nil }

// Mode selects how plots are produced.
type Mode string

const (
	// ModeSession keeps one renderer process per acquisition session.
	ModeSession Mode = "session"
	// ModeOneshot starts a renderer process per plot cycle.
	ModeOneshot Mode = "oneshot"
	// ModeNone disables plotting.
	ModeNone Mode = "none"
)

// SupportedModes returns the accepted mode names.
func SupportedModes() []string {
	return []string{string(ModeSession), string(ModeOneshot), string(ModeNone)}
}

// ParseMode maps a configuration value to a Mode. Empty selects ModeSession.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSession:
		return ModeSession, nil
	case ModeOneshot:
		return ModeOneshot, nil
	case ModeNone:
		return ModeNone, nil
	default:
		return "", fmt.Errorf("unsupported render mode %q (supported: %s)", s, strings.Join(SupportedModes(), ", "))
	}
}

// New builds the Renderer for mode.
func New(mode Mode, opts ...Option) (Renderer, error) {
	switch mode {
	case ModeSession, ModeOneshot:
		return NewGnuplot(mode == ModeSession, opts...), nil
	case ModeNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unsupported render mode %q", mode)
	}
}
