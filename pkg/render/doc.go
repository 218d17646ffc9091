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

// Package render draws the logged series as a two-column line plot.
//
// A Renderer is called once per plot cycle with the path of the current log:
//
//	r, err := render.New(render.ModeSession, render.WithTitle("Temperatura"))
//	if err != nil {
//		return err
//	}
//	defer r.(io.Closer).Close()
//	err = r.Render(ctx, "/var/lib/tempmon/run.txt")
//
// Gnuplot runs in one of two modes:
//   - session: one long-lived gnuplot process per acquisition session; each
//     Render re-issues the plot on its stdin. Close ends the process.
//   - oneshot: a new gnuplot process per Render, bounded by a timeout.
//
// ModeNone yields a Renderer that does nothing, for headless hosts.
// Failures are RENDER errors; callers treat them as non-fatal.
package render
