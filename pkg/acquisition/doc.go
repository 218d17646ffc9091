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

// Package acquisition runs the sampling pipeline and its lifecycle.
//
// A Controller owns the serial channel, the output log and the renderer of
// the current session. Operators drive it through Connect, Start, Stop,
// Disconnect and Shutdown; observers read State, LatestSample, LastError and
// Status without taking the command lock.
//
// Lifecycle:
//
//	Idle → Connecting → Connected → Acquiring → Stopping → Connected
//	any state → Idle on Disconnect or Shutdown
//
// While Acquiring, two goroutines share an errgroup:
//   - the acquisition loop polls the channel once per interval, stamps each
//     line with whole seconds since Start and appends it to the log
//   - the plot loop asks the renderer to redraw the log once per interval
//
// A supervisor goroutine waits for both, closes the log and returns the
// controller to Connected. A failed append ends the session the same way and
// is reported through LastError. Render failures are logged and counted but
// never end a session.
//
// Usage:
//
//	ch := serial.NewChannel()
//	c := acquisition.NewController(ch,
//		acquisition.WithPollInterval(time.Second),
//		acquisition.WithRendererFactory(func() (render.Renderer, error) {
//			return render.New(render.ModeSession)
//		}),
//	)
//	defer c.Shutdown()
//
//	if err := c.Connect(ctx, "/dev/ttyUSB0", 9600); err != nil {
//		return err
//	}
//	if err := c.Start(ctx, "run.txt"); err != nil {
//		return err
//	}
package acquisition
