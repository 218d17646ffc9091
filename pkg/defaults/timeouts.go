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

package defaults

import "time"

// Serial device defaults.
const (
	// SerialPort is the device opened when no port is configured.
	SerialPort = "/dev/ttyUSB0"

	// SerialBaudRate is the default line speed of the sensor board.
	SerialBaudRate = 9600

	// SerialReadBufferSize bounds the length of a single serial line in bytes.
	SerialReadBufferSize = 256

	// SerialEncoding is the default text encoding of device lines.
	SerialEncoding = "utf-8"
)

// Acquisition cadence.
const (
	// PollInterval is the cadence of both the acquisition and plot refresh loops.
	// Stop requests are observed within one interval.
	PollInterval = 1 * time.Second

	// MinPollInterval is the smallest interval accepted from configuration.
	MinPollInterval = 10 * time.Millisecond

	// MaxPollInterval is the largest interval accepted from configuration.
	MaxPollInterval = 1 * time.Minute
)

// Render timeouts.
const (
	// RenderTimeout bounds a single render invocation.
	// Should be shorter than a typical PollInterval multiple so a hung renderer
	// does not pile up cycles.
	RenderTimeout = 5 * time.Second

	// RenderCloseTimeout is how long a persistent renderer session may take to exit.
	RenderCloseTimeout = 2 * time.Second
)

// Render defaults.
const (
	// RenderMode keeps one gnuplot process per acquisition session.
	RenderMode = "session"

	// RenderCommand is the plotting executable.
	RenderCommand = "gnuplot"
)

// Status server defaults.
const (
	// StatusPort disables the status server when zero.
	StatusPort = 0

	// StatusRateLimit is the sustained request rate per second.
	StatusRateLimit = 20

	// StatusRateLimitBurst is the maximum burst of requests.
	StatusRateLimitBurst = 40
)

// Server timeouts for the status HTTP server.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
