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

// Package cli implements the tempmon command line.
//
// # Commands
//
// console - Interactive operator console:
//
//	tempmon console [--port /dev/ttyUSB0] [--baud 9600] [--status-port 8080]
//
// Reads commands (connect, disconnect, start, stop, status, ports, help,
// quit) from stdin. End of input, quit, SIGINT or SIGTERM shut the session
// down before exit.
//
// record - Headless acquisition session:
//
//	tempmon record --output run.txt [--duration 30m]
//
// Connects, logs samples to --output and refreshes the plot until the
// duration elapses or a signal arrives. Reports READY=1 and STOPPING=1 to
// systemd when NOTIFY_SOCKET is set.
//
// ports - List serial ports:
//
//	tempmon ports [--format table|json|yaml] [--output ports.json]
//
// plot - Plot an existing log once:
//
//	tempmon plot run.txt
//
// export - Print the samples of a log:
//
//	tempmon export --format json run.txt
//
// # Global Flags
//
//	--config, -c   YAML configuration file (env TEMPMON_CONFIG)
//	--log-level    Log level: debug, info, warn, error (env LOG_LEVEL)
//	--version      Show version information
//
// # Configuration
//
// Settings are resolved in order: built-in defaults, the configuration
// file, the TEMPMON_PORT, TEMPMON_BAUD, TEMPMON_POLL_INTERVAL and
// TEMPMON_STATUS_PORT environment variables, then command flags.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/tempmon/tempmon/pkg/cli.version=1.0.0'"
package cli
