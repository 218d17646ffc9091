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

// Package config loads tempmon settings.
//
// Settings come from three layers, later layers winning:
//  1. built-in defaults (pkg/defaults)
//  2. an optional YAML or JSON file
//  3. environment variables
//
// Command-line flags are applied on top by the CLI.
//
// Example file:
//
//	serial:
//	  port: /dev/ttyACM0
//	  baud: 115200
//	  readBufferSize: 256
//	  encoding: latin1
//	acquisition:
//	  pollInterval: 500ms
//	  sync: true
//	render:
//	  mode: session
//	  command: gnuplot
//	  title: Estufa
//	server:
//	  port: 9090
//
// Environment variables:
//   - TEMPMON_PORT: serial device
//   - TEMPMON_BAUD: baud rate
//   - TEMPMON_POLL_INTERVAL: polling interval as a Go duration ("2s")
//   - TEMPMON_STATUS_PORT: status server port, 0 disables it
package config
