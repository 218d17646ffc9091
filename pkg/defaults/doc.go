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

// Package defaults provides centralized configuration constants for tempmon.
//
// This package defines the serial device defaults, the acquisition cadence,
// renderer timeouts and the status server timeouts used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// # Categories
//
//   - Serial defaults: port, baud rate, read buffer size, line encoding
//   - Acquisition cadence: polling interval and its accepted bounds
//   - Render timeouts: per-invocation and session shutdown bounds
//   - Server timeouts: for the optional status HTTP server
//
// Values here are overridable through pkg/config; nothing in this package is
// mutable at runtime.
package defaults
