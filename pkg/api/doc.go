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

// Package api wires the acquisition controller into the status HTTP server.
//
// Routes:
//
//	GET /v1/status   controller status as JSON
//	GET /health      liveness
//	GET /ready       200 while a device is connected
//	GET /metrics     Prometheus metrics
//
// The server is read-only; commands are issued through the console.
package api
