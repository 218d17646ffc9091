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

// Package server implements the read-only tempmon status API.
//
// The server runs next to the operator console or a headless recording and
// lets dashboards and probes observe the acquisition controller without
// touching it.
//
// # Endpoints
//
//   - GET /          service name, version and registered routes
//   - GET /health    liveness, always 200 while the process serves
//   - GET /ready     200 while the readiness check passes, 503 otherwise
//   - GET /metrics   Prometheus metrics
//   - GET /v1/status controller status (registered by the CLI with WithHandler)
//
// # Middleware
//
// Handlers registered with WithHandler are wrapped, outermost first, with:
// Prometheus RED metrics, API version negotiation, request ID tracking
// (X-Request-Id, UUID), panic recovery, token-bucket rate limiting
// (golang.org/x/time/rate) and request logging.
//
// # Usage
//
//	s := server.New(
//		server.WithName("tempmon"),
//		server.WithVersion(version),
//		server.WithConfig(cfg),
//		server.WithReadiness(func() bool { return ctrl.State() == acquisition.StateAcquiring }),
//		server.WithHandler(map[string]http.HandlerFunc{
//			"/v1/status": server.JSONHandler(func() any { return ctrl.Status() }),
//		}),
//	)
//	if err := s.Start(ctx); err != nil {
//		return err
//	}
//
// Start blocks until ctx is cancelled, then shuts down gracefully within
// Config.ShutdownTimeout.
//
// # Error responses
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded",
//	  "details": {"limit": 20, "burst": 40},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-15T10:30:00Z",
//	  "retryable": true
//	}
package server
