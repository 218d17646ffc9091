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

package api

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/tempmon/tempmon/pkg/acquisition"
	"github.com/tempmon/tempmon/pkg/config"
	"github.com/tempmon/tempmon/pkg/server"
)

const name = "tempmon-status"

// StatusPath is the route serving the controller status.
const StatusPath = "/v1/status"

// StatusSource provides controller snapshots.
type StatusSource interface {
	Status() acquisition.Status
}

// NewStatusServer builds the status server for src.
func NewStatusServer(src StatusSource, cfg config.ServerConfig, version string) *server.Server {
	sc := server.NewConfig()
	sc.Address = cfg.Address
	sc.Port = cfg.Port
	if cfg.RateLimit > 0 {
		sc.RateLimit = rate.Limit(cfg.RateLimit)
	}
	if cfg.RateLimitBurst > 0 {
		sc.RateLimitBurst = cfg.RateLimitBurst
	}

	return server.New(
		server.WithConfig(sc),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(map[string]http.HandlerFunc{
			StatusPath: server.JSONHandler(func() any { return src.Status() }),
		}),
		server.WithReadiness(func() bool {
			switch src.Status().State {
			case acquisition.StateConnected, acquisition.StateAcquiring:
				return true
			default:
				return false
			}
		}),
	)
}

// Serve runs the status server until ctx is cancelled. It returns
// immediately when the server is disabled in cfg.
func Serve(ctx context.Context, src StatusSource, cfg config.ServerConfig, version string) error {
	if !cfg.Enabled() {
		slog.Debug("status server disabled")
		return nil
	}
	return NewStatusServer(src, cfg, version).Start(ctx)
}
