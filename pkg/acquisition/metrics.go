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

package acquisition

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	samplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tempmon_samples_total",
			Help: "Total number of samples appended to output logs",
		},
	)

	readErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tempmon_read_errors_total",
			Help: "Total number of serial read cycles that failed",
		},
	)

	renderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tempmon_render_total",
			Help: "Total number of plot refreshes",
		},
		[]string{"status"}, // success or error
	)

	renderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tempmon_render_duration_seconds",
			Help:    "Time taken by a single plot refresh",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	sessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tempmon_sessions_total",
			Help: "Total number of acquisition sessions by outcome",
		},
		[]string{"status"}, // started, stopped, failed
	)

	stateGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempmon_state",
			Help: "Current controller state (0 idle, 1 connecting, 2 connected, 3 acquiring, 4 stopping)",
		},
	)
)
