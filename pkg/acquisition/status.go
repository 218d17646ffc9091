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
	"time"

	"github.com/tempmon/tempmon/pkg/timeseries"
)

// SessionInfo describes the running or most recent session.
type SessionInfo struct {
	ID         string    `json:"id" yaml:"id"`
	OutputPath string    `json:"outputPath" yaml:"outputPath"`
	StartTime  time.Time `json:"startTime" yaml:"startTime"`
}

// Status is a point-in-time view of the controller.
type Status struct {
	State        State              `json:"state" yaml:"state"`
	Port         string             `json:"port,omitempty" yaml:"port,omitempty"`
	Baud         int                `json:"baud,omitempty" yaml:"baud,omitempty"`
	PollInterval string             `json:"pollInterval" yaml:"pollInterval"`
	Session      *SessionInfo       `json:"session,omitempty" yaml:"session,omitempty"`
	Samples      int64              `json:"samples" yaml:"samples"`
	LatestSample *timeseries.Sample `json:"latestSample,omitempty" yaml:"latestSample,omitempty"`
	LastError    string             `json:"lastError,omitempty" yaml:"lastError,omitempty"`
}
