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

package timeseries

import (
	"strconv"
)

// Header is the first line of every log.
const Header = "Tempo (s), Temperatura (°C)"

// Sample is a single reading, timestamped relative to acquisition start.
type Sample struct {
	ElapsedSeconds int64  `json:"elapsedSeconds" yaml:"elapsedSeconds"`
	Value          string `json:"value" yaml:"value"`
}

// String formats the sample as a log line without the terminator.
func (s Sample) String() string {
	return strconv.FormatInt(s.ElapsedSeconds, 10) + ", " + s.Value
}

// Samples renders as a two-column table.
type Samples []Sample

// TableHeader implements serializer.Tabular.
func (s Samples) TableHeader() []string {
	return []string{"ELAPSED (s)", "VALUE"}
}

// TableRows implements serializer.Tabular.
func (s Samples) TableRows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, v := range s {
		rows = append(rows, []string{strconv.FormatInt(v.ElapsedSeconds, 10), v.Value})
	}
	return rows
}
