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

// Package timeseries persists acquisition samples to a plain-text log.
//
// The log is a header line followed by one "<elapsed_seconds>, <value>" line
// per sample:
//
//	Tempo (s), Temperatura (°C)
//	0, 21.50
//	1, 21.56
//
// Every Append goes straight to the file and, unless disabled, is synced so a
// crash loses at most the sample being written. ReadFile parses a log back for
// re-plotting and export.
package timeseries
