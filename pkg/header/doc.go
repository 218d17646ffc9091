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

// Package header provides the envelope written ahead of exported documents.
//
// A Header carries the document kind, an API version and free-form string
// metadata such as the export timestamp, the tool version and the source
// log path. Documents embed it so JSON and YAML output start with:
//
//	kind: SampleLog
//	apiVersion: tempmon.io/v1
//	metadata:
//	  source: run.txt
//	  timestamp: "2025-01-01T00:00:00Z"
//	  version: v1.2.0
package header
