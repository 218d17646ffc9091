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
	"github.com/tempmon/tempmon/pkg/header"
)

// Document is the exported form of a log.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Samples Samples `json:"samples" yaml:"samples"`
}

// NewDocument wraps samples in a SampleLog document.
func NewDocument(samples Samples, opts ...header.Option) *Document {
	if samples == nil {
		samples = Samples{}
	}
	return &Document{
		Header:  header.New(header.KindSampleLog, opts...),
		Samples: samples,
	}
}

// TableHeader implements serializer.Tabular.
func (d *Document) TableHeader() []string {
	return d.Samples.TableHeader()
}

// TableRows implements serializer.Tabular.
func (d *Document) TableRows() [][]string {
	return d.Samples.TableRows()
}
