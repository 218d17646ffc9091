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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
)

// ReadFile parses the log at path.
func ReadFile(path string) (Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tmerrors.WrapWithContext(tmerrors.ErrCodeIO, "failed to open log", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	samples, err := Parse(f)
	if err != nil {
		return nil, tmerrors.WrapWithContext(tmerrors.ErrCodeIO, "failed to parse log", err,
			map[string]any{"path": path})
	}
	return samples, nil
}

// Parse reads samples from r. The header line is optional, blank lines are
// ignored and both LF and CRLF terminators are accepted.
func Parse(r io.Reader) (Samples, error) {
	var out Samples
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lineNo == 1 && line == Header {
			continue
		}

		elapsedStr, value, found := strings.Cut(line, ",")
		if !found {
			return nil, tmerrors.NewWithContext(tmerrors.ErrCodeValidation, "malformed log line",
				map[string]any{"line": lineNo})
		}
		elapsed, err := strconv.ParseInt(strings.TrimSpace(elapsedStr), 10, 64)
		if err != nil || elapsed < 0 {
			return nil, tmerrors.NewWithContext(tmerrors.ErrCodeValidation, "invalid elapsed seconds",
				map[string]any{"line": lineNo, "value": elapsedStr})
		}
		out = append(out, Sample{ElapsedSeconds: elapsed, Value: strings.TrimSpace(value)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
