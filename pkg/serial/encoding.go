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

package serial

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is the character encoding of the lines sent by the device.
type Encoding string

const (
	// EncodingUTF8 expects valid UTF-8 (plain ASCII boards fall in here).
	EncodingUTF8 Encoding = "utf-8"
	// EncodingLatin1 decodes ISO-8859-1, which is what most microcontroller
	// sketches emit when printing a degree sign.
	EncodingLatin1 Encoding = "latin1"
)

// SupportedEncodings returns the accepted encoding names.
func SupportedEncodings() []string {
	return []string{string(EncodingUTF8), string(EncodingLatin1)}
}

// ParseEncoding maps a configuration value to an Encoding.
// Matching is case-insensitive and accepts common aliases.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q (supported: %s)", s, strings.Join(SupportedEncodings(), ", "))
	}
}

func (e Encoding) decode(b []byte) (string, error) {
	switch e {
	case EncodingLatin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("latin1 decode: %w", err)
		}
		return string(out), nil
	default:
		if !utf8.Valid(b) {
			return "", fmt.Errorf("line is not valid utf-8")
		}
		return string(b), nil
	}
}
