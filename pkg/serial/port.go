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
	"time"

	bugst "go.bug.st/serial"
)

// Port is the subset of a serial device used by Channel.
// go.bug.st/serial ports satisfy it; tests substitute in-memory fakes.
//
// Read must return (0, nil) when the read timeout expires without data.
type Port interface {
	Read(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Opener opens the named device at the given baud rate.
type Opener func(name string, baud int) (Port, error)

// OpenDevice opens a real serial device in 8N1 mode.
func OpenDevice(name string, baud int) (Port, error) {
	mode := &bugst.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}
	p, err := bugst.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return p, nil
}
