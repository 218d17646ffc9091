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

// Package serial owns the connection to the sensor board.
//
// A Channel opens a device with go.bug.st/serial, assembles newline-terminated
// readings from the raw byte stream and hands them out one at a time through
// TryReadLine, which never blocks longer than the timeout it is given:
//
//	ch := serial.NewChannel(serial.WithReadBufferSize(256))
//	if err := ch.Connect("/dev/ttyUSB0", 9600); err != nil {
//		return err
//	}
//	defer ch.Disconnect()
//
//	line, ok, err := ch.TryReadLine(time.Second)
//
// Partial lines are kept between calls. Lines longer than the read buffer are
// dropped and reported as TRANSIENT_READ errors, as are lines that cannot be
// decoded with the configured Encoding.
//
// ListPorts enumerates the serial devices present on the host, including USB
// identifiers when the platform exposes them.
package serial
