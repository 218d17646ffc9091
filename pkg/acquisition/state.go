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

// State is the controller lifecycle state.
type State int32

const (
	// StateIdle means no device is open.
	StateIdle State = iota
	// StateConnecting means a device is being opened.
	StateConnecting
	// StateConnected means a device is open and no session is running.
	StateConnected
	// StateAcquiring means a session is sampling and plotting.
	StateAcquiring
	// StateStopping means a session is draining its loops.
	StateStopping
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateAcquiring:
		return "acquiring"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so states serialize by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
