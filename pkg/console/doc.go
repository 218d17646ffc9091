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

// Package console implements the line-oriented operator console.
//
// Each input line is one command. The console forwards commands to an
// acquisition controller and prints the outcome:
//
//	connect [port] [baud]   open the serial device (defaults from config)
//	disconnect              stop any session and close the device
//	start <path>            begin logging samples to path
//	stop                    end the current session
//	status                  print the controller status
//	ports                   list serial ports
//	help                    print the command list
//	quit                    shut down and exit
//
// End of input, quit, or cancellation of the context passed to Run all shut
// the controller down before Run returns.
package console
