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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tempmon/tempmon/pkg/api"
	"github.com/tempmon/tempmon/pkg/console"
)

func consoleCmd() *cli.Command {
	return &cli.Command{
		Name:  "console",
		Usage: "Interactive operator console",
		Description: `Starts a line-oriented console for driving acquisition sessions:

  connect [port] [baud]   open the serial device
  disconnect              stop any session and close the device
  start <path>            begin logging samples to path
  stop                    end the current session
  status                  print the controller status
  ports                   list serial ports
  quit                    shut down and exit

With --status-port, a read-only HTTP status server runs alongside.`,
		Flags: sessionFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctl := newController(cfg)
			con := console.New(ctl, stdin, stdout,
				console.WithDefaults(cfg.Serial.Port, cfg.Serial.Baud),
				console.WithPortLister(listPorts),
			)

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				// the status server follows the console lifetime
				defer cancel()
				return con.Run(gctx)
			})
			g.Go(func() error {
				return api.Serve(gctx, ctl, cfg.Server, version)
			})
			return g.Wait()
		},
	}
}
