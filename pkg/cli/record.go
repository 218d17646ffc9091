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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tempmon/tempmon/pkg/acquisition"
	"github.com/tempmon/tempmon/pkg/api"
)

func recordCmd() *cli.Command {
	flags := append(sessionFlags(),
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "Sample log file path",
			Required: true,
		},
		&cli.DurationFlag{
			Name:  "duration",
			Usage: "Stop after this long (0 runs until interrupted)",
		},
	)

	return &cli.Command{
		Name:  "record",
		Usage: "Record a headless acquisition session",
		Description: `Connects to the serial device, logs samples to --output and keeps the
plot refreshed until --duration elapses or the process receives SIGINT or
SIGTERM. When run under systemd with Type=notify, readiness is reported once
the session has started.

  tempmon record --port /dev/ttyUSB0 --output run.txt --duration 30m`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctl := newController(cfg)
			defer ctl.Shutdown()

			if err := ctl.Connect(ctx, cfg.Serial.Port, cfg.Serial.Baud); err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			if err := ctl.Start(ctx, cmd.String("output")); err != nil {
				return fmt.Errorf("failed to start acquisition: %w", err)
			}
			notify(daemon.SdNotifyReady)

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				defer cancel()
				return waitSession(gctx, ctl, cmd.Duration("duration"), cfg.Acquisition.PollInterval)
			})
			g.Go(func() error {
				return api.Serve(gctx, ctl, cfg.Server, version)
			})
			err = g.Wait()

			notify(daemon.SdNotifyStopping)
			ctl.Shutdown()

			st := ctl.Status()
			slog.Info("recording finished", "output", cmd.String("output"), "samples", st.Samples)
			return err
		},
	}
}

// waitSession blocks until ctx is done, d elapses, or the session ends on its
// own. The latter is reported as an error.
func waitSession(ctx context.Context, ctl *acquisition.Controller, d, poll time.Duration) error {
	var deadline <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("recording interrupted")
			return nil
		case <-deadline:
			slog.Info("recording duration reached", "duration", d.String())
			return nil
		case <-ticker.C:
			if ctl.State() == acquisition.StateAcquiring {
				continue
			}
			err := ctl.LastError()
			if err == nil {
				err = errors.New("session ended")
			}
			return fmt.Errorf("acquisition session ended unexpectedly: %w", err)
		}
	}
}

func notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		slog.Warn("failed to notify service manager", "state", state, "error", err)
		return
	}
	if sent {
		slog.Debug("notified service manager", "state", state)
	}
}
