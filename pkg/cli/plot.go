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
	"io"
	"os"

	"github.com/urfave/cli/v3"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
	"github.com/tempmon/tempmon/pkg/render"
)

func plotCmd() *cli.Command {
	return &cli.Command{
		Name:      "plot",
		Usage:     "Plot an existing log file once",
		ArgsUsage: "<log-file>",
		Flags: []cli.Flag{
			renderModeFlag(),
			&cli.StringFlag{
				Name:  "render-command",
				Usage: "Plotting executable",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one log file argument")
			}
			path := cmd.Args().First()
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("failed to read log: %w", err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if render.Mode(cfg.Render.Mode) == render.ModeNone {
				return tmerrors.New(tmerrors.ErrCodeValidation, "rendering is disabled (render mode none)")
			}

			// a single plot never needs a long-lived process
			r, err := render.New(render.ModeOneshot, rendererOptions(cfg)...)
			if err != nil {
				return err
			}
			if c, ok := r.(io.Closer); ok {
				defer c.Close()
			}
			return r.Render(ctx, path)
		},
	}
}
