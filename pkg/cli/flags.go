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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tempmon/tempmon/pkg/acquisition"
	"github.com/tempmon/tempmon/pkg/config"
	"github.com/tempmon/tempmon/pkg/render"
	"github.com/tempmon/tempmon/pkg/serial"
	"github.com/tempmon/tempmon/pkg/serializer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatTable),
		Usage:   fmt.Sprintf("Output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
)

// Terminal and device seams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout

	listPorts  = serial.ListPorts
	newChannel = func(cfg *config.Config) acquisition.Channel {
		return serial.NewChannel(
			serial.WithReadBufferSize(cfg.Serial.ReadBufferSize),
			serial.WithEncoding(serial.Encoding(cfg.Serial.Encoding)),
		)
	}
)

// sessionFlags are the config overrides shared by commands that acquire.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Serial device (e.g., /dev/ttyUSB0, COM3)",
			Sources: cli.EnvVars(config.EnvPort),
		},
		&cli.IntFlag{
			Name:    "baud",
			Aliases: []string{"b"},
			Usage:   "Serial line speed",
			Sources: cli.EnvVars(config.EnvBaud),
		},
		&cli.DurationFlag{
			Name:    "poll-interval",
			Usage:   "Acquisition and plot refresh interval",
			Sources: cli.EnvVars(config.EnvPollInterval),
		},
		&cli.StringFlag{
			Name:  "encoding",
			Usage: fmt.Sprintf("Text encoding of device lines (supported: %s)", strings.Join(serial.SupportedEncodings(), ", ")),
		},
		renderModeFlag(),
		&cli.IntFlag{
			Name:    "status-port",
			Usage:   "Serve status over HTTP on this port (0 disables)",
			Sources: cli.EnvVars(config.EnvStatusPort),
		},
	}
}

func renderModeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "render-mode",
		Usage: fmt.Sprintf("Plot rendering mode (supported: %s)", strings.Join(render.SupportedModes(), ", ")),
	}
}

// parseOutputFormat returns the --format value, rejecting unknown formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// loadConfig reads --config and applies flag overrides on top of it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("port") {
		cfg.Serial.Port = cmd.String("port")
	}
	if cmd.IsSet("baud") {
		cfg.Serial.Baud = int(cmd.Int("baud"))
	}
	if cmd.IsSet("poll-interval") {
		cfg.Acquisition.PollInterval = cmd.Duration("poll-interval")
	}
	if cmd.IsSet("encoding") {
		cfg.Serial.Encoding = cmd.String("encoding")
	}
	if cmd.IsSet("render-mode") {
		cfg.Render.Mode = cmd.String("render-mode")
	}
	if cmd.IsSet("render-command") {
		cfg.Render.Command = cmd.String("render-command")
	}
	if cmd.IsSet("status-port") {
		cfg.Server.Port = int(cmd.Int("status-port"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func rendererOptions(cfg *config.Config) []render.Option {
	return []render.Option{
		render.WithCommand(cfg.Render.Command, "-persist"),
		render.WithTitle(cfg.Render.Title),
	}
}

// newController builds a controller over the configured serial device.
func newController(cfg *config.Config) *acquisition.Controller {
	mode := render.Mode(cfg.Render.Mode)
	opts := rendererOptions(cfg)

	return acquisition.NewController(newChannel(cfg),
		acquisition.WithPollInterval(cfg.Acquisition.PollInterval),
		acquisition.WithLogSync(cfg.Acquisition.Sync),
		acquisition.WithRendererFactory(func() (render.Renderer, error) {
			return render.New(mode, opts...)
		}),
	)
}
