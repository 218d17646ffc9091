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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tempmon/tempmon/pkg/config"
	"github.com/tempmon/tempmon/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{
			name:       "valid yaml format",
			format:     "yaml",
			wantFormat: serializer.FormatYAML,
		},
		{
			name:       "valid json format",
			format:     "json",
			wantFormat: serializer.FormatJSON,
		},
		{
			name:       "valid table format",
			format:     "table",
			wantFormat: serializer.FormatTable,
		},
		{
			name:    "invalid format csv",
			format:  "csv",
			wantErr: true,
		},
		{
			name:    "empty format",
			format:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

// runLoadConfig parses args against the session flags and returns the
// resolved configuration.
func runLoadConfig(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	var (
		cfg    *config.Config
		cfgErr error
	)
	cmd := &cli.Command{
		Name:   "test",
		Flags:  append(sessionFlags(), &cli.StringFlag{Name: "config"}),
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, cfgErr = loadConfig(c)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
		t.Fatalf("failed to run command: %v", err)
	}
	return cfg, cfgErr
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := runLoadConfig(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := config.Default()
	if err := want.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Serial != want.Serial || cfg.Acquisition != want.Acquisition {
		t.Errorf("loadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tempmon.yaml")
	data := "serial:\n  port: /dev/ttyACM0\n  baud: 19200\nacquisition:\n  pollInterval: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := runLoadConfig(t, "--config", path, "--baud", "115200", "--render-mode", "none", "--status-port", "9090")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Serial.Port != "/dev/ttyACM0" {
		t.Errorf("port = %q, want file value", cfg.Serial.Port)
	}
	if cfg.Serial.Baud != 115200 {
		t.Errorf("baud = %d, want flag value", cfg.Serial.Baud)
	}
	if cfg.Acquisition.PollInterval != 2*time.Second {
		t.Errorf("poll interval = %v, want 2s", cfg.Acquisition.PollInterval)
	}
	if cfg.Render.Mode != "none" {
		t.Errorf("render mode = %q, want none", cfg.Render.Mode)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("status port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero baud", []string{"--baud", "0"}},
		{"interval too small", []string{"--poll-interval", "1ms"}},
		{"unknown encoding", []string{"--encoding", "ebcdic"}},
		{"unknown render mode", []string{"--render-mode", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runLoadConfig(t, tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
