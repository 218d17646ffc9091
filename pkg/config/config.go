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

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tempmon/tempmon/pkg/defaults"
	tmerrors "github.com/tempmon/tempmon/pkg/errors"
	"github.com/tempmon/tempmon/pkg/render"
	"github.com/tempmon/tempmon/pkg/serial"
	"github.com/tempmon/tempmon/pkg/serializer"
)

// Environment variable names.
const (
	EnvPort         = "TEMPMON_PORT"
	EnvBaud         = "TEMPMON_BAUD"
	EnvPollInterval = "TEMPMON_POLL_INTERVAL"
	EnvStatusPort   = "TEMPMON_STATUS_PORT"
)

// Config holds all runtime settings.
type Config struct {
	Serial      SerialConfig      `json:"serial" yaml:"serial"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Render      RenderConfig      `json:"render" yaml:"render"`
	Server      ServerConfig      `json:"server" yaml:"server"`
}

// SerialConfig describes the sensor connection.
type SerialConfig struct {
	Port           string `json:"port" yaml:"port"`
	Baud           int    `json:"baud" yaml:"baud"`
	ReadBufferSize int    `json:"readBufferSize" yaml:"readBufferSize"`
	Encoding       string `json:"encoding" yaml:"encoding"`
}

// AcquisitionConfig controls the sampling loops.
type AcquisitionConfig struct {
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`
	// Sync fsyncs the log after every sample.
	Sync bool `json:"sync" yaml:"sync"`
}

// RenderConfig selects the plotting backend.
type RenderConfig struct {
	Mode    string `json:"mode" yaml:"mode"`
	Command string `json:"command" yaml:"command"`
	Title   string `json:"title" yaml:"title"`
}

// ServerConfig configures the optional status server.
type ServerConfig struct {
	Address        string  `json:"address" yaml:"address"`
	Port           int     `json:"port" yaml:"port"`
	RateLimit      float64 `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst int     `json:"rateLimitBurst" yaml:"rateLimitBurst"`
}

// Enabled reports whether the status server should run.
func (s ServerConfig) Enabled() bool {
	return s.Port > 0
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:           defaults.SerialPort,
			Baud:           defaults.SerialBaudRate,
			ReadBufferSize: defaults.SerialReadBufferSize,
			Encoding:       defaults.SerialEncoding,
		},
		Acquisition: AcquisitionConfig{
			PollInterval: defaults.PollInterval,
			Sync:         true,
		},
		Render: RenderConfig{
			Mode:    defaults.RenderMode,
			Command: defaults.RenderCommand,
		},
		Server: ServerConfig{
			Port:           defaults.StatusPort,
			RateLimit:      defaults.StatusRateLimit,
			RateLimitBurst: defaults.StatusRateLimitBurst,
		},
	}
}

// Load builds the configuration from defaults, the file at path (if any)
// and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		if _, err := serializer.FromFileInto(path, cfg); err != nil {
			return nil, tmerrors.WrapWithContext(tmerrors.ErrCodeValidation, "failed to load config file", err,
				map[string]any{"path": path})
		}
		slog.Debug("config file loaded", "path", path)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables. Malformed values
// are ignored with a warning.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPort); v != "" {
		c.Serial.Port = v
	}

	if v := os.Getenv(EnvBaud); v != "" {
		var baud int
		if _, err := fmt.Sscanf(v, "%d", &baud); err == nil {
			c.Serial.Baud = baud
		} else {
			slog.Warn("ignoring malformed environment value", "name", EnvBaud, "value", v)
		}
	}

	if v := os.Getenv(EnvPollInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Acquisition.PollInterval = d
		} else {
			slog.Warn("ignoring malformed environment value", "name", EnvPollInterval, "value", v)
		}
	}

	if v := os.Getenv(EnvStatusPort); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			c.Server.Port = port
		} else {
			slog.Warn("ignoring malformed environment value", "name", EnvStatusPort, "value", v)
		}
	}
}

// Validate checks the settings and normalizes enumerated values.
func (c *Config) Validate() error {
	if c.Serial.Baud <= 0 {
		return invalid("serial.baud must be positive", c.Serial.Baud)
	}
	if c.Serial.ReadBufferSize <= 0 {
		return invalid("serial.readBufferSize must be positive", c.Serial.ReadBufferSize)
	}
	enc, err := serial.ParseEncoding(c.Serial.Encoding)
	if err != nil {
		return tmerrors.Wrap(tmerrors.ErrCodeValidation, "invalid serial.encoding", err)
	}
	c.Serial.Encoding = string(enc)

	iv := c.Acquisition.PollInterval
	if iv < defaults.MinPollInterval || iv > defaults.MaxPollInterval {
		return tmerrors.NewWithContext(tmerrors.ErrCodeValidation,
			fmt.Sprintf("acquisition.pollInterval must be between %s and %s", defaults.MinPollInterval, defaults.MaxPollInterval),
			map[string]any{"value": iv.String()})
	}

	mode, err := render.ParseMode(c.Render.Mode)
	if err != nil {
		return tmerrors.Wrap(tmerrors.ErrCodeValidation, "invalid render.mode", err)
	}
	c.Render.Mode = string(mode)

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port must be between 0 and 65535", c.Server.Port)
	}
	if c.Server.Enabled() {
		if c.Server.RateLimit <= 0 {
			return invalid("server.rateLimit must be positive", c.Server.RateLimit)
		}
		if c.Server.RateLimitBurst <= 0 {
			return invalid("server.rateLimitBurst must be positive", c.Server.RateLimitBurst)
		}
	}
	return nil
}

func invalid(msg string, value any) error {
	return tmerrors.NewWithContext(tmerrors.ErrCodeValidation, msg, map[string]any{"value": value})
}
