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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tempmon/tempmon/pkg/header"
	"github.com/tempmon/tempmon/pkg/timeseries"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Print the samples of a log file",
		ArgsUsage: "<log-file>",
		Description: `Reads a sample log and writes its samples as JSON, YAML or a table.
JSON and YAML documents carry a SampleLog header with the source path,
export time and tool version.

  tempmon export run.txt --format json --output run.json`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one log file argument")
			}
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			path := cmd.Args().First()
			samples, err := timeseries.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read log: %w", err)
			}

			doc := timeseries.NewDocument(samples,
				header.WithTimestamp(time.Now()),
				header.WithVersion(version),
				header.WithMetadata("source", path),
			)

			w := writerFor(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, doc)
		},
	}
}
