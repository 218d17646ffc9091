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

	"github.com/tempmon/tempmon/pkg/serializer"
)

func portsCmd() *cli.Command {
	return &cli.Command{
		Name:  "ports",
		Usage: "List serial ports",
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			list, err := listPorts()
			if err != nil {
				return fmt.Errorf("failed to list serial ports: %w", err)
			}

			w := writerFor(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, list)
		},
	}
}

// writerFor returns a file writer for path, or a writer on stdout.
func writerFor(format serializer.Format, path string) *serializer.Writer {
	if path == "" || path == "-" {
		return serializer.NewWriter(format, stdout)
	}
	return serializer.NewFileWriterOrStdout(format, path)
}
