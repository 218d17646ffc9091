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

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tempmon/tempmon/pkg/acquisition"
	tmerrors "github.com/tempmon/tempmon/pkg/errors"
	"github.com/tempmon/tempmon/pkg/serial"
	"github.com/tempmon/tempmon/pkg/serializer"
)

const defaultPrompt = "tempmon> "

// Controller is the subset of the acquisition controller driven by the console.
type Controller interface {
	Connect(ctx context.Context, port string, baud int) error
	Disconnect() error
	Start(ctx context.Context, outputPath string) error
	Stop() error
	Shutdown()
	Status() acquisition.Status
}

// PortLister enumerates serial ports.
type PortLister func() (serial.PortList, error)

// Console reads commands from in and writes responses to out.
type Console struct {
	ctl    Controller
	in     io.Reader
	out    io.Writer
	prompt string

	port string
	baud int

	listPorts PortLister
}

// Option configures a Console.
type Option func(*Console)

// WithDefaults sets the port and baud used when connect omits them.
func WithDefaults(port string, baud int) Option {
	return func(c *Console) {
		c.port = port
		c.baud = baud
	}
}

// WithPrompt overrides the prompt. An empty prompt disables it.
func WithPrompt(p string) Option {
	return func(c *Console) {
		c.prompt = p
	}
}

// WithPortLister overrides serial port enumeration.
func WithPortLister(l PortLister) Option {
	return func(c *Console) {
		if l != nil {
			c.listPorts = l
		}
	}
}

// New returns a console bound to ctl.
func New(ctl Controller, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		ctl:       ctl,
		in:        in,
		out:       out,
		prompt:    defaultPrompt,
		listPorts: serial.ListPorts,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run processes commands until end of input, quit, or ctx cancellation.
// The controller is always shut down before Run returns.
func (c *Console) Run(ctx context.Context) error {
	defer c.ctl.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	c.showPrompt()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			slog.Debug("console interrupted", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				var err error
				select {
				case err = <-scanErr:
				default:
				}
				if err != nil {
					return fmt.Errorf("failed to read console input: %w", err)
				}
				return nil
			}
			if c.Execute(ctx, line) {
				return nil
			}
			c.showPrompt()
		}
	}
}

func (c *Console) showPrompt() {
	if c.prompt != "" {
		fmt.Fprint(c.out, c.prompt)
	}
}

// Execute runs a single command line and reports whether the console should exit.
func (c *Console) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "connect":
		c.connect(ctx, args)
	case "disconnect":
		c.report("disconnected", c.ctl.Disconnect())
	case "start":
		c.start(ctx, args)
	case "stop":
		c.report("acquisition stopped", c.ctl.Stop())
	case "status":
		c.printStatus()
	case "ports":
		c.ports(ctx)
	case "help", "?":
		c.help()
	case "quit", "exit":
		fmt.Fprintln(c.out, "bye")
		return true
	default:
		fmt.Fprintf(c.out, "unknown command %q, type help for a list\n", cmd)
	}
	return false
}

func (c *Console) connect(ctx context.Context, args []string) {
	if len(args) > 2 {
		fmt.Fprintln(c.out, "usage: connect [port] [baud]")
		return
	}
	port, baud := c.port, c.baud
	if len(args) > 0 {
		port = args[0]
	}
	if len(args) > 1 {
		b, err := strconv.Atoi(args[1])
		if err != nil {
			c.report("", tmerrors.NewWithContext(tmerrors.ErrCodeValidation,
				"baud rate must be an integer", map[string]any{"baud": args[1]}))
			return
		}
		baud = b
	}
	c.report(fmt.Sprintf("connected to %s at %d baud", port, baud), c.ctl.Connect(ctx, port, baud))
}

func (c *Console) start(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: start <path>")
		return
	}
	c.report("acquisition started, logging to "+args[0], c.ctl.Start(ctx, args[0]))
}

func (c *Console) ports(ctx context.Context) {
	list, err := c.listPorts()
	if err != nil {
		c.report("", err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(c.out, "no serial ports found")
		return
	}
	if err := serializer.NewWriter(serializer.FormatTable, c.out).Serialize(ctx, list); err != nil {
		c.report("", err)
	}
}

func (c *Console) printStatus() {
	st := c.ctl.Status()
	fmt.Fprintf(c.out, "state:    %s\n", st.State)
	if st.Port != "" {
		fmt.Fprintf(c.out, "port:     %s (%d baud)\n", st.Port, st.Baud)
	}
	if st.Session != nil {
		fmt.Fprintf(c.out, "log:      %s\n", st.Session.OutputPath)
		fmt.Fprintf(c.out, "started:  %s\n", st.Session.StartTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(c.out, "samples:  %d\n", st.Samples)
	if st.LatestSample != nil {
		fmt.Fprintf(c.out, "latest:   %s\n", st.LatestSample.String())
	}
	if st.LastError != "" {
		fmt.Fprintf(c.out, "error:    %s\n", st.LastError)
	}
}

func (c *Console) help() {
	fmt.Fprint(c.out, `commands:
  connect [port] [baud]   open the serial device
  disconnect              stop any session and close the device
  start <path>            begin logging samples to path
  stop                    end the current session
  status                  print the controller status
  ports                   list serial ports
  help                    print this list
  quit                    shut down and exit
`)
}

// report prints ok on success, or the error.
func (c *Console) report(ok string, err error) {
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	if ok != "" {
		fmt.Fprintln(c.out, ok)
	}
}
