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

package serial

import (
	"log/slog"
	"sort"
	"strconv"

	bugst "go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
)

// PortInfo describes a serial device present on the host.
type PortInfo struct {
	Name         string `json:"name" yaml:"name"`
	IsUSB        bool   `json:"usb" yaml:"usb"`
	VID          string `json:"vid,omitempty" yaml:"vid,omitempty"`
	PID          string `json:"pid,omitempty" yaml:"pid,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty" yaml:"serialNumber,omitempty"`
	Product      string `json:"product,omitempty" yaml:"product,omitempty"`
}

// PortList is a sorted list of ports that renders as a table.
type PortList []PortInfo

// TableHeader implements serializer.Tabular.
func (l PortList) TableHeader() []string {
	return []string{"PORT", "USB", "VID", "PID", "SERIAL", "PRODUCT"}
}

// TableRows implements serializer.Tabular.
func (l PortList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, p := range l {
		rows = append(rows, []string{p.Name, strconv.FormatBool(p.IsUSB), p.VID, p.PID, p.SerialNumber, p.Product})
	}
	return rows
}

// Enumerators, replaced in tests.
var (
	detailedLister = enumerator.GetDetailedPortsList
	plainLister    = bugst.GetPortsList
)

// ListPorts enumerates serial devices. When detailed enumeration is not
// supported on the platform it falls back to plain device names.
func ListPorts() (PortList, error) {
	details, err := detailedLister()
	if err == nil {
		out := make(PortList, 0, len(details))
		for _, d := range details {
			if d == nil {
				continue
			}
			out = append(out, PortInfo{
				Name:         d.Name,
				IsUSB:        d.IsUSB,
				VID:          d.VID,
				PID:          d.PID,
				SerialNumber: d.SerialNumber,
				Product:      d.Product,
			})
		}
		sortPorts(out)
		return out, nil
	}

	slog.Debug("detailed port enumeration unavailable, falling back", "error", err)

	names, err := plainLister()
	if err != nil {
		return nil, tmerrors.Wrap(tmerrors.ErrCodeConnect, "failed to enumerate serial ports", err)
	}
	out := make(PortList, 0, len(names))
	for _, n := range names {
		out = append(out, PortInfo{Name: n})
	}
	sortPorts(out)
	return out, nil
}

func sortPorts(l PortList) {
	sort.Slice(l, func(i, j int) bool { return l[i].Name < l[j].Name })
}
