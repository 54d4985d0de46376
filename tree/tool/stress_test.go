// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestStress_BasicRun(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{&StressCmd},
	}
	err := app.Run([]string{
		"tool",
		"stress",
		"--num-records=5000",
		"--depth=64",
		"--seed=42",
		"--report-period=0",
	})
	require.NoError(t, err, "stress run should leave the tree healthy")
}

func TestStress_ValueMode(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{&StressCmd},
	}
	err := app.Run([]string{
		"tool",
		"stress",
		"--num-records=5000",
		"--depth=64",
		"--seed=42",
		"--value-mode",
		"--report-period=0",
	})
	require.NoError(t, err, "stress run should leave the tree healthy")
}

func TestStress_HighForkAndOrphanRates(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{&StressCmd},
	}
	err := app.Run([]string{
		"tool",
		"stress",
		"--num-records=5000",
		"--depth=32",
		"--fork-rate=0.5",
		"--orphan-rate=0.3",
		"--seed=7",
		"--report-period=0",
	})
	require.NoError(t, err, "stress run should leave the tree healthy")
}

func TestStress_VerboseLogging(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{&StressCmd},
	}
	err := app.Run([]string{
		"tool",
		"stress",
		"--num-records=500",
		"--depth=16",
		"--seed=1",
		"--verbose",
		"--report-period=0",
	})
	require.NoError(t, err, "stress run should leave the tree healthy")
}
