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
	"fmt"
	"os"

	"github.com/0xsoniclabs/reorg/tree"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btclog"
	"github.com/urfave/cli/v2"
)

var InfoCmd = cli.Command{
	Action: doInfo,
	Name:   "info",
	Usage:  "run a short simulated record stream and print engine diagnostics",
	Flags: []cli.Flag{
		&numRecordsFlag,
		&depthFlag,
		&verboseFlag,
	},
}

// doInfo feeds a deterministic chain with a competing record every 50
// heights into a fresh tree and prints the resulting engine state.
func doInfo(context *cli.Context) error {
	numRecords := context.Int(numRecordsFlag.Name)
	depth := context.Uint64(depthFlag.Name)

	if context.Bool(verboseFlag.Name) {
		logger := btclog.NewBackend(os.Stdout).Logger("TREE")
		logger.SetLevel(btclog.LevelTrace)
		tree.UseLogger(logger)
		defer tree.DisableLog()
	}

	organizer := tree.NewWithRoot(
		tree.NewNode(streamKey(0), 0, 0, chainhash.Hash{}, 0),
		depth, false)
	counter := &evictionCounter{}
	organizer.SetEvictionListener(counter)

	const forkOffset = 1 << 32
	for i := 1; i <= numRecords; i++ {
		height := uint64(i)
		organizer.Insert(
			tree.NewNode(streamKey(height), height, 1, streamKey(height-1), i),
			tree.ScoreDefault)
		// A losing competitor one height below the chain tip.
		if i%50 == 0 && i > 2 {
			organizer.Insert(
				tree.NewNode(streamKey(height+forkOffset), height-1, 1, streamKey(height-2), i),
				tree.ScoreDefault)
		}
	}

	fmt.Printf("%v\n", organizer)
	fmt.Printf("root: %v\n", organizer.Root())
	fmt.Printf("frontier height: %d, oldest retained height: %d\n",
		organizer.FrontierHeight(), organizer.AllowedOldest())
	fmt.Printf("tips: %d, records evicted: %d\n", len(organizer.Tips()), counter.evicted)

	if context.Bool(verboseFlag.Name) {
		organizer.DumpNodes()
	}

	if diff := organizer.IndexDiff(); len(diff) != 1 || diff[0] != organizer.Root().Key() {
		return fmt.Errorf("height index out of sync, %d unexpected entries", len(diff))
	}
	fmt.Printf("height index is consistent\n")
	return nil
}
