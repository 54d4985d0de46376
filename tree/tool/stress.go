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
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/0xsoniclabs/reorg/common/diagnostics"
	"github.com/0xsoniclabs/reorg/tree"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btclog"
	"github.com/urfave/cli/v2"
)

var (
	numRecordsFlag = cli.IntFlag{
		Name:  "num-records",
		Usage: "number of records to feed into the tree",
		Value: 100_000,
	}
	depthFlag = cli.Uint64Flag{
		Name:  "depth",
		Usage: "retention depth of the tree",
		Value: tree.DefaultRetentionDepth,
	}
	forkRateFlag = cli.Float64Flag{
		Name:  "fork-rate",
		Usage: "probability of a record branching off below the frontier",
		Value: 0.1,
	}
	orphanRateFlag = cli.Float64Flag{
		Name:  "orphan-rate",
		Usage: "probability of a record arriving before its parent",
		Value: 0.05,
	}
	valueModeFlag = cli.BoolFlag{
		Name:  "value-mode",
		Usage: "score branches by accumulated value instead of length",
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for the record stream, 0 derives one from the clock",
		Value: 0,
	}
	reportPeriodFlag = cli.IntFlag{
		Name:  "report-period",
		Usage: "number of records between progress reports",
		Value: 10_000,
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "enable engine debug logging",
	}
	diagnosticPortFlag = cli.IntFlag{
		Name:  "diagnostic-port",
		Usage: "enable hosting of a realtime diagnostic server by providing a port",
		Value: 0,
	}
	cpuProfileFlag = cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "sets the target file for storing CPU profiles to, disabled if empty",
		Value: "",
	}
	traceFlag = cli.StringFlag{
		Name:  "tracefile",
		Usage: "sets the target file for traces to, disabled if empty",
		Value: "",
	}
)

var StressCmd = cli.Command{
	Action: diagnostics.WithProfiling(runStress, &diagnosticPortFlag, &cpuProfileFlag, &traceFlag),
	Name:   "stress",
	Usage:  "feed a randomized record stream into a reorg tree and check its health",
	Flags: []cli.Flag{
		&numRecordsFlag,
		&depthFlag,
		&forkRateFlag,
		&orphanRateFlag,
		&valueModeFlag,
		&seedFlag,
		&reportPeriodFlag,
		&verboseFlag,
		&diagnosticPortFlag,
		&cpuProfileFlag,
		&traceFlag,
	},
}

// evictionCounter tallies the records abandoned by root advancement.
type evictionCounter struct {
	evicted int
}

func (c *evictionCounter) RecordsEvicted(nodes []*tree.Node[chainhash.Hash, int]) {
	c.evicted += len(nodes)
}

// record is one entry of the simulated stream before it enters the tree.
type record struct {
	key    chainhash.Hash
	height uint64
}

func runStress(context *cli.Context) error {
	numRecords := context.Int(numRecordsFlag.Name)
	depth := context.Uint64(depthFlag.Name)
	forkRate := context.Float64(forkRateFlag.Name)
	orphanRate := context.Float64(orphanRateFlag.Name)
	reportPeriod := context.Int(reportPeriodFlag.Name)

	seed := context.Int64(seedFlag.Name)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if context.Bool(verboseFlag.Name) {
		logger := btclog.NewBackend(os.Stdout).Logger("TREE")
		logger.SetLevel(btclog.LevelDebug)
		tree.UseLogger(logger)
		defer tree.DisableLog()
	}

	fmt.Printf("stressing a tree of depth %d with %d records, fork rate %.2f, orphan rate %.2f, seed %d\n",
		depth, numRecords, forkRate, orphanRate, seed)

	genesis := record{key: streamKey(0), height: 0}
	organizer := tree.NewWithRoot(
		tree.NewNode(genesis.key, genesis.height, 0, chainhash.Hash{}, 0),
		depth, context.Bool(valueModeFlag.Name))
	counter := &evictionCounter{}
	organizer.SetEvictionListener(counter)

	// Recently accepted records serve as fork points; the ring is renewed
	// as the stream advances so fork parents stay within the retention
	// window.
	recent := []record{genesis}
	tip := genesis

	start := time.Now()
	inserted := 0
	next := uint64(1)
	nextReport := reportPeriod
	for inserted < numRecords {
		// The branch carrying the tracked tip may have lost a root
		// advancement; rebase the stream onto a retained tip so it does
		// not pile up unattachable orphans.
		if _, ok := organizer.Get(tip.key); !ok {
			tip = record{key: organizer.Tips()[0], height: organizer.FrontierHeight()}
		}

		parent := tip
		if rng.Float64() < forkRate {
			parent = recent[rng.Intn(len(recent))]
		}
		node := record{key: streamKey(next), height: parent.height + 1}
		next++

		if rng.Float64() < orphanRate && inserted+1 < numRecords {
			// Deliver a child ahead of its parent; the engine parks it
			// until the parent arrives in the next step.
			child := record{key: streamKey(next), height: node.height + 1}
			next++
			organizer.Insert(newStreamNode(rng, child, node.key, inserted), tree.ScoreDefault)
			inserted++
			organizer.Insert(newStreamNode(rng, node, parent.key, inserted), tree.ScoreDefault)
			inserted++
			node = child
		} else {
			organizer.Insert(newStreamNode(rng, node, parent.key, inserted), tree.ScoreDefault)
			inserted++
		}

		if node.height > tip.height {
			tip = node
		}
		recent = append(recent, node)
		if len(recent) > 128 {
			recent = recent[1:]
		}

		if reportPeriod > 0 && inserted >= nextReport {
			nextReport += reportPeriod
			rate := float64(inserted) / time.Since(start).Seconds()
			fmt.Printf("%d records in, frontier %d, root height %d, %d tips, %d evicted, %.0f records/s\n",
				inserted, organizer.FrontierHeight(), organizer.Root().Height(),
				len(organizer.Tips()), counter.evicted, rate)
		}
	}

	fmt.Printf("done: frontier %d, root height %d, %d tips, %d records evicted, %v elapsed\n",
		organizer.FrontierHeight(), organizer.Root().Height(),
		len(organizer.Tips()), counter.evicted, time.Since(start).Round(time.Millisecond))

	if diff := organizer.IndexDiff(); len(diff) != 1 || diff[0] != organizer.Root().Key() {
		return fmt.Errorf("height index out of sync, %d unexpected entries", len(diff))
	}
	fmt.Printf("height index is consistent\n")
	return nil
}

// streamKey derives the key of the record with the given stream sequence
// number.
func streamKey(seq uint64) chainhash.Hash {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seq)
	return chainhash.DoubleHashH(buf[:])
}

// newStreamNode materializes a stream record as a tree node with a random
// scoring weight and its insertion position as meta payload.
func newStreamNode(rng *rand.Rand, r record, parent chainhash.Hash, position int) *tree.Node[chainhash.Hash, int] {
	return tree.NewNode(r.key, r.height, uint64(rng.Intn(100)), parent, position)
}
