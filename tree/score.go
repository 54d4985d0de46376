// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tree

import "fmt"

// ScoreMode selects how competing branches are scored for a single
// operation. ScoreDefault defers to the organizer's configured mode; the
// other two force length-based or value-based scoring regardless of it.
type ScoreMode int

const (
	ScoreDefault ScoreMode = iota
	ScoreByLength
	ScoreByValue
)

func (m ScoreMode) String() string {
	switch m {
	case ScoreDefault:
		return "default"
	case ScoreByLength:
		return "length"
	case ScoreByValue:
		return "value"
	}
	return fmt.Sprintf("ScoreMode(%d)", int(m))
}

// byValue resolves a per-call mode against the organizer's default.
func (o *Organizer[K, M]) byValue(mode ScoreMode) bool {
	switch mode {
	case ScoreByLength:
		return false
	case ScoreByValue:
		return true
	default:
		return o.scoreByValue
	}
}

// SelectBranch walks every tip back toward the root and returns the key of
// the immediate child of the root leading the winning branch. A branch is
// scored by its length or by its accumulated record value, depending on the
// resolved scoring mode. A strictly greater score wins; ties keep the
// earliest tip in height-bucket insertion order, so the result is
// deterministic for a given insertion sequence.
//
// SelectBranch panics if the frontier height bucket is empty or if a walk
// runs into a key missing from the node store; both indicate a broken
// invariant, not a normal runtime condition.
func (o *Organizer[K, M]) SelectBranch(mode ScoreMode) K {
	tips, ok := o.heights[o.frontier]
	if !ok || len(tips) == 0 {
		panic(fmt.Sprintf("reorg tree: no records stored at frontier height %d", o.frontier))
	}
	byValue := o.byValue(mode)

	var winner K
	var best uint64
	for i, tip := range tips {
		branch, score := o.scoreBranch(tip, byValue)
		if i == 0 || score > best {
			winner = branch
			best = score
		}
	}
	return winner
}

// scoreBranch walks parent links from the given tip until it reaches the
// immediate child of the current root, accumulating the branch score on the
// way. The walked records contribute one point each in length mode and their
// value in value mode; the root child itself is not counted.
func (o *Organizer[K, M]) scoreBranch(tip K, byValue bool) (rootChild K, score uint64) {
	cursor := tip
	for {
		node, ok := o.nodes[cursor]
		if !ok {
			panic(fmt.Sprintf("reorg tree: branch walk hit key %v missing from the node store", cursor))
		}
		if node.parent == o.root.key {
			return node.key, score
		}
		if byValue {
			score += node.value
		} else {
			score++
		}
		cursor = node.parent
	}
}
