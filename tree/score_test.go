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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newForkedOrganizer builds a tree with two competing branches below the
// current root (node 1): branch A with root child 2 spanning four records,
// and branch B with root child 7 spanning three records carrying the given
// value each. Both branch tips sit at height 5.
//
//	0 <- 1 <- 2 <- 3 <- 4 <- 5     (A, value 1 each)
//	       \- 7 <- 8 <- 9          (B, heights 3, 4, 5)
func newForkedOrganizer(valueB uint64) *Organizer[int, struct{}] {
	o := newTestOrganizer(255)
	o.Insert(NewNode(1, 1, 1, 0, struct{}{}), ScoreDefault)
	o.Insert(NewNode(2, 2, 1, 1, struct{}{}), ScoreDefault)
	o.Insert(NewNode(7, 3, valueB, 1, struct{}{}), ScoreDefault)
	o.Insert(NewNode(3, 3, 1, 2, struct{}{}), ScoreDefault)
	o.Insert(NewNode(4, 4, 1, 3, struct{}{}), ScoreDefault)
	o.Insert(NewNode(8, 4, valueB, 7, struct{}{}), ScoreDefault)
	o.Insert(NewNode(5, 5, 1, 4, struct{}{}), ScoreDefault)
	o.Insert(NewNode(9, 5, valueB, 8, struct{}{}), ScoreDefault)
	return o
}

func TestSelectBranch_LongestChainWins(t *testing.T) {
	require := require.New(t)

	o := newForkedOrganizer(1)
	require.Equal(2, o.SelectBranch(ScoreByLength))
}

func TestSelectBranch_HeaviestChainWinsInValueMode(t *testing.T) {
	require := require.New(t)

	// Branch B is shorter but outweighs branch A by far.
	o := newForkedOrganizer(100)
	require.Equal(2, o.SelectBranch(ScoreByLength))
	require.Equal(7, o.SelectBranch(ScoreByValue))
}

func TestSelectBranch_DefaultModeFollowsConfiguration(t *testing.T) {
	require := require.New(t)

	o := newForkedOrganizer(100)
	require.Equal(2, o.SelectBranch(ScoreDefault))

	o.SetScoreByValue(true)
	require.Equal(7, o.SelectBranch(ScoreDefault))
}

func TestSelectBranch_OverrideTakesPrecedenceOverConfiguration(t *testing.T) {
	require := require.New(t)

	o := newForkedOrganizer(100)
	o.SetScoreByValue(true)
	require.Equal(2, o.SelectBranch(ScoreByLength))
	require.Equal(7, o.SelectBranch(ScoreByValue))
}

func TestSelectBranch_TiesKeepFirstSeenTip(t *testing.T) {
	require := require.New(t)

	// Two branches of equal length and weight; the tip of branch A entered
	// the height bucket first, so branch A wins.
	o := newTestOrganizer(255)
	o.Insert(NewNode(1, 1, 1, 0, struct{}{}), ScoreDefault)
	o.Insert(NewNode(2, 2, 1, 1, struct{}{}), ScoreDefault)
	o.Insert(NewNode(7, 3, 1, 1, struct{}{}), ScoreDefault)
	o.Insert(NewNode(3, 4, 1, 2, struct{}{}), ScoreDefault)
	o.Insert(NewNode(8, 4, 1, 7, struct{}{}), ScoreDefault)

	require.Equal([]int{3, 8}, o.Tips())
	require.Equal(2, o.SelectBranch(ScoreByLength))
	require.Equal(2, o.SelectBranch(ScoreByValue))
}

func TestSelectBranch_ValueScoreExcludesRootChild(t *testing.T) {
	require := require.New(t)

	// The root children carry large values that must not count; only the
	// records above them do.
	o := newTestOrganizer(255)
	o.Insert(NewNode(1, 1, 0, 0, struct{}{}), ScoreDefault)
	o.Insert(NewNode(2, 2, 1000, 1, struct{}{}), ScoreDefault)
	o.Insert(NewNode(7, 3, 1, 1, struct{}{}), ScoreDefault)
	o.Insert(NewNode(3, 4, 1, 2, struct{}{}), ScoreDefault)
	o.Insert(NewNode(8, 4, 50, 7, struct{}{}), ScoreDefault)

	// Branch A scores value(3) = 1, branch B scores value(8) = 50; the
	// 1000 on root child 2 is ignored.
	require.Equal(7, o.SelectBranch(ScoreByValue))
}

func TestSelectBranch_PanicsWithoutRecordsAtFrontier(t *testing.T) {
	require := require.New(t)

	o := New[int, struct{}](255, false)
	require.Panics(func() {
		o.SelectBranch(ScoreDefault)
	})
}

func TestScoreMode_String(t *testing.T) {
	require := require.New(t)

	require.Equal("default", ScoreDefault.String())
	require.Equal("length", ScoreByLength.String())
	require.Equal("value", ScoreByValue.String())
	require.Equal("ScoreMode(77)", ScoreMode(77).String())
}
