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

func TestNewNode_InitializesAllFields(t *testing.T) {
	require := require.New(t)

	node := NewNode("b17", 17, 42, "b16", "payload")
	require.Equal("b17", node.Key())
	require.Equal(uint64(17), node.Height())
	require.Equal(uint64(42), node.Value())
	require.Equal("b16", node.Parent())
	require.Empty(node.Children())
	require.Equal("payload", node.Meta())
}

func TestNode_ChildrenReflectInsertions(t *testing.T) {
	require := require.New(t)

	o := newTestOrganizer(255)
	insertChain(o, 1, 2)
	o.Insert(NewNode(7, 3, 0, 1, struct{}{}), ScoreDefault)

	require.Equal([]int{2, 7}, o.Root().Children())
}

func TestNode_String_ContainsAllFields(t *testing.T) {
	require := require.New(t)

	node := NewNode("b17", 17, 42, "b16", "payload")
	s := node.String()
	require.Contains(s, "key: b17")
	require.Contains(s, "height: 17")
	require.Contains(s, "value: 42")
	require.Contains(s, "parent: b16")
	require.Contains(s, "meta: payload")
}
