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

// Node is a single record in the reorg tree. A node is identified by its key,
// positioned by its height, and linked to the rest of the tree through its
// parent key and the keys of its children. The value is an arbitrary weight
// that is only consulted when branches are scored by value. The meta payload
// is opaque to the engine.
//
// Parent and child links are plain keys rather than pointers; all lookups go
// through the owning Organizer's node store.
type Node[K comparable, M any] struct {
	key      K
	height   uint64
	value    uint64
	parent   K
	children []K
	meta     M
}

// NewNode creates a node with the given identity, position, weight, parent
// link, and meta payload. The child list starts empty and is maintained by
// the Organizer when descendants are inserted.
func NewNode[K comparable, M any](key K, height, value uint64, parent K, meta M) *Node[K, M] {
	return &Node[K, M]{
		key:    key,
		height: height,
		value:  value,
		parent: parent,
		meta:   meta,
	}
}

// Key returns the unique identity of this node.
func (n *Node[K, M]) Key() K {
	return n.key
}

// Height returns the chain position of this node.
func (n *Node[K, M]) Height() uint64 {
	return n.height
}

// Value returns the scoring weight of this node.
func (n *Node[K, M]) Value() uint64 {
	return n.value
}

// Parent returns the key of this node's parent. For a root node the parent
// key is never dereferenced.
func (n *Node[K, M]) Parent() K {
	return n.parent
}

// Children returns the keys of the nodes naming this node as their parent,
// in insertion order. The returned slice is owned by the engine and must not
// be modified.
func (n *Node[K, M]) Children() []K {
	return n.children
}

// Meta returns the caller-supplied payload of this node.
func (n *Node[K, M]) Meta() M {
	return n.meta
}

func (n *Node[K, M]) String() string {
	return fmt.Sprintf(
		"key: %v, height: %d, value: %d, parent: %v, children: %v, meta: %v",
		n.key, n.height, n.value, n.parent, n.children, n.meta,
	)
}
