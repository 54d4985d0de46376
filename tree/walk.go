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

// Visitor receives the records of an ancestor walk, one call per visited
// node, from the walk's head toward the root.
type Visitor[K comparable, M any] interface {
	Visit(node *Node[K, M])
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc[K comparable, M any] func(node *Node[K, M])

func (f VisitorFunc[K, M]) Visit(node *Node[K, M]) {
	f(node)
}

// Walk invokes the visitor on the record at head and then on each ancestor
// in turn, following parent links. The walk stops after visiting the record
// with the stopAt key, or silently at the edge of retained history when a
// parent is no longer stored; the root itself is not part of the node store
// and is therefore never visited.
//
// A nil head selects the unique tip at the frontier height; if the frontier
// is contested by several tips the walk is a no-op. A head naming the root
// is a no-op as well; any other head that does not name a stored record is a
// contract violation and panics.
func (o *Organizer[K, M]) Walk(head, stopAt *K, visitor Visitor[K, M]) {
	var start K
	if head != nil {
		start = *head
	} else {
		tips, ok := o.heights[o.frontier]
		if !ok || len(tips) != 1 {
			return
		}
		start = tips[0]
	}
	node, ok := o.nodes[start]
	if !ok {
		// The root is indexed by height but not stored, and it is never
		// visited; a walk resolving to it has nothing to do.
		if start == o.root.key {
			return
		}
		panic(fmt.Sprintf("reorg tree: walk head %v missing from the node store", start))
	}
	for {
		visitor.Visit(node)
		if stopAt != nil && node.key == *stopAt {
			return
		}
		node, ok = o.nodes[node.parent]
		if !ok {
			return
		}
	}
}
