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
	"fmt"
	"maps"
	"slices"
)

// DefaultRetentionDepth is the retention window used by organizers created
// without an explicit depth.
const DefaultRetentionDepth = 255

// EvictionListener is notified whenever root advancement abandons branches.
// The reported nodes are no longer part of the tree and ownership passes to
// the listener. Records expiring unclaimed in the orphan buffer are dropped
// silently and never reported.
type EvictionListener[K comparable, M any] interface {
	RecordsEvicted(nodes []*Node[K, M])
}

// Organizer is the engine tracking competing chains of records within a
// bounded retention window. All mutation funnels through Insert; root
// advancement and orphan handling only happen there.
//
// The organizer exclusively owns every retained node. It is not safe for
// concurrent use.
type Organizer[K comparable, M any] struct {
	// The oldest retained node. It is held directly and is never part of
	// the node store.
	root *Node[K, M]

	// Every retained node except the root, keyed by its own key.
	nodes map[K]*Node[K, M]

	// Keys of all retained nodes grouped by height, the root included.
	// Keys within a bucket are in insertion order.
	heights map[uint64][]K

	// Records whose parent is not currently retained, keyed by their own
	// key. Re-evaluated after every accepted insertion.
	buffer map[K]*Node[K, M]

	// Height of the most recently accepted record. Buffered orphans do not
	// count.
	frontier uint64

	// Maximum age, in height units below the frontier, a node may reach
	// before it is evicted. Fixed per instance.
	depth uint64

	// Default branch scoring: accumulated value instead of branch length.
	scoreByValue bool

	listener EvictionListener[K, M]
}

// New creates an empty organizer with the given retention depth and default
// scoring mode. A zero-valued placeholder root is installed; Init must be
// called with a real root before records are inserted.
func New[K comparable, M any](retentionDepth uint64, scoreByValue bool) *Organizer[K, M] {
	return &Organizer[K, M]{
		root:         &Node[K, M]{},
		nodes:        map[K]*Node[K, M]{},
		heights:      map[uint64][]K{},
		buffer:       map[K]*Node[K, M]{},
		depth:        retentionDepth,
		scoreByValue: scoreByValue,
	}
}

// NewWithRoot creates an organizer with the given node, typically a genesis
// record, already installed as its root.
func NewWithRoot[K comparable, M any](root *Node[K, M], retentionDepth uint64, scoreByValue bool) *Organizer[K, M] {
	res := New[K, M](retentionDepth, scoreByValue)
	res.Init(root)
	return res
}

// Init installs the first real root of the tree. The root is indexed by
// height but never enters the node store. Calling Init on a populated
// organizer silently rebases it onto the new root.
func (o *Organizer[K, M]) Init(root *Node[K, M]) {
	o.frontier = root.height
	o.heights[root.height] = append(o.heights[root.height], root.key)
	o.root = root
}

// Root returns the oldest retained node.
func (o *Organizer[K, M]) Root() *Node[K, M] {
	return o.root
}

// FrontierHeight returns the height of the most recently accepted record.
func (o *Organizer[K, M]) FrontierHeight() uint64 {
	return o.frontier
}

// Get returns the retained node with the given key, or false if the key is
// neither the root nor present in the node store. Buffered orphans are not
// visible through Get.
func (o *Organizer[K, M]) Get(key K) (*Node[K, M], bool) {
	if key == o.root.key {
		return o.root, true
	}
	node, ok := o.nodes[key]
	return node, ok
}

// AllowedOldest returns the lowest height still within the retention window,
// or zero if the window reaches below height zero.
func (o *Organizer[K, M]) AllowedOldest() uint64 {
	if o.frontier < o.depth {
		return 0
	}
	return o.frontier - o.depth
}

// SetScoreByValue toggles the default scoring mode between branch length and
// accumulated branch value.
func (o *Organizer[K, M]) SetScoreByValue(byValue bool) {
	o.scoreByValue = byValue
}

// SetEvictionListener registers a listener for branches abandoned by root
// advancement. A nil listener disables reporting.
func (o *Organizer[K, M]) SetEvictionListener(listener EvictionListener[K, M]) {
	o.listener = listener
}

// Insert offers a record to the tree. Records that are too old, or that have
// no retained parent and cannot become a new tip, are silently discarded.
// Records whose parent is retained are attached to it; all others are parked
// in the orphan buffer until their parent arrives or they age out.
//
// Insertion is also the pacemaker of the engine: it advances the root once
// the root has aged past the retention window, evicts expired height
// buckets, and re-evaluates the orphan buffer. The mode parameter overrides
// the default scoring mode for any root advancement triggered by this call.
func (o *Organizer[K, M]) Insert(node *Node[K, M], mode ScoreMode) {
	// Records at or below the edge of the retention window can never be
	// attached to a surviving branch.
	if node.height <= o.AllowedOldest() {
		return
	}
	// Out-of-order records for an already settled height range with no
	// retained parent are not worth buffering.
	if _, ok := o.nodes[node.parent]; !ok && node.height <= o.frontier {
		return
	}

	o.maybeAdvanceRoot(mode)

	if parent, ok := o.nodes[node.parent]; ok {
		parent.children = append(parent.children, node.key)
	} else if node.parent == o.root.key {
		o.root.children = append(o.root.children, node.key)
	} else {
		log.Tracef("buffering orphan %v at height %d, parent %v unknown",
			node.key, node.height, node.parent)
		o.buffer[node.key] = node
		return
	}

	o.heights[node.height] = append(o.heights[node.height], node.key)
	o.frontier = node.height
	o.nodes[node.key] = node

	// Sweep leftovers that can no longer be relevant: the previous root,
	// and everything at the height immediately preceding the current root.
	delete(o.nodes, o.root.parent)
	if o.root.height > 0 {
		o.evictHeight(o.root.height - 1)
	}

	o.drainBuffer()
}

// maybeAdvanceRoot promotes the root's winning child to be the new root once
// the current root has aged past the retention window, deleting all sibling
// branches. With a single child there is nothing to decide; with none the
// root stays in place.
func (o *Organizer[K, M]) maybeAdvanceRoot(mode ScoreMode) {
	if o.root.height > o.AllowedOldest() {
		return
	}
	switch len(o.root.children) {
	case 0:
		// Nothing to advance to yet.
	case 1:
		key := o.root.children[0]
		next, ok := o.nodes[key]
		if !ok {
			panic(fmt.Sprintf("reorg tree: root child %v missing from the node store", key))
		}
		delete(o.nodes, key)
		o.root = next
		log.Debugf("root advanced to %v at height %d", next.key, next.height)
	default:
		winner := o.SelectBranch(mode)
		next, ok := o.nodes[winner]
		if !ok {
			panic(fmt.Sprintf("reorg tree: winning root child %v missing from the node store", winner))
		}
		delete(o.nodes, winner)
		siblings := o.root.children
		o.root = next

		var abandoned []*Node[K, M]
		for _, child := range siblings {
			if child != winner {
				abandoned = append(abandoned, o.DeleteSubtree(child)...)
			}
		}
		log.Debugf("root advanced to %v at height %d, %d records abandoned",
			next.key, next.height, len(abandoned))
		if o.listener != nil && len(abandoned) > 0 {
			o.listener.RecordsEvicted(abandoned)
		}
	}
}

// DeleteSubtree removes the node with the given key and every descendant
// transitively reachable through child links, unlinking the subtree from its
// parent's child list. The removed nodes are returned in breadth-first
// order. Deleting an unknown key is a silent no-op.
func (o *Organizer[K, M]) DeleteSubtree(key K) []*Node[K, M] {
	head, ok := o.nodes[key]
	if !ok {
		return nil
	}
	if parent, ok := o.nodes[head.parent]; ok {
		parent.children = slices.DeleteFunc(parent.children, func(k K) bool { return k == key })
	} else if head.parent == o.root.key {
		o.root.children = slices.DeleteFunc(o.root.children, func(k K) bool { return k == key })
	}

	var removed []*Node[K, M]
	next := []K{key}
	for len(next) > 0 {
		var following []K
		for _, k := range next {
			node, ok := o.nodes[k]
			if !ok {
				continue
			}
			delete(o.nodes, k)
			o.removeFromHeight(node.height, k)
			following = append(following, node.children...)
			removed = append(removed, node)
		}
		next = following
	}
	return removed
}

// drainBuffer makes a single pass over the orphan buffer, discarding records
// that have aged out of the retention window and attaching records whose
// parent has arrived in the meantime. A buffered record whose parent is
// itself still buffered stays put; it is re-checked on the next insertion.
func (o *Organizer[K, M]) drainBuffer() {
	var attach, expire []K
	for key, node := range o.buffer {
		if node.height <= o.AllowedOldest() {
			expire = append(expire, key)
			continue
		}
		if parent, ok := o.nodes[node.parent]; ok {
			parent.children = append(parent.children, key)
			attach = append(attach, key)
		}
	}
	for _, key := range attach {
		node := o.buffer[key]
		delete(o.buffer, key)
		o.heights[node.height] = append(o.heights[node.height], key)
		o.nodes[key] = node
		log.Tracef("orphan %v attached at height %d", key, node.height)
	}
	for _, key := range expire {
		delete(o.buffer, key)
	}
}

// evictHeight drops the height bucket at the given height together with all
// nodes filed under it.
func (o *Organizer[K, M]) evictHeight(height uint64) {
	keys, ok := o.heights[height]
	if !ok {
		return
	}
	delete(o.heights, height)
	for _, key := range keys {
		delete(o.nodes, key)
	}
}

// removeFromHeight removes a single key from its height bucket, dropping the
// bucket entirely when it becomes empty.
func (o *Organizer[K, M]) removeFromHeight(height uint64, key K) {
	bucket := slices.DeleteFunc(o.heights[height], func(k K) bool { return k == key })
	if len(bucket) == 0 {
		delete(o.heights, height)
		return
	}
	o.heights[height] = bucket
}

// Tips returns the keys of all records at the frontier height, in insertion
// order. It panics if the frontier height bucket is missing, which indicates
// a corrupted index.
func (o *Organizer[K, M]) Tips() []K {
	tips, ok := o.heights[o.frontier]
	if !ok {
		panic(fmt.Sprintf("reorg tree: no height bucket for frontier height %d", o.frontier))
	}
	return slices.Clone(tips)
}

// IndexDiff returns the keys present in the height index but absent from the
// node store, in no particular order. A healthy organizer reports exactly
// the root's key; anything else indicates an index inconsistency.
func (o *Organizer[K, M]) IndexDiff() []K {
	indexed := map[K]struct{}{}
	for _, keys := range o.heights {
		for _, key := range keys {
			indexed[key] = struct{}{}
		}
	}
	for key := range o.nodes {
		delete(indexed, key)
	}
	return slices.Collect(maps.Keys(indexed))
}

func (o *Organizer[K, M]) String() string {
	return fmt.Sprintf(
		"root: {%v}, nodes: %d, height buckets: %d, buffered: %d, frontier: %d, retention depth: %d",
		o.root, len(o.nodes), len(o.heights), len(o.buffer), o.frontier, o.depth,
	)
}

// DumpNodes writes a summary line followed by the root and every retained
// record to the package logger at trace level, one line per record, in
// ascending height order. Logging is disabled by default; see UseLogger.
func (o *Organizer[K, M]) DumpNodes() {
	log.Tracef("%v", o)
	for _, height := range slices.Sorted(maps.Keys(o.heights)) {
		for _, key := range o.heights[height] {
			if node, ok := o.Get(key); ok {
				log.Tracef("%v", node)
			}
		}
	}
}
