// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package tree implements a bounded-depth, self-pruning tree for tracking
// competing chains of append-only records, as needed for fork-choice and
// chain-reorganization bookkeeping. Records reference a parent by key, may
// arrive out of order, and may form temporary forks. The tree
//   - retains only a sliding window of recent history below the tallest
//     known record,
//   - buffers records whose parent has not arrived yet and attaches them
//     once it does,
//   - periodically advances its root forward, abandoning every branch that
//     is not on the surviving lineage.
//
// The winning branch is either the longest one or the one with the greatest
// accumulated record value, depending on the configured scoring mode.
//
// The implementation is a pure in-memory engine over caller-supplied records.
// It does not fetch missing ancestors, does not validate record contents,
// and does not persist anything. It is not safe for concurrent use; callers
// must serialize all access, including read-only traversals.
package tree
