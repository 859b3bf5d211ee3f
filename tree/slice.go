// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// indexOf returns the index of the node with the given base in the given
// slice, or -1 if it is not found. The search starts at startIndex and
// proceeds outward in both directions, which is very fast when the node
// is at or near its last known index.
func indexOf(slice []Node, child *NodeBase, startIndex int) int {
	n := len(slice)
	if n == 0 {
		return -1
	}
	si := min(max(startIndex, 0), n-1)
	for up, down := si, si-1; up < n || down >= 0; up, down = up+1, down-1 {
		if up < n && slice[up].AsTree() == child {
			return up
		}
		if down >= 0 && slice[down].AsTree() == child {
			return down
		}
	}
	return -1
}

// insertIndex resolves an insertion position in a slice of length n.
// Non-negative positions insert before that index, clamped to n;
// negative positions count back from one past the end, clamped to 0.
func insertIndex(n, position int) int {
	if position < 0 {
		return max(n+1+position, 0)
	}
	return min(position, n)
}

// childIndex resolves an element position in a slice of length n,
// with negative positions counting from the end. It returns false
// if the position is out of range.
func childIndex(n, position int) (int, bool) {
	if position < 0 {
		position += n
	}
	return position, position >= 0 && position < n
}
