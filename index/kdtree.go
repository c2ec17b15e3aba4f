// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"sort"

	"github.com/gatudata/zonmatch/geodesy"
	"github.com/gatudata/zonmatch/model"
)

const kdLeafSize = 8

// kdTree recursively partitions segments by the median of their
// midpoint coordinate, alternating the latitude and longitude axis per
// level.  Every node keeps the bounding box of the whole segments in
// its subtree, not just their midpoints, so branch-and-bound pruning
// never discards a segment whose body reaches closer than its midpoint.
// The strategy is exact: queries agree with brute force on every input.
type kdTree struct {
	root    *kdNode
	segs    []model.ZoneSegment
	skipped int
}

type kdNode struct {
	bbox model.BoundingBox

	// Internal nodes.
	left  *kdNode
	right *kdNode

	// Leaf nodes hold indices into the segment snapshot.
	leaf []int
}

// NewKDTree builds the midpoint KD-tree index.
func NewKDTree(segments []model.ZoneSegment) Index {
	kept, skipped := sift(segments)

	t := &kdTree{segs: kept, skipped: skipped}

	entries := make([]int, len(kept))
	for i := range entries {
		entries[i] = i
	}

	t.root = t.build(entries, 0)

	return t
}

// midpoint returns the segment midpoint coordinate on the axis
// (0 latitude, 1 longitude).
func (t *kdTree) midpoint(i, axis int) model.Degrees {
	seg := &t.segs[i]
	if axis == 0 {
		return (seg.Start.Lat + seg.End.Lat) / 2
	}

	return (seg.Start.Lon + seg.End.Lon) / 2
}

func (t *kdTree) build(entries []int, depth int) *kdNode {
	if len(entries) == 0 {
		return nil
	}

	node := &kdNode{bbox: *model.InitialBoundingBox()}
	for _, i := range entries {
		sb := model.SegmentBoundingBox(&t.segs[i])
		node.bbox.ExpandWithBoundingBox(&sb)
	}

	if len(entries) <= kdLeafSize {
		node.leaf = entries

		return node
	}

	axis := depth % 2

	// Median split with the segment identifier as tie breaker, so the
	// tree shape is reproducible for a given input.
	sort.Slice(entries, func(a, b int) bool {
		ma, mb := t.midpoint(entries[a], axis), t.midpoint(entries[b], axis)
		if ma != mb {
			return ma < mb
		}

		return t.segs[entries[a]].ID < t.segs[entries[b]].ID
	})

	mid := len(entries) / 2
	node.left = t.build(entries[:mid], depth+1)
	node.right = t.build(entries[mid:], depth+1)

	return node
}

func (t *kdTree) Query(p model.GeoPoint, cutoff float64) model.MatchResult {
	best := model.NoMatch()
	t.search(t.root, p, cutoff, &best)

	return best
}

func (t *kdTree) search(n *kdNode, p model.GeoPoint, cutoff float64, best *model.MatchResult) {
	if n == nil {
		return
	}

	// Prune a subtree only when the minimum possible distance to its
	// bounding region already exceeds the cutoff or the best exact
	// distance found so far.  Equal distances descend, because a lower
	// identifier may still be waiting there.
	bound := geodesy.PointToBoundingBox(p, &n.bbox)
	if bound > cutoff {
		return
	}

	if best.Matched && bound > best.Meters {
		return
	}

	if n.leaf != nil {
		for _, i := range n.leaf {
			seg := &t.segs[i]

			d := geodesy.PointToSegment(p, seg.Start, seg.End)
			if d > cutoff {
				continue
			}

			if candidate := model.Match(seg.ID, d); candidate.Closer(*best) {
				*best = candidate
			}
		}

		return
	}

	// Visit the nearer subtree first to tighten the bound early.
	first, second := n.left, n.right
	if kdChildBound(p, second) < kdChildBound(p, first) {
		first, second = second, first
	}

	t.search(first, p, cutoff, best)
	t.search(second, p, cutoff, best)
}

func kdChildBound(p model.GeoPoint, n *kdNode) float64 {
	if n == nil {
		return 0
	}

	return geodesy.PointToBoundingBox(p, &n.bbox)
}

func (t *kdTree) Len() int           { return len(t.segs) }
func (t *kdTree) Skipped() int       { return t.skipped }
func (t *kdTree) Strategy() Strategy { return KDTree }
