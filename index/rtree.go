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
	"math"
	"sort"

	"github.com/gatudata/zonmatch/geodesy"
	"github.com/gatudata/zonmatch/model"
)

const rtreeFanout = 8

// rTree packs segment bounding boxes into a hierarchy of bounding
// rectangles using sort-tile-recursive bulk loading.  Queries walk
// children in order of increasing rectangle distance and prune a
// subtree once its rectangle lies farther than the current best match.
// Like the KD-tree, it is exact.
type rTree struct {
	root    *rtreeNode
	segs    []model.ZoneSegment
	skipped int
}

type rtreeNode struct {
	bbox     model.BoundingBox
	children []*rtreeNode
	leaf     []int
}

// NewRTree builds the packed R-tree index.
func NewRTree(segments []model.ZoneSegment) Index {
	kept, skipped := sift(segments)

	t := &rTree{segs: kept, skipped: skipped}

	if len(kept) > 0 {
		t.root = t.pack(kept)
	}

	return t
}

// pack builds the leaf level from the segment snapshot, then reduces
// node levels until a single root remains.
func (t *rTree) pack(segs []model.ZoneSegment) *rtreeNode {
	entries := make([]int, len(segs))
	for i := range entries {
		entries[i] = i
	}

	center := func(i int) (model.Degrees, model.Degrees) {
		seg := &segs[i]

		return (seg.Start.Lat + seg.End.Lat) / 2, (seg.Start.Lon + seg.End.Lon) / 2
	}

	sortTile(entries, len(entries), func(a, b int) bool {
		_, aLon := center(a)
		_, bLon := center(b)

		if aLon != bLon {
			return aLon < bLon
		}

		return segs[a].ID < segs[b].ID
	}, func(a, b int) bool {
		aLat, _ := center(a)
		bLat, _ := center(b)

		if aLat != bLat {
			return aLat < bLat
		}

		return segs[a].ID < segs[b].ID
	})

	level := make([]*rtreeNode, 0, (len(entries)+rtreeFanout-1)/rtreeFanout)

	for at := 0; at < len(entries); at += rtreeFanout {
		end := min(at+rtreeFanout, len(entries))

		node := &rtreeNode{bbox: *model.InitialBoundingBox(), leaf: entries[at:end]}
		for _, i := range node.leaf {
			sb := model.SegmentBoundingBox(&segs[i])
			node.bbox.ExpandWithBoundingBox(&sb)
		}

		level = append(level, node)
	}

	for len(level) > 1 {
		level = t.packLevel(level)
	}

	return level[0]
}

// packLevel groups one tree level into parents of up to rtreeFanout
// children, tiling by bounding box centers.
func (t *rTree) packLevel(nodes []*rtreeNode) []*rtreeNode {
	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}

	centerOf := func(i int) (model.Degrees, model.Degrees) {
		b := &nodes[i].bbox

		return (b.Top + b.Bottom) / 2, (b.Left + b.Right) / 2
	}

	sortTile(order, len(order), func(a, b int) bool {
		_, aLon := centerOf(a)
		_, bLon := centerOf(b)

		if aLon != bLon {
			return aLon < bLon
		}

		return a < b
	}, func(a, b int) bool {
		aLat, _ := centerOf(a)
		bLat, _ := centerOf(b)

		if aLat != bLat {
			return aLat < bLat
		}

		return a < b
	})

	parents := make([]*rtreeNode, 0, (len(order)+rtreeFanout-1)/rtreeFanout)

	for at := 0; at < len(order); at += rtreeFanout {
		end := min(at+rtreeFanout, len(order))

		parent := &rtreeNode{bbox: *model.InitialBoundingBox()}
		for _, i := range order[at:end] {
			parent.children = append(parent.children, nodes[i])
			parent.bbox.ExpandWithBoundingBox(&nodes[i].bbox)
		}

		parents = append(parents, parent)
	}

	return parents
}

// sortTile orders entries into vertical slices by the first comparator
// and within each slice by the second, the standard STR tiling.
func sortTile(entries []int, n int, byLon, byLat func(a, b int) bool) {
	if n == 0 {
		return
	}

	sort.Slice(entries, func(a, b int) bool { return byLon(entries[a], entries[b]) })

	sliceCount := int(math.Ceil(math.Sqrt(float64((n + rtreeFanout - 1) / rtreeFanout))))
	sliceSize := (n + sliceCount - 1) / sliceCount

	for at := 0; at < n; at += sliceSize {
		end := min(at+sliceSize, n)

		part := entries[at:end]
		sort.Slice(part, func(a, b int) bool { return byLat(part[a], part[b]) })
	}
}

func (t *rTree) Query(p model.GeoPoint, cutoff float64) model.MatchResult {
	best := model.NoMatch()
	t.search(t.root, p, cutoff, &best)

	return best
}

func (t *rTree) search(n *rtreeNode, p model.GeoPoint, cutoff float64, best *model.MatchResult) {
	if n == nil {
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

	// Visit children nearest rectangle first; prune once a rectangle
	// lies beyond the cutoff or the best exact distance so far.  Equal
	// distances are still visited for the identifier tie break.
	type ranked struct {
		node  *rtreeNode
		bound float64
	}

	order := make([]ranked, 0, len(n.children))
	for _, child := range n.children {
		order = append(order, ranked{child, geodesy.PointToBoundingBox(p, &child.bbox)})
	}

	sort.SliceStable(order, func(a, b int) bool { return order[a].bound < order[b].bound })

	for _, r := range order {
		if r.bound > cutoff {
			break
		}

		if best.Matched && r.bound > best.Meters {
			break
		}

		t.search(r.node, p, cutoff, best)
	}
}

func (t *rTree) Len() int           { return len(t.segs) }
func (t *rTree) Skipped() int       { return t.skipped }
func (t *rTree) Strategy() Strategy { return RTree }
