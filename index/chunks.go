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

	"github.com/gatudata/zonmatch/geodesy"
	"github.com/gatudata/zonmatch/model"
)

// overlappingChunks uses larger cells than the plain grid and registers
// each segment in every cell its cutoff-expanded bounding box overlaps.
// The query still looks at a single cell, but the overlap margin means
// a segment within cutoff of the point is almost always registered
// there; boundary misses remain possible, so the strategy stays in the
// approximate class.
type overlappingChunks struct {
	geom    cellGeometry
	cells   map[cellKey][]int
	segs    []model.ZoneSegment
	skipped int
}

// NewOverlappingChunks builds the overlap-margin chunk index.  The cell
// edge is cfg.ChunkMultiplier times the cutoff.
func NewOverlappingChunks(segments []model.ZoneSegment, cfg Config) Index {
	kept, skipped := sift(segments)

	multiplier := cfg.ChunkMultiplier
	if multiplier <= 0 {
		multiplier = DefaultChunkMultiplier
	}

	c := &overlappingChunks{
		geom:    newCellGeometry(multiplier*cfg.CutoffMeters, kept),
		cells:   make(map[cellKey][]int),
		segs:    kept,
		skipped: skipped,
	}

	marginLat := cfg.CutoffMeters / geodesy.MetersPerDegreeLat
	marginLon := c.geom.lonStep / c.geom.latStep * marginLat

	for i := range kept {
		bbox := model.SegmentBoundingBox(&kept[i])

		minX := int32(math.Floor((float64(bbox.Left) - marginLon) / c.geom.lonStep))
		maxX := int32(math.Floor((float64(bbox.Right) + marginLon) / c.geom.lonStep))
		minY := int32(math.Floor((float64(bbox.Bottom) - marginLat) / c.geom.latStep))
		maxY := int32(math.Floor((float64(bbox.Top) + marginLat) / c.geom.latStep))

		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				key := cellKey{X: x, Y: y}
				c.cells[key] = append(c.cells[key], i)
			}
		}
	}

	return c
}

func (c *overlappingChunks) Query(p model.GeoPoint, cutoff float64) model.MatchResult {
	best := model.NoMatch()

	for _, i := range c.cells[c.geom.cellOf(p)] {
		seg := &c.segs[i]

		d := geodesy.PointToSegment(p, seg.Start, seg.End)
		if d > cutoff {
			continue
		}

		if candidate := model.Match(seg.ID, d); candidate.Closer(best) {
			best = candidate
		}
	}

	return best
}

func (c *overlappingChunks) Len() int           { return len(c.segs) }
func (c *overlappingChunks) Skipped() int       { return c.skipped }
func (c *overlappingChunks) Strategy() Strategy { return OverlappingChunks }
