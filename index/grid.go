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

// cellKey addresses one cell of a uniform latitude/longitude grid.
type cellKey struct {
	X int32
	Y int32
}

// cellGeometry converts between coordinates and grid cells.  The cell
// edge approximates a fixed length in meters; the longitude step is
// scaled at a reference latitude so cells stay roughly square over the
// covered region.
type cellGeometry struct {
	latStep float64
	lonStep float64
}

func newCellGeometry(sizeMeters float64, segments []model.ZoneSegment) cellGeometry {
	refLat := 0.0

	if len(segments) > 0 {
		bbox := model.InitialBoundingBox()
		for i := range segments {
			sb := model.SegmentBoundingBox(&segments[i])
			bbox.ExpandWithBoundingBox(&sb)
		}

		refLat = float64(bbox.Top+bbox.Bottom) / 2.0
	}

	lonScale := math.Cos(refLat * math.Pi / 180.0)
	if lonScale < 0.01 {
		// Keep the grid usable at extreme latitudes.
		lonScale = 0.01
	}

	return cellGeometry{
		latStep: sizeMeters / geodesy.MetersPerDegreeLat,
		lonStep: sizeMeters / (geodesy.MetersPerDegreeLat * lonScale),
	}
}

func (g cellGeometry) cellOf(p model.GeoPoint) cellKey {
	return cellKey{
		X: int32(math.Floor(float64(p.Lon) / g.lonStep)),
		Y: int32(math.Floor(float64(p.Lat) / g.latStep)),
	}
}

// grid partitions the covered region into cells sized to the cutoff and
// registers each segment in the cell of each of its endpoints.  Queries
// only scan the point's own cell, which makes the strategy approximate:
// a true nearest segment registered solely in an adjacent cell is
// missed.  It can never produce an out-of-cutoff match because every
// candidate distance is still checked.
type grid struct {
	geom    cellGeometry
	cells   map[cellKey][]int
	segs    []model.ZoneSegment
	skipped int
}

// NewGrid builds the single-cell-lookup grid index.
func NewGrid(segments []model.ZoneSegment, cfg Config) Index {
	kept, skipped := sift(segments)

	g := &grid{
		geom:    newCellGeometry(cfg.CutoffMeters, kept),
		cells:   make(map[cellKey][]int),
		segs:    kept,
		skipped: skipped,
	}

	for i := range kept {
		start := g.geom.cellOf(kept[i].Start)
		end := g.geom.cellOf(kept[i].End)

		g.cells[start] = append(g.cells[start], i)
		if end != start {
			g.cells[end] = append(g.cells[end], i)
		}
	}

	return g
}

func (g *grid) Query(p model.GeoPoint, cutoff float64) model.MatchResult {
	best := model.NoMatch()

	// A point outside every registered cell is a normal no-match.
	for _, i := range g.cells[g.geom.cellOf(p)] {
		seg := &g.segs[i]

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

func (g *grid) Len() int           { return len(g.segs) }
func (g *grid) Skipped() int       { return g.skipped }
func (g *grid) Strategy() Strategy { return Grid }
