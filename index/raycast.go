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

// raycasting casts a fixed number of evenly spaced rays from the query
// point out to the cutoff range and intersects each ray with every
// segment.  The segment with the globally nearest intersection wins;
// equal intersection distances resolve to the smallest ray-angle index,
// then to the lowest segment identifier on the same ray.  A segment no
// ray happens to cross is missed, which is the documented approximation.
// The reported distance is the exact point-to-segment distance of the
// matched segment, so a match is never beyond the cutoff.
type raycasting struct {
	segments []model.ZoneSegment
	rayCount int
	skipped  int
}

// NewRaycasting builds the ray fan index.
func NewRaycasting(segments []model.ZoneSegment, cfg Config) Index {
	kept, skipped := sift(segments)

	rays := cfg.RayCount
	if rays <= 0 {
		rays = DefaultRayCount
	}

	return &raycasting{segments: kept, rayCount: rays, skipped: skipped}
}

func (r *raycasting) Query(p model.GeoPoint, cutoff float64) model.MatchResult {
	lonScale := math.Cos(float64(p.Lat) * math.Pi / 180.0)

	// Segment endpoints on the local tangent plane, in meters, with the
	// query point at the origin.
	type planar struct {
		ax, ay, bx, by float64
	}

	flat := make([]planar, len(r.segments))

	for i := range r.segments {
		seg := &r.segments[i]
		flat[i] = planar{
			ax: float64(seg.Start.Lon-p.Lon) * lonScale * geodesy.MetersPerDegreeLat,
			ay: float64(seg.Start.Lat-p.Lat) * geodesy.MetersPerDegreeLat,
			bx: float64(seg.End.Lon-p.Lon) * lonScale * geodesy.MetersPerDegreeLat,
			by: float64(seg.End.Lat-p.Lat) * geodesy.MetersPerDegreeLat,
		}
	}

	bestT := math.Inf(1)
	bestRay := -1
	bestSeg := -1

	for ray := 0; ray < r.rayCount; ray++ {
		angle := 2 * math.Pi * float64(ray) / float64(r.rayCount)
		dx, dy := math.Cos(angle), math.Sin(angle)

		for i := range flat {
			t, ok := rayHit(dx, dy, flat[i].ax, flat[i].ay, flat[i].bx, flat[i].by)
			if !ok || t > cutoff {
				continue
			}

			if t < bestT || (t == bestT && ray == bestRay && r.segments[i].ID < r.segments[bestSeg].ID) {
				bestT, bestRay, bestSeg = t, ray, i
			}
		}
	}

	if bestSeg < 0 {
		return model.NoMatch()
	}

	seg := &r.segments[bestSeg]

	d := geodesy.PointToSegment(p, seg.Start, seg.End)
	if d > cutoff {
		// The intersection was in range but the tangent-plane and
		// great-circle measures straddle the boundary; stay strict.
		return model.NoMatch()
	}

	return model.Match(seg.ID, d)
}

// rayHit intersects the ray from the origin in direction (dx, dy) with
// the segment from (ax, ay) to (bx, by), returning the ray parameter of
// the nearest intersection.  Endpoint crossings count as hits, so a ray
// passing exactly through a segment vertex resolves normally.
func rayHit(dx, dy, ax, ay, bx, by float64) (float64, bool) {
	ex, ey := bx-ax, by-ay

	denom := dx*ey - dy*ex
	if denom == 0 {
		// Parallel.  A collinear segment can still be hit head-on.
		if dx*ay-dy*ax != 0 {
			return 0, false
		}

		tA := dx*ax + dy*ay
		tB := dx*bx + dy*by

		t := math.Min(tA, tB)
		if math.Max(tA, tB) < 0 {
			return 0, false
		}

		return math.Max(t, 0), true
	}

	s := (ax*dy - ay*dx) / denom
	if s < 0 || s > 1 {
		return 0, false
	}

	t := (ax*ey - ay*ex) / denom
	if t < 0 {
		return 0, false
	}

	return t, true
}

func (r *raycasting) Len() int           { return len(r.segments) }
func (r *raycasting) Skipped() int       { return r.skipped }
func (r *raycasting) Strategy() Strategy { return Raycasting }
