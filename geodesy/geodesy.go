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

// Package geodesy is the shared geometry kernel.  Every indexing
// strategy measures with the functions in this package, which is what
// makes the exact strategies mutually consistent.
package geodesy

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/gatudata/zonmatch/model"
)

// EarthRadiusMeters is the mean earth radius used for all great-circle
// conversions.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two points in
// meters.
func Distance(p1, p2 model.GeoPoint) float64 {
	return p1.LatLng().Distance(p2.LatLng()).Radians() * EarthRadiusMeters
}

// MetersPerDegreeLat is the great-circle length of one degree of
// latitude.
const MetersPerDegreeLat = EarthRadiusMeters * math.Pi / 180.0

// MetersPerDegreeLon returns the length of one degree of longitude at
// the given latitude.
func MetersPerDegreeLon(lat model.Degrees) float64 {
	return MetersPerDegreeLat * math.Cos(float64(lat)*math.Pi/180.0)
}

// PointToSegment returns the minimum distance in meters from a point to
// any point on the segment between a and b.
//
// The point is projected onto the line through a and b on a local
// equirectangular tangent plane centered on the segment, the projection
// parameter is clamped to the segment's extent, and the great-circle
// distance from the original point to the clamped projection is
// returned.  The approximation holds at sub-kilometer segment scale.
func PointToSegment(p, a, b model.GeoPoint) float64 {
	midLat := float64(a.Lat+b.Lat) / 2.0
	lonScale := math.Cos(midLat * math.Pi / 180.0)

	ax, ay := 0.0, 0.0
	bx := float64(b.Lon-a.Lon) * lonScale
	by := float64(b.Lat - a.Lat)
	px := float64(p.Lon-a.Lon) * lonScale
	py := float64(p.Lat - a.Lat)

	abx, aby := bx-ax, by-ay
	lenSq := abx*abx + aby*aby

	if lenSq == 0 {
		// Degenerate segment, nearest point is the endpoint itself.
		return Distance(p, a)
	}

	t := Clamp((px*abx+py*aby)/lenSq, 0.0, 1.0)

	closest := model.GeoPoint{
		Lat: a.Lat + model.Degrees(t*(float64(b.Lat)-float64(a.Lat))),
		Lon: a.Lon + model.Degrees(t*(float64(b.Lon)-float64(a.Lon))),
	}

	return Distance(p, closest)
}

// PointToBoundingBox returns the distance in meters from a point to the
// nearest point of the bounding box, or zero when the point lies inside
// it.
func PointToBoundingBox(p model.GeoPoint, b *model.BoundingBox) float64 {
	if b.Contains(p.Lat, p.Lon) {
		return 0
	}

	lat, lon := b.ClampLatLng(p.Lat, p.Lon)

	return Distance(p, model.GeoPoint{Lat: lat, Lon: lon})
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
