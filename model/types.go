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

package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/s2"
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Epsilon is an enumeration of precisions that can be used when comparing Degrees.
type Epsilon float64

// Degrees comparison precisions.
const (
	E5 Epsilon = 1e-5
	E6 Epsilon = 1e-6
	E7 Epsilon = 1e-7
	E8 Epsilon = 1e-8
	E9 Epsilon = 1e-9

	half = 0.5
)

// EqualWithin checks if two degrees are within a specific epsilon.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// round returns the value rounded to nearest as an int64.
func round(val float64) int64 {
	if val < 0 {
		return int64(val - half)
	}

	return int64(val + half)
}

// ParseDegrees converts a string to a Degrees instance.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}

// GeoPoint is a WGS84 coordinate pair in decimal degrees.
type GeoPoint struct {
	Lat Degrees
	Lon Degrees
}

// LatLng returns the equivalent s2.LatLng.
func (p GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(float64(p.Lat), float64(p.Lon))
}

// Valid reports whether the point lies within the legal latitude and
// longitude range.
func (p GeoPoint) Valid() bool {
	return p.Lat >= MinLat && p.Lat <= MaxLat && p.Lon >= MinLon && p.Lon <= MaxLon
}

// EqualWithin checks if two points are within a specific epsilon.
func (p GeoPoint) EqualWithin(o GeoPoint, eps Epsilon) bool {
	return p.Lat.EqualWithin(o.Lat, eps) && p.Lon.EqualWithin(o.Lon, eps)
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%s, %s)", ftoa(float64(p.Lat)), ftoa(float64(p.Lon)))
}

// ftoa formats a float with the minimal number of decimals.
func ftoa(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
