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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatudata/zonmatch/model"
)

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()
	assert.Equal(t, initial.Top, model.MinLat)
	assert.Equal(t, initial.Bottom, model.MaxLat)
	assert.Equal(t, initial.Right, model.MinLon)
	assert.Equal(t, initial.Left, model.MaxLon)
}

func TestBoundingBox_Contains(t *testing.T) {
	bbox := &model.BoundingBox{Top: 55.61, Left: 12.99, Bottom: 55.59, Right: 13.01}

	testCases := []struct {
		name     string
		lat      model.Degrees
		lng      model.Degrees
		expected bool
	}{
		{"center", 55.60, 13.00, true},
		{"bottom/left", 55.59, 12.99, true},
		{"top/right", 55.61, 13.01, true},
		{"north of box", 55.62, 13.00, false},
		{"west of box", 55.60, 12.98, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, bbox.Contains(tc.lat, tc.lng))
		})
	}
}

func TestBoundingBox_ExpandWithLatLng(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithLatLng(55.60, 13.00)
	bbox.ExpandWithLatLng(55.62, 12.98)

	assert.Equal(t, model.Degrees(55.62), bbox.Top)
	assert.Equal(t, model.Degrees(55.60), bbox.Bottom)
	assert.Equal(t, model.Degrees(12.98), bbox.Left)
	assert.Equal(t, model.Degrees(13.00), bbox.Right)
}

func TestBoundingBox_ExpandWithBoundingBox(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithBoundingBox(&model.BoundingBox{Top: 55.61, Left: 12.99, Bottom: 55.59, Right: 13.01})
	bbox.ExpandWithBoundingBox(&model.BoundingBox{Top: 55.63, Left: 13.00, Bottom: 55.60, Right: 13.02})

	assert.Equal(t, &model.BoundingBox{Top: 55.63, Left: 12.99, Bottom: 55.59, Right: 13.02}, bbox)
}

func TestBoundingBox_ClampLatLng(t *testing.T) {
	bbox := &model.BoundingBox{Top: 55.61, Left: 12.99, Bottom: 55.59, Right: 13.01}

	lat, lng := bbox.ClampLatLng(55.65, 12.90)
	assert.Equal(t, model.Degrees(55.61), lat)
	assert.Equal(t, model.Degrees(12.99), lng)

	lat, lng = bbox.ClampLatLng(55.60, 13.00)
	assert.Equal(t, model.Degrees(55.60), lat)
	assert.Equal(t, model.Degrees(13.00), lng)
}

func TestSegmentBoundingBox(t *testing.T) {
	seg := &model.ZoneSegment{
		Start: model.GeoPoint{Lat: 55.61, Lon: 12.99},
		End:   model.GeoPoint{Lat: 55.59, Lon: 13.01},
	}

	bbox := model.SegmentBoundingBox(seg)

	assert.Equal(t, model.BoundingBox{Top: 55.61, Left: 12.99, Bottom: 55.59, Right: 13.01}, bbox)
}
