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

package geodesy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatudata/zonmatch/geodesy"
	"github.com/gatudata/zonmatch/model"
)

func threeParts() [][]model.GeoPoint {
	return [][]model.GeoPoint{
		{{Lat: 55.60, Lon: 13.00}, {Lat: 55.601, Lon: 13.001}},
		{{Lat: 55.61, Lon: 13.01}, {Lat: 55.6105, Lon: 13.0105}, {Lat: 55.611, Lon: 13.011}},
		{{Lat: 55.62, Lon: 13.02}, {Lat: 55.621, Lon: 13.021}},
	}
}

func TestDecomposeMultiPart(t *testing.T) {
	var seq model.IDSequence

	attrs := geodesy.Attributes{
		Dataset: model.DatasetEnvironmental,
		Env:     &model.EnvironmentalAttributes{Restriction: "Parkering förbjuden", TimeWindow: "0800-1200", Day: 3},
	}

	segments := geodesy.Decompose(threeParts(), attrs, &seq)
	require.Len(t, segments, 3)

	for i, seg := range segments {
		assert.Equal(t, model.SegmentID(i), seg.ID)
		assert.Equal(t, model.DatasetEnvironmental, seg.Dataset)
		require.NotNil(t, seg.Env)
		assert.Equal(t, "Parkering förbjuden", seg.Env.Restriction)
		assert.Nil(t, seg.Fee)
	}

	// Each part spans its first and last coordinate.
	assert.Equal(t, model.GeoPoint{Lat: 55.61, Lon: 13.01}, segments[1].Start)
	assert.Equal(t, model.GeoPoint{Lat: 55.611, Lon: 13.011}, segments[1].End)
}

func TestDecomposeCopiesAttributes(t *testing.T) {
	var seq model.IDSequence

	env := &model.EnvironmentalAttributes{Restriction: "Städdag"}
	segments := geodesy.Decompose(threeParts(), geodesy.Attributes{Env: env}, &seq)
	require.Len(t, segments, 3)

	// Mutating one copy must not leak into the others or the source.
	segments[0].Env.Restriction = "changed"

	assert.Equal(t, "Städdag", env.Restriction)
	assert.Equal(t, "Städdag", segments[1].Env.Restriction)
}

func TestDecomposeSinglePart(t *testing.T) {
	var seq model.IDSequence

	parts := [][]model.GeoPoint{
		{{Lat: 55.60, Lon: 13.00}, {Lat: 55.601, Lon: 13.001}},
	}

	fee := &model.ParkingFeeAttributes{ZoneCode: "C", Spaces: 12, ParkingType: "Längsgående"}
	segments := geodesy.Decompose(parts, geodesy.Attributes{Dataset: model.DatasetParkingFee, Fee: fee}, &seq)

	require.Len(t, segments, 1)
	assert.Equal(t, "C", segments[0].Fee.ZoneCode)
}

func TestDecomposeSkipsEmptyParts(t *testing.T) {
	var seq model.IDSequence

	parts := [][]model.GeoPoint{
		{},
		{{Lat: 55.60, Lon: 13.00}},
		{{Lat: 55.61, Lon: 13.01}, {Lat: 55.611, Lon: 13.011}},
	}

	segments := geodesy.Decompose(parts, geodesy.Attributes{}, &seq)

	require.Len(t, segments, 1)
	assert.Equal(t, model.GeoPoint{Lat: 55.61, Lon: 13.01}, segments[0].Start)
}

func TestDecomposeFreshIdentifiers(t *testing.T) {
	var seq model.IDSequence

	first := geodesy.Decompose(threeParts(), geodesy.Attributes{}, &seq)
	second := geodesy.Decompose(threeParts(), geodesy.Attributes{}, &seq)

	assert.Equal(t, model.SegmentID(2), first[2].ID)
	assert.Equal(t, model.SegmentID(3), second[0].ID)
}
