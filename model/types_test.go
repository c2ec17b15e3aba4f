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
	"github.com/stretchr/testify/require"

	"github.com/gatudata/zonmatch/model"
)

func TestDegrees_EqualWithin(t *testing.T) {
	testCases := []struct {
		name     string
		d        model.Degrees
		o        model.Degrees
		eps      model.Epsilon
		expected bool
	}{
		{"equal", 55.6050, 55.6050, model.E7, true},
		{"within E5", 55.60501, 55.605012, model.E5, true},
		{"outside E7", 55.60501, 55.605012, model.E7, false},
		{"negative", -13.0030, -13.0030001, model.E6, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.d.EqualWithin(tc.o, tc.eps))
		})
	}
}

func TestParseDegrees(t *testing.T) {
	d, err := model.ParseDegrees("55.6050")
	require.NoError(t, err)
	assert.Equal(t, model.Degrees(55.6050), d)

	_, err = model.ParseDegrees("north")
	assert.Error(t, err)
}

func TestGeoPoint_Valid(t *testing.T) {
	testCases := []struct {
		name     string
		point    model.GeoPoint
		expected bool
	}{
		{"malmo", model.GeoPoint{Lat: 55.6050, Lon: 13.0030}, true},
		{"poles", model.GeoPoint{Lat: 90, Lon: 180}, true},
		{"latitude too high", model.GeoPoint{Lat: 90.1, Lon: 13.0}, false},
		{"longitude too low", model.GeoPoint{Lat: 55.6, Lon: -180.1}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.point.Valid())
		})
	}
}

func TestGeoPoint_String(t *testing.T) {
	assert.Equal(t, "(55.605, 13.0)", model.GeoPoint{Lat: 55.605, Lon: 13}.String())
}
