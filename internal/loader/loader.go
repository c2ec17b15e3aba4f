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

// Package loader parses Malmö open-data GeoJSON into the core's address
// and zone collections.  Malformed features are logged and skipped so a
// few bad rows never sink a whole run.
package loader

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gatudata/zonmatch/geodesy"
	"github.com/gatudata/zonmatch/model"
)

// Address property keys of the Malmö address export.
const (
	propPostalCode   = "POSTNR"
	propFullAddress  = "BELADRESS"
	propStreet       = "ADRESSOMR"
	propStreetNumber = "ADRESSPLAT"
)

// LoadAddresses parses Point features into address points.
func LoadAddresses(r io.Reader) ([]model.AddressPoint, error) {
	fc, err := readFeatureCollection(r)
	if err != nil {
		return nil, fmt.Errorf("addresses: %w", err)
	}

	addresses := make([]model.AddressPoint, 0, len(fc.Features))

	for _, f := range fc.Features {
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			slog.Warn("skipping address feature without point geometry")

			continue
		}

		full := propString(f.Properties, propFullAddress)
		street := propString(f.Properties, propStreet)
		number := propString(f.Properties, propStreetNumber)

		if full == "" || street == "" || number == "" {
			slog.Warn("skipping address feature with incomplete identity",
				"address", full, "street", street, "number", number)

			continue
		}

		addresses = append(addresses, model.AddressPoint{
			Address:      full,
			Street:       street,
			StreetNumber: number,
			PostalCode:   propString(f.Properties, propPostalCode),
			Location: model.GeoPoint{
				Lat: model.Degrees(point.Lat()),
				Lon: model.Degrees(point.Lon()),
			},
		})
	}

	return addresses, nil
}

// LoadEnvironmentalZones parses line features into street cleaning zone
// segments, one segment per geometry part.
func LoadEnvironmentalZones(r io.Reader, seq *model.IDSequence) ([]model.ZoneSegment, error) {
	fc, err := readFeatureCollection(r)
	if err != nil {
		return nil, fmt.Errorf("environmental zones: %w", err)
	}

	var segments []model.ZoneSegment

	for _, f := range fc.Features {
		parts := lineParts(f.Geometry)
		if parts == nil {
			slog.Warn("skipping environmental feature without line geometry")

			continue
		}

		restriction := propString(f.Properties, "copy_value")
		if restriction == "" {
			restriction = propString(f.Properties, "value")
		}

		if restriction == "" {
			restriction = "Okänd"
		}

		attrs := geodesy.Attributes{
			Dataset: model.DatasetEnvironmental,
			Env: &model.EnvironmentalAttributes{
				Restriction: restriction,
				TimeWindow:  propString(f.Properties, "tid"),
				Day:         propInt(f.Properties, "day"),
			},
		}

		segments = append(segments, geodesy.Decompose(parts, attrs, seq)...)
	}

	return segments, nil
}

// LoadParkingFeeZones parses line features into paid parking zone
// segments, one segment per geometry part.
func LoadParkingFeeZones(r io.Reader, seq *model.IDSequence) ([]model.ZoneSegment, error) {
	fc, err := readFeatureCollection(r)
	if err != nil {
		return nil, fmt.Errorf("parking-fee zones: %w", err)
	}

	var segments []model.ZoneSegment

	for _, f := range fc.Features {
		parts := lineParts(f.Geometry)
		if parts == nil {
			slog.Warn("skipping parking-fee feature without line geometry")

			continue
		}

		zone := propString(f.Properties, "taxa")
		if zone == "" {
			zone = propString(f.Properties, "value")
		}

		if zone == "" {
			zone = "Okänd"
		}

		attrs := geodesy.Attributes{
			Dataset: model.DatasetParkingFee,
			Fee: &model.ParkingFeeAttributes{
				ZoneCode:    zone,
				Spaces:      propInt(f.Properties, "antal_platser"),
				ParkingType: propString(f.Properties, "typ_av_parkering"),
			},
		}

		segments = append(segments, geodesy.Decompose(parts, attrs, seq)...)
	}

	return segments, nil
}

func readFeatureCollection(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return geojson.UnmarshalFeatureCollection(data)
}

// lineParts flattens a line geometry into coordinate parts, or nil when
// the geometry carries no lines.
func lineParts(g orb.Geometry) [][]model.GeoPoint {
	switch line := g.(type) {
	case orb.LineString:
		return [][]model.GeoPoint{toPoints(line)}
	case orb.MultiLineString:
		parts := make([][]model.GeoPoint, 0, len(line))
		for _, part := range line {
			parts = append(parts, toPoints(part))
		}

		return parts
	default:
		return nil
	}
}

func toPoints(line orb.LineString) []model.GeoPoint {
	points := make([]model.GeoPoint, 0, len(line))
	for _, p := range line {
		points = append(points, model.GeoPoint{
			Lat: model.Degrees(p.Lat()),
			Lon: model.Degrees(p.Lon()),
		})
	}

	return points
}

// propString reads a property as text.  The Malmö exports are not
// consistent about quoting, so integral numbers count too.
func propString(props geojson.Properties, key string) string {
	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}

		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func propInt(props geojson.Properties, key string) int {
	switch v := props[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return 0
}
