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
	"sync/atomic"
)

// SegmentID identifies a single zone segment within a run.  Identifiers
// are assigned sequentially during decomposition and are the tie breaker
// for equidistant matches, so they must be stable for a given input.
type SegmentID uint32

// Dataset tags a zone segment with the collection it was loaded from.
type Dataset uint8

const (
	// DatasetEnvironmental marks street cleaning restriction zones.
	DatasetEnvironmental Dataset = iota

	// DatasetParkingFee marks paid parking zones.
	DatasetParkingFee
)

func (d Dataset) String() string {
	switch d {
	case DatasetEnvironmental:
		return "environmental"
	case DatasetParkingFee:
		return "parking-fee"
	default:
		return fmt.Sprintf("dataset(%d)", uint8(d))
	}
}

// EnvironmentalAttributes are the properties of a street cleaning zone.
type EnvironmentalAttributes struct {
	Restriction string `json:"restriction"`
	TimeWindow  string `json:"time_window"`
	Day         int    `json:"day"`
}

// ParkingFeeAttributes are the properties of a paid parking zone.
type ParkingFeeAttributes struct {
	ZoneCode    string `json:"zone_code"`
	Spaces      int    `json:"spaces"`
	ParkingType string `json:"parking_type"`
}

// ZoneSegment is one straight-line piece of a restriction zone's
// geometry, carrying the zone's attributes.  Exactly one of Env and Fee
// is set, matching the Dataset tag.  Segments are immutable once handed
// to an index.
type ZoneSegment struct {
	ID      SegmentID
	Start   GeoPoint
	End     GeoPoint
	Dataset Dataset

	Env *EnvironmentalAttributes
	Fee *ParkingFeeAttributes
}

// Valid reports whether the segment can be indexed: both endpoints in
// range and distinct.
func (s *ZoneSegment) Valid() bool {
	return s.Start.Valid() && s.End.Valid() && s.Start != s.End
}

func (s *ZoneSegment) String() string {
	return fmt.Sprintf("segment %d %s %s-%s", s.ID, s.Dataset, s.Start, s.End)
}

// IDSequence hands out fresh segment identifiers.  Decomposition draws
// from one sequence per run so identifiers are unique across datasets.
type IDSequence struct {
	next uint32
}

// Next returns the next identifier in the sequence.
func (s *IDSequence) Next() SegmentID {
	return SegmentID(atomic.AddUint32(&s.next, 1) - 1)
}
