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

import "fmt"

// AddressPoint is a single address with its stable identifying fields
// and geographic location.  Address is the full display string of the
// source register; Street and StreetNumber are its parsed components.
type AddressPoint struct {
	Address      string
	Street       string
	StreetNumber string
	PostalCode   string
	Location     GeoPoint
}

func (a *AddressPoint) String() string {
	if a.Address != "" {
		return a.Address
	}

	return fmt.Sprintf("%s %s, %s", a.Street, a.StreetNumber, a.PostalCode)
}

// MatchResult is the outcome of querying one index for one address:
// either no match, or the nearest segment within the cutoff and its
// distance in meters.
type MatchResult struct {
	ID      SegmentID
	Meters  float64
	Matched bool
}

// NoMatch is the zero MatchResult.
func NoMatch() MatchResult { return MatchResult{} }

// Match constructs a successful MatchResult.
func Match(id SegmentID, meters float64) MatchResult {
	return MatchResult{ID: id, Meters: meters, Matched: true}
}

// Closer reports whether m beats o under the nearest-with-lowest-ID
// ordering shared by every indexing strategy.
func (m MatchResult) Closer(o MatchResult) bool {
	if !m.Matched {
		return false
	}

	if !o.Matched {
		return true
	}

	if m.Meters != o.Meters {
		return m.Meters < o.Meters
	}

	return m.ID < o.ID
}

// MatchPair holds the per-dataset outcomes for one address, in address
// order, as produced by the correlation engine.
type MatchPair struct {
	Env MatchResult
	Fee MatchResult
}

// EnvironmentalMatch is an environmental MatchResult with the matched
// segment's attributes inlined.
type EnvironmentalMatch struct {
	SegmentID SegmentID `json:"segment_id"`
	Meters    float64   `json:"meters"`
	EnvironmentalAttributes
}

// ParkingFeeMatch is a parking-fee MatchResult with the matched
// segment's attributes inlined.
type ParkingFeeMatch struct {
	SegmentID SegmentID `json:"segment_id"`
	Meters    float64   `json:"meters"`
	ParkingFeeAttributes
}

// MergedRecord is the per-address output row.  Either match may be nil;
// an address with two nil matches is still a legitimate record.
type MergedRecord struct {
	Address      string  `json:"address,omitempty"`
	Street       string  `json:"street"`
	StreetNumber string  `json:"street_number"`
	PostalCode   string  `json:"postal_code"`
	Lat          Degrees `json:"lat"`
	Lon          Degrees `json:"lon"`

	Environmental *EnvironmentalMatch `json:"environmental,omitempty"`
	ParkingFee    *ParkingFeeMatch    `json:"parking_fee,omitempty"`
}
