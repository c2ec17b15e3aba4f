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

package geodesy

import "github.com/gatudata/zonmatch/model"

// Attributes carries the dataset tag and the dataset-specific zone
// properties copied onto every segment produced by decomposition.
type Attributes struct {
	Dataset model.Dataset
	Env     *model.EnvironmentalAttributes
	Fee     *model.ParkingFeeAttributes
}

// Decompose splits a multi-part line geometry into independent zone
// segments, one per part, each spanning the part's first and last
// coordinate and carrying its own copy of the attributes under a fresh
// identifier.
//
// No two parts are merged and no part is dropped; a zone whose geometry
// has N disjoint pieces must stay matchable on every piece.  Parts with
// fewer than two coordinates carry no geometry and yield nothing.
//
// The transformation is pure: it holds no state beyond the identifier
// sequence and is safe to call repeatedly.
func Decompose(parts [][]model.GeoPoint, attrs Attributes, seq *model.IDSequence) []model.ZoneSegment {
	segments := make([]model.ZoneSegment, 0, len(parts))

	for _, part := range parts {
		if len(part) < 2 {
			continue
		}

		seg := model.ZoneSegment{
			ID:      seq.Next(),
			Start:   part[0],
			End:     part[len(part)-1],
			Dataset: attrs.Dataset,
		}

		if attrs.Env != nil {
			env := *attrs.Env
			seg.Env = &env
		}

		if attrs.Fee != nil {
			fee := *attrs.Fee
			seg.Fee = &fee
		}

		segments = append(segments, seg)
	}

	return segments
}
