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

package zonmatch

import (
	"errors"
	"fmt"

	"github.com/gatudata/zonmatch/model"
)

// ErrLengthMismatch is returned when the match slices do not line up
// with the address slice.
var ErrLengthMismatch = errors.New("match results do not align with addresses")

// Merge combines the two per-dataset match slices into one record per
// address, in address order.  Attributes of matched segments are copied
// onto the record; an address with no match in either dataset still
// yields a record, since a valid address with no active restriction
// nearby is a legitimate outcome.
func Merge(addresses []model.AddressPoint, envSegments, feeSegments []model.ZoneSegment, env, fee []model.MatchResult) ([]model.MergedRecord, error) {
	if len(env) != len(addresses) || len(fee) != len(addresses) {
		return nil, fmt.Errorf("%w: %d addresses, %d environmental, %d parking-fee",
			ErrLengthMismatch, len(addresses), len(env), len(fee))
	}

	envByID := segmentsByID(envSegments)
	feeByID := segmentsByID(feeSegments)

	records := make([]model.MergedRecord, 0, len(addresses))

	for i := range addresses {
		addr := &addresses[i]

		record := model.MergedRecord{
			Address:      addr.Address,
			Street:       addr.Street,
			StreetNumber: addr.StreetNumber,
			PostalCode:   addr.PostalCode,
			Lat:          addr.Location.Lat,
			Lon:          addr.Location.Lon,
		}

		if env[i].Matched {
			record.Environmental = &model.EnvironmentalMatch{
				SegmentID: env[i].ID,
				Meters:    env[i].Meters,
			}

			if seg := envByID[env[i].ID]; seg != nil && seg.Env != nil {
				record.Environmental.EnvironmentalAttributes = *seg.Env
			}
		}

		if fee[i].Matched {
			record.ParkingFee = &model.ParkingFeeMatch{
				SegmentID: fee[i].ID,
				Meters:    fee[i].Meters,
			}

			if seg := feeByID[fee[i].ID]; seg != nil && seg.Fee != nil {
				record.ParkingFee.ParkingFeeAttributes = *seg.Fee
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func segmentsByID(segments []model.ZoneSegment) map[model.SegmentID]*model.ZoneSegment {
	byID := make(map[model.SegmentID]*model.ZoneSegment, len(segments))

	for i := range segments {
		byID[segments[i].ID] = &segments[i]
	}

	return byID
}
