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
	"os"
	"strconv"
	"testing"

	"github.com/gatudata/zonmatch/index"
	"github.com/gatudata/zonmatch/model"
)

// benchCity lays out segments and addresses over a dense street grid.
func benchCity(segmentCount, addressCount int) (env, fee []model.ZoneSegment, addresses []model.AddressPoint) {
	var seq model.IDSequence

	for i := 0; i < segmentCount; i++ {
		lat := model.Degrees(55.55 + float64(i%100)*0.0009)
		lon := model.Degrees(12.95 + float64(i/100)*0.0014)

		seg := model.ZoneSegment{
			ID:    seq.Next(),
			Start: model.GeoPoint{Lat: lat, Lon: lon},
			End:   model.GeoPoint{Lat: lat + 0.0004, Lon: lon + 0.0004},
		}

		if i%2 == 0 {
			seg.Dataset = model.DatasetEnvironmental
			seg.Env = &model.EnvironmentalAttributes{Restriction: "Städning"}
			env = append(env, seg)
		} else {
			seg.Dataset = model.DatasetParkingFee
			seg.Fee = &model.ParkingFeeAttributes{ZoneCode: "B"}
			fee = append(fee, seg)
		}
	}

	for i := 0; i < addressCount; i++ {
		addresses = append(addresses, model.AddressPoint{
			StreetNumber: strconv.Itoa(i),
			Location: model.GeoPoint{
				Lat: model.Degrees(55.55 + float64(i%97)*0.00093),
				Lon: model.Degrees(12.95 + float64(i/97)*0.00141),
			},
		})
	}

	return env, fee, addresses
}

func BenchmarkCorrelate(b *testing.B) {
	env, fee, addresses := benchCity(4000, 2000)

	workers, _ := strconv.Atoi(os.Getenv("ZONMATCH_WORKERS"))
	if workers < 1 {
		workers = DefaultNWorkers()
	}

	for _, s := range index.Strategies() {
		b.Run(s.String(), func(b *testing.B) {
			correlator, err := NewCorrelator(env, fee, WithStrategy(s), WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()

			for n := 0; n < b.N; n++ {
				if _, err := correlator.Run(addresses); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBuild(b *testing.B) {
	env, _, _ := benchCity(8000, 0)

	for _, s := range index.Strategies() {
		b.Run(s.String(), func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				if _, err := index.Build(s, env, index.DefaultConfig()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
