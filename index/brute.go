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

package index

import (
	"github.com/gatudata/zonmatch/geodesy"
	"github.com/gatudata/zonmatch/model"
)

// bruteForce scans every segment on every query.  It is the reference
// implementation the other exact strategies are measured against.
type bruteForce struct {
	segments []model.ZoneSegment
	skipped  int
}

// NewBruteForce builds the scan-everything index.
func NewBruteForce(segments []model.ZoneSegment) Index {
	kept, skipped := sift(segments)

	return &bruteForce{segments: kept, skipped: skipped}
}

func (b *bruteForce) Query(p model.GeoPoint, cutoff float64) model.MatchResult {
	return scanSegments(p, cutoff, b.segments, model.NoMatch())
}

func (b *bruteForce) Len() int           { return len(b.segments) }
func (b *bruteForce) Skipped() int       { return b.skipped }
func (b *bruteForce) Strategy() Strategy { return BruteForce }

// scanSegments folds the segments into best using the shared
// nearest-with-lowest-ID ordering.  The cutoff is inclusive.
func scanSegments(p model.GeoPoint, cutoff float64, segments []model.ZoneSegment, best model.MatchResult) model.MatchResult {
	for i := range segments {
		seg := &segments[i]

		d := geodesy.PointToSegment(p, seg.Start, seg.End)
		if d > cutoff {
			continue
		}

		if candidate := model.Match(seg.ID, d); candidate.Closer(best) {
			best = candidate
		}
	}

	return best
}
