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

// Package index provides six interchangeable spatial indexes over zone
// segments, all answering nearest-segment-within-cutoff queries.
//
// BruteForce, KDTree and RTree are exact: for any input they return the
// same segment and distance.  Grid, OverlappingChunks and Raycasting
// are approximations: they never return a match beyond the cutoff, but
// they may return no match where an exact strategy finds one.
package index

import (
	"errors"
	"fmt"

	"github.com/gatudata/zonmatch/model"
)

// Strategy selects one of the interchangeable indexing strategies.
type Strategy uint8

const (
	BruteForce Strategy = iota
	Raycasting
	OverlappingChunks
	Grid
	KDTree
	RTree
)

// ErrUnknownStrategy is returned when a strategy name does not parse.
var ErrUnknownStrategy = errors.New("unknown indexing strategy")

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{BruteForce, Raycasting, OverlappingChunks, Grid, KDTree, RTree}
}

func (s Strategy) String() string {
	switch s {
	case BruteForce:
		return "brute-force"
	case Raycasting:
		return "raycasting"
	case OverlappingChunks:
		return "overlapping-chunks"
	case Grid:
		return "grid"
	case KDTree:
		return "kd-tree"
	case RTree:
		return "r-tree"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// Exact reports whether the strategy is guaranteed to find the true
// nearest segment within the cutoff.
func (s Strategy) Exact() bool {
	switch s {
	case BruteForce, KDTree, RTree:
		return true
	default:
		return false
	}
}

// ParseStrategy converts a strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if s.String() == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Run configuration defaults.
const (
	DefaultCutoffMeters    = 50.0
	DefaultRayCount        = 36
	DefaultChunkMultiplier = 2.0
)

// Config carries the build-time tunables of the strategies.
type Config struct {
	// CutoffMeters is the maximum distance within which an address may
	// be matched.  Cell-based strategies also size their cells from it.
	CutoffMeters float64

	// RayCount is the number of evenly spaced rays cast by the
	// raycasting strategy.
	RayCount int

	// ChunkMultiplier scales the cell size of the overlapping-chunks
	// strategy relative to the cutoff.
	ChunkMultiplier float64
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		CutoffMeters:    DefaultCutoffMeters,
		RayCount:        DefaultRayCount,
		ChunkMultiplier: DefaultChunkMultiplier,
	}
}

// Index answers nearest-segment queries against a frozen segment set.
// Implementations are immutable after build and safe for concurrent
// queries.
type Index interface {
	// Query returns the nearest segment within cutoff meters of the
	// point, or the zero MatchResult.  Equidistant candidates resolve
	// to the lowest segment identifier.
	Query(p model.GeoPoint, cutoff float64) model.MatchResult

	// Len returns the number of indexed segments.
	Len() int

	// Skipped returns the number of segments rejected at build time.
	Skipped() int

	// Strategy identifies the indexing strategy.
	Strategy() Strategy
}

// Build constructs an index over the segments using the selected
// strategy.  Build never fails for well-formed segments; segments with
// coincident endpoints or out-of-range coordinates are skipped and
// counted, not fatal.
func Build(s Strategy, segments []model.ZoneSegment, cfg Config) (Index, error) {
	switch s {
	case BruteForce:
		return NewBruteForce(segments), nil
	case Raycasting:
		return NewRaycasting(segments, cfg), nil
	case OverlappingChunks:
		return NewOverlappingChunks(segments, cfg), nil
	case Grid:
		return NewGrid(segments, cfg), nil
	case KDTree:
		return NewKDTree(segments), nil
	case RTree:
		return NewRTree(segments), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
}

// sift snapshots the indexable segments, preserving input order, and
// counts the rejects.  Indexes own the returned slice.
func sift(segments []model.ZoneSegment) (kept []model.ZoneSegment, skipped int) {
	kept = make([]model.ZoneSegment, 0, len(segments))

	for i := range segments {
		if !segments[i].Valid() {
			skipped++

			continue
		}

		kept = append(kept, segments[i])
	}

	return kept, skipped
}
