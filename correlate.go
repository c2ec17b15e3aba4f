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

// Package zonmatch correlates address points with restriction-zone
// segments from two independent datasets, environmental street cleaning
// zones and paid parking zones, finding for each address the nearest
// segment within a distance cutoff per dataset and merging both
// outcomes into one record per address.
package zonmatch

import (
	"sync"

	"github.com/destel/rill"

	"github.com/gatudata/zonmatch/index"
	"github.com/gatudata/zonmatch/model"
)

// Correlator holds the two per-dataset indexes of one run, built once
// and immutable afterwards.
type Correlator struct {
	env index.Index
	fee index.Index

	envSegments []model.ZoneSegment
	feeSegments []model.ZoneSegment

	cutoff  float64
	workers int
}

// NewCorrelator builds one index per dataset using the configured
// strategy.  The two builds are independent and run in parallel.
// Malformed segments are skipped during the builds, never fatal; the
// per-index skip counts are available from EnvIndex and FeeIndex.
func NewCorrelator(envSegments, feeSegments []model.ZoneSegment, opts ...Option) (*Correlator, error) {
	cfg := defaultCorrelatorConfig()

	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		wg             sync.WaitGroup
		envIdx, feeIdx index.Index
		envErr, feeErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		envIdx, envErr = index.Build(cfg.strategy, envSegments, cfg.config)
	}()

	go func() {
		defer wg.Done()

		feeIdx, feeErr = index.Build(cfg.strategy, feeSegments, cfg.config)
	}()

	wg.Wait()

	if envErr != nil {
		return nil, envErr
	}

	if feeErr != nil {
		return nil, feeErr
	}

	return &Correlator{
		env:         envIdx,
		fee:         feeIdx,
		envSegments: envSegments,
		feeSegments: feeSegments,
		cutoff:      cfg.config.CutoffMeters,
		workers:     cfg.workers,
	}, nil
}

// EnvIndex returns the environmental dataset index.
func (c *Correlator) EnvIndex() index.Index { return c.env }

// FeeIndex returns the parking-fee dataset index.
func (c *Correlator) FeeIndex() index.Index { return c.fee }

// Correlate queries both indexes for every address, returning two
// parallel match slices aligned to the address order.
func (c *Correlator) Correlate(addresses []model.AddressPoint) (env, fee []model.MatchResult) {
	return Correlate(addresses, c.env, c.fee, c.cutoff, c.workers)
}

// Run correlates the addresses and merges the outcomes into one record
// per address.
func (c *Correlator) Run(addresses []model.AddressPoint) ([]model.MergedRecord, error) {
	env, fee := c.Correlate(addresses)

	return Merge(addresses, c.envSegments, c.feeSegments, env, fee)
}

// Correlate runs every address against both completed indexes.  The
// indexes are frozen, so the per-address queries share no mutable state
// and are fanned out over the worker pool; ordered mapping keeps the
// output aligned to the address order and bit-for-bit reproducible.
func Correlate(addresses []model.AddressPoint, envIdx, feeIdx index.Index, cutoff float64, workers int) (env, fee []model.MatchResult) {
	if workers < 1 {
		workers = 1
	}

	in := rill.FromSlice(addresses, nil)

	pairs := rill.OrderedMap(in, workers, func(a model.AddressPoint) (model.MatchPair, error) {
		return model.MatchPair{
			Env: envIdx.Query(a.Location, cutoff),
			Fee: feeIdx.Query(a.Location, cutoff),
		}, nil
	})

	env = make([]model.MatchResult, 0, len(addresses))
	fee = make([]model.MatchResult, 0, len(addresses))

	// The query function cannot fail, so the only Try values carry
	// results.
	_ = rill.ForEach(pairs, 1, func(pair model.MatchPair) error {
		env = append(env, pair.Env)
		fee = append(fee, pair.Fee)

		return nil
	})

	return env, fee
}
