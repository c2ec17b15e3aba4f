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
	"runtime"

	"github.com/gatudata/zonmatch/index"
)

// DefaultNWorkers provides the default number of query workers.
func DefaultNWorkers() int {
	cpus := runtime.GOMAXPROCS(-1)

	return max(cpus-1, 1)
}

// correlatorOptions provides optional configuration parameters for
// Correlator construction.
type correlatorOptions struct {
	strategy index.Strategy
	config   index.Config
	workers  int
}

// Option configures how we set up the correlator.
type Option func(*correlatorOptions)

// WithStrategy selects the indexing strategy used for both datasets.
func WithStrategy(s index.Strategy) Option {
	return func(o *correlatorOptions) {
		o.strategy = s
	}
}

// WithCutoff sets the match cutoff in meters.
func WithCutoff(meters float64) Option {
	return func(o *correlatorOptions) {
		o.config.CutoffMeters = meters
	}
}

// WithRayCount sets the number of rays cast by the raycasting strategy.
func WithRayCount(n int) Option {
	return func(o *correlatorOptions) {
		o.config.RayCount = n
	}
}

// WithChunkMultiplier sets the cell-size multiplier of the
// overlapping-chunks strategy.
func WithChunkMultiplier(m float64) Option {
	return func(o *correlatorOptions) {
		o.config.ChunkMultiplier = m
	}
}

// WithWorkers sets the number of concurrent query workers.
func WithWorkers(n int) Option {
	return func(o *correlatorOptions) {
		o.workers = n
	}
}

// defaultCorrelatorConfig provides a default configuration for correlators.
func defaultCorrelatorConfig() correlatorOptions {
	return correlatorOptions{
		strategy: index.KDTree,
		config:   index.DefaultConfig(),
		workers:  DefaultNWorkers(),
	}
}
