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

// Package match implements the zonmatch match command, the end-to-end
// load, correlate, merge and write pipeline.
package match

import (
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gatudata/zonmatch"
	"github.com/gatudata/zonmatch/cmd/zonmatch/cli"
	"github.com/gatudata/zonmatch/index"
	"github.com/gatudata/zonmatch/internal/loader"
	"github.com/gatudata/zonmatch/internal/writer"
	"github.com/gatudata/zonmatch/model"
)

var (
	addressFile *os.File
	envFile     *os.File
	feeFile     *os.File
)

func init() {
	cli.RootCmd.AddCommand(matchCmd)

	flags := matchCmd.Flags()
	flags.VarP(cli.NewReaderValue(nil, &addressFile, "file"), "addresses", "a", "GeoJSON address points")
	flags.VarP(cli.NewReaderValue(nil, &envFile, "file"), "environmental", "e", "GeoJSON environmental cleaning zones")
	flags.VarP(cli.NewReaderValue(nil, &feeFile, "file"), "parking", "p", "GeoJSON paid-parking zones")
	flags.StringP("strategy", "s", index.KDTree.String(), "indexing strategy")
	flags.Float64P("cutoff", "c", index.DefaultCutoffMeters, "match cutoff in meters")
	flags.Int("rays", index.DefaultRayCount, "ray count for the raycasting strategy")
	flags.Float64("chunk-multiplier", index.DefaultChunkMultiplier, "cell-size multiplier for overlapping chunks")
	flags.IntP("workers", "w", zonmatch.DefaultNWorkers(), "number of query workers")
	flags.StringP("output", "o", "", "output file (defaults to stdout)")
	flags.StringP("compress", "z", writer.Raw.String(), "output compression (none, zstd, lz4, xz)")

	for _, name := range []string{"addresses", "environmental", "parking"} {
		if err := matchCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match addresses against restriction-zone datasets",
	Long:  "Match addresses against restriction-zone datasets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		flags := cmd.Flags()

		strategyName, err := flags.GetString("strategy")
		if err != nil {
			log.Fatal(err)
		}

		strategy, err := index.ParseStrategy(strategyName)
		if err != nil {
			log.Fatal(err)
		}

		cutoff, err := flags.GetFloat64("cutoff")
		if err != nil {
			log.Fatal(err)
		}

		rays, err := flags.GetInt("rays")
		if err != nil {
			log.Fatal(err)
		}

		multiplier, err := flags.GetFloat64("chunk-multiplier")
		if err != nil {
			log.Fatal(err)
		}

		workers, err := flags.GetInt("workers")
		if err != nil {
			log.Fatal(err)
		}

		addresses, envSegments, feeSegments := load()

		correlator, err := zonmatch.NewCorrelator(envSegments, feeSegments,
			zonmatch.WithStrategy(strategy),
			zonmatch.WithCutoff(cutoff),
			zonmatch.WithRayCount(rays),
			zonmatch.WithChunkMultiplier(multiplier),
			zonmatch.WithWorkers(workers),
		)
		if err != nil {
			log.Fatal(err)
		}

		records, err := correlator.Run(addresses)
		if err != nil {
			log.Fatal(err)
		}

		write(cmd, records)

		summarize(correlator, addresses, records)
	},
}

// load parses the three input files, decomposing zone geometries into
// independent segments with one shared identifier sequence.
func load() ([]model.AddressPoint, []model.ZoneSegment, []model.ZoneSegment) {
	var seq model.IDSequence

	addresses, err := withProgress(addressFile, loader.LoadAddresses)
	if err != nil {
		log.Fatal(err)
	}

	envSegments, err := withProgress(envFile, func(r io.Reader) ([]model.ZoneSegment, error) {
		return loader.LoadEnvironmentalZones(r, &seq)
	})
	if err != nil {
		log.Fatal(err)
	}

	feeSegments, err := withProgress(feeFile, func(r io.Reader) ([]model.ZoneSegment, error) {
		return loader.LoadParkingFeeZones(r, &seq)
	})
	if err != nil {
		log.Fatal(err)
	}

	return addresses, envSegments, feeSegments
}

func withProgress[T any](f *os.File, parse func(io.Reader) (T, error)) (T, error) {
	in, err := cli.WrapInputFile(f)
	if err != nil {
		var zero T

		return zero, err
	}
	defer in.Close()

	return parse(in)
}

func write(cmd *cobra.Command, records []model.MergedRecord) {
	flags := cmd.Flags()

	compressName, err := flags.GetString("compress")
	if err != nil {
		log.Fatal(err)
	}

	compression, err := writer.ParseCompression(compressName)
	if err != nil {
		log.Fatal(err)
	}

	output, err := flags.GetString("output")
	if err != nil {
		log.Fatal(err)
	}

	out := os.Stdout

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		out = f
	}

	w, err := writer.New(out, compression)
	if err != nil {
		log.Fatal(err)
	}

	if err := w.WriteAll(records); err != nil {
		log.Fatal(err)
	}

	if err := w.Close(); err != nil {
		log.Fatal(err)
	}
}

func summarize(c *zonmatch.Correlator, addresses []model.AddressPoint, records []model.MergedRecord) {
	var envMatched, feeMatched int

	for i := range records {
		if records[i].Environmental != nil {
			envMatched++
		}

		if records[i].ParkingFee != nil {
			feeMatched++
		}
	}

	fmt.Fprintf(os.Stderr, "Addresses: %s\n", humanize.Comma(int64(len(addresses))))
	fmt.Fprintf(os.Stderr, "Environmental segments: %s (%s skipped)\n",
		humanize.Comma(int64(c.EnvIndex().Len())), humanize.Comma(int64(c.EnvIndex().Skipped())))
	fmt.Fprintf(os.Stderr, "Parking-fee segments: %s (%s skipped)\n",
		humanize.Comma(int64(c.FeeIndex().Len())), humanize.Comma(int64(c.FeeIndex().Skipped())))
	fmt.Fprintf(os.Stderr, "Environmental matches: %s\n", humanize.Comma(int64(envMatched)))
	fmt.Fprintf(os.Stderr, "Parking-fee matches: %s\n", humanize.Comma(int64(feeMatched)))
}
