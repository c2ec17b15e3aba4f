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

package writer_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/gatudata/zonmatch/internal/writer"
	"github.com/gatudata/zonmatch/model"
)

func records() []model.MergedRecord {
	return []model.MergedRecord{
		{
			Street:       "Stortorget",
			StreetNumber: "1",
			PostalCode:   "21134",
			Lat:          55.6050,
			Lon:          13.0030,
			Environmental: &model.EnvironmentalMatch{
				SegmentID: 0,
				Meters:    4.2,
				EnvironmentalAttributes: model.EnvironmentalAttributes{
					Restriction: "Parkering förbjuden",
					TimeWindow:  "08-12",
					Day:         2,
				},
			},
		},
		{
			Street:       "Kalendegatan",
			StreetNumber: "12",
			PostalCode:   "21135",
			Lat:          55.6060,
			Lon:          13.0040,
			ParkingFee: &model.ParkingFeeMatch{
				SegmentID: 7,
				Meters:    11.1,
				ParkingFeeAttributes: model.ParkingFeeAttributes{
					ZoneCode:    "C",
					Spaces:      12,
					ParkingType: "Avgift",
				},
			},
		},
		{
			Street:       "Kyrkogatan",
			StreetNumber: "4",
			PostalCode:   "22222",
			Lat:          55.7047,
			Lon:          13.1910,
		},
	}
}

// decodeLines reads the line-delimited records back from r.
func decodeLines(t *testing.T, r io.Reader) []model.MergedRecord {
	t.Helper()

	var out []model.MergedRecord

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var record model.MergedRecord

		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		out = append(out, record)
	}

	require.NoError(t, scanner.Err())

	return out
}

func TestWriter_Raw(t *testing.T) {
	var buf bytes.Buffer

	w, err := writer.New(&buf, writer.Raw)
	require.NoError(t, err)

	expected := records()

	require.NoError(t, w.WriteAll(expected))
	require.NoError(t, w.Close())

	assert.Equal(t, len(expected), w.Count())
	assert.Equal(t, expected, decodeLines(t, &buf))

	// The unmatched record must not carry empty match objects.
	assert.NotContains(t, buf.String(), `"environmental":null`)
}

func TestWriter_Zstd(t *testing.T) {
	var buf bytes.Buffer

	w, err := writer.New(&buf, writer.Zstd)
	require.NoError(t, err)

	expected := records()

	require.NoError(t, w.WriteAll(expected))
	require.NoError(t, w.Close())

	r, err := zstd.NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, expected, decodeLines(t, r))
}

func TestWriter_Lz4(t *testing.T) {
	var buf bytes.Buffer

	w, err := writer.New(&buf, writer.Lz4)
	require.NoError(t, err)

	expected := records()

	require.NoError(t, w.WriteAll(expected))
	require.NoError(t, w.Close())

	assert.Equal(t, expected, decodeLines(t, lz4.NewReader(&buf)))
}

func TestWriter_Xz(t *testing.T) {
	var buf bytes.Buffer

	w, err := writer.New(&buf, writer.Xz)
	require.NoError(t, err)

	expected := records()

	require.NoError(t, w.WriteAll(expected))
	require.NoError(t, w.Close())

	r, err := xz.NewReader(&buf)
	require.NoError(t, err)

	assert.Equal(t, expected, decodeLines(t, r))
}

func TestParseCompression(t *testing.T) {
	for _, c := range []writer.Compression{writer.Raw, writer.Zstd, writer.Lz4, writer.Xz} {
		t.Run(c.String(), func(t *testing.T) {
			parsed, err := writer.ParseCompression(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		})
	}

	_, err := writer.ParseCompression("brotli")
	assert.ErrorIs(t, err, writer.ErrUnknownCompression)
}
