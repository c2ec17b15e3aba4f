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

// Package writer streams merged records as line-delimited JSON, with an
// optional compression packer wrapped around the output.
package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gatudata/zonmatch/internal/writer/packers"
	"github.com/gatudata/zonmatch/model"
)

// Compression selects the output packer.
type Compression uint8

const (
	Raw Compression = iota
	Zstd
	Lz4
	Xz
)

// ErrUnknownCompression is returned when a compression name does not parse.
var ErrUnknownCompression = errors.New("unknown compression type")

func (c Compression) String() string {
	switch c {
	case Raw:
		return "none"
	case Zstd:
		return "zstd"
	case Lz4:
		return "lz4"
	case Xz:
		return "xz"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression converts a compression name to a Compression.
func ParseCompression(name string) (Compression, error) {
	for _, c := range []Compression{Raw, Zstd, Lz4, Xz} {
		if c.String() == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// Writer emits one JSON object per line.  Be sure to call Close so the
// packer flushes its trailing frames.
type Writer struct {
	pack io.WriteCloser
	enc  *json.Encoder

	count int
}

// New wraps w in the selected compression packer.
func New(w io.Writer, c Compression) (*Writer, error) {
	var (
		pack io.WriteCloser
		err  error
	)

	switch c {
	case Raw:
		pack, err = packers.NewRaw(w)
	case Zstd:
		pack, err = packers.NewZstd(w)
	case Lz4:
		pack, err = packers.NewLz4(w)
	case Xz:
		pack, err = packers.NewXz(w)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
	}

	if err != nil {
		return nil, fmt.Errorf("could not create packer: %w", err)
	}

	return &Writer{pack: pack, enc: json.NewEncoder(pack)}, nil
}

// Write emits a single record.
func (w *Writer) Write(record *model.MergedRecord) error {
	if err := w.enc.Encode(record); err != nil {
		return fmt.Errorf("could not encode record: %w", err)
	}

	w.count++

	return nil
}

// WriteAll emits the records in order.
func (w *Writer) WriteAll(records []model.MergedRecord) error {
	for i := range records {
		if err := w.Write(&records[i]); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int { return w.count }

// Close flushes and closes the packer.  It does not close the
// underlying writer.
func (w *Writer) Close() error {
	return w.pack.Close()
}
