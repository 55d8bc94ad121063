// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package utils

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/TFMV/AddressKey/internal/keys"
)

// CsvSource reads addresses from CSV with an "address" column and an optional
// "id" column. Without an id column the 1-based data row number is used.
type CsvSource struct {
	reader     *csv.Reader
	idCol      int
	addressCol int
}

// NewCsvSource reads the header row and locates the id and address columns.
func NewCsvSource(r io.Reader) (*CsvSource, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "utils: error reading CSV header")
	}

	s := &CsvSource{reader: reader, idCol: -1, addressCol: -1}
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			s.idCol = i
		case "address":
			s.addressCol = i
		}
	}
	if s.addressCol < 0 {
		return nil, eris.Errorf("utils: CSV header %v has no address column", headers)
	}
	return s, nil
}

// Addresses implements keys.Source.
func (s *CsvSource) Addresses(ctx context.Context, out chan<- keys.Address) error {
	for row := 1; ; row++ {
		record, err := s.reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrapf(err, "utils: error reading CSV row %d", row)
		}
		if s.addressCol >= len(record) {
			return eris.Errorf("utils: CSV row %d has no address field", row)
		}

		addr := keys.Address{ID: strconv.Itoa(row), Raw: record[s.addressCol]}
		if s.idCol >= 0 && s.idCol < len(record) {
			addr.ID = record[s.idCol]
		}

		select {
		case out <- addr:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// CsvSink writes generated keys as CSV rows of id, address, key.
type CsvSink struct {
	writer *csv.Writer
}

// NewCsvSink writes the header row and returns the sink.
func NewCsvSink(w io.Writer) (*CsvSink, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "address", "key"}); err != nil {
		return nil, eris.Wrap(err, "utils: error writing CSV header")
	}
	return &CsvSink{writer: writer}, nil
}

// WriteKeys implements keys.Sink. Each batch is flushed before returning.
func (s *CsvSink) WriteKeys(_ context.Context, records []keys.Record) error {
	for _, rec := range records {
		if err := s.writer.Write([]string{rec.ID, rec.Raw, rec.Key}); err != nil {
			return eris.Wrap(err, "utils: error writing CSV row")
		}
	}
	return s.Flush()
}

// Flush writes any buffered rows.
func (s *CsvSink) Flush() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return eris.Wrap(err, "utils: error flushing CSV")
	}
	return nil
}
