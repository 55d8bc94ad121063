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

package keys

import (
	"context"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TFMV/AddressKey/internal/standardizer"
)

// Address is a raw address read from a source.
type Address struct {
	ID  string
	Raw string
}

// Record is one generated key. A ranged address produces one record per number.
type Record struct {
	ID  string
	Raw string
	Key string
}

// Stats summarizes a run.
type Stats struct {
	Addresses int64 `json:"addresses"`
	Keys      int64 `json:"keys"`
	Failed    int64 `json:"failed"`
}

// Source streams addresses into out. It must stop sending when ctx is done
// and must not close out.
type Source interface {
	Addresses(ctx context.Context, out chan<- Address) error
}

// Sink persists batches of records. WriteKeys is never called concurrently.
type Sink interface {
	WriteKeys(ctx context.Context, records []Record) error
}

// Options tunes a Processor.
type Options struct {
	Workers   int
	BatchSize int
}

// Processor generates keys for every address of a source with a pool of workers
// and writes them to a sink in batches.
type Processor struct {
	std    *standardizer.Standardizer
	opts   Options
	logger *zap.Logger
}

// NewProcessor returns a Processor. Non-positive options fall back to 10 workers
// and batches of 1000.
func NewProcessor(std *standardizer.Standardizer, opts Options, logger *zap.Logger) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 10
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{std: std, opts: opts, logger: logger}
}

// Run drains src and writes every generated key to sink. Addresses whose range
// cannot be expanded are logged and counted as failed; source and sink errors
// stop the run.
func (p *Processor) Run(ctx context.Context, src Source, sink Sink) (Stats, error) {
	var addresses, keys, failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	addressCh := make(chan Address, p.opts.BatchSize)
	resultCh := make(chan Record, p.opts.BatchSize)

	g.Go(func() error {
		defer close(addressCh)
		if err := src.Addresses(ctx, addressCh); err != nil {
			return eris.Wrap(err, "keys: read addresses")
		}
		return nil
	})

	workers, wctx := errgroup.WithContext(ctx)
	for i := 0; i < p.opts.Workers; i++ {
		workers.Go(func() error {
			for addr := range addressCh {
				addresses.Add(1)
				set, err := p.std.ExpandRange(addr.Raw)
				if err != nil {
					failed.Add(1)
					p.logger.Warn("unable to expand address",
						zap.String("id", addr.ID),
						zap.String("address", addr.Raw),
						zap.Error(err))
					continue
				}
				for _, key := range set.Sorted() {
					select {
					case resultCh <- Record{ID: addr.ID, Raw: addr.Raw, Key: key}:
					case <-wctx.Done():
						return wctx.Err()
					}
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(resultCh)
		return workers.Wait()
	})

	g.Go(func() error {
		batch := make([]Record, 0, p.opts.BatchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			p.logger.Debug("writing key batch", zap.Int("size", len(batch)))
			if err := sink.WriteKeys(ctx, batch); err != nil {
				return eris.Wrap(err, "keys: write batch")
			}
			keys.Add(int64(len(batch)))
			batch = batch[:0]
			return nil
		}

		for rec := range resultCh {
			batch = append(batch, rec)
			if len(batch) >= p.opts.BatchSize {
				if err := flush(); err != nil {
					drain(resultCh)
					return err
				}
			}
		}
		return flush()
	})

	err := g.Wait()
	stats := Stats{Addresses: addresses.Load(), Keys: keys.Load(), Failed: failed.Load()}
	if err != nil {
		return stats, err
	}

	p.logger.Info("key generation complete",
		zap.Int64("addresses", stats.Addresses),
		zap.Int64("keys", stats.Keys),
		zap.Int64("failed", stats.Failed))
	return stats, nil
}

// drain discards the remaining records so blocked workers can exit.
func drain(ch <-chan Record) {
	for range ch {
	}
}
