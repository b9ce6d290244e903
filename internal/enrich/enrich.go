// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/cite-check/pkg/types"
)

// gate bounds concurrent CrossRef calls process-wide. Three permits hold
// even when many single-citation validations run at once.
var gate = semaphore.NewWeighted(3)

// Enricher coordinates cache, client, and merge policy for a batch of
// citations.
type Enricher struct {
	Client *Client
	// Cache is optional; nil disables caching.
	Cache *Cache
	// Timeout bounds each lookup; zero means no per-lookup deadline
	// beyond the caller's context.
	Timeout time.Duration
	// Delay is the pause between consecutive citations in a batch.
	Delay  time.Duration
	Logger *zap.Logger
}

// Enrich looks up external metadata for one citation and, when the
// record passes the trust gates, merges it in. Any failure degrades to
// the unmodified citation: enrichment never fails a validation.
func (e *Enricher) Enrich(ctx context.Context, c types.Citation) (types.Citation, []types.Violation) {
	if c.Title == "" {
		return c, nil
	}

	rec, err := e.lookup(ctx, c.Title)
	if err != nil {
		e.logger().Warn("enrichment lookup failed", zap.String("title", c.Title), zap.Error(err))
		return c, nil
	}
	if !Trusted(c, rec) {
		return c, nil
	}
	return Merge(c, rec)
}

// EnrichBatch enriches citations one at a time with a politeness pause
// between them. Results preserve input order and a failure on one
// citation never affects its siblings.
func (e *Enricher) EnrichBatch(ctx context.Context, citations []types.Citation) ([]types.Citation, [][]types.Violation) {
	out := make([]types.Citation, len(citations))
	extra := make([][]types.Violation, len(citations))
	for i, c := range citations {
		if i > 0 && e.Delay > 0 {
			select {
			case <-ctx.Done():
				out[i] = c
				continue
			case <-time.After(e.Delay):
			}
		}
		out[i], extra[i] = e.Enrich(ctx, c)
	}
	return out, extra
}

// lookup checks the cache, then queries CrossRef under the concurrency
// gate. Both hits and misses are cached.
func (e *Enricher) lookup(ctx context.Context, title string) (*Record, error) {
	if e.Cache != nil {
		rec, hit, err := e.Cache.Get(title)
		if err != nil {
			e.logger().Warn("cache read failed", zap.Error(err))
		} else if hit {
			return rec, nil
		}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	if err := gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	rec, err := e.Client.BestMatch(ctx, title)
	gate.Release(1)
	if err != nil {
		return nil, err
	}

	if e.Cache != nil {
		if err := e.Cache.Put(title, rec); err != nil {
			e.logger().Warn("cache write failed", zap.Error(err))
		}
	}
	return rec, nil
}

func (e *Enricher) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}
