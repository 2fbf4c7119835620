// Package snapshot holds the one live parsed dataset. The cache is an
// explicit, constructed object handed to its consumers rather than a
// process-wide singleton, so parallel test instances never collide.
package snapshot

import (
	"sync/atomic"

	"github.com/brewpulse/backend/internal/models"
)

// DefaultMinRealRecords is the "sufficient real data" cutoff: strictly more
// records than this and downstream views use extracted metrics instead of a
// synthetic fallback.
const DefaultMinRealRecords = 50

// Cache is single-writer, multi-reader. Replacement is an atomic pointer
// swap: a reader sees either the whole old dataset or the whole new one,
// never a mix. Writer serialization is the loader's job.
type Cache struct {
	minRealRecords int
	current        atomic.Pointer[models.Dataset]
}

func NewCache(minRealRecords int) *Cache {
	if minRealRecords <= 0 {
		minRealRecords = DefaultMinRealRecords
	}
	return &Cache{minRealRecords: minRealRecords}
}

// Replace installs a new dataset, fully discarding the previous one.
func (c *Cache) Replace(ds *models.Dataset) {
	c.current.Store(ds)
}

// Current returns the live dataset, or nil before the first successful load.
// Callers must treat the returned dataset as immutable.
func (c *Cache) Current() *models.Dataset {
	return c.current.Load()
}

func (c *Cache) Records() []models.InteractionRecord {
	if ds := c.current.Load(); ds != nil {
		return ds.Records
	}
	return nil
}

func (c *Cache) RecordCount() int {
	return len(c.Records())
}

// HasSufficientRealData gates real versus synthetic metrics downstream. The
// synthetic generator itself lives outside this engine; this predicate is
// the only coupling point.
func (c *Cache) HasSufficientRealData() bool {
	return c.RecordCount() > c.minRealRecords
}
