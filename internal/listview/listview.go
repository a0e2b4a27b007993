// Package listview holds the loaded record set and derives the visible list.
package listview

import (
	"context"
	"strings"
	"sync"

	"github.com/erazemk/bamboorat/internal/model"
)

// Filter values meaning "no restriction".
const (
	OwnerAll  = "all"
	StatusAny = "any"
)

// Filter selects records by name substring, owner and status. Empty fields
// (or OwnerAll / StatusAny) do not restrict.
type Filter struct {
	Search string
	Owner  string
	Status string
}

// Match reports whether r passes all three predicates.
func (f Filter) Match(r model.Record) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Owner != "" && f.Owner != OwnerAll && r.Owner != f.Owner {
		return false
	}
	if f.Status != "" && f.Status != StatusAny && r.Status != f.Status {
		return false
	}
	return true
}

// Active reports whether the filter restricts anything.
func (f Filter) Active() bool {
	return f.Search != "" ||
		(f.Owner != "" && f.Owner != OwnerAll) ||
		(f.Status != "" && f.Status != StatusAny)
}

// Apply returns the records matching f, in their original order.
func Apply(records []model.Record, f Filter) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Lister loads the full record set.
type Lister interface {
	ListAll(ctx context.Context) ([]model.Record, error)
}

// Controller holds the last successfully loaded record set.
type Controller struct {
	mu      sync.Mutex
	records []model.Record
	loaded  bool
}

// Reload replaces the record set with a fresh one from l. On failure the
// previous set is kept and the error returned.
func (c *Controller) Reload(ctx context.Context, l Lister) error {
	records, err := l.ListAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.records = records
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Loaded reports whether a reload has ever succeeded.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Records returns a copy of the full record set.
func (c *Controller) Records() []model.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Record(nil), c.records...)
}

// Visible returns the records matching f.
func (c *Controller) Visible(f Filter) []model.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Apply(c.records, f)
}
