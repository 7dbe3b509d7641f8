package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
)

// ErrSuperseded is returned by Dashboard.Refresh when a newer refresh was
// started before this one finished; its result was dropped.
var ErrSuperseded = errors.New("refresh superseded by a newer one")

// Dashboard holds the latest applied snapshot. Every refresh is tagged with a
// sequence number and its result is applied only if no newer refresh was
// started meanwhile.
type Dashboard struct {
	refresher Refresher
	logger    logging.Logger

	latest atomic.Uint64

	mu   sync.RWMutex
	snap *Snapshot
}

func NewDashboard(r Refresher, logger logging.Logger) *Dashboard {
	return &Dashboard{refresher: r, logger: logger}
}

// Begin starts a new refresh generation and returns its sequence number.
func (d *Dashboard) Begin() uint64 {
	return d.latest.Add(1)
}

// Apply stores snap if seq is still the latest generation. It reports whether
// the snapshot was applied.
func (d *Dashboard) Apply(seq uint64, snap *Snapshot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.latest.Load() {
		return false
	}
	d.snap = snap
	return true
}

// Refresh fetches a new snapshot for sess and applies it.
//
// When the fetch fails outright the previous snapshot stays in place. A
// partial snapshot is applied and returned along with its error. An
// unauthorized outcome resets the dashboard.
func (d *Dashboard) Refresh(ctx context.Context, sess models.Session) (*Snapshot, error) {
	seq := d.Begin()

	snap, err := d.refresher.Refresh(ctx, sess)
	if errors.Is(err, client.ErrUnauthorized) {
		d.Reset()
		return nil, err
	}
	if snap == nil {
		return nil, err
	}

	if !d.Apply(seq, snap) {
		d.logger.Debug(ctx, "dropping stale refresh result", "seq", seq)
		return nil, ErrSuperseded
	}
	return snap, err
}

// Snapshot returns the last applied snapshot, or nil.
func (d *Dashboard) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap
}

// Reset drops the snapshot and invalidates refreshes still in flight.
func (d *Dashboard) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest.Add(1)
	d.snap = nil
}
