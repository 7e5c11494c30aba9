package entitlement

import (
	"sync"
	"time"

	"github.com/formfillhq/formfill/internal/clock"
)

const denylistTTL = 24 * time.Hour

// Denylist holds revoked subscription ids in memory. Entries expire after
// 24 hours, which outlives any token minted before the revocation.
type Denylist struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]time.Time
}

func NewDenylist(clk clock.Clock) *Denylist {
	return &Denylist{
		clock:   clk,
		entries: make(map[string]time.Time),
	}
}

func (d *Denylist) Revoke(subID string) {
	if subID == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[subID] = d.clock.Now()
}

func (d *Denylist) Revoked(subID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	for id, marked := range d.entries {
		if now.Sub(marked) >= denylistTTL {
			delete(d.entries, id)
		}
	}

	_, ok := d.entries[subID]
	return ok
}
