// Package tracker holds the client's view of fleet availability. It never
// changes state optimistically: a transition is applied only after the
// remote gateway has confirmed the transaction that caused it.
package tracker

import (
	"fmt"
	"sync"

	"rentauto-client/internal/domain"
)

// Tracker is safe for concurrent readers across screens; writes come from
// the coordinator after confirmed transactions.
type Tracker struct {
	mu       sync.RWMutex
	vehicles map[int]domain.Vehicle
}

func New() *Tracker {
	return &Tracker{vehicles: make(map[int]domain.Vehicle)}
}

// Load replaces the snapshot with the authoritative vehicle list.
func (t *Tracker) Load(vehicles []domain.Vehicle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vehicles = make(map[int]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		t.vehicles[v.ID] = v
	}
}

// Track inserts or refreshes a single vehicle from an authoritative fetch.
func (t *Tracker) Track(v domain.Vehicle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vehicles[v.ID] = v
}

// Get returns the tracked vehicle, if present.
func (t *Tracker) Get(id int) (domain.Vehicle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vehicles[id]
	return v, ok
}

// List returns a copy of the current snapshot.
func (t *Tracker) List() []domain.Vehicle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Vehicle, 0, len(t.vehicles))
	for _, v := range t.vehicles {
		out = append(out, v)
	}
	return out
}

// legalTransition reports whether the rent/return triggers allow moving a
// vehicle from one state to another.
func legalTransition(from, to domain.AvailabilityStatus) bool {
	switch from {
	case domain.StatusAvailable:
		return to == domain.StatusRented
	case domain.StatusRented:
		return to == domain.StatusAvailable || to == domain.StatusUnderMaintenance
	}
	return false
}

// Apply moves a vehicle through a confirmed rent/return transition. The
// caller must only invoke it after the gateway reported success.
func (t *Tracker) Apply(id int, to domain.AvailabilityStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.vehicles[id]
	if !ok {
		return fmt.Errorf("vehicle %d not tracked", id)
	}
	if !legalTransition(v.AvailabilityStatus, to) {
		return fmt.Errorf("illegal transition for vehicle %d: %s -> %s", id, v.AvailabilityStatus, to)
	}
	v.AvailabilityStatus = to
	t.vehicles[id] = v
	return nil
}

// Set applies an administrative vehicle update, bypassing the rent/return
// triggers: the record is stored as given, any status to any status. Used
// after a confirmed modify transaction.
func (t *Tracker) Set(v domain.Vehicle) error {
	if !v.AvailabilityStatus.Valid() {
		return fmt.Errorf("unknown availability status %q", v.AvailabilityStatus)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vehicles[v.ID] = v
	return nil
}

// Remove drops a vehicle from the snapshot after a confirmed delete.
func (t *Tracker) Remove(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.vehicles, id)
}
