// Package ticket issues ordering tokens for asynchronous loads.
//
// Each load is started with [Dispenser.Issue] and completes by asking
// [Dispenser.Current] whether its ticket is still the newest one for its
// slot. A load that was overtaken by a later one is discarded instead of
// overwriting newer state:
//
//	t := d.Issue("thumbnail")
//	go func() {
//	    data := load()
//	    if d.Current(t) {
//	        apply(data)
//	    }
//	}()
package ticket

import (
	"fmt"
	"sync"
)

// Ticket identifies one load within a slot.
type Ticket struct {
	Slot string
	Seq  uint64
}

// String returns "slot#seq".
func (t Ticket) String() string {
	return fmt.Sprintf("%s#%d", t.Slot, t.Seq)
}

// Dispenser hands out tickets with per-slot increasing sequence numbers.
// The zero value is ready to use and safe for concurrent use.
type Dispenser struct {
	mu      sync.Mutex
	latest  map[string]uint64
	settled map[string]uint64
}

// Issue returns a new ticket for slot that supersedes every earlier one.
func (d *Dispenser) Issue(slot string) Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest == nil {
		d.latest = make(map[string]uint64)
	}
	d.latest[slot]++
	return Ticket{Slot: slot, Seq: d.latest[slot]}
}

// Current reports whether t is the newest ticket issued for its slot.
func (d *Dispenser) Current(t Ticket) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return t.Seq != 0 && d.latest[t.Slot] == t.Seq
}

// Settle runs apply while holding the dispenser lock if t is current, so no
// newer ticket can be issued between the check and the write. A ticket
// settles at most once. It reports whether apply ran.
func (d *Dispenser) Settle(t Ticket, apply func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t.Seq == 0 || d.latest[t.Slot] != t.Seq || d.settled[t.Slot] == t.Seq {
		return false
	}
	if d.settled == nil {
		d.settled = make(map[string]uint64)
	}
	d.settled[t.Slot] = t.Seq
	apply()
	return true
}
