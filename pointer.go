package gesture

import "time"

// HoldState is the hold-timer state of one tracked pointer.
type HoldState struct {
	// Duration is the hold duration chosen at press time, or HoldInfinite.
	Duration time.Duration
	// Pending reports whether a hold timer is scheduled and has not yet fired
	// or been cancelled.
	Pending bool

	timer Timer
	gen   uint64
	count int
	// start and span describe the armed timer: the first hold or a repeat.
	start time.Time
	span  time.Duration
}

// PointerRecord is the session's view of one currently tracked pointer.
// Session.Pointers returns copies; the session owns the originals.
type PointerRecord struct {
	ID   PointerID
	Hold HoldState

	Down       bool
	DownTime   time.Time
	DownTarget any
	StartX     float64
	StartY     float64
	LastX      float64
	LastY      float64
	// Moved is set once a down pointer travels farther than the session's
	// move tolerance from where it was pressed.
	Moved bool
	// Consumed is set by Session.ConsumePointer; consumed pointers never tap.
	Consumed bool

	// last raw sample, replayed by hold events
	pointer   Pointer
	native    any
	modifiers KeyModifiers
}

func newPointerRecord(id PointerID) *PointerRecord {
	return &PointerRecord{
		ID:   id,
		Hold: HoldState{Duration: HoldInfinite},
	}
}

// pointerRegistry keeps tracked pointers in first-seen order. Identities are
// unique. Lookups are linear; a handful of pointers is the expected scale.
type pointerRegistry struct {
	records []*PointerRecord
}

// index returns the position of id, or -1.
func (r *pointerRegistry) index(id PointerID) int {
	for i, rec := range r.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// find returns the record for id, or nil.
func (r *pointerRegistry) find(id PointerID) *PointerRecord {
	if i := r.index(id); i >= 0 {
		return r.records[i]
	}
	return nil
}

// upsert returns the index of id, appending a fresh record when id is not
// tracked yet. added reports whether the record was created by this call.
func (r *pointerRegistry) upsert(id PointerID) (index int, added bool) {
	if i := r.index(id); i >= 0 {
		return i, false
	}
	r.records = append(r.records, newPointerRecord(id))
	return len(r.records) - 1, true
}

// remove deletes id, keeping the relative order of the rest.
// Removing an untracked id does nothing.
func (r *pointerRegistry) remove(id PointerID) {
	i := r.index(id)
	if i < 0 {
		return
	}
	copy(r.records[i:], r.records[i+1:])
	r.records[len(r.records)-1] = nil
	r.records = r.records[:len(r.records)-1]
}

// contains reports whether rec itself (not just its identity) is still tracked.
func (r *pointerRegistry) contains(rec *PointerRecord) bool {
	for _, p := range r.records {
		if p == rec {
			return true
		}
	}
	return false
}

func (r *pointerRegistry) len() int { return len(r.records) }

func (r *pointerRegistry) at(i int) *PointerRecord { return r.records[i] }
