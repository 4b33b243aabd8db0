package builder

import (
	"errors"
	"sync"
)

var (
	// ErrIndexOutOfRange is returned when an operation names a component
	// index outside [0, len). The failing operation changes nothing.
	ErrIndexOutOfRange = errors.New("component index out of range")
	// ErrUnknownField is returned for a field name no component record has.
	ErrUnknownField = errors.New("unknown component field")
	// ErrNoSubmission is returned by Save before any successful Submit.
	ErrNoSubmission = errors.New("no submitted configuration to save")
)

// Store owns one Configuration and its last submitted snapshot. Every
// operation takes the lock for its whole duration, so mutations never
// interleave and derived fields are consistent the moment a call returns.
type Store struct {
	mu            sync.Mutex
	cfg           Configuration
	lastSubmitted *Snapshot
	lastErrors    FieldErrors
}

// NewStore returns an empty configuration store.
func NewStore() *Store {
	return &Store{}
}

// SetBaseModel replaces the base model. No validation happens here; an empty
// value only surfaces as an error at submit time.
func (s *Store) SetBaseModel(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.BaseModel = value
	s.reconcile()
}

// AppendComponent appends a zero-value record and returns its index.
func (s *Store) AppendComponent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Components = append(s.cfg.Components, ComponentRecord{})
	s.reconcile()
	return len(s.cfg.Components) - 1
}

// RemoveComponent removes the record at index.
func (s *Store) RemoveComponent(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.cfg.Components) {
		return ErrIndexOutOfRange
	}
	s.cfg.Components = append(s.cfg.Components[:index], s.cfg.Components[index+1:]...)
	s.reconcile()
	return nil
}

// UpdateComponentField writes one field of the record at index and then
// reconciles derived state. A type change first clears the fields that are no
// longer applicable under the new type, before the total is recomputed.
func (s *Store) UpdateComponentField(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.cfg.Components) {
		return ErrIndexOutOfRange
	}
	rec := &s.cfg.Components[index]
	switch field {
	case FieldType:
		oldType := rec.Type
		rec.Type = ComponentType(value)
		clearStaleFields(rec, oldType)
	case FieldName:
		rec.Name = value
	case FieldPrice:
		rec.Price = value
	case FieldCapacity:
		rec.Capacity = value
	case FieldStorageType:
		rec.StorageType = StorageKind(value)
	default:
		return ErrUnknownField
	}
	s.reconcile()
	return nil
}

// clearStaleFields resets fields that were applicable under oldType but are
// not under the record's new type. Clearing is silent; the cleared fields only
// show up as errors if the next submit still needs them.
func clearStaleFields(rec *ComponentRecord, oldType ComponentType) {
	for _, f := range ApplicableFields(oldType) {
		if FieldApplicable(rec.Type, f) {
			continue
		}
		switch f {
		case FieldCapacity:
			rec.Capacity = ""
		case FieldStorageType:
			rec.StorageType = ""
		}
	}
}

// reconcile recomputes the derived total from the current records. Runs after
// every mutation, whether or not a price was touched; unparsable prices count
// as 0. Callers must hold the lock.
func (s *Store) reconcile() {
	total := 0.0
	for _, rec := range s.cfg.Components {
		if v, ok := ParsePrice(rec.Price); ok {
			total += v
		}
	}
	s.cfg.TotalPrice = total
}

// Configuration returns a deep copy of the current state.
func (s *Store) Configuration() Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// LastErrors returns the field error mapping of the most recent Submit, or an
// empty mapping if the last Submit succeeded (or none happened yet). The
// rendering layer reads this to decorate fields.
func (s *Store) LastErrors() FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(FieldErrors, len(s.lastErrors))
	for k, v := range s.lastErrors {
		out[k] = v
	}
	return out
}

// LastSubmitted returns a copy of the last submitted snapshot, or nil.
func (s *Store) LastSubmitted() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSubmitted == nil {
		return nil
	}
	snap := s.lastSubmitted.clone()
	return &snap
}
