package builder

import (
	"context"
	"encoding/json"
	"fmt"
)

// ValidationError is returned by Submit when the configuration violates one
// or more rules. Fields carries the full path→message mapping so the caller
// can decorate every offending input, not just the first.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration invalid: %d field(s) rejected", len(e.Fields))
}

// BlobWriter is the persistence collaborator for submitted snapshots. The
// blob store package provides Redis-backed and in-memory implementations.
type BlobWriter interface {
	Write(ctx context.Context, key, blob string) error
}

// Submit validates the current configuration. On success it freezes an
// immutable snapshot, records it as the last submitted one and returns a
// copy. On failure it returns a *ValidationError and changes nothing except
// the retained error mapping. Submitting twice without a mutation in between
// yields the same outcome both times.
func (s *Store) Submit() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := Validate(s.cfg)
	s.lastErrors = errs
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	snap := s.cfg.snapshot()
	s.lastSubmitted = &snap
	out := snap.clone()
	return &out, nil
}

// Save serializes the last submitted snapshot and writes it under key,
// overwriting any previous value. It does not validate again; the snapshot
// was already validated when it was taken. A write failure leaves the
// snapshot in place so the save can simply be retried.
func (s *Store) Save(ctx context.Context, bw BlobWriter, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSubmitted == nil {
		return ErrNoSubmission
	}
	blob, err := json.Marshal(s.lastSubmitted)
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}
	if err := bw.Write(ctx, key, string(blob)); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}
