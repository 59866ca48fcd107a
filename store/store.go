// Package store implements the value store shared between a panel and its host.
//
// The key set is fixed when the store is built. Each key owns a slot whose
// value is swapped atomically, so a single writer can publish while any number
// of readers poll without locks. There is no ordering between keys.
package store

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrUnknownKey   = errors.New("store: unknown key")
	ErrKindMismatch = errors.New("store: kind mismatch")
	ErrInvalidField = errors.New("store: invalid field")
)

// Field declares one key of the store schema.
type Field struct {
	Name string
	Kind Kind
}

type slot struct {
	kind  Kind
	value atomic.Pointer[Value]
}

type Store struct {
	keys    []string
	slots   map[string]*slot // never mutated after New
	version atomic.Uint64
}

// New builds a store for the given schema and seeds every key with the zero
// value of its kind.
func New(fields []Field) (*Store, error) {
	s := &Store{
		keys:  make([]string, 0, len(fields)),
		slots: make(map[string]*slot, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidField)
		}
		if _, dup := s.slots[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidField, f.Name)
		}
		zero := Zero(f.Kind)
		if !zero.IsValid() {
			return nil, fmt.Errorf("%w: %q has kind %v", ErrInvalidField, f.Name, f.Kind)
		}
		sl := &slot{kind: f.Kind}
		sl.value.Store(&zero)
		s.slots[f.Name] = sl
		s.keys = append(s.keys, f.Name)
	}
	return s, nil
}

// Write replaces the value of key. The value's kind must match the kind the
// key was declared with.
func (s *Store) Write(key string, v Value) error {
	sl, ok := s.slots[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if v.Kind() != sl.kind {
		return fmt.Errorf("%w: %q is %v, got %v", ErrKindMismatch, key, sl.kind, v.Kind())
	}
	sl.value.Store(&v)
	s.version.Add(1)
	return nil
}

// Read returns the latest value published for key. It never blocks.
func (s *Store) Read(key string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	sl, ok := s.slots[key]
	if !ok {
		return Value{}, false
	}
	return *sl.value.Load(), true
}

// Keys returns the keys in declaration order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Snapshot reads every key. Each read is atomic but the snapshot as a whole
// is not isolated from concurrent writes.
func (s *Store) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.keys))
	for _, k := range s.keys {
		out[k] = *s.slots[k].value.Load()
	}
	return out
}

// Version counts successful writes.
func (s *Store) Version() uint64 {
	return s.version.Load()
}
