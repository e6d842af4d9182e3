package internal

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// stored is the baseline entry for one tracked field.
type stored struct {
	value       any
	fingerprint string // structural form, only for non-comparable values
	comparable  bool
}

// capture freezes a field value for later comparison. Comparable values
// (numbers, strings, pointers, comparable structs) are kept as-is and
// compared with ==, which gives identity semantics for reference-typed
// fields. Non-comparable values (slices, maps, structs containing them) are
// fingerprinted so in-place mutation is still detected on the next cycle.
func capture(v any) stored {
	if v == nil {
		return stored{comparable: true}
	}

	if reflect.TypeOf(v).Comparable() {
		return stored{value: v, comparable: true}
	}

	return stored{fingerprint: fingerprint(v)}
}

func (s stored) equal(o stored) bool {
	if s.comparable != o.comparable {
		return false
	}
	if s.comparable {
		return s.value == o.value
	}
	return s.fingerprint == o.fingerprint
}

func fingerprint(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

// FieldValue is one fresh reading of a tracked field, in tracking order.
type FieldValue struct {
	Name  string
	Value any
}

// SnapshotStore holds the last-observed value of every tracked field, per
// inspected object, keyed by object identity. Entries are created lazily on
// first observation and dropped on selection change.
type SnapshotStore struct {
	snapshots map[any]map[string]stored
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: map[any]map[string]stored{},
	}
}

func (s *SnapshotStore) Has(obj any) bool {
	_, ok := s.snapshots[obj]
	return ok
}

// Init establishes obj's baseline from fresh readings. Never reports a change.
func (s *SnapshotStore) Init(obj any, fresh []FieldValue) {
	snap := make(map[string]stored, len(fresh))
	for _, fv := range fresh {
		snap[fv.Name] = capture(fv.Value)
	}
	s.snapshots[obj] = snap
}

// Reset drops obj's baseline entirely. The next observation re-initializes.
func (s *SnapshotStore) Reset(obj any) {
	delete(s.snapshots, obj)
}

// Retain drops every baseline whose object is not in keep. Objects that stay
// selected across a selection change keep their baselines.
func (s *SnapshotStore) Retain(keep []any) {
	kept := make(map[any]bool, len(keep))
	for _, obj := range keep {
		kept[obj] = true
	}

	for obj := range s.snapshots {
		if !kept[obj] {
			delete(s.snapshots, obj)
		}
	}
}

func (s *SnapshotStore) snapshot(obj any) map[string]stored {
	return s.snapshots[obj]
}
