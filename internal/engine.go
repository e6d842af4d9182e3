package internal

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Engine is one inspection session: a selection of objects, their baselines,
// and the machinery to run an edit cycle over them. It is single-threaded;
// cycles run synchronously inside Commit and are never pipelined.
type Engine struct {
	id string

	table    *Table
	store    *SnapshotStore
	detector *Detector
	batcher  *Batcher

	selection []any

	source  ValueSource
	logger  Logger
	metrics MetricsCollector
}

func NewEngine(table *Table) *Engine {
	store := NewSnapshotStore()

	return &Engine{
		id:       uuid.NewString(),
		table:    table,
		store:    store,
		detector: NewDetector(store),
		batcher:  NewBatcher(),
		source:   StructSource{},
		logger:   nopLogger{},
		metrics:  nopMetrics{},
	}
}

func (e *Engine) ID() string { return e.id }

func (e *Engine) SetTable(t *Table)             { e.table = t }
func (e *Engine) SetSource(s ValueSource)       { e.source = s }
func (e *Engine) SetLogger(l Logger)            { e.logger = l }
func (e *Engine) SetMetrics(m MetricsCollector) { e.metrics = m }

// Select replaces the inspected set. Baselines of objects leaving the
// selection are dropped; objects that stay keep theirs. Newly selected
// objects are baselined on their first cycle, without firing anything.
// Objects are keyed by identity, so they must be identity-comparable
// (typically pointers); values of non-comparable types are skipped.
func (e *Engine) Select(objects ...any) {
	e.selection = e.selection[:0]
	for _, obj := range objects {
		if !identityComparable(obj) {
			e.logger.Warn("object skipped: not identity-comparable", "inspector", e.id, "object", fmt.Sprintf("%T", obj))
			continue
		}
		e.selection = append(e.selection, obj)
	}
	e.store.Retain(e.selection)

	e.logger.Debug("selection changed", "inspector", e.id, "objects", len(e.selection))
}

// Invalidate drops one object's baseline without touching the selection.
// The object's next cycle behaves as a first observation.
func (e *Engine) Invalidate(obj any) {
	if !identityComparable(obj) {
		return
	}
	e.store.Reset(obj)
}

// identityComparable reports whether obj can key a baseline. Values of
// non-comparable types (slices, maps, structs containing them) have no
// usable identity and cannot be inspected.
func identityComparable(obj any) bool {
	return obj == nil || reflect.TypeOf(obj).Comparable()
}

// Tracked returns the fields watched on obj's type, in declaration order.
func (e *Engine) Tracked(obj any) []string {
	if obj == nil {
		return nil
	}
	return e.table.FieldsUnion(reflect.TypeOf(obj))
}

// Edit runs fn and then commits one cycle. Nested Edit calls extend the same
// cycle; only the outermost one commits.
func (e *Engine) Edit(fn func()) error {
	return e.batcher.Batch(fn, e.Commit)
}

// Commit runs one edit cycle over the selection, in selection order. Each
// object is independent: a handler failure aborts that object's remaining
// dispatch but never the next object's. Returns the joined failures.
// Inside an Edit block, Commit is a no-op; the cycle commits when the
// outermost Edit completes.
func (e *Engine) Commit() error {
	if e.batcher.IsBatching() {
		return nil
	}

	start := time.Now()

	var errs []error
	for _, obj := range e.selection {
		if err := e.commitObject(obj); err != nil {
			errs = append(errs, err)
		}
	}

	e.metrics.RecordDuration("fieldwatch.cycle", time.Since(start), nil)
	return errors.Join(errs...)
}

func (e *Engine) commitObject(obj any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler failed on %T: %v", obj, r)
			e.logger.Error("handler failed", "inspector", e.id, "object", fmt.Sprintf("%T", obj), "reason", r)
		}
	}()

	if obj == nil {
		return nil
	}

	typ := reflect.TypeOf(obj)
	descs := e.table.Resolve(typ)
	if len(descs) == 0 {
		return nil
	}

	fresh := e.readFields(obj, e.table.FieldsUnion(typ))
	changed := e.detector.Detect(obj, fresh)
	if len(changed) == 0 {
		return nil
	}

	for range changed {
		e.metrics.IncrementCounter("fieldwatch.changed_fields", map[string]string{"type": typ.String()})
	}
	e.logger.Debug("fields changed", "inspector", e.id, "object", typ.String(), "fields", changed)

	e.dispatch(obj, descs, changed)
	return nil
}

// readFields reads each tracked field once through the value source.
// Unreadable fields are skipped.
func (e *Engine) readFields(obj any, fields []string) []FieldValue {
	fresh := make([]FieldValue, 0, len(fields))
	for _, name := range fields {
		v, ok := e.source.CurrentValue(obj, name)
		if !ok {
			continue
		}
		fresh = append(fresh, FieldValue{Name: name, Value: v})
	}
	return fresh
}
