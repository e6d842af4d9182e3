package internal

import (
	"fmt"
	"reflect"
	"sync"
)

// Arity classifies a reaction method's parameter shape.
type Arity int

const (
	// ArityNiladic methods take no arguments.
	ArityNiladic Arity = iota
	// ArityFieldName methods take the changed field's name as a single string.
	ArityFieldName
	// ArityUnsupported methods are tracked but never invoked.
	ArityUnsupported
)

// Declaration is one raw reaction registration: a method name and the
// ordered list of fields it watches. The same method may appear in several
// declarations, each becoming its own descriptor.
type Declaration struct {
	Method string
	Fields []string
}

// Descriptor is a Declaration resolved against a concrete type. Immutable
// once built, cached for the table's lifetime.
type Descriptor struct {
	Method string
	Fields []string

	arity Arity
	fn    reflect.Value // the method func, receiver as first argument
}

func (d *Descriptor) Invocable() bool {
	return d.arity != ArityUnsupported
}

func (d *Descriptor) Arity() Arity {
	return d.arity
}

// Call invokes the descriptor's method on obj, with no argument for niladic
// methods and the changed field's name for field-name methods. Return values
// are ignored; only the parameter shape is constrained.
func (d *Descriptor) Call(obj any, field string) {
	switch d.arity {
	case ArityNiladic:
		d.fn.Call([]reflect.Value{reflect.ValueOf(obj)})
	case ArityFieldName:
		d.fn.Call([]reflect.Value{reflect.ValueOf(obj), reflect.ValueOf(field)})
	}
}

func (d *Descriptor) watchesAny(changed map[string]bool) bool {
	for _, f := range d.Fields {
		if changed[f] {
			return true
		}
	}
	return false
}

// Table holds reaction declarations keyed by concrete type and resolves them
// into descriptors on first use. Resolution results are cached until the
// table is discarded.
type Table struct {
	mu    sync.Mutex
	decls map[reflect.Type][]Declaration
	cache map[reflect.Type][]*Descriptor
	names map[string]reflect.Type
}

var defaultTable = NewTable()

// DefaultTable is the process-wide table used by package-level declarations
// and the ambient engine.
func DefaultTable() *Table {
	return defaultTable
}

func NewTable() *Table {
	return &Table{
		decls: map[reflect.Type][]Declaration{},
		cache: map[reflect.Type][]*Descriptor{},
		names: map[string]reflect.Type{},
	}
}

// Declare appends declarations for typ, in order. The method must exist in
// typ's method set; an unsupported parameter shape is not an error here, it
// just makes the resulting descriptor non-invocable.
func (t *Table) Declare(typ reflect.Type, decls ...Declaration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, d := range decls {
		if d.Method == "" {
			return fmt.Errorf("%w: empty method name on %v", ErrUnknownMethod, typ)
		}
		if _, ok := typ.MethodByName(d.Method); !ok {
			return fmt.Errorf("%w: %v has no method %s", ErrUnknownMethod, typ, d.Method)
		}
		if len(d.Fields) == 0 {
			return fmt.Errorf("%w: %v.%s watches nothing", ErrNoFields, typ, d.Method)
		}
	}

	t.decls[typ] = append(t.decls[typ], decls...)
	delete(t.cache, typ)

	return nil
}

// Bind associates a name with a type so sidecar declarations can refer to it.
func (t *Table) Bind(name string, typ reflect.Type) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.names[name] = typ
}

func (t *Table) TypeByName(name string) (reflect.Type, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	typ, ok := t.names[name]
	return typ, ok
}

// Resolve returns typ's descriptors in declaration order, building and
// caching them on first call.
func (t *Table) Resolve(typ reflect.Type) []*Descriptor {
	t.mu.Lock()
	defer t.mu.Unlock()

	if descs, ok := t.cache[typ]; ok {
		return descs
	}

	decls := t.decls[typ]
	descs := make([]*Descriptor, 0, len(decls))
	for _, decl := range decls {
		descs = append(descs, resolve(typ, decl))
	}

	t.cache[typ] = descs
	return descs
}

// FieldsUnion returns the ordered union of every field watched by any of
// typ's descriptors, invocable or not.
func (t *Table) FieldsUnion(typ reflect.Type) []string {
	descs := t.Resolve(typ)

	seen := map[string]bool{}
	var fields []string
	for _, d := range descs {
		for _, f := range d.Fields {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}

	return fields
}

var stringType = reflect.TypeOf("")

func resolve(typ reflect.Type, decl Declaration) *Descriptor {
	d := &Descriptor{
		Method: decl.Method,
		Fields: append([]string(nil), decl.Fields...),
		arity:  ArityUnsupported,
	}

	m, ok := typ.MethodByName(decl.Method)
	if !ok {
		return d
	}
	d.fn = m.Func

	mt := m.Func.Type()
	switch {
	case mt.IsVariadic():
		// unsupported, tracked only
	case mt.NumIn() == 1:
		d.arity = ArityNiladic
	case mt.NumIn() == 2 && mt.In(1) == stringType:
		d.arity = ArityFieldName
	}

	return d
}
