// Package fieldwatch detects changes to named fields of inspected objects
// across discrete edit cycles and invokes the reaction methods declared for
// them, exactly once per distinct change.
//
// Reactions are declared against a concrete type with Declare (or loaded
// from a YAML sidecar), objects are put under inspection with Select, and
// every completed batch of edits is committed with Commit.
package fieldwatch

import (
	"reflect"

	"github.com/lbreton/fieldwatch/internal"
)

// Re-exported declaration errors.
var (
	ErrNilPrototype   = internal.ErrNilPrototype
	ErrUnknownMethod  = internal.ErrUnknownMethod
	ErrNoFields       = internal.ErrNoFields
	ErrUnknownType    = internal.ErrUnknownType
	ErrInvalidSidecar = internal.ErrInvalidSidecar
)

// Reaction is one declaration: a method name and the ordered fields it
// watches. A method may appear in several reactions; each fires on its own.
type Reaction struct {
	method string
	fields []string
}

// React declares that the named method reacts to changes of the given fields.
// The method must take either no parameters or a single string parameter,
// which receives the changed field's name. Any other shape keeps the fields
// tracked but is never invoked.
func React(method string, fields ...string) Reaction {
	return Reaction{method: method, fields: fields}
}

// Table holds reaction declarations keyed by concrete type.
type Table struct {
	table *internal.Table
}

func NewTable() *Table {
	return &Table{table: internal.NewTable()}
}

// Declare registers reactions for prototype's concrete type, usually a
// typed nil pointer like (*Camera)(nil). Declarations are validated once
// when the type is first inspected and cached for the table's lifetime.
// Methods are resolved from the concrete type's full method set, so
// promotions from embedded types are accepted.
func (t *Table) Declare(prototype any, reactions ...Reaction) error {
	typ, err := prototypeType(prototype)
	if err != nil {
		return err
	}

	return t.table.Declare(typ, declarations(reactions)...)
}

// BindType associates a name with prototype's concrete type so sidecar
// declarations can refer to it.
func (t *Table) BindType(name string, prototype any) error {
	typ, err := prototypeType(prototype)
	if err != nil {
		return err
	}

	t.table.Bind(name, typ)
	return nil
}

var defaultTable = &Table{table: internal.DefaultTable()}

// Declare registers reactions in the default table.
func Declare(prototype any, reactions ...Reaction) error {
	return defaultTable.Declare(prototype, reactions...)
}

// MustDeclare is Declare for init blocks; it panics on invalid declarations.
func MustDeclare(prototype any, reactions ...Reaction) {
	if err := Declare(prototype, reactions...); err != nil {
		panic(err)
	}
}

// BindType binds a sidecar type name in the default table.
func BindType(name string, prototype any) error {
	return defaultTable.BindType(name, prototype)
}

// Inspector is one inspection session: a selection of objects and their
// field baselines. It is single-threaded; cycles run synchronously inside
// Commit and are never overlapped.
type Inspector struct {
	engine *internal.Engine
}

func NewInspector(opts ...Option) (*Inspector, error) {
	ins := &Inspector{
		engine: internal.NewEngine(internal.DefaultTable()),
	}

	for _, opt := range opts {
		if err := opt(ins); err != nil {
			return nil, err
		}
	}

	return ins, nil
}

// ID identifies this inspector in diagnostics.
func (i *Inspector) ID() string {
	return i.engine.ID()
}

// Select replaces the inspected object set. Baselines of objects leaving the
// selection are discarded; objects that remain keep theirs. No handler fires
// on a selection change. Objects are keyed by identity and must be
// identity-comparable (typically pointers); values of non-comparable types
// are skipped with a warning.
func (i *Inspector) Select(objects ...any) {
	i.engine.Select(objects...)
}

// Commit runs one edit cycle: every tracked field of every selected object
// is read once, compared to its baseline, and the reactions watching the
// changed fields fire. Detection is edge-triggered; the fresh values become
// the next cycle's baseline. A first observation only baselines.
//
// Objects are processed independently, in selection order: a handler panic
// aborts that object's remaining reactions and is returned, joined, after
// the other objects have run.
//
// Inside an Edit block, Commit is a no-op; the cycle commits when the
// outermost Edit completes.
func (i *Inspector) Commit() error {
	return i.engine.Commit()
}

// Edit runs fn and then commits one cycle. Nested Edit calls extend the same
// cycle; only the outermost commits.
func (i *Inspector) Edit(fn func()) error {
	return i.engine.Edit(fn)
}

// Invalidate discards one object's baseline so its next cycle behaves as a
// first observation.
func (i *Inspector) Invalidate(object any) {
	i.engine.Invalidate(object)
}

// Tracked returns the fields watched on object's type, in declaration order.
func (i *Inspector) Tracked(object any) []string {
	return i.engine.Tracked(object)
}

// Select replaces the selection of the calling goroutine's ambient inspector.
func Select(objects ...any) {
	internal.AmbientEngine().Select(objects...)
}

// Commit runs one edit cycle on the ambient inspector.
func Commit() error {
	return internal.AmbientEngine().Commit()
}

// Edit runs fn as one edit cycle on the ambient inspector.
func Edit(fn func()) error {
	return internal.AmbientEngine().Edit(fn)
}

// Invalidate discards an object's baseline on the ambient inspector.
func Invalidate(object any) {
	internal.AmbientEngine().Invalidate(object)
}

func prototypeType(prototype any) (reflect.Type, error) {
	if prototype == nil {
		return nil, ErrNilPrototype
	}
	return reflect.TypeOf(prototype), nil
}

func declarations(reactions []Reaction) []internal.Declaration {
	decls := make([]internal.Declaration, 0, len(reactions))
	for _, r := range reactions {
		decls = append(decls, internal.Declaration{Method: r.method, Fields: r.fields})
	}
	return decls
}
