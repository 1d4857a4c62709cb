package internal

import (
	"reflect"
)

type opFlags uint8

const (
	flagNone  opFlags = 0
	flagDirty opFlags = 1 << (iota - 1)
	// set after the first apply failure so repeated failures are only logged once
	flagFailed
)

func (f opFlags) has(flag opFlags) bool { return f&flag != 0 }
func (f *opFlags) set(flag opFlags)     { *f |= flag }
func (f *opFlags) clear(flag opFlags)   { *f &^= flag }

// Operation is the unit of a document stream.
type Operation interface {
	Apply(ctx *Context) error

	IsDirty() bool
	MarkDirty()
	MarkNotDirty()

	opBase() *OpBase
}

// OpBase carries the runtime state shared by every operation. Embed it.
type OpBase struct {
	flags opFlags
}

func (o *OpBase) IsDirty() bool   { return o.flags.has(flagDirty) }
func (o *OpBase) MarkDirty()      { o.flags.set(flagDirty) }
func (o *OpBase) MarkNotDirty()   { o.flags.clear(flagDirty) }
func (o *OpBase) opBase() *OpBase { return o }

// VariableSupport is implemented by operations reading state slots.
type VariableSupport interface {
	Operation

	// RegisterListening subscribes the operation to every slot it reads.
	RegisterListening(ctx *Context)
	// UpdateVariables re-reads the subscribed slots.
	UpdateVariables(ctx *Context)
}

// Producer is implemented by operations writing state slots, so that
// invalidation can follow them to their own subscribers.
type Producer interface {
	Outputs() []int
}

// PaintOperation is implemented by operations that run on every paint pass,
// dirty or not.
type PaintOperation interface {
	Operation
	PaintsEveryFrame() bool
}

// Container owns an ordered list of child operations.
type Container interface {
	Operation
	Children() []Operation
	Append(op Operation)
}

type ContainerBase struct {
	OpBase

	list []Operation
}

func (c *ContainerBase) Children() []Operation { return c.list }
func (c *ContainerBase) Append(op Operation)   { c.list = append(c.list, op) }

// ContainerEnd closes the innermost open container of a flat stream.
type ContainerEnd struct {
	OpBase
}

func (*ContainerEnd) Apply(*Context) error { return nil }
func (*ContainerEnd) String() string       { return "ContainerEnd" }

// Group is a plain grouping container.
type Group struct {
	ContainerBase
}

func NewGroup() *Group { return &Group{} }

func (g *Group) Apply(ctx *Context) error {
	if ctx.Mode == ModePaint {
		ctx.ApplyList(g.list)
	}
	return nil
}

func (g *Group) PaintsEveryFrame() bool { return true }
func (g *Group) String() string         { return "Group" }

func paints(op Operation) bool {
	p, ok := op.(PaintOperation)
	return ok && p.PaintsEveryFrame()
}

// KindName is the operation's type name, used by stats and dumps.
func KindName(op Operation) string {
	t := reflect.TypeOf(op)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
