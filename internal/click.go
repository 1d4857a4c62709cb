package internal

import (
	"fmt"
	"slices"
)

// NoCoordinate passed as both x and y requests a programmatic click.
const NoCoordinate float32 = -1

// ClickArea is a declared clickable rectangle. Its identity is the id,
// description and metadata; geometry is not part of it.
type ClickArea struct {
	ID          int
	Description string
	Left, Top   float32
	Right       float32
	Bottom      float32
	Metadata    string
}

// Contains is half-open: the left and top edges are inside, the right and bottom are not.
func (a ClickArea) Contains(x, y float32) bool {
	return x >= a.Left && x < a.Right && y >= a.Top && y < a.Bottom
}

func (a ClickArea) Width() float32  { return max(0, a.Right-a.Left) }
func (a ClickArea) Height() float32 { return max(0, a.Bottom-a.Top) }

func (a ClickArea) sameIdentity(b ClickArea) bool {
	return a.ID == b.ID && a.Description == b.Description && a.Metadata == b.Metadata
}

// clickAreas is an insertion ordered set of click areas.
type clickAreas struct {
	items []ClickArea
}

func (s *clickAreas) add(a ClickArea) {
	for i := range s.items {
		if s.items[i].sameIdentity(a) {
			s.items[i] = a
			return
		}
	}
	s.items = append(s.items, a)
}

func (s *clickAreas) remove(a ClickArea) {
	s.items = slices.DeleteFunc(s.items, a.sameIdentity)
}

func (s *clickAreas) clear() { s.items = nil }

func (s *clickAreas) snapshot() []ClickArea { return slices.Clone(s.items) }

// ClickAreaOp registers a click area while the document primes its state.
// Coordinates may be variable references; a change re-registers the area.
type ClickAreaOp struct {
	OpBase

	ID                       int
	Description              string
	Left, Top, Right, Bottom float32
	Metadata                 string

	l, t, r, b float32
}

func (c *ClickAreaOp) RegisterListening(ctx *Context) {
	ctx.Listen(c, c.Left, c.Top, c.Right, c.Bottom)
}

func (c *ClickAreaOp) UpdateVariables(ctx *Context) {
	c.l, c.t = ctx.Resolve(c.Left), ctx.Resolve(c.Top)
	c.r, c.b = ctx.Resolve(c.Right), ctx.Resolve(c.Bottom)
}

func (c *ClickAreaOp) Apply(ctx *Context) error {
	if ctx.doc == nil {
		return nil
	}
	ctx.doc.AddClickArea(c.area())
	return nil
}

func (c *ClickAreaOp) area() ClickArea {
	return ClickArea{
		ID:          c.ID,
		Description: c.Description,
		Left:        c.l,
		Top:         c.t,
		Right:       c.r,
		Bottom:      c.b,
		Metadata:    c.Metadata,
	}
}

func (c *ClickAreaOp) String() string {
	return fmt.Sprintf("ClickArea[%d] %q %v,%v,%v,%v", c.ID, c.Description, c.l, c.t, c.r, c.b)
}

type (
	// ActionCallback receives named host actions.
	ActionCallback func(name string, payload any)
	// IDActionCallback receives click and id actions.
	IDActionCallback func(id int, metadata string)
)

// HapticEngine plays haptic feedback effects.
type HapticEngine interface {
	Haptic(effect int)
}

type HapticFunc func(effect int)

func (f HapticFunc) Haptic(effect int) { f(effect) }

// TouchListener receives every touch event of a document.
type TouchListener interface {
	TouchDown(ctx *Context, x, y float32)
	TouchDrag(ctx *Context, x, y float32)
	TouchUp(ctx *Context, x, y, dx, dy float32)
	TouchCancel(ctx *Context, x, y float32)
}

// TouchValue follows a drag gesture along one axis and writes the
// accumulated, clamped offset into a float slot.
type TouchValue struct {
	OpBase

	ID       int
	Vertical bool
	Initial  float32
	Min, Max float32

	start float32
	base  float32
	down  bool
}

const (
	AxisHorizontal = false
	AxisVertical   = true
)

func (t *TouchValue) Apply(ctx *Context) error {
	if ctx.Mode != ModeData || ctx.doc == nil {
		return nil
	}
	ctx.doc.AddTouchListener(t)
	ctx.state.SetFloat(t.ID, t.clamp(t.Initial))
	return nil
}

func (t *TouchValue) clamp(v float32) float32 {
	if t.Max > t.Min {
		return min(max(v, t.Min), t.Max)
	}
	return v
}

func (t *TouchValue) pos(x, y float32) float32 {
	if t.Vertical {
		return y
	}
	return x
}

func (t *TouchValue) TouchDown(ctx *Context, x, y float32) {
	t.down = true
	t.start = t.pos(x, y)
	t.base = ctx.state.Float(t.ID)
}

func (t *TouchValue) TouchDrag(ctx *Context, x, y float32) {
	if !t.down {
		return
	}
	ctx.state.OverrideFloat(t.ID, t.clamp(t.base+t.pos(x, y)-t.start))
}

func (t *TouchValue) TouchUp(ctx *Context, x, y, _, _ float32) {
	t.TouchDrag(ctx, x, y)
	t.down = false
}

func (t *TouchValue) TouchCancel(ctx *Context, _, _ float32) {
	if t.down {
		ctx.state.OverrideFloat(t.ID, t.base)
	}
	t.down = false
}

func (t *TouchValue) String() string {
	return fmt.Sprintf("TouchValue[%d] vertical=%t [%v, %v]", t.ID, t.Vertical, t.Min, t.Max)
}

// Action runs when the click or touch modifier holding it fires.
type Action interface {
	Operation
	RunAction(ctx *Context, doc *Document, c Component, x, y float32)
}

// HostAction forwards a named action to the host. The payload is the text
// of PayloadTextID when set, Payload otherwise.
type HostAction struct {
	OpBase

	Name          string
	PayloadTextID int
	Payload       any
}

func (*HostAction) Apply(*Context) error { return nil }

func (a *HostAction) RunAction(ctx *Context, doc *Document, _ Component, _, _ float32) {
	payload := a.Payload
	if a.PayloadTextID != 0 {
		payload = ctx.Text(a.PayloadTextID)
	}
	doc.RunNamedAction(a.Name, payload)
}

func (a *HostAction) String() string { return fmt.Sprintf("HostAction %q", a.Name) }

type HostIDAction struct {
	OpBase

	ID       int
	Metadata string
}

func (*HostIDAction) Apply(*Context) error { return nil }

func (a *HostIDAction) RunAction(_ *Context, doc *Document, _ Component, _, _ float32) {
	doc.notifyIDAction(a.ID, a.Metadata)
}

func (a *HostIDAction) String() string { return fmt.Sprintf("HostIDAction %d %q", a.ID, a.Metadata) }

type ValueIntegerChange struct {
	OpBase

	Target int
	Value  int32
}

func (*ValueIntegerChange) Apply(*Context) error { return nil }

func (a *ValueIntegerChange) RunAction(ctx *Context, _ *Document, _ Component, _, _ float32) {
	ctx.state.OverrideInteger(a.Target, a.Value)
}

func (a *ValueIntegerChange) String() string {
	return fmt.Sprintf("ValueIntegerChange $%d = %d", a.Target, a.Value)
}

type ValueFloatChange struct {
	OpBase

	Target int
	Value  float32
}

func (*ValueFloatChange) Apply(*Context) error { return nil }

func (a *ValueFloatChange) RunAction(ctx *Context, _ *Document, _ Component, _, _ float32) {
	ctx.state.OverrideFloat(a.Target, a.Value)
}

func (a *ValueFloatChange) String() string {
	return fmt.Sprintf("ValueFloatChange $%d = %v", a.Target, a.Value)
}

// ValueIntegerExpressionChange evaluates a registered integer expression into a slot.
type ValueIntegerExpressionChange struct {
	OpBase

	Target       int
	ExpressionID int64
}

func (*ValueIntegerExpressionChange) Apply(*Context) error { return nil }

func (a *ValueIntegerExpressionChange) RunAction(ctx *Context, doc *Document, _ Component, _, _ float32) {
	doc.EvaluateIntExpression(ctx, a.ExpressionID, a.Target)
}

func (a *ValueIntegerExpressionChange) String() string {
	return fmt.Sprintf("ValueIntegerExpressionChange $%d = expr %d", a.Target, a.ExpressionID)
}

type HapticAction struct {
	OpBase

	Effect int
}

func (*HapticAction) Apply(*Context) error { return nil }

func (a *HapticAction) RunAction(_ *Context, doc *Document, _ Component, _, _ float32) {
	doc.Haptic(a.Effect)
}

func (a *HapticAction) String() string { return fmt.Sprintf("HapticAction %d", a.Effect) }

func runActions(ctx *Context, doc *Document, c Component, ops []Operation, x, y float32) {
	for _, op := range ops {
		if a, ok := op.(Action); ok {
			a.RunAction(ctx, doc, c, x, y)
		}
	}
}
