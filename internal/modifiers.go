package internal

import "fmt"

type DimensionType int

const (
	DimensionWrap DimensionType = iota
	DimensionFixed
	DimensionFill
)

func (t DimensionType) String() string {
	switch t {
	case DimensionFixed:
		return "fixed"
	case DimensionFill:
		return "fill"
	default:
		return "wrap"
	}
}

// Modifier configures the component it is declared in.
type Modifier interface {
	Operation
	isModifier()
}

// ComponentModifiers holds a component's modifiers, in declaration order.
type ComponentModifiers struct {
	ContainerBase
}

func (m *ComponentModifiers) Apply(ctx *Context) error {
	if ctx.Mode == ModePaint {
		ctx.ApplyList(m.list)
	}
	return nil
}

func (m *ComponentModifiers) PaintsEveryFrame() bool { return true }
func (m *ComponentModifiers) String() string         { return "Modifiers" }

// SizeModifier sets a component's width, or its height when Vertical is set.
// A fixed Value may be a variable reference.
type SizeModifier struct {
	OpBase

	Vertical bool
	Type     DimensionType
	Value    float32

	value float32
	owner *ComponentBase
}

func NewWidthModifier(t DimensionType, v float32) *SizeModifier {
	return &SizeModifier{Type: t, Value: v}
}

func NewHeightModifier(t DimensionType, v float32) *SizeModifier {
	return &SizeModifier{Vertical: true, Type: t, Value: v}
}

func (*SizeModifier) isModifier()          {}
func (*SizeModifier) Apply(*Context) error { return nil }

func (m *SizeModifier) RegisterListening(ctx *Context) { ctx.Listen(m, m.Value) }

func (m *SizeModifier) UpdateVariables(ctx *Context) {
	v := ctx.Resolve(m.Value)
	if v == m.value {
		return
	}
	m.value = v

	if m.owner != nil && m.Type == DimensionFixed {
		m.owner.InvalidateMeasure()
		ctx.RequestRepaint(1)
	}
}

func (m *SizeModifier) String() string {
	axis := "width"
	if m.Vertical {
		axis = "height"
	}
	return fmt.Sprintf("%s %s %v", axis, m.Type, m.value)
}

type PaddingModifier struct {
	OpBase

	Left, Top, Right, Bottom float32
}

func (*PaddingModifier) isModifier()          {}
func (*PaddingModifier) Apply(*Context) error { return nil }

func (m *PaddingModifier) String() string {
	return fmt.Sprintf("padding %v %v %v %v", m.Left, m.Top, m.Right, m.Bottom)
}

// BackgroundModifier fills the component's bounds.
type BackgroundModifier struct {
	OpBase

	Color uint32

	owner *ComponentBase
}

func (*BackgroundModifier) isModifier() {}

func (m *BackgroundModifier) Apply(ctx *Context) error {
	if ctx.Mode != ModePaint || m.owner == nil {
		return nil
	}
	b := m.owner.paintBounds()
	ctx.Paint.DrawRect(0, 0, b.w, b.h, m.Color)
	return nil
}

func (m *BackgroundModifier) PaintsEveryFrame() bool { return true }
func (m *BackgroundModifier) String() string         { return fmt.Sprintf("background #%08x", m.Color) }

// AnimateBoundsModifier animates bounds changes over a number of frames.
type AnimateBoundsModifier struct {
	OpBase

	Frames int
}

func (*AnimateBoundsModifier) isModifier()          {}
func (*AnimateBoundsModifier) Apply(*Context) error { return nil }

func (m *AnimateBoundsModifier) String() string { return fmt.Sprintf("animate %d frames", m.Frames) }

// ClickModifier runs its child actions when the component is clicked.
type ClickModifier struct {
	ContainerBase
}

func (*ClickModifier) isModifier()          {}
func (*ClickModifier) Apply(*Context) error { return nil }
func (*ClickModifier) String() string       { return "onClick" }

type TouchDownModifier struct {
	ContainerBase
}

func (*TouchDownModifier) isModifier()          {}
func (*TouchDownModifier) Apply(*Context) error { return nil }
func (*TouchDownModifier) String() string       { return "onTouchDown" }

type TouchUpModifier struct {
	ContainerBase
}

func (*TouchUpModifier) isModifier()          {}
func (*TouchUpModifier) Apply(*Context) error { return nil }
func (*TouchUpModifier) String() string       { return "onTouchUp" }

type TouchCancelModifier struct {
	ContainerBase
}

func (*TouchCancelModifier) isModifier()          {}
func (*TouchCancelModifier) Apply(*Context) error { return nil }
func (*TouchCancelModifier) String() string       { return "onTouchCancel" }
