package internal

import "fmt"

type ContextMode int

const (
	ModeUnset ContextMode = iota
	ModeData
	ModePaint
)

func (m ContextMode) String() string {
	switch m {
	case ModeData:
		return "DATA"
	case ModePaint:
		return "PAINT"
	default:
		return "UNSET"
	}
}

const (
	ThemeUnspecified = -1
	ThemeDark        = -2
	ThemeLight       = -3
)

// PaintContext is the drawing backend a document paints into.
type PaintContext interface {
	Save()
	Restore()
	Translate(dx, dy float32)
	Scale(sx, sy float32)

	DrawRect(left, top, right, bottom float32, color uint32)
	DrawText(text string, x, y float32, color uint32)

	ClearNeedsRepaint()
	NeedsRepaint() bool
}

type nopPaint struct{}

func (nopPaint) Save()                                     {}
func (nopPaint) Restore()                                  {}
func (nopPaint) Translate(float32, float32)                {}
func (nopPaint) Scale(float32, float32)                    {}
func (nopPaint) DrawRect(_, _, _, _ float32, _ uint32)     {}
func (nopPaint) DrawText(string, float32, float32, uint32) {}
func (nopPaint) ClearNeedsRepaint()                        {}
func (nopPaint) NeedsRepaint() bool                        { return false }

// Context is the per-host rendering context a document runs against.
type Context struct {
	Mode    ContextMode
	Width   float32
	Height  float32
	Density float32
	Paint   PaintContext

	doc   *Document
	state *State

	theme          int
	requestedTheme int

	opCount     int
	lastOpCount int

	// smallest positive repaint delay requested by operations, -1 when none
	repaint int
}

func NewContext(paint PaintContext, width, height, density float32) *Context {
	if paint == nil {
		paint = nopPaint{}
	}

	return &Context{
		Width:          width,
		Height:         height,
		Density:        density,
		Paint:          paint,
		theme:          ThemeUnspecified,
		requestedTheme: ThemeUnspecified,
		repaint:        -1,
	}
}

func (c *Context) bind(doc *Document) {
	c.doc = doc
	c.state = doc.state
	if c.Paint == nil {
		c.Paint = nopPaint{}
	}
}

func (c *Context) Document() *Document { return c.doc }

func (c *Context) State() *State { return c.state }

func (c *Context) Theme() int { return c.theme }

func (c *Context) SetTheme(theme int) { c.theme = theme }

func (c *Context) IncrementOpCount() { c.opCount++ }

func (c *Context) OpCount() int { return c.opCount }

func (c *Context) LastOpCount() int { return c.lastOpCount }

func (c *Context) ClearLastOpCount() {
	c.lastOpCount = 0
	c.opCount = 0
}

// RequestRepaint asks the host to paint again within delay milliseconds.
func (c *Context) RequestRepaint(delay int) {
	if delay <= 0 {
		delay = 1
	}
	if c.repaint < 0 || delay < c.repaint {
		c.repaint = delay
	}
}

func (c *Context) takeRepaint() int {
	r := c.repaint
	c.repaint = -1
	return r
}

func (c *Context) Text(id int) string { return c.state.Text(id) }

func (c *Context) Bitmap(id int) (Bitmap, bool) { return c.state.Bitmap(id) }

func (c *Context) Shader(id int) (*ShaderData, bool) { return c.state.Shader(id) }

func (c *Context) Float(id int) float32 { return c.state.Float(id) }

func (c *Context) Integer(id int) int32 { return c.state.Integer(id) }

// Resolve returns v, or the slot value when v is a variable reference.
func (c *Context) Resolve(v float32) float32 {
	if id, ok := VariableID(v); ok {
		return c.state.Float(id)
	}
	return v
}

// Listen subscribes op to every variable reference among values.
func (c *Context) Listen(op VariableSupport, values ...float32) {
	for _, v := range values {
		if id, ok := VariableID(v); ok {
			c.state.ListensTo(id, op)
		}
	}
}

// ApplyList runs one level of a paint walk: theme filtering, dirty refresh,
// op counting and isolated apply. Containers call it for their children.
func (c *Context) ApplyList(ops []Operation) {
	for _, op := range ops {
		if !c.selected(op) {
			continue
		}

		dirty := op.IsDirty()
		if !dirty && !paints(op) {
			continue
		}

		if dirty {
			op.MarkNotDirty()
			if vs, ok := op.(VariableSupport); ok {
				vs.UpdateVariables(c)
			}
		}

		c.opCount++
		c.apply(op)
	}
}

func (c *Context) selected(op Operation) bool {
	if c.requestedTheme == ThemeUnspecified {
		return true
	}
	if c.theme == c.requestedTheme || c.theme == ThemeUnspecified {
		return true
	}
	_, ok := op.(*Theme)
	return ok
}

func (c *Context) apply(op Operation) {
	if err := safeApply(c, op); err != nil && c.doc != nil {
		c.doc.applyFailed(op, err)
	}
}

func safeApply(ctx *Context, op Operation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", KindName(op), r)
		}
	}()

	return op.Apply(ctx)
}
