package internal

import (
	"fmt"
	"slices"
)

type LayoutKind int

const (
	LayoutBox LayoutKind = iota
	LayoutRow
	LayoutColumn
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutRow:
		return "Row"
	case LayoutColumn:
		return "Column"
	default:
		return "Box"
	}
}

// LayoutComponent stacks (Box), or lines up horizontally (Row) or
// vertically (Column), its child components.
type LayoutComponent struct {
	ComponentBase

	Kind LayoutKind

	modifiers *ComponentModifiers
	content   []Operation
	children  []Component

	widthMod, heightMod *SizeModifier
	defaultDim          DimensionType
	padding             *PaddingModifier
	animFrames          int

	clicks      []*ClickModifier
	touchDown   []*TouchDownModifier
	touchUp     []*TouchUpModifier
	touchCancel []*TouchCancelModifier

	inflated bool
}

func newLayout(id int, kind LayoutKind) LayoutComponent {
	return LayoutComponent{ComponentBase: newComponentBase(id), Kind: kind}
}

func NewBox(id int) *LayoutComponent {
	c := newLayout(id, LayoutBox)
	return &c
}

func NewRow(id int) *LayoutComponent {
	c := newLayout(id, LayoutRow)
	return &c
}

func NewColumn(id int) *LayoutComponent {
	c := newLayout(id, LayoutColumn)
	return &c
}

// Inflate sorts the raw child list into modifiers, content and child
// components. The resulting list is [modifiers, content..., children...].
func (c *LayoutComponent) Inflate() {
	if c.inflated {
		return
	}
	c.inflated = true

	mods := &ComponentModifiers{}
	c.content = nil
	c.children = nil

	for _, op := range c.list {
		switch o := op.(type) {
		case Component:
			c.children = append(c.children, o)
			continue
		case *SizeModifier:
			o.owner = &c.ComponentBase
			if o.Vertical {
				c.heightMod = o
			} else {
				c.widthMod = o
			}
		case *PaddingModifier:
			c.padding = o
		case *BackgroundModifier:
			o.owner = &c.ComponentBase
		case *AnimateBoundsModifier:
			c.animFrames = o.Frames
		case *ClickModifier:
			c.clicks = append(c.clicks, o)
		case *TouchDownModifier:
			c.touchDown = append(c.touchDown, o)
		case *TouchUpModifier:
			c.touchUp = append(c.touchUp, o)
		case *TouchCancelModifier:
			c.touchCancel = append(c.touchCancel, o)
		case Modifier:
		default:
			c.content = append(c.content, op)
			continue
		}
		mods.Append(op)
	}

	c.modifiers = mods
	c.rebuildList()
}

func (c *LayoutComponent) rebuildList() {
	list := make([]Operation, 0, 1+len(c.content)+len(c.children))
	list = append(list, c.modifiers)
	list = append(list, c.content...)
	for _, child := range c.children {
		list = append(list, child)
	}
	c.list = list
}

func (c *LayoutComponent) Children() []Operation { return c.list }

// ChildComponents returns the direct child components.
func (c *LayoutComponent) ChildComponents() []Component { return c.children }

func (c *LayoutComponent) addChild(child Component) {
	c.children = append(c.children, child)
	c.rebuildList()
}

func (c *LayoutComponent) removeChild(child Component) bool {
	i := slices.Index(c.children, child)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	c.rebuildList()
	return true
}

func (c *LayoutComponent) Dimension(vertical bool) DimensionType {
	m := c.widthMod
	if vertical {
		m = c.heightMod
	}
	if m == nil {
		return c.defaultDim
	}
	return m.Type
}

func (c *LayoutComponent) fixed(vertical bool) float32 {
	m := c.widthMod
	if vertical {
		m = c.heightMod
	}
	if m == nil {
		return 0
	}
	return m.value
}

func (c *LayoutComponent) paddings() (left, top, right, bottom float32) {
	if c.padding == nil {
		return 0, 0, 0, 0
	}
	return c.padding.Left, c.padding.Top, c.padding.Right, c.padding.Bottom
}

func (c *LayoutComponent) Measure(ctx *Context, maxW, maxH float32) {
	pl, pt, pr, pb := c.paddings()

	availW, availH := maxW, maxH
	if c.Dimension(false) == DimensionFixed {
		availW = c.fixed(false)
	}
	if c.Dimension(true) == DimensionFixed {
		availH = c.fixed(true)
	}
	innerW, innerH := max(0, availW-pl-pr), max(0, availH-pt-pb)

	var contentW, contentH float32
	switch c.Kind {
	case LayoutRow:
		contentW, contentH = measureLine(ctx, c.children, innerW, innerH, false)
	case LayoutColumn:
		contentW, contentH = measureLine(ctx, c.children, innerW, innerH, true)
	default:
		for _, child := range c.children {
			child.Measure(ctx, innerW, innerH)
			b := child.Base()
			contentW, contentH = max(contentW, b.width), max(contentH, b.height)
		}
	}

	c.ComponentBase.width = resolveDimension(c.Dimension(false), c.fixed(false), contentW+pl+pr, maxW)
	c.ComponentBase.height = resolveDimension(c.Dimension(true), c.fixed(true), contentH+pt+pb, maxH)
}

func resolveDimension(t DimensionType, fixed, content, limit float32) float32 {
	switch t {
	case DimensionFixed:
		return fixed
	case DimensionFill:
		return limit
	default:
		return min(content, limit)
	}
}

// measureLine measures children placed one after the other; fill children
// share what the others leave.
func measureLine(ctx *Context, children []Component, innerW, innerH float32, vertical bool) (w, h float32) {
	avail := innerW
	if vertical {
		avail = innerH
	}

	var used, cross float32
	measure := func(child Component, space float32) {
		if vertical {
			child.Measure(ctx, innerW, space)
		} else {
			child.Measure(ctx, space, innerH)
		}

		b := child.Base()
		if vertical {
			used += b.height
			cross = max(cross, b.width)
		} else {
			used += b.width
			cross = max(cross, b.height)
		}
	}

	var fills []Component
	for _, child := range children {
		if child.Dimension(vertical) == DimensionFill {
			fills = append(fills, child)
			continue
		}
		measure(child, max(0, avail-used))
	}

	if len(fills) > 0 {
		share := max(0, avail-used) / float32(len(fills))
		for _, child := range fills {
			measure(child, share)
		}
	}

	if vertical {
		return cross, used
	}
	return used, cross
}

// Arrange positions the component at (x, y) inside a parent content box
// whose surface origin is (originX, originY).
func (c *LayoutComponent) Arrange(ctx *Context, x, y, originX, originY float32) {
	if c.place(x, y, originX, originY, c.animFrames) {
		if r := c.root(); r != nil {
			r.startBoundsAnimation()
		}
	}

	pl, pt, _, _ := c.paddings()
	cx, cy := c.absX+pl, c.absY+pt

	var offset float32
	for _, child := range c.children {
		b := child.Base()
		switch c.Kind {
		case LayoutRow:
			child.Arrange(ctx, offset, 0, cx, cy)
			offset += b.width
		case LayoutColumn:
			child.Arrange(ctx, 0, offset, cx, cy)
			offset += b.height
		default:
			child.Arrange(ctx, 0, 0, cx, cy)
		}
	}

	if ctx.state != nil {
		c.publishValues(ctx.state)
	}
}

func (c *LayoutComponent) Apply(ctx *Context) error {
	if ctx.Mode != ModePaint || len(c.list) == 0 {
		return nil
	}

	b := c.paintBounds()
	pl, pt, _, _ := c.paddings()

	p := ctx.Paint
	p.Save()
	defer p.Restore()

	p.Translate(b.x, b.y)
	ctx.ApplyList(c.list[:1])
	p.Translate(pl, pt)
	ctx.ApplyList(c.list[1:])
	return nil
}

func (c *LayoutComponent) PaintsEveryFrame() bool { return true }

func (c *LayoutComponent) OnClick(ctx *Context, doc *Document, x, y float32) {
	if x == NoCoordinate && y == NoCoordinate {
		for _, m := range c.clicks {
			runActions(ctx, doc, c, m.list, x, y)
		}
		return
	}

	if !c.Contains(x, y) {
		return
	}

	for _, child := range slices.Clone(c.children) {
		child.OnClick(ctx, doc, x, y)
	}
	for _, m := range c.clicks {
		runActions(ctx, doc, c, m.list, x, y)
	}
}

func (c *LayoutComponent) OnTouchDown(ctx *Context, doc *Document, x, y float32) {
	if !c.Contains(x, y) {
		return
	}

	for _, child := range slices.Clone(c.children) {
		child.OnTouchDown(ctx, doc, x, y)
	}

	if len(c.touchDown)+len(c.touchUp)+len(c.touchCancel) == 0 {
		return
	}
	for _, m := range c.touchDown {
		runActions(ctx, doc, c, m.list, x, y)
	}
	doc.AppliedTouchOperation(c)
}

func (c *LayoutComponent) OnTouchDrag(ctx *Context, _ *Document, _, _ float32) {
	ctx.RequestRepaint(1)
}

func (c *LayoutComponent) OnTouchUp(ctx *Context, doc *Document, x, y, _, _ float32) {
	for _, m := range c.touchUp {
		runActions(ctx, doc, c, m.list, x, y)
	}
}

func (c *LayoutComponent) OnTouchCancel(ctx *Context, doc *Document, x, y float32) {
	for _, m := range c.touchCancel {
		runActions(ctx, doc, c, m.list, x, y)
	}
}

func (c *LayoutComponent) HasTouchListeners() bool {
	if len(c.touchDown)+len(c.touchUp)+len(c.touchCancel) > 0 {
		return true
	}
	for _, child := range c.children {
		if child.HasTouchListeners() {
			return true
		}
	}
	return false
}

func (c *LayoutComponent) String() string {
	b := &c.ComponentBase
	return fmt.Sprintf("%s [%d] x=%v y=%v w=%v h=%v", c.Kind, b.id, b.x, b.y, b.width, b.height)
}

type LayoutState int

const (
	LayoutNotMeasured LayoutState = iota
	LayoutMeasured
)

// RootLayoutComponent is the top of the component tree. It fills the
// surface and owns the measure state and pending bounds animations.
type RootLayoutComponent struct {
	LayoutComponent

	layoutState          LayoutState
	needsBoundsAnimation bool
	animating            bool

	// surface size of the last layout
	layoutW, layoutH float32
}

func NewRootLayout(id int) *RootLayoutComponent {
	r := &RootLayoutComponent{LayoutComponent: newLayout(id, LayoutBox)}
	r.defaultDim = DimensionFill
	return r
}

func (r *RootLayoutComponent) LayoutState() LayoutState { return r.layoutState }

func (r *RootLayoutComponent) InvalidateMeasure() { r.layoutState = LayoutNotMeasured }

func (r *RootLayoutComponent) NeedsMeasure() bool { return r.layoutState != LayoutMeasured }

// Layout measures and arranges the tree in a width by height surface.
func (r *RootLayoutComponent) Layout(ctx *Context, width, height float32) {
	r.Measure(ctx, width, height)
	r.Arrange(ctx, 0, 0, 0, 0)
	r.layoutW, r.layoutH = width, height
	r.layoutState = LayoutMeasured
}

// SizeChanged reports whether the surface differs from the one of the last layout.
func (r *RootLayoutComponent) SizeChanged(width, height float32) bool {
	return width != r.layoutW || height != r.layoutH
}

func (r *RootLayoutComponent) startBoundsAnimation() {
	r.needsBoundsAnimation = true
	r.animating = true
}

func (r *RootLayoutComponent) NeedsBoundsAnimation() bool { return r.needsBoundsAnimation }

func (r *RootLayoutComponent) ClearNeedsBoundsAnimation() { r.needsBoundsAnimation = false }

// NeedsRepaint reports a bounds animation still in flight.
func (r *RootLayoutComponent) NeedsRepaint() bool { return r.animating }

// AnimatingBounds advances every running bounds animation by one frame.
func (r *RootLayoutComponent) AnimatingBounds(ctx *Context) error {
	if !r.animating {
		return orderingError("no bounds animation in progress")
	}

	running := false
	if r.arena != nil {
		for c := range r.arena.All() {
			b := c.Base()
			if b.anim == nil {
				continue
			}
			if b.anim.step() {
				running = true
			} else {
				b.anim = nil
			}
		}
	}

	if running {
		r.needsBoundsAnimation = true
	} else {
		r.animating = false
	}
	return nil
}

func (r *RootLayoutComponent) String() string {
	b := &r.ComponentBase
	return fmt.Sprintf("Root [%d] w=%v h=%v", b.id, b.width, b.height)
}
