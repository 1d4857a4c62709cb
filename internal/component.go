package internal

import "iter"

// NoID marks a component whose id is assigned after inflation.
const NoID = -1

// Handle is a component's index in its document arena.
type Handle int32

const NoHandle Handle = -1

// Arena owns every component of a document. Parent links are handles into
// it, so the tree itself only holds downward references.
type Arena struct {
	items []Component
}

func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) add(c Component) Handle {
	h := Handle(len(a.items))
	a.items = append(a.items, c)

	b := c.Base()
	b.arena = a
	b.handle = h
	return h
}

func (a *Arena) truncate(n int) {
	clear(a.items[n:])
	a.items = a.items[:n]
}

func (a *Arena) release(h Handle) {
	if h >= 0 && int(h) < len(a.items) {
		a.items[h] = nil
	}
}

func (a *Arena) Get(h Handle) Component {
	if h < 0 || int(h) >= len(a.items) {
		return nil
	}
	return a.items[h]
}

// All yields live components in creation order, which is stream pre-order.
func (a *Arena) All() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for _, c := range a.items {
			if c == nil {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Component is a container that takes part in layout, painting and hit testing.
type Component interface {
	Container

	Base() *ComponentBase
	Inflate()

	Dimension(vertical bool) DimensionType
	Measure(ctx *Context, maxWidth, maxHeight float32)
	Arrange(ctx *Context, x, y, originX, originY float32)

	OnClick(ctx *Context, doc *Document, x, y float32)
	OnTouchDown(ctx *Context, doc *Document, x, y float32)
	OnTouchDrag(ctx *Context, doc *Document, x, y float32)
	OnTouchUp(ctx *Context, doc *Document, x, y, dx, dy float32)
	OnTouchCancel(ctx *Context, doc *Document, x, y float32)
	HasTouchListeners() bool
}

type rect struct {
	x, y, w, h float32
}

type boundsAnimation struct {
	from, to rect
	frame    int
	frames   int
}

// step advances one frame and reports whether frames remain.
func (a *boundsAnimation) step() bool {
	a.frame++
	return a.frame < a.frames
}

func (a *boundsAnimation) current() rect {
	t := float32(a.frame) / float32(a.frames)
	lerp := func(from, to float32) float32 { return from + (to-from)*t }
	return rect{
		x: lerp(a.from.x, a.to.x),
		y: lerp(a.from.y, a.to.y),
		w: lerp(a.from.w, a.to.w),
		h: lerp(a.from.h, a.to.h),
	}
}

type ComponentBase struct {
	ContainerBase

	id int

	handle Handle
	parent Handle
	arena  *Arena

	// position relative to the parent's content box
	x, y          float32
	width, height float32
	// position in surface coordinates, used for hit testing
	absX, absY float32

	arranged    rect
	hasArranged bool
	anim        *boundsAnimation

	values []*ComponentValue
}

func newComponentBase(id int) ComponentBase {
	return ComponentBase{id: id, handle: NoHandle, parent: NoHandle}
}

func (c *ComponentBase) Base() *ComponentBase { return c }

func (c *ComponentBase) ComponentID() int      { return c.id }
func (c *ComponentBase) SetComponentID(id int) { c.id = id }

func (c *ComponentBase) Handle() Handle { return c.handle }

// Parent resolves the enclosing component through the arena.
func (c *ComponentBase) Parent() Component {
	if c.arena == nil {
		return nil
	}
	return c.arena.Get(c.parent)
}

func (c *ComponentBase) X() float32      { return c.x }
func (c *ComponentBase) Y() float32      { return c.y }
func (c *ComponentBase) Width() float32  { return c.width }
func (c *ComponentBase) Height() float32 { return c.height }

// Contains tests surface coordinates against the laid out bounds, half-open.
func (c *ComponentBase) Contains(x, y float32) bool {
	return x >= c.absX && x < c.absX+c.width && y >= c.absY && y < c.absY+c.height
}

func (c *ComponentBase) AddComponentValue(v *ComponentValue) {
	c.values = append(c.values, v)
}

// InvalidateMeasure forces a new layout of the whole tree on the next frame.
func (c *ComponentBase) InvalidateMeasure() {
	if r := c.root(); r != nil {
		r.InvalidateMeasure()
	}
}

func (c *ComponentBase) root() *RootLayoutComponent {
	if c.arena == nil {
		return nil
	}

	cur := c
	for cur.parent != NoHandle {
		p := cur.arena.Get(cur.parent)
		if p == nil {
			break
		}
		cur = p.Base()
	}

	r, _ := cur.arena.Get(cur.handle).(*RootLayoutComponent)
	return r
}

// place records the arranged position and reports whether a bounds
// animation started.
func (c *ComponentBase) place(x, y, originX, originY float32, frames int) bool {
	c.x, c.y = x, y
	c.absX, c.absY = originX+x, originY+y

	next := rect{x: x, y: y, w: c.width, h: c.height}
	started := false

	if frames > 0 && c.hasArranged && next != c.arranged {
		from := c.arranged
		if c.anim != nil {
			from = c.anim.current()
		}
		c.anim = &boundsAnimation{from: from, to: next, frames: frames}
		started = true
	}

	c.arranged = next
	c.hasArranged = true
	return started
}

func (c *ComponentBase) paintBounds() rect {
	if c.anim != nil {
		return c.anim.current()
	}
	return rect{x: c.x, y: c.y, w: c.width, h: c.height}
}

func (c *ComponentBase) publishValues(state *State) {
	for _, v := range c.values {
		switch v.Type {
		case ComponentValueWidth:
			state.SetFloat(v.ValueID, c.width)
		case ComponentValueHeight:
			state.SetFloat(v.ValueID, c.height)
		case ComponentValuePosX:
			state.SetFloat(v.ValueID, c.absX)
		case ComponentValuePosY:
			state.SetFloat(v.ValueID, c.absY)
		}
	}
}
