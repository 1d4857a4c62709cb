package internal

import (
	"fmt"
	"slices"
	"strconv"
)

// PatchKind groups the operation kinds a delta document can update.
type PatchKind int

const (
	PatchText PatchKind = iota
	PatchBitmap
	PatchFloat
	PatchInteger
	PatchLong
	PatchFloatList
)

type PatchKey struct {
	Kind PatchKind
	ID   int
}

// Patchable is implemented by leaf data operations that ApplyUpdate can refresh in place.
type Patchable interface {
	Operation
	PatchKey() PatchKey
	Update(from Operation)
}

// Header declares the document's version, size and capabilities.
type Header struct {
	OpBase

	Major, Minor, Patch int
	Width, Height       int
	Capabilities        int64
	Description         string
}

func (h *Header) Apply(ctx *Context) error {
	if ctx.Mode == ModeData && ctx.doc != nil {
		ctx.doc.SetWidth(h.Width)
		ctx.doc.SetHeight(h.Height)
		if h.Description != "" {
			ctx.doc.contentDescription = h.Description
		}
	}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf("Header v%d.%d.%d %dx%d", h.Major, h.Minor, h.Patch, h.Width, h.Height)
}

// RootContentBehavior declares how the document fits its surface.
type RootContentBehavior struct {
	OpBase

	Scroll    int
	Alignment int
	Sizing    int
	Mode      int
}

func (r *RootContentBehavior) Apply(ctx *Context) error {
	if ctx.doc != nil {
		ctx.doc.SetRootContentBehavior(r.Scroll, r.Alignment, r.Sizing, r.Mode)
	}
	return nil
}

func (r *RootContentBehavior) String() string {
	return fmt.Sprintf("RootContentBehavior scroll=%d alignment=%#x sizing=%d mode=%d", r.Scroll, r.Alignment, r.Sizing, r.Mode)
}

type TextData struct {
	OpBase

	ID   int
	Text string
}

func NewTextData(id int, text string) *TextData { return &TextData{ID: id, Text: text} }

func (t *TextData) Apply(ctx *Context) error {
	ctx.state.SetText(t.ID, t.Text)
	return nil
}

func (t *TextData) PatchKey() PatchKey { return PatchKey{PatchText, t.ID} }

func (t *TextData) Update(from Operation) {
	if o, ok := from.(*TextData); ok {
		t.Text = o.Text
	}
}

func (t *TextData) String() string { return fmt.Sprintf("TextData[%d] = %q", t.ID, t.Text) }

type BitmapData struct {
	OpBase

	ID     int
	Width  int
	Height int
	Pixels []byte
}

func (b *BitmapData) Apply(ctx *Context) error {
	if len(b.Pixels) != 0 && len(b.Pixels) < b.Width*b.Height {
		return fmt.Errorf("bitmap %d: %d bytes for %dx%d", b.ID, len(b.Pixels), b.Width, b.Height)
	}
	ctx.state.SetBitmap(b.ID, Bitmap{Width: b.Width, Height: b.Height, Pixels: b.Pixels})
	return nil
}

func (b *BitmapData) PatchKey() PatchKey { return PatchKey{PatchBitmap, b.ID} }

func (b *BitmapData) Update(from Operation) {
	if o, ok := from.(*BitmapData); ok {
		b.Width, b.Height = o.Width, o.Height
		b.Pixels = slices.Clone(o.Pixels)
	}
}

func (b *BitmapData) String() string {
	return fmt.Sprintf("BitmapData[%d] %dx%d", b.ID, b.Width, b.Height)
}

type FloatConstant struct {
	OpBase

	ID    int
	Value float32
}

func NewFloatConstant(id int, v float32) *FloatConstant { return &FloatConstant{ID: id, Value: v} }

func (f *FloatConstant) Apply(ctx *Context) error {
	ctx.state.SetFloat(f.ID, f.Value)
	return nil
}

func (f *FloatConstant) PatchKey() PatchKey { return PatchKey{PatchFloat, f.ID} }

func (f *FloatConstant) Update(from Operation) {
	if o, ok := from.(*FloatConstant); ok {
		f.Value = o.Value
	}
}

func (f *FloatConstant) String() string { return fmt.Sprintf("FloatConstant[%d] = %v", f.ID, f.Value) }

type IntegerConstant struct {
	OpBase

	ID    int
	Value int32
}

func NewIntegerConstant(id int, v int32) *IntegerConstant { return &IntegerConstant{ID: id, Value: v} }

func (i *IntegerConstant) Apply(ctx *Context) error {
	ctx.state.SetInteger(i.ID, i.Value)
	return nil
}

func (i *IntegerConstant) PatchKey() PatchKey { return PatchKey{PatchInteger, i.ID} }

func (i *IntegerConstant) Update(from Operation) {
	if o, ok := from.(*IntegerConstant); ok {
		i.Value = o.Value
	}
}

func (i *IntegerConstant) String() string {
	return fmt.Sprintf("IntegerConstant[%d] = %d", i.ID, i.Value)
}

type LongConstant struct {
	OpBase

	ID    int
	Value int64
}

func (l *LongConstant) Apply(ctx *Context) error {
	ctx.state.SetLong(l.ID, l.Value)
	return nil
}

func (l *LongConstant) PatchKey() PatchKey { return PatchKey{PatchLong, l.ID} }

func (l *LongConstant) Update(from Operation) {
	if o, ok := from.(*LongConstant); ok {
		l.Value = o.Value
	}
}

func (l *LongConstant) String() string { return fmt.Sprintf("LongConstant[%d] = %d", l.ID, l.Value) }

// DataListFloat publishes a float list as a collection slot.
type DataListFloat struct {
	OpBase

	ID     int
	Values []float32
}

func (d *DataListFloat) Apply(ctx *Context) error {
	ctx.state.SetCollection(d.ID, d)
	return nil
}

func (d *DataListFloat) Len() int                 { return len(d.Values) }
func (d *DataListFloat) FloatValue(i int) float32 { return d.Values[i] }
func (d *DataListFloat) Floats() []float32        { return d.Values }
func (d *DataListFloat) PatchKey() PatchKey       { return PatchKey{PatchFloatList, d.ID} }

func (d *DataListFloat) Update(from Operation) {
	if o, ok := from.(*DataListFloat); ok {
		d.Values = slices.Clone(o.Values)
	}
}

func (d *DataListFloat) String() string { return fmt.Sprintf("DataListFloat[%d] %v", d.ID, d.Values) }

type ColorConstant struct {
	OpBase

	ID    int
	Color uint32
}

func (c *ColorConstant) Apply(ctx *Context) error {
	ctx.state.SetColor(c.ID, c.Color)
	return nil
}

func (c *ColorConstant) String() string { return fmt.Sprintf("ColorConstant[%d] = #%08x", c.ID, c.Color) }

const (
	NamedString = 0
	NamedFloat  = 1
	NamedColor  = 2
	NamedImage  = 3
	NamedInt    = 4
	NamedLong   = 5
)

// NamedVariable exposes a slot to the host under a name.
type NamedVariable struct {
	OpBase

	VarID int
	Type  int
	Name  string
}

func (n *NamedVariable) Apply(ctx *Context) error {
	ctx.state.SetName(n.Name, n.VarID, n.Type)
	return nil
}

func (n *NamedVariable) String() string {
	return fmt.Sprintf("NamedVariable[%d] %q type=%d", n.VarID, n.Name, n.Type)
}

// TextFromInteger formats an integer slot into a text slot.
type TextFromInteger struct {
	OpBase

	ID    int
	IntID int
}

func (t *TextFromInteger) RegisterListening(ctx *Context) { ctx.state.ListensTo(t.IntID, t) }
func (t *TextFromInteger) UpdateVariables(*Context)       {}
func (t *TextFromInteger) Outputs() []int                 { return []int{t.ID} }

func (t *TextFromInteger) Apply(ctx *Context) error {
	ctx.state.SetText(t.ID, strconv.Itoa(int(ctx.state.Integer(t.IntID))))
	return nil
}

func (t *TextFromInteger) String() string {
	return fmt.Sprintf("TextFromInteger[%d] <- $%d", t.ID, t.IntID)
}

// Theme switches the active theme for the operations that follow it.
type Theme struct {
	OpBase

	Theme int
}

func (t *Theme) Apply(ctx *Context) error {
	ctx.SetTheme(t.Theme)
	return nil
}

func (t *Theme) PaintsEveryFrame() bool { return true }
func (t *Theme) String() string         { return fmt.Sprintf("Theme %d", t.Theme) }

// ShaderData declares a shader whose source lives in a text slot.
type ShaderData struct {
	OpBase

	ID           int
	ShaderTextID int

	disabled bool
}

func (s *ShaderData) Apply(ctx *Context) error {
	if s.disabled {
		ctx.state.setShader(s.ID, nil)
		return nil
	}
	ctx.state.setShader(s.ID, s)
	return nil
}

func (s *ShaderData) Enable(enabled bool) { s.disabled = !enabled }
func (s *ShaderData) Enabled() bool       { return !s.disabled }

func (s *ShaderData) String() string {
	return fmt.Sprintf("ShaderData[%d] text=%d enabled=%t", s.ID, s.ShaderTextID, !s.disabled)
}

const (
	ComponentValueWidth = iota
	ComponentValueHeight
	ComponentValuePosX
	ComponentValuePosY
)

// ComponentValue publishes a laid out dimension of a component into a float slot.
type ComponentValue struct {
	OpBase

	Type        int
	ComponentID int
	ValueID     int
}

func (*ComponentValue) Apply(*Context) error { return nil }

func (v *ComponentValue) String() string {
	return fmt.Sprintf("ComponentValue[%d] type=%d component=%d", v.ValueID, v.Type, v.ComponentID)
}

// DrawRect fills a rectangle; coordinates may be variable references.
type DrawRect struct {
	OpBase

	Left, Top, Right, Bottom float32
	Color                    uint32

	l, t, r, b float32
}

func (d *DrawRect) RegisterListening(ctx *Context) {
	ctx.Listen(d, d.Left, d.Top, d.Right, d.Bottom)
}

func (d *DrawRect) UpdateVariables(ctx *Context) {
	d.l, d.t = ctx.Resolve(d.Left), ctx.Resolve(d.Top)
	d.r, d.b = ctx.Resolve(d.Right), ctx.Resolve(d.Bottom)
}

func (d *DrawRect) Apply(ctx *Context) error {
	if ctx.Mode == ModePaint {
		ctx.Paint.DrawRect(d.l, d.t, d.r, d.b, d.Color)
	}
	return nil
}

func (d *DrawRect) PaintsEveryFrame() bool { return true }

func (d *DrawRect) String() string {
	return fmt.Sprintf("DrawRect %v %v %v %v #%08x", d.l, d.t, d.r, d.b, d.Color)
}

// DrawText draws the content of a text slot.
type DrawText struct {
	OpBase

	TextID int
	X, Y   float32
	Color  uint32

	x, y float32
}

func (d *DrawText) RegisterListening(ctx *Context) {
	ctx.state.ListensTo(d.TextID, d)
	ctx.Listen(d, d.X, d.Y)
}

func (d *DrawText) UpdateVariables(ctx *Context) {
	d.x, d.y = ctx.Resolve(d.X), ctx.Resolve(d.Y)
}

func (d *DrawText) Apply(ctx *Context) error {
	if ctx.Mode == ModePaint {
		ctx.Paint.DrawText(ctx.Text(d.TextID), d.x, d.y, d.Color)
	}
	return nil
}

func (d *DrawText) PaintsEveryFrame() bool { return true }

func (d *DrawText) String() string {
	return fmt.Sprintf("DrawText $%d at %v,%v", d.TextID, d.x, d.y)
}
