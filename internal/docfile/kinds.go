package docfile

import (
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/opdoc/internal"
)

type decodeFunc func(b *builder, v *yaml.Node) error

var kinds map[string]decodeFunc

func init() {
	kinds = map[string]decodeFunc{
		"header":             header,
		"content_behavior":   contentBehavior,
		"text":               text,
		"float":              float,
		"integer":            integer,
		"long":               long,
		"float_list":         floatList,
		"color":              color,
		"named":              namedVariable,
		"text_from_integer":  textFromInteger,
		"theme":              theme,
		"shader":             shader,
		"component_value":    componentValue,
		"rect":               rect,
		"draw_text":          drawText,
		"float_expression":   floatExpression,
		"integer_expression": integerExpression,
		"click_area":         clickArea,
		"touch_value":        touchValue,

		"group":  group,
		"root":   component(func(id int) internal.Operation { return internal.NewRootLayout(id) }),
		"box":    component(func(id int) internal.Operation { return internal.NewBox(id) }),
		"row":    component(func(id int) internal.Operation { return internal.NewRow(id) }),
		"column": component(func(id int) internal.Operation { return internal.NewColumn(id) }),

		"width":           size(false),
		"height":          size(true),
		"padding":         padding,
		"background":      background,
		"animate_bounds":  animateBounds,
		"on_click":        actions(func() internal.Operation { return &internal.ClickModifier{} }),
		"on_touch_down":   actions(func() internal.Operation { return &internal.TouchDownModifier{} }),
		"on_touch_up":     actions(func() internal.Operation { return &internal.TouchUpModifier{} }),
		"on_touch_cancel": actions(func() internal.Operation { return &internal.TouchCancelModifier{} }),

		"host_action":            hostAction,
		"host_id_action":         hostIDAction,
		"set_integer":            setInteger,
		"set_float":              setFloat,
		"set_integer_expression": setIntegerExpression,
		"haptic":                 haptic,
	}
}

var (
	themes = map[string]int{
		"unspecified": internal.ThemeUnspecified,
		"dark":        internal.ThemeDark,
		"light":       internal.ThemeLight,
	}

	sizings = map[string]int{
		"layout": internal.SizingLayout,
		"scale":  internal.SizingScale,
	}

	scaleModes = map[string]int{
		"inside":      internal.ScaleInside,
		"fill_width":  internal.ScaleFillWidth,
		"fill_height": internal.ScaleFillHeight,
		"fit":         internal.ScaleFit,
		"crop":        internal.ScaleCrop,
		"fill_bounds": internal.ScaleFillBounds,
	}

	alignments = map[string]int{
		"top":                 internal.AlignmentTop,
		"center_vertically":   internal.AlignmentVerticalCenter,
		"bottom":              internal.AlignmentBottom,
		"start":               internal.AlignmentStart,
		"center_horizontally": internal.AlignmentHorizontalCenter,
		"end":                 internal.AlignmentEnd,
		"center":              internal.AlignmentCenter,
	}

	scrolls = map[string]int{
		"none":       internal.ScrollNone,
		"horizontal": internal.ScrollHorizontal,
		"vertical":   internal.ScrollVertical,
	}

	namedTypes = map[string]int{
		"string":  internal.NamedString,
		"float":   internal.NamedFloat,
		"color":   internal.NamedColor,
		"image":   internal.NamedImage,
		"integer": internal.NamedInt,
		"long":    internal.NamedLong,
	}

	componentValues = map[string]int{
		"width":  internal.ComponentValueWidth,
		"height": internal.ComponentValueHeight,
		"x":      internal.ComponentValuePosX,
		"y":      internal.ComponentValuePosY,
	}
)

func header(b *builder, v *yaml.Node) error {
	var f struct {
		Major, Minor, Patch int
		Width, Height       int
		Capabilities        int64
		Description         string
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.Header{
		Major:        f.Major,
		Minor:        f.Minor,
		Patch:        f.Patch,
		Width:        f.Width,
		Height:       f.Height,
		Capabilities: f.Capabilities,
		Description:  f.Description,
	})
	return nil
}

func contentBehavior(b *builder, v *yaml.Node) error {
	var f struct {
		Scroll, Alignment, Sizing, Mode yaml.Node
	}
	if err := v.Decode(&f); err != nil {
		return err
	}

	op := &internal.RootContentBehavior{}
	fields := []struct {
		node   *yaml.Node
		names  map[string]int
		target *int
	}{
		{&f.Scroll, scrolls, &op.Scroll},
		{&f.Alignment, alignments, &op.Alignment},
		{&f.Sizing, sizings, &op.Sizing},
		{&f.Mode, scaleModes, &op.Mode},
	}
	for _, field := range fields {
		if field.node.Kind == 0 {
			continue
		}
		n, err := named(field.node, field.names)
		if err != nil {
			return err
		}
		*field.target = n
	}

	b.add(op)
	return nil
}

func text(b *builder, v *yaml.Node) error {
	var f struct {
		ID    int
		Value string
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(internal.NewTextData(f.ID, f.Value))
	return nil
}

func float(b *builder, v *yaml.Node) error {
	var f struct {
		ID    int
		Value float32
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(internal.NewFloatConstant(f.ID, f.Value))
	return nil
}

func integer(b *builder, v *yaml.Node) error {
	var f struct {
		ID    int
		Value int32
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(internal.NewIntegerConstant(f.ID, f.Value))
	return nil
}

func long(b *builder, v *yaml.Node) error {
	var f struct {
		ID    int
		Value int64
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.LongConstant{ID: f.ID, Value: f.Value})
	return nil
}

func floatList(b *builder, v *yaml.Node) error {
	var f struct {
		ID     int
		Values []float32
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.DataListFloat{ID: f.ID, Values: f.Values})
	return nil
}

func color(b *builder, v *yaml.Node) error {
	var f struct {
		ID    int
		Color Color
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.ColorConstant{ID: f.ID, Color: uint32(f.Color)})
	return nil
}

func namedVariable(b *builder, v *yaml.Node) error {
	var f struct {
		ID   int
		Name string
		Type yaml.Node
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	typ, err := named(&f.Type, namedTypes)
	if err != nil {
		return err
	}
	b.add(&internal.NamedVariable{VarID: f.ID, Type: typ, Name: f.Name})
	return nil
}

func textFromInteger(b *builder, v *yaml.Node) error {
	var f struct {
		ID  int
		Int int
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.TextFromInteger{ID: f.ID, IntID: f.Int})
	return nil
}

func theme(b *builder, v *yaml.Node) error {
	t, err := named(v, themes)
	if err != nil {
		return err
	}
	b.add(&internal.Theme{Theme: t})
	return nil
}

func shader(b *builder, v *yaml.Node) error {
	var f struct {
		ID   int
		Text int
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.ShaderData{ID: f.ID, ShaderTextID: f.Text})
	return nil
}

func componentValue(b *builder, v *yaml.Node) error {
	var f struct {
		ID        int
		Component int
		Type      yaml.Node
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	typ, err := named(&f.Type, componentValues)
	if err != nil {
		return err
	}
	b.add(&internal.ComponentValue{Type: typ, ComponentID: f.Component, ValueID: f.ID})
	return nil
}

func rect(b *builder, v *yaml.Node) error {
	var f struct {
		Left, Top, Right, Bottom Number
		Color                    Color
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.DrawRect{
		Left:   float32(f.Left),
		Top:    float32(f.Top),
		Right:  float32(f.Right),
		Bottom: float32(f.Bottom),
		Color:  uint32(f.Color),
	})
	return nil
}

func drawText(b *builder, v *yaml.Node) error {
	var f struct {
		Text  int
		X, Y  Number
		Color Color
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.DrawText{TextID: f.Text, X: float32(f.X), Y: float32(f.Y), Color: uint32(f.Color)})
	return nil
}

func floatExpression(b *builder, v *yaml.Node) error {
	var f struct {
		ID      int
		Program floatProgram
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(internal.NewFloatExpression(f.ID, f.Program...))
	return nil
}

func integerExpression(b *builder, v *yaml.Node) error {
	var f struct {
		ID      int
		Program intProgram
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	if len(f.Program) > 32 {
		return errProgramTooLong
	}
	b.add(internal.NewIntegerExpression(f.ID, f.Program...))
	return nil
}

func clickArea(b *builder, v *yaml.Node) error {
	var f struct {
		ID                       int
		Description              string
		Left, Top, Right, Bottom Number
		Metadata                 string
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.ClickAreaOp{
		ID:          f.ID,
		Description: f.Description,
		Left:        float32(f.Left),
		Top:         float32(f.Top),
		Right:       float32(f.Right),
		Bottom:      float32(f.Bottom),
		Metadata:    f.Metadata,
	})
	return nil
}

func touchValue(b *builder, v *yaml.Node) error {
	var f struct {
		ID       int
		Vertical bool
		Initial  float32
		Min, Max float32
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.TouchValue{ID: f.ID, Vertical: f.Vertical, Initial: f.Initial, Min: f.Min, Max: f.Max})
	return nil
}

func group(b *builder, v *yaml.Node) error {
	var f struct {
		Ops []Node
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	return b.container(internal.NewGroup(), f.Ops)
}

func component(create func(id int) internal.Operation) decodeFunc {
	return func(b *builder, v *yaml.Node) error {
		var f struct {
			ID  *int
			Ops []Node
		}
		if err := v.Decode(&f); err != nil {
			return err
		}

		id := internal.NoID
		if f.ID != nil {
			id = *f.ID
		}
		return b.container(create(id), f.Ops)
	}
}

func size(vertical bool) decodeFunc {
	return func(b *builder, v *yaml.Node) error {
		var d Dimension
		if err := v.Decode(&d); err != nil {
			return err
		}
		if vertical {
			b.add(internal.NewHeightModifier(d.Type, float32(d.Value)))
		} else {
			b.add(internal.NewWidthModifier(d.Type, float32(d.Value)))
		}
		return nil
	}
}

// padding is either one value for every side or a mapping of sides.
func padding(b *builder, v *yaml.Node) error {
	if v.Kind == yaml.ScalarNode {
		var all float32
		if err := v.Decode(&all); err != nil {
			return err
		}
		b.add(&internal.PaddingModifier{Left: all, Top: all, Right: all, Bottom: all})
		return nil
	}

	var f struct {
		Left, Top, Right, Bottom float32
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.PaddingModifier{Left: f.Left, Top: f.Top, Right: f.Right, Bottom: f.Bottom})
	return nil
}

func background(b *builder, v *yaml.Node) error {
	var c Color
	if err := v.Decode(&c); err != nil {
		return err
	}
	b.add(&internal.BackgroundModifier{Color: uint32(c)})
	return nil
}

func animateBounds(b *builder, v *yaml.Node) error {
	var frames int
	if err := v.Decode(&frames); err != nil {
		return err
	}
	b.add(&internal.AnimateBoundsModifier{Frames: frames})
	return nil
}

// actions decodes a modifier holding a list of actions.
func actions(create func() internal.Operation) decodeFunc {
	return func(b *builder, v *yaml.Node) error {
		var ops []Node
		if err := v.Decode(&ops); err != nil {
			return err
		}
		return b.container(create(), ops)
	}
}

func hostAction(b *builder, v *yaml.Node) error {
	var f struct {
		Name        string
		Payload     any
		PayloadText int `yaml:"payload_text"`
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.HostAction{Name: f.Name, Payload: f.Payload, PayloadTextID: f.PayloadText})
	return nil
}

func hostIDAction(b *builder, v *yaml.Node) error {
	var f struct {
		ID       int
		Metadata string
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.HostIDAction{ID: f.ID, Metadata: f.Metadata})
	return nil
}

func setInteger(b *builder, v *yaml.Node) error {
	var f struct {
		ID    int
		Value int32
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.ValueIntegerChange{Target: f.ID, Value: f.Value})
	return nil
}

func setFloat(b *builder, v *yaml.Node) error {
	var f struct {
		ID    int
		Value float32
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.ValueFloatChange{Target: f.ID, Value: f.Value})
	return nil
}

func setIntegerExpression(b *builder, v *yaml.Node) error {
	var f struct {
		ID         int
		Expression int64
	}
	if err := v.Decode(&f); err != nil {
		return err
	}
	b.add(&internal.ValueIntegerExpressionChange{Target: f.ID, ExpressionID: f.Expression})
	return nil
}

func haptic(b *builder, v *yaml.Node) error {
	var effect int
	if err := v.Decode(&effect); err != nil {
		return err
	}
	b.add(&internal.HapticAction{Effect: effect})
	return nil
}
