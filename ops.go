package opdoc

import "github.com/AnatoleLucet/opdoc/internal"

// Operations a document stream is made of.
type (
	ContainerEnd        = internal.ContainerEnd
	Group               = internal.Group
	Header              = internal.Header
	RootContentBehavior = internal.RootContentBehavior
	TextData            = internal.TextData
	BitmapData          = internal.BitmapData
	FloatConstant       = internal.FloatConstant
	IntegerConstant     = internal.IntegerConstant
	LongConstant        = internal.LongConstant
	DataListFloat       = internal.DataListFloat
	ColorConstant       = internal.ColorConstant
	NamedVariable       = internal.NamedVariable
	TextFromInteger     = internal.TextFromInteger
	Theme               = internal.Theme
	ShaderData          = internal.ShaderData
	ComponentValue      = internal.ComponentValue
	DrawRect            = internal.DrawRect
	DrawText            = internal.DrawText
	FloatExpression     = internal.FloatExpression
	IntegerExpression   = internal.IntegerExpression
	ClickAreaOp         = internal.ClickAreaOp
	TouchValue          = internal.TouchValue

	LayoutComponent     = internal.LayoutComponent
	RootLayoutComponent = internal.RootLayoutComponent

	SizeModifier          = internal.SizeModifier
	PaddingModifier       = internal.PaddingModifier
	BackgroundModifier    = internal.BackgroundModifier
	AnimateBoundsModifier = internal.AnimateBoundsModifier
	ClickModifier         = internal.ClickModifier
	TouchDownModifier     = internal.TouchDownModifier
	TouchUpModifier       = internal.TouchUpModifier
	TouchCancelModifier   = internal.TouchCancelModifier

	HostAction                   = internal.HostAction
	HostIDAction                 = internal.HostIDAction
	ValueIntegerChange           = internal.ValueIntegerChange
	ValueFloatChange             = internal.ValueFloatChange
	ValueIntegerExpressionChange = internal.ValueIntegerExpressionChange
	HapticAction                 = internal.HapticAction

	DimensionType = internal.DimensionType
	IntToken      = internal.IntToken
)

const (
	DimensionWrap  = internal.DimensionWrap
	DimensionFixed = internal.DimensionFixed
	DimensionFill  = internal.DimensionFill

	// NoID lets the document pick a component id.
	NoID = internal.NoID
)

// Named variable types.
const (
	NamedString = internal.NamedString
	NamedFloat  = internal.NamedFloat
	NamedColor  = internal.NamedColor
	NamedImage  = internal.NamedImage
	NamedInt    = internal.NamedInt
	NamedLong   = internal.NamedLong
)

// End closes the innermost open container.
func End() Operation { return &internal.ContainerEnd{} }

func NewGroup() *Group { return internal.NewGroup() }

func NewTextData(id int, text string) *TextData { return internal.NewTextData(id, text) }

func NewFloatConstant(id int, v float32) *FloatConstant { return internal.NewFloatConstant(id, v) }

func NewIntegerConstant(id int, v int32) *IntegerConstant { return internal.NewIntegerConstant(id, v) }

func NewFloatExpression(id int, program ...float32) *FloatExpression {
	return internal.NewFloatExpression(id, program...)
}

func NewIntegerExpression(id int, tokens ...IntToken) *IntegerExpression {
	return internal.NewIntegerExpression(id, tokens...)
}

func NewRootLayout(id int) *RootLayoutComponent { return internal.NewRootLayout(id) }

func NewBox(id int) *LayoutComponent    { return internal.NewBox(id) }
func NewRow(id int) *LayoutComponent    { return internal.NewRow(id) }
func NewColumn(id int) *LayoutComponent { return internal.NewColumn(id) }

func NewWidthModifier(t DimensionType, v float32) *SizeModifier {
	return internal.NewWidthModifier(t, v)
}

func NewHeightModifier(t DimensionType, v float32) *SizeModifier {
	return internal.NewHeightModifier(t, v)
}

// Var references variable slot id wherever an operation takes a float.
func Var(id int) float32 { return internal.AsVariable(id) }

// FloatOp returns the float expression operator called name.
func FloatOp(name string) (float32, bool) { return internal.FloatOperator(name) }

// IntOp returns the integer expression operator called name.
func IntOp(name string) (IntToken, bool) { return internal.IntOperator(name) }

func IntLiteral(v int32) IntToken { return internal.IntLiteral(v) }

func IntVariable(id int) IntToken { return internal.IntVariable(id) }
