package internal

// Root content behavior values.
const (
	ScrollNone       = 0
	ScrollHorizontal = 1
	ScrollVertical   = 2

	SizingLayout = 1
	SizingScale  = 2

	AlignmentTop              = 0x01
	AlignmentVerticalCenter   = 0x02
	AlignmentBottom           = 0x04
	AlignmentStart            = 0x10
	AlignmentHorizontalCenter = 0x20
	AlignmentEnd              = 0x40
	AlignmentCenter           = AlignmentHorizontalCenter | AlignmentVerticalCenter

	ScaleInside     = 1
	ScaleFillWidth  = 2
	ScaleFillHeight = 3
	ScaleFit        = 4
	ScaleCrop       = 5
	ScaleFillBounds = 6
)

// ContentBehavior describes how a document of a declared size is fitted
// into a surface.
type ContentBehavior struct {
	Width  float32
	Height float32

	Scroll    int
	Alignment int
	Sizing    int
	Mode      int
}

// ComputeScale returns the scale factors fitting the content into a w by h surface.
func (b ContentBehavior) ComputeScale(w, h float32) (sx, sy float32) {
	if b.Width <= 0 || b.Height <= 0 {
		return 1, 1
	}

	scaleX := w / b.Width
	scaleY := h / b.Height

	switch b.Mode {
	case ScaleInside:
		s := min(1, scaleX, scaleY)
		return s, s
	case ScaleFit:
		s := min(scaleX, scaleY)
		return s, s
	case ScaleFillWidth:
		return scaleX, scaleX
	case ScaleFillHeight:
		return scaleY, scaleY
	case ScaleCrop:
		s := max(scaleX, scaleY)
		return s, s
	case ScaleFillBounds:
		return scaleX, scaleY
	}
	return 1, 1
}

// ComputeTranslate returns the offset aligning the scaled content in a w by h surface.
func (b ContentBehavior) ComputeTranslate(w, h, sx, sy float32) (tx, ty float32) {
	contentW := b.Width * sx
	contentH := b.Height * sy

	switch b.Alignment & 0xF0 {
	case AlignmentHorizontalCenter:
		tx = (w - contentW) / 2
	case AlignmentEnd:
		tx = w - contentW
	}

	switch b.Alignment & 0x0F {
	case AlignmentVerticalCenter:
		ty = (h - contentH) / 2
	case AlignmentBottom:
		ty = h - contentH
	}

	return tx, ty
}
