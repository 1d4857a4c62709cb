package internal

import "math"

// Float fields may carry a reference instead of a value: a quiet NaN whose
// low 22 mantissa bits hold a slot id or, above FloatOperatorOffset, an
// expression operator.
const (
	nanBits   = 0xFFC00000
	nanIDMask = 0x003FFFFF
)

func asNaN(id int) float32 {
	return math.Float32frombits(nanBits | uint32(id)&nanIDMask)
}

func nanID(v float32) (int, bool) {
	if !math.IsNaN(float64(v)) {
		return 0, false
	}
	return int(math.Float32bits(v) & nanIDMask), true
}

// AsVariable encodes a reference to slot id as a float value.
func AsVariable(id int) float32 {
	return asNaN(id)
}

// VariableID decodes a float produced by AsVariable.
func VariableID(v float32) (int, bool) {
	id, ok := nanID(v)
	if !ok || id == 0 || id >= FloatOperatorOffset {
		return 0, false
	}
	return id, true
}

// IsVariable reports whether v references a slot.
func IsVariable(v float32) bool {
	_, ok := VariableID(v)
	return ok
}
