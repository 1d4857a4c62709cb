package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FloatOperatorOffset is the first NaN body used for float operators.
const FloatOperatorOffset = 0x310000

type floatOperator struct {
	name  string
	arity int
	fn    func(a []float32) float32
}

// indexed by code - FloatOperatorOffset - 1
var floatOperators = []floatOperator{
	{"+", 2, func(a []float32) float32 { return a[0] + a[1] }},
	{"-", 2, func(a []float32) float32 { return a[0] - a[1] }},
	{"*", 2, func(a []float32) float32 { return a[0] * a[1] }},
	{"/", 2, func(a []float32) float32 { return a[0] / a[1] }},
	{"%", 2, func(a []float32) float32 { return float32(math.Mod(float64(a[0]), float64(a[1]))) }},
	{"min", 2, func(a []float32) float32 { return min(a[0], a[1]) }},
	{"max", 2, func(a []float32) float32 { return max(a[0], a[1]) }},
	{"pow", 2, func(a []float32) float32 { return float32(math.Pow(float64(a[0]), float64(a[1]))) }},
	{"sqrt", 1, func(a []float32) float32 { return float32(math.Sqrt(float64(a[0]))) }},
	{"abs", 1, func(a []float32) float32 { return float32(math.Abs(float64(a[0]))) }},
	{"sign", 1, func(a []float32) float32 {
		switch {
		case a[0] > 0:
			return 1
		case a[0] < 0:
			return -1
		}
		return 0
	}},
	{"floor", 1, func(a []float32) float32 { return float32(math.Floor(float64(a[0]))) }},
	{"ceil", 1, func(a []float32) float32 { return float32(math.Ceil(float64(a[0]))) }},
	{"round", 1, func(a []float32) float32 { return float32(math.Round(float64(a[0]))) }},
	{"sin", 1, func(a []float32) float32 { return float32(math.Sin(float64(a[0]))) }},
	{"cos", 1, func(a []float32) float32 { return float32(math.Cos(float64(a[0]))) }},
	{"tan", 1, func(a []float32) float32 { return float32(math.Tan(float64(a[0]))) }},
	{"atan2", 2, func(a []float32) float32 { return float32(math.Atan2(float64(a[0]), float64(a[1]))) }},
	// value min max
	{"clamp", 3, func(a []float32) float32 { return min(max(a[0], a[1]), a[2]) }},
	// cond whenTrue whenFalse
	{"ifelse", 3, func(a []float32) float32 {
		if a[0] > 0 {
			return a[1]
		}
		return a[2]
	}},
	// from to t
	{"lerp", 3, func(a []float32) float32 { return a[0] + (a[1]-a[0])*a[2] }},
	{"mad", 3, func(a []float32) float32 { return a[0]*a[1] + a[2] }},
	{"neg", 1, func(a []float32) float32 { return -a[0] }},
}

// FloatOperator returns the encoded operator token for name.
func FloatOperator(name string) (float32, bool) {
	for i, op := range floatOperators {
		if op.name == name {
			return asNaN(FloatOperatorOffset + 1 + i), true
		}
	}
	return 0, false
}

func lookupFloatOperator(code int) (floatOperator, bool) {
	i := code - FloatOperatorOffset - 1
	if i < 0 || i >= len(floatOperators) {
		return floatOperator{}, false
	}
	return floatOperators[i], true
}

func evalFloat(program []float32, resolve func(id int) float32) (float32, error) {
	stack := make([]float32, 0, len(program))

	for i, v := range program {
		code, ref := nanID(v)
		if !ref || code == 0 {
			stack = append(stack, v)
			continue
		}

		if code < FloatOperatorOffset {
			stack = append(stack, resolve(code))
			continue
		}

		op, ok := lookupFloatOperator(code)
		if !ok {
			return 0, fmt.Errorf("float expression: unknown operator %#x at %d", code, i)
		}
		if len(stack) < op.arity {
			return 0, fmt.Errorf("float expression: %q needs %d operands at %d", op.name, op.arity, i)
		}

		base := len(stack) - op.arity
		r := op.fn(stack[base:])
		stack = append(stack[:base], r)
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("float expression: %d values left on the stack", len(stack))
	}
	return stack[0], nil
}

func formatFloatProgram(program []float32) string {
	parts := make([]string, len(program))
	for i, v := range program {
		code, ref := nanID(v)
		switch {
		case !ref || code == 0:
			parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		case code < FloatOperatorOffset:
			parts[i] = "$" + strconv.Itoa(code)
		default:
			if op, ok := lookupFloatOperator(code); ok {
				parts[i] = op.name
			} else {
				parts[i] = "?"
			}
		}
	}
	return strings.Join(parts, " ")
}

// FloatExpression computes a float slot from an RPN program.
type FloatExpression struct {
	OpBase

	ID      int
	Program []float32
}

func NewFloatExpression(id int, program ...float32) *FloatExpression {
	return &FloatExpression{ID: id, Program: program}
}

func (e *FloatExpression) RegisterListening(ctx *Context) { ctx.Listen(e, e.Program...) }
func (e *FloatExpression) UpdateVariables(*Context)       {}
func (e *FloatExpression) Outputs() []int                 { return []int{e.ID} }

func (e *FloatExpression) Evaluate(ctx *Context) (float32, error) {
	return evalFloat(e.Program, ctx.state.Float)
}

func (e *FloatExpression) Apply(ctx *Context) error {
	v, err := e.Evaluate(ctx)
	if err != nil {
		return err
	}
	ctx.state.SetFloat(e.ID, v)
	return nil
}

func (e *FloatExpression) String() string {
	return fmt.Sprintf("FloatExpression[%d] = %s", e.ID, formatFloatProgram(e.Program))
}

// IntOperatorOffset is the first value used for integer operators.
const IntOperatorOffset = 0x10000

type intOperator struct {
	name  string
	arity int
	fn    func(a []int32) (int32, error)
}

var errIntDivByZero = fmt.Errorf("integer expression: division by zero")

var intOperators = []intOperator{
	{"+", 2, func(a []int32) (int32, error) { return a[0] + a[1], nil }},
	{"-", 2, func(a []int32) (int32, error) { return a[0] - a[1], nil }},
	{"*", 2, func(a []int32) (int32, error) { return a[0] * a[1], nil }},
	{"/", 2, func(a []int32) (int32, error) {
		if a[1] == 0 {
			return 0, errIntDivByZero
		}
		return a[0] / a[1], nil
	}},
	{"%", 2, func(a []int32) (int32, error) {
		if a[1] == 0 {
			return 0, errIntDivByZero
		}
		return a[0] % a[1], nil
	}},
	{"<<", 2, func(a []int32) (int32, error) { return a[0] << uint32(a[1]&31), nil }},
	{">>", 2, func(a []int32) (int32, error) { return a[0] >> uint32(a[1]&31), nil }},
	{"&", 2, func(a []int32) (int32, error) { return a[0] & a[1], nil }},
	{"|", 2, func(a []int32) (int32, error) { return a[0] | a[1], nil }},
	{"^", 2, func(a []int32) (int32, error) { return a[0] ^ a[1], nil }},
	{"min", 2, func(a []int32) (int32, error) { return min(a[0], a[1]), nil }},
	{"max", 2, func(a []int32) (int32, error) { return max(a[0], a[1]), nil }},
	{"neg", 1, func(a []int32) (int32, error) { return -a[0], nil }},
	{"abs", 1, func(a []int32) (int32, error) {
		if a[0] < 0 {
			return -a[0], nil
		}
		return a[0], nil
	}},
	{"clamp", 3, func(a []int32) (int32, error) { return min(max(a[0], a[1]), a[2]), nil }},
	{"ifelse", 3, func(a []int32) (int32, error) {
		if a[0] > 0 {
			return a[1], nil
		}
		return a[2], nil
	}},
	{"inc", 1, func(a []int32) (int32, error) { return a[0] + 1, nil }},
	{"dec", 1, func(a []int32) (int32, error) { return a[0] - 1, nil }},
}

func lookupIntOperator(code int32) (intOperator, bool) {
	i := int(code) - IntOperatorOffset - 1
	if i < 0 || i >= len(intOperators) {
		return intOperator{}, false
	}
	return intOperators[i], true
}

// IntToken is one element of an integer expression program.
type IntToken struct {
	value  int32
	marked bool
}

func IntLiteral(v int32) IntToken { return IntToken{value: v} }

func IntVariable(id int) IntToken { return IntToken{value: int32(id), marked: true} }

// IntOperator returns the operator token for name.
func IntOperator(name string) (IntToken, bool) {
	for i, op := range intOperators {
		if op.name == name {
			return IntToken{value: int32(IntOperatorOffset + 1 + i), marked: true}, true
		}
	}
	return IntToken{}, false
}

// IntegerExpression computes an integer slot from an RPN program. A set bit
// i in Mask marks Values[i] as a slot id, or an operator when it is above
// IntOperatorOffset.
type IntegerExpression struct {
	OpBase

	ID     int
	Mask   uint32
	Values []int32
}

func NewIntegerExpression(id int, tokens ...IntToken) *IntegerExpression {
	if len(tokens) > 32 {
		panic("integer expression longer than 32 tokens")
	}

	e := &IntegerExpression{ID: id, Values: make([]int32, len(tokens))}
	for i, t := range tokens {
		e.Values[i] = t.value
		if t.marked {
			e.Mask |= 1 << i
		}
	}
	return e
}

func (e *IntegerExpression) marked(i int) bool {
	return i < 32 && e.Mask&(1<<i) != 0
}

func (e *IntegerExpression) RegisterListening(ctx *Context) {
	for i, v := range e.Values {
		if e.marked(i) && v < IntOperatorOffset {
			ctx.state.ListensTo(int(v), e)
		}
	}
}

func (e *IntegerExpression) UpdateVariables(*Context) {}
func (e *IntegerExpression) Outputs() []int           { return []int{e.ID} }

func (e *IntegerExpression) Evaluate(ctx *Context) (int32, error) {
	stack := make([]int32, 0, len(e.Values))

	for i, v := range e.Values {
		if !e.marked(i) {
			stack = append(stack, v)
			continue
		}

		if v < IntOperatorOffset {
			stack = append(stack, ctx.state.Integer(int(v)))
			continue
		}

		op, ok := lookupIntOperator(v)
		if !ok {
			return 0, fmt.Errorf("integer expression: unknown operator %#x at %d", v, i)
		}
		if len(stack) < op.arity {
			return 0, fmt.Errorf("integer expression: %q needs %d operands at %d", op.name, op.arity, i)
		}

		base := len(stack) - op.arity
		r, err := op.fn(stack[base:])
		if err != nil {
			return 0, err
		}
		stack = append(stack[:base], r)
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("integer expression: %d values left on the stack", len(stack))
	}
	return stack[0], nil
}

func (e *IntegerExpression) Apply(ctx *Context) error {
	v, err := e.Evaluate(ctx)
	if err != nil {
		return err
	}
	ctx.state.SetInteger(e.ID, v)
	return nil
}

func (e *IntegerExpression) String() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		switch {
		case !e.marked(i):
			parts[i] = strconv.Itoa(int(v))
		case v < IntOperatorOffset:
			parts[i] = "$" + strconv.Itoa(int(v))
		default:
			if op, ok := lookupIntOperator(v); ok {
				parts[i] = op.name
			} else {
				parts[i] = "?"
			}
		}
	}
	return fmt.Sprintf("IntegerExpression[%d] = %s", e.ID, strings.Join(parts, " "))
}

// Expressions indexes the document's expressions by id.
type Expressions struct {
	ints   map[int64]*IntegerExpression
	floats map[int32]*FloatExpression
}

func NewExpressions() *Expressions {
	return &Expressions{
		ints:   make(map[int64]*IntegerExpression),
		floats: make(map[int32]*FloatExpression),
	}
}

// Register records op when it is an expression.
func (r *Expressions) Register(op Operation) bool {
	switch e := op.(type) {
	case *IntegerExpression:
		r.ints[int64(e.ID)] = e
	case *FloatExpression:
		r.floats[int32(e.ID)] = e
	default:
		return false
	}
	return true
}

func (r *Expressions) Integer(id int64) (*IntegerExpression, bool) {
	e, ok := r.ints[id]
	return e, ok
}

func (r *Expressions) Float(id int32) (*FloatExpression, bool) {
	e, ok := r.floats[id]
	return e, ok
}

func (r *Expressions) Len() int { return len(r.ints) + len(r.floats) }
