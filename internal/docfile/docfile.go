// Package docfile reads YAML operation listings.
//
// A listing is a list of operations, each a single key mapping from the
// operation kind to its fields. Containers (components, groups, click and
// touch modifiers) hold their children under ops and are flattened back
// into a stream closed by container ends. Float fields accept "$id" to
// reference a variable slot.
package docfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/opdoc/internal"
)

var errProgramTooLong = errors.New("integer program longer than 32 tokens")

type Listing struct {
	Ops []Node `yaml:"ops"`
}

// Node is one operation of a listing.
type Node struct {
	Kind  string
	Line  int
	Value yaml.Node
}

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: an operation is a single key mapping", value.Line)
	}
	n.Kind = value.Content[0].Value
	n.Line = value.Line
	n.Value = *value.Content[1]
	return nil
}

// Error reports the listing line an operation failed to decode at.
type Error struct {
	Line int
	Kind string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func Load(path string) ([]internal.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ops, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}

func Parse(data []byte) ([]internal.Operation, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a listing and returns its flat operation stream.
func Decode(r io.Reader) ([]internal.Operation, error) {
	var l Listing
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, err
	}

	b := &builder{}
	if err := b.emit(l.Ops); err != nil {
		return nil, err
	}
	return b.ops, nil
}

type builder struct {
	ops []internal.Operation
}

func (b *builder) add(op internal.Operation) { b.ops = append(b.ops, op) }

func (b *builder) emit(nodes []Node) error {
	for _, n := range nodes {
		decode, ok := kinds[n.Kind]
		if !ok {
			return &Error{Line: n.Line, Kind: n.Kind, Err: fmt.Errorf("unknown operation")}
		}
		if err := decode(b, &n.Value); err != nil {
			return &Error{Line: n.Line, Kind: n.Kind, Err: err}
		}
	}
	return nil
}

// container adds op, its children and the closing end.
func (b *builder) container(op internal.Operation, children []Node) error {
	b.add(op)
	if err := b.emit(children); err != nil {
		return err
	}
	b.add(&internal.ContainerEnd{})
	return nil
}

// Number is a float literal or a "$id" variable reference.
type Number float32

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if id, ok := strings.CutPrefix(value.Value, "$"); ok && value.Kind == yaml.ScalarNode {
		v, err := strconv.Atoi(id)
		if err != nil {
			return fmt.Errorf("line %d: bad variable %q", value.Line, value.Value)
		}
		*n = Number(internal.AsVariable(v))
		return nil
	}

	var f float32
	if err := value.Decode(&f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Color is "#aarrggbb", "#rrggbb" (opaque) or a plain integer.
type Color uint32

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if hex, ok := strings.CutPrefix(value.Value, "#"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || (len(hex) != 6 && len(hex) != 8) {
			return fmt.Errorf("line %d: bad color %q", value.Line, value.Value)
		}
		if len(hex) == 6 {
			v |= 0xff000000
		}
		*c = Color(v)
		return nil
	}

	var v uint32
	if err := value.Decode(&v); err != nil {
		return err
	}
	*c = Color(v)
	return nil
}

// Dimension is wrap, fill or a fixed Number.
type Dimension struct {
	Type  internal.DimensionType
	Value Number
}

func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "wrap":
		*d = Dimension{Type: internal.DimensionWrap}
		return nil
	case "fill":
		*d = Dimension{Type: internal.DimensionFill}
		return nil
	}

	d.Type = internal.DimensionFixed
	return d.Value.UnmarshalYAML(value)
}

type floatProgram []float32

func (p *floatProgram) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: program must be a list", value.Line)
	}

	for _, tok := range value.Content {
		if op, ok := internal.FloatOperator(tok.Value); ok && tok.Tag == "!!str" {
			*p = append(*p, op)
			continue
		}
		var n Number
		if err := n.UnmarshalYAML(tok); err != nil {
			return fmt.Errorf("line %d: bad token %q", tok.Line, tok.Value)
		}
		*p = append(*p, float32(n))
	}
	return nil
}

type intProgram []internal.IntToken

func (p *intProgram) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: program must be a list", value.Line)
	}

	for _, tok := range value.Content {
		if id, ok := strings.CutPrefix(tok.Value, "$"); ok {
			v, err := strconv.Atoi(id)
			if err != nil {
				return fmt.Errorf("line %d: bad variable %q", tok.Line, tok.Value)
			}
			*p = append(*p, internal.IntVariable(v))
			continue
		}
		if op, ok := internal.IntOperator(tok.Value); ok && tok.Tag == "!!str" {
			*p = append(*p, op)
			continue
		}
		var v int32
		if err := tok.Decode(&v); err != nil {
			return fmt.Errorf("line %d: bad token %q", tok.Line, tok.Value)
		}
		*p = append(*p, internal.IntLiteral(v))
	}
	return nil
}

// named maps a scalar through names, falling back to an integer.
func named(value *yaml.Node, names map[string]int) (int, error) {
	if v, ok := names[value.Value]; ok {
		return v, nil
	}
	var v int
	if err := value.Decode(&v); err != nil {
		return 0, fmt.Errorf("line %d: unknown value %q", value.Line, value.Value)
	}
	return v, nil
}
