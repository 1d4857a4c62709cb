package internal

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInflate(t *testing.T) {
	t.Run("rebuilds the component tree", func(t *testing.T) {
		root := NewRootLayout(1)
		row := NewRow(NoID)
		box := NewBox(7)
		col := NewColumn(NoID)
		text := NewTextData(50, "hello")

		doc := load(t, []Operation{
			text,
			root,
			row,
			box, end(),
			end(),
			col, end(),
			end(),
		})

		assert.Same(t, root, doc.Root())
		assert.Equal(t, []Operation{text, root}, doc.Operations())
		assert.Equal(t, []Component{row, col}, root.ChildComponents())
		assert.Equal(t, []Component{box}, row.ChildComponents())

		assert.Same(t, root, row.Parent())
		assert.Same(t, row, box.Parent())
		assert.Same(t, root, col.Parent())
		assert.Nil(t, root.Parent())
	})

	t.Run("assigns synthetic ids below every declared id", func(t *testing.T) {
		root := NewRootLayout(NoID)
		a := NewBox(-5)
		b := NewBox(NoID)
		c := NewBox(3)
		d := NewBox(NoID)

		load(t, []Operation{
			root,
			a, end(),
			b, d, end(), end(),
			c, end(),
			end(),
		})

		assert.Equal(t, -6, root.ComponentID())
		assert.Equal(t, -5, a.ComponentID())
		assert.Equal(t, -7, b.ComponentID())
		assert.Equal(t, -8, d.ComponentID())
		assert.Equal(t, 3, c.ComponentID())
	})

	t.Run("sorts modifiers, content and children", func(t *testing.T) {
		root := NewRootLayout(1)
		width := NewWidthModifier(DimensionFixed, 40)
		rect := &DrawRect{Right: 10, Bottom: 10}
		child := NewBox(2)

		load(t, []Operation{
			root,
			child, end(),
			rect,
			width,
			end(),
		})

		list := root.Children()
		require.Len(t, list, 3)
		mods, ok := list[0].(*ComponentModifiers)
		require.True(t, ok)
		assert.Equal(t, []Operation{width}, mods.Children())
		assert.Same(t, rect, list[1])
		assert.Same(t, child, list[2])
	})

	t.Run("groups are plain containers", func(t *testing.T) {
		g := NewGroup()
		a := NewFloatConstant(50, 1)
		b := NewFloatConstant(51, 2)

		doc := load(t, []Operation{g, a, b, end()})

		assert.Equal(t, []Operation{g}, doc.Operations())
		assert.Equal(t, []Operation{a, b}, g.Children())
		assert.Nil(t, doc.Root())
	})

	t.Run("rejects an unmatched container end", func(t *testing.T) {
		_, err := Load([]Operation{NewTextData(50, "x"), end()}, WithLogger(quietLogger()))

		require.ErrorIs(t, err, ErrMalformedDocument)
		var malformed *MalformedDocumentError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, 1, malformed.Index)
	})

	t.Run("rejects an unclosed container", func(t *testing.T) {
		_, err := Load([]Operation{NewRootLayout(1), NewBox(2), end()}, WithLogger(quietLogger()))

		var malformed *MalformedDocumentError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, -1, malformed.Index)
	})

	t.Run("rejects two roots", func(t *testing.T) {
		_, err := Load([]Operation{
			NewRootLayout(1), end(),
			NewRootLayout(2), end(),
		}, WithLogger(quietLogger()))

		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

// stream builds a balanced flat stream out of codes: 0 is a leaf, 1 opens a
// group and 2 closes the innermost one (or is a leaf at the top level).
func stream(codes []int) []Operation {
	var ops []Operation
	depth := 0
	for i, c := range codes {
		switch {
		case c == 1:
			ops = append(ops, NewGroup())
			depth++
		case c == 2 && depth > 0:
			ops = append(ops, end())
			depth--
		default:
			ops = append(ops, NewFloatConstant(StartID+i, float32(i)))
		}
	}
	for ; depth > 0; depth-- {
		ops = append(ops, end())
	}
	return ops
}

func TestInflateRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pre-order flattening gives back the stream", prop.ForAll(
		func(codes []int) bool {
			ops := stream(codes)

			doc, err := Load(ops, WithLogger(quietLogger()))
			if err != nil {
				return false
			}

			var want []Operation
			for _, op := range ops {
				if _, ok := op.(*ContainerEnd); !ok {
					want = append(want, op)
				}
			}

			var got []Operation
			for _, op := range Traverse(doc.Operations()) {
				got = append(got, op)
			}

			if len(got) != len(want) {
				return false
			}
			for i := range got {
				if got[i] != want[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}

// layoutStream is like stream but opens boxes and adds background modifiers
// inside them.
func layoutStream(codes []int) []Operation {
	var ops []Operation
	depth := 0
	for i, c := range codes {
		switch {
		case c == 1:
			ops = append(ops, NewBox(NoID))
			depth++
		case c == 2 && depth > 0:
			ops = append(ops, end())
			depth--
		case c == 3 && depth > 0:
			ops = append(ops, &BackgroundModifier{Color: uint32(i)})
		default:
			ops = append(ops, NewFloatConstant(StartID+i, float32(i)))
		}
	}
	for ; depth > 0; depth-- {
		ops = append(ops, end())
	}
	return ops
}

// sortedChildren reads ops from i up to the closing end and returns them in
// pre-order, with each box listing its modifiers, then its content, then its
// child boxes.
func sortedChildren(ops []Operation, i int, sorted bool) ([]Operation, int) {
	var mods, content, kids []Operation
	for i < len(ops) {
		op := ops[i]
		i++
		switch op.(type) {
		case *ContainerEnd:
			return append(append(mods, content...), kids...), i
		case *LayoutComponent:
			sub, next := sortedChildren(ops, i, true)
			i = next
			if !sorted {
				content = append(append(content, op), sub...)
				continue
			}
			kids = append(append(kids, op), sub...)
		case Modifier:
			mods = append(mods, op)
		default:
			content = append(content, op)
		}
	}
	return append(append(mods, content...), kids...), i
}

func TestInflateLayoutRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Layout components keep every operation but list them as
	// [modifiers, content..., children...] behind a modifiers container.
	properties.Property("flattening gives back the stream sorted per component", prop.ForAll(
		func(codes []int) bool {
			ops := layoutStream(codes)

			doc, err := Load(ops, WithLogger(quietLogger()))
			if err != nil {
				return false
			}

			want, _ := sortedChildren(ops, 0, false)

			var got []Operation
			for _, op := range Traverse(doc.Operations()) {
				if _, ok := op.(*ComponentModifiers); !ok {
					got = append(got, op)
				}
			}

			if len(got) != len(want) {
				return false
			}
			for i := range got {
				if got[i] != want[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}
