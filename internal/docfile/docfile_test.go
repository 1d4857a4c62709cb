package docfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/opdoc/internal"
)

// kinds of a stream, with container ends written as "end".
func kindNames(ops []internal.Operation) []string {
	var names []string
	for _, op := range ops {
		if _, ok := op.(*internal.ContainerEnd); ok {
			names = append(names, "end")
			continue
		}
		names = append(names, internal.KindName(op))
	}
	return names
}

func TestLoad(t *testing.T) {
	ops, err := Load("testdata/counter.yaml")
	require.NoError(t, err)

	want := []string{
		"Header",
		"IntegerConstant",
		"TextFromInteger",
		"NamedVariable",
		"IntegerExpression",
		"RootLayoutComponent",
		"BackgroundModifier",
		"LayoutComponent",
		"PaddingModifier",
		"LayoutComponent",
		"SizeModifier",
		"SizeModifier",
		"BackgroundModifier",
		"ClickModifier",
		"ValueIntegerExpressionChange",
		"HostAction",
		"end",
		"end",
		"DrawText",
		"end",
		"end",
	}
	if diff := cmp.Diff(want, kindNames(ops)); diff != "" {
		t.Fatalf("stream mismatch (-want +got):\n%s", diff)
	}

	doc, err := internal.Load(ops)
	require.NoError(t, err)
	doc.InitializeContext(internal.NewContext(nil, 200, 100, 1))

	assert.Equal(t, 200, doc.Width())
	assert.Equal(t, "Counter", doc.ContentDescription())
	assert.Equal(t, []string{"count"}, doc.NamedVariables(internal.NamedInt))
}

func TestDecodeValues(t *testing.T) {
	t.Run("numbers accept variables", func(t *testing.T) {
		ops, err := Parse([]byte(`
ops:
  - rect: {left: 0, top: "$50", right: 10.5, bottom: "$51", color: "#80ff0000"}
`))
		require.NoError(t, err)
		require.Len(t, ops, 1)

		r := ops[0].(*internal.DrawRect)
		assert.Equal(t, float32(0), r.Left)
		assert.Equal(t, float32(10.5), r.Right)
		assert.Equal(t, uint32(0x80ff0000), r.Color)

		id, ok := internal.VariableID(r.Top)
		assert.True(t, ok)
		assert.Equal(t, 50, id)
	})

	t.Run("dimensions", func(t *testing.T) {
		ops, err := Parse([]byte(`
ops:
  - width: fill
  - height: "$52"
  - width: 12
`))
		require.NoError(t, err)

		fill := ops[0].(*internal.SizeModifier)
		assert.Equal(t, internal.DimensionFill, fill.Type)

		variable := ops[1].(*internal.SizeModifier)
		assert.True(t, variable.Vertical)
		assert.Equal(t, internal.DimensionFixed, variable.Type)
		assert.True(t, internal.IsVariable(variable.Value))

		fixed := ops[2].(*internal.SizeModifier)
		assert.Equal(t, float32(12), fixed.Value)
	})

	t.Run("float programs", func(t *testing.T) {
		ops, err := Parse([]byte(`
ops:
  - float_expression: {id: 60, program: ["$50", 2, "*"]}
`))
		require.NoError(t, err)

		e := ops[0].(*internal.FloatExpression)
		assert.Equal(t, "FloatExpression[60] = $50 2 *", e.String())
	})

	t.Run("named enums", func(t *testing.T) {
		ops, err := Parse([]byte(`
ops:
  - content_behavior: {sizing: scale, mode: fit, alignment: center}
  - theme: dark
  - component_value: {id: 80, component: 2, type: height}
`))
		require.NoError(t, err)

		assert.Equal(t, &internal.RootContentBehavior{
			Sizing:    internal.SizingScale,
			Mode:      internal.ScaleFit,
			Alignment: internal.AlignmentCenter,
		}, ops[0])
		assert.Equal(t, internal.ThemeDark, ops[1].(*internal.Theme).Theme)
		assert.Equal(t, internal.ComponentValueHeight, ops[2].(*internal.ComponentValue).Type)
	})

	t.Run("components without ids", func(t *testing.T) {
		ops, err := Parse([]byte(`
ops:
  - box: {}
`))
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, internal.NoID, ops[0].(*internal.LayoutComponent).ComponentID())
	})
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]struct {
		src  string
		line int
	}{
		"unknown kind":   {"ops:\n  - sparkle: {}\n", 2},
		"bad token":      {"ops:\n  - float_expression: {id: 1, program: [nope]}\n", 2},
		"bad color":      {"ops:\n  - background: \"#12\"\n", 2},
		"bad variable":   {"ops:\n  - rect: {left: \"$x\"}\n", 2},
		"unknown theme":  {"ops:\n  - text: {id: 1, value: a}\n  - theme: dusk\n", 3},
		"nested failure": {"ops:\n  - root:\n      ops:\n        - sparkle: {}\n", 4},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(c.src))
			require.Error(t, err)

			var derr *Error
			require.True(t, errors.As(err, &derr), err.Error())
			assert.True(t, strings.HasPrefix(err.Error(), "line "), err.Error())

			for errors.As(derr.Err, &derr) {
			}
			assert.Equal(t, c.line, derr.Line)
		})
	}

	t.Run("operations are single key mappings", func(t *testing.T) {
		_, err := Parse([]byte("ops:\n  - text: {id: 1}\n    float: {id: 2}\n"))
		assert.Error(t, err)
	})

	t.Run("unknown top level fields", func(t *testing.T) {
		_, err := Parse([]byte("operations: []\n"))
		assert.Error(t, err)
	})
}
