package internal

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repaintOp struct {
	OpBase

	delay int
}

func (r *repaintOp) Apply(ctx *Context) error {
	if ctx.Mode == ModePaint {
		ctx.RequestRepaint(r.delay)
	}
	return nil
}

func (r *repaintOp) PaintsEveryFrame() bool { return true }

// surfaceRepaint flags the recorder it paints into.
type surfaceRepaint struct {
	OpBase
}

func (*surfaceRepaint) Apply(ctx *Context) error {
	if r, ok := ctx.Paint.(*Recorder); ok && ctx.Mode == ModePaint {
		r.RequestRepaint()
	}
	return nil
}

func (*surfaceRepaint) PaintsEveryFrame() bool { return true }

func allClean(t *testing.T, doc *Document) {
	t.Helper()
	for _, op := range Traverse(doc.Operations()) {
		assert.False(t, op.IsDirty(), "%s is dirty", KindName(op))
	}
}

func TestInitializeContext(t *testing.T) {
	t.Run("primes every operation once", func(t *testing.T) {
		log := []string{}
		a := newProbe(&log, "a", 50)

		doc, _, _ := start(t, NewFloatConstant(50, 1), a)

		assert.Equal(t, []string{"update a", "apply a DATA"}, log)
		assert.Equal(t, float32(1), doc.State().Float(50))
		allClean(t, doc)
	})

	t.Run("settles forward references", func(t *testing.T) {
		log := []string{}
		a := newProbe(&log, "a", 50)

		doc, _, _ := start(t, a, NewFloatConstant(50, 1))

		assert.Equal(t, []string{
			"update a",
			"apply a DATA",
			"update a",
			"apply a DATA",
		}, log)
		allClean(t, doc)
	})

	t.Run("forces cycles clean and reports them", func(t *testing.T) {
		log := []string{}
		a := newProbe(&log, "a", 60)
		a.outputs = []int{60}
		cycle := &cyclicOp{probe: a}

		doc, _, _ := start(t, cycle)

		allClean(t, doc)
		assert.Equal(t, 1, doc.Diagnostics()[DiagUnsettled])
	})

	t.Run("publishes the surface", func(t *testing.T) {
		doc, _, _ := start(t)

		assert.Equal(t, float32(100), doc.State().Float(IDWindowWidth))
		assert.Equal(t, float32(1), doc.State().Float(IDDensity))
		assert.Equal(t, float32(10), doc.State().Float(IDTimeInHr))
		assert.Equal(t, float32(630), doc.State().Float(IDTimeInMin))
		assert.Equal(t, fixedClock().Unix(), doc.State().Long(IDEpochSecond))
	})

	t.Run("reports duplicate component ids", func(t *testing.T) {
		doc, _, _ := start(t,
			NewRootLayout(1),
			NewBox(2), end(),
			NewBox(2), end(),
			end(),
		)

		assert.Equal(t, 1, doc.Diagnostics()[DiagDuplicateComponentID])
	})

	t.Run("reports duplicates once across insertions", func(t *testing.T) {
		doc, ctx, _ := start(t,
			NewRootLayout(1),
			NewBox(2), end(),
			NewBox(2), end(),
			end(),
		)

		require.NoError(t, doc.InsertComponents(ctx, 1, []Operation{NewBox(3), end()}))
		require.NoError(t, doc.InsertComponents(ctx, 1, []Operation{NewBox(4), end()}))

		assert.Equal(t, 1, doc.Diagnostics()[DiagDuplicateComponentID])
	})
}

// cyclicOp writes a new value into the slot it reads on every apply.
type cyclicOp struct {
	*probe
}

func (c *cyclicOp) Apply(ctx *Context) error {
	ctx.State().SetFloat(60, ctx.State().Float(60)+1)
	return nil
}

func TestPaint(t *testing.T) {
	t.Run("refuses to paint before initialization", func(t *testing.T) {
		doc := load(t, []Operation{NewFloatConstant(50, 1)})

		err := doc.Paint(NewContext(nil, 10, 10, 1), ThemeUnspecified)
		assert.ErrorIs(t, err, ErrInvalidOperationOrdering)
	})

	t.Run("walks the tree", func(t *testing.T) {
		root := NewRootLayout(1)

		doc, ctx, rec := start(t,
			root,
			&BackgroundModifier{Color: 0xff000000},
			&DrawRect{Left: 10, Top: 10, Right: 20, Bottom: 20, Color: 0xff00ff00},
			end(),
		)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		assert.Equal(t, []string{
			"rect 0,0,100,100 #ff000000",
			"rect 10,10,20,20 #ff00ff00",
		}, rec.Commands)
		assert.Equal(t, 4, doc.OpsPerFrame())
		assert.Equal(t, LayoutMeasured, root.LayoutState())
	})

	t.Run("is idempotent", func(t *testing.T) {
		doc, ctx, rec := start(t,
			NewFloatConstant(50, 15),
			NewRootLayout(1),
			&DrawRect{Right: AsVariable(50), Bottom: AsVariable(50)},
			end(),
		)

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		first, ops := rec.Commands, doc.OpsPerFrame()

		rec.Commands = nil
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		assert.Equal(t, first, rec.Commands)
		assert.Equal(t, ops, doc.OpsPerFrame())
		assert.Equal(t, NoRepaint, doc.NeedsRepaint())
	})

	t.Run("converges dirty operations", func(t *testing.T) {
		log := []string{}
		expr := NewFloatExpression(60, AsVariable(50), 2, floatOp(t, "*"))
		draw := newProbe(&log, "draw", 60)
		other := newProbe(&log, "other", 70)
		value := NewFloatConstant(50, 1)

		doc, ctx, _ := start(t, value, expr, draw, other)
		allClean(t, doc)

		doc.State().SetFloat(50, 5)
		assert.True(t, expr.IsDirty())
		assert.True(t, draw.IsDirty())
		assert.False(t, other.IsDirty())
		assert.False(t, value.IsDirty())

		log = log[:0]
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		assert.Equal(t, []string{"update draw", "apply draw PAINT"}, log)
		assert.Equal(t, float32(10), doc.State().Float(60))
		allClean(t, doc)
	})

	t.Run("filters by theme", func(t *testing.T) {
		log := []string{}
		dark := newProbe(&log, "dark")
		dark.paints = true
		light := newProbe(&log, "light")
		light.paints = true

		doc, ctx, _ := start(t,
			&Theme{Theme: ThemeDark}, dark,
			&Theme{Theme: ThemeLight}, light,
		)

		log = log[:0]
		require.NoError(t, doc.Paint(ctx, ThemeLight))
		assert.Equal(t, []string{"apply light PAINT"}, log)

		log = log[:0]
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, []string{"apply dark PAINT", "apply light PAINT"}, log)
	})

	t.Run("isolates failing operations", func(t *testing.T) {
		var buf bytes.Buffer
		log := []string{}
		failed := &failing{}
		panicked := &failing{panics: true}
		after := newProbe(&log, "after")
		after.paints = true

		doc := load(t, []Operation{failed, panicked, after}, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		ctx := NewContext(nil, 10, 10, 1)
		doc.InitializeContext(ctx)

		log = log[:0]
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		assert.Equal(t, 2, failed.calls)
		assert.Equal(t, 2, panicked.calls)
		assert.Equal(t, []string{"apply after PAINT", "apply after PAINT"}, log)
		assert.Equal(t, 2, strings.Count(buf.String(), "operation failed"))
		assert.Contains(t, buf.String(), "panicked: boom")
	})

	t.Run("reports repaint delays", func(t *testing.T) {
		doc, ctx, _ := start(t, &repaintOp{delay: 16}, &repaintOp{delay: 5})

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, 5, doc.NeedsRepaint())
	})

	t.Run("repaints now when the surface asks", func(t *testing.T) {
		doc, ctx, _ := start(t, &repaintOp{delay: 16}, &surfaceRepaint{})

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, RepaintNow, doc.NeedsRepaint())
	})

	t.Run("adopts the surface size", func(t *testing.T) {
		doc, ctx, _ := start(t, &Header{Major: 1, Width: 300, Height: 200})
		assert.Equal(t, 300, doc.Width())

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, 100, doc.Width())
		assert.Equal(t, 100, doc.Height())
	})

	t.Run("scales content", func(t *testing.T) {
		doc, ctx, rec := start(t,
			&Header{Major: 1, Minor: 2, Width: 200, Height: 100},
			&RootContentBehavior{Sizing: SizingScale, Mode: ScaleFit, Alignment: AlignmentCenter},
			NewRootLayout(1),
			&DrawRect{Right: 200, Bottom: 100, Color: 0xff0000ff},
			end(),
		)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		assert.Equal(t, []string{"rect 0,25,100,75 #ff0000ff"}, rec.Commands)
		assert.Equal(t, float32(200), doc.Root().Width())
		assert.Equal(t, Version{1, 2, 0}, doc.Version())
	})

	t.Run("publishes component values", func(t *testing.T) {
		box := NewBox(2)

		doc, ctx, _ := start(t,
			&ComponentValue{Type: ComponentValueWidth, ComponentID: 2, ValueID: 80},
			&ComponentValue{Type: ComponentValuePosY, ComponentID: 2, ValueID: 81},
			&ComponentValue{Type: ComponentValueHeight, ComponentID: 9, ValueID: 82},
			NewRootLayout(1),
			NewColumn(NoID),
			NewBox(3), NewHeightModifier(DimensionFixed, 12), end(),
			box, NewWidthModifier(DimensionFixed, 30), NewHeightModifier(DimensionFixed, 20), end(),
			end(),
			end(),
		)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		assert.Equal(t, float32(30), doc.State().Float(80))
		assert.Equal(t, float32(12), doc.State().Float(81))
		assert.Equal(t, 1, doc.Diagnostics()[DiagMissingComponent])
	})

	t.Run("lays out variable sizes one frame late", func(t *testing.T) {
		box := NewBox(2)

		doc, ctx, _ := start(t,
			NewFloatConstant(50, 10),
			NewRootLayout(1),
			box, NewWidthModifier(DimensionFixed, AsVariable(50)), end(),
			end(),
		)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, float32(10), box.Width())

		doc.State().SetFloat(50, 30)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, float32(10), box.Width())
		assert.Equal(t, RepaintNow, doc.NeedsRepaint())

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, float32(30), box.Width())
	})

	t.Run("lays out variable sizes in the same frame when asked", func(t *testing.T) {
		box := NewBox(2)
		doc := load(t, []Operation{
			NewFloatConstant(50, 10),
			NewRootLayout(1),
			box, NewWidthModifier(DimensionFixed, AsVariable(50)), end(),
			end(),
		}, WithUpdateVariablesBeforeLayout(true))
		ctx := NewContext(nil, 100, 100, 1)
		doc.InitializeContext(ctx)

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		doc.State().SetFloat(50, 30)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		assert.Equal(t, float32(30), box.Width())
	})
}

func TestStructuralMutation(t *testing.T) {
	t.Run("inserts and primes components", func(t *testing.T) {
		log := []string{}
		root := NewRootLayout(1)
		doc, ctx, rec := start(t, root, end())

		p := newProbe(&log, "inserted", 50)
		box := NewBox(5)
		err := doc.InsertComponents(ctx, 1, []Operation{
			box,
			NewWidthModifier(DimensionFixed, 10),
			NewHeightModifier(DimensionFixed, 10),
			&BackgroundModifier{Color: 0xffffffff},
			p,
			end(),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"update inserted", "apply inserted DATA"}, log)
		assert.Same(t, box, doc.Component(5))
		assert.Same(t, root, box.Parent())

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, []string{"rect 0,0,10,10 #ffffffff"}, rec.Commands)

		doc.State().SetFloat(50, 1)
		assert.True(t, p.IsDirty())
	})

	t.Run("removes components", func(t *testing.T) {
		log := []string{}
		p := newProbe(&log, "removed", 50)

		doc, ctx, rec := start(t,
			NewRootLayout(1),
			NewBox(5), &BackgroundModifier{Color: 1}, p, end(),
			end(),
		)

		require.NoError(t, doc.RemoveComponent(5))
		assert.Nil(t, doc.Component(5))

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Empty(t, rec.Commands)

		doc.State().SetFloat(50, 1)
		assert.False(t, p.IsDirty())
	})

	t.Run("removes its click areas and touch listeners", func(t *testing.T) {
		log := []string{}
		doc, ctx, _ := start(t,
			NewRootLayout(1),
			NewBox(5),
			NewWidthModifier(DimensionFixed, 50), NewHeightModifier(DimensionFixed, 50),
			&ClickAreaOp{ID: 77, Right: 50, Bottom: 50},
			&TouchValue{ID: 60, Max: 100},
			end(),
			end(),
		)
		listen(doc, &log)
		require.Len(t, doc.ClickAreas(), 1)
		require.True(t, doc.HasTouchListener())

		require.NoError(t, doc.RemoveComponent(5))
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		doc.OnClick(ctx, 10, 10)
		assert.Empty(t, log)
		assert.Empty(t, doc.ClickAreas())

		assert.False(t, doc.HasTouchListener())
		doc.TouchDown(ctx, 0, 0)
		assert.False(t, doc.TouchDrag(ctx, 30, 0))
		assert.Equal(t, float32(0), doc.State().Float(60))
	})

	t.Run("rejects invalid mutations", func(t *testing.T) {
		doc, ctx, _ := start(t, NewRootLayout(1), end())
		items := len(doc.arena.items)

		assert.ErrorIs(t, doc.InsertComponents(ctx, 9, []Operation{NewBox(5), end()}), ErrInvalidOperationOrdering)
		assert.ErrorIs(t, doc.InsertComponents(ctx, 1, []Operation{NewBox(5)}), ErrMalformedDocument)
		assert.ErrorIs(t, doc.InsertComponents(ctx, 1, []Operation{NewTextData(50, "x")}), ErrMalformedDocument)
		assert.Equal(t, items, len(doc.arena.items))

		assert.ErrorIs(t, doc.RemoveComponent(9), ErrInvalidOperationOrdering)
		assert.ErrorIs(t, doc.RemoveComponent(1), ErrInvalidOperationOrdering)
	})
}

func TestApplyUpdate(t *testing.T) {
	t.Run("patches matching leaves", func(t *testing.T) {
		text := NewTextData(50, "before")
		doc, ctx, _ := start(t, text, NewFloatConstant(51, 1), &DataListFloat{ID: 52, Values: []float32{1}})

		delta := load(t, []Operation{
			NewTextData(50, "after"),
			NewTextData(7, "unknown"),
			NewFloatConstant(51, 2),
			NewIntegerConstant(51, 9),
			&DataListFloat{ID: 52, Values: []float32{3, 4}},
		})

		assert.Equal(t, 3, doc.ApplyUpdate(delta))
		assert.True(t, text.IsDirty())

		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, "after", doc.State().Text(50))
		assert.Equal(t, float32(2), doc.State().Float(51))

		list, ok := doc.State().Collection(52)
		require.True(t, ok)
		assert.Equal(t, []float32{3, 4}, list.Floats())
	})

	t.Run("ignores unknown ids", func(t *testing.T) {
		doc, _, _ := start(t, NewRootLayout(1), NewTextData(8, "x"), end())
		before := doc.ToNestedString()

		delta := load(t, []Operation{NewTextData(7, "new")})

		assert.Equal(t, 0, doc.ApplyUpdate(delta))
		assert.Equal(t, before, doc.ToNestedString())
	})
}

func TestCheckShaders(t *testing.T) {
	t.Run("disables rejected shaders", func(t *testing.T) {
		doc, ctx, _ := start(t,
			NewTextData(50, "half4 main() {}"),
			NewTextData(51, "bad"),
			&ShaderData{ID: 60, ShaderTextID: 50},
			&ShaderData{ID: 61, ShaderTextID: 51},
		)

		rejected, err := doc.CheckShaders(ctx, ShaderControlFunc(func(src string) bool {
			return !strings.Contains(src, "bad")
		}))
		require.NoError(t, err)

		assert.Equal(t, 1, rejected)
		_, ok := doc.State().Shader(60)
		assert.True(t, ok)
		_, ok = doc.State().Shader(61)
		assert.False(t, ok)
		assert.Equal(t, ModeUnset, ctx.Mode)
	})

	t.Run("needs an initialized document", func(t *testing.T) {
		doc := load(t, nil)

		_, err := doc.CheckShaders(NewContext(nil, 0, 0, 1), ShaderControlFunc(func(string) bool { return true }))
		assert.ErrorIs(t, err, ErrInvalidOperationOrdering)
	})
}

func TestIntrospection(t *testing.T) {
	t.Run("dumps operations", func(t *testing.T) {
		doc, _, _ := start(t,
			NewTextData(50, "hi"),
			NewRootLayout(1),
			&DrawRect{Right: 10, Bottom: 10, Color: 0xff0000ff},
			end(),
		)

		want := strings.Join([]string{
			`TextData[50] = "hi"`,
			`Root [1] w=0 h=0`,
			`  Modifiers`,
			`  DrawRect 0 0 10 10 #ff0000ff`,
			``,
		}, "\n")
		if diff := cmp.Diff(want, doc.ToNestedString()); diff != "" {
			t.Errorf("ToNestedString() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dumps the component hierarchy", func(t *testing.T) {
		doc, ctx, _ := start(t,
			NewRootLayout(1),
			NewRow(2),
			NewBox(3), NewWidthModifier(DimensionFixed, 30), NewHeightModifier(DimensionFixed, 20), end(),
			end(),
			end(),
		)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))

		want := "Root [1] w=100 h=100\n" +
			"  Row [2] x=0 y=0 w=30 h=20\n" +
			"    Box [3] x=0 y=0 w=30 h=20\n"
		if diff := cmp.Diff(want, doc.DisplayHierarchy()); diff != "" {
			t.Errorf("DisplayHierarchy() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("counts operations", func(t *testing.T) {
		doc, _, _ := start(t,
			NewTextData(50, "a"),
			NewTextData(51, "b"),
			NewRootLayout(1),
			NewBox(2), end(),
			end(),
		)

		stats := doc.Stats()
		assert.Equal(t, 2, stats["TextData"])
		assert.Equal(t, 1, stats["RootLayoutComponent"])
		assert.Equal(t, 1, stats["LayoutComponent"])
		assert.Equal(t, 2, stats["ComponentModifiers"])
		assert.Equal(t, 6, doc.NumberOfOps())
	})

	t.Run("lists named variables", func(t *testing.T) {
		doc, _, _ := start(t,
			&ColorConstant{ID: 50, Color: 0xff112233},
			&NamedVariable{VarID: 50, Type: NamedColor, Name: "primary"},
			&NamedVariable{VarID: 51, Type: NamedFloat, Name: "size"},
		)

		assert.Equal(t, []string{"primary"}, doc.NamedColors())
		assert.Equal(t, []string{"size"}, doc.NamedVariables(NamedFloat))

		id, ok := doc.State().NamedID("primary")
		require.True(t, ok)
		assert.Equal(t, uint32(0xff112233), doc.State().Color(id))
	})

	t.Run("keeps header metadata", func(t *testing.T) {
		doc, _, _ := start(t, &Header{Major: 1, Width: 10, Height: 20, Capabilities: 3, Description: "clock"})

		assert.Equal(t, "clock", doc.ContentDescription())
		assert.Equal(t, int64(3), doc.RequiredCapabilities())
		assert.True(t, doc.CanBeDisplayed(1, 0, 0))
		assert.False(t, doc.CanBeDisplayed(0, 9, 0))
	})
}

func TestDriverAffinity(t *testing.T) {
	var buf bytes.Buffer
	doc := load(t, nil, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	ctx := NewContext(nil, 10, 10, 1)
	doc.InitializeContext(ctx)

	var wg sync.WaitGroup
	wg.Go(func() {
		_ = doc.Paint(ctx, ThemeUnspecified)
		_ = doc.Paint(ctx, ThemeUnspecified)
	})
	wg.Wait()

	assert.Equal(t, 1, strings.Count(buf.String(), "document driven from another goroutine"))
}
