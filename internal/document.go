package internal

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Repaint delays reported by NeedsRepaint, in milliseconds.
const (
	NoRepaint  = -1
	RepaintNow = 1
)

// upper bound of DATA passes re-running operations dirtied by forward references
const maxSettlePasses = 16

type Option func(*Document)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) { d.logger = logger }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(d *Document) { d.meterProvider = mp }
}

// WithClock sets the time source of the time variables.
func WithClock(clock func() time.Time) Option {
	return func(d *Document) { d.clock = clock }
}

// WithUpdateVariablesBeforeLayout refreshes dirty operations before layout
// on every paint but the first, so variable driven sizes are laid out in
// the frame they change.
func WithUpdateVariablesBeforeLayout(enabled bool) Option {
	return func(d *Document) { d.updateBeforeLayout = enabled }
}

// Document is a live, inflated operation tree together with its state.
type Document struct {
	id            uuid.UUID
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	metrics       *instruments
	clock         func() time.Time

	ops      []Operation
	root     *RootLayoutComponent
	arena    *Arena
	inflater *inflater
	state    *State
	exprs    *Expressions
	time     *TimeVariables

	version              Version
	width, height        int
	behavior             ContentBehavior
	contentDescription   string
	requiredCapabilities int64
	properties           map[int16]any
	updateDoc            bool

	// built lazily, dropped on structural mutations
	components   map[int]Component
	appliedTouch []Component

	clickAreas        clickAreas
	actionCallbacks   []ActionCallback
	idActionCallbacks []IDActionCallback
	touchListeners    []TouchListener
	haptic            HapticEngine

	initialized        bool
	firstPaint         bool
	updateBeforeLayout bool

	repaintNext int
	lastOpCount int
	diagnostics map[string]int

	driver       int64
	driverSet    bool
	warnedDriver bool
}

// Load inflates a flat operation stream into a document. Nothing is
// returned when the stream is malformed.
func Load(ops []Operation, opts ...Option) (*Document, error) {
	d := &Document{
		id:          uuid.New(),
		arena:       NewArena(),
		state:       NewState(),
		exprs:       NewExpressions(),
		properties:  make(map[int16]any),
		diagnostics: make(map[string]int),
		repaintNext: NoRepaint,
		version:     CurrentVersion(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default().With("component", "opdoc")
	}
	d.logger = d.logger.With("doc", d.id.String())
	if d.meterProvider == nil {
		d.meterProvider = otel.GetMeterProvider()
	}
	d.metrics = newInstruments(d.meterProvider, d.logger)
	d.time = NewTimeVariables(d.clock)

	d.scan(ops)

	f := newInflater(d.arena)
	top, err := f.inflate(ops)
	if err != nil {
		return nil, err
	}
	root, err := findRoot(top)
	if err != nil {
		return nil, err
	}
	f.assignIDs()

	d.ops = top
	d.root = root
	d.inflater = f

	d.logger.Debug("document loaded", "version", d.version.String(), "ops", len(ops), "expressions", d.exprs.Len())
	return d, nil
}

// scan reads the header and registers expressions ahead of inflation.
func (d *Document) scan(ops []Operation) {
	for _, op := range ops {
		if h, ok := op.(*Header); ok {
			d.version = Version{Major: h.Major, Minor: h.Minor, Patch: h.Patch}
			d.width, d.height = h.Width, h.Height
			d.behavior.Width, d.behavior.Height = float32(h.Width), float32(h.Height)
			d.requiredCapabilities = h.Capabilities
			d.contentDescription = h.Description
			continue
		}
		d.exprs.Register(op)
	}
}

func (d *Document) ID() uuid.UUID { return d.id }

func (d *Document) Logger() *slog.Logger { return d.logger }

// InitializeContext primes the document state against ctx. Every operation
// is applied once in DATA mode and is clean afterwards.
func (d *Document) InitializeContext(ctx *Context) {
	d.checkDriver("InitializeContext")
	ctx.bind(d)

	d.state.Reset()
	d.clickAreas.clear()
	d.state.SetNextID(StartID)
	d.appliedTouch = nil

	ctx.Mode = ModeData
	ctx.theme, ctx.requestedTheme = ThemeUnspecified, ThemeUnspecified

	d.updateInputs(ctx)
	d.time.Restart()
	d.time.Update(ctx)

	for c := range d.arena.All() {
		c.Base().values = nil
	}
	d.indexComponents(true)
	d.registerVariables(ctx, d.ops)
	d.applyOperations(ctx, d.ops)
	d.settle(ctx)

	ctx.Mode = ModeUnset
	d.initialized = true
	d.firstPaint = true
	if d.root != nil {
		d.root.InvalidateMeasure()
	}
}

func (d *Document) updateInputs(ctx *Context) {
	d.state.SetFloat(IDDensity, ctx.Density)
	d.state.SetFloat(IDWindowWidth, ctx.Width)
	d.state.SetFloat(IDWindowHeight, ctx.Height)
}

func (d *Document) registerVariables(ctx *Context, ops []Operation) {
	if ops == nil {
		return
	}

	for _, op := range Traverse(ops) {
		switch o := op.(type) {
		case *ComponentValue:
			c := d.Component(o.ComponentID)
			if c == nil {
				d.diagnostic(DiagMissingComponent, "component", o.ComponentID, "value", o.ValueID)
				continue
			}
			c.Base().AddComponentValue(o)
		case VariableSupport:
			o.RegisterListening(ctx)
		}
	}
}

func (d *Document) applyOperations(ctx *Context, ops []Operation) {
	for _, op := range Traverse(ops) {
		op.MarkNotDirty()
		if vs, ok := op.(VariableSupport); ok {
			vs.UpdateVariables(ctx)
		}
		ctx.apply(op)
	}
}

// settle re-applies operations dirtied by slots written after they were
// primed until the document is clean.
func (d *Document) settle(ctx *Context) {
	for range maxSettlePasses {
		if !d.refreshDirty(ctx) {
			return
		}
	}

	for _, op := range Traverse(d.ops) {
		if op.IsDirty() {
			d.diagnostic(DiagUnsettled, "op", KindName(op))
			op.MarkNotDirty()
		}
	}
}

func (d *Document) refreshDirty(ctx *Context) bool {
	found := false
	for _, op := range Traverse(d.ops) {
		if !op.IsDirty() {
			continue
		}
		found = true
		op.MarkNotDirty()
		if vs, ok := op.(VariableSupport); ok {
			vs.UpdateVariables(ctx)
		}
		ctx.apply(op)
	}
	return found
}

// Paint runs one frame against ctx. Operations are filtered by theme
// unless theme is ThemeUnspecified.
func (d *Document) Paint(ctx *Context, theme int) error {
	d.checkDriver("Paint")
	if !d.initialized {
		return orderingError("paint before InitializeContext")
	}
	ctx.bind(d)

	ctx.ClearLastOpCount()
	ctx.repaint = -1
	ctx.Paint.ClearNeedsRepaint()
	d.repaintNext = NoRepaint

	d.updateInputs(ctx)

	ctx.Mode = ModeUnset
	ctx.theme = ThemeUnspecified
	ctx.requestedTheme = theme

	if d.updateBeforeLayout {
		if d.firstPaint {
			d.firstPaint = false
		} else {
			d.updateVariables(ctx)
		}
	}

	p := ctx.Paint
	p.Save()
	defer p.Restore()

	layoutW, layoutH := ctx.Width, ctx.Height
	if d.behavior.Sizing == SizingScale {
		sx, sy := d.behavior.ComputeScale(ctx.Width, ctx.Height)
		tx, ty := d.behavior.ComputeTranslate(ctx.Width, ctx.Height, sx, sy)
		p.Translate(tx, ty)
		p.Scale(sx, sy)
		if d.behavior.Width > 0 && d.behavior.Height > 0 {
			layoutW, layoutH = d.behavior.Width, d.behavior.Height
		}
	} else {
		d.SetWidth(int(ctx.Width))
		d.SetHeight(int(ctx.Height))
	}

	d.time.Update(ctx)

	if r := d.root; r != nil {
		if r.SizeChanged(layoutW, layoutH) {
			r.InvalidateMeasure()
		}
		if r.NeedsMeasure() {
			r.Layout(ctx, layoutW, layoutH)
		}
		if r.NeedsBoundsAnimation() {
			r.ClearNeedsBoundsAnimation()
			ctx.RequestRepaint(RepaintNow)
			if err := r.AnimatingBounds(ctx); err != nil {
				d.logger.Warn("bounds animation", "error", err)
			}
		}
	}

	ctx.Mode = ModePaint
	ctx.ApplyList(d.ops)

	d.repaintNext = ctx.takeRepaint()
	if p.NeedsRepaint() || (d.root != nil && d.root.NeedsRepaint()) {
		d.repaintNext = RepaintNow
	}

	ctx.Mode = ModeUnset
	ctx.lastOpCount = ctx.opCount
	d.lastOpCount = ctx.opCount
	d.firstPaint = false
	d.metrics.frame(ctx.opCount)
	return nil
}

// updateVariables refreshes dirty operations without applying them, so
// layout sees current modifier values.
func (d *Document) updateVariables(ctx *Context) {
	for vs := range Each[VariableSupport](d.ops) {
		if vs.IsDirty() {
			vs.UpdateVariables(ctx)
		}
	}
}

// NeedsRepaint returns the delay before the next frame is wanted, or
// NoRepaint.
func (d *Document) NeedsRepaint() int { return d.repaintNext }

func (d *Document) requestRepaint(delay int) {
	if d.repaintNext == NoRepaint || delay < d.repaintNext {
		d.repaintNext = delay
	}
}

func (d *Document) collectRepaint(ctx *Context) {
	if r := ctx.takeRepaint(); r > 0 {
		d.requestRepaint(r)
	}
}

// OpsPerFrame is the number of operations the last paint executed.
func (d *Document) OpsPerFrame() int { return d.lastOpCount }

// EvaluateIntExpression evaluates integer expression id and overrides the
// target slot with the result. Unknown ids are ignored.
func (d *Document) EvaluateIntExpression(ctx *Context, id int64, target int) {
	e, ok := d.exprs.Integer(id)
	if !ok {
		d.diagnostic(DiagUnknownExpression, "expression", id)
		return
	}

	ctx.bind(d)
	v, err := e.Evaluate(ctx)
	if err != nil {
		d.applyFailed(e, err)
		return
	}
	d.state.OverrideInteger(target, v)
}

func (d *Document) EvaluateFloatExpression(ctx *Context, id int32, target int) {
	e, ok := d.exprs.Float(id)
	if !ok {
		d.diagnostic(DiagUnknownExpression, "expression", id)
		return
	}

	ctx.bind(d)
	v, err := e.Evaluate(ctx)
	if err != nil {
		d.applyFailed(e, err)
		return
	}
	d.state.OverrideFloat(target, v)
}

// AddClickArea declares a clickable rectangle in root coordinates. Areas
// are matched in declaration order.
func (d *Document) AddClickArea(a ClickArea) { d.clickAreas.add(a) }

func (d *Document) ClickAreas() []ClickArea { return d.clickAreas.snapshot() }

func (d *Document) AddIDActionListener(cb IDActionCallback) {
	d.idActionCallbacks = append(d.idActionCallbacks, cb)
}

func (d *Document) AddActionCallback(cb ActionCallback) {
	d.actionCallbacks = append(d.actionCallbacks, cb)
}

func (d *Document) ClearActionCallbacks() {
	d.actionCallbacks = nil
	d.idActionCallbacks = nil
}

// RunNamedAction broadcasts a named action to the host callbacks.
func (d *Document) RunNamedAction(name string, payload any) {
	for _, cb := range slices.Clone(d.actionCallbacks) {
		cb(name, payload)
	}
}

func (d *Document) notifyIDAction(id int, metadata string) {
	for _, cb := range slices.Clone(d.idActionCallbacks) {
		cb(id, metadata)
	}
}

// OnClick dispatches a click at (x, y). The first click area containing
// the point notifies the id listeners; the component tree always gets the
// click as well.
func (d *Document) OnClick(ctx *Context, x, y float32) {
	d.checkDriver("OnClick")
	ctx.bind(d)

	for _, a := range d.clickAreas.snapshot() {
		if a.Contains(x, y) {
			d.notifyIDAction(a.ID, a.Metadata)
			break
		}
	}

	if d.root != nil {
		d.root.OnClick(ctx, d, x, y)
	}

	d.collectRepaint(ctx)
	d.requestRepaint(RepaintNow)
}

// PerformClick triggers the click response of id without coordinates.
func (d *Document) PerformClick(ctx *Context, id int, metadata string) {
	d.checkDriver("PerformClick")
	ctx.bind(d)

	areas := d.clickAreas.snapshot()
	if i := slices.IndexFunc(areas, func(a ClickArea) bool { return a.ID == id }); i >= 0 {
		d.notifyIDAction(areas[i].ID, areas[i].Metadata)
	} else {
		d.notifyIDAction(id, metadata)
		if c := d.Component(id); c != nil {
			c.OnClick(ctx, d, NoCoordinate, NoCoordinate)
		}
	}

	d.collectRepaint(ctx)
	d.requestRepaint(RepaintNow)
}

func (d *Document) AddTouchListener(l TouchListener) {
	if slices.Contains(d.touchListeners, l) {
		return
	}
	d.touchListeners = append(d.touchListeners, l)
}

// HasTouchListener reports whether touch events can have any effect.
func (d *Document) HasTouchListener() bool {
	if len(d.touchListeners) > 0 {
		return true
	}
	return d.root != nil && d.root.HasTouchListeners()
}

// AppliedTouchOperation records c as handling the current gesture.
func (d *Document) AppliedTouchOperation(c Component) {
	if !slices.Contains(d.appliedTouch, c) {
		d.appliedTouch = append(d.appliedTouch, c)
	}
}

func (d *Document) touchPosition(x, y float32) {
	d.state.SetFloat(IDTouchPosX, x)
	d.state.SetFloat(IDTouchPosY, y)
}

func (d *Document) TouchDown(ctx *Context, x, y float32) {
	d.checkDriver("TouchDown")
	ctx.bind(d)
	d.touchPosition(x, y)

	for _, l := range slices.Clone(d.touchListeners) {
		l.TouchDown(ctx, x, y)
	}
	if d.root != nil {
		d.root.OnTouchDown(ctx, d, x, y)
	}

	d.collectRepaint(ctx)
	d.requestRepaint(RepaintNow)
}

// TouchDrag reports whether anything is following the gesture.
func (d *Document) TouchDrag(ctx *Context, x, y float32) bool {
	d.checkDriver("TouchDrag")
	ctx.bind(d)
	d.touchPosition(x, y)

	for _, l := range slices.Clone(d.touchListeners) {
		l.TouchDrag(ctx, x, y)
	}
	for _, c := range slices.Clone(d.appliedTouch) {
		c.OnTouchDrag(ctx, d, x, y)
	}

	d.collectRepaint(ctx)
	return len(d.appliedTouch) > 0 || len(d.touchListeners) > 0
}

func (d *Document) TouchUp(ctx *Context, x, y, dx, dy float32) {
	d.checkDriver("TouchUp")
	ctx.bind(d)
	d.touchPosition(x, y)

	for _, l := range slices.Clone(d.touchListeners) {
		l.TouchUp(ctx, x, y, dx, dy)
	}
	applied := d.appliedTouch
	d.appliedTouch = nil
	for _, c := range applied {
		c.OnTouchUp(ctx, d, x, y, dx, dy)
	}

	d.collectRepaint(ctx)
	d.requestRepaint(RepaintNow)
}

func (d *Document) TouchCancel(ctx *Context, x, y float32) {
	d.checkDriver("TouchCancel")
	ctx.bind(d)
	d.touchPosition(x, y)

	for _, l := range slices.Clone(d.touchListeners) {
		l.TouchCancel(ctx, x, y)
	}
	applied := d.appliedTouch
	d.appliedTouch = nil
	for _, c := range applied {
		c.OnTouchCancel(ctx, d, x, y)
	}

	d.collectRepaint(ctx)
	d.requestRepaint(RepaintNow)
}

func (d *Document) SetHapticEngine(h HapticEngine) { d.haptic = h }

// Haptic plays effect on the haptic engine, if any.
func (d *Document) Haptic(effect int) {
	if d.haptic != nil {
		d.haptic.Haptic(effect)
	}
}

// ApplyUpdate copies the payload of every patchable operation of delta into
// the live operation with the same kind and id, and returns how many were
// updated. Operations unknown to the live document are ignored.
func (d *Document) ApplyUpdate(delta *Document) int {
	d.checkDriver("ApplyUpdate")

	live := make(map[PatchKey]Patchable)
	for p := range Each[Patchable](d.ops) {
		live[p.PatchKey()] = p
	}

	n := 0
	for p := range Each[Patchable](delta.ops) {
		target, ok := live[p.PatchKey()]
		if !ok {
			continue
		}
		target.Update(p)
		target.MarkDirty()
		n++
	}

	d.metrics.patch(n)
	if n > 0 {
		d.requestRepaint(RepaintNow)
	}
	d.logger.Debug("applied update", "delta", delta.id.String(), "patched", n)
	return n
}

// ShaderControl decides whether a shader source may run.
type ShaderControl interface {
	IsShaderValid(source string) bool
}

type ShaderControlFunc func(source string) bool

func (f ShaderControlFunc) IsShaderValid(source string) bool { return f(source) }

// CheckShaders validates every shader against control in a DATA pass.
// Rejected shaders are disabled; their count is returned.
func (d *Document) CheckShaders(ctx *Context, control ShaderControl) (int, error) {
	d.checkDriver("CheckShaders")
	if !d.initialized {
		return 0, orderingError("shader check before InitializeContext")
	}
	ctx.bind(d)

	mode := ctx.Mode
	ctx.Mode = ModeData
	defer func() { ctx.Mode = mode }()

	rejected := 0
	for sh := range Each[*ShaderData](d.ops) {
		valid := control.IsShaderValid(ctx.Text(sh.ShaderTextID))
		sh.Enable(valid)
		if !valid {
			rejected++
			d.logger.Info("shader rejected", "shader", sh.ID)
		}
		ctx.apply(sh)
	}
	return rejected, nil
}

// InsertComponents inflates ops and appends the resulting components to
// the component parentID. The new operations are registered and primed
// when the document is already initialized.
func (d *Document) InsertComponents(ctx *Context, parentID int, ops []Operation) error {
	d.checkDriver("InsertComponents")

	parent, ok := d.Component(parentID).(interface {
		Component
		addChild(Component)
	})
	if !ok {
		return orderingError("insert into unknown component %d", parentID)
	}

	mark := len(d.arena.items)
	top, err := d.inflater.inflate(ops)
	if err != nil {
		d.arena.truncate(mark)
		return err
	}
	for i, op := range top {
		if _, ok := op.(Component); !ok {
			d.arena.truncate(mark)
			return &MalformedDocumentError{Index: i, Reason: fmt.Sprintf("%s is not a component", KindName(op))}
		}
	}

	d.inflater.assignIDs()
	for _, op := range top {
		c := op.(Component)
		c.Base().parent = parent.Base().handle
		parent.addChild(c)
	}
	d.invalidateStructure()

	if d.initialized {
		ctx.bind(d)
		mode := ctx.Mode
		ctx.Mode = ModeData
		d.registerVariables(ctx, top)
		d.applyOperations(ctx, top)
		d.settle(ctx)
		ctx.Mode = mode
	}

	d.requestRepaint(RepaintNow)
	return nil
}

// RemoveComponent detaches the component id and its subtree.
func (d *Document) RemoveComponent(id int) error {
	d.checkDriver("RemoveComponent")

	c := d.Component(id)
	if c == nil {
		return orderingError("remove unknown component %d", id)
	}
	if Component(d.root) == c {
		return orderingError("remove root component %d", id)
	}

	parent, ok := c.Base().Parent().(interface{ removeChild(Component) bool })
	if !ok || !parent.removeChild(c) {
		return orderingError("component %d is not attached", id)
	}

	for _, op := range Traverse([]Operation{c}) {
		if vs, ok := op.(VariableSupport); ok {
			d.state.Unsubscribe(vs)
		}
		if area, ok := op.(*ClickAreaOp); ok {
			d.clickAreas.remove(area.area())
		}
		if tl, ok := op.(TouchListener); ok {
			d.touchListeners = slices.DeleteFunc(d.touchListeners, func(l TouchListener) bool { return l == tl })
		}
		if sub, ok := op.(Component); ok {
			d.arena.release(sub.Base().handle)
		}
	}
	d.invalidateStructure()

	d.requestRepaint(RepaintNow)
	return nil
}

func (d *Document) invalidateStructure() {
	d.components = nil
	d.appliedTouch = nil
	if d.root != nil {
		d.root.InvalidateMeasure()
	}
}

func (d *Document) indexComponents(report bool) {
	d.components = make(map[int]Component)
	for c := range Each[Component](d.ops) {
		id := c.Base().id
		if _, dup := d.components[id]; dup && report {
			d.diagnostic(DiagDuplicateComponentID, "component", id)
		}
		d.components[id] = c
	}
}

// Component returns the component with the given id, or nil.
func (d *Document) Component(id int) Component {
	if d.components == nil {
		d.indexComponents(false)
	}
	return d.components[id]
}

func (d *Document) Root() *RootLayoutComponent { return d.root }

func (d *Document) Operations() []Operation { return d.ops }

func (d *Document) State() *State { return d.state }

func (d *Document) Expressions() *Expressions { return d.exprs }

func (d *Document) Version() Version { return d.version }

func (d *Document) SetVersion(v Version) { d.version = v }

func (d *Document) CanBeDisplayed(playerMajor, playerMinor int, capabilities int64) bool {
	return d.version.CanBeDisplayed(playerMajor, playerMinor, capabilities)
}

func (d *Document) Width() int  { return d.width }
func (d *Document) Height() int { return d.height }

func (d *Document) SetWidth(w int) {
	d.width = w
	d.behavior.Width = float32(w)
}

func (d *Document) SetHeight(h int) {
	d.height = h
	d.behavior.Height = float32(h)
}

func (d *Document) SetRootContentBehavior(scroll, alignment, sizing, mode int) {
	d.behavior.Scroll = scroll
	d.behavior.Alignment = alignment
	d.behavior.Sizing = sizing
	d.behavior.Mode = mode
}

func (d *Document) ContentBehavior() ContentBehavior { return d.behavior }

func (d *Document) ContentDescription() string { return d.contentDescription }

func (d *Document) RequiredCapabilities() int64 { return d.requiredCapabilities }

func (d *Document) Properties() map[int16]any { return d.properties }

func (d *Document) SetProperty(key int16, v any) { d.properties[key] = v }

func (d *Document) SetUpdateDoc(update bool) { d.updateDoc = update }

// IsUpdateDoc reports whether the document is meant as a delta for ApplyUpdate.
func (d *Document) IsUpdateDoc() bool { return d.updateDoc }

// NamedVariables lists the names bound to slots of the given Named* type.
func (d *Document) NamedVariables(typ int) []string {
	var names []string
	for n := range Each[*NamedVariable](d.ops) {
		if n.Type == typ {
			names = append(names, n.Name)
		}
	}
	return names
}

func (d *Document) NamedColors() []string { return d.NamedVariables(NamedColor) }

// Diagnostics counts the non-fatal problems found so far, by kind.
func (d *Document) Diagnostics() map[string]int { return maps.Clone(d.diagnostics) }

func (d *Document) diagnostic(kind string, args ...any) {
	d.diagnostics[kind]++
	d.metrics.diagnostic(kind)
	d.logger.Warn("document diagnostic", append([]any{"kind", kind}, args...)...)
}

// applyFailed counts a failed apply and logs it the first time op fails.
func (d *Document) applyFailed(op Operation, err error) {
	kind := KindName(op)
	d.metrics.applyError(kind)

	b := op.opBase()
	if b.flags.has(flagFailed) {
		return
	}
	b.flags.set(flagFailed)
	d.logger.Warn("operation failed", "op", kind, "error", err)
}

// checkDriver warns once when the document is driven from more than one goroutine.
func (d *Document) checkDriver(entry string) {
	id := driverID()
	if !d.driverSet {
		d.driver, d.driverSet = id, true
		return
	}
	if id != d.driver && !d.warnedDriver {
		d.warnedDriver = true
		d.logger.Warn("document driven from another goroutine", "entry", entry, "driver", d.driver, "caller", id)
	}
}

// Stats counts operations by kind.
func (d *Document) Stats() map[string]int {
	stats := make(map[string]int)
	for _, op := range Traverse(d.ops) {
		stats[KindName(op)]++
	}
	return stats
}

// NumberOfOps counts every operation of the tree, containers included.
func (d *Document) NumberOfOps() int {
	n := 0
	for range Traverse(d.ops) {
		n++
	}
	return n
}

// DisplayHierarchy dumps the component tree with its laid out bounds.
func (d *Document) DisplayHierarchy() string {
	if d.root == nil {
		return ""
	}

	var b strings.Builder
	var dump func(c Component, depth int)
	dump = func(c Component, depth int) {
		fmt.Fprintf(&b, "%s%v\n", strings.Repeat("  ", depth), c)
		if l, ok := c.(interface{ ChildComponents() []Component }); ok {
			for _, child := range l.ChildComponents() {
				dump(child, depth+1)
			}
		}
	}
	dump(d.root, 0)
	return b.String()
}

// ToNestedString dumps every operation, indented by nesting depth.
func (d *Document) ToNestedString() string {
	var b strings.Builder
	for depth, op := range Traverse(d.ops) {
		b.WriteString(strings.Repeat("  ", depth))
		if s, ok := op.(fmt.Stringer); ok {
			b.WriteString(s.String())
		} else {
			b.WriteString(KindName(op))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (d *Document) String() string {
	return fmt.Sprintf("Document v%s %dx%d ops=%d", d.version, d.width, d.height, d.NumberOfOps())
}
