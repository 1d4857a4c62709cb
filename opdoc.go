package opdoc

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/AnatoleLucet/opdoc/internal"
	"github.com/AnatoleLucet/opdoc/internal/docfile"
)

type (
	Operation       = internal.Operation
	OpBase          = internal.OpBase
	Context         = internal.Context
	PaintContext    = internal.PaintContext
	Recorder        = internal.Recorder
	State           = internal.State
	Version         = internal.Version
	ContentBehavior = internal.ContentBehavior
	ClickArea       = internal.ClickArea
	Component       = internal.Component

	ActionCallback   = internal.ActionCallback
	IDActionCallback = internal.IDActionCallback
	TouchListener    = internal.TouchListener
	HapticEngine     = internal.HapticEngine
	HapticFunc       = internal.HapticFunc
	ShaderControl    = internal.ShaderControl

	ShaderControlFunc      = internal.ShaderControlFunc
	MalformedDocumentError = internal.MalformedDocumentError
)

var (
	ErrMalformedDocument        = internal.ErrMalformedDocument
	ErrInvalidOperationOrdering = internal.ErrInvalidOperationOrdering
)

// Repaint delays, in milliseconds.
const (
	NoRepaint  = internal.NoRepaint
	RepaintNow = internal.RepaintNow
)

const (
	ThemeUnspecified = internal.ThemeUnspecified
	ThemeDark        = internal.ThemeDark
	ThemeLight       = internal.ThemeLight
)

// NewContext creates a rendering context for a width by height surface.
// A nil paint discards drawing.
func NewContext(paint PaintContext, width, height, density float32) *Context {
	return internal.NewContext(paint, width, height, density)
}

// NewRecorder creates a PaintContext writing every draw call as text.
func NewRecorder() *Recorder {
	return internal.NewRecorder()
}

type Option = internal.Option

// WithLogger sets the logger of the document, slog.Default otherwise.
func WithLogger(logger *slog.Logger) Option {
	return internal.WithLogger(logger)
}

// WithMeterProvider sets where document metrics are recorded, the global
// otel provider otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return internal.WithMeterProvider(mp)
}

// WithClock sets the time source of the time variables.
func WithClock(clock func() time.Time) Option {
	return internal.WithClock(clock)
}

// WithUpdateVariablesBeforeLayout lays out variable driven sizes in the
// frame they change instead of the next one.
func WithUpdateVariablesBeforeLayout(enabled bool) Option {
	return internal.WithUpdateVariablesBeforeLayout(enabled)
}

type Document struct {
	doc *internal.Document
}

// Load inflates a flat operation stream into a document.
func Load(ops []Operation, opts ...Option) (*Document, error) {
	doc, err := internal.Load(ops, opts...)
	if err != nil {
		return nil, err
	}
	return &Document{doc}, nil
}

// LoadListing reads a YAML operation listing and loads it.
func LoadListing(r io.Reader, opts ...Option) (*Document, error) {
	ops, err := docfile.Decode(r)
	if err != nil {
		return nil, err
	}
	return Load(ops, opts...)
}

// LoadFile reads a YAML operation listing from path and loads it.
func LoadFile(path string, opts ...Option) (*Document, error) {
	ops, err := docfile.Load(path)
	if err != nil {
		return nil, err
	}
	return Load(ops, opts...)
}

// InitializeContext resets the document state and primes every operation
// against ctx. It must run before the first Paint.
func (d *Document) InitializeContext(ctx *Context) {
	d.doc.InitializeContext(ctx)
}

// Paint runs one frame, filtering operations by theme unless theme is
// ThemeUnspecified.
func (d *Document) Paint(ctx *Context, theme int) error {
	return d.doc.Paint(ctx, theme)
}

// NeedsRepaint returns the delay before the next frame is needed, in
// milliseconds, or NoRepaint.
func (d *Document) NeedsRepaint() int {
	return d.doc.NeedsRepaint()
}

// OnClick dispatches a click at surface coordinates.
func (d *Document) OnClick(ctx *Context, x, y float32) {
	d.doc.OnClick(ctx, x, y)
}

// PerformClick triggers the click response of a click area or component
// without coordinates.
func (d *Document) PerformClick(ctx *Context, id int, metadata string) {
	d.doc.PerformClick(ctx, id, metadata)
}

func (d *Document) TouchDown(ctx *Context, x, y float32) {
	d.doc.TouchDown(ctx, x, y)
}

// TouchDrag reports whether anything follows the gesture.
func (d *Document) TouchDrag(ctx *Context, x, y float32) bool {
	return d.doc.TouchDrag(ctx, x, y)
}

func (d *Document) TouchUp(ctx *Context, x, y, dx, dy float32) {
	d.doc.TouchUp(ctx, x, y, dx, dy)
}

func (d *Document) TouchCancel(ctx *Context, x, y float32) {
	d.doc.TouchCancel(ctx, x, y)
}

func (d *Document) HasTouchListener() bool {
	return d.doc.HasTouchListener()
}

func (d *Document) AddTouchListener(l TouchListener) {
	d.doc.AddTouchListener(l)
}

func (d *Document) AddClickArea(a ClickArea) {
	d.doc.AddClickArea(a)
}

func (d *Document) ClickAreas() []ClickArea {
	return d.doc.ClickAreas()
}

func (d *Document) AddIDActionListener(cb IDActionCallback) {
	d.doc.AddIDActionListener(cb)
}

func (d *Document) AddActionCallback(cb ActionCallback) {
	d.doc.AddActionCallback(cb)
}

func (d *Document) ClearActionCallbacks() {
	d.doc.ClearActionCallbacks()
}

func (d *Document) SetHapticEngine(h HapticEngine) {
	d.doc.SetHapticEngine(h)
}

// ApplyUpdate refreshes the data operations delta shares with d and
// returns how many were updated.
func (d *Document) ApplyUpdate(delta *Document) int {
	return d.doc.ApplyUpdate(delta.doc)
}

// CheckShaders disables the shaders control rejects and returns how many
// were rejected.
func (d *Document) CheckShaders(ctx *Context, control ShaderControl) (int, error) {
	return d.doc.CheckShaders(ctx, control)
}

// InsertComponents appends the components of ops to the component parentID.
func (d *Document) InsertComponents(ctx *Context, parentID int, ops []Operation) error {
	return d.doc.InsertComponents(ctx, parentID, ops)
}

func (d *Document) RemoveComponent(id int) error {
	return d.doc.RemoveComponent(id)
}

// EvaluateIntExpression writes integer expression id into the target slot.
func (d *Document) EvaluateIntExpression(ctx *Context, id int64, target int) {
	d.doc.EvaluateIntExpression(ctx, id, target)
}

// EvaluateFloatExpression writes float expression id into the target slot.
func (d *Document) EvaluateFloatExpression(ctx *Context, id int32, target int) {
	d.doc.EvaluateFloatExpression(ctx, id, target)
}

// State exposes the variable slots, for hosts feeding inputs or reading
// named variables.
func (d *Document) State() *State {
	return d.doc.State()
}

func (d *Document) ID() uuid.UUID { return d.doc.ID() }

func (d *Document) Version() Version { return d.doc.Version() }

// CanBeDisplayed reports whether a player at version
// (playerMajor, playerMinor) can show the document.
func (d *Document) CanBeDisplayed(playerMajor, playerMinor int, capabilities int64) bool {
	return d.doc.CanBeDisplayed(playerMajor, playerMinor, capabilities)
}

// RequiredCapabilities is the capability mask the header declares. Players
// do not gate on it yet.
func (d *Document) RequiredCapabilities() int64 { return d.doc.RequiredCapabilities() }

func (d *Document) Width() int  { return d.doc.Width() }
func (d *Document) Height() int { return d.doc.Height() }

func (d *Document) ContentBehavior() ContentBehavior { return d.doc.ContentBehavior() }

func (d *Document) ContentDescription() string { return d.doc.ContentDescription() }

func (d *Document) NamedVariables(typ int) []string { return d.doc.NamedVariables(typ) }

func (d *Document) NamedColors() []string { return d.doc.NamedColors() }

// Diagnostics counts the non-fatal problems met so far, by kind.
func (d *Document) Diagnostics() map[string]int { return d.doc.Diagnostics() }

// Stats counts operations by kind.
func (d *Document) Stats() map[string]int { return d.doc.Stats() }

func (d *Document) NumberOfOps() int { return d.doc.NumberOfOps() }

func (d *Document) OpsPerFrame() int { return d.doc.OpsPerFrame() }

// DisplayHierarchy prints the laid out component tree.
func (d *Document) DisplayHierarchy() string { return d.doc.DisplayHierarchy() }

// ToNestedString prints every operation, indented by nesting.
func (d *Document) ToNestedString() string { return d.doc.ToNestedString() }

func (d *Document) String() string { return d.doc.String() }
