package internal

import (
	"bytes"
	"iter"
	"maps"
	"slices"
)

// Slots written by the runtime itself. Document ids start at StartID.
const (
	IDContinuousSec      = 1
	IDTimeInSec          = 2
	IDTimeInMin          = 3
	IDTimeInHr           = 4
	IDWindowWidth        = 5
	IDWindowHeight       = 6
	IDCalendarMonth      = 9
	IDOffsetToUTC        = 10
	IDWeekDay            = 11
	IDDayOfMonth         = 12
	IDTouchPosX          = 13
	IDTouchPosY          = 14
	IDDensity            = 27
	IDAnimationTime      = 30
	IDAnimationDeltaTime = 31
	IDEpochSecond        = 32

	StartID = 42
)

type Bitmap struct {
	Width  int
	Height int
	Pixels []byte
}

func bitmapEqual(a, b Bitmap) bool {
	return a.Width == b.Width && a.Height == b.Height && bytes.Equal(a.Pixels, b.Pixels)
}

func equal[T comparable](a, b T) bool { return a == b }

// ArrayAccess is a read-only view over a list-valued slot.
type ArrayAccess interface {
	Len() int
	FloatValue(index int) float32
	Floats() []float32
}

type slotTable[T any] struct {
	values     map[int]T
	overridden map[int]bool
	eq         func(a, b T) bool
}

func newSlotTable[T any](eq func(a, b T) bool) *slotTable[T] {
	return &slotTable[T]{
		values:     make(map[int]T),
		overridden: make(map[int]bool),
		eq:         eq,
	}
}

func (t *slotTable[T]) get(id int) (T, bool) {
	v, ok := t.values[id]
	return v, ok
}

// set stores v unless the slot is overridden and reports whether the slot changed.
func (t *slotTable[T]) set(id int, v T) bool {
	if t.overridden[id] {
		return false
	}
	return t.store(id, v)
}

func (t *slotTable[T]) override(id int, v T) bool {
	t.overridden[id] = true
	return t.store(id, v)
}

func (t *slotTable[T]) store(id int, v T) bool {
	if old, ok := t.values[id]; ok && t.eq(old, v) {
		return false
	}
	t.values[id] = v
	return true
}

func (t *slotTable[T]) clearOverride(id int) {
	delete(t.overridden, id)
}

func (t *slotTable[T]) reset() {
	clear(t.values)
	clear(t.overridden)
}

type namedSlot struct {
	id   int
	kind int
}

// State is the document's typed variable store. Every write that changes a
// slot marks the operations listening to it dirty.
type State struct {
	floats  *slotTable[float32]
	ints    *slotTable[int32]
	longs   *slotTable[int64]
	texts   *slotTable[string]
	colors  *slotTable[uint32]
	bitmaps *slotTable[Bitmap]

	collections map[int]ArrayAccess
	shaders     map[int]*ShaderData
	names       map[string]namedSlot

	subs map[int]*subscribers

	batch *notifyBatch

	nextID int
}

func NewState() *State {
	return &State{
		floats:      newSlotTable(equal[float32]),
		ints:        newSlotTable(equal[int32]),
		longs:       newSlotTable(equal[int64]),
		texts:       newSlotTable(equal[string]),
		colors:      newSlotTable(equal[uint32]),
		bitmaps:     newSlotTable(bitmapEqual),
		collections: make(map[int]ArrayAccess),
		shaders:     make(map[int]*ShaderData),
		names:       make(map[string]namedSlot),
		subs:        make(map[int]*subscribers),
		batch:       newNotifyBatch(),
		nextID:      StartID,
	}
}

// Reset drops every value, override and subscription.
func (s *State) Reset() {
	s.floats.reset()
	s.ints.reset()
	s.longs.reset()
	s.texts.reset()
	s.colors.reset()
	s.bitmaps.reset()
	clear(s.collections)
	clear(s.shaders)
	clear(s.names)
	clear(s.subs)
	s.batch.reset()
}

func (s *State) NextID() int { return s.nextID }

func (s *State) SetNextID(id int) { s.nextID = id }

// CreateID reserves a fresh slot id.
func (s *State) CreateID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *State) Float(id int) float32 {
	v, _ := s.floats.get(id)
	return v
}

func (s *State) Integer(id int) int32 {
	v, _ := s.ints.get(id)
	return v
}

func (s *State) Long(id int) int64 {
	v, _ := s.longs.get(id)
	return v
}

func (s *State) Text(id int) string {
	v, _ := s.texts.get(id)
	return v
}

func (s *State) Color(id int) uint32 {
	v, _ := s.colors.get(id)
	return v
}

func (s *State) Bitmap(id int) (Bitmap, bool) {
	return s.bitmaps.get(id)
}

func (s *State) Collection(id int) (ArrayAccess, bool) {
	c, ok := s.collections[id]
	return c, ok
}

func (s *State) Shader(id int) (*ShaderData, bool) {
	sh, ok := s.shaders[id]
	return sh, ok
}

func (s *State) SetFloat(id int, v float32) { s.changed(id, s.floats.set(id, v)) }
func (s *State) SetInteger(id int, v int32) { s.changed(id, s.ints.set(id, v)) }
func (s *State) SetLong(id int, v int64)    { s.changed(id, s.longs.set(id, v)) }
func (s *State) SetText(id int, v string)   { s.changed(id, s.texts.set(id, v)) }
func (s *State) SetColor(id int, v uint32)  { s.changed(id, s.colors.set(id, v)) }
func (s *State) SetBitmap(id int, v Bitmap) { s.changed(id, s.bitmaps.set(id, v)) }

// Override* write a slot and pin it: later Set* calls on it are ignored
// until the override is cleared.
func (s *State) OverrideFloat(id int, v float32) { s.changed(id, s.floats.override(id, v)) }
func (s *State) OverrideInteger(id int, v int32) { s.changed(id, s.ints.override(id, v)) }
func (s *State) OverrideLong(id int, v int64)    { s.changed(id, s.longs.override(id, v)) }
func (s *State) OverrideText(id int, v string)   { s.changed(id, s.texts.override(id, v)) }
func (s *State) OverrideColor(id int, v uint32)  { s.changed(id, s.colors.override(id, v)) }

func (s *State) ClearOverride(id int) {
	s.floats.clearOverride(id)
	s.ints.clearOverride(id)
	s.longs.clearOverride(id)
	s.texts.clearOverride(id)
	s.colors.clearOverride(id)
}

func (s *State) IsOverridden(id int) bool {
	return s.floats.overridden[id] || s.ints.overridden[id] || s.longs.overridden[id] ||
		s.texts.overridden[id] || s.colors.overridden[id]
}

func (s *State) SetCollection(id int, c ArrayAccess) {
	s.collections[id] = c
	s.changed(id, true)
}

func (s *State) setShader(id int, sh *ShaderData) {
	if sh == nil {
		delete(s.shaders, id)
		return
	}
	s.shaders[id] = sh
}

// SetName binds a host-visible name to a slot.
func (s *State) SetName(name string, id int, kind int) {
	s.names[name] = namedSlot{id: id, kind: kind}
}

func (s *State) NamedID(name string) (int, bool) {
	n, ok := s.names[name]
	return n.id, ok
}

// Names lists the bound names in sorted order.
func (s *State) Names() []string {
	return slices.Sorted(maps.Keys(s.names))
}

// ListensTo subscribes op to writes on slot id.
func (s *State) ListensTo(id int, op VariableSupport) {
	subs, ok := s.subs[id]
	if !ok {
		subs = &subscribers{}
		s.subs[id] = subs
	}
	subs.add(id, op)
}

// Unsubscribe removes op from every slot it listens to.
func (s *State) Unsubscribe(op VariableSupport) {
	for _, subs := range s.subs {
		subs.remove(op)
	}
}

// Listeners yields the operations subscribed to slot id.
func (s *State) Listeners(id int) iter.Seq[VariableSupport] {
	subs, ok := s.subs[id]
	if !ok {
		return func(func(VariableSupport) bool) {}
	}
	return subs.all()
}

func (s *State) changed(id int, changed bool) {
	if !changed {
		return
	}

	if s.batch.queue(id) {
		return
	}
	s.notify(id)
}

func (s *State) notify(id int) {
	for sub := range s.Listeners(id) {
		s.invalidate(sub)
	}
}

// invalidate marks op dirty and follows the slots it produces.
// Operations already dirty stop the walk, so cycles terminate.
func (s *State) invalidate(op VariableSupport) {
	if op.IsDirty() {
		return
	}
	op.MarkDirty()

	if p, ok := op.(Producer); ok {
		for _, id := range p.Outputs() {
			s.notify(id)
		}
	}
}
