package internal

import (
	"fmt"
	"strings"
)

// Recorder is an in-memory PaintContext. Draw commands are recorded with
// the translation and scale in effect when they were issued.
type Recorder struct {
	Commands []string

	tx, ty float32
	sx, sy float32
	stack  [][4]float32

	needsRepaint bool
}

func NewRecorder() *Recorder {
	return &Recorder{sx: 1, sy: 1}
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, [4]float32{r.tx, r.ty, r.sx, r.sy})
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.tx, r.ty, r.sx, r.sy = top[0], top[1], top[2], top[3]
}

func (r *Recorder) Translate(dx, dy float32) {
	r.tx += dx * r.sx
	r.ty += dy * r.sy
}

func (r *Recorder) Scale(sx, sy float32) {
	r.sx *= sx
	r.sy *= sy
}

func (r *Recorder) point(x, y float32) (float32, float32) {
	return r.tx + x*r.sx, r.ty + y*r.sy
}

func (r *Recorder) DrawRect(left, top, right, bottom float32, color uint32) {
	l, t := r.point(left, top)
	rr, b := r.point(right, bottom)
	r.Commands = append(r.Commands, fmt.Sprintf("rect %v,%v,%v,%v #%08x", l, t, rr, b, color))
}

func (r *Recorder) DrawText(text string, x, y float32, color uint32) {
	px, py := r.point(x, y)
	r.Commands = append(r.Commands, fmt.Sprintf("text %q %v,%v #%08x", text, px, py, color))
}

func (r *Recorder) ClearNeedsRepaint() { r.needsRepaint = false }
func (r *Recorder) NeedsRepaint() bool { return r.needsRepaint }

// RequestRepaint makes the next NeedsRepaint report true.
func (r *Recorder) RequestRepaint() { r.needsRepaint = true }

// Reset drops the recorded commands.
func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }

func (r *Recorder) String() string { return strings.Join(r.Commands, "\n") }
