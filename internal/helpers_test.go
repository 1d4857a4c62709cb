package internal

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func end() Operation { return &ContainerEnd{} }

func quietLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func load(t *testing.T, ops []Operation, opts ...Option) *Document {
	t.Helper()

	opts = append([]Option{WithLogger(quietLogger()), WithClock(fixedClock)}, opts...)
	doc, err := Load(ops, opts...)
	require.NoError(t, err)
	return doc
}

// start loads ops and initializes the document against a 100x100 recorder.
func start(t *testing.T, ops ...Operation) (*Document, *Context, *Recorder) {
	t.Helper()

	doc := load(t, ops)
	rec := NewRecorder()
	ctx := NewContext(rec, 100, 100, 1)
	doc.InitializeContext(ctx)
	return doc, ctx, rec
}

// probe records its refreshes and applies into a shared log.
type probe struct {
	OpBase

	name    string
	reads   []int
	outputs []int
	paints  bool
	log     *[]string
}

func newProbe(log *[]string, name string, reads ...int) *probe {
	return &probe{name: name, reads: reads, log: log}
}

func (p *probe) RegisterListening(ctx *Context) {
	for _, id := range p.reads {
		ctx.State().ListensTo(id, p)
	}
}

func (p *probe) UpdateVariables(*Context) {
	*p.log = append(*p.log, "update "+p.name)
}

func (p *probe) Apply(ctx *Context) error {
	*p.log = append(*p.log, "apply "+p.name+" "+ctx.Mode.String())
	return nil
}

func (p *probe) Outputs() []int         { return p.outputs }
func (p *probe) PaintsEveryFrame() bool { return p.paints }

// failing returns an error, or panics when panics is set.
type failing struct {
	OpBase

	panics bool
	calls  int
}

func (f *failing) Apply(ctx *Context) error {
	if ctx.Mode != ModePaint {
		return nil
	}
	f.calls++
	if f.panics {
		panic("boom")
	}
	return errFailing
}

func (f *failing) PaintsEveryFrame() bool { return true }

var errFailing = errors.New("failing operation")
