package internal

// notifyBatch defers slot notifications while a batch is open. A slot
// changed several times is notified once, in first change order.
type notifyBatch struct {
	// each nested batch increases the depth by 1
	depth   int
	pending map[int]struct{}
	order   []int
}

func newNotifyBatch() *notifyBatch {
	return &notifyBatch{pending: make(map[int]struct{})}
}

// queue holds slot id back if a batch is open.
func (b *notifyBatch) queue(id int) bool {
	if b.depth == 0 {
		return false
	}
	if _, ok := b.pending[id]; !ok {
		b.pending[id] = struct{}{}
		b.order = append(b.order, id)
	}
	return true
}

func (b *notifyBatch) run(fn func(), flush func(ids []int)) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth > 0 {
			return
		}
		ids := b.order
		b.order = nil
		clear(b.pending)
		flush(ids)
	}()

	fn()
}

func (b *notifyBatch) reset() {
	clear(b.pending)
	b.order = b.order[:0]
}

// Batch runs fn with slot notifications deferred until the outermost batch returns.
func (s *State) Batch(fn func()) {
	s.batch.run(fn, func(ids []int) {
		for _, id := range ids {
			s.notify(id)
		}
	})
}
