package internal

// inflater rebuilds the operation tree from a flat stream.
type inflater struct {
	arena *Arena

	// smallest component id seen, synthetic ids are allocated below it
	lastID int
}

func newInflater(arena *Arena) *inflater {
	return &inflater{arena: arena, lastID: -1}
}

func (f *inflater) inflate(ops []Operation) ([]Operation, error) {
	var top []Operation
	var stack []Container

	appendOp := func(op Operation) {
		if len(stack) == 0 {
			top = append(top, op)
			return
		}
		stack[len(stack)-1].Append(op)
	}

	for i, op := range ops {
		switch o := op.(type) {
		case *ContainerEnd:
			if len(stack) == 0 {
				return nil, &MalformedDocumentError{Index: i, Reason: "container end without an open container"}
			}

			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if comp, ok := c.(Component); ok {
				comp.Inflate()
			}
			appendOp(c)

		case Container:
			if comp, ok := o.(Component); ok {
				f.arena.add(comp)
				b := comp.Base()
				b.parent = enclosingComponent(stack)
				if b.id < f.lastID {
					f.lastID = b.id
				}
			}
			stack = append(stack, o)

		default:
			appendOp(op)
		}
	}

	if len(stack) > 0 {
		return nil, &MalformedDocumentError{Index: -1, Reason: "unclosed container at end of stream"}
	}

	return top, nil
}

func enclosingComponent(stack []Container) Handle {
	for i := len(stack) - 1; i >= 0; i-- {
		if comp, ok := stack[i].(Component); ok {
			return comp.Base().handle
		}
	}
	return NoHandle
}

// assignIDs gives every component still carrying NoID a synthetic id below
// any id found in the stream, top-down.
func (f *inflater) assignIDs() {
	for c := range f.arena.All() {
		b := c.Base()
		if b.id == NoID {
			f.lastID--
			b.id = f.lastID
		}
	}
}

// findRoot returns the single top-level root layout, if any.
func findRoot(top []Operation) (*RootLayoutComponent, error) {
	var root *RootLayoutComponent
	for _, op := range top {
		r, ok := op.(*RootLayoutComponent)
		if !ok {
			continue
		}
		if root != nil {
			return nil, &MalformedDocumentError{Index: -1, Reason: "more than one root layout"}
		}
		root = r
	}
	return root, nil
}
