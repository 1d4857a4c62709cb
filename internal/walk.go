package internal

import "iter"

// Traverse yields every operation depth-first, pre-order, with its nesting depth.
func Traverse(ops []Operation) iter.Seq2[int, Operation] {
	return func(yield func(int, Operation) bool) {
		traverse(ops, 0, yield)
	}
}

func traverse(ops []Operation, depth int, yield func(int, Operation) bool) bool {
	for _, op := range ops {
		if !yield(depth, op) {
			return false
		}

		if c, ok := op.(Container); ok {
			if !traverse(c.Children(), depth+1, yield) {
				return false
			}
		}
	}
	return true
}

// Each yields, in traversal order, every operation implementing T.
func Each[T any](ops []Operation) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, op := range Traverse(ops) {
			if v, ok := op.(T); ok {
				if !yield(v) {
					return
				}
			}
		}
	}
}
