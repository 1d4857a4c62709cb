package internal

import "iter"

// subscriptionLink ties a slot to one operation reading it.
type subscriptionLink struct {
	slot int
	sub  VariableSupport

	prev *subscriptionLink
	next *subscriptionLink
}

// subscribers is the list of operations reading one slot, in registration order.
type subscribers struct {
	head *subscriptionLink
}

func (s *subscribers) add(slot int, sub VariableSupport) bool {
	for link := s.head; link != nil; link = link.next {
		if link.sub == sub {
			return false
		}
	}

	link := &subscriptionLink{slot: slot, sub: sub}

	if s.head == nil {
		s.head = link
		link.prev = link // loop to self
		link.next = nil
	} else {
		tail := s.head.prev
		tail.next = link
		link.prev = tail
		link.next = nil
		s.head.prev = link
	}

	return true
}

func (s *subscribers) remove(sub VariableSupport) {
	for link := s.head; link != nil; link = link.next {
		if link.sub != sub {
			continue
		}

		if link == s.head {
			s.head = link.next
			if s.head != nil {
				s.head.prev = link.prev
			}
		} else {
			link.prev.next = link.next
			if link.next != nil {
				link.next.prev = link.prev
			} else {
				s.head.prev = link.prev
			}
		}
		return
	}
}

func (s *subscribers) all() iter.Seq[VariableSupport] {
	return func(yield func(VariableSupport) bool) {
		link := s.head

		for link != nil {
			next := link.next
			if !yield(link.sub) {
				return
			}
			link = next
		}
	}
}

func (s *subscribers) len() int {
	n := 0
	for link := s.head; link != nil; link = link.next {
		n++
	}
	return n
}
