// Package list provides an insertion-ordered, singly linked container with a
// single movable cursor, plus a Cursor value type for removal while iterating.
package list

import "iter"

type element[T any] struct {
	value T
	next  *element[T]
}

// List is an insertion-ordered sequence of owned values.
// The zero value is an empty list. A nil *List behaves as an empty list:
// reads return the zero value and false, writes are no-ops.
type List[T any] struct {
	head *element[T]
	tail *element[T]
	cur  *element[T]
	size int
}

// New creates an empty list
func New[T any]() *List[T] {
	return &List[T]{}
}

// PushBack appends v; it becomes the new tail.
func (l *List[T]) PushBack(v T) {
	if l == nil {
		return
	}
	e := &element[T]{value: v}
	if l.tail != nil {
		l.tail.next = e
	} else {
		l.head = e
	}
	l.tail = e
	l.size++
}

// First moves the cursor to the head and returns the head value.
func (l *List[T]) First() (T, bool) {
	var zero T
	if l == nil || l.head == nil {
		return zero, false
	}
	l.cur = l.head
	return l.cur.value, true
}

// Next advances the cursor one position. At the tail, or with no cursor set,
// it returns false and leaves the cursor where it was.
func (l *List[T]) Next() (T, bool) {
	var zero T
	if l == nil || l.cur == nil || l.cur.next == nil {
		return zero, false
	}
	l.cur = l.cur.next
	return l.cur.value, true
}

// Current returns the value under the cursor without moving it.
func (l *List[T]) Current() (T, bool) {
	var zero T
	if l == nil || l.cur == nil {
		return zero, false
	}
	return l.cur.value, true
}

// PopCurrent removes the value under the cursor and returns it. The cursor
// lands on the element that followed the removed one, or is unset when the
// tail was removed. Read the successor with Current, not Next: calling Next
// here would skip it.
func (l *List[T]) PopCurrent() (T, bool) {
	var zero T
	if l == nil || l.cur == nil {
		return zero, false
	}
	prev, ok := l.predecessor(l.cur)
	if !ok {
		l.cur = nil
		return zero, false
	}
	removed := l.cur
	next := removed.next
	l.unlink(prev, removed)
	l.cur = next
	return removed.value, true
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Clear drops every element and unsets the cursor.
func (l *List[T]) Clear() {
	if l == nil {
		return
	}
	for e := l.head; e != nil; {
		next := e.next
		e.next = nil
		e = next
	}
	l.head, l.tail, l.cur = nil, nil, nil
	l.size = 0
}

// Destroy releases every remaining element. The list must not be used
// afterwards by its previous owner.
func (l *List[T]) Destroy() {
	l.Clear()
}

// All yields every value in order. It does not move the list cursor.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		for e := l.head; e != nil; e = e.next {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Values returns a snapshot of the list contents.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// At returns the value at zero-based position i.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if l == nil || i < 0 || i >= l.size {
		return zero, false
	}
	e := l.head
	for ; i > 0; i-- {
		e = e.next
	}
	return e.value, true
}

// RemoveFirst removes the first value matching fn and returns it.
func (l *List[T]) RemoveFirst(fn func(T) bool) (T, bool) {
	for c := l.Front(); c.Valid(); c = c.Next() {
		if fn(c.Value()) {
			_, v := c.Remove()
			return v, true
		}
	}
	var zero T
	return zero, false
}

// RemoveAll removes every value matching fn and returns how many were removed.
func (l *List[T]) RemoveAll(fn func(T) bool) int {
	n := 0
	for c := l.Front(); c.Valid(); {
		if fn(c.Value()) {
			c, _ = c.Remove()
			n++
			continue
		}
		c = c.Next()
	}
	return n
}

func (l *List[T]) predecessor(target *element[T]) (*element[T], bool) {
	var prev *element[T]
	for e := l.head; e != nil; e = e.next {
		if e == target {
			return prev, true
		}
		prev = e
	}
	return nil, false
}

func (l *List[T]) unlink(prev, e *element[T]) {
	if prev == nil {
		l.head = e.next
	} else {
		prev.next = e.next
	}
	if l.tail == e {
		l.tail = prev
	}
	e.next = nil
	l.size--
}
