package list

// Cursor is a position inside a List, independent of the list's own cursor.
// Cursors are values: Next and Remove return a new Cursor instead of mutating
// the receiver, so a removal can never be followed by an accidental skip.
// A Cursor is only meaningful until the list is changed by something other
// than that Cursor.
type Cursor[T any] struct {
	list *List[T]
	prev *element[T]
	e    *element[T]
}

// Front returns a cursor on the head of the list.
func (l *List[T]) Front() Cursor[T] {
	if l == nil {
		return Cursor[T]{}
	}
	return Cursor[T]{list: l, e: l.head}
}

// Valid reports whether the cursor points at an element.
func (c Cursor[T]) Valid() bool {
	return c.e != nil
}

// Value returns the element value, or the zero value for an invalid cursor.
func (c Cursor[T]) Value() T {
	if c.e == nil {
		var zero T
		return zero
	}
	return c.e.value
}

// Next returns a cursor on the following element.
func (c Cursor[T]) Next() Cursor[T] {
	if c.e == nil {
		return c
	}
	return Cursor[T]{list: c.list, prev: c.e, e: c.e.next}
}

// Remove unlinks the element under c and returns a cursor already positioned
// on its successor, together with the removed value. If the list's own cursor
// was on the removed element it moves to the successor as well, matching
// PopCurrent.
func (c Cursor[T]) Remove() (Cursor[T], T) {
	var zero T
	if c.e == nil || c.list == nil {
		return c, zero
	}
	prev := c.prev
	if (prev == nil && c.list.head != c.e) || (prev != nil && prev.next != c.e) {
		var ok bool
		if prev, ok = c.list.predecessor(c.e); !ok {
			return Cursor[T]{list: c.list}, zero
		}
	}
	removed := c.e
	next := removed.next
	c.list.unlink(prev, removed)
	if c.list.cur == removed {
		c.list.cur = next
	}
	return Cursor[T]{list: c.list, prev: prev, e: next}, removed.value
}
