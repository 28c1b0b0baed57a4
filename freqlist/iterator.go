package freqlist

import (
	"fmt"

	"go.lepak.sg/stacklist/seq"
)

// Iterator walks a List in either direction. It sits between elements:
// Next returns the element after it and Previous the element before it.
//
// The usual idiom is:
//
//	it := l.Iterator()
//	for it.HasNext() {
//		e, _ := it.Next()
//		// do stuff with e, maybe it.Remove() ...
//	}
//
// Changing the list other than through the iterator's own Remove
// invalidates the iterator; the result of using it afterwards is undefined.
type Iterator[E comparable] struct {
	l *List[E]

	// index of the element Next would return
	cursor int

	// +1 after Next, -1 after Previous, 0 when there is nothing to remove
	lastMove int
}

// Iterator returns an Iterator positioned before the first element.
func (l *List[E]) Iterator() *Iterator[E] {
	return &Iterator[E]{l: l}
}

// Reset moves the iterator back before the first element.
func (i *Iterator[E]) Reset() {
	i.cursor = 0
	i.lastMove = 0
}

// HasNext reports whether Next would return an element.
func (i *Iterator[_]) HasNext() bool {
	return i.cursor < i.l.Len()
}

// HasPrevious reports whether Previous would return an element.
func (i *Iterator[_]) HasPrevious() bool {
	return i.cursor > 0
}

// NextIndex returns the position of the element Next would return,
// or the list length at the end.
func (i *Iterator[_]) NextIndex() int {
	return i.cursor
}

// PreviousIndex returns the position of the element Previous would return,
// or -1 at the start.
func (i *Iterator[_]) PreviousIndex() int {
	return i.cursor - 1
}

// Next returns the next element and advances the iterator. At the end of
// the list it returns ErrNoMoreElements and the iterator does not move.
func (i *Iterator[E]) Next() (E, error) {
	if !i.HasNext() {
		var zero E
		return zero, fmt.Errorf("%w: at end of list", ErrNoMoreElements)
	}

	e := i.l.at(i.cursor).elem
	i.cursor++
	i.lastMove = 1
	return e, nil
}

// Previous returns the previous element and moves the iterator backwards.
// At the start of the list it returns ErrNoMoreElements and the iterator
// does not move.
func (i *Iterator[E]) Previous() (E, error) {
	if !i.HasPrevious() {
		var zero E
		return zero, fmt.Errorf("%w: at start of list", ErrNoMoreElements)
	}

	i.cursor--
	i.lastMove = -1
	return i.l.at(i.cursor).elem, nil
}

// Remove deletes the element last returned by Next or Previous from the
// list, whatever its count. It returns ErrInvalidState if neither has been
// called since the iterator was created, reset, or last removed an element.
func (i *Iterator[_]) Remove() error {
	switch i.lastMove {
	case 0:
		return fmt.Errorf("%w: nothing to remove since the last move", ErrInvalidState)
	case 1:
		// the removed element sits just behind the cursor
		i.cursor--
	}

	i.l.removeAt(i.cursor)
	i.lastMove = 0
	return nil
}

// All returns a forward-only iterator over the list, for use with the
// seq package. The same invalidation rules as Iterator apply.
func (l *List[E]) All() seq.Iterator[E] {
	return &cursor[E]{l: l, i: -1}
}

type cursor[E comparable] struct {
	l *List[E]
	i int
}

var _ seq.Iterator[int] = (*cursor[int])(nil)

func (c *cursor[_]) Next() bool {
	if c.i+1 >= c.l.Len() {
		return false
	}
	c.i++
	return true
}

func (c *cursor[E]) Item() E {
	return c.l.at(c.i).elem
}
