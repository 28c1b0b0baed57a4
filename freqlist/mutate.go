package freqlist

import (
	"fmt"

	"go.lepak.sg/stacklist/seq"
)

// AddToAutomatic adds e to the automatically ordered region and reports
// whether the order of the list changed.
//
// A new element starts with a count of 1, ahead of all other elements
// with a count of 1. An element already in the automatic region has its
// count incremented and moves forward if its new count earns it a better
// position. The manual element is moved back to automatic ordering with
// its count unchanged.
func (l *List[E]) AddToAutomatic(e E) bool {
	s := l.locate(e)
	switch {
	case s.manual:
		en := l.manual
		l.manual = nil
		l.insert(en)
		return true

	case s.index >= 0:
		en := l.auto[s.index]
		en.count++
		// Only entries ahead of it can be overtaken.
		pos := l.insertionPoint(en.count, s.index)
		if pos == s.index {
			return false
		}
		copy(l.auto[pos+1:s.index+1], l.auto[pos:s.index])
		l.auto[pos] = en
		return true

	default:
		l.insert(&entry[E]{elem: e, count: 1})
		return true
	}
}

// AddToManual sets e to manual priority and increments its count. Any other
// element on manual priority goes back to automatic ordering with its count
// unchanged. AddToManual reports whether the order of the list changed,
// which is false only if e was already the manual element.
func (l *List[E]) AddToManual(e E) bool {
	s := l.locate(e)
	if s.manual {
		l.manual.count++
		return false
	}

	var en *entry[E]
	if s.index >= 0 {
		en = l.take(s.index)
		en.count++
	} else {
		en = &entry[E]{elem: e, count: 1}
	}

	l.pin(en)
	return true
}

// Add increments the count of e, keeping it on manual priority if that is
// where it is, and otherwise behaves like AddToAutomatic.
func (l *List[E]) Add(e E) bool {
	if l.ContainsInManual(e) {
		l.manual.count++
		return false
	}
	return l.AddToAutomatic(e)
}

// AddAll calls Add on every item of src, in order, and reports whether
// any of them changed the order of the list.
//
// src must have a defined order: a source whose Ordered method returns
// false is rejected with ErrUnordered. A source iterating over l itself
// is rejected with ErrInvalidArgument, and so is a source yielding a nil
// element. Nothing is added in any of these cases.
func (l *List[E]) AddAll(src seq.Iterator[E]) (bool, error) {
	if err := l.checkSource(src); err != nil {
		return false, err
	}

	items := seq.Collect(src)
	for i, item := range items {
		if isNil(item) {
			return false, fmt.Errorf("%w: item %d: %w", ErrInvalidArgument, i, ErrElementRequired)
		}
	}

	changed := false
	for _, item := range items {
		if l.Add(item) {
			changed = true
		}
	}
	return changed, nil
}

func (l *List[E]) checkSource(src seq.Iterator[E]) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	if !seq.IsOrdered(src) {
		return ErrUnordered
	}
	if c, ok := src.(*cursor[E]); ok && c.l == l {
		return fmt.Errorf("%w: source is the list itself", ErrInvalidArgument)
	}
	return nil
}

// RelocateAutomaticToManual sets e to manual priority without changing its
// count. e must currently be in the automatic region; otherwise, including
// when e is already the manual element, ErrInvalidArgument is returned.
func (l *List[E]) RelocateAutomaticToManual(e E) error {
	s := l.locate(e)
	if s.index < 0 {
		return fmt.Errorf("%w: %v is not automatically ordered", ErrInvalidArgument, e)
	}

	l.pin(l.take(s.index))
	return nil
}

// RelocateManualToAutomatic moves the manual element back to automatic
// ordering, at the position its count earns it. It returns ErrInvalidState
// if no element is on manual priority.
func (l *List[E]) RelocateManualToAutomatic() error {
	if l.manual == nil {
		return fmt.Errorf("%w: no element is on manual priority", ErrInvalidState)
	}

	en := l.manual
	l.manual = nil
	l.insert(en)
	return nil
}

// Remove deletes e from the list, whatever its count, and reports whether
// it was present.
func (l *List[E]) Remove(e E) bool {
	s := l.locate(e)
	switch {
	case s.manual:
		l.manual = nil
	case s.index >= 0:
		l.take(s.index)
	default:
		return false
	}
	return true
}

// RemoveAll deletes every item from the list and reports whether
// the list changed.
func (l *List[E]) RemoveAll(items ...E) bool {
	changed := false
	for _, item := range items {
		if l.Remove(item) {
			changed = true
		}
	}
	return changed
}

// RetainAll deletes every element that is not among items and reports
// whether the list changed.
func (l *List[E]) RetainAll(items ...E) bool {
	keep := make(map[E]struct{}, len(items))
	for _, item := range items {
		mustElement(item)
		keep[item] = struct{}{}
	}

	return l.RetainFunc(func(e E) bool {
		_, ok := keep[e]
		return ok
	})
}

// RetainFunc deletes every element for which keep returns false and
// reports whether the list changed.
func (l *List[E]) RetainFunc(keep func(E) bool) bool {
	changed := false
	for i := 0; i < l.Len(); {
		if keep(l.at(i).elem) {
			i++
			continue
		}
		l.removeAt(i)
		changed = true
	}
	return changed
}
