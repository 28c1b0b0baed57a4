// Package freqlist provides a list that orders its elements by how many
// times they have been added, with one optional element pinned to the front.
//
// Adding an element that is already present does not store a second copy.
// Its count goes up instead, and it moves ahead of every element with a
// lower count. Among equal counts, the element inserted or promoted most
// recently comes first. For example, adding 1, 2, 2 gives the order [2, 1].
//
// One element at a time may be set to manual priority. It sits at index 0
// regardless of its count until it is moved back to automatic ordering,
// at which point it takes the position its count earns it.
package freqlist

import (
	"fmt"
	"reflect"
	"sort"

	"golang.org/x/exp/slices"
)

type entry[E comparable] struct {
	elem  E
	count int
}

// List is a frequency-priority list. The zero value is an empty list
// ready to use. List is not safe for concurrent use.
type List[E comparable] struct {
	manual *entry[E]

	// sorted by descending count, newest first among ties
	auto []*entry[E]
}

// slot is a logical position: either the manual seat or an index
// into the automatic region. index is -1 unless the element is automatic.
type slot struct {
	manual bool
	index  int
}

func (s slot) found() bool {
	return s.manual || s.index >= 0
}

// New returns an empty List.
func New[E comparable]() *List[E] {
	return &List[E]{}
}

// Of returns a List holding items, added one at a time in order
// as if by Add.
func Of[E comparable](items ...E) *List[E] {
	l := New[E]()
	for _, item := range items {
		l.Add(item)
	}
	return l
}

// Len returns the number of distinct elements in the list.
// It is independent of the elements' counts.
func (l *List[_]) Len() int {
	if l.manual != nil {
		return len(l.auto) + 1
	}
	return len(l.auto)
}

// IsEmpty reports whether the list holds no elements.
func (l *List[_]) IsEmpty() bool {
	return l.Len() == 0
}

// Clear removes every element from the list.
func (l *List[E]) Clear() {
	l.manual = nil
	l.auto = nil
}

// Contains reports whether e is in the list, in either region.
// It panics with ErrElementRequired if e is nil.
func (l *List[E]) Contains(e E) bool {
	return l.locate(e).found()
}

// ContainsInAutomatic reports whether e is in the automatically ordered
// region of the list.
func (l *List[E]) ContainsInAutomatic(e E) bool {
	return l.locate(e).index >= 0
}

// ContainsInManual reports whether e is the element set to manual priority.
func (l *List[E]) ContainsInManual(e E) bool {
	return l.locate(e).manual
}

// ContainsAll reports whether every item is in the list.
func (l *List[E]) ContainsAll(items ...E) bool {
	for _, item := range items {
		if !l.Contains(item) {
			return false
		}
	}
	return true
}

// IndexOf returns the position of e in the list, or -1 if it is absent.
func (l *List[E]) IndexOf(e E) int {
	s := l.locate(e)
	switch {
	case s.manual:
		return 0
	case s.index < 0:
		return -1
	case l.manual != nil:
		return s.index + 1
	default:
		return s.index
	}
}

// Get returns the element at position i. Position 0 holds the manual
// element if there is one, otherwise the most frequently added element.
func (l *List[E]) Get(i int) (E, error) {
	if i < 0 || i >= l.Len() {
		var zero E
		return zero, fmt.Errorf("%w: %d, length %d", ErrOutOfRange, i, l.Len())
	}
	return l.at(i).elem, nil
}

// Count returns how many times e has been added, or 0 if e is absent.
func (l *List[E]) Count(e E) int {
	s := l.locate(e)
	switch {
	case s.manual:
		return l.manual.count
	case s.index >= 0:
		return l.auto[s.index].count
	default:
		return 0
	}
}

// ToSlice returns the elements in list order.
func (l *List[E]) ToSlice() []E {
	out := make([]E, 0, l.Len())
	if l.manual != nil {
		out = append(out, l.manual.elem)
	}
	for _, en := range l.auto {
		out = append(out, en.elem)
	}
	return out
}

// CopyTo copies the elements in list order into dst if dst is longer
// than the list. The slot right after the last element is set to the
// zero value and anything past it is left alone. If dst is not long
// enough, a new slice of exactly Len elements is returned instead.
func (l *List[E]) CopyTo(dst []E) []E {
	n := l.Len()
	if len(dst) <= n {
		return l.ToSlice()
	}

	copy(dst, l.ToSlice())
	var zero E
	dst[n] = zero
	return dst
}

// locate finds e. The returned slot is absent if e is not in the list.
func (l *List[E]) locate(e E) slot {
	mustElement(e)

	if l.manual != nil && l.manual.elem == e {
		return slot{manual: true, index: -1}
	}

	i := slices.IndexFunc(l.auto, func(en *entry[E]) bool {
		return en.elem == e
	})
	return slot{index: i}
}

// at returns the entry at logical position i, which must be in range.
func (l *List[E]) at(i int) *entry[E] {
	if l.manual != nil {
		if i == 0 {
			return l.manual
		}
		i--
	}
	return l.auto[i]
}

// removeAt deletes the entry at logical position i, which must be in range.
func (l *List[E]) removeAt(i int) *entry[E] {
	if l.manual != nil {
		if i == 0 {
			en := l.manual
			l.manual = nil
			return en
		}
		i--
	}
	return l.take(i)
}

// take deletes and returns the automatic entry at index i.
func (l *List[E]) take(i int) *entry[E] {
	en := l.auto[i]
	l.auto = slices.Delete(l.auto, i, i+1)
	return en
}

// insertionPoint returns the smallest index i within auto[:limit] such that
// every entry before i has a count greater than count, and every entry from
// i onwards has a count less than or equal to it.
func (l *List[E]) insertionPoint(count, limit int) int {
	return sort.Search(limit, func(i int) bool {
		return l.auto[i].count <= count
	})
}

// insert places en in the automatic region ahead of every entry whose count
// does not exceed its own.
func (l *List[E]) insert(en *entry[E]) {
	l.auto = slices.Insert(l.auto, l.insertionPoint(en.count, len(l.auto)), en)
}

// pin makes en the manual element, demoting the current one if present.
func (l *List[E]) pin(en *entry[E]) {
	if l.manual != nil {
		l.insert(l.manual)
	}
	l.manual = en
}

func mustElement[E comparable](e E) {
	if isNil(e) {
		panic(ErrElementRequired)
	}
}

// isNil reports whether e is a nil pointer, interface, channel or other
// nillable value. Comparable types that cannot be nil always return false.
func isNil[E comparable](e E) bool {
	v := reflect.ValueOf(&e).Elem()
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Map,
		reflect.Slice, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
