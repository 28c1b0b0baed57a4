// Package seq describes ordered sequences of items and provides
// a few sources for them.
//
// Sources built from Go maps have no defined order. They say so through
// the Ordered method, and consumers that depend on order, like
// freqlist.List.AddAll, reject them.
package seq

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Iterator describes an iterator over a sequence.
// Next must always be called before Item, even for the first item.
// If Next returns false, Item must not be called.
// The iterator may be abandoned at any time; it must not
// require closing.
//
// The usual usage of an Iterator is like this:
//
//	for it.Next() {
//		x := it.Item()
//		... do stuff with x, or break ...
//	}
type Iterator[T any] interface {
	Next() bool
	Item() T
}

// Orderer may be implemented by an Iterator to declare whether
// its iteration order is meaningful.
type Orderer interface {
	Ordered() bool
}

// IsOrdered reports whether it has a defined iteration order.
// Iterators that do not implement Orderer are assumed to be ordered.
func IsOrdered(it any) bool {
	o, ok := it.(Orderer)
	return !ok || o.Ordered()
}

// Collect drains it into a slice.
func Collect[T any](it Iterator[T]) []T {
	var out []T
	for it.Next() {
		out = append(out, it.Item())
	}
	return out
}

type sliceIter[T any] struct {
	s       []T
	i       int
	ordered bool
}

func (si *sliceIter[_]) Next() bool {
	if si == nil || si.i+1 >= len(si.s) {
		return false
	}
	si.i++
	return true
}

func (si *sliceIter[T]) Item() T {
	return si.s[si.i]
}

func (si *sliceIter[_]) Ordered() bool {
	return si.ordered
}

// Slice returns an ordered Iterator over the items of s.
// s is not copied.
func Slice[T any](s []T) Iterator[T] {
	return &sliceIter[T]{s: s, i: -1, ordered: true}
}

// Of is like Slice, but takes its items as arguments.
func Of[T any](items ...T) Iterator[T] {
	return Slice(items)
}

// Set returns an Iterator over the keys of a set. Its order is
// whatever map iteration gives, so it reports itself as unordered.
func Set[T comparable](set map[T]struct{}) Iterator[T] {
	keys := make([]T, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return &sliceIter[T]{s: keys, i: -1}
}

// Sorted returns an ordered Iterator over the keys of a set,
// in ascending order.
func Sorted[T constraints.Ordered](set map[T]struct{}) Iterator[T] {
	keys := make([]T, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return Slice(keys)
}
