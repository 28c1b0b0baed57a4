package freqlist

import (
	"fmt"

	"go.lepak.sg/stacklist/seq"
)

// Record is an element-count pair in a Snapshot.
type Record[E comparable] struct {
	Element E   `yaml:"element" json:"element"`
	Count   int `yaml:"count" json:"count"`
}

// Snapshot is the full ordering state of a List: the manual element,
// if any, and the automatic region front to back.
type Snapshot[E comparable] struct {
	Manual    *Record[E]  `yaml:"manual,omitempty" json:"manual,omitempty"`
	Automatic []Record[E] `yaml:"automatic" json:"automatic"`
}

// Len returns the number of elements recorded in the snapshot.
func (s Snapshot[_]) Len() int {
	if s.Manual != nil {
		return len(s.Automatic) + 1
	}
	return len(s.Automatic)
}

// Export returns a Snapshot of the list. The list and the snapshot
// share no memory.
func (l *List[E]) Export() Snapshot[E] {
	var s Snapshot[E]
	if l.manual != nil {
		s.Manual = &Record[E]{
			Element: l.manual.elem,
			Count:   l.manual.count,
		}
	}

	s.Automatic = make([]Record[E], len(l.auto))
	for i, en := range l.auto {
		s.Automatic[i] = Record[E]{
			Element: en.elem,
			Count:   en.count,
		}
	}
	return s
}

// FromSnapshot rebuilds the List a Snapshot was exported from, including
// its manual element and the exact order of its automatic region.
//
// It returns ErrInvalidArgument if a record has a nil element or a count
// below 1, if an element is recorded twice, or if the automatic records
// are not in descending order of count.
func FromSnapshot[E comparable](s Snapshot[E]) (*List[E], error) {
	l := New[E]()
	seen := make(map[E]struct{}, s.Len())

	check := func(r Record[E]) error {
		if isNil(r.Element) {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrElementRequired)
		}
		if r.Count < 1 {
			return fmt.Errorf("%w: %v has count %d", ErrInvalidArgument, r.Element, r.Count)
		}
		if _, dup := seen[r.Element]; dup {
			return fmt.Errorf("%w: %v is recorded more than once", ErrInvalidArgument, r.Element)
		}
		seen[r.Element] = struct{}{}
		return nil
	}

	if s.Manual != nil {
		if err := check(*s.Manual); err != nil {
			return nil, err
		}
		l.manual = &entry[E]{elem: s.Manual.Element, count: s.Manual.Count}
	}

	l.auto = make([]*entry[E], 0, len(s.Automatic))
	for i, r := range s.Automatic {
		if err := check(r); err != nil {
			return nil, err
		}
		if i > 0 && r.Count > s.Automatic[i-1].Count {
			return nil, fmt.Errorf("%w: automatic records out of order at %d", ErrInvalidArgument, i)
		}
		// appended as-is: reinserting would reverse the order of ties
		l.auto = append(l.auto, &entry[E]{elem: r.Element, count: r.Count})
	}

	return l, nil
}

// Import builds a List from a plain ordered collection of elements. Each
// occurrence of an element counts as one addition, so duplicates end up
// as a single element with a higher count. Every element is automatically
// ordered. Unordered sources are rejected with ErrUnordered.
func Import[E comparable](src seq.Iterator[E]) (*List[E], error) {
	l := New[E]()
	if _, err := l.AddAll(src); err != nil {
		return nil, err
	}
	return l, nil
}
