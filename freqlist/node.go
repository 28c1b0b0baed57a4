package freqlist

import "fmt"

// Node is an element taken out of a List together with its count,
// so that it can be loaded into another List (or back into the same one)
// without losing its history. A Node can be loaded only once.
type Node[E comparable] struct {
	en *entry[E]
}

// Element returns the element held by the node.
// It returns the zero value once the node has been loaded.
func (n *Node[E]) Element() E {
	if n == nil || n.en == nil {
		var zero E
		return zero
	}
	return n.en.elem
}

// Count returns how many times the element had been added when it was
// retrieved. It returns 0 once the node has been loaded.
func (n *Node[_]) Count() int {
	if n == nil || n.en == nil {
		return 0
	}
	return n.en.count
}

// Loaded reports whether the node has already been loaded into a list.
func (n *Node[_]) Loaded() bool {
	return n == nil || n.en == nil
}

// Retrieve removes e from the list and returns it, with its count, as a
// Node. It returns ErrInvalidArgument if e is not in the list.
func (l *List[E]) Retrieve(e E) (*Node[E], error) {
	s := l.locate(e)
	switch {
	case s.manual:
		en := l.manual
		l.manual = nil
		return &Node[E]{en: en}, nil
	case s.index >= 0:
		return &Node[E]{en: l.take(s.index)}, nil
	default:
		return nil, fmt.Errorf("%w: %v is not in the list", ErrInvalidArgument, e)
	}
}

// Load puts the node's element back into the list with the count it had
// when it was retrieved. If toManual is true the element is set to manual
// priority, moving any current manual element to automatic ordering.
// Otherwise it goes to the position its count earns it.
//
// Load returns ErrInvalidArgument if n has already been loaded or if its
// element is already in the list. After a successful Load the node is
// spent and its accessors return zero values.
func (l *List[E]) Load(n *Node[E], toManual bool) error {
	if n.Loaded() {
		return fmt.Errorf("%w: node has already been loaded", ErrInvalidArgument)
	}
	if l.Contains(n.en.elem) {
		return fmt.Errorf("%w: %v is already in the list", ErrInvalidArgument, n.en.elem)
	}

	en := n.en
	n.en = nil

	if toManual {
		l.pin(en)
	} else {
		l.insert(en)
	}
	return nil
}
