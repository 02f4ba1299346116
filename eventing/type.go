// Package eventing provides a synchronous publish-subscribe hub over a closed
// set of event types.
//
// A Dispatcher is owned by the component that emits the events. Other
// components only ever see the subscribe-only API returned by PublicAPI, so the
// ability to dispatch never leaks out of the owner.
package eventing

import (
	"sort"
	"strings"
)

// Type identifies a kind of event. Types are compared by identity, so two
// types with the same name are still different types.
type Type struct {
	Name string
}

// String returns the name of the type.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return t.Name
}

// TypeSet is an immutable, closed set of event types.
type TypeSet struct {
	types map[*Type]struct{}
}

// NewTypeSet creates a set that contains the given types. Duplicates are
// collapsed and nil types are ignored.
func NewTypeSet(types ...*Type) TypeSet {
	s := TypeSet{types: make(map[*Type]struct{}, len(types))}
	for _, t := range types {
		if t == nil {
			continue
		}

		s.types[t] = struct{}{}
	}

	return s
}

// Contains tells if the type is a member of the set.
func (s TypeSet) Contains(t *Type) bool {
	_, ok := s.types[t]
	return ok
}

// Len returns the number of types in the set.
func (s TypeSet) Len() int {
	return len(s.types)
}

// Types returns the members of the set, ordered by name.
func (s TypeSet) Types() []*Type {
	list := make([]*Type, 0, len(s.types))
	for t := range s.types {
		list = append(list, t)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	return list
}

// Union merges two sets that must not share any type. Overlapping sets are a
// configuration error, since the owner of each set would then disagree on
// what an event of the shared type means.
func (s TypeSet) Union(other TypeSet) (TypeSet, error) {
	var shared []string

	merged := make([]*Type, 0, s.Len()+other.Len())
	for t := range s.types {
		if other.Contains(t) {
			shared = append(shared, t.Name)
		}

		merged = append(merged, t)
	}

	if len(shared) > 0 {
		sort.Strings(shared)
		return TypeSet{}, &ConfigurationError{
			Reason: "event type sets overlap on " + strings.Join(shared, ", "),
			Err:    ErrOverlappingTypes,
		}
	}

	for t := range other.types {
		merged = append(merged, t)
	}

	return NewTypeSet(merged...), nil
}
