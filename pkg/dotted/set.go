package dotted

import (
	"iter"
	"slices"
)

// Set holds names unique under [Name.Equal], in insertion order.
// The zero value is not usable; create sets with NewSet.
type Set struct {
	index map[string]int
	names []Name
}

// NewSet returns a set holding names, first occurrence wins.
func NewSet(names ...Name) *Set {
	s := &Set{index: make(map[string]int, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Collect drains seq into a new set.
func Collect(seq iter.Seq[Name]) *Set {
	s := NewSet()
	if seq == nil {
		return s
	}
	for n := range seq {
		s.Add(n)
	}
	return s
}

// Add inserts n and reports whether it was not already present.
func (s *Set) Add(n Name) bool {
	if _, ok := s.index[n.safe]; ok {
		return false
	}
	s.index[n.safe] = len(s.names)
	s.names = append(s.names, n)
	return true
}

// AddAll inserts every name of o.
func (s *Set) AddAll(o *Set) {
	for _, n := range o.names {
		s.Add(n)
	}
}

// Has reports whether a name equal to n is present.
func (s *Set) Has(n Name) bool {
	_, ok := s.index[n.safe]
	return ok
}

// Get returns the stored name equal to n.
func (s *Set) Get(n Name) (Name, bool) {
	i, ok := s.index[n.safe]
	if !ok {
		return Name{}, false
	}
	return s.names[i], true
}

// ContainsName reports whether n is in any member of the set.
func (s *Set) ContainsName(n Name) bool {
	return s.Any(func(m Name) bool { return n.In(m) })
}

// Any reports whether pred holds for at least one member.
func (s *Set) Any(pred func(Name) bool) bool {
	return slices.ContainsFunc(s.names, pred)
}

// Len returns the number of names.
func (s *Set) Len() int { return len(s.names) }

// Names returns the members in insertion order.
func (s *Set) Names() []Name { return slices.Clone(s.names) }

// All iterates over the members in insertion order.
func (s *Set) All() iter.Seq[Name] { return slices.Values(s.names) }

// Sorted returns the members ordered by [Name.Less].
func (s *Set) Sorted() []Name {
	out := slices.Clone(s.names)
	Sort(out)
	return out
}

// Sort orders names by [Name.Less]. It is stable so equal spellings keep
// their relative order.
func Sort(names []Name) {
	slices.SortStableFunc(names, func(a, b Name) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
}

// Unique drops names equal to an earlier one and sorts the rest.
func Unique(names []Name) []Name {
	out := NewSet(names...).Names()
	Sort(out)
	return out
}
