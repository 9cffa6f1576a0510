package skill

import "sort"

type Label string

// Set is a collection of canonical labels. The zero value is an empty set
// that is safe to read; use NewSet before calling Add.
type Set struct {
	items map[Label]struct{}
}

func NewSet(labels ...Label) Set {
	s := Set{items: make(map[Label]struct{}, len(labels))}
	for _, l := range labels {
		s.items[l] = struct{}{}
	}
	return s
}

func SetFromStrings(values []string) Set {
	s := Set{items: make(map[Label]struct{}, len(values))}
	for _, v := range values {
		if v == "" {
			continue
		}
		s.items[Label(v)] = struct{}{}
	}
	return s
}

func (s *Set) Add(l Label) {
	if s.items == nil {
		s.items = map[Label]struct{}{}
	}
	s.items[l] = struct{}{}
}

func (s Set) Has(l Label) bool {
	_, ok := s.items[l]
	return ok
}

func (s Set) Len() int {
	return len(s.items)
}

// Labels returns the members sorted ascending.
func (s Set) Labels() []Label {
	out := make([]Label, 0, len(s.items))
	for l := range s.items {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Set) Strings() []string {
	labels := s.Labels()
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, string(l))
	}
	return out
}

func (s Set) Intersect(other Set) Set {
	out := NewSet()
	for l := range s.items {
		if other.Has(l) {
			out.items[l] = struct{}{}
		}
	}
	return out
}

// Difference returns the labels of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := NewSet()
	for l := range s.items {
		if !other.Has(l) {
			out.items[l] = struct{}{}
		}
	}
	return out
}

func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for l := range s.items {
		if !other.Has(l) {
			return false
		}
	}
	return true
}
