package fuzzy

import (
	"errors"
	"fmt"
)

// Term couples one linguistic label with its membership function.
type Term struct {
	Label string
	MF    MembershipFunction
}

// Set is a linguistic variable: a fixed, ordered list of labels, each
// owning one membership function and one mutable degree of truth in
// [0,1]. Label indices are stable for the lifetime of the Set and are
// the identity rules refer to. A Set is built once at configuration
// time; afterwards only the degree vector changes, overwritten on
// every evaluation cycle.
type Set struct {
	name    string
	labels  []string
	funcs   []MembershipFunction
	degrees []float64
	index   map[string]int
}

// NewSet builds a linguistic variable from an ordered term list. It
// fails on an empty name or term list, an empty or duplicate label, or
// invalid shape parameters.
func NewSet(name string, terms ...Term) (*Set, error) {
	if name == "" {
		return nil, errors.New("fuzzy: set name must not be empty")
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("fuzzy: set %q has no terms", name)
	}
	s := &Set{
		name:    name,
		labels:  make([]string, len(terms)),
		funcs:   make([]MembershipFunction, len(terms)),
		degrees: make([]float64, len(terms)),
		index:   make(map[string]int, len(terms)),
	}
	for i, t := range terms {
		if t.Label == "" {
			return nil, fmt.Errorf("fuzzy: set %q: term %d has an empty label", name, i)
		}
		if _, dup := s.index[t.Label]; dup {
			return nil, fmt.Errorf("fuzzy: set %q: duplicate label %q", name, t.Label)
		}
		if err := t.MF.Validate(); err != nil {
			return nil, fmt.Errorf("fuzzy: set %q, label %q: %w", name, t.Label, err)
		}
		s.labels[i] = t.Label
		s.funcs[i] = t.MF
		s.index[t.Label] = i
	}
	return s, nil
}

// MustSet is NewSet for hand-written tables. It panics on a bad table.
func MustSet(name string, terms ...Term) *Set {
	s, err := NewSet(name, terms...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the variable name.
func (s *Set) Name() string { return s.name }

// Len returns the number of labels.
func (s *Set) Len() int { return len(s.labels) }

// Label returns the label at index i.
func (s *Set) Label(i int) string { return s.labels[i] }

// Index returns the index of label, or -1 when the set has no such
// label.
func (s *Set) Index(label string) int {
	if i, ok := s.index[label]; ok {
		return i
	}
	return -1
}

// Func returns the membership function at index i.
func (s *Set) Func(i int) MembershipFunction { return s.funcs[i] }

// Degree returns the current degree of the label at index i.
func (s *Set) Degree(i int) float64 { return s.degrees[i] }

// DegreeOf returns the current degree of label, or 0 when the set has
// no such label.
func (s *Set) DegreeOf(label string) float64 {
	if i, ok := s.index[label]; ok {
		return s.degrees[i]
	}
	return 0.0
}

// Degrees copies the current degree vector into a fresh slice, in
// label order. Display paths use this; the evaluation path never does.
func (s *Set) Degrees() []float64 {
	out := make([]float64, len(s.degrees))
	copy(out, s.degrees)
	return out
}

// SetDegree overwrites the degree at index i. Inference manages output
// degrees itself; this exists for callers that inject known state, as
// tests and replays do.
func (s *Set) SetDegree(i int, d float64) { s.degrees[i] = d }

// Classify computes the membership degree of x for every label and
// overwrites the degree vector. Degrees are written raw: overlapping
// functions may sum above one, and a gap in coverage leaves the whole
// vector at zero.
func (s *Set) Classify(x float64) {
	for i, mf := range s.funcs {
		s.degrees[i] = Evaluate(x, mf)
	}
}

// Normalize rescales the degree vector to sum to one, preserving
// ratios. An all-zero vector stays all-zero, and normalizing twice is
// a no-op.
func (s *Set) Normalize() {
	sum := 0.0
	for _, d := range s.degrees {
		sum += d
	}
	if sum == 0.0 {
		for i := range s.degrees {
			s.degrees[i] = 0.0
		}
		return
	}
	for i := range s.degrees {
		s.degrees[i] /= sum
	}
}
