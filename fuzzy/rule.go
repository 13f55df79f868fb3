package fuzzy

import (
	"errors"
	"fmt"
	"strings"
)

type antOp uint8

const (
	opLeaf antOp = iota
	opAll
	opAny
)

// Antecedent is one node of a rule's condition tree: either a single
// (variable, label) reference, possibly negated, or an ALL_OF/ANY_OF
// combinator over one or more child nodes. Trees are immutable once
// built and may nest to any depth.
type Antecedent struct {
	op       antOp
	set      *Set
	label    int
	negate   bool
	children []Antecedent
}

// Is references one label of an input variable. It panics when the set
// has no such label: rule tables are fixed configuration, and a
// dangling reference is a programmer error caught at startup.
func Is(s *Set, label string) Antecedent {
	return leaf(s, label, false)
}

// Not references the complement of one label; its truth value is one
// minus the label's degree.
func Not(s *Set, label string) Antecedent {
	return leaf(s, label, true)
}

func leaf(s *Set, label string, negate bool) Antecedent {
	if s == nil {
		panic("fuzzy: antecedent references a nil set")
	}
	i := s.Index(label)
	if i < 0 {
		panic(fmt.Sprintf("fuzzy: set %q has no label %q", s.name, label))
	}
	return Antecedent{op: opLeaf, set: s, label: i, negate: negate}
}

// All combines conditions with fuzzy AND: its truth value is the
// minimum over the children. It panics on an empty child list.
func All(children ...Antecedent) Antecedent {
	if len(children) == 0 {
		panic("fuzzy: ALL combinator with no children")
	}
	return Antecedent{op: opAll, children: children}
}

// Any combines conditions with fuzzy OR: its truth value is the
// maximum over the children. It panics on an empty child list.
func Any(children ...Antecedent) Antecedent {
	if len(children) == 0 {
		panic("fuzzy: ANY combinator with no children")
	}
	return Antecedent{op: opAny, children: children}
}

// eval computes the node's truth degree bottom-up from the current
// input degrees. min and max are exact IEEE comparisons.
func (a *Antecedent) eval() float64 {
	switch a.op {
	case opLeaf:
		d := a.set.degrees[a.label]
		if a.negate {
			return 1.0 - d
		}
		return d
	case opAll:
		v := a.children[0].eval()
		for i := 1; i < len(a.children); i++ {
			if c := a.children[i].eval(); c < v {
				v = c
			}
		}
		return v
	case opAny:
		v := a.children[0].eval()
		for i := 1; i < len(a.children); i++ {
			if c := a.children[i].eval(); c > v {
				v = c
			}
		}
		return v
	}
	panic("fuzzy: unknown antecedent op")
}

func (a *Antecedent) validate() error {
	switch a.op {
	case opLeaf:
		if a.set == nil {
			return errors.New("condition references a nil set")
		}
		if a.label < 0 || a.label >= a.set.Len() {
			return fmt.Errorf("condition label %d out of range for set %q", a.label, a.set.name)
		}
		return nil
	case opAll, opAny:
		if len(a.children) == 0 {
			return errors.New("combinator with no children")
		}
		for i := range a.children {
			if err := a.children[i].validate(); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown antecedent op %d", a.op)
}

// String renders the condition tree in readable IF-clause form, for
// rule listings and eval diagnostics.
func (a Antecedent) String() string {
	switch a.op {
	case opLeaf:
		if a.set == nil {
			return "<invalid>"
		}
		verb := "IS"
		if a.negate {
			verb = "IS NOT"
		}
		return fmt.Sprintf("%s %s %s", a.set.name, verb, a.set.labels[a.label])
	case opAll:
		return a.join(" AND ")
	case opAny:
		return a.join(" OR ")
	}
	return "<invalid>"
}

func (a Antecedent) join(sep string) string {
	parts := make([]string, len(a.children))
	for i, c := range a.children {
		if c.op == opLeaf {
			parts[i] = c.String()
		} else {
			parts[i] = "(" + c.String() + ")"
		}
	}
	return strings.Join(parts, sep)
}

// Rule is one fuzzy implication: when the antecedent holds to some
// degree, the consequent label holds to at least that degree.
type Rule struct {
	when     Antecedent
	out      *Set
	outLabel int
}

// NewRule builds a rule concluding the given label of out from the
// antecedent tree. It panics when out has no such label.
func NewRule(when Antecedent, out *Set, label string) Rule {
	if out == nil {
		panic("fuzzy: rule concludes into a nil set")
	}
	i := out.Index(label)
	if i < 0 {
		panic(fmt.Sprintf("fuzzy: set %q has no label %q", out.name, label))
	}
	return Rule{when: when, out: out, outLabel: i}
}

// Output returns the consequent variable and label name.
func (r *Rule) Output() (*Set, string) {
	return r.out, r.out.labels[r.outLabel]
}

func (r Rule) String() string {
	return fmt.Sprintf("IF %s THEN %s IS %s", r.when, r.out.name, r.out.labels[r.outLabel])
}

// consequent identifies one output degree touched by the rule base.
type consequent struct {
	set   *Set
	label int
}

// RuleSet is an ordered collection of rules, typically sharing input
// and output variables. Order is kept only for display; the inference
// result never depends on it.
type RuleSet struct {
	rules     []Rule
	resets    []consequent // distinct consequents, cleared before each pass
	outputs   []*Set       // distinct output sets, normalized after each pass
	strengths []float64    // firing strength per rule, latest pass
}

// NewRuleSet validates the rules and precomputes the reset and
// normalization targets, so Infer allocates nothing. It fails on an
// empty rule list or any malformed rule.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, errors.New("fuzzy: rule set has no rules")
	}
	rs := &RuleSet{
		rules:     rules,
		strengths: make([]float64, len(rules)),
	}
	seenCons := make(map[consequent]bool, len(rules))
	seenOut := make(map[*Set]bool, 1)
	for i := range rules {
		r := &rules[i]
		if r.out == nil {
			return nil, fmt.Errorf("fuzzy: rule %d has no consequent", i)
		}
		if r.outLabel < 0 || r.outLabel >= r.out.Len() {
			return nil, fmt.Errorf("fuzzy: rule %d concludes an out-of-range label of set %q", i, r.out.name)
		}
		if err := r.when.validate(); err != nil {
			return nil, fmt.Errorf("fuzzy: rule %d: %w", i, err)
		}
		c := consequent{set: r.out, label: r.outLabel}
		if !seenCons[c] {
			seenCons[c] = true
			rs.resets = append(rs.resets, c)
		}
		if !seenOut[r.out] {
			seenOut[r.out] = true
			rs.outputs = append(rs.outputs, r.out)
		}
	}
	return rs, nil
}

// MustRuleSet is NewRuleSet for hand-written tables. It panics on a
// bad table.
func MustRuleSet(rules ...Rule) *RuleSet {
	rs, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rule returns the rule at index i.
func (rs *RuleSet) Rule(i int) Rule { return rs.rules[i] }
