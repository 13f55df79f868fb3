package config

import (
	"fmt"

	"github.com/fantop/fantop/fuzzy"
	"github.com/fantop/fantop/util"
)

// Crisp sources a variable can bind to. Each cycle the engine classifies
// every input variable from the sample field its source names; the single
// variable with source output receives the defuzzified result instead.
const (
	SourceTemperature = "temperature"
	SourceTempRate    = "temp_rate"
	SourcePower       = "power"
	SourceFanDuty     = "fan_duty"
	SourceOutput      = "output"
)

// Profile declares a fuzzy control system: its linguistic variables, the
// rule base, and the actuation mapping applied to the defuzzified output.
type Profile struct {
	Variables []VariableConfig `yaml:"variables"`
	Rules     []RuleConfig     `yaml:"rules"`
	Actuator  ActuatorConfig   `yaml:"actuator"`
}

type VariableConfig struct {
	Name   string       `yaml:"name"`
	Source string       `yaml:"source"`
	Terms  []TermConfig `yaml:"terms"`
}

type TermConfig struct {
	Label  string    `yaml:"label"`
	Shape  string    `yaml:"shape"` // triangle, trapezoid, rectangle
	Params []float64 `yaml:"params,flow"`
}

// Node is one antecedent clause. Exactly one field may be set: is and not
// name a [variable, label] pair, all and any combine child clauses.
type Node struct {
	Is  []string `yaml:"is,omitempty,flow"`
	Not []string `yaml:"not,omitempty,flow"`
	All []Node   `yaml:"all,omitempty"`
	Any []Node   `yaml:"any,omitempty"`
}

type RuleConfig struct {
	If   Node              `yaml:"if"`
	Then map[string]string `yaml:"then"` // exactly one variable: label pair
}

// ActuatorConfig maps the defuzzified fan speed onto a duty command. Raw
// speeds at or below Threshold stop the fan outright; anything above is
// mapped linearly from In onto Out so the command clears the fan's stall
// region instead of humming below it.
type ActuatorConfig struct {
	Threshold float64   `yaml:"threshold"`
	In        []float64 `yaml:"in,flow"`
	Out       []float64 `yaml:"out,flow"`
}

// Remap turns a defuzzified fan speed into the final duty command.
func (a ActuatorConfig) Remap(raw float64) float64 {
	if raw <= a.Threshold {
		return 0
	}
	return util.MapRange(raw, a.In[0], a.In[1], a.Out[0], a.Out[1])
}

func (a ActuatorConfig) validate() error {
	if len(a.In) != 2 || len(a.Out) != 2 {
		return fmt.Errorf("in and out must each hold [low, high]")
	}
	if a.In[0] >= a.In[1] {
		return fmt.Errorf("in range [%g, %g] is not increasing", a.In[0], a.In[1])
	}
	return nil
}

// Compiled is a profile lowered into the fuzzy runtime objects the engine
// evaluates every cycle.
type Compiled struct {
	Inputs   []CompiledInput
	Output   *fuzzy.Set
	Rules    *fuzzy.RuleSet
	Actuator ActuatorConfig
}

// CompiledInput pairs an input variable with the sample field feeding it.
type CompiledInput struct {
	Set    *fuzzy.Set
	Source string
}

// Compile lowers the profile, rejecting anything the fuzzy runtime could
// not evaluate: unknown shapes or sources, bad parameter tables, rules
// over undeclared variables or labels, a missing or ambiguous output.
func (p Profile) Compile() (*Compiled, error) {
	if len(p.Variables) == 0 {
		return nil, fmt.Errorf("profile: no variables")
	}

	sets := make(map[string]*fuzzy.Set, len(p.Variables))
	c := &Compiled{Actuator: p.Actuator}
	for _, v := range p.Variables {
		if _, dup := sets[v.Name]; dup {
			return nil, fmt.Errorf("profile: duplicate variable %q", v.Name)
		}
		terms := make([]fuzzy.Term, 0, len(v.Terms))
		for _, tc := range v.Terms {
			mf, err := tc.membership()
			if err != nil {
				return nil, fmt.Errorf("profile: variable %q: term %q: %w", v.Name, tc.Label, err)
			}
			terms = append(terms, fuzzy.Term{Label: tc.Label, MF: mf})
		}
		set, err := fuzzy.NewSet(v.Name, terms...)
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
		sets[v.Name] = set

		switch v.Source {
		case SourceTemperature, SourceTempRate, SourcePower, SourceFanDuty:
			c.Inputs = append(c.Inputs, CompiledInput{Set: set, Source: v.Source})
		case SourceOutput:
			if c.Output != nil {
				return nil, fmt.Errorf("profile: variables %q and %q both claim source output",
					c.Output.Name(), v.Name)
			}
			c.Output = set
		default:
			return nil, fmt.Errorf("profile: variable %q: unknown source %q", v.Name, v.Source)
		}
	}
	if c.Output == nil {
		return nil, fmt.Errorf("profile: no variable with source output")
	}

	if len(p.Rules) == 0 {
		return nil, fmt.Errorf("profile: no rules")
	}
	rules := make([]fuzzy.Rule, 0, len(p.Rules))
	for i, rc := range p.Rules {
		r, err := rc.compile(sets, c.Output)
		if err != nil {
			return nil, fmt.Errorf("profile: rule %d: %w", i+1, err)
		}
		rules = append(rules, r)
	}
	rs, err := fuzzy.NewRuleSet(rules...)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	c.Rules = rs

	if err := p.Actuator.validate(); err != nil {
		return nil, fmt.Errorf("profile: actuator: %w", err)
	}
	return c, nil
}

func (tc TermConfig) membership() (fuzzy.MembershipFunction, error) {
	var mf fuzzy.MembershipFunction
	switch tc.Shape {
	case "triangle":
		if len(tc.Params) != 3 {
			return mf, fmt.Errorf("triangle needs 3 params, got %d", len(tc.Params))
		}
		mf = fuzzy.MembershipFunction{Shape: fuzzy.Triangular,
			A: tc.Params[0], B: tc.Params[1], C: tc.Params[2]}
	case "trapezoid":
		if len(tc.Params) != 4 {
			return mf, fmt.Errorf("trapezoid needs 4 params, got %d", len(tc.Params))
		}
		mf = fuzzy.MembershipFunction{Shape: fuzzy.Trapezoidal,
			A: tc.Params[0], B: tc.Params[1], C: tc.Params[2], D: tc.Params[3]}
	case "rectangle":
		if len(tc.Params) != 2 {
			return mf, fmt.Errorf("rectangle needs 2 params, got %d", len(tc.Params))
		}
		mf = fuzzy.MembershipFunction{Shape: fuzzy.Rectangular,
			A: tc.Params[0], B: tc.Params[1]}
	default:
		return mf, fmt.Errorf("unknown shape %q", tc.Shape)
	}
	if err := mf.Validate(); err != nil {
		return mf, err
	}
	return mf, nil
}

func (rc RuleConfig) compile(sets map[string]*fuzzy.Set, output *fuzzy.Set) (fuzzy.Rule, error) {
	when, err := rc.If.compile(sets)
	if err != nil {
		return fuzzy.Rule{}, err
	}
	if len(rc.Then) != 1 {
		return fuzzy.Rule{}, fmt.Errorf("then must name exactly one consequent, got %d", len(rc.Then))
	}
	for name, label := range rc.Then {
		set, ok := sets[name]
		if !ok {
			return fuzzy.Rule{}, fmt.Errorf("then names unknown variable %q", name)
		}
		if set != output {
			return fuzzy.Rule{}, fmt.Errorf("then must target the output variable %q, not %q",
				output.Name(), name)
		}
		if set.Index(label) < 0 {
			return fuzzy.Rule{}, fmt.Errorf("variable %q has no label %q", name, label)
		}
		return fuzzy.NewRule(when, set, label), nil
	}
	panic("unreachable")
}

func (n Node) compile(sets map[string]*fuzzy.Set) (fuzzy.Antecedent, error) {
	var zero fuzzy.Antecedent
	count := 0
	for _, set := range []bool{len(n.Is) > 0, len(n.Not) > 0, len(n.All) > 0, len(n.Any) > 0} {
		if set {
			count++
		}
	}
	if count != 1 {
		return zero, fmt.Errorf("clause must set exactly one of is, not, all, any")
	}

	switch {
	case len(n.Is) > 0:
		return compileLeaf(n.Is, false, sets)
	case len(n.Not) > 0:
		return compileLeaf(n.Not, true, sets)
	case len(n.All) > 0:
		children, err := compileChildren(n.All, sets)
		if err != nil {
			return zero, err
		}
		return fuzzy.All(children...), nil
	default:
		children, err := compileChildren(n.Any, sets)
		if err != nil {
			return zero, err
		}
		return fuzzy.Any(children...), nil
	}
}

func compileLeaf(pair []string, negate bool, sets map[string]*fuzzy.Set) (fuzzy.Antecedent, error) {
	var zero fuzzy.Antecedent
	if len(pair) != 2 {
		return zero, fmt.Errorf("is/not need [variable, label], got %v", pair)
	}
	set, ok := sets[pair[0]]
	if !ok {
		return zero, fmt.Errorf("unknown variable %q", pair[0])
	}
	if set.Index(pair[1]) < 0 {
		return zero, fmt.Errorf("variable %q has no label %q", pair[0], pair[1])
	}
	if negate {
		return fuzzy.Not(set, pair[1]), nil
	}
	return fuzzy.Is(set, pair[1]), nil
}

func compileChildren(nodes []Node, sets map[string]*fuzzy.Set) ([]fuzzy.Antecedent, error) {
	children := make([]fuzzy.Antecedent, 0, len(nodes))
	for _, child := range nodes {
		a, err := child.compile(sets)
		if err != nil {
			return nil, err
		}
		children = append(children, a)
	}
	return children, nil
}
