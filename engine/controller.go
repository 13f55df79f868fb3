// Package engine orchestrates the control loop: sensor collection, fuzzy
// evaluation, history, actuation, and the daemon and benchmark entry
// points built on top of it.
package engine

import (
	"github.com/fantop/fantop/config"
	"github.com/fantop/fantop/fuzzy"
	"github.com/fantop/fantop/model"
)

// Controller runs one compiled profile: classify the inputs, fire the
// rule base, defuzzify, remap to a duty command. Not safe for concurrent
// use; the engine serializes cycles.
type Controller struct {
	profile *config.Compiled
}

func NewController(profile *config.Compiled) *Controller {
	return &Controller{profile: profile}
}

// Rules exposes the compiled rule base for display.
func (c *Controller) Rules() *fuzzy.RuleSet {
	return c.profile.Rules
}

// Inputs exposes the compiled input bindings for display.
func (c *Controller) Inputs() []config.CompiledInput {
	return c.profile.Inputs
}

// Output exposes the compiled output variable for display.
func (c *Controller) Output() *fuzzy.Set {
	return c.profile.Output
}

// Evaluate runs one full controller cycle over the sample and snapshots
// every intermediate: per-label degrees, per-rule strengths, the raw
// defuzzified speed, and the remapped duty command.
func (c *Controller) Evaluate(s model.Sample) *model.Evaluation {
	p := c.profile

	ev := &model.Evaluation{
		Time:   s.Time,
		Sample: s,
		Inputs: make([]model.VariableState, 0, len(p.Inputs)),
	}

	for _, in := range p.Inputs {
		x := crisp(&s, in.Source)
		in.Set.Classify(x)
		ev.Inputs = append(ev.Inputs, variableState(in.Set, x))
	}

	p.Rules.Infer()

	ev.Rules = make([]model.RuleState, 0, p.Rules.Len())
	for i := 0; i < p.Rules.Len(); i++ {
		r := p.Rules.Rule(i)
		_, label := r.Output()
		ev.Rules = append(ev.Rules, model.RuleState{
			Index:    i,
			Text:     r.String(),
			Label:    label,
			Strength: p.Rules.Strength(i),
		})
	}

	ev.Raw = p.Output.Defuzzify()
	ev.Duty = p.Actuator.Remap(ev.Raw)
	ev.Output = variableState(p.Output, ev.Raw)
	return ev
}

// crisp returns the sample field a source binding names. Unknown sources
// cannot survive profile compilation.
func crisp(s *model.Sample, source string) float64 {
	switch source {
	case config.SourceTemperature:
		return s.Temperature
	case config.SourceTempRate:
		return s.TempRate
	case config.SourcePower:
		return s.Power
	case config.SourceFanDuty:
		return s.FanDuty
	}
	return 0
}

func variableState(set *fuzzy.Set, x float64) model.VariableState {
	labels := make([]string, set.Len())
	for i := range labels {
		labels[i] = set.Label(i)
	}
	return model.VariableState{
		Name:    set.Name(),
		Crisp:   x,
		Labels:  labels,
		Degrees: set.Degrees(),
	}
}
