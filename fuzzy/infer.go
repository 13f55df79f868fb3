package fuzzy

// Infer runs one inference pass: it evaluates every rule against the
// current input degrees and leaves the aggregated, normalized result
// in the output variables.
//
// The pass has three phases. Every distinct consequent degree is first
// reset to zero, so aggregation starts from a clean baseline whatever
// the rule order. Each rule's antecedent tree is then evaluated
// bottom-up to its firing strength, which folds into the consequent
// with max: rules concluding the same label combine as fuzzy OR. Each
// touched output variable is normalized last.
//
// Inputs must have been classified before the call; Infer itself
// allocates nothing.
func (rs *RuleSet) Infer() {
	for _, c := range rs.resets {
		c.set.degrees[c.label] = 0.0
	}
	for i := range rs.rules {
		r := &rs.rules[i]
		strength := r.when.eval()
		rs.strengths[i] = strength
		if strength > r.out.degrees[r.outLabel] {
			r.out.degrees[r.outLabel] = strength
		}
	}
	for _, out := range rs.outputs {
		out.Normalize()
	}
}

// Strength returns the firing strength rule i reached on the latest
// Infer pass, zero before the first.
func (rs *RuleSet) Strength(i int) float64 { return rs.strengths[i] }

// Strengths copies the latest per-rule firing strengths into a fresh
// slice, in rule order. Display paths use this; Infer reuses the
// backing array across passes.
func (rs *RuleSet) Strengths() []float64 {
	out := make([]float64, len(rs.strengths))
	copy(out, rs.strengths)
	return out
}
