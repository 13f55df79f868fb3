package model

import "time"

// VariableState captures the fuzzified view of a single linguistic
// variable after one controller cycle: the crisp input it was classified
// from and the membership degree of every label.
type VariableState struct {
	Name    string    `json:"name"`
	Crisp   float64   `json:"crisp"` // input fed to the classifier; defuzzified value for outputs
	Labels  []string  `json:"labels"`
	Degrees []float64 `json:"degrees"`
}

// Dominant returns the label with the highest membership degree, or ""
// when every degree is zero.
func (v VariableState) Dominant() string {
	best := -1
	bestDeg := 0.0
	for i, d := range v.Degrees {
		if d > bestDeg {
			best = i
			bestDeg = d
		}
	}
	if best < 0 {
		return ""
	}
	return v.Labels[best]
}

// RuleState records how strongly one rule fired in the latest cycle.
type RuleState struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`  // rendered IF/THEN form
	Label    string  `json:"label"` // consequent label the rule drives
	Strength float64 `json:"strength"`
}

// Evaluation is the complete result of one controller cycle: the raw
// sample, every variable's fuzzy state, per-rule firing strengths, and
// the crisp duty command that came out the other end.
type Evaluation struct {
	Time   time.Time       `json:"time"`
	Sample Sample          `json:"sample"`
	Inputs []VariableState `json:"inputs"`
	Output VariableState   `json:"output"`
	Rules  []RuleState     `json:"rules"`
	Raw    float64         `json:"raw"`  // defuzzified fan speed, percent, before actuation remap
	Duty   float64         `json:"duty"` // duty command after remap, percent
}
