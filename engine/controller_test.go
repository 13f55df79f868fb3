package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/fantop/fantop/config"
	"github.com/fantop/fantop/model"
)

func defaultController(t *testing.T) *Controller {
	t.Helper()
	profile, err := config.DefaultProfile().Compile()
	if err != nil {
		t.Fatalf("compiling default profile: %v", err)
	}
	return NewController(profile)
}

func degreeOf(t *testing.T, v model.VariableState, label string) float64 {
	t.Helper()
	for i, l := range v.Labels {
		if l == label {
			return v.Degrees[i]
		}
	}
	t.Fatalf("variable %s has no label %s", v.Name, label)
	return 0
}

func approx(got, want float64) bool {
	diff := got - want
	return diff <= 0.0001 && diff >= -0.0001
}

// Mixed regime: warm plant, steady temperature, fan already running at a
// moderate load. Medium and Fast both fire and the duty lands between
// their centroids.
func TestEvaluateMixedRegime(t *testing.T) {
	ctrl := defaultController(t)

	ev := ctrl.Evaluate(model.Sample{
		Time:        time.Now(),
		Temperature: 30,
		TempRate:    0,
		Power:       20,
		FanDuty:     50,
	})

	// temperature 30: Medium (35-30)/12, High (30-23)/12
	temp := ev.Inputs[0]
	if got := degreeOf(t, temp, "Medium"); !approx(got, 5.0/12.0) {
		t.Errorf("temperature Medium = %v, want %v", got, 5.0/12.0)
	}
	if got := degreeOf(t, temp, "High"); !approx(got, 7.0/12.0) {
		t.Errorf("temperature High = %v, want %v", got, 7.0/12.0)
	}

	// fan 50 is past the On threshold
	fan := ev.Inputs[3]
	if got := degreeOf(t, fan, "On"); got != 1 {
		t.Errorf("fan_state On = %v, want 1", got)
	}
	if got := degreeOf(t, fan, "Off"); got != 0 {
		t.Errorf("fan_state Off = %v, want 0", got)
	}

	// Keep-medium rule: min(On, temp Medium, 1 - power High)
	if got := ev.Rules[3].Strength; !approx(got, 5.0/12.0) {
		t.Errorf("rule 4 strength = %v, want %v", got, 5.0/12.0)
	}
	// High-temp rule capped by moderate power
	if got := ev.Rules[4].Strength; !approx(got, 1.0/3.0) {
		t.Errorf("rule 5 strength = %v, want %v", got, 1.0/3.0)
	}
	// High-power rule at half membership
	if got := ev.Rules[7].Strength; !approx(got, 0.5) {
		t.Errorf("rule 8 strength = %v, want 0.5", got)
	}

	// Aggregated and normalized output: Medium 5/11, Fast 6/11
	if got := degreeOf(t, ev.Output, "Medium"); !approx(got, 5.0/11.0) {
		t.Errorf("fan_speed Medium = %v, want %v", got, 5.0/11.0)
	}
	if got := degreeOf(t, ev.Output, "Fast"); !approx(got, 6.0/11.0) {
		t.Errorf("fan_speed Fast = %v, want %v", got, 6.0/11.0)
	}

	if !approx(ev.Raw, 68.75) {
		t.Errorf("Raw = %v, want 68.75", ev.Raw)
	}
	if !approx(ev.Duty, 88.75) {
		t.Errorf("Duty = %v, want 88.75", ev.Duty)
	}
	if got := ev.Output.Dominant(); got != "Fast" {
		t.Errorf("Dominant() = %q, want Fast", got)
	}
}

// Cold idle plant with the fan stopped: everything says stay off.
func TestEvaluateColdIdle(t *testing.T) {
	ctrl := defaultController(t)

	ev := ctrl.Evaluate(model.Sample{
		Time:        time.Now(),
		Temperature: 10,
		TempRate:    0,
		Power:       0,
		FanDuty:     0,
	})

	// Only the keep-off rule fires, at full strength.
	if got := ev.Rules[1].Strength; got != 1 {
		t.Errorf("rule 2 strength = %v, want 1", got)
	}
	for _, i := range []int{0, 2, 3, 4, 5, 6, 7} {
		if got := ev.Rules[i].Strength; got != 0 {
			t.Errorf("rule %d strength = %v, want 0", i+1, got)
		}
	}

	if got := degreeOf(t, ev.Output, "Off"); got != 1 {
		t.Errorf("fan_speed Off = %v, want 1", got)
	}
	if ev.Raw != 0 {
		t.Errorf("Raw = %v, want 0", ev.Raw)
	}
	if ev.Duty != 0 {
		t.Errorf("Duty = %v, want 0", ev.Duty)
	}
}

// Hot plant under heavy load with the fan stopped: the spin-up rule
// saturates and the remap clamps at full duty.
func TestEvaluateHotSpinUp(t *testing.T) {
	ctrl := defaultController(t)

	ev := ctrl.Evaluate(model.Sample{
		Time:        time.Now(),
		Temperature: 40,
		TempRate:    1,
		Power:       30,
		FanDuty:     10,
	})

	if got := ev.Rules[0].Strength; got != 1 {
		t.Errorf("rule 1 strength = %v, want 1", got)
	}
	if got := degreeOf(t, ev.Output, "Fast"); got != 1 {
		t.Errorf("fan_speed Fast = %v, want 1", got)
	}
	if !approx(ev.Raw, 81.25) {
		t.Errorf("Raw = %v, want 81.25", ev.Raw)
	}
	if ev.Duty != 100 {
		t.Errorf("Duty = %v, want 100", ev.Duty)
	}
}

// Consecutive evaluations must not leak state into each other.
func TestEvaluateRepeatable(t *testing.T) {
	ctrl := defaultController(t)
	s := model.Sample{Temperature: 30, Power: 20, FanDuty: 50}

	// Perturb internal state with a very different operating point first.
	ctrl.Evaluate(model.Sample{Temperature: 40, TempRate: 1, Power: 30, FanDuty: 10})

	a := ctrl.Evaluate(s)
	b := ctrl.Evaluate(s)
	if !approx(a.Raw, b.Raw) || !approx(a.Duty, b.Duty) {
		t.Errorf("repeated evaluation diverged: raw %v vs %v, duty %v vs %v",
			a.Raw, b.Raw, a.Duty, b.Duty)
	}
	if !approx(a.Raw, 68.75) {
		t.Errorf("Raw after state perturbation = %v, want 68.75", a.Raw)
	}
}

func TestEvaluateSnapshotShape(t *testing.T) {
	ctrl := defaultController(t)
	ev := ctrl.Evaluate(model.Sample{Temperature: 25, Power: 10, FanDuty: 40})

	if len(ev.Inputs) != 4 {
		t.Fatalf("Inputs = %d variables, want 4", len(ev.Inputs))
	}
	wantNames := []string{"temperature", "temp_change", "tec_power", "fan_state"}
	for i, want := range wantNames {
		if ev.Inputs[i].Name != want {
			t.Errorf("input %d = %q, want %q", i, ev.Inputs[i].Name, want)
		}
	}
	if ev.Output.Name != "fan_speed" {
		t.Errorf("output name = %q, want fan_speed", ev.Output.Name)
	}
	if len(ev.Rules) != 8 {
		t.Fatalf("Rules = %d, want 8", len(ev.Rules))
	}
	for i, r := range ev.Rules {
		if r.Index != i {
			t.Errorf("rule %d carries index %d", i, r.Index)
		}
		if !strings.HasPrefix(r.Text, "IF ") || !strings.Contains(r.Text, " THEN fan_speed IS ") {
			t.Errorf("rule %d text = %q", i, r.Text)
		}
		if r.Label == "" {
			t.Errorf("rule %d has empty consequent label", i)
		}
	}
	// Crisp echoes: inputs carry what they classified, output its duty.
	if ev.Inputs[0].Crisp != 25 {
		t.Errorf("temperature Crisp = %v, want 25", ev.Inputs[0].Crisp)
	}
	if ev.Output.Crisp != ev.Raw {
		t.Errorf("output Crisp = %v, want Raw %v", ev.Output.Crisp, ev.Raw)
	}
}
