package collector

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fantop/fantop/model"
)

// fakeHwmon builds a hwmon-style tree: one directory per chip, each with
// a name attribute plus the given attribute files.
func fakeHwmon(t *testing.T, chips map[string]map[string]string) string {
	t.Helper()
	root := t.TempDir()
	i := 0
	for chip, attrs := range chips {
		dir := filepath.Join(root, "hwmon"+string(rune('0'+i)))
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "name"), []byte(chip+"\n"), 0o644); err != nil {
			t.Fatalf("write name: %v", err)
		}
		for attr, val := range attrs {
			if err := os.WriteFile(filepath.Join(dir, attr), []byte(val+"\n"), 0o644); err != nil {
				t.Fatalf("write %s: %v", attr, err)
			}
		}
		i++
	}
	return root
}

func TestFindChip(t *testing.T) {
	root := fakeHwmon(t, map[string]map[string]string{
		"amdgpu":  {"pwm1": "128"},
		"k10temp": {"temp1_input": "45250"},
	})

	dir, err := FindChip(root, "k10temp")
	if err != nil {
		t.Fatalf("FindChip(k10temp) error = %v", err)
	}
	name, err := os.ReadFile(filepath.Join(dir, "name"))
	if err != nil || strings.TrimSpace(string(name)) != "k10temp" {
		t.Errorf("FindChip(k10temp) resolved to %s (name %q)", dir, name)
	}

	if _, err := FindChip(root, "nct6775"); err == nil {
		t.Error("FindChip(nct6775) expected error for absent chip, got nil")
	}
	if _, err := FindChip(filepath.Join(root, "nope"), "k10temp"); err == nil {
		t.Error("FindChip with bad root expected error, got nil")
	}
}

func TestThermalCollector(t *testing.T) {
	root := fakeHwmon(t, map[string]map[string]string{
		"k10temp": {"temp1_input": "45250"},
	})
	dir, err := FindChip(root, "k10temp")
	if err != nil {
		t.Fatalf("FindChip() error = %v", err)
	}

	var s model.Sample
	if err := NewThermal(dir, "temp1_input").Collect(&s); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if s.Temperature != 45.25 {
		t.Errorf("Temperature = %v, want 45.25", s.Temperature)
	}

	var s2 model.Sample
	if err := NewThermal(dir, "temp7_input").Collect(&s2); err == nil {
		t.Error("Collect() with absent attribute expected error, got nil")
	}
}

func TestPowerCollector(t *testing.T) {
	t.Run("direct power attribute", func(t *testing.T) {
		root := fakeHwmon(t, map[string]map[string]string{
			"ina231": {"power1_input": "21500000"},
		})
		dir, _ := FindChip(root, "ina231")

		var s model.Sample
		if err := NewPower(dir, "power1_input").Collect(&s); err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if s.Power != 21.5 {
			t.Errorf("Power = %v, want 21.5", s.Power)
		}
	})

	t.Run("voltage times current fallback", func(t *testing.T) {
		root := fakeHwmon(t, map[string]map[string]string{
			"ina219": {"in1_input": "12000", "curr1_input": "1500"},
		})
		dir, _ := FindChip(root, "ina219")

		var s model.Sample
		if err := NewPower(dir, "power1_input").Collect(&s); err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if s.Power != 18 {
			t.Errorf("Power = %v, want 18 (12 V * 1.5 A)", s.Power)
		}
	})

	t.Run("nothing readable", func(t *testing.T) {
		root := fakeHwmon(t, map[string]map[string]string{
			"ina231": {},
		})
		dir, _ := FindChip(root, "ina231")

		var s model.Sample
		if err := NewPower(dir, "power1_input").Collect(&s); err == nil {
			t.Error("Collect() expected error, got nil")
		}
	})
}

func TestFanCollector(t *testing.T) {
	root := fakeHwmon(t, map[string]map[string]string{
		"amdgpu": {"pwm1": "128", "fan1_input": "1300"},
	})
	dir, _ := FindChip(root, "amdgpu")

	var s model.Sample
	if err := NewFan(dir, "pwm1", "fan1_input").Collect(&s); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := 128.0 / 255.0 * 100.0
	if diff := s.FanDuty - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("FanDuty = %v, want %v", s.FanDuty, want)
	}
	if s.FanRPM != 1300 {
		t.Errorf("FanRPM = %v, want 1300", s.FanRPM)
	}

	var s2 model.Sample
	if err := NewFan(dir, "pwm1", "").Collect(&s2); err != nil {
		t.Fatalf("Collect() without tach error = %v", err)
	}
	if s2.FanRPM != 0 {
		t.Errorf("FanRPM without tach = %v, want 0", s2.FanRPM)
	}
}

func TestFanWriteDuty(t *testing.T) {
	root := fakeHwmon(t, map[string]map[string]string{
		"amdgpu": {"pwm1": "0"},
	})
	dir, _ := FindChip(root, "amdgpu")
	fan := NewFan(dir, "pwm1", "")

	tests := []struct {
		pct  float64
		want string
	}{
		{0, "0"},
		{50, "128"},
		{100, "255"},
		{120, "255"}, // clamped
	}
	for _, tt := range tests {
		if err := fan.WriteDuty(tt.pct); err != nil {
			t.Fatalf("WriteDuty(%v) error = %v", tt.pct, err)
		}
		raw, err := os.ReadFile(filepath.Join(dir, "pwm1"))
		if err != nil {
			t.Fatalf("read back pwm1: %v", err)
		}
		if got := strings.TrimSpace(string(raw)); got != tt.want {
			t.Errorf("WriteDuty(%v) wrote %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestFanSetManual(t *testing.T) {
	root := fakeHwmon(t, map[string]map[string]string{
		"amdgpu": {"pwm1": "0", "pwm1_enable": "2"},
	})
	dir, _ := FindChip(root, "amdgpu")
	fan := NewFan(dir, "pwm1", "")

	if err := fan.SetManual(true); err != nil {
		t.Fatalf("SetManual(true) error = %v", err)
	}
	raw, _ := os.ReadFile(filepath.Join(dir, "pwm1_enable"))
	if got := strings.TrimSpace(string(raw)); got != "1" {
		t.Errorf("pwm1_enable after SetManual(true) = %q, want \"1\"", got)
	}

	if err := fan.SetManual(false); err != nil {
		t.Fatalf("SetManual(false) error = %v", err)
	}
	raw, _ = os.ReadFile(filepath.Join(dir, "pwm1_enable"))
	if got := strings.TrimSpace(string(raw)); got != "2" {
		t.Errorf("pwm1_enable after SetManual(false) = %q, want \"2\"", got)
	}

	// Chips without the attribute are treated as always-manual.
	root2 := fakeHwmon(t, map[string]map[string]string{
		"amdgpu": {"pwm1": "0"},
	})
	dir2, _ := FindChip(root2, "amdgpu")
	if err := NewFan(dir2, "pwm1", "").SetManual(true); err != nil {
		t.Errorf("SetManual without pwm1_enable error = %v, want nil", err)
	}
}

type failingCollector struct{}

func (failingCollector) Name() string                { return "failing" }
func (failingCollector) Collect(*model.Sample) error { return errors.New("sensor unplugged") }

type fixedCollector struct{ temp float64 }

func (f fixedCollector) Name() string { return "fixed" }
func (f fixedCollector) Collect(s *model.Sample) error {
	s.Temperature = f.temp
	return nil
}

func TestRegistryCollectAll(t *testing.T) {
	reg := NewRegistry(fixedCollector{temp: 33}, failingCollector{})

	var s model.Sample
	errs := reg.CollectAll(&s)
	if len(errs) != 1 {
		t.Fatalf("CollectAll() returned %d errors, want 1", len(errs))
	}
	if !strings.Contains(errs[0].Error(), "sensor unplugged") {
		t.Errorf("CollectAll() error = %v, want sensor unplugged", errs[0])
	}
	if s.Temperature != 33 {
		t.Errorf("Temperature = %v, want 33 (working collector still ran)", s.Temperature)
	}

	if got := reg.Names(); len(got) != 2 || got[0] != "fixed" || got[1] != "failing" {
		t.Errorf("Names() = %v, want [fixed failing]", got)
	}
}
