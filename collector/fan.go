package collector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fantop/fantop/model"
	"github.com/fantop/fantop/util"
)

// FanCollector reads back the duty currently applied to the fan from its
// hwmon pwm attribute (0-255) and, when the fan has a tach line, its RPM.
type FanCollector struct {
	Dir  string
	PWM  string // attribute name, e.g. "pwm1"
	Tach string // attribute name, e.g. "fan1_input"; "" disables
}

func NewFan(dir, pwm, tach string) *FanCollector {
	return &FanCollector{Dir: dir, PWM: pwm, Tach: tach}
}

func (f *FanCollector) Name() string { return "fan" }

func (f *FanCollector) Collect(s *model.Sample) error {
	raw, err := util.ReadInt64(filepath.Join(f.Dir, f.PWM))
	if err != nil {
		return fmt.Errorf("fan: read %s: %w", f.PWM, err)
	}
	s.FanDuty = util.Clamp(float64(raw)/255.0*100.0, 0, 100)

	if f.Tach != "" {
		rpm, err := util.ReadInt64(filepath.Join(f.Dir, f.Tach))
		if err == nil {
			s.FanRPM = float64(rpm)
		}
	}
	return nil
}

// WriteDuty applies a duty command (percent) to the pwm attribute.
// Requires pwm*_enable to be in manual mode; the daemon flips it on
// startup and restores it on exit.
func (f *FanCollector) WriteDuty(pct float64) error {
	raw := int(util.Clamp(pct, 0, 100)/100.0*255.0 + 0.5)
	path := filepath.Join(f.Dir, f.PWM)
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d", raw)), 0o644); err != nil {
		return fmt.Errorf("fan: write %s: %w", f.PWM, err)
	}
	return nil
}

// SetManual switches pwm control to manual (1) or automatic (enable=false,
// value 2) via the pwm*_enable attribute. Chips without the attribute are
// treated as always-manual.
func (f *FanCollector) SetManual(manual bool) error {
	path := filepath.Join(f.Dir, f.PWM+"_enable")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	val := "2"
	if manual {
		val = "1"
	}
	if err := os.WriteFile(path, []byte(val), 0o644); err != nil {
		return fmt.Errorf("fan: write %s_enable: %w", f.PWM, err)
	}
	return nil
}
