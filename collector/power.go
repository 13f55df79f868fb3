package collector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fantop/fantop/model"
	"github.com/fantop/fantop/util"
)

// PowerCollector reads TEC electrical power from a hwmon power*_input
// attribute (microwatts). Chips that expose only voltage and current
// (ina219 and friends) are handled by multiplying in1_input and
// curr1_input instead.
type PowerCollector struct {
	Dir   string
	Input string // attribute name, e.g. "power1_input"
}

func NewPower(dir, input string) *PowerCollector {
	return &PowerCollector{Dir: dir, Input: input}
}

func (p *PowerCollector) Name() string { return "power" }

func (p *PowerCollector) Collect(s *model.Sample) error {
	path := filepath.Join(p.Dir, p.Input)
	if _, err := os.Stat(path); err == nil {
		v, err := util.ReadMicro(path)
		if err != nil {
			return fmt.Errorf("power: read %s: %w", p.Input, err)
		}
		s.Power = v
		return nil
	}

	// Fall back to V*I from the milli-scaled voltage and current
	// attributes.
	volts, err := util.ReadMilli(filepath.Join(p.Dir, "in1_input"))
	if err != nil {
		return fmt.Errorf("power: no %s and no in1_input: %w", p.Input, err)
	}
	amps, err := util.ReadMilli(filepath.Join(p.Dir, "curr1_input"))
	if err != nil {
		return fmt.Errorf("power: read curr1_input: %w", err)
	}
	s.Power = volts * amps
	return nil
}
