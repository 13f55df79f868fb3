package collector

import (
	"fmt"
	"path/filepath"

	"github.com/fantop/fantop/model"
	"github.com/fantop/fantop/util"
)

// ThermalCollector reads the hot-side temperature from a hwmon
// temp*_input attribute (millidegrees C).
type ThermalCollector struct {
	Dir   string // hwmon chip directory
	Input string // attribute name, e.g. "temp1_input"
}

func NewThermal(dir, input string) *ThermalCollector {
	return &ThermalCollector{Dir: dir, Input: input}
}

func (t *ThermalCollector) Name() string { return "thermal" }

func (t *ThermalCollector) Collect(s *model.Sample) error {
	v, err := util.ReadMilli(filepath.Join(t.Dir, t.Input))
	if err != nil {
		return fmt.Errorf("thermal: read %s: %w", t.Input, err)
	}
	s.Temperature = v
	return nil
}
