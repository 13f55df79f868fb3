package collector

import (
	"math"
	"math/rand"
	"sync"

	"github.com/fantop/fantop/model"
	"github.com/fantop/fantop/util"
)

const (
	ambientC          = 22.0 // plant surroundings, degrees C
	thermalResistance = 0.9  // hot-side rise per watt at zero airflow
	plantTau          = 20.0 // settling time constant, in ticks
)

// SyntheticCollector simulates a TEC cold plate and its fan so the full
// control loop can run on machines without the hardware. The TEC load
// swings over a two-minute period; the hot side follows a first-order
// model whose equilibrium rises with electrical power and falls as the
// fan moves air. SetDuty feeds the controller's output back into the
// plant, closing the loop.
type SyntheticCollector struct {
	mu    sync.Mutex
	temp  float64
	power float64
	duty  float64
	step  int
	rng   *rand.Rand
}

func NewSynthetic(seed int64) *SyntheticCollector {
	return &SyntheticCollector{
		temp: ambientC,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (c *SyntheticCollector) Name() string { return "synthetic" }

// SetDuty applies a duty command (percent) to the simulated fan.
func (c *SyntheticCollector) SetDuty(pct float64) {
	c.mu.Lock()
	c.duty = util.Clamp(pct, 0, 100)
	c.mu.Unlock()
}

// Collect advances the plant by one tick and fills every sample field.
func (c *SyntheticCollector) Collect(s *model.Sample) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.step++
	load := 0.5 + 0.5*math.Sin(2*math.Pi*float64(c.step)/120.0)
	c.power = 40.0*load + c.rng.Float64()*0.5

	target := ambientC + c.power*thermalResistance*(1.0-0.6*c.duty/100.0)
	c.temp += (target - c.temp) / plantTau
	c.temp += c.rng.NormFloat64() * 0.05

	s.Temperature = c.temp
	s.Power = c.power
	s.FanDuty = c.duty
	s.FanRPM = c.duty * 24.0
	return nil
}
