package engine

import (
	"sync"
	"time"

	"github.com/fantop/fantop/collector"
	"github.com/fantop/fantop/config"
	"github.com/fantop/fantop/model"
	"github.com/fantop/fantop/util"
)

// Engine owns the sensor registry, the fuzzy controller, and the
// evaluation history, and closes the loop back to the fan.
type Engine struct {
	registry   *collector.Registry
	controller *Controller
	History    *History
	plant      *collector.SyntheticCollector // non-nil in synthetic mode
	fan        *collector.FanCollector       // non-nil with real sensors
	apply      bool
	tickMu     sync.Mutex // serializes Tick() calls to prevent concurrent collection
}

// Options select the sensor source and actuation behavior.
type Options struct {
	Synthetic bool
	Seed      int64  // 0 seeds the synthetic plant from the clock
	HwmonRoot string // defaults to collector.DefaultHwmonRoot
	Apply     bool   // write duty commands back to the pwm attribute
}

// New compiles the profile and wires the sensor registry. With real
// sensors every configured chip must be present; missing hardware is a
// startup error, not a degraded mode.
func New(cfg config.Config, opts Options) (*Engine, error) {
	profile, err := cfg.Profile.Compile()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		controller: NewController(profile),
		History:    NewHistory(cfg.HistorySize),
		apply:      opts.Apply,
	}

	if opts.Synthetic {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.plant = collector.NewSynthetic(seed)
		e.registry = collector.NewRegistry(e.plant)
		return e, nil
	}

	root := opts.HwmonRoot
	if root == "" {
		root = collector.DefaultHwmonRoot
	}
	thermalDir, err := collector.FindChip(root, cfg.Sensors.Thermal.Chip)
	if err != nil {
		return nil, err
	}
	powerDir, err := collector.FindChip(root, cfg.Sensors.Power.Chip)
	if err != nil {
		return nil, err
	}
	fanDir, err := collector.FindChip(root, cfg.Sensors.Fan.Chip)
	if err != nil {
		return nil, err
	}

	e.fan = collector.NewFan(fanDir, cfg.Sensors.Fan.PWM, cfg.Sensors.Fan.Tach)
	e.registry = collector.NewRegistry(
		collector.NewThermal(thermalDir, cfg.Sensors.Thermal.Input),
		collector.NewPower(powerDir, cfg.Sensors.Power.Input),
		e.fan,
	)
	return e, nil
}

// Controller exposes the compiled profile driving this engine.
func (e *Engine) Controller() *Controller {
	return e.controller
}

// Tick performs one collect + evaluate + actuate cycle.
// Serialized via tickMu to prevent concurrent collection when ticks overlap.
func (e *Engine) Tick() *model.Evaluation {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	s := model.Sample{Time: time.Now()}
	if errs := e.registry.CollectAll(&s); len(errs) > 0 {
		for _, err := range errs {
			s.Errors = append(s.Errors, err.Error())
		}
	}

	// Temperature slope against the previous cycle. The first cycle has
	// no baseline and reports 0, which classifies as Stable.
	if prev := e.History.Latest(); prev != nil {
		s.TempRate = util.Slope(prev.Sample.Temperature, s.Temperature, s.Time.Sub(prev.Time))
	}

	ev := e.controller.Evaluate(s)

	if e.plant != nil {
		e.plant.SetDuty(ev.Duty)
	} else if e.apply && e.fan != nil {
		if err := e.fan.WriteDuty(ev.Duty); err != nil {
			ev.Sample.Errors = append(ev.Sample.Errors, err.Error())
		}
	}

	e.History.Push(*ev)
	return ev
}
