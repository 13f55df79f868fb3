package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/fantop/fantop/collector"
	"github.com/fantop/fantop/config"
	"github.com/fantop/fantop/model"
)

// RunBench drives the controller over the synthetic plant as fast as it
// will go and reports per-cycle evaluation latency in nanoseconds.
func RunBench(cfg config.Config, cycles int, w io.Writer) error {
	if cycles <= 0 {
		return fmt.Errorf("bench: cycle count must be positive, got %d", cycles)
	}
	profile, err := cfg.Profile.Compile()
	if err != nil {
		return err
	}
	ctrl := NewController(profile)
	plant := collector.NewSynthetic(1)

	hg := hdrhistogram.New(1, int64(time.Second), 3)
	start := time.Now()
	for i := 0; i < cycles; i++ {
		var s model.Sample
		if err := plant.Collect(&s); err != nil {
			return err
		}
		s.Time = time.Now()

		t0 := time.Now()
		ev := ctrl.Evaluate(s)
		if err := hg.RecordValue(time.Since(t0).Nanoseconds()); err != nil {
			return err
		}
		plant.SetDuty(ev.Duty)
	}
	elapsed := time.Since(start)

	fmt.Fprintf(w, "%d cycles in %s (%.0f cycles/sec)\n",
		cycles, elapsed.Round(time.Microsecond), float64(cycles)/elapsed.Seconds())
	fmt.Fprintf(w, "evaluation latency ns: p50=%d p90=%d p99=%d max=%d\n",
		hg.ValueAtQuantile(50), hg.ValueAtQuantile(90), hg.ValueAtQuantile(99), hg.Max())
	hg.PercentilesPrint(w, 1, 1.0)
	return nil
}
