package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fantop/fantop/config"
	"github.com/fantop/fantop/engine"
	"github.com/fantop/fantop/model"
)

// runEval evaluates four crisp inputs once and prints every
// intermediate: per-variable membership gauges, per-rule firing
// strengths, and the final duty command.
func runEval(w io.Writer, cfg config.Config, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("eval mode needs exactly 4 values: temperature, temperature change, TEC power, fan duty (got %d)", len(args))
	}
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("argument %q is not a number", a)
		}
		vals[i] = v
	}

	profile, err := cfg.Profile.Compile()
	if err != nil {
		return err
	}
	ctrl := engine.NewController(profile)
	ev := ctrl.Evaluate(model.Sample{
		Time:        time.Now(),
		Temperature: vals[0],
		TempRate:    vals[1],
		Power:       vals[2],
		FanDuty:     vals[3],
	})

	for i, in := range ev.Inputs {
		fmt.Fprintf(w, "%s %.4f %s\n", in.Name, in.Crisp, sourceUnit(profile.Inputs[i].Source))
		printDegrees(w, in)
	}

	fmt.Fprintln(w, "rules")
	for _, r := range ev.Rules {
		fmt.Fprintf(w, "%d\t [%s] %6.2f %%  %s\n", r.Index+1, gauge(r.Strength), r.Strength*100.0, r.Text)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\n", ev.Output.Name)
	printDegrees(w, ev.Output)

	fmt.Fprintf(w, "raw speed: %.4f %%\n", ev.Raw)
	fmt.Fprintf(w, "duty: %.4f %%\n", ev.Duty)
	return nil
}

func printDegrees(w io.Writer, v model.VariableState) {
	for i, label := range v.Labels {
		fmt.Fprintf(w, "%s\t [%s] %6.2f %%\n", label, gauge(v.Degrees[i]), v.Degrees[i]*100.0)
	}
	fmt.Fprintln(w)
}

// gauge renders a degree as a 24-column text gauge with a '>' tip.
func gauge(v float64) string {
	const gaugeLen = 24
	threshold := int(math.Round(v*gaugeLen)) - 1
	var sb strings.Builder
	for i := 0; i < gaugeLen; i++ {
		switch {
		case i < threshold:
			sb.WriteByte('=')
		case i == threshold:
			sb.WriteByte('>')
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func sourceUnit(source string) string {
	switch source {
	case config.SourceTemperature:
		return "degC"
	case config.SourceTempRate:
		return "degC/sec"
	case config.SourcePower:
		return "W"
	default:
		return "%"
	}
}
