package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fantop/fantop/engine"
	"github.com/fantop/fantop/model"
)

// ── ANSI color/style codes ──────────────────────────────────────────────────

const (
	R = "\033[0m" // reset
	B = "\033[1m" // bold
	D = "\033[2m" // dim

	FRed = "\033[31m"
	FGrn = "\033[32m"
	FYel = "\033[33m"
	FCyn = "\033[36m"

	FBRed = "\033[91m"
	FBGrn = "\033[92m"
	FBYel = "\033[93m"
	FBCyn = "\033[96m"
	FBWht = "\033[97m"

	BBlu = "\033[44m"
)

// ── Thresholds ──────────────────────────────────────────────────────────────

// Aligned with the stock profile's term edges: Medium temperature peaks
// at 23 degC, High saturates at 35; the actuator floor is 30% duty.
const (
	tTempWarn  = 23.0
	tTempCrit  = 35.0
	tPowerWarn = 15.0
	tPowerCrit = 25.0
	tDutyWarn  = 50.0
	tDutyCrit  = 80.0
)

// ── Styling helpers ─────────────────────────────────────────────────────────

func cval(v float64, warn, crit float64) string {
	switch {
	case v >= crit:
		return fmt.Sprintf("%s%s%.1f%s", B, FBRed, v, R)
	case v >= warn:
		return fmt.Sprintf("%s%.1f%s", FBYel, v, R)
	default:
		return fmt.Sprintf("%s%.1f%s", FBGrn, v, R)
	}
}

func cpct(v float64, warn, crit float64) string {
	switch {
	case v >= crit:
		return fmt.Sprintf("%s%s%6.1f%%%s", B, FBRed, v, R)
	case v >= warn:
		return fmt.Sprintf("%s%6.1f%%%s", FBYel, v, R)
	default:
		return fmt.Sprintf("%s%6.1f%%%s", FBGrn, v, R)
	}
}

func cdeg(d float64) string {
	switch {
	case d >= 0.5:
		return fmt.Sprintf("%s%5.1f%%%s", FBGrn, d*100, R)
	case d > 0:
		return fmt.Sprintf("%s%5.1f%%%s", FBYel, d*100, R)
	default:
		return fmt.Sprintf("%s%5.1f%%%s", D, d*100, R)
	}
}

func wbar(pct float64, w int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100.0 * float64(w))
	if filled > w {
		filled = w
	}
	empty := w - filled
	var c string
	switch {
	case pct >= 90:
		c = FBRed
	case pct >= 70:
		c = FBYel
	case pct >= 40:
		c = FYel
	default:
		c = FBGrn
	}
	return fmt.Sprintf("%s%s%s%s%s", c, strings.Repeat("#", filled), D, strings.Repeat("-", empty), R)
}

func trunc(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n < 3 {
		return s[:n]
	}
	return s[:n-2] + ".."
}

func titleLine(t string) string {
	pad := 78 - len(t) - 2
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%s%s== %s %s%s", B, FCyn, t, strings.Repeat("=", pad), R)
}

func hr() string {
	return fmt.Sprintf("%s%s%s", D, strings.Repeat("-", 78), R)
}

func degreeSummary(v model.VariableState) string {
	parts := make([]string, 0, len(v.Labels))
	for i, label := range v.Labels {
		d := v.Degrees[i]
		c := D
		switch {
		case d >= 0.5:
			c = FBGrn
		case d > 0:
			c = FBWht
		}
		parts = append(parts, fmt.Sprintf("%s%s %.2f%s", c, label, d, R))
	}
	return strings.Join(parts, "  ")
}

// ── Main Watch Loop ─────────────────────────────────────────────────────────

func runWatch(eng *engine.Engine, cli Config) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cli.Interval)
	defer ticker.Stop()

	// Prime the rate baseline so the first frame has a temperature slope.
	eng.Tick()

	iteration := 0
	for {
		select {
		case <-sig:
			fmt.Printf("\n%sStopped.%s\n", D, R)
			return nil
		case <-ticker.C:
			iteration++
			ev := eng.Tick()
			if ev == nil {
				continue
			}

			fmt.Print("\033[2J\033[H")

			ts := ev.Time.Format("15:04:05")
			iter := fmt.Sprintf("#%d", iteration)
			if cli.WatchCount > 0 {
				iter = fmt.Sprintf("#%d/%d", iteration, cli.WatchCount)
			}
			fmt.Printf(" %s%s fantop v%s %s  %s  %s%s%s  %s\n",
				B, BBlu+FBWht, Version, R,
				B+ts+R,
				D, cli.Interval, R,
				D+iter+R)
			fmt.Println(hr())

			watchFrame(ev)

			fmt.Println()
			fmt.Println(hr())
			fmt.Printf(" %sCtrl+C%s to quit", B, R)
			if cli.WatchCount > 0 {
				fmt.Printf("  %s|%s  %d/%d", D, R, iteration, cli.WatchCount)
			}
			fmt.Println()

			if cli.WatchCount > 0 && iteration >= cli.WatchCount {
				return nil
			}
		}
	}
}

func watchFrame(ev *model.Evaluation) {
	s := ev.Sample
	fmt.Println()

	fmt.Println(titleLine("SENSORS"))
	fmt.Printf(" %stemperature%s  %s degC   %srate%s %s%+.3f%s degC/sec\n",
		B, R, cval(s.Temperature, tTempWarn, tTempCrit),
		B, R, FBWht, s.TempRate, R)
	fmt.Printf(" %stec power%s    %s W   %sfan duty%s %s",
		B, R, cval(s.Power, tPowerWarn, tPowerCrit),
		B, R, cpct(s.FanDuty, tDutyWarn, tDutyCrit))
	if s.FanRPM > 0 {
		fmt.Printf("  %s%.0f rpm%s", D, s.FanRPM, R)
	}
	fmt.Println()
	for _, e := range s.Errors {
		fmt.Printf(" %ssensor: %s%s\n", FBRed, e, R)
	}
	fmt.Println()

	fmt.Println(titleLine("MEMBERSHIPS"))
	for _, in := range ev.Inputs {
		fmt.Printf(" %s%-12s%s x=%s%8.2f%s  %s\n",
			B, in.Name, R, FBWht, in.Crisp, R, degreeSummary(in))
	}
	fmt.Println()

	fmt.Println(titleLine("RULES"))
	for _, r := range ev.Rules {
		c := D
		if r.Strength > 0 {
			c = FBWht
		}
		fmt.Printf(" %2d [%s] %s  %s%s%s\n",
			r.Index+1, wbar(r.Strength*100, 16), cdeg(r.Strength),
			c, trunc(r.Text, 44), R)
	}
	fmt.Println()

	fmt.Println(titleLine("OUTPUT"))
	fmt.Printf(" %s%-12s%s %s\n", B, ev.Output.Name, R, degreeSummary(ev.Output))
	regime := ev.Output.Dominant()
	if regime == "" {
		regime = "undetermined"
	}
	fmt.Printf(" %sregime%s %s%-12s%s %sraw%s %6.2f%%  %sduty%s %s\n",
		B, R, B+FBCyn, strings.ToUpper(regime), R,
		B, R, ev.Raw,
		B, R, cpct(ev.Duty, tDutyWarn, tDutyCrit))
	fmt.Printf(" [%s]\n", wbar(ev.Duty, 60))
}
