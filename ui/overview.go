package ui

import (
	"fmt"
	"strings"

	"github.com/fantop/fantop/engine"
	"github.com/fantop/fantop/model"
)

// renderOverviewPage shows the live loop at a glance: sensor readings,
// input memberships, the inferred output, and the recent trends.
func renderOverviewPage(ev *model.Evaluation, history *engine.History, width, height int) string {
	var sb strings.Builder
	innerW := pageInnerW(width)

	sb.WriteString(" " + titleStyle.Render("fantop"))
	sb.WriteString("\n")

	regime := ev.Output.Dominant()
	if regime == "" {
		regime = "undetermined"
	}
	sb.WriteString(" " + headerStyle.Render("FAN "+strings.ToUpper(regime)))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  raw %.1f%%  duty ", ev.Raw)))
	sb.WriteString(dutyStyle(ev.Duty).Render(fmtPct(ev.Duty)))
	sb.WriteString("\n\n")

	rows := []kv{
		{"Temperature", tempStyle(ev.Sample.Temperature).Render(fmtC(ev.Sample.Temperature))},
		{"Temp rate", valueStyle.Render(fmt.Sprintf("%+.2f °C/s", ev.Sample.TempRate))},
		{"TEC power", powerStyle(ev.Sample.Power).Render(fmtW(ev.Sample.Power))},
		{"Fan duty", dutyStyle(ev.Sample.FanDuty).Render(fmtPct(ev.Sample.FanDuty))},
	}
	if ev.Sample.FanRPM > 0 {
		rows = append(rows, kv{"Fan tach", valueStyle.Render(fmt.Sprintf("%.0f rpm", ev.Sample.FanRPM))})
	}
	sb.WriteString(renderKVBox(rows, innerW))

	for _, err := range ev.Sample.Errors {
		sb.WriteString(" " + critStyle.Render("sensor: "+err) + "\n")
	}
	sb.WriteString("\n")

	for _, in := range ev.Inputs {
		sb.WriteString(renderMemberships(in, innerW))
	}
	sb.WriteString(renderMemberships(ev.Output, innerW))

	sb.WriteString(fmt.Sprintf("  %s %s %s\n",
		dimStyle.Render(padRight("duty", colLabel)),
		bar(ev.Duty, colBar),
		dutyStyle(ev.Duty).Render(fmtPct(ev.Duty))))
	sb.WriteString("\n")

	fired := 0
	for _, r := range ev.Rules {
		if r.Strength > 0 {
			fired++
		}
	}
	sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("rules fired: %d/%d (press 2 for detail)", fired, len(ev.Rules))))
	sb.WriteString("\n\n")

	trendW := innerW - 14
	if trendW < 20 {
		trendW = 20
	}
	duties := history.Series(func(e *model.Evaluation) float64 { return e.Duty })
	temps := history.Series(func(e *model.Evaluation) float64 { return e.Sample.Temperature })
	sb.WriteString(" " + dimStyle.Render(padRight("duty", 6)) + sparkline(duties, trendW, 0, 100, dutyStyle) + "\n")
	sb.WriteString(" " + dimStyle.Render(padRight("temp", 6)) + sparkline(temps, trendW, 0, autoScale(temps, 100), tempStyle) + "\n")

	return sb.String()
}

// renderMemberships renders one variable header and a degree bar per
// label.
func renderMemberships(v model.VariableState, innerW int) string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render(v.Name))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  x=%.2f", v.Crisp)))
	sb.WriteString("\n")
	for i, label := range v.Labels {
		d := v.Degrees[i]
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			degreeStyle(d).Render(padRight(label, colLabel)),
			degreeBar(d, colBar),
			degreeStyle(d).Render(fmt.Sprintf("%.3f", d))))
	}
	return sb.String()
}
