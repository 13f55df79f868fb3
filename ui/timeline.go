package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fantop/fantop/engine"
	"github.com/fantop/fantop/model"
)

func renderTimelinePage(history *engine.History, width, height int) string {
	var sb strings.Builder

	n := history.Len()
	if n < 2 {
		sb.WriteString(" " + titleStyle.Render("TIMELINE"))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("  Need more data (collecting...)"))
		return sb.String()
	}

	oldest := history.Get(0)
	latest := history.Latest()
	var startTime, endTime time.Time
	timeRange := ""
	if oldest != nil && latest != nil {
		startTime = oldest.Time
		endTime = latest.Time
		timeRange = fmt.Sprintf(" (%s, %d samples)", formatDuration(endTime.Sub(startTime)), n)
	}
	sb.WriteString(" " + titleStyle.Render("TIMELINE") + dimStyle.Render(timeRange))
	sb.WriteString("\n\n")

	temps := history.Series(func(e *model.Evaluation) float64 { return e.Sample.Temperature })
	powers := history.Series(func(e *model.Evaluation) float64 { return e.Sample.Power })
	duties := history.Series(func(e *model.Evaluation) float64 { return e.Duty })
	raws := history.Series(func(e *model.Evaluation) float64 { return e.Raw })

	chartH := 6
	chartW := width - 2
	if chartW < 30 {
		chartW = 30
	}

	sb.WriteString(areaChart(temps, "Temperature °C", chartW, chartH, 0, autoScale(temps, 100), tempStyle, startTime, endTime))
	sb.WriteString("\n\n")

	sb.WriteString(areaChart(powers, "TEC Power W", chartW, chartH, 0, autoScale(powers, 100), powerStyle, startTime, endTime))
	sb.WriteString("\n\n")

	sb.WriteString(areaChart(duties, "Fan Duty %", chartW, chartH, 0, 100, dutyStyle, startTime, endTime))
	sb.WriteString("\n\n")

	sb.WriteString(areaChart(raws, "Raw Speed % (before remap)", chartW, 4, 0, 100, dutyStyle, startTime, endTime))
	sb.WriteString("\n")

	return sb.String()
}
