package ui

import (
	"fmt"
	"strings"

	"github.com/fantop/fantop/model"
)

// renderRulesPage lists the whole rule base with live firing strengths.
func renderRulesPage(ev *model.Evaluation, width, height int) string {
	var sb strings.Builder

	fired := 0
	strongest := -1
	for _, r := range ev.Rules {
		if r.Strength > 0 {
			fired++
			if strongest < 0 || r.Strength > ev.Rules[strongest].Strength {
				strongest = r.Index
			}
		}
	}

	sb.WriteString(" " + titleStyle.Render("RULES"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%d/%d firing)", fired, len(ev.Rules))))
	sb.WriteString("\n\n")

	textW := width - colBar - 16
	if textW < 30 {
		textW = 30
	}
	for _, r := range ev.Rules {
		num := dimStyle.Render(fmt.Sprintf("%2d", r.Index+1))
		if r.Index == strongest {
			num = accentStyle.Render(fmt.Sprintf("%2d", r.Index+1))
		}
		text := truncate(r.Text, textW)
		styledText := dimStyle.Render(text)
		if r.Strength > 0 {
			styledText = valueStyle.Render(text)
		}
		sb.WriteString(fmt.Sprintf(" %s %s %s %s\n",
			num,
			degreeBar(r.Strength, colBar),
			degreeStyle(r.Strength).Render(fmt.Sprintf("%.3f", r.Strength)),
			styledText))
	}

	sb.WriteString("\n")
	if strongest >= 0 {
		sb.WriteString(" " + dimStyle.Render("winner: ") +
			accentStyle.Render(fmt.Sprintf("rule %d", strongest+1)) +
			dimStyle.Render(" targeting ") +
			valueStyle.Render(ev.Rules[strongest].Label))
	} else {
		sb.WriteString(" " + dimStyle.Render("no rule firing, output undetermined"))
	}
	sb.WriteString("\n")

	// Aggregated output after max-combination and normalization
	sb.WriteString("\n " + titleStyle.Render(ev.Output.Name) + dimStyle.Render("  aggregated"))
	sb.WriteString("\n")
	for i, label := range ev.Output.Labels {
		d := ev.Output.Degrees[i]
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			degreeStyle(d).Render(padRight(label, colLabel)),
			degreeBar(d, colBar),
			degreeStyle(d).Render(fmt.Sprintf("%.3f", d))))
	}
	sb.WriteString(strings.Repeat(" ", 2) + dimStyle.Render(fmt.Sprintf("raw %.2f%%, duty %.2f%%", ev.Raw, ev.Duty)))
	sb.WriteString("\n")

	return sb.String()
}
