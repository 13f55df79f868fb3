package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fantop/fantop/engine"
	"github.com/fantop/fantop/fuzzy"
	"github.com/fantop/fantop/model"
)

// renderShapesPage draws the membership geometry of every variable with
// a marker at the current crisp value. Shape parameters are immutable
// after compile, so reading them while a tick runs is safe; live
// degrees come from the evaluation snapshot instead of the controller.
func renderShapesPage(ctrl *engine.Controller, ev *model.Evaluation, width, height int) string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("SHAPES"))
	sb.WriteString("\n\n")

	stripW := width - 44
	if stripW < 24 {
		stripW = 24
	}

	for i, in := range ctrl.Inputs() {
		var state model.VariableState
		if i < len(ev.Inputs) {
			state = ev.Inputs[i]
		}
		sb.WriteString(renderSetShapes(in.Set, state, in.Source, stripW, false))
		sb.WriteString("\n")
	}
	sb.WriteString(renderSetShapes(ctrl.Output(), ev.Output, "output", stripW, true))
	return sb.String()
}

func renderSetShapes(set *fuzzy.Set, state model.VariableState, source string, stripW int, showCentroid bool) string {
	var sb strings.Builder

	lo, hi := set.Func(0).A, supportHi(set.Func(0))
	for i := 1; i < set.Len(); i++ {
		mf := set.Func(i)
		if mf.A < lo {
			lo = mf.A
		}
		if h := supportHi(mf); h > hi {
			hi = h
		}
	}

	sb.WriteString(" " + titleStyle.Render(set.Name()))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s, domain [%g, %g], x=%.2f", source, lo, hi, state.Crisp)))
	sb.WriteString("\n")

	for i := 0; i < set.Len(); i++ {
		mf := set.Func(i)
		d := float64(0)
		if i < len(state.Degrees) {
			d = state.Degrees[i]
		}
		line := fmt.Sprintf("  %s %s %s %s",
			degreeStyle(d).Render(padRight(set.Label(i), colLabel)),
			shapeStrip(mf, lo, hi, stripW, degreeStyle(d)),
			degreeStyle(d).Render(fmt.Sprintf("%.3f", d)),
			dimStyle.Render(paramText(mf)))
		if showCentroid {
			line += dimStyle.Render(fmt.Sprintf("  c=%.2f", fuzzy.Centroid(mf)))
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString(fmt.Sprintf("  %s %s\n",
		strings.Repeat(" ", colLabel),
		crispMarker(state.Crisp, lo, hi, stripW)))
	return sb.String()
}

// shapeStrip maps one membership function onto the variable's domain:
// full blocks for the core (degree 1), medium shade for the slopes.
func shapeStrip(mf fuzzy.MembershipFunction, lo, hi float64, width int, style lipgloss.Style) string {
	if width < 1 || hi <= lo {
		return ""
	}
	col := func(v float64) int {
		c := int((v-lo)/(hi-lo)*float64(width-1) + 0.5)
		if c < 0 {
			c = 0
		}
		if c >= width {
			c = width - 1
		}
		return c
	}

	cells := make([]rune, width)
	for i := range cells {
		cells[i] = '░'
	}
	supLo, supHi := mf.A, supportHi(mf)
	for i := col(supLo); i <= col(supHi); i++ {
		cells[i] = '▒'
	}
	coreLo, coreHi := coreBounds(mf)
	for i := col(coreLo); i <= col(coreHi); i++ {
		cells[i] = '█'
	}

	var sb strings.Builder
	for _, c := range cells {
		if c == '░' {
			sb.WriteString(dimStyle.Render(string(c)))
		} else {
			sb.WriteString(style.Render(string(c)))
		}
	}
	return sb.String()
}

// crispMarker renders an axis line with the crisp value position.
func crispMarker(x, lo, hi float64, width int) string {
	if width < 1 || hi <= lo {
		return ""
	}
	pos := int((x-lo)/(hi-lo)*float64(width-1) + 0.5)
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}
	var sb strings.Builder
	if pos > 0 {
		sb.WriteString(dimStyle.Render(strings.Repeat("─", pos)))
	}
	sb.WriteString(accentStyle.Render("▲"))
	if pos < width-1 {
		sb.WriteString(dimStyle.Render(strings.Repeat("─", width-1-pos)))
	}
	return sb.String()
}

// supportHi returns the upper end of the support interval, which lives
// in a different parameter per shape.
func supportHi(mf fuzzy.MembershipFunction) float64 {
	switch mf.Shape {
	case fuzzy.Triangular:
		return mf.C
	case fuzzy.Trapezoidal:
		return mf.D
	default:
		return mf.B
	}
}

// coreBounds returns the interval of full membership.
func coreBounds(mf fuzzy.MembershipFunction) (float64, float64) {
	switch mf.Shape {
	case fuzzy.Triangular:
		return mf.B, mf.B
	case fuzzy.Trapezoidal:
		return mf.B, mf.C
	default:
		return mf.A, mf.B
	}
}

func paramText(mf fuzzy.MembershipFunction) string {
	switch mf.Shape {
	case fuzzy.Triangular:
		return fmt.Sprintf("triangle(%g, %g, %g)", mf.A, mf.B, mf.C)
	case fuzzy.Trapezoidal:
		return fmt.Sprintf("trapezoid(%g, %g, %g, %g)", mf.A, mf.B, mf.C, mf.D)
	default:
		return fmt.Sprintf("rectangle(%g, %g)", mf.A, mf.B)
	}
}
