// Package ui is the interactive terminal front end: a bubbletea program
// that ticks the engine on an interval and renders the live control
// loop, its history, the rule base, and the membership shapes.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fantop/fantop/engine"
	"github.com/fantop/fantop/model"
)

// Page identifies the current screen.
type Page int

const (
	PageOverview Page = iota
	PageTimeline
	PageRules
	PageShapes
	pageCount
)

var pageNames = []string{"Overview", "Timeline", "Rules", "Shapes"}

type tickMsg time.Time

type evalMsg struct {
	ev *model.Evaluation
}

// Model is the bubbletea model.
type Model struct {
	ticker   engine.Ticker
	engine   *engine.Engine
	interval time.Duration
	width    int
	height   int

	// Latest cycle snapshot. Render paths read this, never the live
	// controller state, so a tick running concurrently cannot race a
	// frame.
	ev *model.Evaluation

	page     Page
	showHelp bool
	scroll   int
	paused   bool
}

// NewModel creates a new TUI model driving the given ticker.
func NewModel(ticker engine.Ticker, interval time.Duration) Model {
	return Model{
		ticker:   ticker,
		engine:   ticker.Base(),
		interval: interval,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), evalOnce(m.ticker))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func evalOnce(ticker engine.Ticker) tea.Cmd {
	return func() tea.Msg {
		return evalMsg{ev: ticker.Tick()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
		case "a":
			m.paused = !m.paused
			if !m.paused {
				// Resume: schedule next tick immediately
				return m, tea.Batch(tick(m.interval), evalOnce(m.ticker))
			}
		case "0":
			m.page = PageOverview
			m.scroll = 0
		case "1":
			m.page = PageTimeline
			m.scroll = 0
		case "2":
			m.page = PageRules
			m.scroll = 0
		case "3":
			m.page = PageShapes
			m.scroll = 0
		case "tab", "l", "right":
			m.page = (m.page + 1) % pageCount
			m.scroll = 0
		case "shift+tab", "h", "left":
			m.page = (m.page - 1 + pageCount) % pageCount
			m.scroll = 0
		case "b", "esc":
			m.page = PageOverview
			m.scroll = 0
		case "j", "down":
			m.scroll++
		case "k", "up":
			if m.scroll > 0 {
				m.scroll--
			}
		case "g":
			m.scroll = 0
		case "G":
			m.scroll += 20
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if m.paused {
			return m, nil
		}
		return m, tea.Batch(tick(m.interval), evalOnce(m.ticker))
	case evalMsg:
		if !m.paused {
			m.ev = msg.ev
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.ev == nil {
		return "Collecting first sample..."
	}

	var content string
	switch m.page {
	case PageOverview:
		content = renderOverviewPage(m.ev, m.engine.History, m.width, m.height)
	case PageTimeline:
		content = renderTimelinePage(m.engine.History, m.width, m.height)
	case PageRules:
		content = renderRulesPage(m.ev, m.width, m.height)
	case PageShapes:
		content = renderShapesPage(m.engine.Controller(), m.ev, m.width, m.height)
	}

	content = m.injectClock(content)

	// Clamp scroll to valid range, then trim to viewport height
	lines := strings.Split(content, "\n")
	if m.scroll >= len(lines) {
		m.scroll = len(lines) - 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
	if m.scroll > 0 && m.scroll < len(lines) {
		lines = lines[m.scroll:]
	}
	maxLines := m.height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	content = strings.Join(lines, "\n")

	return content + "\n" + m.renderStatusBar()
}

func (m Model) renderStatusBar() string {
	var tabs []string
	for i, name := range pageNames {
		label := fmt.Sprintf("%d:%s", i, name)
		if Page(i) == m.page {
			tabs = append(tabs, headerStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+label+" "))
		}
	}
	left := strings.Join(tabs, "")
	if m.paused {
		left += "  " + critStyle.Render("[PAUSED]")
	}

	help := helpStyle.Render("tab:page  a:pause  j/k:scroll  ?:help  q:quit")

	leftW := lipgloss.Width(left)
	helpW := lipgloss.Width(help)
	if leftW+helpW+1 <= m.width {
		gap := m.width - leftW - helpW
		return left + strings.Repeat(" ", gap) + help
	}
	if leftW <= m.width {
		return left
	}
	return dimStyle.Render(pageNames[m.page])
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("fantop — Fuzzy TEC Fan Controller"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Navigation"))
	sb.WriteString("\n")
	sb.WriteString("  0         Overview (sensors, memberships, duty command)\n")
	sb.WriteString("  1         Timeline (history charts)\n")
	sb.WriteString("  2         Rules (rule base with firing strengths)\n")
	sb.WriteString("  3         Shapes (membership functions and crisp markers)\n")
	sb.WriteString("  Tab / h/l Cycle pages\n")
	sb.WriteString("  b / Esc   Back to overview\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Controls"))
	sb.WriteString("\n")
	sb.WriteString("  a         Toggle auto-refresh (pause/resume)\n")
	sb.WriteString("  j/k       Scroll down/up\n")
	sb.WriteString("  g/G       Top / jump down\n")
	sb.WriteString("  ?         Toggle this help\n")
	sb.WriteString("  q/Ctrl+C  Quit\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Pages"))
	sb.WriteString("\n")
	sb.WriteString("  Overview   Live readings, input/output memberships, duty trend\n")
	sb.WriteString("  Timeline   Temperature, power, and duty history charts\n")
	sb.WriteString("  Rules      Every rule with its live firing strength\n")
	sb.WriteString("  Shapes     Membership geometry with the current crisp values\n")
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Press any key to close"))
	return sb.String()
}

// injectClock overlays "HH:MM:SS  every Ns" on the top-right of the
// first content line.
func (m Model) injectClock(content string) string {
	if m.width < 40 {
		return content
	}

	now := time.Now().Format("15:04:05")
	intervalStr := fmt.Sprintf("%.0fs", m.interval.Seconds())
	clock := dimStyle.Render(now + "  every " + intervalStr)
	clockW := lipgloss.Width(clock)

	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		return content
	}

	firstLine := lines[0]
	lineW := lipgloss.Width(firstLine)
	gap := m.width - lineW - clockW
	if gap < 2 {
		return content
	}
	lines[0] = firstLine + strings.Repeat(" ", gap) + clock
	return strings.Join(lines, "\n")
}
