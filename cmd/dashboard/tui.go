// cmd/dashboard/tui.go
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"echo3/internal/advisor"
	"echo3/internal/catalog"
	stderrors "echo3/internal/common/errors"
	"echo3/internal/market"
	"echo3/internal/orchestrator"
	"echo3/internal/session"
)

const conversationTail = 6

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cardOnStyle   = cardStyle.Copy().BorderForeground(lipgloss.Color("205")).Bold(true)
	roleUserStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	roleAIStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	roleSysStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pendingStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("220")).Padding(0, 1)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

type eventMsg struct {
	event orchestrator.Event
}

type tickMsg time.Time

type model struct {
	orch      *orchestrator.Orchestrator
	sess      *session.Session
	cat       *catalog.Catalog
	refresher *market.Refresher

	// Snapshots of loop-owned state, updated only from events. The live
	// Selection and TrustState belong to the orchestrator goroutine and
	// must never be read here; only the mutex-guarded Log is shared.
	trust       session.TrustState
	selected    []string
	selDesc     string
	suggestions []string

	input    textinput.Model
	spin     spinner.Model
	width    int
	busy     bool
	label    string
	percent  int
	pending  *advisor.Recommendation
	inputErr string
}

func newModel(orch *orchestrator.Orchestrator, sess *session.Session, cat *catalog.Catalog, refresher *market.Refresher) model {
	ti := textinput.New()
	ti.Placeholder = "Ask about a DeFi decision..."
	ti.CharLimit = 280
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Seed the snapshots before the orchestrator loop starts; after that
	// every change arrives as an event.
	return model{
		orch:        orch,
		sess:        sess,
		cat:         cat,
		refresher:   refresher,
		trust:       *sess.Trust,
		selected:    sess.Selection.IDs(),
		selDesc:     sess.Selection.Describe(),
		suggestions: sess.Selection.Suggestions(),
		input:       ti,
		spin:        sp,
	}
}

func waitEvent(events <-chan orchestrator.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-events}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitEvent(m.orch.Events()), m.spin.Tick, tick(), textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case eventMsg:
		m.applyEvent(msg.event)
		return m, waitEvent(m.orch.Events())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) applyEvent(e orchestrator.Event) {
	switch ev := e.(type) {
	case orchestrator.StateEvent:
		m.busy = ev.State != orchestrator.StateIdle
		if !m.busy {
			m.label = ""
			m.percent = 0
		}
	case orchestrator.ProgressEvent:
		m.label = ev.Update.Label
		m.percent = ev.Update.Percent
	case orchestrator.PendingEvent:
		rec := ev.Recommendation
		m.pending = &rec
	case orchestrator.DecisionEvent:
		m.pending = nil
	case orchestrator.SelectionEvent:
		m.selected = ev.IDs
		m.selDesc = ev.Description
		m.suggestions = ev.Suggestions
	case orchestrator.TrustEvent:
		m.trust = ev.Trust
	}
	// MessageEvent needs no handling here: messages render from the log.
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		text := m.input.Value()
		m.input.SetValue("")
		m.inputErr = ""
		if err := m.orch.Dispatch(text); err != nil {
			var stdErr *stderrors.StandardError
			if errors.As(err, &stdErr) {
				m.inputErr = stdErr.Message
			} else {
				m.inputErr = err.Error()
			}
		}
		return m, nil

	case "a", "m", "r":
		if m.pending != nil && !m.input.Focused() {
			return m.decide(msg.String())
		}

	case "tab":
		if m.input.Focused() {
			m.input.Blur()
		} else {
			m.input.Focus()
		}
		return m, nil
	}

	if !m.input.Focused() {
		if idx := digitIndex(msg.String()); idx >= 0 {
			dims := m.cat.Dimensions()
			if idx < len(dims) {
				m.orch.Toggle(dims[idx].ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) decide(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		m.orch.Decide(session.VerdictAccept)
	case "m":
		m.orch.Decide(session.VerdictModify)
	case "r":
		m.orch.Decide(session.VerdictReject)
	}
	return m, nil
}

func digitIndex(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1')
	}
	return -1
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("ECHO3 - Multi-Dimensional Truth Discovery"))
	b.WriteString("\n")
	b.WriteString(m.priceLine())
	b.WriteString("\n")
	b.WriteString(m.trustLine())
	b.WriteString("\n\n")

	b.WriteString(m.cards())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.selDesc))
	b.WriteString("\n\n")

	b.WriteString(m.conversation())

	if m.busy {
		b.WriteString(fmt.Sprintf("\n%s %s %s\n",
			m.spin.View(),
			progressStyle.Render(fmt.Sprintf("%3d%%", m.percent)),
			m.label))
	}

	if m.pending != nil {
		b.WriteString("\n")
		b.WriteString(m.pendingPanel())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if !m.busy && m.input.Value() == "" && len(m.suggestions) > 0 {
		b.WriteString(hintStyle.Render("try: " + strings.Join(m.suggestions, "  |  ")))
		b.WriteString("\n")
	}
	if m.inputErr != "" {
		b.WriteString(errStyle.Render(m.inputErr))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter: ask | tab: focus | 1-9: toggle dimension | a/m/r: decide | esc: quit"))

	return b.String()
}

func (m model) priceLine() string {
	snap := m.refresher.Current()
	if snap == nil {
		return priceStyle.Render("prices loading...")
	}
	return priceStyle.Render(fmt.Sprintf("BTC $%.0f  ETH $%.2f  SOL $%.2f  [%s]",
		snap.BTC, snap.ETH, snap.SOL, snap.Source))
}

func (m model) trustLine() string {
	t := m.trust
	chain := "demo"
	if t.OnChainVerified {
		chain = "on-chain"
	}
	return hintStyle.Render(fmt.Sprintf(
		"confidence %.0f%% | success %.0f%% | truth %.0f%% | collaboration %.0f%% | sessions %d | overrides %d | %s",
		t.Confidence*100, t.SuccessRate*100, t.TruthScore*100,
		t.CollaborationScore*100, t.TotalSessions, t.HumanOverrideCount, chain))
}

func (m model) cards() string {
	var cards []string
	for i, d := range m.cat.Dimensions() {
		label := fmt.Sprintf("%d. %s\n%s [%s]", i+1, d.Title, d.Subtitle, d.Badge)
		if m.isSelected(d.ID) {
			cards = append(cards, cardOnStyle.Render(label))
		} else {
			cards = append(cards, cardStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m model) isSelected(id string) bool {
	for _, sel := range m.selected {
		if sel == id {
			return true
		}
	}
	return false
}

func (m model) conversation() string {
	msgs := m.sess.Log.Messages()
	start := 0
	if len(msgs) > conversationTail {
		start = len(msgs) - conversationTail
	}

	var b strings.Builder
	for _, msg := range msgs[start:] {
		var role string
		switch msg.Role {
		case session.RoleUser:
			role = roleUserStyle.Render("you")
		case session.RoleAssistant:
			role = roleAIStyle.Render("echo3")
		default:
			role = roleSysStyle.Render("system")
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", role, firstLines(msg.Content, 8)))
	}
	return b.String()
}

func (m model) pendingPanel() string {
	rec := m.pending
	body := fmt.Sprintf("PENDING DECISION: %s (%s)\nConfidence %.0f%% | Risk %s | TVL %s\n%s\n[a]ccept  [m]odify  [r]eject",
		rec.Project, rec.Ecosystem, rec.Confidence*100, rec.RiskLevel, rec.TVL, rec.Suggestion)
	return pendingStyle.Render(body)
}

// firstLines trims a long message for the conversation tail. Full content
// stays in the log.
func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}
