package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/is00hcw/wire/internal/message"
	"github.com/is00hcw/wire/internal/redactor"
	"github.com/is00hcw/wire/internal/report"
	"github.com/is00hcw/wire/internal/schema"
)

var (
	listPaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	detailPaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	noopStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	redactedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))
)

// Model is the schema browser: a type list on the left, field detail and a
// before/after redaction preview on the right.
type Model struct {
	set      *schema.Set
	registry *redactor.Registry

	types    []*schema.MessageType
	filtered []*schema.MessageType
	cursor   int

	filter    textinput.Model
	filtering bool
	viewport  viewport.Model

	width, height int
	status        string
}

// NewModel builds the browser over a compiled schema set.
func NewModel(set *schema.Set, registry *redactor.Registry) Model {
	ti := textinput.New()
	ti.Placeholder = "filter types"
	ti.CharLimit = 64

	m := Model{
		set:      set,
		registry: registry,
		types:    set.Types(),
		filter:   ti,
		viewport: viewport.New(0, 0),
	}
	m.filtered = m.types
	m.refreshDetail()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.detailWidth()
		m.viewport.Height = m.height - 4
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.applyFilter()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshDetail()
			}
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.refreshDetail()
			}
		case "/":
			m.filtering = true
			m.filter.Focus()
		case "c":
			m.copyRedactedPreview()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		m.filtered = m.types
	} else {
		var out []*schema.MessageType
		for _, t := range m.types {
			if strings.Contains(strings.ToLower(t.Qualified()), q) {
				out = append(out, t)
			}
		}
		m.filtered = out
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	m.refreshDetail()
}

func (m *Model) selected() *schema.MessageType {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.cursor]
}

func (m *Model) refreshDetail() {
	t := m.selected()
	if t == nil {
		m.viewport.SetContent("no matching types")
		return
	}
	m.viewport.SetContent(m.detail(t))
	m.viewport.GotoTop()
}

// detail renders fields and the redaction preview for one type.
func (m *Model) detail(t *schema.MessageType) string {
	var sb strings.Builder
	plan, err := m.registry.Get(t)
	if err != nil {
		return fmt.Sprintf("plan error: %v", err)
	}

	for _, f := range t.Fields {
		kind := f.Kind.String()
		if f.Kind == schema.KindMessage {
			kind = f.TypeName
		}
		mark := ""
		if f.Redacted {
			mark = redactedStyle.Render("  redacted")
		}
		fmt.Fprintf(&sb, "%-20s %s%s\n", f.Name, kind, mark)
	}
	sb.WriteString("\n")

	if plan.IsNoOp() {
		sb.WriteString(noopStyle.Render("redaction is a no-op for this type"))
		sb.WriteString("\n")
		return sb.String()
	}

	before, after, err := m.preview(t, plan)
	if err != nil {
		return sb.String() + fmt.Sprintf("preview error: %v", err)
	}
	sb.WriteString(titleStyle.Render("sample"))
	sb.WriteString("\n")
	sb.WriteString(report.HighlightJSON(before))
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("redacted"))
	sb.WriteString("\n")
	sb.WriteString(report.HighlightJSON(after))
	return sb.String()
}

func (m *Model) preview(t *schema.MessageType, plan *redactor.Redactor) (string, string, error) {
	sample := sampleMessage(t)
	redacted, err := plan.Redact(sample)
	if err != nil {
		return "", "", err
	}
	before, err := indentJSON(sample)
	if err != nil {
		return "", "", err
	}
	after, err := indentJSON(redacted)
	if err != nil {
		return "", "", err
	}
	return before, after, nil
}

func (m *Model) copyRedactedPreview() {
	t := m.selected()
	if t == nil {
		return
	}
	plan, err := m.registry.Get(t)
	if err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	_, after, err := m.preview(t, plan)
	if err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	if err := clipboard.WriteAll(after); err != nil {
		m.status = "clipboard unavailable"
		return
	}
	m.status = "redacted sample copied"
}

func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("wire schema  %d types  fingerprint %016x", m.set.Len(), m.set.Fingerprint()))

	var list strings.Builder
	for i, t := range m.filtered {
		line := t.Qualified()
		if plan, err := m.registry.Get(t); err == nil && plan.IsNoOp() {
			line = noopStyle.Render(line)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + t.Qualified())
		} else {
			line = "  " + line
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	left := listPaneStyle.Width(m.listWidth()).Height(m.height - 4).Render(list.String())
	right := detailPaneStyle.Width(m.detailWidth()).Height(m.height - 4).Render(m.viewport.View())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	footer := "[/] filter  [j/k] move  [c] copy redacted sample  [q] quit"
	if m.filtering {
		footer = "filter: " + m.filter.View()
	}
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	return title + "\n" + panes + "\n" + footer
}

func (m Model) listWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) detailWidth() int {
	w := m.width - m.listWidth() - 4
	if w < 30 {
		w = 30
	}
	return w
}

func indentJSON(msg *message.Message) (string, error) {
	b, err := message.Marshal(msg)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
