package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/statbar/internal/config"
	"github.com/dkoosis/statbar/pkg/render"
	"github.com/dkoosis/statbar/pkg/statbar"
	"github.com/dkoosis/statbar/pkg/trace"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous bar")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next bar")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("space", "cycle display")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

type model struct {
	cfg      *config.AppConfig
	samp     *sampler
	rec      *trace.Recorder
	bars     []*statbar.Bar
	renderer *render.Terminal

	selected int
	width    int
	height   int
	now      time.Time
}

func newModel(cfg *config.AppConfig, samp *sampler, rec *trace.Recorder, bars []*statbar.Bar) model {
	return model{
		cfg:      cfg,
		samp:     samp,
		rec:      rec,
		bars:     bars,
		renderer: render.NewTerminal(render.ThemeByName(cfg.Theme)),
		now:      time.Now(),
	}
}

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	return tea.Tick(m.cfg.RefreshInterval(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, keys.Down):
			if m.selected < len(m.bars)-1 {
				m.selected++
			}
		case key.Matches(msg, keys.Toggle):
			if len(m.bars) > 0 {
				m.bars[m.selected].ToggleDisplay()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.now = time.Time(msg)
		m.samp.sample(m.now)
		return m, m.tick()
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "starting..."
	}
	barWidth := m.width - 2
	if barWidth < 12 {
		barWidth = 12
	}

	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(titleStyle.Render("statbar"))
	sb.WriteString("\n\n")
	for i, b := range m.bars {
		b.Resize(barWidth, b.RequiredHeight())
		sb.WriteString(gutter(m.renderer.Render(b.Frame(m.now, m.rec)), i == m.selected))
		sb.WriteString("\n")
	}
	if status := m.statusLine(); status != "" {
		sb.WriteString(helpStyle.Render("  " + status))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("  " + helpLine()))
	return sb.String()
}

// statusLine describes the selected bar's statistic, when it is bound
// and carries a description.
func (m model) statusLine() string {
	if len(m.bars) == 0 {
		return ""
	}
	stat, _ := m.rec.Lookup(m.bars[m.selected].StatName())
	if stat == nil {
		return ""
	}
	return stat.Description()
}

// gutter indents a rendered frame two cells and marks the selected
// bar's first row with a cursor.
func gutter(frame string, selected bool) string {
	lines := strings.Split(frame, "\n")
	for i, line := range lines {
		if i == 0 && selected {
			lines[i] = cursorStyle.Render("▸ ") + line
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

func helpLine() string {
	parts := make([]string, 0, 4)
	for _, b := range []key.Binding{keys.Up, keys.Down, keys.Toggle, keys.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  •  ")
}
