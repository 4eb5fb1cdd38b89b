// Package monitor implements the live watch view. Each refresh opens
// the database read-only, runs the aggregation and closes it again; no
// handle is held between ticks.
package monitor

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sdpower/ocusage-go/internal/calculator"
	"github.com/sdpower/ocusage-go/internal/output"
	"github.com/sdpower/ocusage-go/internal/store"
	"github.com/sdpower/ocusage-go/internal/types"
)

const topModelCount = 5

type Monitor struct {
	options Options
}

type Options struct {
	DBPath   string
	Interval time.Duration
	NoColor  bool
	Days     int
}

type model struct {
	options    Options
	lastUpdate time.Time
	total      types.UsageRow
	topModels  []types.UsageRow
	err        error
}

type tickMsg time.Time

type refreshMsg struct {
	total     types.UsageRow
	topModels []types.UsageRow
	err       error
}

func New(opts Options) *Monitor {
	if opts.Interval == 0 {
		opts.Interval = 5 * time.Second
	}
	if opts.Days <= 0 {
		opts.Days = 7
	}
	return &Monitor{options: opts}
}

func (m *Monitor) Start(ctx context.Context) error {
	p := tea.NewProgram(
		initialModel(m.options),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

func initialModel(opts Options) model {
	return model{
		options:    opts,
		lastUpdate: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.options.Interval),
		m.refresh(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}

	case tickMsg:
		m.lastUpdate = time.Time(msg)
		return m, tea.Batch(
			tickCmd(m.options.Interval),
			m.refresh(),
		)

	case refreshMsg:
		m.total = msg.total
		m.topModels = msg.topModels
		m.err = msg.err
	}

	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'q' to quit, 'r' to retry", m.err)
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		MarginBottom(1)
	if !m.options.NoColor {
		headerStyle = headerStyle.Foreground(lipgloss.Color("205"))
	}

	content := headerStyle.Render(fmt.Sprintf("OpenCode Usage — Last %d days", m.options.Days))
	content += "\n\n"

	summaryStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1).
		MarginBottom(1)
	if !m.options.NoColor {
		summaryStyle = summaryStyle.BorderForeground(lipgloss.Color("240"))
	}

	summary := fmt.Sprintf(
		"Calls: %d\nTokens: %s\nCost: %s\nLast Update: %s",
		m.total.Calls,
		output.FormatTokens(m.total.Tokens.Total),
		output.FormatCost(m.total.Cost),
		m.lastUpdate.Format("15:04:05"),
	)

	content += summaryStyle.Render(summary)
	content += "\n\n"

	if len(m.topModels) > 0 {
		content += "Top Models:\n"
		max := calculator.MaxValue(calculator.TrendValues(m.topModels))
		for _, r := range m.topModels {
			bar := calculator.SparkBar(r.Tokens.Total, max, 16)
			if !m.options.NoColor {
				bar = heatStyle(r.Tokens.Total, max).Render(bar)
			}
			content += fmt.Sprintf(
				"  %-20s %s %8s  %s\n",
				output.ShortenModelName(r.Label),
				bar,
				output.FormatTokens(r.Tokens.Total),
				output.FormatCost(r.Cost),
			)
		}
	}

	content += "\n\nPress 'q' to quit, 'r' to refresh"
	return content
}

// heatStyle colors a bar on a green-to-red ramp by usage share.
func heatStyle(value, max int) lipgloss.Style {
	share := 0.0
	if max > 0 {
		share = float64(value) / float64(max)
	}
	green := colorful.Hsv(120, 0.7, 0.8)
	red := colorful.Hsv(0, 0.7, 0.9)
	c := green.BlendHcl(red, share).Clamped()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

func (m model) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		st, err := store.Open(m.options.DBPath)
		if err != nil {
			return refreshMsg{err: err}
		}
		defer func() { _ = st.Close() }()

		since := time.Now().AddDate(0, 0, -m.options.Days)

		total, err := st.Totals(ctx, store.QueryOptions{Since: since})
		if err != nil {
			return refreshMsg{err: err}
		}

		topModels, err := st.ByModel(ctx, store.QueryOptions{Since: since, Limit: topModelCount})
		if err != nil {
			return refreshMsg{err: err}
		}

		return refreshMsg{total: total, topModels: topModels}
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
