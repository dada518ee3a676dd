// Copyright (c) 2025 Neomantra Corp

// Package tui is a small bubbletea dashboard that lists replay results
// symbol-by-symbol as each finished symbol is reported to it.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marketfeeds/itch-go"
	"github.com/marketfeeds/itch-go/internal/file"
)

// SymbolDoneMsg reports that one symbol's replay has finished.
type SymbolDoneMsg struct {
	Result file.ReplayResult
}

// ReplayDoneMsg reports that every tracked symbol has finished replaying.
type ReplayDoneMsg struct{}

// Model is the root bubbletea model for the replay dashboard.
type Model struct {
	table     table.Model
	date      time.Time
	total     int
	completed int
	done      bool
}

// NewModel returns a dashboard expecting `total` symbols to report in,
// rendering each symbol's last event time against the feed's session date.
func NewModel(total int, date time.Time) Model {
	columns := []table.Column{
		{Title: "Ticker", Width: 10},
		{Title: "Events", Width: 10},
		{Title: "Time", Width: 20},
		{Title: "Bid", Width: 10},
		{Title: "Ask", Width: 10},
		{Title: "Depth", Width: 10},
	}
	height := clampInt(total, 5, 20)
	t := table.New(table.WithColumns(columns), table.WithFocused(false), table.WithHeight(height))
	t.SetStyles(nimbleTableStyles)

	return Model{table: t, date: date, total: total}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case SymbolDoneMsg:
		m.completed++
		var bid, ask, depth uint32
		var lastTime string
		if n := len(msg.Result.Events); n > 0 {
			last := msg.Result.Events[n-1]
			bid, ask, depth = last.Bid, last.Ask, last.Depth
			lastTime = niceTime(itch.TimestampToTime(m.date, last.Timestamp))
		}
		rows := m.table.Rows()
		rows = append(rows, table.Row{
			msg.Result.Ticker,
			niceInt(len(msg.Result.Events)),
			lastTime,
			niceInt(bid),
			niceInt(ask),
			niceInt(depth),
		})
		m.table.SetRows(rows)
		if m.completed >= m.total {
			m.done = true
		}
	case ReplayDoneMsg:
		m.done = true
	}
	return m, nil
}

func (m Model) View() string {
	status := fmt.Sprintf("replayed %d/%d symbols (done=%s)", m.completed, m.total, niceBool(m.done))
	if m.done {
		status += " — press q to quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		nimbleBorderStyle.Render(m.table.View()),
		status,
	)
}
