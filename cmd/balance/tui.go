package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	total      int
	finished   int
	totalScore int
	bestScore  int
	gameOvers  int
	startTime  time.Time
	recentRuns []string
	updates    <-chan RunUpdate
	done       bool
}

func initialModel(updates <-chan RunUpdate, total int) model {
	return model{
		total:     total,
		startTime: time.Now(),
		updates:   updates,
	}
}

type TickMsg time.Time

type doneMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func waitForUpdate(updates <-chan RunUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return u
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case RunUpdate:
		m.finished++
		m.totalScore += msg.State.Score
		if msg.State.Score > m.bestScore {
			m.bestScore = msg.State.Score
		}
		if !msg.State.Playing {
			m.gameOvers++
		}
		line := fmt.Sprintf("Run %d (seed %d): score %d, level %d, delivered %d, lost %d, %d ticks",
			msg.Run, msg.Seed, msg.State.Score, msg.State.Level, msg.State.Delivered, msg.State.Lost, msg.Ticks)
		m.recentRuns = append([]string{line}, m.recentRuns...)
		if len(m.recentRuns) > 10 {
			m.recentRuns = m.recentRuns[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	avg := 0.0
	if m.finished > 0 {
		avg = float64(m.totalScore) / float64(m.finished)
	}

	s := fmt.Sprintf("Runs:        %d/%d\n", m.finished, m.total)
	s += fmt.Sprintf("Game Overs:  %d\n", m.gameOvers)
	s += fmt.Sprintf("Avg Score:   %.2f\n", avg)
	s += fmt.Sprintf("Best Score:  %d\n", m.bestScore)
	s += fmt.Sprintf("Duration:    %s\n\n", duration.Round(time.Second))

	s += "Recent Runs:\n"
	for _, r := range m.recentRuns {
		s += r + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}
