package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/forestlab/internal/experiment"
)

var (
	liveTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	liveDone = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))
)

// LiveModel is a bubbletea view of a running batch: rows completed,
// throughput, and a progress bar. Progress events arrive on a channel
// fed by the analysis goroutine.
type LiveModel struct {
	title    string
	events   <-chan experiment.Progress
	progress experiment.Progress
	started  time.Time
	finished bool
}

func NewLiveModel(title string, events <-chan experiment.Progress) LiveModel {
	return LiveModel{title: title, events: events, started: time.Now()}
}

type progressMsg experiment.Progress

type batchDoneMsg struct{}

func (m LiveModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.events
		if !ok {
			return batchDoneMsg{}
		}
		return progressMsg(p)
	}
}

func (m LiveModel) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case progressMsg:
		m.progress = experiment.Progress(msg)
		return m, m.waitForEvent()
	case batchDoneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LiveModel) View() string {
	var sb strings.Builder
	sb.WriteString(liveTitle.Render(m.title))
	sb.WriteString("\n\n")

	total := m.progress.Total
	done := m.progress.Done
	frac := 0.0
	if total > 0 {
		frac = float64(done) / float64(total)
	}

	const width = 50
	filled := int(frac * width)
	sb.WriteString("  [")
	sb.WriteString(strings.Repeat("█", filled))
	sb.WriteString(strings.Repeat("░", width-filled))
	sb.WriteString("]\n\n")

	elapsed := time.Since(m.started).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed
	}
	sb.WriteString(fmt.Sprintf("  %d / %d rows   %.0f rows/s\n", done, total, rate))

	if m.finished {
		sb.WriteString("\n" + liveDone.Render("  batch complete") + "\n")
	} else {
		sb.WriteString("\n  q to quit\n")
	}
	return sb.String()
}
