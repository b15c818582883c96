package viz

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/chaosmap/internal/sampler"
)

// ProgressMsg carries a sampler progress report into the program.
type ProgressMsg sampler.Progress

// DoneMsg ends the program.
type DoneMsg struct{ Err error }

// ProgressModel shows a running sampler. q or ctrl+c cancels the run and
// the view stays up until the sampler has stopped.
type ProgressModel struct {
	title    string
	cancel   context.CancelFunc
	progress sampler.Progress
	width    int
	stopping bool
	done     bool
	err      error
}

func NewProgressModel(title string, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{title: title, cancel: cancel, width: 40}
}

func (m ProgressModel) Err() error { return m.err }

func (m ProgressModel) Init() tea.Cmd { return nil }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.stopping && m.cancel != nil {
				m.cancel()
			}
			m.stopping = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 30
		if m.width < 10 {
			m.width = 10
		}
	case ProgressMsg:
		m.progress = sampler.Progress(msg)
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	p := m.progress
	frac := 0.0
	if p.Total > 0 {
		frac = float64(p.Done) / float64(p.Total)
	}

	var b strings.Builder
	b.WriteString(Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(ProgressBar(frac, m.width))
	b.WriteString(fmt.Sprintf(" %5.1f%%  %d/%d\n", 100*frac, p.Done, p.Total))
	b.WriteString(MetricLabel.Render("chaotic "))
	b.WriteString(ChaoticStyle.Render(fmt.Sprintf("%d", p.Chaotic)))
	b.WriteString(MetricLabel.Render("  failed "))
	b.WriteString(FailedStyle.Render(fmt.Sprintf("%d", p.Failed)))
	b.WriteString(MetricLabel.Render("  eta "))
	b.WriteString(MetricValue.Render(eta(p).String()))
	b.WriteString("\n")

	switch {
	case m.done:
	case m.stopping:
		b.WriteString(KeyHint.Render("stopping..."))
		b.WriteString("\n")
	default:
		b.WriteString(KeyHint.Render("q to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

func eta(p sampler.Progress) time.Duration {
	if p.Done == 0 || p.Done >= p.Total {
		return 0
	}
	per := p.Elapsed / time.Duration(p.Done)
	return (per * time.Duration(p.Total-p.Done)).Round(time.Second)
}

// RunProgress runs fn while showing its progress on stderr. Reports are
// thinned to roughly 200 updates per run. cancel is called when the user
// quits or the view fails; fn is expected to return promptly after that.
// RunProgress never returns while fn is still running.
func RunProgress(title string, cancel context.CancelFunc, fn func(report func(sampler.Progress)) error) error {
	return runProgress(title, cancel, fn, tea.WithOutput(os.Stderr))
}

func runProgress(title string, cancel context.CancelFunc, fn func(report func(sampler.Progress)) error, opts ...tea.ProgramOption) error {
	prog := tea.NewProgram(NewProgressModel(title, cancel), opts...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := fn(func(p sampler.Progress) {
			step := p.Total / 200
			if step < 1 {
				step = 1
			}
			if p.Done%step == 0 || p.Done == p.Total {
				prog.Send(ProgressMsg(p))
			}
		})
		prog.Send(DoneMsg{Err: err})
	}()

	final, err := prog.Run()
	if err != nil {
		if cancel != nil {
			cancel()
		}
		<-done
		return err
	}
	if m, ok := final.(ProgressModel); ok {
		return m.Err()
	}
	return nil
}
