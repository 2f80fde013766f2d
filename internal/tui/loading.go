package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// loadingPhrases rotate while a bundle is being assembled.
var loadingPhrases = []string{
	"Consulting the archives",
	"Pulling volumes from the stacks",
	"Matching stories to your mood",
	"Finding covers and posters",
}

// Loading shows a spinner, elapsed time and the estimated cost of the
// running discovery.
type Loading struct {
	spinner    spinner.Model
	provider   string
	model      string
	inputChars int
	started    time.Time
	finished   time.Time
	running    bool
}

// NewLoading creates an idle loading display.
func NewLoading(provider, model string) Loading {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Loading{spinner: s, provider: provider, model: model}
}

// Start begins timing a run whose prompts total inputChars.
func (l Loading) Start(inputChars int, now time.Time) (Loading, tea.Cmd) {
	l.inputChars = inputChars
	l.started = now
	l.finished = time.Time{}
	l.running = true
	return l, l.spinner.Tick
}

// Stop ends timing.
func (l Loading) Stop(now time.Time) Loading {
	l.running = false
	l.finished = now
	return l
}

// Update advances the spinner while running.
func (l Loading) Update(msg tea.Msg) (Loading, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || !l.running {
		return l, nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// Elapsed is the run time so far, or of the last run once stopped.
func (l Loading) Elapsed(now time.Time) time.Duration {
	if l.started.IsZero() {
		return 0
	}
	if !l.running {
		return l.finished.Sub(l.started)
	}
	return now.Sub(l.started)
}

// EstimatedCost is the expected price of the run in USD.
func (l Loading) EstimatedCost() float64 {
	return EstimateCost(l.provider, l.model,
		EstimateTokens(l.inputChars), EstimateTokens(ExpectedOutputChars))
}

// View renders the loading screen body.
func (l Loading) View(now time.Time) string {
	elapsed := l.Elapsed(now).Truncate(time.Second)
	phrase := loadingPhrases[int(elapsed/(3*time.Second))%len(loadingPhrases)]

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s…\n\n", l.spinner.View(), StepStyle.Render(phrase))
	fmt.Fprintf(&b, "  %s  %s  ~%s in  est. %s\n",
		ModelStyle.Render(l.label()),
		HelpStyle.Render(elapsed.String()),
		FormatTokens(EstimateTokens(l.inputChars)),
		CostStyle.Render(FormatCost(l.EstimatedCost())),
	)
	return b.String()
}

// Summary is the one-line footer shown with results.
func (l Loading) Summary() string {
	if l.started.IsZero() || l.running {
		return ""
	}
	return fmt.Sprintf("%s  %s  est. %s",
		ModelStyle.Render(l.label()),
		HelpStyle.Render(l.Elapsed(time.Time{}).Truncate(time.Second).String()),
		CostStyle.Render(FormatCost(l.EstimatedCost())),
	)
}

func (l Loading) label() string {
	if l.model == "" {
		return l.provider
	}
	return l.provider + "/" + l.model
}
