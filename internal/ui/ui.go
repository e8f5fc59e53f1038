package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wholefoodlabs/larder/internal/gamification"
	"github.com/wholefoodlabs/larder/internal/lifecycle"
	"github.com/wholefoodlabs/larder/internal/prefs"
	"github.com/wholefoodlabs/larder/internal/saved"
)

// Options configure the UI runtime.
type Options struct {
	Context  context.Context
	Saved    *saved.Store
	Prefs    *prefs.Store
	Engine   *gamification.Engine
	Observer *lifecycle.Observer
}

const snapshotEvery = time.Second

type tickMsg time.Time

type refreshDoneMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(snapshotEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	opts   Options
	keys   keyMap
	help   help.Model
	spin   spinner.Model
	level  progress.Model
	styles Styles

	snapshot    saved.Snapshot
	stats       gamification.State
	cursor      int
	lastUnsaved string
	width       int
	showHelp    bool
}

func newModel(opts Options) model {
	styles := ResolvePalette(opts.Prefs.Mode()).Styles()
	return model{
		opts:   opts,
		keys:   defaultKeyMap(),
		help:   help.New(),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		level:  progress.New(progress.WithDefaultGradient()),
		styles: styles,
	}
}

// Run starts the bubbletea program and blocks until ctx is cancelled or the
// user quits. Focus reporting is enabled so the lifecycle observer sees
// terminal focus regained as a background-to-foreground transition.
func Run(ctx context.Context, opts Options) error {
	if opts.Saved == nil || opts.Prefs == nil || opts.Engine == nil || opts.Observer == nil {
		return fmt.Errorf("ui requires all stores to be wired")
	}
	if opts.Context == nil {
		opts.Context = ctx
	}

	p := tea.NewProgram(newModel(opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		// Context cancellation (SIGINT) is a normal shutdown path.
		return nil
	}
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spin.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.FocusMsg:
		m.opts.Observer.Observe(m.opts.Context, lifecycle.PhaseForeground)
		return m, nil

	case tea.BlurMsg:
		m.opts.Observer.Observe(m.opts.Context, lifecycle.PhaseBackground)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m = m.resnapshot()
		return m, tick()

	case refreshDoneMsg:
		m = m.resnapshot()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snapshot.Items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Unsave):
		if m.cursor < len(m.snapshot.Items) {
			id := m.snapshot.Items[m.cursor].ID
			m.opts.Saved.Remove(m.opts.Context, id)
			m.lastUnsaved = id
			m = m.resnapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.lastUnsaved != "" {
			m.opts.Saved.Add(m.opts.Context, m.lastUnsaved)
			m.lastUnsaved = ""
			m = m.resnapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		store, ctx := m.opts.Saved, m.opts.Context
		return m, func() tea.Msg {
			_ = store.FetchAll(ctx)
			return refreshDoneMsg{}
		}

	case key.Matches(msg, m.keys.Theme):
		next := prefs.NextMode(m.opts.Prefs.Mode())
		m.opts.Prefs.Set(next)
		m.styles = ResolvePalette(next).Styles()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}
	return m, nil
}

func (m model) resnapshot() model {
	m.snapshot = m.opts.Saved.Snapshot()
	m.stats = m.opts.Engine.State()
	if m.cursor >= len(m.snapshot.Items) {
		m.cursor = len(m.snapshot.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("LARDER"))
	b.WriteString("  ")
	b.WriteString(m.styles.Header.Render(statsLine(m.stats)))
	b.WriteString("\n")
	b.WriteString(m.level.ViewAs(m.stats.Progress()))
	b.WriteString("\n\n")

	if m.snapshot.Loading {
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.Muted.Render(" syncing saved recipes..."))
		b.WriteString("\n\n")
	}

	if len(m.snapshot.Items) == 0 {
		b.WriteString(m.styles.Muted.Render("No saved recipes yet."))
		b.WriteString("\n")
	}
	for i, item := range m.snapshot.Items {
		line := recipeLine(item.Title, item.TotalTimeMin, item.Difficulty)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}

	if m.snapshot.LastError != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render("sync error: "))
		b.WriteString(m.styles.Muted.Render(m.snapshot.LastError.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.styles.Footer.Render(m.help.FullHelpView(m.keys.FullHelp())))
	} else {
		b.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}
	return b.String()
}

// statsLine formats the gamification header: level, in-level XP, and streak.
func statsLine(s gamification.State) string {
	streak := "no streak"
	if s.StreakDays == 1 {
		streak = "1 day streak"
	} else if s.StreakDays > 1 {
		streak = fmt.Sprintf("%d day streak", s.StreakDays)
	}
	return fmt.Sprintf("Lv %d  %d/%d xp  •  %s",
		s.Level(), s.XPInLevel(), gamification.XPPerLevel, streak)
}

// recipeLine formats one saved-recipe row.
func recipeLine(title string, totalMin int, difficulty string) string {
	parts := []string{title}
	if totalMin > 0 {
		parts = append(parts, fmt.Sprintf("%dm", totalMin))
	}
	if difficulty != "" {
		parts = append(parts, difficulty)
	}
	return strings.Join(parts, "  ·  ")
}
