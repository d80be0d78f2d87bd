package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yotsura/mangaflow/internal/cli/formatter"
	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/Yotsura/mangaflow/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// uiView tracks which screen the dashboard shows.
type uiView int

const (
	viewWorkList uiView = iota
	viewWorkDetail
)

type dashboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Snapshot key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultDashboardKeys() dashboardKeyMap {
	return dashboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Snapshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snapshot")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Messages delivered by async commands.
type worksLoadedMsg struct {
	works   []*domain.Work
	reports map[string]*service.Report
	err     error
}

type detailLoadedMsg struct {
	report *service.Report
	err    error
}

type snapshotTakenMsg struct {
	snap *domain.Snapshot
	err  error
}

// dashboardModel is the bubbletea Model for the "ui" dashboard.
type dashboardModel struct {
	app  *App
	keys dashboardKeyMap

	view   uiView
	works  []*domain.Work
	report map[string]*service.Report
	cursor int
	detail *service.Report
	bar    progress.Model

	width    int
	status   string
	err      error
	quitting bool
}

func newDashboardModel(app *App) dashboardModel {
	return dashboardModel{
		app:    app,
		keys:   defaultDashboardKeys(),
		view:   viewWorkList,
		report: make(map[string]*service.Report),
		bar: progress.New(
			progress.WithSolidFill("#8ec07c"),
			progress.WithWidth(30),
		),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadWorks(m.app)
}

func loadWorks(app *App) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		works, err := app.Works.List(ctx, false)
		if err != nil {
			return worksLoadedMsg{err: err}
		}
		reports := make(map[string]*service.Report, len(works))
		for _, w := range works {
			if rep, err := app.Progress.Report(ctx, w.ID); err == nil {
				reports[w.ID] = rep
			}
		}
		return worksLoadedMsg{works: works, reports: reports}
	}
}

func loadDetail(app *App, workID string) tea.Cmd {
	return func() tea.Msg {
		rep, err := app.Progress.Report(context.Background(), workID)
		return detailLoadedMsg{report: rep, err: err}
	}
}

func takeSnapshot(app *App, workID string) tea.Cmd {
	return func() tea.Msg {
		snap, err := app.Progress.TakeSnapshot(context.Background(), workID)
		return snapshotTakenMsg{snap: snap, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case worksLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.works = msg.works
			m.report = msg.reports
			if m.cursor >= len(m.works) {
				m.cursor = len(m.works) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
		}
		return m, nil

	case detailLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.detail = msg.report
			m.view = viewWorkDetail
		}
		return m, nil

	case snapshotTakenMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = fmt.Sprintf("Snapshot %s taken", shortID(msg.snap.ID))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.view == viewWorkList && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.view == viewWorkList && m.cursor < len(m.works)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if m.view == viewWorkList && m.cursor < len(m.works) {
			return m, loadDetail(m.app, m.works[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.Back):
		if m.view == viewWorkDetail {
			m.view = viewWorkList
			m.detail = nil
			return m, loadWorks(m.app)
		}

	case key.Matches(msg, m.keys.Snapshot):
		if m.view == viewWorkDetail && m.detail != nil {
			return m, takeSnapshot(m.app, m.detail.Work.ID)
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.view == viewWorkDetail && m.detail != nil {
			return m, loadDetail(m.app, m.detail.Work.ID)
		}
		return m, loadWorks(m.app)
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	switch m.view {
	case viewWorkDetail:
		b.WriteString(m.viewDetail())
	default:
		b.WriteString(m.viewList())
	}

	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + formatter.StyleGreen.Render(m.status) + "\n")
	}

	b.WriteString("\n" + formatter.Dim(m.helpLine()))
	return b.String()
}

func (m dashboardModel) helpLine() string {
	if m.view == viewWorkDetail {
		return "s snapshot · r refresh · esc back · q quit"
	}
	return "↑/↓ move · enter open · r refresh · q quit"
}

func (m dashboardModel) viewList() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Works") + "\n")

	if len(m.works) == 0 {
		b.WriteString(formatter.Dim("No works yet. Create one with \"mangaflow work new\".") + "\n")
		return b.String()
	}

	for i, w := range m.works {
		marker := "  "
		title := w.Title
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("> ")
			title = formatter.Bold(title)
		}

		progress := formatter.Dim("         -")
		if rep, ok := m.report[w.ID]; ok {
			progress = formatter.RenderProgress(float64(rep.Summary.Percent)/100, 10)
		}

		b.WriteString(fmt.Sprintf("%s%-30s %s %s\n",
			marker, title, progress, formatter.StatusIndicator(w.Status)))
	}
	return b.String()
}

func (m dashboardModel) viewDetail() string {
	if m.detail == nil {
		return formatter.Dim("Loading...")
	}

	rep := m.detail
	w := rep.Work

	var b strings.Builder
	b.WriteString(formatter.Header(w.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n",
		formatter.StatusIndicator(w.Status),
		m.bar.ViewAs(float64(rep.Summary.Percent)/100)))
	b.WriteString(fmt.Sprintf("%s done, %s left of %s\n",
		formatter.FormatHours(rep.Summary.CompletedHours),
		formatter.FormatHours(rep.Summary.RemainingHours),
		formatter.FormatHours(rep.Summary.TotalHours)))

	if rep.Pace.HasDeadline {
		b.WriteString(fmt.Sprintf("Deadline %s: %d days left, %s/day needed\n",
			w.Deadline.Format("2006-01-02"),
			rep.Pace.DaysLeft,
			formatter.FormatHours(rep.Pace.RequiredPerDay)))
	}

	if len(w.Units) > 0 {
		b.WriteString("\n" + formatter.RenderUnitTree(w.Units, w.Stages, w.Granularities) + "\n")
	}
	return b.String()
}
