package main

import (
	"context"
	"fmt"
	"time"

	"depthlint/internal/lint"
	"depthlint/internal/scan"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	findings   []lint.Finding
	fileCount  int
	lastUpdate time.Time
}

type updateMsg struct {
	result *scan.Result
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.findings = msg.result.Findings
		m.fileCount = msg.result.Files
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, f := range m.findings {
			items = append(items, item{
				title: f.Message,
				desc:  fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Column),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files",
		m.lastUpdate.Format("15:04:05"), m.fileCount))

	var summary string
	if len(m.findings) == 0 {
		summary = successStyle.Render("✅ No deep imports")
	} else {
		summary = violationStyle.Render(fmt.Sprintf("⚠️  %d violations", len(m.findings)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Import Depth Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Deep Imports"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func runUI(ctx context.Context, app *App, initial *scan.Result) error {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())

	err := app.StartWatcher(ctx, func(r *scan.Result) {
		p.Send(updateMsg{result: r})
	})
	if err != nil {
		return err
	}

	go func() {
		p.Send(updateMsg{result: initial})
	}()

	_, err = p.Run()
	return err
}
