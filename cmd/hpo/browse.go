package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/query"
	"github.com/spf13/cobra"
)

// browsePageSize is how many search hits the browser shows.
const browsePageSize = 50

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	termBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	searchView view = iota
	termView
)

type keyMap struct {
	Tab   key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "input/results"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search/open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Back},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type model struct {
	svc         *query.Service
	currentView view

	input     textinput.Model
	results   table.Model
	resultIDs []string

	current    *graph.Term
	related    table.Model
	relatedIDs []string
	history    []string

	help       help.Model
	keys       keyMap
	width      int
	height     int
	message    string
	messageErr bool
}

func newTermTable(columns ...table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(accent).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func newBrowseModel(svc *query.Service) model {
	ti := textinput.New()
	ti.Placeholder = "abnormality of the eye"
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	return model{
		svc:         svc,
		currentView: searchView,
		input:       ti,
		results: newTermTable(
			table.Column{Title: "ID", Width: 14},
			table.Column{Title: "Label", Width: 56},
		),
		related: newTermTable(
			table.Column{Title: "Relation", Width: 8},
			table.Column{Title: "ID", Width: 14},
			table.Column{Title: "Label", Width: 48},
		),
		help: help.New(),
		keys: keys,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back()
			return m, nil
		case key.Matches(msg, m.keys.Tab) && m.currentView == searchView:
			m.toggleFocus()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			m.enter()
			return m, nil
		}
	}

	switch {
	case m.currentView == termView:
		m.related, cmd = m.related.Update(msg)
	case m.input.Focused():
		m.input, cmd = m.input.Update(msg)
	default:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *model) toggleFocus() {
	if m.input.Focused() {
		m.input.Blur()
		m.results.Focus()
		return
	}
	m.results.Blur()
	m.input.Focus()
}

func (m *model) enter() {
	switch {
	case m.currentView == termView:
		if i := m.related.Cursor(); i >= 0 && i < len(m.relatedIDs) {
			m.open(m.relatedIDs[i], true)
		}
	case m.input.Focused():
		m.search()
	default:
		if i := m.results.Cursor(); i >= 0 && i < len(m.resultIDs) {
			m.open(m.resultIDs[i], false)
		}
	}
}

func (m *model) search() {
	resp, err := m.svc.Search(query.SearchRequest{
		Query:    m.input.Value(),
		Page:     1,
		PageSize: browsePageSize,
	})
	if err != nil {
		m.setError(err)
		return
	}

	rows := make([]table.Row, len(resp.Nodes))
	m.resultIDs = make([]string, len(resp.Nodes))
	for i, term := range resp.Nodes {
		rows[i] = table.Row{term.ShortID, term.Label}
		m.resultIDs[i] = term.ID
	}
	m.results.SetRows(rows)
	m.results.SetCursor(0)

	m.message = fmt.Sprintf("%d matches, showing %d", resp.Total, len(resp.Nodes))
	m.messageErr = false
	if len(rows) > 0 {
		m.input.Blur()
		m.results.Focus()
	}
}

// open shows the term id. Walking from one term to another records the
// previous term so esc can return to it.
func (m *model) open(id string, walk bool) {
	term, err := m.svc.Term(id)
	if err != nil {
		m.setError(err)
		return
	}
	if walk && m.current != nil {
		m.history = append(m.history, m.current.ID)
	}
	if !walk {
		m.history = nil
	}
	m.show(term)
}

func (m *model) show(term *graph.Term) {
	m.current = term
	m.currentView = termView

	rows := make([]table.Row, 0, len(term.Parents)+len(term.Children))
	m.relatedIDs = make([]string, 0, cap(rows))
	for _, rel := range []struct {
		name string
		ids  []string
	}{{"parent", term.Parents}, {"child", term.Children}} {
		for _, id := range rel.ids {
			label := ""
			if t, err := m.svc.Store().Get(id); err == nil {
				label = t.Label
			}
			rows = append(rows, table.Row{rel.name, graph.ShortID(id), label})
			m.relatedIDs = append(m.relatedIDs, id)
		}
	}
	m.related.SetRows(rows)
	m.related.SetCursor(0)
	m.related.Focus()
	m.message = ""
}

func (m *model) back() {
	switch {
	case m.currentView == termView && len(m.history) > 0:
		prev := m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		if term, err := m.svc.Term(prev); err == nil {
			m.show(term)
		}
	case m.currentView == termView:
		m.currentView = searchView
		m.current = nil
		m.related.Blur()
	case !m.input.Focused():
		m.toggleFocus()
	}
}

func (m *model) setError(err error) {
	m.message = query.PublicMessage(err)
	m.messageErr = true
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("HPO Browser"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case searchView:
		s.WriteString(m.renderSearch())
	case termView:
		s.WriteString(m.renderTerm())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render(m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Search", "Term"}
	rendered := make([]string, len(tabs))
	for i, tab := range tabs {
		if view(i) == m.currentView {
			rendered[i] = activeTabStyle.Render(tab)
		} else {
			rendered[i] = inactiveTabStyle.Render(tab)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderSearch() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Search"))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(m.results.View())
	return contentStyle.Render(s.String())
}

func (m model) renderTerm() string {
	if m.current == nil {
		return ""
	}
	var detail strings.Builder
	writeTerm(&detail, m.current)

	var s strings.Builder
	s.WriteString(headerStyle.Render(m.current.Label))
	s.WriteString("\n\n")
	s.WriteString(termBoxStyle.Render(strings.TrimRight(detail.String(), "\n")))
	s.WriteString("\n\n")
	s.WriteString(m.related.View())
	if depth := len(m.history); depth > 0 {
		s.WriteString("\n")
		s.WriteString(helpStyle.Render(fmt.Sprintf("%d back", depth)))
	}
	return contentStyle.Render(s.String())
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Explore the ontology interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := opts.openService(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			svc.WarmSearch()

			p := tea.NewProgram(newBrowseModel(svc),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}
