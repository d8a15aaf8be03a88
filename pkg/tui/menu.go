// Package tui is the interactive query menu.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/teamload/pkg/report"
	"github.com/harrisonrobin/teamload/pkg/roster"
)

type state int

const (
	stateMenu state = iota
	stateInput
	stateResult
)

const (
	fieldTeam  = "Team code (blank for all teams)"
	fieldTag   = "Expertise tag"
	fieldKey   = "Property name"
	fieldValue = "Property value"
)

// MenuOption is one numbered menu entry.
type MenuOption struct {
	Key    string
	Kind   report.Kind
	Fields []string
}

// Options lists the menu entries in display order. "0" exits.
var Options = []MenuOption{
	{Key: "1", Kind: report.KindExpertise, Fields: []string{fieldTeam, fieldTag}},
	{Key: "2", Kind: report.KindUrgent, Fields: []string{fieldTeam}},
	{Key: "3", Kind: report.KindWorkload, Fields: []string{fieldTeam}},
	{Key: "4", Kind: report.KindBusiest, Fields: []string{fieldTeam}},
	{Key: "5", Kind: report.KindSearch, Fields: []string{fieldTeam, fieldKey, fieldValue}},
}

var (
	menuTitle  = lipgloss.NewStyle().Bold(true).Foreground(report.PrimaryColor)
	menuKey    = lipgloss.NewStyle().Bold(true).Foreground(report.SuccessColor)
	promptText = lipgloss.NewStyle().Foreground(report.TextColor)
	promptBox  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(report.PrimaryColor).
			Padding(0, 1)
)

// Model is the Bubbletea model for the query menu.
type Model struct {
	result   *roster.Result
	renderer *report.Renderer

	state      state
	option     *MenuOption
	fieldIndex int
	values     []string
	textInput  textinput.Model
	output     string
	errorMsg   string
	quitting   bool
}

// New creates a menu over a parsed roster.
func New(res *roster.Result, renderer *report.Renderer) Model {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40
	if renderer == nil {
		renderer = report.NewRenderer(nil)
	}
	return Model{result: res, renderer: renderer, textInput: ti}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case stateInput:
		return m.handleInputKeypress(keyMsg)
	case stateResult:
		m.state = stateMenu
		m.output = ""
		return m, nil
	}

	m.errorMsg = ""
	choice := keyMsg.String()
	if choice == "0" {
		m.quitting = true
		return m, tea.Quit
	}
	for i := range Options {
		if Options[i].Key == choice {
			m.option = &Options[i]
			m.state = stateInput
			m.fieldIndex = 0
			m.values = nil
			m.textInput.SetValue("")
			return m, m.textInput.Focus()
		}
	}
	m.errorMsg = "Invalid option"
	return m, nil
}

func (m Model) handleInputKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateMenu
		m.textInput.Blur()
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		m.values = append(m.values, strings.TrimSpace(m.textInput.Value()))
		m.textInput.SetValue("")
		m.fieldIndex++
		if m.fieldIndex < len(m.option.Fields) {
			return m, nil
		}
		m.textInput.Blur()
		m.output = m.runQuery()
		m.state = stateResult
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// runQuery maps the collected field values onto a query and renders it.
func (m Model) runQuery() string {
	q := report.Query{Kind: m.option.Kind}
	for i, field := range m.option.Fields {
		switch field {
		case fieldTeam:
			q.Team = m.values[i]
		case fieldTag:
			q.Tag = m.values[i]
		case fieldKey:
			q.Key = m.values[i]
		case fieldValue:
			q.Value = m.values[i]
		}
	}

	out, err := report.Execute(m.result, q)
	if err != nil {
		return report.Failure.Render("error: " + err.Error())
	}
	return m.renderer.Outcome(out)
}

func (m Model) View() string {
	if m.quitting {
		return "Exiting...\n"
	}

	var b strings.Builder
	switch m.state {
	case stateMenu:
		b.WriteString(menuTitle.Render("Menu Options"))
		b.WriteString("\n")
		for _, opt := range Options {
			fmt.Fprintf(&b, "%s. Print %s\n", menuKey.Render(opt.Key), opt.Kind)
		}
		fmt.Fprintf(&b, "%s. Exit\n\n", menuKey.Render("0"))
		if m.errorMsg != "" {
			b.WriteString(report.Failure.Render(m.errorMsg))
			b.WriteString("\n")
		}
		b.WriteString("Enter your choice: ")

	case stateInput:
		b.WriteString(menuTitle.Render(m.option.Kind.String()))
		b.WriteString("\n")
		content := promptText.Render(m.option.Fields[m.fieldIndex]+":") + "\n" + m.textInput.View()
		b.WriteString(promptBox.Render(content))
		b.WriteString("\n")
		b.WriteString(report.Muted.Render("enter to confirm, esc to cancel"))

	case stateResult:
		b.WriteString(m.output)
		b.WriteString("\n")
		b.WriteString(report.Muted.Render("press any key to return to the menu"))
	}
	return b.String()
}

// Run starts the interactive menu.
func Run(res *roster.Result, renderer *report.Renderer) error {
	p := tea.NewProgram(New(res, renderer))
	_, err := p.Run()
	return err
}
