package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/bc-quiz/internal/quiz"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

const (
	helpSex      = "←/→ choose • enter confirm • f female • m male • r restart • q quit"
	helpQuestion = "y yes • n no • ←/→ + enter • r restart • q quit"
	helpResults  = "r take the quiz again • q quit"
)

// Model is the bubbletea model driving one quiz.Flow in the terminal.
type Model struct {
	flow   *quiz.Flow
	cursor int
	err    string
	width  int
	styles Styles
	logger zerolog.Logger
}

// New creates a model at the sex prompt.
func New(engine *recommend.Engine, logger zerolog.Logger) Model {
	return Model{
		flow:   quiz.NewFlow(engine),
		styles: DefaultStyles(),
		logger: logger.With().Str("component", "tui").Logger(),
	}
}

// Flow exposes the underlying state machine.
func (m Model) Flow() *quiz.Flow {
	return m.flow
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.flow.Reset()
		m.cursor = 0
		m.err = ""
		m.logger.Debug().Msg("quiz restarted")
		return m, nil
	}

	prompt, ok := m.flow.CurrentPrompt()
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(prompt.Options)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.submit(prompt.Options[m.cursor])
	case "f":
		if m.flow.State() == quiz.StateAskingSex {
			m.submit(string(recommend.SexFemale))
		}
	case "m":
		if m.flow.State() == quiz.StateAskingSex {
			m.submit(string(recommend.SexMale))
		}
	case "y":
		if m.flow.State() == quiz.StateAskingQuestion {
			m.submit("yes")
		}
	case "n":
		if m.flow.State() == quiz.StateAskingQuestion {
			m.submit("no")
		}
	}
	return m, nil
}

// submit forwards one display answer to the flow.
func (m *Model) submit(raw string) {
	if err := m.flow.Submit(raw); err != nil {
		m.err = err.Error()
		if !errors.Is(err, quiz.ErrInvalidAnswer) {
			m.logger.Warn().Err(err).Msg("answer rejected")
		}
		return
	}
	m.err = ""
	m.cursor = 0
	m.logger.Debug().
		Str("state", string(m.flow.State())).
		Int("step", m.flow.Step()).
		Msg("flow advanced")
}

// View implements tea.Model.
func (m Model) View() string {
	var body, help string
	if res, err := m.flow.Result(); err == nil {
		body = m.renderResults(res)
		help = helpResults
	} else {
		prompt, _ := m.flow.CurrentPrompt()
		body = m.renderPrompt(prompt)
		help = helpQuestion
		if m.flow.State() == quiz.StateAskingSex {
			help = helpSex
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Birth Control Finder"))
	b.WriteString("\n")
	b.WriteString(body)
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.err))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(help))

	card := m.styles.Card
	if m.width > 4 {
		card = card.Width(m.width - 4)
	}
	return card.Render(b.String()) + "\n"
}

func (m Model) renderPrompt(p quiz.Prompt) string {
	var b strings.Builder
	if p.Progress != "" {
		b.WriteString(m.styles.Progress.Render(p.Progress))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Question.Render(p.Text))
	b.WriteString("\n")

	buttons := make([]string, 0, len(p.Options))
	for i, opt := range p.Options {
		style := m.styles.Option
		if i == m.cursor {
			style = m.styles.Selected
		}
		buttons = append(buttons, style.Render(opt))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	return b.String()
}

func (m Model) renderResults(res recommend.Result) string {
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Suggested methods"))
	b.WriteString("\n")
	if len(res.Suggested) == 0 {
		b.WriteString(m.styles.Label.Render("No method matched every answer. Talk to a clinician about the options below."))
		b.WriteString("\n")
	}
	m.renderMethods(&b, res.Suggested, res.Sex)

	if res.Others != nil {
		b.WriteString(m.styles.Section.Render("Other methods"))
		b.WriteString("\n")
		m.renderMethods(&b, res.Others, res.Sex)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderMethods(b *strings.Builder, names []string, sex recommend.Sex) {
	cat := m.flow.Engine().Catalog()
	for _, name := range names {
		method, ok := cat.Lookup(name)
		if !ok {
			continue
		}
		b.WriteString(m.styles.MethodName.Render(name))
		b.WriteString("\n")
		for _, f := range recommend.Fields(method, sex) {
			b.WriteString(m.styles.Label.Render(f.Label + ":"))
			b.WriteString(" ")
			b.WriteString(m.styles.Value.Render(f.Value))
			b.WriteString("\n")
		}
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(engine *recommend.Engine, logger zerolog.Logger, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(engine, logger), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run quiz ui: %w", err)
	}
	return nil
}
