package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kitabqa/internal/domain"
)

// QAPort is the TUI-facing subset of the QA engine.
type QAPort interface {
	Answer(question string, lang domain.Language) (domain.AnswerResult, error)
}

// Model is the Bubble Tea model for the interactive Q&A session.
type Model struct {
	engine   QAPort
	input    textinput.Model
	viewport viewport.Model
	lang     domain.Language
	answer   domain.AnswerResult
	status   string
	docPath  string
	ready    bool
	asked    bool
}

// New creates a new TUI model instance.
func New(engine QAPort, docPath string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question in Urdu or English, press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:   engine,
		input:    ti,
		viewport: vp,
		lang:     domain.LanguageUrdu,
		status:   "Ready. Tab toggles the answer language.",
		docPath:  docPath,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + status + query frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				res, err := m.engine.Answer(q, m.lang)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.asked = false
				} else {
					m.status = fmt.Sprintf("Answered in %s", m.lang)
					m.answer = res
					m.asked = true
				}
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "tab":
			if m.lang == domain.LanguageUrdu {
				m.lang = domain.LanguageEnglish
			} else {
				m.lang = domain.LanguageUrdu
			}
			m.status = fmt.Sprintf("Answer language: %s", m.lang)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Kitab Q&A")
	doc := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.docPath)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	answer := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + doc + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if !m.asked {
		return "No answer yet."
	}
	out := m.answer.Answer
	if m.answer.Source != "" {
		out += "\n\n" + sourceStyle.Render(m.answer.Source)
	}
	return out
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
