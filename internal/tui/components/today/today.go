package today

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daycheck/internal/models"
)

// AnswerMsg asks for the answer form of one question
type AnswerMsg struct {
	Question models.Question
}

// CheckinMsg asks for the full check-in form
type CheckinMsg struct{}

type Item struct {
	Question models.Question
	Value    models.Value
	Answered bool
}

func (i Item) Title() string {
	if i.Answered {
		return "✓ " + i.Question.Icon() + " " + i.Question.Text
	}
	return "○ " + i.Question.Icon() + " " + i.Question.Text
}

func (i Item) Description() string {
	if !i.Answered {
		return "not answered today"
	}
	if s := i.Value.String(); s != "" {
		return s
	}
	return "(empty)"
}

func (i Item) FilterValue() string { return i.Question.Text }

type KeyMap struct {
	Answer  key.Binding
	Checkin key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Answer: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		Checkin: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check in"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Answer, keys.Checkin}
	}

	return Model{list: l, keys: keys}
}

// SetQuestions lists questions with today's values keyed by question id
func (m *Model) SetQuestions(questions []models.Question, values map[string]models.Value) {
	items := make([]list.Item, len(questions))
	for i, q := range questions {
		v, ok := values[q.ID]
		items[i] = Item{Question: q, Value: v, Answered: ok}
	}
	m.list.SetItems(items)
}

// Answered counts the questions with an answer today
func (m Model) Answered() (answered, total int) {
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok && i.Answered {
			answered++
		}
		total++
	}
	return answered, total
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Answer):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return AnswerMsg{Question: i.Question} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Checkin):
			if len(m.list.Items()) > 0 {
				return m, func() tea.Msg { return CheckinMsg{} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "No active questions. Add some on the Questions tab."
	}
	return m.list.View()
}
