package questions

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daycheck/internal/models"
)

// ToggleMsg asks to activate or deactivate a question
type ToggleMsg struct {
	ID     string
	Active bool
}

type Item struct {
	Question models.Question
	Active   bool
}

func (i Item) Title() string {
	mark := "○"
	if i.Active {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %s", mark, i.Question.Icon(), i.Question.Text)
}

func (i Item) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.Question.Category, i.Question.Type, i.Question.ID)
}

func (i Item) FilterValue() string { return i.Question.Text + " " + i.Question.Category }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "activate/deactivate"),
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

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

// SetQuestions lists the catalog, marking ids in active
func (m *Model) SetQuestions(all []models.Question, active map[string]bool) {
	items := make([]list.Item, len(all))
	for i, q := range all {
		items[i] = Item{Question: q, Active: active[q.ID]}
	}
	m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleMsg{ID: i.Question.ID, Active: !i.Active} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
