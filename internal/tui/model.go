package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycheck/internal/checkin"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/stats"
	"github.com/julianstephens/daycheck/internal/subscription"
	"github.com/julianstephens/daycheck/internal/tui/components/questions"
	"github.com/julianstephens/daycheck/internal/tui/components/today"
	"github.com/julianstephens/daycheck/internal/tui/forms"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateStats
	StateQuestions
	StateAnswering
)

var tabTitles = []string{"Today", "Stats", "Questions"}

// EntryReader loads the entry answers are shown from
type EntryReader interface {
	GetEntryForDate(date string) (models.DayEntry, bool, error)
}

// Services are the engines the dashboard drives
type Services struct {
	Entries       EntryReader
	Recorder      *checkin.Recorder
	Stats         *stats.Service
	Subscriptions *subscription.Manager
}

type Model struct {
	svc           Services
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	questionModel questions.Model
	summary       stats.Summary
	selected      int
	form          *huh.Form
	answerForm    *forms.AnswerForm
	status        string
	errMsg        string
	quitting      bool
	width         int
	height        int
}

func NewModel(svc Services) Model {
	m := Model{
		svc:           svc,
		state:         StateToday,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		todayModel:    today.New(0, 0),
		questionModel: questions.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads every tab from storage
func (m *Model) refresh() {
	m.errMsg = ""

	active, err := m.svc.Subscriptions.Active()
	if err != nil {
		m.fail(err)
		return
	}

	values := map[string]models.Value{}
	entry, ok, err := m.svc.Entries.GetEntryForDate(m.svc.Recorder.Today())
	if err != nil {
		m.fail(err)
		return
	}
	if ok {
		for _, a := range entry.Answers {
			values[a.QuestionID] = a.Value
		}
	}

	activeQs := make([]models.Question, 0, len(active))
	activeIDs := make(map[string]bool, len(active))
	for _, a := range active {
		activeQs = append(activeQs, a.Question)
		activeIDs[a.Question.ID] = true
	}
	m.todayModel.SetQuestions(activeQs, values)

	cat, err := m.svc.Subscriptions.Catalog()
	if err != nil {
		m.fail(err)
		return
	}
	m.questionModel.SetQuestions(cat.All(), activeIDs)

	summary, err := m.svc.Stats.Summary()
	if err != nil {
		m.fail(err)
		return
	}
	m.summary = summary
	if m.selected >= len(summary.Questions) {
		m.selected = len(summary.Questions) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) fail(err error) {
	logger.Error("Dashboard operation failed", "error", err)
	m.errMsg = err.Error()
}

func (m Model) actionKeys() []key.Binding {
	switch m.state {
	case StateToday:
		tk := today.DefaultKeyMap()
		return []key.Binding{tk.Answer, tk.Checkin}
	case StateStats:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.ToggleChart}
	case StateQuestions:
		return []key.Binding{questions.DefaultKeyMap().Toggle}
	}
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateAnswering {
		return []key.Binding{m.keys.Cancel}
	}
	return append([]key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}, m.actionKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	return [][]key.Binding{global, m.actionKeys()}
}

func (m Model) Init() tea.Cmd {
	return nil
}
