package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/tui/components/questions"
	"github.com/julianstephens/daycheck/internal/tui/components/today"
	"github.com/julianstephens/daycheck/internal/tui/forms"
)

// rows taken by tabs, status line and help
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAnswering {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - chromeHeight
		if listHeight < 0 {
			listHeight = 0
		}
		m.todayModel.SetSize(msg.Width-4, listHeight)
		m.questionModel.SetSize(msg.Width-4, listHeight)
		return m, nil

	case today.AnswerMsg:
		return m.openForm([]models.Question{msg.Question})

	case today.CheckinMsg:
		active, err := m.svc.Subscriptions.Active()
		if err != nil {
			m.fail(err)
			return m, nil
		}
		qs := make([]models.Question, 0, len(active))
		for _, a := range active {
			qs = append(qs, a.Question)
		}
		return m.openForm(qs)

	case questions.ToggleMsg:
		var err error
		if msg.Active {
			err = m.svc.Subscriptions.Activate(msg.ID)
			m.status = fmt.Sprintf("Activated %s", msg.ID)
		} else {
			err = m.svc.Subscriptions.Deactivate(msg.ID)
			m.status = fmt.Sprintf("Deactivated %s", msg.ID)
		}
		if err != nil {
			m.status = ""
			m.fail(err)
			return m, nil
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		filtering := m.state == StateQuestions && m.questionModel.Filtering()
		if !filtering {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Tab):
				m.state = (m.state + 1) % SessionState(len(tabTitles))
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
				return m, nil
			case key.Matches(msg, m.keys.Refresh):
				m.refresh()
				m.status = "Refreshed"
				return m, nil
			}
		}
		if m.state == StateStats {
			return m.updateStats(msg)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case StateQuestions:
		m.questionModel, cmd = m.questionModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.summary.Questions)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < n-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.ToggleChart):
		if n == 0 {
			return m, nil
		}
		q := m.summary.Questions[m.selected].Question
		if !q.SupportsChartToggle() {
			m.status = "Free-text questions have no chart"
			return m, nil
		}
		next, ok, err := m.svc.Subscriptions.ToggleChartType(q.ID)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if ok {
			m.status = fmt.Sprintf("%s now shows a %s chart", q.Text, next)
		}
		m.refresh()
	}
	return m, nil
}

func (m Model) openForm(qs []models.Question) (tea.Model, tea.Cmd) {
	if len(qs) == 0 {
		return m, nil
	}
	values := map[string]models.Value{}
	if entry, ok, err := m.svc.Entries.GetEntryForDate(m.svc.Recorder.Today()); err == nil && ok {
		for _, a := range entry.Answers {
			values[a.QuestionID] = a.Value
		}
	}

	m.answerForm = forms.NewAnswerForm(qs, values)
	m.form = m.answerForm.Form()
	m.previousState = m.state
	m.state = StateAnswering
	m.status = ""
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.closeForm("Check-in cancelled")
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		status, err := m.submit()
		m.closeForm(status)
		m.refresh()
		if err != nil {
			m.fail(err)
		}
		return m, nil
	case huh.StateAborted:
		m.closeForm("Check-in cancelled")
		return m, nil
	}
	return m, cmd
}

// submit stores the form answers and describes the outcome
func (m *Model) submit() (string, error) {
	pending, err := m.answerForm.Answers()
	if err != nil {
		return "", err
	}
	for i, p := range pending {
		if _, _, err := m.svc.Recorder.Submit(p.Question, p.Raw); err != nil {
			return fmt.Sprintf("Saved %d answer(s)", i), err
		}
	}
	return fmt.Sprintf("Saved %d answer(s)", len(pending)), nil
}

func (m *Model) closeForm(status string) {
	m.form = nil
	m.answerForm = nil
	m.state = m.previousState
	m.status = status
}
