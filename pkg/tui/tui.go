package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/clcollins/aidash/pkg/incident"
)

const (
	filterStatus = "filtering by severity: %s"
	sortStatus   = "sorting by date: %s"
	newStatus    = "reporting a new incident"
)

// Type and function for capturing error messages with tea.Msg
type errMsg struct{ error }

type refreshIncidentListMsg string

type submittedIncidentMsg struct {
	incident incident.Incident
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return refreshIncidentListMsg("init") }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.windowSizeMsgHandler(msg)

	case tea.KeyMsg:
		return m.keyMsgHandler(msg)

	case errMsg:
		return m.errMsgHandler(msg)

	case refreshIncidentListMsg:
		log.Debug("Update", "refreshIncidentListMsg", msg)
		m.refreshIncidentList()
		return m, nil

	case submittedIncidentMsg:
		m.setStatus(submittedStatus(msg.incident))
		return m, nil

	case editorFinishedMsg:
		return m.editorFinishedMsgHandler(msg)
	}

	// Cursor blinks and other component messages go to the focused input
	return m.updateFocusedInput(msg)
}

// submit hands the draft to the dashboard. An incomplete draft is dropped
// without any change on screen.
func (m model) submit() (tea.Model, tea.Cmd) {
	i, err := m.dashboard.Submit()
	if errors.Is(err, incident.ErrIncompleteDraft) {
		log.Debug("submit", "discarded", err)
		m.recorder.Discarded()
		return m, nil
	}
	if err != nil {
		return m, func() tea.Msg { return errMsg{err} }
	}

	log.Info("submit", "id", i.ID, "severity", i.Severity, "reported_at", i.ReportedAtISO())
	m.recorder.Reported(i.Severity.String())

	m.syncFormInputs()
	cmd := m.focusField(focusTable)
	m.refreshIncidentList()

	return m, tea.Batch(cmd, func() tea.Msg { return submittedIncidentMsg{i} })
}
