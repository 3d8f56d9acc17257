package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/clcollins/aidash/pkg/incident"
)

// errMsgHandler is the message handler for the errMsg message
func (m model) errMsgHandler(msg errMsg) (tea.Model, tea.Cmd) {
	log.Error("errMsgHandler", "error", msg.error)
	m.setStatus(msg.Error())
	m.err = msg
	return m, nil
}

// windowSizeMsgHandler is the message handler for the windowSizeMsg message
// and resizes the tui according to the new terminal window size
func (m model) windowSizeMsgHandler(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	log.Debug("windowSizeMsgHandler", "width", msg.Width, "height", msg.Height)
	windowSize = msg
	top, _, bottom, _ := mainStyle.GetMargin()
	borderEdges := 2 + 2

	m.help.Width = windowSize.Width - borderEdges
	m.table.SetColumns(incidentListTableColumns(windowSize.Width))

	// The table gets the top half of the screen, details the rest
	height := windowSize.Height - top - bottom - 8
	tableHeight := max(height/2, 3)
	m.table.SetHeight(tableHeight)

	m.detailViewer.Width = windowSize.Width - borderEdges
	m.detailViewer.Height = max(height-tableHeight, 3)

	m.titleInput.Width = windowSize.Width - borderEdges - 20
	m.descriptionInput.SetWidth(windowSize.Width - borderEdges - 20)

	m.refreshIncidentList()

	return m, nil
}

func (m model) keyMsgHandler(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	log.Debug("keyMsgHandler", "tea.KeyMsg", msg.String())

	switch {
	case m.err != nil:
		return switchErrorFocusMode(m, msg)

	case m.formFocused():
		return switchFormFocusMode(m, msg)

	default:
		return switchTableFocusMode(m, msg)
	}
}

// switchTableFocusMode is the main mode for the application
func switchTableFocusMode(m model, msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debug("switchTableFocusMode")

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, defaultKeyMap.Help):
			m.toggleHelp()

		case key.Matches(msg, defaultKeyMap.Up):
			m.table.MoveUp(1)

		case key.Matches(msg, defaultKeyMap.Down):
			m.table.MoveDown(1)

		case key.Matches(msg, defaultKeyMap.Top):
			m.table.GotoTop()

		case key.Matches(msg, defaultKeyMap.Bottom):
			m.table.GotoBottom()

		case key.Matches(msg, defaultKeyMap.ScrollUp):
			m.detailViewer.HalfViewUp()

		case key.Matches(msg, defaultKeyMap.ScrollDown):
			m.detailViewer.HalfViewDown()

		case key.Matches(msg, defaultKeyMap.Toggle):
			i, ok := m.getHighlightedIncident()
			if !ok {
				m.setStatus(nilIncidentMsg)
				return m, nil
			}
			expanded := m.dashboard.ToggleExpansion(i.ID)
			log.Debug("switchTableFocusMode", "toggleExpansion", i.ID, "expanded", expanded)
			m.refreshIncidentList()

		case key.Matches(msg, defaultKeyMap.Filter):
			f := m.dashboard.SeverityFilter().Next()
			m.dashboard.SetSeverityFilter(f)
			m.setStatus(fmt.Sprintf(filterStatus, f))
			m.refreshIncidentList()

		case key.Matches(msg, defaultKeyMap.Sort):
			o := m.dashboard.SortOrder().Next()
			m.dashboard.SetSortOrder(o)
			m.setStatus(fmt.Sprintf(sortStatus, o.Label()))
			m.refreshIncidentList()

		case key.Matches(msg, defaultKeyMap.New):
			m.setStatus(newStatus)
			cmd := m.focusField(focusTitle)
			return m, cmd
		}
	}

	return m, nil
}

// switchFormFocusMode handles the report form; anything that is not a form
// control is typed into the focused field
func switchFormFocusMode(m model, msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debug("switchFormFocusMode", "field", m.focus)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, formKeyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, formKeyMap.Back):
			m.setStatus("")
			cmd := m.focusField(focusTable)
			return m, cmd

		case key.Matches(msg, formKeyMap.Next):
			cmd := m.cycleField(1)
			return m, cmd

		case key.Matches(msg, formKeyMap.Prev):
			cmd := m.cycleField(-1)
			return m, cmd

		case key.Matches(msg, formKeyMap.Submit):
			return m.submit()

		case key.Matches(msg, formKeyMap.Editor):
			return m, openEditorCmd(m.editor, m.dashboard.Draft())

		case key.Matches(msg, formKeyMap.Enter) && m.focus == focusTitle:
			cmd := m.cycleField(1)
			return m, cmd

		case key.Matches(msg, formKeyMap.Enter) && m.focus == focusSeverity:
			return m.submit()

		case key.Matches(msg, formKeyMap.Left) && m.focus == focusSeverity:
			m.setDraftField(incident.FieldSeverity, m.dashboard.Draft().Severity.Prev().String())
			return m, nil

		case key.Matches(msg, formKeyMap.Right) && m.focus == focusSeverity:
			m.setDraftField(incident.FieldSeverity, m.dashboard.Draft().Severity.Next().String())
			return m, nil
		}
	}

	return m.updateFocusedInput(msg)
}

func switchErrorFocusMode(m model, msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debug("switchErrorFocusMode")
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, errorViewKeyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, errorViewKeyMap.Back):
			m.err = nil
		}
	}
	return m, nil
}

// updateFocusedInput forwards msg to the focused form input and mirrors the
// edited value into the dashboard draft
func (m model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		if m.titleInput.Value() != m.dashboard.Draft().Title {
			m.setDraftField(incident.FieldTitle, m.titleInput.Value())
		}

	case focusDescription:
		m.descriptionInput, cmd = m.descriptionInput.Update(msg)
		if m.descriptionInput.Value() != m.dashboard.Draft().Description {
			m.setDraftField(incident.FieldDescription, m.descriptionInput.Value())
		}
	}

	return m, cmd
}

func (m *model) setDraftField(name incident.Field, value string) {
	if err := m.dashboard.UpdateDraftField(name, value); err != nil {
		log.Error("setDraftField", "field", name, "error", err)
	}
}

// editorFinishedMsgHandler replaces the description draft with what was
// written in the external editor
func (m model) editorFinishedMsgHandler(msg editorFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, func() tea.Msg { return errMsg{msg.err} }
	}

	description, err := readEditedDescription(msg.file)
	if err != nil {
		return m, func() tea.Msg { return errMsg{err} }
	}

	m.setDraftField(incident.FieldDescription, description)
	m.syncFormInputs()
	cmd := m.focusField(focusDescription)
	return m, cmd
}
