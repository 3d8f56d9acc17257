package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/clcollins/aidash/pkg/incident"
	"github.com/clcollins/aidash/pkg/launcher"
	"github.com/clcollins/aidash/pkg/metrics"
)

const defaultTimeFormat = "Jan 2, 2006 3:04:05 PM"

// focus tracks which part of the screen receives key presses
type focus int

const (
	focusTable focus = iota
	focusTitle
	focusDescription
	focusSeverity
)

// formFields is the tab order of the report form
var formFields = []focus{focusTitle, focusDescription, focusSeverity}

// Options configures the TUI
type Options struct {
	Dashboard  *incident.Dashboard
	Editor     launcher.EditorLauncher
	Recorder   *metrics.Recorder
	TimeFormat string
	Debug      bool
}

type model struct {
	err error

	dashboard  *incident.Dashboard
	editor     launcher.EditorLauncher
	recorder   *metrics.Recorder
	timeFormat string

	table            table.Model
	detailViewer     viewport.Model
	titleInput       textinput.Model
	descriptionInput textarea.Model
	help             help.Model
	markdownRenderer *glamour.TermRenderer

	focus  focus
	status string
	debug  bool
}

func InitialModel(opts Options) (tea.Model, tea.Cmd) {
	if opts.Dashboard == nil {
		opts.Dashboard = incident.NewDashboard()
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = defaultTimeFormat
	}

	// Create markdown renderer once - reusing it is much faster than creating new ones
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		log.Error("InitialModel", "failed to create markdown renderer", err)
		// Continue without renderer - rendering will fall back to plain text
		renderer = nil
	}

	m := newModel(opts)
	m.markdownRenderer = renderer
	m.refreshIncidentList()

	log.Debug("InitialModel", "incidents", m.dashboard.Len(), "filter", m.dashboard.SeverityFilter(), "sort", m.dashboard.SortOrder())

	return m, nil
}

func newModel(opts Options) model {
	return model{
		dashboard:        opts.Dashboard,
		editor:           opts.Editor,
		recorder:         opts.Recorder,
		timeFormat:       opts.TimeFormat,
		debug:            opts.Debug,
		table:            newTableWithStyles(),
		detailViewer:     newDetailViewer(),
		titleInput:       newTitleInput(),
		descriptionInput: newDescriptionInput(),
		help:             newHelp(),
		focus:            focusTable,
	}
}

func (m *model) setStatus(msg string) {
	log.Info("setStatus", "status", msg)
	m.status = msg
}

func (m *model) toggleHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

func (m model) formFocused() bool {
	return m.focus != focusTable
}

// getHighlightedIncident returns the incident for the currently highlighted
// table row, or false if no row is highlighted
func (m *model) getHighlightedIncident() (incident.Incident, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return incident.Incident{}, false
	}

	id, err := strconv.Atoi(row[1]) // Column [1] is the incident ID
	if err != nil {
		log.Debug("getHighlightedIncident", "invalid incident id", row[1])
		return incident.Incident{}, false
	}

	return m.dashboard.Get(id)
}

// refreshIncidentList re-derives the visible incidents and redraws the table
// and detail pane from them
func (m *model) refreshIncidentList() {
	visible := m.dashboard.Visible()

	rows := make([]table.Row, 0, len(visible))
	for _, i := range visible {
		rows = append(rows, table.Row{
			m.expandedMarker(i.ID),
			strconv.Itoa(i.ID),
			i.Title,
			i.Severity.String(),
			i.ReportedAt.Local().Format(m.timeFormat),
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	m.detailViewer.SetContent(m.renderDetails(visible))
	m.recorder.Observe(len(visible), m.dashboard.Len())
}

func (m model) expandedMarker(id int) string {
	if m.dashboard.Expanded(id) {
		return expandedMarker
	}
	return dot
}

// focusField moves focus to a form field, blurring the others
func (m *model) focusField(f focus) tea.Cmd {
	m.focus = f
	m.titleInput.Blur()
	m.descriptionInput.Blur()
	m.table.Blur()

	switch f {
	case focusTitle:
		return m.titleInput.Focus()
	case focusDescription:
		return m.descriptionInput.Focus()
	case focusTable:
		m.table.Focus()
	}
	return nil
}

// cycleField moves focus forward or backward through the form fields
func (m *model) cycleField(step int) tea.Cmd {
	current := 0
	for n, f := range formFields {
		if f == m.focus {
			current = n
		}
	}
	next := (current + step + len(formFields)) % len(formFields)
	return m.focusField(formFields[next])
}

// syncFormInputs copies the dashboard draft back into the form inputs
func (m *model) syncFormInputs() {
	d := m.dashboard.Draft()
	m.titleInput.SetValue(d.Title)
	m.descriptionInput.SetValue(d.Description)
}

func newTableWithStyles() table.Model {
	t := table.New(
		table.WithColumns(incidentListTableColumns(initialTableWidth)),
		table.WithFocused(true),
		table.WithHeight(initialTableHeight),
	)
	t.SetStyles(tableStyle)
	return t
}

func newTitleInput() textinput.Model {
	i := textinput.New()
	i.Prompt = ""
	i.Placeholder = "Title"
	i.CharLimit = 120
	i.Width = 60
	return i
}

func newDescriptionInput() textarea.Model {
	t := textarea.New()
	t.Placeholder = "Description"
	t.ShowLineNumbers = false
	t.CharLimit = 0
	t.SetWidth(60)
	t.SetHeight(4)
	return t
}

func newHelp() help.Model {
	h := help.New()
	h.ShowAll = false
	return h
}

func newDetailViewer() viewport.Model {
	vp := viewport.New(initialTableWidth, initialDetailHeight)
	vp.Style = detailViewerStyle
	return vp
}
