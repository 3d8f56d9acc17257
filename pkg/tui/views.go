package tui

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/clcollins/aidash/pkg/incident"
	"github.com/clcollins/aidash/pkg/tui/style"
)

const (
	dot            = "•"
	expandedMarker = "▾"
	upArrow        = "↑"
	downArrow      = "↓"

	horizontalPadding = 1
)

var (
	white          = lipgloss.AdaptiveColor{Dark: "#ffffff", Light: "#ffffff"}
	lightBlue      = lipgloss.AdaptiveColor{Dark: "#778da9", Light: "#778da9"}
	blue           = lipgloss.AdaptiveColor{Dark: "#415a77", Light: "#415a77"}
	backgroundBlue = lipgloss.AdaptiveColor{Dark: "#0d1b2a", Light: "#0d1b2a"}
)

type pallet struct {
	text       lipgloss.AdaptiveColor
	background lipgloss.AdaptiveColor
	border     lipgloss.AdaptiveColor
}

type colorModel struct {
	normal   pallet
	notice   pallet
	selected pallet
	err      pallet
}

var aidashPallet = colorModel{
	normal: pallet{
		text:       lightBlue,
		background: lipgloss.AdaptiveColor{},
		border:     blue,
	},
	notice: pallet{
		text:       white,
		background: lipgloss.AdaptiveColor{},
		border:     lipgloss.AdaptiveColor{},
	},
	selected: pallet{
		text:       white,
		background: blue,
		border:     blue,
	},
	err: pallet{
		text:       white,
		background: backgroundBlue,
		border:     blue,
	},
}

var (
	windowSize tea.WindowSizeMsg

	mainStyle = lipgloss.NewStyle().
			Margin(0, 0).
			Padding(0, 0).
			Foreground(aidashPallet.normal.text).
			Background(aidashPallet.normal.background).
			BorderForeground(aidashPallet.normal.border).
			BorderBackground(aidashPallet.normal.background)

	controlsStringWidth = len("Severity: Medium | Sort: Newest First") + 2

	paddedStyle = mainStyle.Copy().Padding(0, 2, 0, 1)

	tableContainerStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true)
	tableCellStyle      = lipgloss.NewStyle().Padding(0, horizontalPadding)
	tableHeaderStyle    = lipgloss.NewStyle().Padding(0, horizontalPadding).Border(lipgloss.RoundedBorder(), false, false, true).Foreground(aidashPallet.notice.text).Background(aidashPallet.notice.background)
	tableSelectedStyle  = lipgloss.NewStyle().Border(lipgloss.HiddenBorder(), false).Background(aidashPallet.selected.background).Foreground(aidashPallet.selected.text).Bold(true)

	tableStyle = table.Styles{
		Cell:     tableCellStyle,
		Selected: tableSelectedStyle,
		Header:   tableHeaderStyle,
	}

	detailViewerStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Width(64).
			Border(lipgloss.RoundedBorder()).
			Foreground(aidashPallet.err.text).
			Background(aidashPallet.err.background).
			BorderForeground(aidashPallet.err.border).
			Padding(1, 3, 1, 3)
)

func (m model) View() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())

	if m.err != nil {
		log.Debug("View", "error", m.err)

		s.WriteString(dot)
		s.WriteString("ERROR")
		s.WriteString(dot)
		s.WriteString("\n\n")
		s.WriteString(m.err.Error())
		s.WriteString("\n")
		s.WriteString(help.New().View(errorViewKeyMap))

		return errorStyle.Render(s.String())
	}

	s.WriteString(tableContainerStyle.Render(m.table.View()))
	s.WriteString("\n")

	switch {
	case m.formFocused():
		s.WriteString(m.renderForm())
	case m.dashboard.ExpandedCount() > 0:
		s.WriteString(m.detailViewer.View())
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	s.WriteString("\n")

	if m.formFocused() {
		s.WriteString(paddedStyle.Render(m.help.View(formKeyMap)))
	} else {
		s.WriteString(paddedStyle.Render(m.help.View(defaultKeyMap)))
	}

	return mainStyle.Render(s.String())
}

func (m model) renderHeader() string {
	var s strings.Builder

	s.WriteString(
		lipgloss.JoinHorizontal(
			0.2,
			paddedStyle.Copy().Width(max(windowSize.Width-controlsStringWidth-paddedStyle.GetHorizontalPadding(), 0)).Render(statusArea(m.status)),
			paddedStyle.Render(controlsArea(m.dashboard.SeverityFilter(), m.dashboard.SortOrder())),
		),
	)

	s.WriteString("\n")
	return s.String()
}

func (m model) renderFooter() string {
	return paddedStyle.Render(countArea(len(m.table.Rows()), m.dashboard.Len()))
}

func statusArea(s string) string {
	return fmt.Sprintf("> %s", s)
}

func controlsArea(f incident.SeverityFilter, o incident.SortOrder) string {
	severity := f.String()
	if f != incident.All {
		severity = style.RenderSeverity(severity)
	}
	return fmt.Sprintf("Severity: %s | Sort: %s", severity, o.Label())
}

func countArea(visible, total int) string {
	return fmt.Sprintf("Showing %d of %d incidents", visible, total)
}

func submittedStatus(i incident.Incident) string {
	return fmt.Sprintf("reported incident %d: %s", i.ID, i.Title)
}

// renderForm draws the report form with the current draft
func (m model) renderForm() string {
	var s strings.Builder

	label := func(f focus, text string) string {
		if m.focus == f {
			return style.FocusedFieldLabel.Render(text)
		}
		return style.FieldLabel.Render(text)
	}

	s.WriteString(style.Label.Render("Report New Incident"))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label(focusTitle, "Title"), m.titleInput.View()))
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label(focusDescription, "Description"), m.descriptionInput.View()))
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label(focusSeverity, "Severity"), m.severitySelector()))

	return style.FormContainer.Render(s.String())
}

func (m model) severitySelector() string {
	var options []string
	current := m.dashboard.Draft().Severity
	for _, sev := range incident.Severities {
		switch {
		case sev == current && m.focus == focusSeverity:
			options = append(options, style.FocusedSelector.Render(sev.String()))
		case sev == current:
			options = append(options, style.Selector.Render(style.RenderSeverity(sev.String())))
		default:
			options = append(options, style.Selector.Render(sev.String()))
		}
	}
	return strings.Join(options, " ")
}

type incidentDetail struct {
	ID          int
	Title       string
	Severity    string
	Reported    string
	Description string
}

// renderDetails renders the descriptions of the expanded incidents, in the
// order they are listed
func (m model) renderDetails(visible []incident.Incident) string {
	var details []incidentDetail
	for _, i := range visible {
		if !m.dashboard.Expanded(i.ID) {
			continue
		}
		details = append(details, incidentDetail{
			ID:          i.ID,
			Title:       i.Title,
			Severity:    i.Severity.String(),
			Reported:    i.ReportedAt.Local().Format(m.timeFormat),
			Description: i.Description,
		})
	}

	if len(details) == 0 {
		return ""
	}

	content, err := detailsMarkdown(details)
	if err != nil {
		log.Error("renderDetails", "template", err)
		return ""
	}

	if m.markdownRenderer == nil {
		return content
	}

	rendered, err := m.markdownRenderer.Render(content)
	if err != nil {
		log.Error("renderDetails", "markdown", err)
		return content
	}

	return rendered
}

func detailsMarkdown(details []incidentDetail) (string, error) {
	t, err := template.New("details").Parse(detailsTemplate)
	if err != nil {
		return "", err
	}

	o := new(bytes.Buffer)
	err = t.Execute(o, details)
	if err != nil {
		return "", err
	}

	return o.String(), nil
}

const detailsTemplate = `
{{- range $i, $d := . }}
{{- if $i }}

---
{{ end }}
## {{ $d.Title }}

* ID: {{ $d.ID }}
* Severity: **{{ $d.Severity }}**
* Reported: {{ $d.Reported }}

{{ $d.Description }}
{{- end }}
`
