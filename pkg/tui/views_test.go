package tui

import (
	"strings"
	"testing"

	"github.com/clcollins/aidash/pkg/incident"
	"github.com/stretchr/testify/assert"
)

func TestStatusArea(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "formats simple status",
			input:    "filtering by severity: High",
			expected: "> filtering by severity: High",
		},
		{
			name:     "formats empty status",
			input:    "",
			expected: "> ",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, statusArea(test.input))
		})
	}
}

func TestControlsArea(t *testing.T) {
	assert.Equal(t, "Severity: All | Sort: Newest First", controlsArea(incident.All, incident.Newest))

	s := controlsArea(incident.SeverityFilter(incident.High), incident.Oldest)
	assert.True(t, strings.HasPrefix(s, "Severity: "))
	assert.True(t, strings.Contains(s, "High"))
	assert.True(t, strings.HasSuffix(s, "| Sort: Oldest First"))
}

func TestCountArea(t *testing.T) {
	assert.Equal(t, "Showing 1 of 3 incidents", countArea(1, 3))
}

func TestSubmittedStatus(t *testing.T) {
	assert.Equal(t, "reported incident 4: Test", submittedStatus(incident.Incident{ID: 4, Title: "Test"}))
}

func TestRenderDetails(t *testing.T) {
	m := createTestModel()

	t.Run("nothing expanded renders nothing", func(t *testing.T) {
		assert.Equal(t, "", m.renderDetails(m.dashboard.Visible()))
	})

	t.Run("only expanded incidents are rendered, in list order", func(t *testing.T) {
		m.dashboard.ToggleExpansion(1)
		m.dashboard.ToggleExpansion(2)

		details := m.renderDetails(m.dashboard.Visible())

		assert.Contains(t, details, "## LLM Hallucination in Critical Info")
		assert.Contains(t, details, "LLM provided incorrect safety procedure information...")
		assert.Contains(t, details, "## Biased Recommendation Algorithm")
		assert.Contains(t, details, "* Severity: **Medium**")
		assert.NotContains(t, details, "Minor Data Leak via Chatbot")
		assert.Less(t,
			strings.Index(details, "LLM Hallucination"),
			strings.Index(details, "Biased Recommendation"),
		)
	})

	t.Run("expanded incidents hidden by the filter are not rendered", func(t *testing.T) {
		m.dashboard.SetSeverityFilter(incident.SeverityFilter(incident.High))
		details := m.renderDetails(m.dashboard.Visible())
		assert.Contains(t, details, "LLM Hallucination")
		assert.NotContains(t, details, "Biased Recommendation")
	})
}

func TestDetailsMarkdown(t *testing.T) {
	out, err := detailsMarkdown([]incidentDetail{
		{ID: 1, Title: "First", Severity: "Low", Reported: "then", Description: "one"},
		{ID: 2, Title: "Second", Severity: "High", Reported: "now", Description: "two"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "---"))
	assert.Contains(t, out, "## First\n\n* ID: 1\n* Severity: **Low**\n* Reported: then\n\none")
	assert.Contains(t, out, "## Second")
}

func TestView(t *testing.T) {
	t.Run("list view", func(t *testing.T) {
		m := createTestModel()
		v := m.View()
		assert.Contains(t, v, "LLM Hallucination in Critical Info")
		assert.Contains(t, v, "Showing 3 of 3 incidents")
		assert.NotContains(t, v, "Report New Incident")
	})

	t.Run("details shown when expanded", func(t *testing.T) {
		m := createTestModel()
		m = send(m, enterKey)
		assert.Contains(t, m.View(), "LLM provided incorrect safety procedure information...")
	})

	t.Run("form view", func(t *testing.T) {
		m := createTestModel()
		m = send(m, runes("n"))
		v := m.View()
		assert.Contains(t, v, "Report New Incident")
		assert.Contains(t, v, "Severity")
		assert.Contains(t, v, "ctrl+s")
	})
}
