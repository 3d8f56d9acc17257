package incident

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func titles(incidents []Incident) []string {
	var t []string
	for _, i := range incidents {
		t = append(t, i.Title)
	}
	return t
}

func TestVisibleFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   SeverityFilter
		expected []string
	}{
		{
			name:   "All keeps every incident",
			filter: All,
			expected: []string{
				"LLM Hallucination in Critical Info",
				"Minor Data Leak via Chatbot",
				"Biased Recommendation Algorithm",
			},
		},
		{
			name:     "Low keeps only low severity",
			filter:   SeverityFilter(Low),
			expected: []string{"Minor Data Leak via Chatbot"},
		},
		{
			name:     "Medium keeps only medium severity",
			filter:   SeverityFilter(Medium),
			expected: []string{"Biased Recommendation Algorithm"},
		},
		{
			name:     "High keeps only high severity",
			filter:   SeverityFilter(High),
			expected: []string{"LLM Hallucination in Critical Info"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			visible := Visible(Seed(), test.filter, Newest)
			assert.Equal(t, test.expected, titles(visible))
			for _, i := range visible {
				assert.True(t, test.filter.Matches(i.Severity))
			}
		})
	}
}

func TestVisibleSort(t *testing.T) {
	t.Run("Newest is non-increasing by report time", func(t *testing.T) {
		visible := Visible(Seed(), All, Newest)
		for n := 1; n < len(visible); n++ {
			assert.False(t, visible[n].ReportedAt.After(visible[n-1].ReportedAt))
		}
	})

	t.Run("Oldest is non-decreasing by report time", func(t *testing.T) {
		visible := Visible(Seed(), All, Oldest)
		assert.Equal(t, []string{
			"Biased Recommendation Algorithm",
			"Minor Data Leak via Chatbot",
			"LLM Hallucination in Critical Info",
		}, titles(visible))
		for n := 1; n < len(visible); n++ {
			assert.False(t, visible[n].ReportedAt.Before(visible[n-1].ReportedAt))
		}
	})

	t.Run("equal timestamps keep their input order", func(t *testing.T) {
		ts := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
		incidents := []Incident{
			{ID: 3, Title: "c", Severity: High, ReportedAt: ts},
			{ID: 2, Title: "b", Severity: Low, ReportedAt: ts.Add(time.Hour)},
			{ID: 1, Title: "a", Severity: High, ReportedAt: ts},
		}

		assert.Equal(t, []string{"b", "c", "a"}, titles(Visible(incidents, All, Newest)))
		assert.Equal(t, []string{"c", "a", "b"}, titles(Visible(incidents, All, Oldest)))
		assert.Equal(t, []string{"c", "a"}, titles(Visible(incidents, SeverityFilter(High), Oldest)))
	})

	t.Run("input is not reordered", func(t *testing.T) {
		seed := Seed()
		_ = Visible(seed, All, Oldest)
		assert.Equal(t, Seed(), seed)
	})
}

func TestParseSeverityFilter(t *testing.T) {
	tests := []struct {
		input    string
		expected SeverityFilter
		wantErr  bool
	}{
		{input: "All", expected: All},
		{input: "high", expected: SeverityFilter(High)},
		{input: "MEDIUM", expected: SeverityFilter(Medium)},
		{input: "critical", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			f, err := ParseSeverityFilter(test.input)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, f)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("oldest")
	assert.NoError(t, err)
	assert.Equal(t, Oldest, o)

	_, err = ParseSortOrder("random")
	assert.Error(t, err)
}

func TestSelectorCycling(t *testing.T) {
	assert.Equal(t, SeverityFilter(Low), All.Next())
	assert.Equal(t, All, SeverityFilter(High).Next())
	assert.Equal(t, Oldest, Newest.Next())
	assert.Equal(t, Newest, Oldest.Next())
	assert.Equal(t, Medium, Low.Next())
	assert.Equal(t, Low, High.Next())
	assert.Equal(t, High, Low.Prev())
	assert.Equal(t, "Newest First", Newest.Label())
}

func TestSeed(t *testing.T) {
	seed := Seed()
	assert.Len(t, seed, 3)

	expected := []struct {
		id         int
		title      string
		severity   Severity
		reportedAt string
	}{
		{1, "Biased Recommendation Algorithm", Medium, "2025-03-15T10:00:00Z"},
		{2, "LLM Hallucination in Critical Info", High, "2025-04-01T14:30:00Z"},
		{3, "Minor Data Leak via Chatbot", Low, "2025-03-20T09:15:00Z"},
	}

	for n, e := range expected {
		assert.Equal(t, e.id, seed[n].ID)
		assert.Equal(t, e.title, seed[n].Title)
		assert.Equal(t, e.severity, seed[n].Severity)
		assert.Equal(t, e.reportedAt, seed[n].ReportedAtISO())
	}

	// Callers get their own copy
	seed[0].Title = "changed"
	assert.Equal(t, "Biased Recommendation Algorithm", Seed()[0].Title)
}
