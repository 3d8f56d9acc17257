package incident

import (
	"fmt"
	"strings"
	"time"
)

// Severity is the urgency classification of an incident
type Severity string

const (
	Low    Severity = "Low"
	Medium Severity = "Medium"
	High   Severity = "High"
)

// Severities lists every severity in selector order
var Severities = []Severity{Low, Medium, High}

// DefaultSeverity is the severity a fresh draft starts with
const DefaultSeverity = Low

// ParseSeverity converts case-insensitive text into a Severity
func ParseSeverity(s string) (Severity, error) {
	for _, sev := range Severities {
		if strings.EqualFold(s, string(sev)) {
			return sev, nil
		}
	}
	return "", fmt.Errorf("invalid severity %q: must be one of %v", s, Severities)
}

// Next returns the following severity, wrapping from High back to Low
func (s Severity) Next() Severity {
	for i, sev := range Severities {
		if sev == s {
			return Severities[(i+1)%len(Severities)]
		}
	}
	return DefaultSeverity
}

// Prev returns the preceding severity, wrapping from Low back to High
func (s Severity) Prev() Severity {
	for i, sev := range Severities {
		if sev == s {
			return Severities[(i+len(Severities)-1)%len(Severities)]
		}
	}
	return DefaultSeverity
}

func (s Severity) String() string { return string(s) }

// Incident is a reported AI safety issue
type Incident struct {
	ID          int       `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Severity    Severity  `yaml:"severity"`
	ReportedAt  time.Time `yaml:"reported_at"`
}

// ReportedAtISO returns the report time as an ISO-8601 string in UTC
func (i Incident) ReportedAtISO() string {
	return i.ReportedAt.UTC().Format(time.RFC3339)
}

var seedIncidents = []Incident{
	{
		ID:          1,
		Title:       "Biased Recommendation Algorithm",
		Description: "Algorithm consistently favored certain demographics...",
		Severity:    Medium,
		ReportedAt:  mustParse("2025-03-15T10:00:00Z"),
	},
	{
		ID:          2,
		Title:       "LLM Hallucination in Critical Info",
		Description: "LLM provided incorrect safety procedure information...",
		Severity:    High,
		ReportedAt:  mustParse("2025-04-01T14:30:00Z"),
	},
	{
		ID:          3,
		Title:       "Minor Data Leak via Chatbot",
		Description: "Chatbot inadvertently exposed non-sensitive user metadata...",
		Severity:    Low,
		ReportedAt:  mustParse("2025-03-20T09:15:00Z"),
	},
}

// Seed returns a fresh copy of the sample incidents every dashboard starts with
func Seed() []Incident {
	return append([]Incident{}, seedIncidents...)
}

func mustParse(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
