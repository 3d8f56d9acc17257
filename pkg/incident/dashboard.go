package incident

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrIncompleteDraft is returned by Submit when the draft is missing a
// title or description. Nothing is changed when it is returned.
var ErrIncompleteDraft = errors.New("incident draft is missing a title or description")

// Field names a draft form field
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldSeverity    Field = "severity"
)

// Draft is the not-yet-submitted incident being composed in the report form
type Draft struct {
	Title       string   `validate:"required"`
	Description string   `validate:"required"`
	Severity    Severity `validate:"oneof=Low Medium High"`
}

// NewDraft returns an empty draft with the default severity
func NewDraft() Draft {
	return Draft{Severity: DefaultSeverity}
}

var validate = validator.New()

// Dashboard holds the incident store, the filter and sort selections, the
// set of expanded incidents and the report form draft. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Dashboard struct {
	incidents []Incident
	filter    SeverityFilter
	order     SortOrder
	expanded  map[int]struct{}
	draft     Draft
	now       func() time.Time
}

// Option configures a Dashboard
type Option func(*Dashboard)

// WithClock overrides the clock used to stamp submitted incidents
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// WithIncidents replaces the seed incidents
func WithIncidents(incidents []Incident) Option {
	return func(d *Dashboard) {
		d.incidents = append([]Incident{}, incidents...)
	}
}

// WithSeverityFilter sets the initial severity filter
func WithSeverityFilter(f SeverityFilter) Option {
	return func(d *Dashboard) {
		d.filter = f
	}
}

// WithSortOrder sets the initial sort order
func WithSortOrder(o SortOrder) Option {
	return func(d *Dashboard) {
		d.order = o
	}
}

// NewDashboard returns a dashboard seeded with the sample incidents,
// showing all severities newest first
func NewDashboard(opts ...Option) *Dashboard {
	d := &Dashboard{
		incidents: Seed(),
		filter:    All,
		order:     Newest,
		expanded:  make(map[int]struct{}),
		draft:     NewDraft(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// SetSeverityFilter replaces the severity filter
func (d *Dashboard) SetSeverityFilter(f SeverityFilter) {
	d.filter = f
}

// SeverityFilter returns the current severity filter
func (d *Dashboard) SeverityFilter() SeverityFilter {
	return d.filter
}

// SetSortOrder replaces the sort order
func (d *Dashboard) SetSortOrder(o SortOrder) {
	d.order = o
}

// SortOrder returns the current sort order
func (d *Dashboard) SortOrder() SortOrder {
	return d.order
}

// ToggleExpansion shows the description of incident id if it is hidden,
// or hides it if it is shown. It returns the new expansion state.
func (d *Dashboard) ToggleExpansion(id int) bool {
	if _, ok := d.expanded[id]; ok {
		delete(d.expanded, id)
		return false
	}
	d.expanded[id] = struct{}{}
	return true
}

// Expanded reports whether incident id is showing its description
func (d *Dashboard) Expanded(id int) bool {
	_, ok := d.expanded[id]
	return ok
}

// ExpandedCount returns the number of expanded incidents
func (d *Dashboard) ExpandedCount() int {
	return len(d.expanded)
}

// UpdateDraftField overwrites a single draft field, leaving the others alone
func (d *Dashboard) UpdateDraftField(name Field, value string) error {
	switch name {
	case FieldTitle:
		d.draft.Title = value
	case FieldDescription:
		d.draft.Description = value
	case FieldSeverity:
		s, err := ParseSeverity(value)
		if err != nil {
			return err
		}
		d.draft.Severity = s
	default:
		return fmt.Errorf("unknown draft field %q", name)
	}
	return nil
}

// Draft returns the current report form draft
func (d *Dashboard) Draft() Draft {
	return d.draft
}

// Submit turns the draft into a new incident at the head of the store and
// resets the draft. An incomplete draft is discarded with ErrIncompleteDraft
// and no state changes.
func (d *Dashboard) Submit() (Incident, error) {
	if err := validate.Struct(d.draft); err != nil {
		return Incident{}, fmt.Errorf("%w: %v", ErrIncompleteDraft, err)
	}

	i := Incident{
		// Ids are derived from the store size; nothing is ever removed.
		ID:          len(d.incidents) + 1,
		Title:       d.draft.Title,
		Description: d.draft.Description,
		Severity:    d.draft.Severity,
		ReportedAt:  d.now(),
	}

	d.incidents = append([]Incident{i}, d.incidents...)
	d.draft = NewDraft()

	return i, nil
}

// Incidents returns a copy of the store, most recently submitted first
func (d *Dashboard) Incidents() []Incident {
	return append([]Incident{}, d.incidents...)
}

// Len returns the number of incidents in the store
func (d *Dashboard) Len() int {
	return len(d.incidents)
}

// Visible returns the filtered and sorted incidents to display
func (d *Dashboard) Visible() []Incident {
	return Visible(d.incidents, d.filter, d.order)
}

// Get returns the incident with the given id
func (d *Dashboard) Get(id int) (Incident, bool) {
	for _, i := range d.incidents {
		if i.ID == id {
			return i, true
		}
	}
	return Incident{}, false
}
