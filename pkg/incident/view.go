package incident

import (
	"fmt"
	"slices"
	"strings"
)

// SeverityFilter selects which severities are visible; All shows everything
type SeverityFilter string

const All SeverityFilter = "All"

// SeverityFilters lists every filter option in selector order
var SeverityFilters = []SeverityFilter{All, SeverityFilter(Low), SeverityFilter(Medium), SeverityFilter(High)}

// ParseSeverityFilter converts case-insensitive text into a SeverityFilter
func ParseSeverityFilter(s string) (SeverityFilter, error) {
	for _, f := range SeverityFilters {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid severity filter %q: must be one of %v", s, SeverityFilters)
}

// Next cycles All -> Low -> Medium -> High -> All
func (f SeverityFilter) Next() SeverityFilter {
	for i, opt := range SeverityFilters {
		if opt == f {
			return SeverityFilters[(i+1)%len(SeverityFilters)]
		}
	}
	return All
}

// Matches reports whether an incident of severity s passes the filter
func (f SeverityFilter) Matches(s Severity) bool {
	return f == All || string(f) == string(s)
}

func (f SeverityFilter) String() string { return string(f) }

// SortOrder orders the visible incidents by report time
type SortOrder string

const (
	Newest SortOrder = "Newest"
	Oldest SortOrder = "Oldest"
)

// SortOrders lists every sort option in selector order
var SortOrders = []SortOrder{Newest, Oldest}

// ParseSortOrder converts case-insensitive text into a SortOrder
func ParseSortOrder(s string) (SortOrder, error) {
	for _, o := range SortOrders {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid sort order %q: must be one of %v", s, SortOrders)
}

// Next toggles between Newest and Oldest
func (o SortOrder) Next() SortOrder {
	if o == Newest {
		return Oldest
	}
	return Newest
}

// Label is the human readable selector text
func (o SortOrder) Label() string {
	return string(o) + " First"
}

func (o SortOrder) String() string { return string(o) }

// Visible filters incidents by severity and sorts them by report time.
// The input slice is never modified. Incidents reported at the same
// instant keep their relative input order.
func Visible(incidents []Incident, filter SeverityFilter, order SortOrder) []Incident {
	visible := make([]Incident, 0, len(incidents))
	for _, i := range incidents {
		if filter.Matches(i.Severity) {
			visible = append(visible, i)
		}
	}

	slices.SortStableFunc(visible, func(a, b Incident) int {
		if order == Oldest {
			return a.ReportedAt.Compare(b.ReportedAt)
		}
		return b.ReportedAt.Compare(a.ReportedAt)
	})

	return visible
}
