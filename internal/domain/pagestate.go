package domain

// PageState is the ephemeral browse-state of the notes listing page, saved
// just before navigating to a detail view and consumed on a qualifying return.
type PageState struct {
	ScrollY          int64       `json:"scrollY"`
	ExpandedYears    []string    `json:"expandedYears"`
	ExpandedSubjects []string    `json:"expandedSubjects"`
	ExpandedYear     string      `json:"expandedYear,omitempty"`
	Filters          NoteFilters `json:"filters"`
}
