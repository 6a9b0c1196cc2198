package domain

type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// YearSubjects groups the subjects that have at least one note in a given
// academic year, for building the listing-page section tree.
type YearSubjects struct {
	AcademicYear string   `json:"academicYear"`
	Subjects     []string `json:"subjects"`
}
