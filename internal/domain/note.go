package domain

import "time"

type Note struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description,omitempty"`
	PriceCents         int64     `json:"priceCents"`
	OriginalPriceCents *int64    `json:"originalPriceCents,omitempty"`
	PageCount          *int      `json:"pageCount,omitempty"`
	Images             []string  `json:"images,omitempty"`
	AcademicYear       string    `json:"academicYear,omitempty"`
	SubjectID          string    `json:"-"`
	Subject            *Subject  `json:"subject,omitempty"`
	Tags               []string  `json:"tags,omitempty"`
	Featured           bool      `json:"featured"`
	CreatedAt          time.Time `json:"createdAt"`
}

// NoteFilters narrows a catalog listing. Zero values mean "no constraint".
type NoteFilters struct {
	AcademicYear  string `json:"academicYear,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Search        string `json:"search,omitempty"`
	MinPriceCents *int64 `json:"minPriceCents,omitempty"`
	MaxPriceCents *int64 `json:"maxPriceCents,omitempty"`
}
