package domain

import "time"

type SlideshowImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type Slideshow struct {
	ID        string           `json:"id"`
	Title     string           `json:"title,omitempty"`
	Images    []SlideshowImage `json:"images"`
	Active    bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
}
