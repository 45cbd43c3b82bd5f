package models

import "time"

// Category is the closed enumeration partitioning event listings for
// filtered browsing.
type Category string

const (
	CategoryTechnical    Category = "Technical"
	CategoryNonTechnical Category = "Non-Technical"
	CategoryCultural     Category = "Cultural"
	CategorySports       Category = "Sports"

	// CategoryAll is a filter sentinel, never stored on an event.
	CategoryAll Category = "All"
)

// Categories returns the storable categories, excluding the sentinel.
func Categories() []Category {
	return []Category{CategoryTechnical, CategoryNonTechnical, CategoryCultural, CategorySports}
}

// ParseCategory validates a category string against the closed enumeration.
// The CategoryAll sentinel is rejected; it is a filter value, not an event
// attribute.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryTechnical, CategoryNonTechnical, CategoryCultural, CategorySports:
		return Category(s), true
	}
	return "", false
}

// Event is a campus event listing. CreatedBy references the account that
// created the listing; it is a plain back-reference, not an ownership edge
// (neither accounts nor events are ever deleted). Events are append-only.
//
// RegistrationDate is a calendar date in YYYY-MM-DD form. CreatedAt is
// stamped once at creation.
type Event struct {
	ID               string    `json:"id"`
	Category         Category  `json:"category"`
	EventName        string    `json:"eventName"`
	CollegeName      string    `json:"collegeName"`
	RegistrationDate string    `json:"registrationDate"`
	Venue            string    `json:"venue"`
	RegistrationURL  string    `json:"registrationUrl"`
	FlyerURL         string    `json:"flyerUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"`
}
