package model

import "time"

// Listing is a shareable resource record exposed to the community catalog.
// Listings come from the embedded fixture and are never mutated.
type Listing struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Owner           string    `json:"owner"`
	Rating          float64   `json:"rating"`
	Distance        string    `json:"distance"`
	Image           string    `json:"image"`
	TrustScore      float64   `json:"trustScore"`
	IsAvailable     bool      `json:"isAvailable"`
	Price           string    `json:"price,omitempty"`
	Description     string    `json:"description"`
	FullDescription string    `json:"fullDescription"`
	CreatedAt       time.Time `json:"createdAt"`
	IsNew           bool      `json:"isNew"`
	IsFeatured      bool      `json:"isFeatured"`
	RelatedItems    []string  `json:"relatedItems"`
}

// Special category selectors understood by the catalog filter. Any other
// selector is compared for exact equality against Listing.Category.
const (
	SelectorAll      = "All"
	SelectorFeatured = "Featured"
	SelectorNew      = "New"
)

// CategoryID is one of the closed set of resource categories.
type CategoryID string

const (
	CategoryTools          CategoryID = "tools"
	CategorySkills         CategoryID = "skills"
	CategoryMeals          CategoryID = "meals"
	CategoryTransportation CategoryID = "transportation"
	CategoryAccommodation  CategoryID = "accommodation"
	CategoryServices       CategoryID = "services"
)

// Category describes a category option with its display name.
type Category struct {
	ID   CategoryID `json:"id"`
	Name string     `json:"name"`
	Icon string     `json:"icon"`
}

// UserSummary is the signed-in neighbor shown in the home header.
type UserSummary struct {
	Name         string  `json:"name"`
	Neighborhood string  `json:"neighborhood"`
	TrustScore   float64 `json:"trustScore"`
	Points       int     `json:"points"`
	Level        string  `json:"level"`
}
