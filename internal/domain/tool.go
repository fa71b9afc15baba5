// Package domain contains the core business entities for the Nabdh tool directory.
package domain

import "time"

// Category classifies a tool by its primary use case.
type Category string

// Categories is the fixed set of tool categories, in display order.
var Categories = []Category{
	"Personal", "Work", "Creativity", "Writing", "Images",
	"Videos", "Audio", "Code", "Data", "Marketing",
	"Sales", "Customer Support", "Education", "Research", "Productivity",
	"Social Media", "Design", "Finance", "Legal", "Healthcare",
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Pricing describes a tool's pricing model.
type Pricing string

// Pricing tiers.
const (
	PricingFree      Pricing = "Free"
	PricingFreemium  Pricing = "Freemium"
	PricingFreeTrial Pricing = "Free Trial"
	PricingPaid      Pricing = "Paid"
)

// PricingTypes is the fixed set of pricing tiers.
var PricingTypes = []Pricing{PricingFree, PricingFreemium, PricingFreeTrial, PricingPaid}

// Valid reports whether p is one of the fixed pricing tiers.
func (p Pricing) Valid() bool {
	for _, v := range PricingTypes {
		if p == v {
			return true
		}
	}
	return false
}

// Tool represents a listed AI product in the directory.
//
// Slug is unique across all tools and immutable once assigned; it is the
// identifier used in URLs, distinct from the internal ID. The vote, save,
// and view counters are monotonic and never go negative. Rating stays
// within [0, 5].
type Tool struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Tagline      string    `json:"tagline"`
	Description  string    `json:"description"`
	Category     Category  `json:"category"`
	Pricing      Pricing   `json:"pricing"`
	PriceDetails string    `json:"priceDetails,omitempty"`
	WebsiteURL   string    `json:"websiteUrl"`
	IconColor    string    `json:"iconColor"`
	IconInitials string    `json:"iconInitials"`
	Votes        int       `json:"votes"`
	Saves        int       `json:"saves"`
	Views        int       `json:"views"`
	Rating       float64   `json:"rating"`
	IsFeatured   bool      `json:"isFeatured"`
	IsNew        bool      `json:"isNew"`
	IsTrending   bool      `json:"isTrending"`
	ReleasedAt   time.Time `json:"releasedAt"`
	Features     []string  `json:"features"`
	Tags         []string  `json:"tags"`
}

// HasTag reports whether the tool carries the given tag (case-sensitive).
func (t *Tool) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}
