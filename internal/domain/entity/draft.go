package entity

import "time"

// DraftListing is the single in-progress create-listing form of a user.
type DraftListing struct {
	UserID string `json:"user_id"`
	ListingFields
	SavedAt time.Time `json:"saved_at"`
}

// IsBlank reports whether nothing worth autosaving was typed yet.
func (d *DraftListing) IsBlank() bool {
	return d.Name == "" && d.Description == ""
}
