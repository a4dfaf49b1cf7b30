package model

import "time"

// TagFeedback is one anonymous tag suggestion for a site.
//
// Feedback rows are append-only: they are stored for later review and
// never applied to the live Site record by this system.
type TagFeedback struct {
	// ID is the storage-assigned identifier. Zero for unsaved records.
	ID int64 `json:"id"`

	// SiteID links the feedback to a cataloged site when the URL was
	// known at submission time. Nil when the site is not in the catalog.
	SiteID *int64 `json:"site_id,omitempty"`

	// URL is the site the suggestion refers to.
	URL string `json:"website_url"`

	// SuggestedTags is the raw comma-separated suggestion text.
	SuggestedTags string `json:"suggested_tags"`

	// CreatedAt is the submission timestamp.
	CreatedAt time.Time `json:"created_at"`
}
