package database

import "errors"

var (
	// ErrDuplicateURL is returned when inserting a site whose URL is
	// already cataloged.
	ErrDuplicateURL = errors.New("website URL already exists")

	// ErrSiteNotFound is returned when a lookup matches no site.
	ErrSiteNotFound = errors.New("site not found")

	// ErrUnknownField is returned when a search filter names a column
	// outside the whitelisted substring-searchable set.
	ErrUnknownField = errors.New("unknown search field")
)
