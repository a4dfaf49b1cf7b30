package config

// File represents the structure of the .sitecatalog configuration file.
//
// The file extends the built-in detection tables without replacing them:
// operators can teach the enricher about platforms and industries the
// shipped tables do not know. Built-in entries always stay active.
type File struct {
	// PlatformSignatures maps platform names to extra HTML marker
	// substrings. New platforms are added; signals for known platforms
	// are appended to the built-in list.
	PlatformSignatures map[string][]string `yaml:"platform_signatures,omitempty"`

	// IndustryKeywords maps industry names to extra scoring keywords,
	// merged the same way as PlatformSignatures.
	IndustryKeywords map[string][]string `yaml:"industry_keywords,omitempty"`

	// UserAgent overrides the enricher's User-Agent header when set.
	UserAgent string `yaml:"user_agent,omitempty"`
}

// HasExtensions reports whether the file carries any detection extensions.
func (cf *File) HasExtensions() bool {
	return len(cf.PlatformSignatures) > 0 || len(cf.IndustryKeywords) > 0
}
