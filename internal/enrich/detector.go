package enrich

import (
	"log/slog"
	"strings"
)

// Detection thresholds shared by the platform and industry detectors.
const (
	// MinConfidence is the floor below which detected platforms and
	// industries are dropped.
	MinConfidence = 0.15

	// MaxIndustries caps how many industries one site can carry.
	MaxIndustries = 5

	// MaxTags caps how many tags one site can carry.
	MaxTags = 10

	// MinTagLength is the shortest word considered a tag.
	MinTagLength = 4
)

// Detector runs the enrichment detectors against fetched page content.
//
// The detector's tables are assembled once at construction from the
// built-in tables plus any configured extensions, then never mutated:
// a single Detector is safe for concurrent use across batch workers.
type Detector struct {
	// signatures maps platform name to lowercase HTML marker substrings.
	signatures map[string][]string

	// keywords maps industry name to lowercase scoring keywords.
	keywords map[string][]string

	// stop is the tag-extraction stopword set.
	stop map[string]struct{}

	// logger records degraded parses; detectors never return errors.
	logger *slog.Logger
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithExtraSignatures merges additional platform signatures into the
// built-in table. New platforms are added; for known platforms the
// extra signals are appended.
func WithExtraSignatures(extra map[string][]string) DetectorOption {
	return func(d *Detector) {
		for platform, signals := range extra {
			for _, sig := range signals {
				sig = strings.ToLower(strings.TrimSpace(sig))
				if sig != "" {
					d.signatures[platform] = append(d.signatures[platform], sig)
				}
			}
		}
	}
}

// WithExtraKeywords merges additional industry keywords into the built-in
// taxonomy, mirroring WithExtraSignatures.
func WithExtraKeywords(extra map[string][]string) DetectorOption {
	return func(d *Detector) {
		for industry, words := range extra {
			for _, w := range words {
				w = strings.ToLower(strings.TrimSpace(w))
				if w != "" {
					d.keywords[industry] = append(d.keywords[industry], w)
				}
			}
		}
	}
}

// WithDetectorLogger sets a custom logger for the detector.
func WithDetectorLogger(logger *slog.Logger) DetectorOption {
	return func(d *Detector) {
		d.logger = logger
	}
}

// NewDetector creates a Detector from the built-in tables and any
// configured extensions.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		signatures: make(map[string][]string, len(platformSignatures)),
		keywords:   make(map[string][]string, len(industryKeywords)),
		stop:       stopwords,
	}

	// Deep-copy the built-in tables so option-applied extensions can
	// never reach the package-level constants.
	for platform, signals := range platformSignatures {
		d.signatures[platform] = append([]string(nil), signals...)
	}
	for industry, words := range industryKeywords {
		d.keywords[industry] = append([]string(nil), words...)
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}
