package model

// legacyUnknownStr is the display string for records with no detection.
const legacyUnknownStr = "Unknown"

// Platform identifies a website platform (CMS or framework) by name.
//
// Design decision: the two sentinel cases are explicit variants rather
// than magic strings scattered through detector logic. PlatformUnknown
// means "no detection ran or no signal at all"; PlatformCustom is the
// catch-all emitted when detection ran but no signature matched.
type Platform string

// Platform sentinel values.
const (
	// PlatformUnknown represents the absence of any detection result.
	PlatformUnknown Platform = ""
	// PlatformCustom is the catch-all platform for sites whose HTML
	// matched none of the known signatures.
	PlatformCustom Platform = "Custom"
)

// String returns the display form of the platform.
func (p Platform) String() string {
	if p == PlatformUnknown {
		return legacyUnknownStr
	}
	return string(p)
}

// IsDetected reports whether p names a concrete detected platform.
// The Unknown and Custom sentinels are not detections, and neither is
// the "Unknown" display string stored on rows imported before any
// enrichment ran.
func (p Platform) IsDetected() bool {
	return p != PlatformUnknown && p != PlatformCustom && string(p) != legacyUnknownStr
}

// PlatformScore pairs a platform with its detection confidence in [0,1].
type PlatformScore struct {
	Platform   Platform `json:"platform"`
	Confidence float64  `json:"confidence"`
}

// IndustryScore pairs an industry name with its detection confidence in [0,1].
type IndustryScore struct {
	Industry   string  `json:"industry"`
	Confidence float64 `json:"confidence"`
}

// PlatformNames extracts the platform names from scores, preserving order.
func PlatformNames(scores []PlatformScore) []string {
	if len(scores) == 0 {
		return nil
	}
	names := make([]string, 0, len(scores))
	for _, s := range scores {
		names = append(names, string(s.Platform))
	}
	return names
}

// IndustryNames extracts the industry names from scores, preserving order.
func IndustryNames(scores []IndustryScore) []string {
	if len(scores) == 0 {
		return nil
	}
	names := make([]string, 0, len(scores))
	for _, s := range scores {
		names = append(names, s.Industry)
	}
	return names
}
