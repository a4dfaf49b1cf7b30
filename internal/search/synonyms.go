package search

// synonyms is the static, hand-curated query expansion table.
// Keys and values are already normalized (lowercase).
//
// The table is intentionally asymmetric: "blog" expands to "content" but
// "content" does not expand back to every blog-ish term. The asymmetry is
// part of the curated behavior, not an oversight, so entries must not be
// "fixed" to mirror each other.
//
// Treated as a read-only constant after process start; never mutated.
var synonyms = map[string][]string{
	// shop / e-commerce
	"shop":      {"store", "ecommerce", "e-commerce", "cart", "checkout"},
	"store":     {"shop", "ecommerce", "e-commerce"},
	"ecommerce": {"shop", "store", "online shop", "online store"},

	// blog / content / publishing
	"blog":    {"content", "publishing", "articles", "news"},
	"content": {"blog", "media"},

	// no-code platforms
	"no-code": {"nocode", "bubble", "webflow", "framer"},
	"nocode":  {"no-code", "bubble", "webflow"},

	// design / creative
	"design":    {"designer", "agency", "studio", "portfolio", "ui", "ux", "creative"},
	"portfolio": {"case study", "projects", "design"},
	"agency":    {"studio", "design", "creative"},
}
