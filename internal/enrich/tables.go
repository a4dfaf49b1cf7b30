package enrich

// platformSignatures maps each known platform to the case-insensitive
// substrings whose presence in a page's HTML indicates that platform:
// script URLs, CDN hosts, marker attributes. Multiple hits raise the
// platform's score and therefore its confidence.
//
// The Custom sentinel carries no signatures; it is emitted by the
// detector when nothing else matches.
var platformSignatures = map[string][]string{
	"WordPress":    {"/wp-content/", "wp-json", "wp-includes", "wordpress"},
	"Webflow":      {"webflow.js", "data-wf-page", "webflow.com"},
	"Shopify":      {"cdn.shopify.com", "x-shopify", "shopify-section", "shopify"},
	"Wix":          {"wixstatic.com", "wixsite.com", "wix.com"},
	"Squarespace":  {"static.squarespace.com", "squarespace"},
	"Framer":       {"framerusercontent.com", "framer"},
	"Ghost":        {"ghost.io", "data-ghost", "ghost-content-api"},
	"Kajabi":       {"kajabi.com", "cdn.kajabi.com", "kajabi-storefront"},
	"Bubble":       {"bubble.io", "bubble.is", "bubbleapps.io"},
	"Magento":      {"magento", "mage/", "mage."},
	"Drupal":       {"drupal", "drupal-settings-json", "sites/default"},
	"Joomla":       {"joomla", "com_content"},
	"Next.js":      {"_next/static", "__next_data__", "next/dist"},
	"Nuxt":         {"_nuxt", "__nuxt__", "nuxt/"},
	"Laravel":      {"laravel", "laravel_session", "csrf-token"},
	"Weebly":       {"weebly.com", "weebly.cloud"},
	"Notion":       {"notion.site", "notion.so", "notion-api"},
	"Carrd":        {"carrd.co", "carrd.co/assets"},
	"Tilda":        {"tilda.ws", "tilda.cc"},
	"Thinkific":    {"thinkific.com", "thinkific"},
	"Teachable":    {"teachable.com", "teachable"},
	"ClickFunnels": {"clickfunnels.com", "clickfunnels"},
	"HubSpot CMS":  {"hubspot", "hs-scripts", "hs-sdk"},
	"React":        {"react", "data-reactroot", "reactdom"},
	"Vue":          {"vue", "vue.js", "__vue__"},
}

// industryKeywords maps each industry to the keywords whose occurrence
// counts in a page's combined text score that industry. Matching is plain
// substring counting, not word-boundary, so "shopping" counts for "shop".
var industryKeywords = map[string][]string{
	"SaaS":        {"saas", "software", "platform", "api", "dashboard", "cloud", "subscription"},
	"E-commerce":  {"shop", "store", "cart", "checkout", "product", "buy", "e-commerce", "ecommerce"},
	"Blog":        {"blog", "post", "article", "writing", "newsletter"},
	"Portfolio":   {"portfolio", "projects", "case study", "resume", "cv", "work"},
	"Agency":      {"agency", "studio", "consulting", "solutions", "services", "we help"},
	"Education":   {"education", "course", "academy", "learning", "training", "teach", "school"},
	"Finance":     {"finance", "bank", "loan", "investment", "crypto", "trading", "payment"},
	"Healthcare":  {"health", "clinic", "medical", "doctor", "wellness", "hospital", "care"},
	"Community":   {"community", "forum", "members", "discord", "slack", "network"},
	"Marketplace": {"marketplace", "market", "vendors", "listings", "buyers", "sellers"},
	"Media":       {"media", "news", "magazine", "articles", "content", "publish"},
	"Fitness":     {"fitness", "gym", "workout", "training", "sports", "athlete"},
	"Real Estate": {"real estate", "property", "listing", "rent", "housing", "realtor"},
	"Restaurant":  {"restaurant", "menu", "food", "cafe", "dining", "reservation"},
	"Travel":      {"travel", "hotel", "booking", "tour", "vacation", "trip"},
	"Nonprofit":   {"nonprofit", "ngo", "charity", "foundation", "donation", "cause"},
	"Technology":  {"technology", "developer", "engineering", "it ", "software"},
	"Marketing":   {"marketing", "seo", "ads", "campaign", "branding", "growth"},
}

// stopwords are high-frequency words excluded from tag extraction.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {},
	"from": {}, "your": {}, "you": {}, "are": {}, "was": {}, "were": {},
	"has": {}, "have": {}, "will": {}, "our": {}, "their": {}, "they": {},
	"them": {}, "into": {}, "about": {}, "all": {}, "can": {}, "get": {},
}
