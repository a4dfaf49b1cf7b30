package enrich

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// maxStyleScan bounds how much collected style text the color scanner
// reads. Inline CSS can be enormous; colors of interest show up early.
const maxStyleScan = 50000

// hexColor matches 3-, 6-, or 8-digit hex color literals.
var hexColor = regexp.MustCompile(`#([0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

// ExtractColors scans HTML for the site's visual identity colors and
// returns the first two distinct hex values encountered, normalized to
// lowercase 6-digit form.
//
// Scan order matters and is part of the contract: theme-color and
// msapplication-TileColor meta tags first (one color per tag), then
// inline style attributes in document order, then <style> block contents.
// The style text is capped at maxStyleScan characters. Scanning stops as
// soon as two distinct colors are known. Unparseable HTML degrades to no
// colors rather than erroring.
func (d *Detector) ExtractColors(rawHTML string) model.Colors {
	var colors model.Colors
	if rawHTML == "" {
		return colors
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		d.logger.Warn("failed to parse HTML for color extraction", "error", err)
		return colors
	}

	seen := make(map[string]struct{}, 2)
	add := func(raw string) {
		if len(seen) >= 2 {
			return
		}
		hex := normalizeHex(raw)
		if _, dup := seen[hex]; dup {
			return
		}
		seen[hex] = struct{}{}
		if colors.Primary == nil {
			colors.Primary = &hex
		} else {
			colors.Secondary = &hex
		}
	}

	var styleAttrs []string
	var styleBlocks []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var name, content, style string
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "name":
					name = attr.Val
				case "content":
					content = attr.Val
				case "style":
					style = attr.Val
				}
			}

			if n.Data == "meta" && isColorMeta(name) {
				// One color per meta tag, matching how browsers read them.
				if m := hexColor.FindString(content); m != "" {
					add(m)
				}
			}
			if style != "" {
				styleAttrs = append(styleAttrs, style)
			}
			if n.Data == "style" {
				var sb strings.Builder
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.TextNode {
						sb.WriteString(c.Data)
					}
				}
				styleBlocks = append(styleBlocks, sb.String())
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	styleText := strings.Join(styleAttrs, " ") + " " + strings.Join(styleBlocks, " ")
	if len(styleText) > maxStyleScan {
		styleText = styleText[:maxStyleScan]
	}
	for _, m := range hexColor.FindAllString(styleText, -1) {
		if len(seen) >= 2 {
			break
		}
		add(m)
	}

	return colors
}

// isColorMeta reports whether a meta tag name carries a theme color.
func isColorMeta(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "theme-color") ||
		strings.Contains(lower, "msapplication-tilecolor")
}

// normalizeHex canonicalizes a hex color literal: 3-digit shorthand is
// expanded by doubling each digit, 8-digit values lose their alpha
// channel, and the result is lowercase "#rrggbb".
func normalizeHex(s string) string {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		var sb strings.Builder
		for _, c := range h {
			sb.WriteRune(c)
			sb.WriteRune(c)
		}
		h = sb.String()
	}
	if len(h) >= 6 {
		return "#" + strings.ToLower(h[:6])
	}
	return s
}
