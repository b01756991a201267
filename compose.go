package artistloader

import (
	"math"
	"strconv"
	"strings"
)

// ComposePrompt appends the keywords of every enabled artist to base.
// Artists not in the catalog contribute their name. A strength other than
// 1 wraps the keywords as "(keywords:w)".
func ComposePrompt(base string, values []ArtistValue, catalog *Catalog) string {
	var parts []string
	for _, v := range values {
		if !v.On || v.IsNone() {
			continue
		}
		keywords := v.Artist
		if catalog != nil {
			if e, ok := catalog.Lookup(v.Artist); ok && e.Keywords != "" {
				keywords = e.Keywords
			}
		}
		if v.Strength != 1 {
			keywords = "(" + keywords + ":" + formatWeight(v.Strength) + ")"
		}
		parts = append(parts, keywords)
	}

	out := strings.TrimSpace(base)
	if len(parts) == 0 {
		return out
	}
	joined := strings.Join(parts, ", ")
	if out == "" {
		return joined
	}
	return out + ", " + joined
}

// formatWeight prints whole weights without decimals and others with one.
func formatWeight(w float64) string {
	if w == math.Trunc(w) {
		return strconv.FormatFloat(w, 'f', 0, 64)
	}
	return strconv.FormatFloat(w, 'f', 1, 64)
}
