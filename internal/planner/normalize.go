package planner

import (
	"net/url"
)

// documentMarker separates user-authored text from document-derived text in
// the combined narrative. Downstream stages treat both the same; the marker
// exists for auditability.
const documentMarker = "[extracted from documents]"

// CombineText normalizes raw user text and merges it with text extracted
// from uploaded documents into one narrative. Percent-encoded input is
// decoded best-effort; a failed decode keeps the original text.
func CombineText(raw, extracted string) string {
	if decoded, err := url.QueryUnescape(raw); err == nil && decoded != raw {
		raw = decoded
	}

	if extracted == "" {
		return raw
	}
	if raw == "" {
		return extracted
	}
	return raw + "\n\n" + documentMarker + "\n" + extracted
}
