package transform

import (
	"regexp"
	"strings"
)

var leadingDigits = regexp.MustCompile(`^\d+`)

// cleanSiteID strips any compound prefix before an underscore or dash,
// keeping only the trailing site token ("US_EAST_101" -> "101",
// "SITE-07" -> "07").
func cleanSiteID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, sep := range []string{"_", "-"} {
		if idx := strings.LastIndex(raw, sep); idx >= 0 && idx+1 < len(raw) {
			raw = raw[idx+1:]
		}
	}
	return raw
}

// cleanSubjectToken extracts the leading digits of a raw subject token and
// zero-pads them to the given width. When the token has no numeric prefix
// the raw token is kept as-is.
func cleanSubjectToken(raw string, width int) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	digits := leadingDigits.FindString(raw)
	if digits == "" {
		return raw
	}
	for len(digits) < width {
		digits = "0" + digits
	}
	return digits
}

// buildUSUBJID joins the study, cleaned site, and cleaned subject tokens.
// Empty components are skipped so a study without site identifiers still
// yields a usable unique subject identifier.
func buildUSUBJID(studyID, siteID, subjectToken string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{studyID, siteID, subjectToken} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}
