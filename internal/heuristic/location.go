package heuristic

import (
	"regexp"
	"strings"
)

// UnknownLocation is the sentinel applied when no location can be resolved.
const UnknownLocation = "Unknown"

// Patterns are tried in order; the first submatch wins. Each captures a
// capitalized place name of up to three words.
var locationPatterns = []*regexp.Regexp{
	// "floods in Jakarta", "camp near Goma", "unrest across South Sudan"
	regexp.MustCompile(`\b(?:in|near|across|outside)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,2})`),
	// "Earthquake hits Port-au-Prince", "Storm strikes Manila"
	regexp.MustCompile(`\b(?:hits?|strikes?|devastates?|ravages?)\s+([A-Z][a-z]+(?:-[A-Za-z]+){0,2})`),
	// dateline style: "Jakarta: thousands displaced"
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,2}):\s`),
}

// Capitalized words the patterns commonly catch that are never places.
var locationStopwords = map[string]bool{
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"The": true, "A": true, "An": true, "Update": true,
}

// ExtractLocation scans text for a place-name cue and returns the first
// candidate found, or the empty string when nothing matches. Callers apply
// the "Unknown" sentinel downstream, not this function.
func ExtractLocation(text string) string {
	for _, re := range locationPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(m[1])
			if candidate == "" || locationStopwords[candidate] {
				continue
			}
			if first, _, ok := strings.Cut(candidate, " "); ok && locationStopwords[first] {
				continue
			}
			return candidate
		}
	}
	return ""
}

// ResolveLocation applies the documented priority: source-provided hint,
// then heuristic extraction over the combined text, then "Unknown".
func ResolveLocation(hint, text string) string {
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	if loc := ExtractLocation(text); loc != "" {
		return loc
	}
	return UnknownLocation
}
