// Package model defines the data structures shared across the helpsignal
// pipeline: RawItem (a normalized unit of content from any source),
// EventRecord (the fully enriched, immutable output), and BatchResult.
package model

import "encoding/json"

// EventType is the closed set of crisis categories.
type EventType string

const (
	EventWar        EventType = "War"
	EventFamine     EventType = "Famine"
	EventFlood      EventType = "Flood"
	EventEarthquake EventType = "Earthquake"
	EventDrought    EventType = "Drought"
	EventOther      EventType = "Other"
)

// RawItem is one unit of content pulled from any source adapter.
// Title and Description are always present (empty string at worst);
// every other field is best-effort.
type RawItem struct {
	Title        string
	Description  string
	URL          string
	PublishedAt  string // ISO-8601 or empty
	LocationHint string // pre-extracted by the adapter, may be empty
	SourceLabel  string // e.g. "RSS", "Twitter", "Reddit r/worldnews"
}

// EventRecord is the canonical enriched record. It is assembled once per
// crisis item and never mutated afterwards; sinks receive it read-only.
type EventRecord struct {
	EventID        string    `json:"event_id"`
	Timestamp      string    `json:"timestamp"` // UTC, ISO-8601
	Location       string    `json:"location"`  // "Unknown" when unresolved
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	EventType      EventType `json:"event_type"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Summary        string    `json:"summary"`
	PeopleAffected int       `json:"people_affected"`
	SeverityScore  int       `json:"severity_score"` // 0..100
	DonationLinks  []string  `json:"donation_links"` // never empty, at most 3
	SourceURL      string    `json:"source_url"`
}

// Row flattens the record into the fixed column order of the tabular sink:
// timestamp, event_id, location, lat, lng, event_type, summary,
// people_affected, severity_score, donation_links (JSON string).
func (e EventRecord) Row() []any {
	links, _ := json.Marshal(e.DonationLinks)
	return []any{
		e.Timestamp,
		e.EventID,
		e.Location,
		e.Lat,
		e.Lng,
		string(e.EventType),
		e.Summary,
		e.PeopleAffected,
		e.SeverityScore,
		string(links),
	}
}

// BatchResult summarizes one batch run. Processed counts every item that
// completed the pipeline, including items filtered out by classification;
// Filtered and Errored break that down further.
type BatchResult struct {
	Total     int
	Processed int
	Filtered  int
	Errored   int
}
