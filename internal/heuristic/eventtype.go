// Package heuristic holds the pure text heuristics used by the pipeline:
// keyword-based event-type inference and pattern-based location extraction.
// Nothing in this package performs I/O.
package heuristic

import (
	"strings"

	"github.com/helpsignal/helpsignal/internal/model"
)

type keywordRule struct {
	words []string
	label model.EventType
}

// Rule order is significant: a text mentioning both war and flood keywords
// classifies as War because War is tested first.
var eventTypeRules = []keywordRule{
	{words: []string{"war", "conflict", "battle"}, label: model.EventWar},
	{words: []string{"famine", "hunger", "starvation"}, label: model.EventFamine},
	{words: []string{"flood", "storm", "hurricane", "typhoon"}, label: model.EventFlood},
	{words: []string{"earthquake", "quake"}, label: model.EventEarthquake},
	{words: []string{"drought"}, label: model.EventDrought},
}

// InferEventType maps free text to one of the fixed crisis categories
// by testing keyword sets in a fixed order. Unmatched text is Other.
func InferEventType(text string) model.EventType {
	lower := strings.ToLower(text)
	for _, rule := range eventTypeRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.label
			}
		}
	}
	return model.EventOther
}
