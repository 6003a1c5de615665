// Package enrich implements the five enrichment operations of the pipeline.
// Each operation wraps one collaborator call with a fixed instruction and a
// fixed fallback value; a failing collaborator degrades the operation to its
// fallback and never propagates an error to the caller.
package enrich

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/helpsignal/helpsignal/internal/completion"
	"github.com/helpsignal/helpsignal/internal/model"
)

const (
	classifyPrompt = "You are a classifier that determines if a given news item or " +
		"social media post describes a humanitarian crisis. A humanitarian crisis " +
		"involves death, displacement, famine or other severe suffering. Output " +
		"strictly either 'CRISIS' or 'NOT CRISIS'. Do not include any additional commentary."

	impactPrompt = "You are an analyst that extracts the estimated number of people " +
		"affected by a crisis and assigns a severity score. Consider the description " +
		"and output an integer for 'People Affected' and an integer between 0 and 100 " +
		"for 'Severity Score'. Severity 0 means negligible impact and 100 means " +
		"catastrophic impact."

	summaryPrompt = "You are a writer tasked with producing a brief summary of a " +
		"humanitarian crisis. Your summary should be one to two sentences, written " +
		"in plain language. Be sure to mention the location, type of crisis and its " +
		"human impact. Keep the tone clear and empathetic."

	donationPrompt = "You are a recommender for charitable organizations. Given the type " +
		"of humanitarian crisis (e.g. war, famine, flood), suggest two or three " +
		"well-established and trustworthy organizations that accept donations for " +
		"relief efforts. Provide their names and website URLs."
)

// FallbackDonationLinks is substituted whenever donation suggestion fails or
// yields nothing; records never carry an empty link list.
var FallbackDonationLinks = []string{
	"https://www.directrelief.org/",
	"https://www.unhcr.org/",
}

const maxDonationLinks = 3

type Enricher struct {
	completer completion.Completer
}

func New(completer completion.Completer) *Enricher {
	return &Enricher{completer: completer}
}

// ClassifyCrisis reports whether text describes a humanitarian crisis.
// Any collaborator failure counts as NOT CRISIS.
func (e *Enricher) ClassifyCrisis(ctx context.Context, text string) bool {
	resp, err := e.completer.Complete(ctx, completion.Request{
		System:    classifyPrompt,
		User:      text,
		MaxTokens: 5,
	})
	if err != nil {
		log.Printf("[ERROR] crisis classification failed: %v", err)
		return false
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(resp)), "CRISIS")
}

// EstimateImpact returns the estimated people affected and a severity score
// in [0,100]. Falls back to (0, 0) on any collaborator failure.
func (e *Enricher) EstimateImpact(ctx context.Context, text string) (people, severity int) {
	resp, err := e.completer.Complete(ctx, completion.Request{
		System:    impactPrompt,
		User:      "Description: " + text,
		MaxTokens: 50,
	})
	if err != nil {
		log.Printf("[ERROR] impact estimation failed: %v", err)
		return 0, 0
	}
	return parseImpact(resp)
}

// Summarize produces a one-to-two sentence summary, or the empty string on
// failure.
func (e *Enricher) Summarize(ctx context.Context, text string) string {
	resp, err := e.completer.Complete(ctx, completion.Request{
		System:      summaryPrompt,
		User:        text,
		MaxTokens:   100,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("[ERROR] summary generation failed: %v", err)
		return ""
	}
	return strings.TrimSpace(resp)
}

// SuggestDonations returns up to three donation links for the event type,
// falling back to the hardcoded pair when the collaborator fails or returns
// nothing usable.
func (e *Enricher) SuggestDonations(ctx context.Context, eventType model.EventType) []string {
	resp, err := e.completer.Complete(ctx, completion.Request{
		System:    donationPrompt,
		User:      fmt.Sprintf("Event type: %s", eventType),
		MaxTokens: 80,
	})
	if err != nil {
		log.Printf("[ERROR] donation suggestion failed: %v", err)
		return FallbackDonationLinks
	}
	links := parseDonationLinks(resp)
	if len(links) == 0 {
		return FallbackDonationLinks
	}
	return links
}

// parseImpact scans a line-oriented "key: value" response. Keys match
// case-insensitively by prefix; values keep only their digit characters, so
// "1,200" reads as 1200 and "many" as 0. Malformed lines are ignored.
func parseImpact(content string) (people, severity int) {
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		switch {
		case strings.HasPrefix(key, "people"):
			people = digitsToInt(value)
		case strings.HasPrefix(key, "severity"):
			severity = digitsToInt(value)
		}
	}
	return people, clampSeverity(severity)
}

func digitsToInt(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

func clampSeverity(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// parseDonationLinks splits the response on newlines and commas, trims
// whitespace, drops empty fragments, and keeps the first three entries.
func parseDonationLinks(content string) []string {
	fragments := strings.Split(strings.ReplaceAll(content, "\n", ","), ",")
	links := make([]string, 0, maxDonationLinks)
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		links = append(links, f)
		if len(links) == maxDonationLinks {
			break
		}
	}
	return links
}
