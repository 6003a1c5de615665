// Package pipeline assembles enriched EventRecords from raw items. The
// per-item step order is fixed: classify, estimate impact, summarize,
// resolve location, geocode, infer event type, suggest donations, assemble.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/helpsignal/helpsignal/internal/enrich"
	"github.com/helpsignal/helpsignal/internal/geocode"
	"github.com/helpsignal/helpsignal/internal/heuristic"
	"github.com/helpsignal/helpsignal/internal/model"
)

type Pipeline struct {
	enricher *enrich.Enricher
	geocoder geocode.Geocoder

	// overridable for tests
	newID func() string
	now   func() time.Time
}

func New(enricher *enrich.Enricher, geocoder geocode.Geocoder) *Pipeline {
	return &Pipeline{
		enricher: enricher,
		geocoder: geocoder,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Process runs one raw item through classification and enrichment. It
// returns (nil, nil) when the item is not a crisis; that is a normal
// filtering outcome, not a failure.
func (p *Pipeline) Process(ctx context.Context, item model.RawItem) (*model.EventRecord, error) {
	fullText := item.Title + "\n\n" + item.Description

	if !p.enricher.ClassifyCrisis(ctx, fullText) {
		log.Printf("[INFO] item not classified as crisis, skipping: %s", item.Title)
		return nil, nil
	}

	people, severity := p.enricher.EstimateImpact(ctx, fullText)
	summary := p.enricher.Summarize(ctx, fullText)

	location := heuristic.ResolveLocation(item.LocationHint, fullText)

	lat, lng, err := p.geocoder.Geocode(ctx, location)
	if err != nil {
		log.Printf("[ERROR] geocoding %q failed: %v", location, err)
		lat, lng = 0, 0
	}

	eventType := heuristic.InferEventType(fullText)
	donationLinks := p.enricher.SuggestDonations(ctx, eventType)

	record := &model.EventRecord{
		EventID:        p.newID(),
		Timestamp:      p.now().UTC().Format(time.RFC3339),
		Location:       location,
		Lat:            lat,
		Lng:            lng,
		EventType:      eventType,
		Title:          item.Title,
		Description:    item.Description,
		Summary:        summary,
		PeopleAffected: people,
		SeverityScore:  severity,
		DonationLinks:  donationLinks,
		SourceURL:      item.URL,
	}
	return record, nil
}
