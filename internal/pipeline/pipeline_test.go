package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpsignal/helpsignal/internal/completion"
	"github.com/helpsignal/helpsignal/internal/enrich"
	"github.com/helpsignal/helpsignal/internal/model"
)

// scriptedCompleter routes each call to a canned response by the role named
// in the system instruction.
type scriptedCompleter struct {
	classify  string
	impact    string
	summary   string
	donations string
}

func (s *scriptedCompleter) Complete(_ context.Context, req completion.Request) (string, error) {
	switch {
	case strings.Contains(req.System, "classifier"):
		return s.classify, nil
	case strings.Contains(req.System, "analyst"):
		return s.impact, nil
	case strings.Contains(req.System, "writer"):
		return s.summary, nil
	case strings.Contains(req.System, "recommender"):
		return s.donations, nil
	}
	return "", errors.New("unexpected request")
}

type fakeGeocoder struct {
	lat, lng float64
	err      error
	queries  []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, q string) (float64, float64, error) {
	f.queries = append(f.queries, q)
	return f.lat, f.lng, f.err
}

func newTestPipeline(c completion.Completer, g *fakeGeocoder) *Pipeline {
	p := New(enrich.New(c), g)
	p.newID = func() string { return "id-1" }
	p.now = func() time.Time { return time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestProcessEndToEnd(t *testing.T) {
	completer := &scriptedCompleter{
		classify:  "CRISIS",
		impact:    "People Affected: 5,000\nSeverity Score: 60",
		summary:   "Severe flooding in Jakarta has displaced thousands.",
		donations: "https://redcross.org\nhttps://unhcr.org",
	}
	geo := &fakeGeocoder{lat: -6.2, lng: 106.8}
	p := newTestPipeline(completer, geo)

	record, err := p.Process(context.Background(), model.RawItem{
		Title:        "Flood devastates Jakarta",
		Description:  "Thousands displaced after monsoon floods.",
		URL:          "https://example.com/jakarta",
		LocationHint: "Jakarta",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, model.EventFlood, record.EventType)
	assert.Equal(t, "Jakarta", record.Location)
	assert.Equal(t, []string{"Jakarta"}, geo.queries)
	assert.Equal(t, 5000, record.PeopleAffected)
	assert.Equal(t, 60, record.SeverityScore)
	assert.Equal(t, "https://example.com/jakarta", record.SourceURL)

	assert.Equal(t, []any{
		"2025-08-30T12:00:00Z",
		"id-1",
		"Jakarta",
		-6.2,
		106.8,
		"Flood",
		"Severe flooding in Jakarta has displaced thousands.",
		5000,
		60,
		`["https://redcross.org","https://unhcr.org"]`,
	}, record.Row())
}

func TestProcessFiltersNonCrisis(t *testing.T) {
	completer := &scriptedCompleter{classify: "NOT CRISIS"}
	geo := &fakeGeocoder{}
	p := newTestPipeline(completer, geo)

	record, err := p.Process(context.Background(), model.RawItem{
		Title:       "Local bake sale a success",
		Description: "Record turnout this year.",
	})
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Empty(t, geo.queries, "filtered items must not reach the geocoder")
}

func TestProcessGeocoderFailure(t *testing.T) {
	completer := &scriptedCompleter{
		classify:  "CRISIS",
		impact:    "People: 10\nSeverity: 20",
		summary:   "s",
		donations: "x",
	}
	geo := &fakeGeocoder{err: errors.New("geocoder down")}
	p := newTestPipeline(completer, geo)

	record, err := p.Process(context.Background(), model.RawItem{
		Title:        "Earthquake hits Kathmandu",
		Description:  "Buildings damaged.",
		LocationHint: "Kathmandu",
	})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 0.0, record.Lat)
	assert.Equal(t, 0.0, record.Lng)
	assert.Equal(t, model.EventEarthquake, record.EventType)
}

func TestProcessUnknownLocation(t *testing.T) {
	completer := &scriptedCompleter{
		classify:  "CRISIS",
		impact:    "",
		summary:   "",
		donations: "",
	}
	geo := &fakeGeocoder{}
	p := newTestPipeline(completer, geo)

	record, err := p.Process(context.Background(), model.RawItem{
		Title:       "thousands flee fighting",
		Description: "no named places here",
	})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Unknown", record.Location)
	assert.Equal(t, enrich.FallbackDonationLinks, record.DonationLinks)
	assert.Equal(t, []string{"Unknown"}, geo.queries)
}
