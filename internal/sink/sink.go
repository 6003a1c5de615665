// Package sink fans an assembled EventRecord out to the tabular sink, the
// object store, and the optional social post. Dispatch never fails: every
// sink error is logged and swallowed so one bad sink cannot abort a batch.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/helpsignal/helpsignal/internal/model"
)

const maxPostLength = 280

type RowSink interface {
	AppendRow(ctx context.Context, values []any) error
}

type ObjectSink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

type Poster interface {
	Post(ctx context.Context, text string) error
}

// ObjectKey partitions records by the UTC date of writing:
// events/YYYY/MM/DD/<event_id>.json.
func ObjectKey(eventID string, now time.Time) string {
	return now.UTC().Format("events/2006/01/02/") + eventID + ".json"
}

// PostText renders the social post for a record: location, people affected,
// event type, first line of the summary, and the first donation link,
// truncated to the platform limit.
func PostText(record model.EventRecord) string {
	summaryLine, _, _ := strings.Cut(record.Summary, "\n")

	// Records carry the fallback link pair when suggestion fails, but the
	// dispatcher promises not to fail, so don't lean on that invariant here.
	donationLink := ""
	if len(record.DonationLinks) > 0 {
		donationLink = record.DonationLinks[0]
	}

	text := fmt.Sprintf("🚨 Crisis in %s: %d affected by %s\n%s\nHelp: %s",
		record.Location,
		record.PeopleAffected,
		record.EventType,
		summaryLine,
		donationLink,
	)
	if runes := []rune(text); len(runes) > maxPostLength {
		text = string(runes[:maxPostLength])
	}
	return text
}

type Dispatcher struct {
	rows    RowSink
	objects ObjectSink
	poster  Poster

	now func() time.Time
}

func NewDispatcher(rows RowSink, objects ObjectSink, poster Poster) *Dispatcher {
	return &Dispatcher{
		rows:    rows,
		objects: objects,
		poster:  poster,
		now:     time.Now,
	}
}

// Dispatch writes the record to each configured sink in a fixed order:
// tabular row, JSON object, social post. The writes are independent and
// best-effort; a record may land in one sink and not another.
func (d *Dispatcher) Dispatch(ctx context.Context, record model.EventRecord) {
	if err := d.rows.AppendRow(ctx, record.Row()); err != nil {
		log.Printf("[ERROR] failed to append row for event %s: %v", record.EventID, err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		log.Printf("[ERROR] failed to marshal event %s: %v", record.EventID, err)
	} else {
		key := ObjectKey(record.EventID, d.now())
		if err := d.objects.Put(ctx, key, data, "application/json"); err != nil {
			log.Printf("[ERROR] failed to archive event %s: %v", record.EventID, err)
		}
	}

	if err := d.poster.Post(ctx, PostText(record)); err != nil {
		log.Printf("[ERROR] failed to post about event %s: %v", record.EventID, err)
	}
}
