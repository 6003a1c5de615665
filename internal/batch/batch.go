// Package batch drives one pipeline invocation: collect raw items from every
// registered source, run each item through the pipeline sequentially, and
// dispatch the survivors. A batch run never returns an error; failures are
// logged, counted, and skipped.
package batch

import (
	"context"
	"log"

	"github.com/helpsignal/helpsignal/internal/metrics"
	"github.com/helpsignal/helpsignal/internal/model"
	"github.com/helpsignal/helpsignal/internal/source"
)

// Processor turns one raw item into an enriched record, or nil when the item
// is filtered out.
type Processor interface {
	Process(ctx context.Context, item model.RawItem) (*model.EventRecord, error)
}

// Dispatcher fans a record out to the sinks; it never fails.
type Dispatcher interface {
	Dispatch(ctx context.Context, record model.EventRecord)
}

type Runner struct {
	sources    []source.Source
	processor  Processor
	dispatcher Dispatcher
	fetchLimit int
}

func NewRunner(sources []source.Source, processor Processor, dispatcher Dispatcher, fetchLimit int) *Runner {
	return &Runner{
		sources:    sources,
		processor:  processor,
		dispatcher: dispatcher,
		fetchLimit: fetchLimit,
	}
}

// Run executes one batch. Items are processed strictly sequentially in
// source-registration order; a failing source or item never stops the batch.
func (r *Runner) Run(ctx context.Context) model.BatchResult {
	var items []model.RawItem
	for _, src := range r.sources {
		fetched, err := src.Fetch(ctx, r.fetchLimit)
		if err != nil {
			log.Printf("[ERROR] failed to fetch from %s: %v", src.Name(), err)
			continue
		}
		log.Printf("[INFO] fetched %d items from %s", len(fetched), src.Name())
		metrics.ItemsFetched.WithLabelValues(src.Name()).Add(float64(len(fetched)))
		items = append(items, fetched...)
	}

	result := model.BatchResult{Total: len(items)}
	if len(items) == 0 {
		log.Printf("[WARN] no items collected from any source")
		return result
	}

	for i, item := range items {
		log.Printf("[INFO] processing item %d/%d: %s", i+1, len(items), item.Title)

		record, err := r.processor.Process(ctx, item)
		if err != nil {
			log.Printf("[ERROR] failed to process item %q: %v", item.Title, err)
			result.Errored++
			metrics.ItemErrors.Inc()
			continue
		}

		// A filtered item still counts as processed; it just produced no record.
		result.Processed++
		if record == nil {
			result.Filtered++
			metrics.ItemsFiltered.Inc()
			continue
		}

		r.dispatcher.Dispatch(ctx, *record)
		metrics.EventsPublished.Inc()
	}

	log.Printf("[INFO] batch finished: processed=%d filtered=%d errored=%d total=%d",
		result.Processed, result.Filtered, result.Errored, result.Total)
	return result
}
