// Package source implements the content-source adapters. Each adapter
// normalizes its vendor payload into model.RawItem and pre-extracts a
// location hint; which adapters are active is decided at construction time
// from credential presence, never inside the adapters themselves.
package source

import (
	"context"
	"strings"

	"github.com/helpsignal/helpsignal/internal/heuristic"
	"github.com/helpsignal/helpsignal/internal/model"
)

type Source interface {
	Name() string
	Fetch(ctx context.Context, limit int) ([]model.RawItem, error)
}

func locationHint(title, description string) string {
	return heuristic.ExtractLocation(strings.TrimSpace(title + " " + description))
}
