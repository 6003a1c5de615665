package sink

import "context"

// Disabled sinks are selected at construction time when a collaborator's
// credentials are absent. They accept every write silently; the warning is
// logged once where the selection happens, not per record.

type DisabledRowSink struct{}

func (DisabledRowSink) AppendRow(context.Context, []any) error { return nil }

type DisabledObjectSink struct{}

func (DisabledObjectSink) Put(context.Context, string, []byte, string) error { return nil }

type DisabledPoster struct{}

func (DisabledPoster) Post(context.Context, string) error { return nil }
