package metrics

import "time"

// LookupResult labels icon lookups and menu cache probes.
type LookupResult string

const (
	ResultHit  LookupResult = "hit"
	ResultMiss LookupResult = "miss"
)

// Recorder defines observability hooks for render passes.
type Recorder interface {
	ObserveRenderDuration(hook string, d time.Duration)
	IncIconLookup(result LookupResult)
	IncMenuCache(menu string, result LookupResult)
	AddMessageSummaries(unread, read int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRenderDuration(string, time.Duration) {}
func (NoopRecorder) IncIconLookup(LookupResult)                  {}
func (NoopRecorder) IncMenuCache(string, LookupResult)           {}
func (NoopRecorder) AddMessageSummaries(int, int)                {}
