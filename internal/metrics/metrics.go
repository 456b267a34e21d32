// Package metrics exports Prometheus instrumentation for the sync core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters incremented by the application core. All stats
// are pull-based; there is no polling goroutine.
type Metrics struct {
	TableFetches    prometheus.Counter
	FetchErrors     prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	Uploads         prometheus.Counter
	UploadConflicts prometheus.Counter
	UploadErrors    prometheus.Counter
}

// New creates the counter set and registers it on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TableFetches: factory.NewCounter(prometheus.CounterOpts{
			Name: "pautapanel_table_fetches_total",
			Help: "Remote dataset fetches attempted.",
		}),
		FetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "pautapanel_table_fetch_errors_total",
			Help: "Remote dataset fetches that failed.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "pautapanel_cache_hits_total",
			Help: "Table cache lookups served from the cached entry.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "pautapanel_cache_misses_total",
			Help: "Table cache lookups that triggered a remote fetch.",
		}),
		Uploads: factory.NewCounter(prometheus.CounterOpts{
			Name: "pautapanel_uploads_total",
			Help: "Successful dataset replacements.",
		}),
		UploadConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "pautapanel_upload_conflicts_total",
			Help: "Revision conflicts observed during dataset replacement.",
		}),
		UploadErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "pautapanel_upload_errors_total",
			Help: "Dataset replacements that failed after retry.",
		}),
	}
}
