package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Record store metrics
	RecordsCreated      prometheus.Counter
	DuplicatesRejected  prometheus.Counter
	RecordSearches      *prometheus.CounterVec
	RecordStoreLatency  *prometheus.HistogramVec
	RecordStoreFailures *prometheus.CounterVec

	// Auth metrics
	Logins        *prometheus.CounterVec
	Signups       *prometheus.CounterVec
	RoleMismatch  prometheus.Counter
	TokensRevoked prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "Total number of patient records created",
		}),
		DuplicatesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_duplicate_rejections_total",
			Help:      "Inserts rejected by the unique ID constraint",
		}),
		RecordSearches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_searches_total",
			Help:      "Unique ID lookups by outcome",
		}, []string{"outcome"}),
		RecordStoreLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "record_store_duration_seconds",
			Help:      "Duration of record store operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		RecordStoreFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_store_failures_total",
			Help:      "Record store operations that failed",
		}, []string{"operation"}),

		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
		Signups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Signups by role",
		}, []string{"role"}),
		RoleMismatch: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_role_mismatch_total",
			Help:      "Logins rejected because the stored role did not match the selected role",
		}),
		TokensRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_revoked_total",
			Help:      "Access tokens revoked at logout",
		}),
	}
}
