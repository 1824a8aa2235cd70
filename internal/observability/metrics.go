package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingAttempts counts bookEvent calls by outcome ("ok" or a failure kind).
	BookingAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "community_booking_attempts_total",
		Help: "Event booking attempts by outcome",
	}, []string{"outcome"})

	// BookingCancellations counts successful cancellations.
	BookingCancellations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "community_booking_cancellations_total",
		Help: "Bookings cancelled by members",
	})

	// ReviewsSubmitted counts review upserts by result ("created" or "updated").
	ReviewsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "community_reviews_submitted_total",
		Help: "Reviews created or updated",
	}, []string{"result"})

	// ApplicationsSubmitted counts membership applications by outcome.
	ApplicationsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "community_applications_submitted_total",
		Help: "Membership applications by outcome",
	}, []string{"outcome"})

	// ExpiredEventsSwept counts events removed or archived by the expiry sweep.
	ExpiredEventsSwept = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "community_expired_events_swept_total",
		Help: "Expired events handled by the sweeper",
	}, []string{"mode"})

	// StatsRefreshes counts recomputations of the community stats row.
	StatsRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "community_stats_refreshes_total",
		Help: "Community stats recomputations",
	})

	// StatsCacheLookups counts Redis snapshot lookups by result ("hit", "miss", "error").
	StatsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "community_stats_cache_lookups_total",
		Help: "Redis stats snapshot lookups",
	}, []string{"result"})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "community_redis_errors_total",
		Help: "Redis command failures",
	}, []string{"command"})

	// HTTPRequestDuration records handler latency by route pattern and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "community_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
