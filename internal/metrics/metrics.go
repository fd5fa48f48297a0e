package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notekeeper_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notekeeper_registrations_total",
		Help: "Number of registration attempts grouped by status.",
	}, []string{"status"})

	entityMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notekeeper_entity_mutations_total",
		Help: "Create/update/delete operations grouped by entity and op.",
	}, []string{"entity", "op"})

	pictureUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notekeeper_picture_uploads_total",
		Help: "Picture uploads grouped by status.",
	}, []string{"status"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notekeeper_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncRegister increments the registration counter.
func IncRegister(status string) {
	registrations.WithLabelValues(status).Inc()
}

// IncMutation increments the entity mutation counter.
func IncMutation(entity, op string) {
	entityMutations.WithLabelValues(entity, op).Inc()
}

// IncUpload increments the picture upload counter.
func IncUpload(status string) {
	pictureUploads.WithLabelValues(status).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
