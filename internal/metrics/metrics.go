package metrics

import (
	"net/http"
	"strconv"
	"time"

	apperrors "business-hub-backend/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "business_hub"

// Invitation issuance modes
const (
	ModeLink     = "link"
	ModeTargeted = "targeted"
)

// Redemption outcomes
const (
	OutcomeJoined       = "joined"
	OutcomeInvalidToken = "invalid_token"
	OutcomeForbidden    = "forbidden"
	OutcomeNotFound     = "not_found"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

// Metrics holds the application's collectors
type Metrics struct {
	registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	invitationsIssued  *prometheus.CounterVec
	invitationRedeemed *prometheus.CounterVec
	companiesCreated   prometheus.Counter
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		invitationsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_issued_total",
			Help:      "Invitation tokens issued by mode.",
		}, []string{"mode"}),
		invitationRedeemed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitation_redemptions_total",
			Help:      "Invitation redemption attempts by outcome.",
		}, []string{"outcome"}),
		companiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "companies_created_total",
			Help:      "Companies created.",
		}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.invitationsIssued, m.invitationRedeemed, m.companiesCreated)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one served request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// InvitationIssued counts an issued invitation
func (m *Metrics) InvitationIssued(mode string) {
	if m == nil {
		return
	}
	m.invitationsIssued.WithLabelValues(mode).Inc()
}

// InvitationRedeemed counts a redemption attempt by the outcome of err
func (m *Metrics) InvitationRedeemed(err error) {
	if m == nil {
		return
	}
	m.invitationRedeemed.WithLabelValues(ClassifyOutcome(err)).Inc()
}

// CompanyCreated counts a created company
func (m *Metrics) CompanyCreated() {
	if m == nil {
		return
	}
	m.companiesCreated.Inc()
}

// ClassifyOutcome maps an error from the invitation workflow to an outcome label
func ClassifyOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeJoined
	case apperrors.IsInvalidToken(err):
		return OutcomeInvalidToken
	case apperrors.IsAuthentication(err):
		return OutcomeUnauthorized
	case apperrors.IsAuthorization(err):
		return OutcomeForbidden
	case apperrors.IsNotFound(err):
		return OutcomeNotFound
	case apperrors.IsAlreadyExists(err):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
