package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponzo_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sponzo_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ticketPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponzo_ticket_purchases_total",
			Help: "Ticket purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	proposals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponzo_proposals_total",
			Help: "Sponsorship proposal operations",
		},
		[]string{"operation"},
	)

	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponzo_registrations_total",
			Help: "Account registrations by role and outcome",
		},
		[]string{"role", "outcome"},
	)
)

func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// TicketPurchase records one purchase attempt; outcome is "success", "sold_out" or "error".
func TicketPurchase(outcome string) {
	ticketPurchases.WithLabelValues(outcome).Inc()
}

func Proposal(operation string) {
	proposals.WithLabelValues(operation).Inc()
}

func Registration(role, outcome string) {
	registrations.WithLabelValues(role, outcome).Inc()
}
