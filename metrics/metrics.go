// Package metrics exposes Prometheus counters for registry operations and a
// standalone metrics HTTP server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsCreated counts successful CreateEvent operations.
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_events_created_total",
		Help: "Number of events registered.",
	})

	// EventsUpdated counts successful UpdateEvent operations.
	EventsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_events_updated_total",
		Help: "Number of event record updates.",
	})

	// TicketsMinted counts successful MintTicket operations.
	TicketsMinted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_tickets_minted_total",
		Help: "Number of tickets minted.",
	})

	// TicketsRevoked counts successful RevokeTicket operations.
	TicketsRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_tickets_revoked_total",
		Help: "Number of tickets revoked.",
	})

	// TicketsTransferred counts successful Transfer operations.
	TicketsTransferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_tickets_transferred_total",
		Help: "Number of ticket ownership transfers.",
	})

	// NotificationFailures counts notifications that could not be delivered
	// to an external sink. The in-memory log never fails.
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_notification_failures_total",
		Help: "Number of notification deliveries that failed.",
	})
)

// MetricsServer serves the Prometheus metrics endpoint on its own listener,
// separate from the API server.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given service name and listen
// address.
func New(name, addr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// ListenAndServe blocks serving metrics until Shutdown is called.
func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
