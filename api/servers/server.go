// Package servers implements HTTP server lifecycle management for the
// ticketing registry: routing, caller authentication, health and drain
// endpoints, metrics exposure, and graceful shutdown.
package servers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/atomic"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/auth"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/handlers"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/common"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/metrics"
)

// Server wraps the registry API and metrics HTTP servers.
type Server struct {
	cfg     *api.HTTPServerConfig
	isReady atomic.Bool
	log     *slog.Logger

	srv        *http.Server
	metricsSrv *metrics.MetricsServer
	handler    *handlers.Handler
}

// New creates a server for the given handler.
func New(cfg *api.HTTPServerConfig, handler *handlers.Handler) (*Server, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("server requires a JWT secret for caller authentication")
	}

	metricsSrv, err := metrics.New(common.PackageName, cfg.MetricsAddr)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:        cfg,
		log:        cfg.Log,
		metricsSrv: metricsSrv,
		handler:    handler,
	}
	srv.isReady.Store(true)

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.getRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, nil
}

func (srv *Server) getRouter() http.Handler {
	mux := chi.NewRouter()

	authed := auth.Middleware(srv.cfg.JWTSecret, srv.log)

	// Mutating routes require an authenticated caller.
	mux.With(srv.httpLogger, authed).Post("/api/admin/events", srv.handler.HandleCreateEvent)
	mux.With(srv.httpLogger, authed).Put("/api/admin/events/{event_id}", srv.handler.HandleUpdateEvent)
	mux.With(srv.httpLogger, authed).Post("/api/admin/roles/grant", srv.handler.HandleGrantRole)
	mux.With(srv.httpLogger, authed).Post("/api/admin/roles/revoke", srv.handler.HandleRevokeRole)
	mux.With(srv.httpLogger, authed).Post("/api/admin/metadata", srv.handler.HandleStoreMetadata)
	mux.With(srv.httpLogger, authed).Post("/api/tickets/mint", srv.handler.HandleMintTicket)
	mux.With(srv.httpLogger, authed).Post("/api/tickets/{ticket_id}/revoke", srv.handler.HandleRevokeTicket)
	mux.With(srv.httpLogger, authed).Put("/api/tickets/{ticket_id}/uri", srv.handler.HandleSetTicketURI)
	mux.With(srv.httpLogger, authed).Post("/api/tickets/{ticket_id}/approve", srv.handler.HandleApprove)
	mux.With(srv.httpLogger, authed).Post("/api/tickets/{ticket_id}/transfer", srv.handler.HandleTransfer)

	// Public read-only routes.
	mux.With(srv.httpLogger).Get("/api/public/registry", srv.handler.HandleTotals)
	mux.With(srv.httpLogger).Get("/api/public/events/{event_id}", srv.handler.HandleGetEvent)
	mux.With(srv.httpLogger).Get("/api/public/tickets/{ticket_id}", srv.handler.HandleGetTicket)
	mux.With(srv.httpLogger).Get("/api/public/tickets/{ticket_id}/metadata", srv.handler.HandleTicketMetadata)
	mux.With(srv.httpLogger).Get("/api/public/notifications", srv.handler.HandleNotifications)

	// Health and diagnostic endpoints.
	mux.With(srv.httpLogger).Get("/livez", srv.handleLivenessCheck)
	mux.With(srv.httpLogger).Get("/readyz", srv.handleReadinessCheck)
	mux.With(srv.httpLogger).Get("/drain", srv.handleDrain)
	mux.With(srv.httpLogger).Get("/undrain", srv.handleUndrain)

	if srv.cfg.EnablePprof {
		srv.log.Info("pprof API enabled")
		mux.Mount("/debug", middleware.Profiler())
	}
	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

func (srv *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"alive"}`))
}

func (srv *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

func (srv *Server) handleDrain(w http.ResponseWriter, r *http.Request) {
	if !srv.isReady.Swap(false) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"already draining"}`))
		return
	}

	srv.log.Info("Server marked as not ready")

	// Give load balancers the drain window to notice the readiness flip
	// before anyone shuts the process down.
	go func() {
		time.Sleep(srv.cfg.DrainDuration)
		srv.log.Info("Drain period completed")
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"draining"}`))
}

func (srv *Server) handleUndrain(w http.ResponseWriter, r *http.Request) {
	if srv.isReady.Swap(true) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"already ready"}`))
		return
	}

	srv.log.Info("Server marked as ready")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// RunInBackground starts the API and metrics servers without blocking.
func (srv *Server) RunInBackground() {
	// metrics
	if srv.cfg.MetricsAddr != "" {
		go func() {
			srv.log.With("metricsAddress", srv.cfg.MetricsAddr).Info("Starting metrics server")
			err := srv.metricsSrv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				srv.log.Error("Metrics server failed", "err", err)
			}
		}()
	}

	// api
	go func() {
		srv.log.Info("Starting HTTP server", "listenAddress", srv.cfg.ListenAddr)
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.log.Error("HTTP server failed", "err", err)
		}
	}()
}

// Shutdown gracefully stops both servers.
func (srv *Server) Shutdown() {
	// api
	ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := srv.srv.Shutdown(ctx); err != nil {
		srv.log.Error("Graceful HTTP server shutdown failed", "err", err)
	} else {
		srv.log.Info("HTTP server gracefully stopped")
	}

	// metrics
	if len(srv.cfg.MetricsAddr) != 0 {
		ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
		defer cancel()

		if err := srv.metricsSrv.Shutdown(ctx); err != nil {
			srv.log.Error("Graceful metrics server shutdown failed", "err", err)
		} else {
			srv.log.Info("Metrics server gracefully stopped")
		}
	}
}
