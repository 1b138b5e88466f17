// Package httpapi exposes the account and reward operations as a JSON HTTP
// API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/services"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

type HTTPServer struct {
	address string
	svc     services.Bundle
	logger  logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, svc services.Bundle) *HTTPServer {
	return &HTTPServer{
		address: address,
		svc:     svc,
		logger:  l.With("module", "http_server"),
	}
}

// Handler returns the routed API wrapped in its middleware chain.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /signup", s.signupHandler())
	mux.HandleFunc("POST /login", s.loginHandler())
	mux.HandleFunc("POST /balance", s.balanceHandler())
	mux.HandleFunc("GET /balance/{username}", s.balanceByNameHandler())
	mux.HandleFunc("POST /redeem", s.redeemHandler())
	mux.HandleFunc("POST /quests/claim", s.claimQuestHandler())
	mux.HandleFunc("POST /admin/codes", s.addCodeHandler())
	mux.HandleFunc("GET /admin/codes", s.listCodesHandler())
	mux.HandleFunc("GET /healthz", healthHandler)

	return chain(mux,
		s.requestID,
		s.accessLog,
		s.recoverer,
		cors,
		limitBody(maxBodyBytes),
	)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
