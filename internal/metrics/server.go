package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server exposes the registry on GET /metrics.
type Server struct {
	Echo          *echo.Echo
	listenAddress string
}

// NewServer prepares, but does not start, the metrics endpoint.
func NewServer(s *Service, listenAddress string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))

	return &Server{
		Echo:          e,
		listenAddress: listenAddress,
	}
}

// Start serves in the background until Shutdown.
func (srv *Server) Start() {
	go func() {
		log.Info().Str("listen_address", srv.listenAddress).Msg("Serving metrics")

		if err := srv.Echo.Start(srv.listenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
}

// Shutdown stops the server.
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.Echo.Shutdown(ctx)
}
