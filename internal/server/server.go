// Package server exposes the scoring service over HTTP. The service is built
// once at startup; if that load failed the server still comes up, but every
// scoring route answers 503 with the load error for the process lifetime.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/auxcardio/mlcds/internal/scoring"
)

// Server holds the HTTP surface and its (possibly absent) scoring service.
type Server struct {
	svc     *scoring.Service
	loadErr error
	log     zerolog.Logger
}

// New builds a Server. Exactly one of svc / loadErr is expected to be set;
// with loadErr set the server runs in degraded mode.
func New(svc *scoring.Service, loadErr error, log zerolog.Logger) *Server {
	return &Server{svc: svc, loadErr: loadErr, log: log}
}

// Router assembles the gin engine with middleware and routes.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(s.log))

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", s.health)

	api := r.Group("/api/v1")
	{
		api.POST("/assess", s.assess)
		api.GET("/schema", s.schema)
		api.GET("/thresholds", s.thresholds)
	}
	return r
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run(listen string, allowedOrigins []string) error {
	srv := &http.Server{
		Addr:              listen,
		Handler:           s.Router(allowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("listen", listen).Bool("degraded", s.svc == nil).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
