package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	pingTimeout       = time.Second
)

// Server serves the larek catalog and order API.
type Server struct {
	http   *http.Server
	logger zerolog.Logger
}

// New builds the API server. db may be nil in tests, in which case /readyz
// always reports unavailable.
func New(addr string, logger *zerolog.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "api").Logger()
	}
	router, err := buildRouter(l, db, deps)
	if err != nil {
		return nil, err
	}

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		logger: l,
	}, nil
}

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Shutdown waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug().Str("addr", s.http.Addr).Msg("draining connections")
	return s.http.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports whether the catalog database answers a ping.
func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, reason := http.StatusOK, ""
		switch {
		case db == nil:
			status, reason = http.StatusServiceUnavailable, "db not configured"
		default:
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				status, reason = http.StatusServiceUnavailable, "db not reachable"
			}
		}
		if status != http.StatusOK {
			c.JSON(status, gin.H{"status": "unavailable", "reason": reason})
			return
		}
		c.JSON(status, gin.H{"status": "ready"})
	}
}
