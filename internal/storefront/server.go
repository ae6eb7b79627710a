package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"web-larek/internal/view"
)

// CookieName carries the session id.
const CookieName = "larek_session"

// Server is the storefront HTTP server.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewServer builds the storefront server on addr.
func NewServer(addr string, store *Store, logger *zerolog.Logger) *Server {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           buildRouter(store, l),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: l,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func buildRouter(store *Store, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger), gin.Recovery())

	h := &handlers{store: store, logger: logger}
	router.GET("/healthz", healthHandler)
	router.GET("/", h.page)
	router.POST("/events/:action", h.event)

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type handlers struct {
	store  *Store
	logger zerolog.Logger
}

func (h *handlers) session(c *gin.Context) (*Session, bool) {
	id, _ := c.Cookie(CookieName)
	sess, created, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("create session")
		c.String(http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, sess.ID(), 0, "/", "", false, true)
	}
	return sess, true
}

func (h *handlers) page(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.render(c, sess)
}

func (h *handlers) event(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	values := view.Values{
		"field": c.PostForm("field"),
		"value": c.PostForm("value"),
	}
	if err := sess.Handle(c.Request.Context(), c.Param("action"), values); err != nil {
		if IsUnknownAction(err) {
			c.String(http.StatusNotFound, "unknown action")
			return
		}
		h.logger.Error().Err(err).Str("action", c.Param("action")).Msg("handle event")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	h.render(c, sess)
}

func (h *handlers) render(c *gin.Context, sess *Session) {
	out, err := sess.Render()
	if err != nil {
		h.logger.Error().Err(err).Msg("render page")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
