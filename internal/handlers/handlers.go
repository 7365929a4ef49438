// Package handlers implements the HTTP surface of the movie browser.
package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/config"
	"github.com/SAACyberV99/VibeFlix/internal/constants"
	"github.com/SAACyberV99/VibeFlix/internal/render"
	"github.com/SAACyberV99/VibeFlix/internal/view"
	"github.com/SAACyberV99/VibeFlix/pkg/logger"
	"github.com/SAACyberV99/VibeFlix/web"
)

const htmlContentType = "text/html; charset=utf-8"

// Handler handles HTTP requests for the browser UI.
type Handler struct {
	config   *config.Config
	catalog  catalog.Service
	sessions *view.Store
	renderer *render.Renderer
	engine   *browse.Engine
	logger   logger.Logger
}

// New creates a Handler. sessions and svc may be nil when the configuration needs setup.
func New(cfg *config.Config, svc catalog.Service, sessions *view.Store, renderer *render.Renderer, engine *browse.Engine, log logger.Logger) *Handler {
	return &Handler{
		config:   cfg,
		catalog:  svc,
		sessions: sessions,
		renderer: renderer,
		engine:   engine,
		logger:   log,
	}
}

// RegisterRoutes registers all HTTP routes. Without a credential every page route shows the setup instructions.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.handleHealth)
	r.StaticFS("/static", http.FS(web.Static()))

	if h.config.NeedsSetup() {
		r.GET("/", h.handleSetup)
		r.GET("/grid", h.handleSetup)
		r.GET("/movies/:id", h.handleSetup)
		return
	}

	r.GET("/", h.handleIndex)
	r.GET("/grid", h.handleGrid)
	r.GET("/movies/:id", h.handleDetail)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleSetup(c *gin.Context) {
	status := http.StatusOK
	if c.FullPath() != "/" {
		status = http.StatusServiceUnavailable
	}
	h.renderPage(c, status, render.Page{State: view.SetupRequired(), Engine: h.engine})
}

func (h *Handler) renderPage(c *gin.Context, status int, page render.Page) {
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, page); err != nil {
		h.logger.Errorf("[Handlers] failed to render page: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, htmlContentType, buf.Bytes())
}

// session returns the caller's session, creating one and setting the cookie when needed.
func (h *Handler) session(c *gin.Context) (*view.Session, bool) {
	id, _ := c.Cookie(constants.SessionCookie)
	sess, created := h.sessions.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(constants.SessionCookie, sess.ID, int(h.config.SessionTTL/time.Second), "/", "", c.Request.TLS != nil, true)
		h.logger.Debugf("[Handlers] new session %s", sess.ID)
	}
	return sess, created
}

func startedFrom(c *gin.Context) view.Started {
	return view.Started{
		Query: c.Query("q"),
		Sort:  browse.ParseSortKey(c.Query("sort")),
		Genre: browse.ParseGenreFilter(c.Query("genre")),
	}
}
