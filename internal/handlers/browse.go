package handlers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/constants"
	"github.com/SAACyberV99/VibeFlix/internal/detail"
	"github.com/SAACyberV99/VibeFlix/internal/errors"
	"github.com/SAACyberV99/VibeFlix/internal/render"
	"github.com/SAACyberV99/VibeFlix/internal/view"
)

// handleIndex is a page load: the list is fetched fresh with the requested controls,
// and ?movie=ID opens that movie's overlay (?retry=1 after a failed attempt).
func (h *Handler) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	sess, _ := h.session(c)
	state := sess.Dispatch(ctx, startedFrom(c))

	page := render.Page{State: state, Engine: sess.Engine()}
	if raw := c.Query("movie"); raw != "" {
		o := h.loadDetail(c, raw, c.Query("retry") != "")
		page.Overlay = &o
	}
	h.renderPage(c, http.StatusOK, page)
}

// handleGrid applies one control action and returns the grid fragment.
// An unknown or expired session starts over from the request's control values.
// Every answer waits for the fetch in flight, so a sort made during a search shows its results.
func (h *Handler) handleGrid(c *gin.Context) {
	ctx := c.Request.Context()
	sess, created := h.session(c)

	var msg view.Msg
	switch action := c.Query("action"); {
	case created:
		msg = startedFrom(c)
	case action == "search":
		msg = view.SearchSubmitted{Query: c.Query("q")}
	case action == "sort":
		msg = view.SortChanged{Key: browse.ParseSortKey(c.Query("sort"))}
	case action == "genre":
		msg = view.GenreChanged{Filter: browse.ParseGenreFilter(c.Query("genre"))}
	case action == "":
	default:
		c.String(http.StatusBadRequest, "unknown action %q", action)
		return
	}

	var state view.State
	if msg != nil {
		state = sess.Dispatch(ctx, msg)
	} else {
		state = sess.Settled(ctx)
	}

	var buf bytes.Buffer
	if err := h.renderer.Grid(&buf, state, sess.Engine()); err != nil {
		h.logger.Errorf("[Handlers] failed to render grid: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	etag := gridETag(buf.Bytes())
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Fetch-Generation", strconv.FormatUint(state.Generation, 10))
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// gridETag is weak because the body may be re-encoded by compression.
func gridETag(b []byte) string {
	sum := sha256.Sum256(b)
	return `W/"` + hex.EncodeToString(sum[:8]) + `"`
}

// handleDetail returns the overlay fragment for one movie: 200 when shown, 502 when the fetch failed,
// 404 for an id that cannot name a movie. ?retry=1 re-enters loading from the failed state.
func (h *Handler) handleDetail(c *gin.Context) {
	o := h.loadDetail(c, c.Param("id"), c.Query("retry") != "")

	back := view.Initial()
	if id, err := c.Cookie(constants.SessionCookie); err == nil {
		if sess, ok := h.sessions.Get(id); ok {
			back = sess.State()
		}
	}

	status := http.StatusOK
	switch {
	case o.State != detail.Error:
	case errors.Is(o.Err, errors.ErrorTypeInvalidID):
		status = http.StatusNotFound
	default:
		status = http.StatusBadGateway
	}

	var buf bytes.Buffer
	if err := h.renderer.Overlay(&buf, o, back); err != nil {
		h.logger.Errorf("[Handlers] failed to render overlay: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, htmlContentType, buf.Bytes())
}

func (h *Handler) loadDetail(c *gin.Context, raw string, retry bool) detail.Overlay {
	id, err := strconv.Atoi(raw)
	if err != nil {
		id = 0
	}

	var o detail.Overlay
	if retry {
		h.logger.Debugf("[Handlers] retrying movie %d details", id)
		o = detail.ShowAgain(c.Request.Context(), h.catalog, id)
	} else {
		o = detail.Show(c.Request.Context(), h.catalog, id)
	}
	if o.State == detail.Error {
		h.logger.Warnf("[Handlers] movie %q details unavailable: %v", raw, o.Err)
	}
	return o
}
