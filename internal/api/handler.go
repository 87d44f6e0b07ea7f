// Package api exposes the three boundary operations over HTTP: list
// summaries, get article by slug, trigger refresh. Every failure is converted
// here into a status code and a plain-text message; nothing propagates out of
// a handler.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rptrainor/blog-cache-service/internal/cache"
	"github.com/rptrainor/blog-cache-service/internal/service"
	"github.com/rptrainor/blog-cache-service/internal/store"
	"github.com/rptrainor/blog-cache-service/internal/upstream"
)

const contentTypeJSON = "application/json"

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func NewHandler(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.Use(RequestID())
	v1 := r.Group("/v1")
	{
		v1.GET("/articles", h.ListSummaries)
		v1.GET("/articles/:slug", h.GetArticle)
		v1.POST("/refresh", h.Refresh)
	}
}

// ListSummaries: GET /v1/articles
// Serves the cached summary list verbatim; the stored bytes are already in
// the wire shape.
func (h *Handler) ListSummaries(c *gin.Context) {
	payload, err := h.svc.SummaryList(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		c.String(http.StatusNotFound, "article list not cached yet")
		return
	}
	if err != nil {
		h.logger.Error("summary list read failed", "err", err)
		c.String(http.StatusServiceUnavailable, "cache store unavailable")
		return
	}
	c.Data(http.StatusOK, contentTypeJSON, payload)
}

// GetArticle: GET /v1/articles/:slug
func (h *Handler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")
	payload, err := h.svc.ArticleBySlug(c.Request.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		c.String(http.StatusNotFound, "article %q not found", slug)
		return
	}
	if err != nil {
		h.logger.Error("article read failed", "slug", slug, "err", err)
		c.String(http.StatusServiceUnavailable, "cache store unavailable")
		return
	}
	c.Data(http.StatusOK, contentTypeJSON, payload)
}

// Refresh: POST /v1/refresh
// Pulls the full article set from upstream and replaces the cached
// projections. Retrying a failed refresh is the caller's job.
func (h *Handler) Refresh(c *gin.Context) {
	summary, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("refresh failed", "err", err)
		switch {
		case errors.Is(err, upstream.ErrFetch):
			c.String(http.StatusBadGateway, "upstream fetch failed: %v", err)
		case errors.Is(err, upstream.ErrShape):
			c.String(http.StatusBadGateway, "upstream payload unusable: %v", err)
		default:
			var we *cache.WriteError
			if errors.As(err, &we) {
				c.String(http.StatusInternalServerError,
					"cache write failed (%d articles written, summary written: %t)",
					we.Partial.ArticlesWritten, we.Partial.SummaryWritten)
				return
			}
			c.String(http.StatusInternalServerError, "refresh failed: %v", err)
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}
