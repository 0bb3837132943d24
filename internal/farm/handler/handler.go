package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmconnect/farmconnect/backend/api/internal/farm"
	"github.com/farmconnect/farmconnect/backend/api/internal/farm/service"
	"github.com/farmconnect/farmconnect/backend/api/pkg/logger"
	"github.com/farmconnect/farmconnect/backend/api/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Handler serves the listing, tutorial and message endpoints.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the data routes under /api.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/products", h.CreateListing)
	api.GET("/products", h.ListListings)
	api.POST("/tutorials", h.CreateTutorial)
	api.GET("/tutorials", h.ListTutorials)
	api.POST("/messages", h.CreateMessage)
	api.GET("/messages", h.ListMessages)
}

func (h *Handler) CreateListing(c *gin.Context) {
	create(c, farm.NewListing(), h.svc.CreateListing)
}

func (h *Handler) CreateTutorial(c *gin.Context) {
	create(c, farm.NewTutorial(), h.svc.CreateTutorial)
}

func (h *Handler) CreateMessage(c *gin.Context) {
	create(c, farm.NewMessage(), h.svc.CreateMessage)
}

func (h *Handler) ListListings(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}
	docs, err := h.svc.ListListings(c.Request.Context(), limit)
	respondList(c, docs, err)
}

func (h *Handler) ListTutorials(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}
	docs, err := h.svc.ListTutorials(c.Request.Context(), limit)
	respondList(c, docs, err)
}

// ListMessages filters by ?room=, defaulting to the general room. An
// explicitly empty room lists every room.
func (h *Handler) ListMessages(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}
	room, ok := c.GetQuery("room")
	if !ok {
		room = farm.DefaultRoom
	}
	docs, err := h.svc.ListMessages(c.Request.Context(), room, limit)
	respondList(c, docs, err)
}

func create[T any](c *gin.Context, record *T, save func(context.Context, *T) (string, error)) {
	if err := c.ShouldBindJSON(record); err != nil {
		respondError(c, farm.DecodeError(err))
		return
	}
	id, err := save(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, farm.Invalid("limit", "type", "int", "limit must be an integer")
	}
	return n, nil
}

func respondList(c *gin.Context, docs []map[string]any, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func respondError(c *gin.Context, err error) {
	var verr *farm.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "validation failed", "errors": verr.Fields})
	case errors.Is(err, farm.ErrStorageUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database not configured"})
	default:
		logger.With("request_id", middleware.RequestIDFrom(c), "path", c.FullPath()).Error(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
