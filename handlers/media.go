package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/farmconnect/farmconnect/backend/api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxMediaBytes = 20 << 20

// MediaStore is the object storage used for uploaded images and videos.
type MediaStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

// RegisterMediaRoutes mounts POST /api/media. store may be nil, in which
// case uploads are refused with 503.
func RegisterMediaRoutes(r gin.IRouter, store MediaStore) {
	r.POST("/api/media", func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Media storage not configured"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMediaBytes+1<<20)
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "multipart field 'file' is required"})
			return
		}
		if fh.Size > maxMediaBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "file exceeds 20 MiB"})
			return
		}
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"detail": "only image/* and video/* uploads are accepted"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot read upload"})
			return
		}
		defer f.Close()

		key := "media/" + uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		ctx := c.Request.Context()
		if err := store.Put(ctx, key, f, fh.Size, contentType); err != nil {
			logger.Errorf("media upload %s: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Upload failed"})
			return
		}
		u, err := store.URL(ctx, key)
		if err != nil {
			logger.Errorf("media url %s: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Upload failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"key": key, "url": u})
	})
}
