package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FaviconHandler struct {
	png []byte
}

// NewFaviconHandler serves a pre-encoded PNG. A nil handler is returned for
// empty input so the router can skip the route.
func NewFaviconHandler(png []byte) *FaviconHandler {
	if len(png) == 0 {
		return nil
	}
	return &FaviconHandler{png: png}
}

// GET /favicon.png, GET /favicon.ico
func (h *FaviconHandler) Serve(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", h.png)
}
