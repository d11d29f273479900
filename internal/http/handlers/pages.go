package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/adtech-learning/internal/http/response"
	"github.com/yungbote/adtech-learning/internal/pages"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

type PageHandler struct {
	log   *logger.Logger
	pages pages.Service
}

func NewPageHandler(log *logger.Logger, pages pages.Service) *PageHandler {
	return &PageHandler{log: log.With("handler", "PageHandler"), pages: pages}
}

// GET /?example=<id>
func (h *PageHandler) Home(c *gin.Context) {
	body, err := h.pages.Home(c.Request.Context(), c.Query("example"))
	h.write(c, body, err)
}

// GET /glossary?term=<id>
func (h *PageHandler) Glossary(c *gin.Context) {
	body, err := h.pages.Glossary(c.Request.Context(), c.Query("term"))
	h.write(c, body, err)
}

// GET /topic/:id
func (h *PageHandler) Topic(c *gin.Context) {
	body, err := h.pages.Topic(c.Request.Context(), c.Param("id"))
	h.write(c, body, err)
}

// GET /example/:id
func (h *PageHandler) Example(c *gin.Context) {
	body, err := h.pages.Example(c.Request.Context(), c.Param("id"))
	h.write(c, body, err)
}

func (h *PageHandler) write(c *gin.Context, body []byte, err error) {
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondHTML(c, body)
}
