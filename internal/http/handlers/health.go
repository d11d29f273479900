package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/adtech-learning/internal/http/response"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler { return &HealthHandler{now: time.Now} }

// NewHealthHandlerWithClock is used by tests to pin the reported time.
func NewHealthHandlerWithClock(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.RespondOK(c, healthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(TimestampLayout),
	})
}
