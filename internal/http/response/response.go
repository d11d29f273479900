package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/adtech-learning/internal/platform/apierr"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondHTML(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, contentTypeHTML, body)
}

// RespondError writes err as a plain-text body. API errors keep their status
// and message; anything else becomes a generic 500.
func RespondError(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	_ = c.Error(err)
	ae := apierr.As(err)
	c.Data(ae.Status, contentTypeText, []byte(ae.Error()))
}
