package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(t *testing.T, h gin.HandlerFunc, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(h)
	r.GET("/topic/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/topic/data", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsLocalDevOrigins(t *testing.T) {
	t.Parallel()

	origins := []string{
		"http://localhost:4500",
		"http://127.0.0.1:5173",
	}

	for _, origin := range origins {
		origin := origin
		t.Run(origin, func(t *testing.T) {
			t.Parallel()
			rec := preflight(t, CORS(nil), origin)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, origin)
			}
		})
	}
}

func TestCORSConfiguredOrigins(t *testing.T) {
	t.Parallel()
	h := CORS([]string{" https://learn.example.com/ ", ""})

	rec := preflight(t, h, "https://learn.example.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://learn.example.com" {
		t.Fatalf("unexpected allow-origin header: got=%q", got)
	}

	rec = preflight(t, h, "http://localhost:4500")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unlisted origin: got=%d want=%d", rec.Code, http.StatusForbidden)
	}
}

func TestCORSWildcard(t *testing.T) {
	t.Parallel()
	rec := preflight(t, CORS([]string{"*"}), "https://anywhere.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, "*")
	}
}
