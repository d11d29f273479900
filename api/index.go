// Package handler is the serverless entry point. The host platform owns the
// socket and calls Handler for every request.
package handler

import (
	"net/http"
	"sync"

	"github.com/yungbote/adtech-learning/internal/app"
)

var (
	once    sync.Once
	site    *app.App
	initErr error
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		site, initErr = app.New()
	})
	if initErr != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	site.Handler().ServeHTTP(w, r)
}
