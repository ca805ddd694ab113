package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server for the intake API. The endpoint is public, so
// slow-client limits are tight: submissions are small JSON bodies and the
// handlers do no long-running work beyond the synchronous email sends.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
