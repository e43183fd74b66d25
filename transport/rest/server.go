package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-lobby/pkg/handlers"
)

// Start serves the static web client at the root path and a /ping health
// endpoint.
func Start(port, staticDir string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlers.PingHandler)
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
