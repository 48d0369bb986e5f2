package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/storage"
)

// newHandler serves the landing page and read-only access to saved records.
func newHandler(sshHost string, store storage.Backend, logger *log.Logger) http.Handler {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	mux.HandleFunc("GET /records", func(w http.ResponseWriter, r *http.Request) {
		keys, err := store.Keys()
		if err != nil {
			logger.Error("list records", "err", err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		if keys == nil {
			keys = []string{}
		}
		writeJSON(w, keys, logger)
	})

	mux.HandleFunc("GET /records/{key}", func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		rec, err := store.Load(key)
		switch {
		case errors.Is(err, game.ErrNoRecord):
			http.NotFound(w, r)
			return
		case err != nil:
			logger.Error("load record", "key", key, "err", err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rec, logger)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any, logger *log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", "err", err)
	}
}
