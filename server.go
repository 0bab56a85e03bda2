package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// maxBodyBytes bounds an /optimize request body.
const maxBodyBytes = 1 << 20

// NewRouter exposes the optimizer over HTTP.
func NewRouter(cat *Catalog, cfg Config, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"recipes": len(cat.Recipes),
			"areas":   len(cat.Areas),
		})
	})

	r.Post("/optimize", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit)})
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{"read body: " + err.Error()})
			return
		}
		reqLog := log.With(zap.String("requestId", middleware.GetReqID(req.Context())))
		status, resp := handleOptimize(req.Context(), cat, cfg, reqLog, body)
		writeJSON(w, status, resp)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
