package daemon

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/history"
	"go.klb.dev/cliplog/internal/service"
)

// NewHandler returns the JSON HTTP surface served next to gRPC:
//
//	GET  /v1/history                 → api.ListResponse
//	POST /v1/history/{index}/recall  → api.RecallResponse
//	GET  /v1/status                  → api.StatusResponse
func NewHandler(svc *service.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/history", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, api.ListResponse{Entries: svc.Entries()})
	})

	mux.HandleFunc("POST /v1/history/{index}/recall", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "index must be an integer")
			return
		}
		e, err := svc.RecallIndex(r.Context(), index)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, api.RecallResponse{Entry: e})
		case errors.Is(err, history.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, clip.ErrWrite):
			slog.Error("recall failed", "index", index, "err", err)
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	})

	mux.HandleFunc("GET /v1/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, svc.Info())
	})

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("http: encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
