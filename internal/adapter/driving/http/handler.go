// Package httphandler implements the JSON REST API driving adapter.
package httphandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dltoledo/pautapanel/internal/application"
	"github.com/dltoledo/pautapanel/internal/domain/model"
	"github.com/dltoledo/pautapanel/internal/domain/port/driven"
)

// maxBodyBytes bounds a dataset replacement submitted through the API.
const maxBodyBytes = 10 << 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	syncSvc *application.SyncService
	gate    *application.AccessGate
	uploads driven.UploadStore
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. uploads may
// be nil when no audit log is configured.
func NewHandler(
	syncSvc *application.SyncService,
	gate *application.AccessGate,
	uploads driven.UploadStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		syncSvc: syncSvc,
		gate:    gate,
		uploads: uploads,
		logger:  logger,
	}
}

// RegisterAPIRoutes registers all API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/hearings", h.ListHearings)
	mux.HandleFunc("PUT /api/v1/table", h.ReplaceTable)
	mux.HandleFunc("GET /api/v1/uploads", h.ListUploads)
}

// Health returns a liveness probe response.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListHearings returns the schedule rows visible to the caller's role,
// optionally filtered by repeated room query parameters.
func (h *Handler) ListHearings(w http.ResponseWriter, r *http.Request) {
	role, ok := h.authorize(w, r, model.Role.SeesBoard)
	if !ok {
		return
	}

	table, err := h.syncSvc.Table(r.Context())
	if err != nil {
		h.logger.Error("failed to load table", "error", err)
		writeError(w, loadErrorStatus(err), err.Error())
		return
	}

	rooms := r.URL.Query()["room"]
	selected := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		selected[room] = true
	}

	resp := make([]HearingResponse, 0, len(table.Rows))
	for _, row := range table.Rows {
		if len(selected) > 0 && !selected[row.Room] {
			continue
		}
		resp = append(resp, toHearingResponse(row, role))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ReplaceTable overwrites the dataset with the raw CSV request body. Admin only.
func (h *Handler) ReplaceTable(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r, model.Role.CanUpload); !ok {
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}
	if len(content) == 0 {
		writeError(w, http.StatusBadRequest, "empty dataset")
		return
	}

	if err := h.syncSvc.ReplaceTable(r.Context(), content); err != nil {
		h.logger.Error("dataset replacement failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUploads returns the most recent audit log entries. Admin only.
func (h *Handler) ListUploads(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r, model.Role.CanUpload); !ok {
		return
	}

	resp := []UploadResponse{}
	if h.uploads != nil {
		records, err := h.uploads.ListRecent(r.Context(), 50)
		if err != nil {
			h.logger.Error("failed to list uploads", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		for _, rec := range records {
			resp = append(resp, toUploadResponse(rec))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// authorize resolves the caller's role from the X-Access-Key header (or the
// key query parameter) and checks it against the permission predicate.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, allowed func(model.Role) bool) (model.Role, bool) {
	key := r.Header.Get("X-Access-Key")
	if key == "" {
		key = r.URL.Query().Get("key")
	}

	role := h.gate.Resolve(key)
	if role == model.RoleNone {
		writeError(w, http.StatusUnauthorized, "access key required")
		return role, false
	}
	if !allowed(role) {
		writeError(w, http.StatusForbidden, "access key does not grant this operation")
		return role, false
	}

	return role, true
}

// loadErrorStatus maps read-path failures to an HTTP status.
func loadErrorStatus(err error) int {
	if errors.Is(err, application.ErrRemoteUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
