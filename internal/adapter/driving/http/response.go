package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dltoledo/pautapanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HearingResponse is the JSON representation of one schedule row. Phone and
// notification state are omitted unless the caller's role may see them.
type HearingResponse struct {
	Day           string `json:"day"`
	Timestamp     string `json:"timestamp"`
	Room          string `json:"room"`
	ProcessNumber string `json:"process_number"`
	PartyOrType   string `json:"party_or_type"`
	Link          string `json:"link"`
	Dimension     string `json:"dimension"`
	Summary       string `json:"summary"`
	Phone         string `json:"phone,omitempty"`
	Notification  string `json:"notification,omitempty"`
}

// UploadResponse is the JSON representation of one audit log entry.
type UploadResponse struct {
	SizeBytes  int64  `json:"size_bytes"`
	SHA        string `json:"sha"`
	Message    string `json:"message"`
	UploadedAt string `json:"uploaded_at"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toHearingResponse converts a domain row, suppressing party contact data
// for roles that may not see it.
func toHearingResponse(row model.Hearing, role model.Role) HearingResponse {
	resp := HearingResponse{
		Day:           row.Day,
		Timestamp:     row.Timestamp,
		Room:          row.Room,
		ProcessNumber: row.ProcessNumber,
		PartyOrType:   row.PartyOrType,
		Link:          row.Link,
		Dimension:     row.Dimension,
		Summary:       row.Summary,
	}

	if role.SeesParties() {
		resp.Phone = row.Phone
		resp.Notification = row.Notification
	}

	return resp
}

// toUploadResponse converts a domain audit entry to its JSON representation.
func toUploadResponse(rec model.UploadRecord) UploadResponse {
	return UploadResponse{
		SizeBytes:  rec.SizeBytes,
		SHA:        rec.NewSHA,
		Message:    rec.Message,
		UploadedAt: rec.UploadedAt.UTC().Format(time.RFC3339),
	}
}
