// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dltoledo/pautapanel/internal/adapter/driving/web/templates"
	"github.com/dltoledo/pautapanel/internal/application"
	"github.com/dltoledo/pautapanel/internal/domain/model"
	"github.com/dltoledo/pautapanel/internal/domain/port/driven"
)

const (
	keyCookieName = "access_key"

	// maxUploadBytes bounds an uploaded dataset. The real file is a few
	// hundred KB; 10MB leaves generous headroom.
	maxUploadBytes = 10 << 20

	auditListLimit = 20
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
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

// Home renders the page for the current role: the key form when no key was
// entered, the admin upload panel, or the schedule board.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	role := h.gate.Resolve(h.currentKey(r))

	switch {
	case role == model.RoleNone:
		h.render(w, r, "Painel de Audiências", templates.KeyForm(false))
	case role == model.RoleDenied:
		h.render(w, r, "Painel de Audiências", templates.KeyForm(true))
	case role.CanUpload():
		h.adminPanel(w, r)
	default:
		h.board(w, r, role)
	}
}

// EnterKey stores the submitted access key in a session cookie and redirects
// back to the home page, where the role is resolved. The entry attempt
// invalidates the table cache so the new role starts from fresh data.
func (h *Handler) EnterKey(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("key")
	h.gate.Enter(key)

	http.SetCookie(w, &http.Cookie{
		Name:     keyCookieName,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the access key cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   keyCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Upload replaces the dataset with the uploaded file. Admin only.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	role := h.gate.Resolve(h.currentKey(r))
	if !role.CanUpload() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.render(w, r, "Administração", templates.ErrorPage("Nenhum arquivo recebido."))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.render(w, r, "Administração", templates.ErrorPage("Falha ao ler o arquivo enviado."))
		return
	}

	if err := h.syncSvc.ReplaceTable(r.Context(), content); err != nil {
		h.logger.Error("dataset replacement failed", "error", err)
		h.render(w, r, "Administração", templates.ErrorPage("Erro ao enviar arquivo: "+err.Error()))
		return
	}

	http.Redirect(w, r, "/?uploaded=1", http.StatusSeeOther)
}

func (h *Handler) adminPanel(w http.ResponseWriter, r *http.Request) {
	var records []model.UploadRecord
	if h.uploads != nil {
		var err error
		records, err = h.uploads.ListRecent(r.Context(), auditListLimit)
		if err != nil {
			// The audit list is informational; the panel still works without it.
			h.logger.Warn("listing upload audit entries failed", "error", err)
		}
	}

	admin := toAdminViewModel(records, r.URL.Query().Get("uploaded") == "1")
	token := csrfToken(w, r)

	h.render(w, r, "Administração da Base", templates.Admin(admin, token))
}

func (h *Handler) board(w http.ResponseWriter, r *http.Request, role model.Role) {
	table, err := h.syncSvc.Table(r.Context())
	if err != nil {
		h.logger.Error("loading table failed", "error", err)
		h.render(w, r, "Painel de Audiências", templates.ErrorPage(loadErrorMessage(err)))
		return
	}

	board := toBoardViewModel(table, role, r.URL.Query()["room"])
	h.render(w, r, "Painel de Audiências", templates.Board(board))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, title string, content templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	layout := templates.Layout(title, content)
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) currentKey(r *http.Request) string {
	cookie, err := r.Cookie(keyCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// loadErrorMessage maps read-path failures to the user-visible message.
func loadErrorMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrRemoteUnavailable):
		return "Erro ao carregar a base de audiências."
	case errors.Is(err, application.ErrUnparsableTable):
		return "A base de audiências não pôde ser interpretada."
	case errors.Is(err, application.ErrMalformedTimestamp):
		return "A base de audiências contém uma data/horário inválido."
	default:
		return "Erro inesperado ao carregar a base."
	}
}
