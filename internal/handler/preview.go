package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"pagesmith/internal/domain/services"
	"pagesmith/internal/httputil"
	"pagesmith/internal/service/preview"
)

// PreviewHandler serves rendered documents and carries the live-editing
// message exchange between the host UI and the sandboxed page.
type PreviewHandler struct {
	projectService services.ProjectService
	sessions       *preview.Manager
	logger         *slog.Logger
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(projectService services.ProjectService, sessions *preview.Manager, logger *slog.Logger) *PreviewHandler {
	return &PreviewHandler{
		projectService: projectService,
		sessions:       sessions,
		logger:         logger,
	}
}

// GetPage serves the project's current document as HTML. With ?edit=1 the
// instrumentation script is injected; otherwise the stored document is
// returned untouched.
// GET /api/projects/{id}/page
func (h *PreviewHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	var doc string
	if project.CurrentCode != nil {
		doc = *project.CurrentCode
	}
	if doc == "" {
		// Still generating; the client polls until a document shows up.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	editable := r.URL.Query().Get("edit") == "1"
	writeHTML(w, preview.Instrument(doc, editable))
}

// PublishedSite serves a published project's page to anyone. Never
// instrumented.
// GET /sites/{id}
func (h *PreviewHandler) PublishedSite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	code, err := h.projectService.GetPublishedCode(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeHTML(w, code)
}

// PostSandboxMessage relays a message captured from the rendered document
// into the host session. The payload is untrusted and validated against the
// closed schema; unknown or malformed shapes return 400 and change nothing.
// POST /api/projects/{id}/editor/messages
func (h *PreviewHandler) PostSandboxMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	if _, err := h.projectService.GetProject(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64<<10))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := h.sessions.Get(id)
	msg, err := session.HandleSandboxMessage(body)
	if err != nil {
		h.logger.Debug("rejected sandbox message", "project_id", id, "error", err)
		httputil.RespondError(w, http.StatusBadRequest, "invalid editor message")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"type":     msg.Type,
		"selected": session.Selected(),
	})
}

// PostUpdate applies a sparse element patch to the host's shadow copy and
// returns the UPDATE_ELEMENT message the client forwards into the iframe.
// POST /api/projects/{id}/editor/updates
func (h *PreviewHandler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	if _, err := h.projectService.GetProject(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	var update preview.ElementUpdate
	if err := httputil.ParseJSON(w, r, &update); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := h.sessions.Get(id)
	outbound, err := session.ApplyUpdate(&update)
	if err != nil {
		if errors.Is(err, preview.ErrNoSelection) {
			httputil.RespondError(w, http.StatusBadRequest, "no element selected")
			return
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"forward":  outbound,
		"selected": session.Selected(),
	})
}

// CloseEditor drops the editing session and returns the
// CLEAR_SELECTION_REQUEST to forward so the sandbox removes its highlight.
// DELETE /api/projects/{id}/editor
func (h *PreviewHandler) CloseEditor(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	if _, err := h.projectService.GetProject(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	outbound := h.sessions.Get(id).Close()
	h.sessions.Drop(id)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"forward": outbound})
}

func writeHTML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc)
}
