package handler

import (
	"log/slog"
	"net/http"

	"pagesmith/internal/domain/services"
	"pagesmith/internal/httputil"
)

// RevisionHandler handles revision and rollback HTTP requests.
type RevisionHandler struct {
	revisionService services.RevisionService
	rollbackService services.RollbackService
	logger          *slog.Logger
}

// NewRevisionHandler creates a new revision handler.
func NewRevisionHandler(
	revisionService services.RevisionService,
	rollbackService services.RollbackService,
	logger *slog.Logger,
) *RevisionHandler {
	return &RevisionHandler{
		revisionService: revisionService,
		rollbackService: rollbackService,
		logger:          logger,
	}
}

// RequestRevision applies a natural-language change to the project.
// POST /api/projects/{id}/revisions
func (h *RevisionHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	versionID, err := h.revisionService.RequestRevision(r.Context(), id, userID, req.Message)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message":    "changes made successfully",
		"version_id": versionID,
	})
}

// Rollback repoints the project at a prior version.
// POST /api/projects/{id}/rollback/{versionId}
func (h *RevisionHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	versionID := r.PathValue("versionId")
	if id == "" || versionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID and version ID are required")
		return
	}

	if err := h.rollbackService.Rollback(r.Context(), id, userID, versionID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "version rolled back"})
}
