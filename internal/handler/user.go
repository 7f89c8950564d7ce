package handler

import (
	"log/slog"
	"net/http"

	"pagesmith/internal/domain/services"
	"pagesmith/internal/httputil"
)

// UserHandler handles credit-balance HTTP requests.
type UserHandler struct {
	userService services.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCredits returns the caller's credit balance.
// GET /api/users/me/credits
func (h *UserHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"credits": user.Credits})
}

// PurchaseCredits grants the credits of a named pack.
// POST /api/users/me/credits/purchase
func (h *UserHandler) PurchaseCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Pack string `json:"pack"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := h.userService.PurchaseCredits(r.Context(), userID, req.Pack)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"credits": balance})
}
