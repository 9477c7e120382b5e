package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/users-api/internal/api/shared"
	"github.com/phrazzld/users-api/internal/platform/logger"
	"github.com/phrazzld/users-api/internal/store"
	"github.com/phrazzld/users-api/internal/validation"
)

// userIDParam is the chi URL parameter holding a user ID.
const userIDParam = "userId"

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userStore store.UserStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// Routes returns a router serving the user resource, to be mounted at
// /users.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateUser)
	r.Get("/", h.ListUsers)
	r.Get("/{"+userIDParam+"}", h.GetUser)
	r.Put("/{"+userIDParam+"}", h.UpdateUser)
	r.Delete("/{"+userIDParam+"}", h.DeleteUser)
	return r
}

// CreateUser handles POST /users requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := shared.ReadBody(w, r)
	if err != nil {
		HandleAPIError(w, r, err, msgCreateFailed)
		return
	}

	patch, err := validation.Validate(body, validation.ModeCreate)
	if err != nil {
		HandleAPIError(w, r, err, msgCreateFailed)
		return
	}

	user, err := h.userStore.Create(r.Context(), patch)
	if err != nil {
		HandleAPIError(w, r, err, msgCreateFailed)
		return
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListUsers handles GET /users requests
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, msgGetFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// GetUser handles GET /users/{userId} requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, userIDParam)
	if err != nil {
		HandleAPIError(w, r, err, msgGetFailed)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, msgGetFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateUser handles PUT /users/{userId} requests. The path ID is checked
// before the body so an unknown user is reported as 404 whatever the
// payload.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, userIDParam)
	if err != nil {
		HandleAPIError(w, r, err, msgUpdateFailed)
		return
	}

	body, err := shared.ReadBody(w, r)
	if err != nil {
		HandleAPIError(w, r, err, msgUpdateFailed)
		return
	}

	patch, err := validation.Validate(body, validation.ModeUpdate)
	if err != nil {
		HandleAPIError(w, r, err, msgUpdateFailed)
		return
	}

	user, err := h.userStore.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, msgUpdateFailed)
		return
	}

	log.Info("user updated", slog.Int64("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /users/{userId} requests
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, userIDParam)
	if err != nil {
		HandleAPIError(w, r, err, msgDeleteFailed)
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, msgDeleteFailed)
		return
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message: fmt.Sprintf(msgDeleteSuccess, id),
	})
}
