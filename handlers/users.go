package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"shootboard/models"
	"shootboard/repository"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, upd repository.ProfileUpdate) (*models.User, error)
	ListUserCrewTypes(ctx context.Context, userID uint) ([]repository.CrewRef, error)
	AddUserCrewType(ctx context.Context, userID, crewID uint) (*models.UserCrewType, error)
	RemoveUserCrewType(ctx context.Context, userID, crewID uint) error
}

type UserHandler struct {
	store UserStore
	log   *zap.Logger
}

func NewUserHandler(store UserStore, log *zap.Logger) *UserHandler {
	return &UserHandler{store: store, log: log}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "userId")
	if !ok {
		return
	}
	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, h.log, err, "User not found", "Failed to load profile")
		return
	}
	writeJSON(w, h.log, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "userId")
	if !ok {
		return
	}
	var req models.ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.store.UpdateProfile(r.Context(), userID, repository.ProfileUpdate{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		writeStoreError(w, h.log, err, "User not found", "Failed to update profile")
		return
	}
	writeJSON(w, h.log, http.StatusOK, user)
}

// ListCrewTypes returns the user's crew ids as [{"crew_id": n}].
func (h *UserHandler) ListCrewTypes(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "userId")
	if !ok {
		return
	}
	refs, err := h.store.ListUserCrewTypes(r.Context(), userID)
	if err != nil {
		writeStoreError(w, h.log, err, "User not found", "Failed to load user skills")
		return
	}
	writeJSON(w, h.log, http.StatusOK, refs)
}

func (h *UserHandler) AddCrewType(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "userId")
	if !ok {
		return
	}
	var req models.AddCrewTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CrewID == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	link, err := h.store.AddUserCrewType(r.Context(), userID, req.CrewID)
	if err != nil {
		writeStoreError(w, h.log, err, "User or crew type not found", "Failed to add skill")
		return
	}
	writeJSON(w, h.log, http.StatusCreated, link)
}

func (h *UserHandler) RemoveCrewType(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "userId")
	if !ok {
		return
	}
	crewID, ok := urlID(w, r, "crewId")
	if !ok {
		return
	}

	if err := h.store.RemoveUserCrewType(r.Context(), userID, crewID); err != nil {
		writeStoreError(w, h.log, err, "Skill not found", "Failed to remove skill")
		return
	}
	w.WriteHeader(http.StatusOK)
}
