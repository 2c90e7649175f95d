package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"shootboard/models"
)

type CrewTypeStore interface {
	ListCrewTypes(ctx context.Context) ([]models.CrewType, error)
}

type CrewTypeHandler struct {
	store CrewTypeStore
	log   *zap.Logger
}

func NewCrewTypeHandler(store CrewTypeStore, log *zap.Logger) *CrewTypeHandler {
	return &CrewTypeHandler{store: store, log: log}
}

func (h *CrewTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	crewTypes, err := h.store.ListCrewTypes(r.Context())
	if err != nil {
		writeStoreError(w, h.log, err, "Crew types not found", "Failed to load crew types")
		return
	}
	writeJSON(w, h.log, http.StatusOK, crewTypes)
}
