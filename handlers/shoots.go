package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"shootboard/feed"
	"shootboard/middleware"
	"shootboard/models"
	"shootboard/repository"
)

type ShootStore interface {
	ListUpcomingShoots(ctx context.Context, q repository.ShootQuery) ([]models.FilmShoot, error)
	GetShoot(ctx context.Context, id uint) (*models.FilmShoot, error)
	CreateShoot(ctx context.Context, in repository.CreateShootInput) (*models.FilmShoot, error)
}

type ShootHandler struct {
	store ShootStore
	log   *zap.Logger
}

func NewShootHandler(store ShootStore, log *zap.Logger) *ShootHandler {
	return &ShootHandler{store: store, log: log}
}

// List serves GET /api/shoots?crew_id=&search=&location=&from=. The crew
// filter runs in the query; search and location are applied to the result.
func (h *ShootHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var query repository.ShootQuery
	if raw := strings.TrimSpace(q.Get("crew_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid crew_id")
			return
		}
		query.CrewID = uint(id)
	}
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from")
			return
		}
		query.From = from
	}

	shoots, err := h.store.ListUpcomingShoots(r.Context(), query)
	if err != nil {
		writeStoreError(w, h.log, err, "Shoot not found", "Failed to load shoots")
		return
	}

	filter := feed.Filter{Search: q.Get("search"), Location: q.Get("location")}
	if !filter.IsZero() {
		shoots = filter.Apply(shoots)
	}
	writeJSON(w, h.log, http.StatusOK, shoots)
}

func (h *ShootHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	shoot, err := h.store.GetShoot(r.Context(), id)
	if err != nil {
		writeStoreError(w, h.log, err, "Shoot not found", "Internal server error")
		return
	}
	writeJSON(w, h.log, http.StatusOK, shoot)
}

// Create serves POST /api/shoots: project, shoot and requested crew types are
// written together or not at all.
func (h *ShootHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateShootRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Project.Name) == "" || strings.TrimSpace(req.Project.ProducerCompany) == "" || req.Shoot.StartTime.IsZero() {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	in := repository.CreateShootInput{
		Project: models.FilmProject{
			Name:            req.Project.Name,
			ProducerCompany: req.Project.ProducerCompany,
			Description:     req.Project.Description,
		},
		Shoot: models.FilmShoot{
			Description:   req.Shoot.Description,
			StreetAddress: strings.TrimSpace(req.Shoot.StreetAddress),
			City:          strings.TrimSpace(req.Shoot.City),
			State:         strings.TrimSpace(req.Shoot.State),
			Country:       strings.TrimSpace(req.Shoot.Country),
			Lat:           req.Shoot.Lat,
			Lng:           req.Shoot.Lng,
			StartTime:     req.Shoot.StartTime,
			EndTime:       req.Shoot.EndTime,
			ContactInfo:   optionalString(req.Shoot.ContactInfo),
			RideshareInfo: optionalString(req.Shoot.RideshareInfo),
		},
		CrewIDs: req.CrewIDs,
	}
	if len(req.Shoot.ImageURLs) > 0 {
		in.Shoot.ImageURLs = datatypes.JSONSlice[string](req.Shoot.ImageURLs)
	}
	if claims := middleware.GetClaimsFromContext(r.Context()); claims != nil {
		in.Project.CreatedBy = &claims.AuthID
	}

	shoot, err := h.store.CreateShoot(r.Context(), in)
	if err != nil {
		writeStoreError(w, h.log, err, "Crew type not found", "Failed to create shoot")
		return
	}
	writeJSON(w, h.log, http.StatusCreated, shoot)
}
