package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shootboard/middleware"
	"shootboard/models"
	"shootboard/repository"
)

type ProjectStore interface {
	ListProjects(ctx context.Context, q repository.ProjectQuery) (*repository.Page[models.FilmProject], error)
	GetProject(ctx context.Context, id uint) (*models.FilmProject, error)
	CreateProject(ctx context.Context, p *models.FilmProject) error
}

type ProjectHandler struct {
	store ProjectStore
	log   *zap.Logger
}

func NewProjectHandler(store ProjectStore, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{store: store, log: log}
}

// List serves GET /api/projects?page=&pageSize=&query=.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page", repository.DefaultPage)
	if !ok {
		return
	}
	pageSize, ok := queryInt(w, r, "pageSize", repository.DefaultPageSize)
	if !ok {
		return
	}

	res, err := h.store.ListProjects(r.Context(), repository.ProjectQuery{
		Page:     page,
		PageSize: pageSize,
		Query:    r.URL.Query().Get("query"),
	})
	if err != nil {
		writeStoreError(w, h.log, err, "Project not found", "Failed to fetch projects")
		return
	}
	writeJSON(w, h.log, http.StatusOK, res)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		writeStoreError(w, h.log, err, "Project not found", "Internal server error")
		return
	}
	writeJSON(w, h.log, http.StatusOK, project)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ProducerCompany) == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	project := models.FilmProject{
		Name:            req.Name,
		ProducerCompany: req.ProducerCompany,
		Description:     req.Description,
	}
	if claims := middleware.GetClaimsFromContext(r.Context()); claims != nil {
		project.CreatedBy = &claims.AuthID
	}

	if err := h.store.CreateProject(r.Context(), &project); err != nil {
		writeStoreError(w, h.log, err, "Project not found", "Internal server error")
		return
	}
	writeJSON(w, h.log, http.StatusCreated, project)
}
