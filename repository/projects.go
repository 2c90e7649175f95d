package repository

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shootboard/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100
)

type ProjectQuery struct {
	Page     int
	PageSize int
	// Query is matched as a substring of name, producer company or description.
	Query string
}

// Normalize clamps paging into range: page >= 1, 1 <= pageSize <= MaxPageSize.
func (q ProjectQuery) Normalize() ProjectQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Query = strings.TrimSpace(q.Query)
	return q
}

type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

func totalPages(count int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((count + int64(size) - 1) / int64(size))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a LIKE pattern matching query as a literal,
// lowercased substring.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

// projectSearch matches case-insensitively on every driver: columns are
// lowered in SQL and the pattern in Go.
func projectSearch(query string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if query == "" {
			return db
		}
		like := containsPattern(query)
		return db.Where(
			`LOWER(project_name) LIKE ? ESCAPE '\' OR LOWER(producer_company) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}
}

// ListProjects returns one page ordered newest first. The page and the total
// count are read concurrently.
func (s *Store) ListProjects(ctx context.Context, q ProjectQuery) (*Page[models.FilmProject], error) {
	q = q.Normalize()

	projects := []models.FilmProject{}
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Scopes(projectSearch(q.Query)).
			Order("project_id DESC").
			Offset((q.Page - 1) * q.PageSize).
			Limit(q.PageSize).
			Find(&projects).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Model(&models.FilmProject{}).
			Scopes(projectSearch(q.Query)).
			Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, translate(err, "list projects")
	}

	return &Page[models.FilmProject]{
		Data:       projects,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalCount: total,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

func (s *Store) GetProject(ctx context.Context, id uint) (*models.FilmProject, error) {
	var project models.FilmProject
	err := s.db.WithContext(ctx).
		Preload("Shoots", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		First(&project, id).Error
	if err != nil {
		return nil, translate(err, "get project")
	}
	return &project, nil
}

func validateProject(p *models.FilmProject) error {
	p.Name = strings.TrimSpace(p.Name)
	p.ProducerCompany = strings.TrimSpace(p.ProducerCompany)
	if p.Name == "" || p.ProducerCompany == "" {
		return validationf("project_name and producer_company are required")
	}
	return nil
}

// CreateProject inserts p and fills in its generated id.
func (s *Store) CreateProject(ctx context.Context, p *models.FilmProject) error {
	if err := validateProject(p); err != nil {
		return err
	}
	p.ID = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return translate(err, "create project")
	}
	return nil
}
