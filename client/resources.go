package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"shootboard/models"
)

type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

type ProjectParams struct {
	Page     int
	PageSize int
	Query    string
}

func (c *Client) ListProjects(ctx context.Context, p ProjectParams) (*Page[models.FilmProject], error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	var page Page[models.FilmProject]
	if err := c.do(ctx, http.MethodGet, "/api/projects", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProject(ctx context.Context, projectID uint) (*models.FilmProject, error) {
	var project models.FilmProject
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+id(projectID), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.FilmProject, error) {
	var project models.FilmProject
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) ListCrewTypes(ctx context.Context) ([]models.CrewType, error) {
	var crewTypes []models.CrewType
	if err := c.do(ctx, http.MethodGet, "/api/crew-types", nil, nil, &crewTypes); err != nil {
		return nil, err
	}
	return crewTypes, nil
}

// ListUserCrewTypes returns the crew ids associated with the user.
func (c *Client) ListUserCrewTypes(ctx context.Context, userID uint) ([]uint, error) {
	var refs []struct {
		CrewID uint `json:"crew_id"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id(userID)+"/crew-types", nil, nil, &refs); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.CrewID)
	}
	return ids, nil
}

func (c *Client) AddUserCrewType(ctx context.Context, userID, crewID uint) error {
	return c.do(ctx, http.MethodPost, "/api/users/"+id(userID)+"/crew-types", nil, models.AddCrewTypeRequest{CrewID: crewID}, nil)
}

func (c *Client) RemoveUserCrewType(ctx context.Context, userID, crewID uint) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id(userID)+"/crew-types/"+id(crewID), nil, nil, nil)
}

type ShootParams struct {
	CrewID   uint
	Search   string
	Location string
}

func (c *Client) ListShoots(ctx context.Context, p ShootParams) ([]models.FilmShoot, error) {
	q := url.Values{}
	if p.CrewID != 0 {
		q.Set("crew_id", id(p.CrewID))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Location != "" {
		q.Set("location", p.Location)
	}
	var shoots []models.FilmShoot
	if err := c.do(ctx, http.MethodGet, "/api/shoots", q, nil, &shoots); err != nil {
		return nil, err
	}
	return shoots, nil
}

func (c *Client) GetShoot(ctx context.Context, shootID uint) (*models.FilmShoot, error) {
	var shoot models.FilmShoot
	if err := c.do(ctx, http.MethodGet, "/api/shoots/"+id(shootID), nil, nil, &shoot); err != nil {
		return nil, err
	}
	return &shoot, nil
}

func (c *Client) CreateShoot(ctx context.Context, req models.CreateShootRequest) (*models.FilmShoot, error) {
	var shoot models.FilmShoot
	if err := c.do(ctx, http.MethodPost, "/api/shoots", nil, req, &shoot); err != nil {
		return nil, err
	}
	return &shoot, nil
}

// Register creates an account and keeps the returned token for later calls.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res.User, nil
}

// Login signs in and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, models.LoginRequest{Username: username, Password: password}, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id(userID), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID uint, req models.ProfileRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+id(userID), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
