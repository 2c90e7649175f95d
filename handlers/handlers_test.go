package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shootboard/config"
	"shootboard/database"
	"shootboard/handlers"
	"shootboard/middleware"
	"shootboard/models"
	"shootboard/repository"
)

type testEnv struct {
	srv   *httptest.Server
	db    *gorm.DB
	store *repository.Store
	auth  *middleware.Auth
}

func setupServer(t *testing.T, authRequired bool) *testEnv {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	store := repository.New(db)
	auth := middleware.NewAuth("test-secret", time.Hour)

	srv := httptest.NewServer(handlers.NewRouter(handlers.RouterConfig{
		Projects:     store,
		CrewTypes:    store,
		Users:        store,
		Shoots:       store,
		Auth:         auth,
		AuthRequired: authRequired,
	}))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &testEnv{srv: srv, db: db, store: store, auth: auth}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatalf("decode %T: %v", v, err)
	}
	return v
}

func expectStatus(t *testing.T, res *http.Response, want int) {
	t.Helper()
	if res.StatusCode != want {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("%s %s: expected %d got %d: %s", res.Request.Method, res.Request.URL.Path, want, res.StatusCode, b)
	}
}

func (e *testEnv) seedCrew(t *testing.T, names ...string) []models.CrewType {
	t.Helper()
	out := make([]models.CrewType, 0, len(names))
	for _, name := range names {
		ct := models.CrewType{Name: name}
		if err := e.db.Create(&ct).Error; err != nil {
			t.Fatalf("seed crew: %v", err)
		}
		out = append(out, ct)
	}
	return out
}

func TestRoot(t *testing.T) {
	env := setupServer(t, false)
	res := env.do(t, http.MethodGet, "/", nil, "")
	expectStatus(t, res, http.StatusOK)
	b, _ := io.ReadAll(res.Body)
	if string(b) != "Backend API is running!" {
		t.Fatalf("unexpected liveness body %q", b)
	}
}

func TestProjects_CreateGetList(t *testing.T) {
	env := setupServer(t, false)

	res := env.do(t, http.MethodPost, "/api/projects", models.CreateProjectRequest{Name: "Dune Walk", ProducerCompany: "Sandworm"}, "")
	expectStatus(t, res, http.StatusCreated)
	created := decode[models.FilmProject](t, res)
	if created.ID == 0 || created.Description != "" {
		t.Fatalf("unexpected created project: %+v", created)
	}

	res = env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", created.ID), nil, "")
	expectStatus(t, res, http.StatusOK)
	got := decode[models.FilmProject](t, res)
	if got.Name != "Dune Walk" {
		t.Fatalf("unexpected project %+v", got)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/projects/9999", nil, ""), http.StatusNotFound)
	expectStatus(t, env.do(t, http.MethodGet, "/api/projects/abc", nil, ""), http.StatusBadRequest)

	for i := 0; i < 4; i++ {
		expectStatus(t, env.do(t, http.MethodPost, "/api/projects", models.CreateProjectRequest{
			Name: fmt.Sprintf("Acme %d", i), ProducerCompany: "Co",
		}, ""), http.StatusCreated)
	}

	res = env.do(t, http.MethodGet, "/api/projects?page=2&pageSize=2", nil, "")
	expectStatus(t, res, http.StatusOK)
	page := decode[repository.Page[models.FilmProject]](t, res)
	if page.Page != 2 || page.PageSize != 2 || page.TotalCount != 5 || page.TotalPages != 3 || len(page.Data) != 2 {
		t.Fatalf("unexpected page envelope: %+v", page)
	}

	res = env.do(t, http.MethodGet, "/api/projects?query=Acme", nil, "")
	expectStatus(t, res, http.StatusOK)
	page = decode[repository.Page[models.FilmProject]](t, res)
	if page.TotalCount != 4 || page.Page != 1 || page.PageSize != 25 {
		t.Fatalf("unexpected search envelope: %+v", page)
	}
}

func TestProjects_Validation(t *testing.T) {
	env := setupServer(t, false)

	for _, body := range []any{
		models.CreateProjectRequest{ProducerCompany: "Co"},
		models.CreateProjectRequest{Name: "Name"},
		nil,
	} {
		res := env.do(t, http.MethodPost, "/api/projects", body, "")
		expectStatus(t, res, http.StatusBadRequest)
		if msg := decode[map[string]string](t, res)["error"]; msg != "Missing required fields" {
			t.Fatalf("unexpected error message %q", msg)
		}
	}

	req, _ := http.NewRequest(http.MethodPost, env.srv.URL+"/api/projects", strings.NewReader("{not json"))
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", res.StatusCode)
	}

	var count int64
	env.db.Model(&models.FilmProject{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows after rejected creates, got %d", count)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/projects?page=abc", nil, ""), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodGet, "/api/projects?pageSize=1.5", nil, ""), http.StatusBadRequest)

	res = env.do(t, http.MethodGet, "/api/projects?page=-3&pageSize=0", nil, "")
	expectStatus(t, res, http.StatusOK)
	page := decode[repository.Page[models.FilmProject]](t, res)
	if page.Page != 1 || page.PageSize != repository.DefaultPageSize {
		t.Fatalf("expected clamped paging, got %+v", page)
	}
}

func TestCrewTypes_SortedByName(t *testing.T) {
	env := setupServer(t, false)
	env.seedCrew(t, "Wardrobe", "Editor", "Gaffer", "Actor")

	res := env.do(t, http.MethodGet, "/api/crew-types", nil, "")
	expectStatus(t, res, http.StatusOK)
	got := decode[[]models.CrewType](t, res)
	want := []string{"Actor", "Editor", "Gaffer", "Wardrobe"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %q got %q", i, name, got[i].Name)
		}
	}
}

func TestUserCrewTypes(t *testing.T) {
	env := setupServer(t, false)
	crew := env.seedCrew(t, "Gaffer", "Grip")
	user := models.User{Username: "dana", PasswordHash: "x"}
	if err := env.store.CreateUser(t.Context(), &user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	base := fmt.Sprintf("/api/users/%d/crew-types", user.ID)

	expectStatus(t, env.do(t, http.MethodPost, base, models.AddCrewTypeRequest{CrewID: crew[0].ID}, ""), http.StatusCreated)
	expectStatus(t, env.do(t, http.MethodPost, base, models.AddCrewTypeRequest{CrewID: crew[0].ID}, ""), http.StatusConflict)
	expectStatus(t, env.do(t, http.MethodPost, base, models.AddCrewTypeRequest{CrewID: crew[1].ID}, ""), http.StatusCreated)
	expectStatus(t, env.do(t, http.MethodPost, base, models.AddCrewTypeRequest{}, ""), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodPost, base, models.AddCrewTypeRequest{CrewID: 999}, ""), http.StatusNotFound)

	res := env.do(t, http.MethodGet, base, nil, "")
	expectStatus(t, res, http.StatusOK)
	refs := decode[[]repository.CrewRef](t, res)
	if len(refs) != 2 {
		t.Fatalf("expected 2 crew refs, got %+v", refs)
	}

	res = env.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, crew[0].ID), nil, "")
	expectStatus(t, res, http.StatusOK)
	if b, _ := io.ReadAll(res.Body); len(b) != 0 {
		t.Fatalf("expected empty body, got %q", b)
	}
	expectStatus(t, env.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, crew[0].ID), nil, ""), http.StatusNotFound)

	res = env.do(t, http.MethodGet, base, nil, "")
	refs = decode[[]repository.CrewRef](t, res)
	if len(refs) != 1 || refs[0].CrewID != crew[1].ID {
		t.Fatalf("unexpected refs after delete: %+v", refs)
	}
}

func TestAuthAndProfile(t *testing.T) {
	env := setupServer(t, false)

	reg := models.RegisterRequest{Username: "sam", Password: "hunter22", FirstName: "Sam", LastName: "Reel"}
	res := env.do(t, http.MethodPost, "/api/auth/register", reg, "")
	expectStatus(t, res, http.StatusCreated)
	auth := decode[models.AuthResponse](t, res)
	if auth.Token == "" || auth.User.ID == 0 || auth.User.Username != "sam" {
		t.Fatalf("unexpected register response: %+v", auth)
	}

	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/register", reg, ""), http.StatusConflict)
	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/register", models.RegisterRequest{Username: "x", Password: "123"}, ""), http.StatusBadRequest)

	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/login", models.LoginRequest{Username: "sam", Password: "wrong"}, ""), http.StatusUnauthorized)
	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/login", models.LoginRequest{Username: "nobody", Password: "hunter22"}, ""), http.StatusUnauthorized)
	res = env.do(t, http.MethodPost, "/api/auth/login", models.LoginRequest{Username: "sam", Password: "hunter22"}, "")
	expectStatus(t, res, http.StatusOK)
	login := decode[models.AuthResponse](t, res)

	expectStatus(t, env.do(t, http.MethodGet, "/api/me", nil, ""), http.StatusUnauthorized)
	res = env.do(t, http.MethodGet, "/api/me", nil, login.Token)
	expectStatus(t, res, http.StatusOK)
	if me := decode[models.User](t, res); me.ID != auth.User.ID {
		t.Fatalf("expected /api/me to return the caller, got %+v", me)
	}

	profilePath := fmt.Sprintf("/api/users/%d", auth.User.ID)
	res = env.do(t, http.MethodPut, profilePath, models.ProfileRequest{Username: "sam_r", Bio: "Camera op"}, login.Token)
	expectStatus(t, res, http.StatusOK)
	if p := decode[models.User](t, res); p.Username != "sam_r" || p.Bio != "Camera op" || p.FirstName != "" {
		t.Fatalf("unexpected profile after update: %+v", p)
	}
	expectStatus(t, env.do(t, http.MethodPut, profilePath, models.ProfileRequest{}, ""), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodGet, "/api/users/4242", nil, ""), http.StatusNotFound)
}

func TestAuthRequired_GuardsWrites(t *testing.T) {
	env := setupServer(t, true)

	body := models.CreateProjectRequest{Name: "Locked", ProducerCompany: "Co"}
	expectStatus(t, env.do(t, http.MethodPost, "/api/projects", body, ""), http.StatusUnauthorized)
	expectStatus(t, env.do(t, http.MethodGet, "/api/projects", nil, ""), http.StatusOK)

	user := models.User{Username: "owner", PasswordHash: "x"}
	if err := env.store.CreateUser(t.Context(), &user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := env.auth.GenerateToken(&user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	res := env.do(t, http.MethodPost, "/api/projects", body, token)
	expectStatus(t, res, http.StatusCreated)
	p := decode[models.FilmProject](t, res)
	if p.CreatedBy == nil || *p.CreatedBy != user.AuthID {
		t.Fatalf("expected created_by to be the caller's auth id, got %v", p.CreatedBy)
	}
}

func TestShoots_CreateAndFeed(t *testing.T) {
	env := setupServer(t, false)
	crew := env.seedCrew(t, "Gaffer", "Grip", "Editor")
	now := time.Now().UTC()

	create := func(name, city string, start time.Time, crewIDs ...uint) models.FilmShoot {
		t.Helper()
		res := env.do(t, http.MethodPost, "/api/shoots", models.CreateShootRequest{
			Project: models.CreateProjectRequest{Name: name, ProducerCompany: "Co"},
			Shoot: models.ShootDetails{
				Description: name + " day one",
				City:        city,
				State:       "CA",
				StartTime:   start,
				ContactInfo: "  ",
				ImageURLs:   []string{"https://img.example/1.jpg"},
			},
			CrewIDs: crewIDs,
		}, "")
		expectStatus(t, res, http.StatusCreated)
		return decode[models.FilmShoot](t, res)
	}

	pilot := create("Pilot", "Los Angeles", now.Add(24*time.Hour), crew[0].ID, crew[1].ID)
	if len(pilot.RequestedCrewTypes) != 2 || pilot.Project == nil || pilot.ContactInfo != nil {
		t.Fatalf("unexpected created shoot: %+v", pilot)
	}
	if len(pilot.ImageURLs) != 1 {
		t.Fatalf("expected image urls to round-trip, got %v", pilot.ImageURLs)
	}
	var rows []models.ShootCrewTypeRequested
	env.db.Where("shoot_id = ?", pilot.ID).Find(&rows)
	if len(rows) != 2 {
		t.Fatalf("expected two requested rows, got %d", len(rows))
	}
	create("Finale", "Oakland", now.Add(48*time.Hour), crew[2].ID)
	create("Wrapped", "Fresno", now.Add(-48*time.Hour), crew[0].ID)

	res := env.do(t, http.MethodGet, "/api/shoots", nil, "")
	expectStatus(t, res, http.StatusOK)
	shoots := decode[[]models.FilmShoot](t, res)
	if len(shoots) != 2 || shoots[0].ID != pilot.ID {
		t.Fatalf("expected two upcoming shoots starting with pilot, got %d", len(shoots))
	}

	res = env.do(t, http.MethodGet, fmt.Sprintf("/api/shoots?crew_id=%d", crew[2].ID), nil, "")
	shoots = decode[[]models.FilmShoot](t, res)
	if len(shoots) != 1 || shoots[0].ProjectName() != "Finale" {
		t.Fatalf("crew filter mismatch: %d shoots", len(shoots))
	}

	res = env.do(t, http.MethodGet, "/api/shoots?search=PILOT&location=angeles", nil, "")
	shoots = decode[[]models.FilmShoot](t, res)
	if len(shoots) != 1 || shoots[0].ID != pilot.ID {
		t.Fatalf("search filter mismatch: %d shoots", len(shoots))
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/shoots?crew_id=x", nil, ""), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodGet, fmt.Sprintf("/api/shoots/%d", pilot.ID), nil, ""), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/api/shoots/777", nil, ""), http.StatusNotFound)
}

func TestShoots_CreateIsAtomic(t *testing.T) {
	env := setupServer(t, false)
	crew := env.seedCrew(t, "Gaffer")

	res := env.do(t, http.MethodPost, "/api/shoots", models.CreateShootRequest{
		Project: models.CreateProjectRequest{Name: "Ghost", ProducerCompany: "Co"},
		Shoot:   models.ShootDetails{Description: "x", StartTime: time.Now().Add(time.Hour)},
		CrewIDs: []uint{crew[0].ID, 404},
	}, "")
	expectStatus(t, res, http.StatusBadRequest)

	var projects int64
	env.db.Model(&models.FilmProject{}).Count(&projects)
	if projects != 0 {
		t.Fatalf("failed creation left %d orphan projects", projects)
	}

	expectStatus(t, env.do(t, http.MethodPost, "/api/shoots", models.CreateShootRequest{
		Project: models.CreateProjectRequest{Name: "NoTime", ProducerCompany: "Co"},
	}, ""), http.StatusBadRequest)
}

func TestStaleToken_FallsBackToAnonymous(t *testing.T) {
	env := setupServer(t, true)

	reg := models.RegisterRequest{Username: "lee", Password: "boompole"}
	expectStatus(t, env.do(t, http.MethodPost, "/api/auth/register", reg, ""), http.StatusCreated)
	user, err := env.store.GetUserByUsername(t.Context(), "lee")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	stale, err := middleware.NewAuth("test-secret", -time.Minute).GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/", nil, stale), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/api/crew-types", nil, stale), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/api/me", nil, stale), http.StatusUnauthorized)
	expectStatus(t, env.do(t, http.MethodPost, "/api/projects", models.CreateProjectRequest{Name: "N", ProducerCompany: "C"}, stale), http.StatusUnauthorized)

	res := env.do(t, http.MethodPost, "/api/auth/login", models.LoginRequest{Username: "lee", Password: "boompole"}, stale)
	expectStatus(t, res, http.StatusOK)
	fresh := decode[models.AuthResponse](t, res)
	expectStatus(t, env.do(t, http.MethodGet, "/api/me", nil, fresh.Token), http.StatusOK)
}

func TestAuthRequired_UserWritesLimitedToSelf(t *testing.T) {
	env := setupServer(t, true)
	crew := env.seedCrew(t, "Gaffer")

	register := func(username string) models.AuthResponse {
		t.Helper()
		res := env.do(t, http.MethodPost, "/api/auth/register", models.RegisterRequest{Username: username, Password: "secret99"}, "")
		expectStatus(t, res, http.StatusCreated)
		return decode[models.AuthResponse](t, res)
	}
	owner := register("owner")
	other := register("other")

	ownerPath := fmt.Sprintf("/api/users/%d", owner.User.ID)
	skill := models.AddCrewTypeRequest{CrewID: crew[0].ID}

	expectStatus(t, env.do(t, http.MethodPut, ownerPath, models.ProfileRequest{Username: "hijacked"}, other.Token), http.StatusForbidden)
	expectStatus(t, env.do(t, http.MethodPost, ownerPath+"/crew-types", skill, other.Token), http.StatusForbidden)
	expectStatus(t, env.do(t, http.MethodPost, ownerPath+"/crew-types", skill, owner.Token), http.StatusCreated)
	expectStatus(t, env.do(t, http.MethodDelete, fmt.Sprintf("%s/crew-types/%d", ownerPath, crew[0].ID), nil, other.Token), http.StatusForbidden)

	u, err := env.store.GetUser(t.Context(), owner.User.ID)
	if err != nil || u.Username != "owner" {
		t.Fatalf("owner profile changed by another user: %v %+v", err, u)
	}
	refs, err := env.store.ListUserCrewTypes(t.Context(), owner.User.ID)
	if err != nil || len(refs) != 1 {
		t.Fatalf("expected owner's skill to survive, got %v %+v", err, refs)
	}

	expectStatus(t, env.do(t, http.MethodPut, ownerPath, models.ProfileRequest{Username: "owner2"}, owner.Token), http.StatusOK)
}
