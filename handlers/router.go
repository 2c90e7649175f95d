package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"shootboard/middleware"
)

type RouterConfig struct {
	Projects  ProjectStore
	CrewTypes CrewTypeStore
	Users     UserStore
	Shoots    ShootStore
	Auth      *middleware.Auth
	// AuthRequired puts every mutating route behind middleware.RequireAuth
	// and limits writes under /api/users/{userId} to that user.
	AuthRequired   bool
	AllowedOrigins []string
	Logger         *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	projectHandler := NewProjectHandler(cfg.Projects, log.Named("projects"))
	crewTypeHandler := NewCrewTypeHandler(cfg.CrewTypes, log.Named("crew_types"))
	userHandler := NewUserHandler(cfg.Users, log.Named("users"))
	shootHandler := NewShootHandler(cfg.Shoots, log.Named("shoots"))
	authHandler := NewAuthHandler(cfg.Users, cfg.Auth, log.Named("auth"))

	guard := func(next http.Handler) http.Handler { return next }
	selfGuard := guard
	if cfg.AuthRequired {
		guard = middleware.RequireAuth
		selfGuard = func(next http.Handler) http.Handler {
			return middleware.RequireAuth(requireSelf(next))
		}
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(log.Named("http")))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(cfg.Auth.Authenticate)

	router.Get("/", Root)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.With(middleware.RequireAuth).Get("/me", authHandler.Me)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Get("/{id}", projectHandler.Get)
			r.With(guard).Post("/", projectHandler.Create)
		})

		r.Get("/crew-types", crewTypeHandler.List)

		r.Route("/shoots", func(r chi.Router) {
			r.Get("/", shootHandler.List)
			r.Get("/{id}", shootHandler.Get)
			r.With(guard).Post("/", shootHandler.Create)
		})

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/", userHandler.GetProfile)
			r.With(selfGuard).Put("/", userHandler.UpdateProfile)
			r.Get("/crew-types", userHandler.ListCrewTypes)
			r.With(selfGuard).Post("/crew-types", userHandler.AddCrewType)
			r.With(selfGuard).Delete("/crew-types/{crewId}", userHandler.RemoveCrewType)
		})
	})

	return router
}

// requireSelf rejects writes to a user other than the authenticated caller.
func requireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := urlID(w, r, "userId")
		if !ok {
			return
		}
		if claims := middleware.GetClaimsFromContext(r.Context()); claims == nil || claims.UserID != userID {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
