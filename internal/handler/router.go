package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterConfig collects everything the router needs.
type RouterConfig struct {
	Events        *EventHandler
	Auth          *AuthHandler
	Announcements *AnnouncementHandler
	Sessions      *scs.SessionManager
	SignInLimiter *IPRateLimiter
	Log           *zap.Logger

	// AllowedOrigins are the dashboard origins, as full URLs.
	AllowedOrigins []string
	CSRFKey        []byte

	// TrustProxy takes client addresses from forwarding headers.
	TrustProxy bool
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(Logger(cfg.Log))
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(CSRF(cfg.CSRFKey, cfg.AllowedOrigins, cfg.Log))

	r.Get("/health", HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(cfg.Sessions.LoadAndSave)
		r.Use(Viewer(cfg.Sessions))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.Auth.SignUp)
			r.With(cfg.SignInLimiter.Middleware).Post("/signin", cfg.Auth.SignIn)
			r.Post("/signout", cfg.Auth.SignOut)
			r.Get("/session", cfg.Auth.Session)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", cfg.Events.ListEvents)
			r.Get("/{id}", cfg.Events.GetEvent)
			r.With(RequireViewer).Post("/", cfg.Events.CreateEvent)
			r.With(RequireViewer).Post("/{id}/register", cfg.Events.Register)
			r.With(RequireViewer).Delete("/{id}/register", cfg.Events.Unregister)
		})

		r.Get("/dashboard", cfg.Events.Dashboard)
		r.Get("/calendar", cfg.Events.Calendar)

		r.Route("/me", func(r chi.Router) {
			r.Use(RequireViewer)
			r.Get("/", cfg.Auth.Me)
			r.Get("/events", cfg.Events.MyEvents)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", cfg.Announcements.List)
			r.With(RequireViewer).Post("/", cfg.Announcements.Create)
			r.With(RequireViewer).Delete("/{id}", cfg.Announcements.Delete)
		})
	})

	return r
}
