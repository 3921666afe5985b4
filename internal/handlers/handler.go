package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"github.com/rs/zerolog"

	"birthdayreminder/internal/config"
	"birthdayreminder/internal/domain/service"
)

type Handler struct {
	services *service.Services
	log      zerolog.Logger
}

func New(services *service.Services, logger zerolog.Logger) *Handler {
	return &Handler{
		services: services,
		log:      logger.With().Str("component", "http").Logger(),
	}
}

// Router builds the chi router with the full API surface.
func (h *Handler) Router(cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator)

			r.Route("/birthdays", func(r chi.Router) {
				r.Get("/", h.ListBirthdays)
				r.Post("/", h.CreateBirthday)
				r.Get("/upcoming", h.UpcomingBirthdays)
				r.Get("/search", h.SearchBirthdays)
				r.Get("/analytics", h.BirthdayAnalytics)
				r.Post("/import", h.ImportBirthdays)
				r.Get("/export/ical", h.ExportICal)
				r.Get("/{id}", h.GetBirthday)
				r.Put("/{id}", h.UpdateBirthday)
				r.Delete("/{id}", h.DeleteBirthday)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Post("/", h.CreateCategory)
				r.Get("/{id}", h.GetCategory)
				r.Put("/{id}", h.UpdateCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})

			r.Route("/wishes", func(r chi.Router) {
				r.Get("/tones", h.WishTones)
				r.Get("/{id}", h.SuggestWishes)
			})

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)

			r.Post("/notifications/trigger", h.TriggerNotifications)
			r.Post("/notifications/test", h.TestNotification)
		})
	})

	return r
}
