package service

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"beer_machine/internal/app"
	"beer_machine/internal/config"
	"beer_machine/internal/pkg/auth"
	"beer_machine/internal/pkg/logger"
)

// Service encapsulates the HTTP server configuration, including the
// application's business logic, HTTP handlers, the server's run address, and
// a logger for event and error logging.
type Service struct {
	handlers   *handlers
	app        *app.App
	runAddress string
	log        *logger.Logger
}

// NewService creates and initializes a new Service instance.
func NewService(app *app.App, runAddress string, l *logger.Logger) *Service {
	handlers := newHandlers(app, l)
	return &Service{handlers: handlers, app: app, runAddress: runAddress, log: l}
}

// RunAddress returns the address the HTTP server should listen on.
func (service *Service) RunAddress() string {
	return service.runAddress
}

// NewRouter sets up and returns a new chi.Router instance with the necessary
// middleware and routes. Routes split into four rings: public, any
// authenticated account, staff (admins and sellers), and admins only.
func (service *Service) NewRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(service.log.WithLogging())
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.RPOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Post("/api/auth/login", service.handlers.loginHandler)
	router.Post("/api/passkeys/login-options", service.handlers.passkeyLoginOptionsHandler)
	router.Post("/api/passkeys/login-verify", service.handlers.passkeyLoginVerifyHandler)
	router.Get("/api/drinks", service.handlers.listDrinksHandler)
	router.Get("/api/drinks/{drinkID}", service.handlers.getDrinkHandler)

	router.Route("/", func(r chi.Router) {
		r.Use(auth.CheckJWTMiddleware())

		r.Get("/api/auth/me", service.handlers.currentUserHandler)
		r.Post("/api/auth/logout", service.handlers.logoutHandler)
		r.Get("/api/leaderboard/monthly", service.handlers.leaderboardHandler)
		r.Get("/api/leaderboard/rank/{userID}", service.handlers.userRankHandler)

		r.Route("/api", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireStaff())
				r.Post("/sales/sell", service.handlers.sellHandler)
				r.Delete("/sales/undo/{transactionID}", service.handlers.undoHandler)
				r.Post("/passkeys/register-options", service.handlers.passkeyRegisterOptionsHandler)
				r.Post("/passkeys/register-verify", service.handlers.passkeyRegisterVerifyHandler)
				r.Get("/passkeys", service.handlers.listPasskeysHandler)
				r.Delete("/passkeys/{passkeyID}", service.handlers.deletePasskeyHandler)
				r.Put("/profile", service.handlers.updateProfileHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin())
				r.Get("/users", service.handlers.listUsersHandler)
				r.Post("/users", service.handlers.createUserHandler)
				r.Get("/users/export-csv", service.handlers.exportUsersCSVHandler)
				r.Post("/users/import-csv", service.handlers.importUsersCSVHandler)
				r.Get("/users/{userID}", service.handlers.getUserHandler)
				r.Put("/users/{userID}", service.handlers.updateUserHandler)
				r.Post("/users/{userID}/add-credits", service.handlers.addCreditsHandler)
				r.Post("/drinks", service.handlers.createDrinkHandler)
				r.Put("/drinks/{drinkID}", service.handlers.updateDrinkHandler)
				r.Post("/drinks/{drinkID}/add-stock", service.handlers.addStockHandler)
				r.Delete("/drinks/{drinkID}", service.handlers.deactivateDrinkHandler)
				r.Get("/sales/history", service.handlers.historyHandler)
				r.Get("/sales/stats", service.handlers.statsHandler)
				r.Post("/admins", service.handlers.createAdminHandler)
				r.Get("/admins", service.handlers.listAdminsHandler)
				r.Put("/admins/{adminID}", service.handlers.updateAdminHandler)
				r.Delete("/admins/{adminID}", service.handlers.deactivateAdminHandler)
			})
		})
	})

	return router
}
