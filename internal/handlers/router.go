package handlers

import (
	"net/http"
	"time"

	"github.com/fxledger/backend/internal/authz"
	mW "github.com/fxledger/backend/internal/middleware"
	"github.com/fxledger/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth         *services.AuthService
	Users        *services.UserService
	Transactions *services.TransactionService
}

// NewRouter builds the chi router serving the API under /api/v1.
func NewRouter(svc Services, logger *zap.Logger, swaggerURL string) http.Handler {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	txHandler := NewTransactionHandler(svc.Transactions)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mW.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		services.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware(svc.Auth))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Profile)
				r.With(mW.RequireRole(authz.RoleAdmin)).Get("/", userHandler.List)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)
				r.With(mW.RequireRole(authz.RoleAdmin)).Delete("/{id}", userHandler.Delete)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", txHandler.Create)
				r.With(mW.RequireRole(authz.RoleAdmin)).Get("/", txHandler.List)
				r.With(mW.RequireRole(authz.RoleAdmin)).Post("/deposit/{id}", txHandler.Deposit)
				r.Post("/transfer/{id}", txHandler.Transfer)
				r.Get("/user/me", txHandler.ListMine)
				r.With(mW.RequireRole(authz.RoleAdmin)).Get("/user/{userId}", txHandler.ListByUser)
				r.Get("/{id}", txHandler.Details)
			})
		})
	})

	return r
}
