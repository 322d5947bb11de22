package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/auth"
	authv1 "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/auth"
	invoicev1 "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/invoice"
	reportv1 "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/report"
	userv1 "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/user"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
)

func New(
	authSvc *auth.Service,
	authV1 *authv1.Handler,
	invoicesV1 *invoicev1.Handler,
	clientsV1 *userv1.Handler,
	reportsV1 *reportv1.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(authSvc.Authenticate)

			r.Route("/invoices", invoicesV1.Routes)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(user.RoleAdmin))

				r.Route("/clients", clientsV1.Routes)
				r.Route("/reports", reportsV1.Routes)
			})
		})
	})

	return router
}
