package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	authMiddleware *AuthMiddleware,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	restaurantHandler *RestaurantHandler,
	dishHandler *DishHandler,
	menuHandler *MenuHandler,
	voteHandler *VoteHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/google/callback", authHandler.GoogleCallback)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/votes", func(r chi.Router) {
				r.Get("/", voteHandler.ListVotes)
				r.Get("/distribution", voteHandler.GetDistribution)
				r.Get("/{id}", voteHandler.GetVote)
				r.Post("/", voteHandler.CastVote)
				r.Put("/", voteHandler.ChangeVote)
				r.Delete("/", voteHandler.CancelVote)
			})

			r.Route("/restaurants", func(r chi.Router) {
				r.Get("/", restaurantHandler.List)
				r.Get("/{id}", restaurantHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireAdmin)
					r.Post("/", restaurantHandler.Create)
					r.Put("/{id}", restaurantHandler.Update)
					r.Delete("/{id}", restaurantHandler.Delete)
				})
			})

			r.Route("/dishes", func(r chi.Router) {
				r.Get("/", dishHandler.List)
				r.Get("/{id}", dishHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireAdmin)
					r.Post("/", dishHandler.Create)
					r.Put("/{id}", dishHandler.Update)
					r.Delete("/{id}", dishHandler.Delete)
				})
			})

			r.Route("/menus", func(r chi.Router) {
				r.Get("/", menuHandler.ListOnDate)
				r.Get("/{id}", menuHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireAdmin)
					r.Post("/", menuHandler.Create)
					r.Delete("/{id}", menuHandler.Delete)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.GetMe)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireAdmin)
					r.Get("/", userHandler.List)
					r.Get("/{id}", userHandler.Get)
					r.Post("/", userHandler.Create)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})
		})
	})

	return r
}
