package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokolink/sokolink-app/api/controllers"
	"github.com/sokolink/sokolink-app/api/middleware"
	"github.com/sokolink/sokolink-app/internal/app"
	"github.com/sokolink/sokolink-app/internal/session"
	"github.com/sokolink/sokolink-app/pkg/config"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pageRouter *app.Router,
	sessions *session.Manager,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/view", func(r chi.Router) {
			r.Get("/", controllers.ViewFetch(pageRouter, logg))
			r.Get("/watch", controllers.ViewWatch(pageRouter, logg))
		})

		r.Route("/navigation", func(r chi.Router) {
			r.Post("/", controllers.Navigate(pageRouter, logg))
			r.Post("/listing", controllers.NavigateListing(pageRouter, logg))
			r.Post("/product", controllers.NavigateProduct(pageRouter, logg))
			r.Post("/order", controllers.NavigateOrder(pageRouter, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/items", controllers.CartAdd(pageRouter, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateQuantity(pageRouter, logg))
			r.Delete("/items/{itemId}", controllers.CartRemove(pageRouter, logg))
			r.Delete("/", controllers.CartClear(pageRouter, logg))
		})

		r.Post("/checkout", controllers.CheckoutStart(pageRouter, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(sessions, logg))
			r.Post("/register", controllers.AuthRegister(sessions, logg))
			r.Post("/logout", controllers.AuthLogout(sessions, logg))
		})
	})

	return r
}
