package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AdejohOS/feather-mart-sub001/api/controllers"
	"github.com/AdejohOS/feather-mart-sub001/api/middleware"
	"github.com/AdejohOS/feather-mart-sub001/internal/cart"
	"github.com/AdejohOS/feather-mart-sub001/internal/wishlist"
	"github.com/AdejohOS/feather-mart-sub001/pkg/config"
	"github.com/AdejohOS/feather-mart-sub001/pkg/db"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
	"github.com/AdejohOS/feather-mart-sub001/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	cartService cart.Service,
	cartReconciler *cart.Reconciler,
	wishlistService wishlist.Service,
	wishlistReconciler *wishlist.Reconciler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Visitor(cfg, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemID}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{itemID}", controllers.CartRemoveItem(cartService, logg))
			r.With(middleware.RequireUser(logg)).Post("/merge", controllers.CartMerge(cartService, cartReconciler, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(wishlistService, logg))
			r.Post("/items", controllers.WishlistAddItem(wishlistService, logg))
			r.Delete("/items/{productID}", controllers.WishlistRemoveItem(wishlistService, logg))
			r.With(middleware.RequireUser(logg)).Post("/merge", controllers.WishlistMerge(wishlistService, wishlistReconciler, logg))
		})
	})

	return r
}
