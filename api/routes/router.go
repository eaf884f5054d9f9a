package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/radityaprast/pasarlokal-backend/api/controllers"
	"github.com/radityaprast/pasarlokal-backend/api/middleware"
	"github.com/radityaprast/pasarlokal-backend/internal/auth"
	"github.com/radityaprast/pasarlokal-backend/internal/cart"
	"github.com/radityaprast/pasarlokal-backend/internal/catalog"
	"github.com/radityaprast/pasarlokal-backend/internal/categories"
	checkoutsvc "github.com/radityaprast/pasarlokal-backend/internal/checkout"
	"github.com/radityaprast/pasarlokal-backend/internal/feedback"
	"github.com/radityaprast/pasarlokal-backend/internal/guestbook"
	"github.com/radityaprast/pasarlokal-backend/internal/orders"
	"github.com/radityaprast/pasarlokal-backend/internal/products"
	"github.com/radityaprast/pasarlokal-backend/internal/shops"
	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/config"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/enums"
	"github.com/radityaprast/pasarlokal-backend/pkg/logger"
	"github.com/radityaprast/pasarlokal-backend/pkg/metrics"
	"github.com/radityaprast/pasarlokal-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	promRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	catalogService catalog.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	shopsService shops.Service,
	productsService products.Service,
	categoriesService categories.Service,
	usersService users.Service,
	feedbackService feedback.Service,
	guestbookService guestbook.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	rateLimited := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return middleware.AuthRateLimit(policy, nil, logg)
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, logg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(rateLimited(registerPolicy)).Post("/register", controllers.Register(authService, logg))
		r.With(rateLimited(loginPolicy)).Post("/login", controllers.Login(authService, logg))
		r.With(middleware.Auth(cfg.JWT, logg)).Get("/me", controllers.Me(authService, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
		r.Get("/products", controllers.CatalogProducts(catalogService, logg))
		r.Get("/products/{productId}", controllers.CatalogProductDetail(catalogService, logg))
		r.Get("/products/{productId}/feedback", controllers.FeedbackForProduct(feedbackService, logg))
	})

	r.Route("/api/v1/guestbook", func(r chi.Router) {
		r.Post("/public", controllers.GuestbookCreatePublic(guestbookService, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, logg)).Post("/", controllers.GuestbookCreate(guestbookService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/orders", controllers.OrdersList(ordersService, logg))
		r.Get("/orders/{orderId}", controllers.OrderDetail(ordersService, logg))
		r.Get("/orders/{orderId}/export-pdf", controllers.OrderExportPDF(ordersService, logg))

		r.Route("/customer", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, string(enums.RoleCustomer)))

			r.Get("/profile", controllers.CustomerProfileGet(usersService, logg))
			r.Put("/profile", controllers.CustomerProfileUpdate(usersService, logg))

			r.Get("/cart", controllers.CartGet(cartService, logg))
			r.Post("/cart", controllers.CartAddItem(cartService, logg))
			r.Delete("/cart/{itemId}", controllers.CartRemoveItem(cartService, logg))

			r.Post("/orders", controllers.CheckoutCreate(checkoutService, logg))
			r.Delete("/orders/{orderId}", controllers.OrderCancel(ordersService, logg))

			r.Post("/feedback", controllers.FeedbackCreate(feedbackService, logg))
			r.Post("/feedback/reviewed", controllers.FeedbackReviewedProducts(feedbackService, logg))
		})

		r.Route("/seller", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, string(enums.RoleSeller)))

			r.Post("/shop-requests", controllers.ShopRequestSubmit(shopsService, logg))
			r.Get("/shop-requests", controllers.ShopRequestsMine(shopsService, logg))
			r.Get("/shops", controllers.ShopsMine(shopsService, logg))

			r.Get("/products", controllers.SellerProductsList(productsService, logg))
			r.Post("/products", controllers.SellerProductCreate(productsService, logg))
			r.Patch("/products/{productId}", controllers.SellerProductUpdate(productsService, logg))
			r.Delete("/products/{productId}", controllers.SellerProductDelete(productsService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, string(enums.RoleAdmin)))

			r.Get("/shop-requests", controllers.AdminShopRequests(shopsService, logg))
			r.Post("/shop-requests/{requestId}/review", controllers.AdminShopRequestReview(shopsService, logg))

			r.Post("/categories", controllers.AdminCategoryCreate(categoriesService, logg))
			r.Patch("/categories/{categoryId}", controllers.AdminCategoryUpdate(categoriesService, logg))
			r.Delete("/categories/{categoryId}", controllers.AdminCategoryDelete(categoriesService, logg))

			r.Get("/customers", controllers.AdminCustomers(usersService, logg))
			r.Patch("/customers/{customerId}/status", controllers.AdminCustomerStatus(usersService, logg))

			r.Patch("/orders/{orderId}/ship", controllers.OrderShip(ordersService, logg))
			r.Patch("/orders/{orderId}/deliver", controllers.OrderDeliver(ordersService, logg))

			r.Get("/guestbook", controllers.AdminGuestbook(guestbookService, logg))
			r.Delete("/guestbook/{entryId}", controllers.AdminGuestbookDelete(guestbookService, logg))
		})
	})

	return r
}
