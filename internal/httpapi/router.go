package httpapi

import (
	"net/http"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type RouterOptions struct {
	Sessions       middleware.SessionResolver
	InternalSecret string
	AllowedOrigins []string

	// Limiter is optional; nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.AuthMiddleware(opts.Sessions))
	r.Use(middleware.InternalAuth(opts.InternalSecret))
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", h.Health)
	r.With(requireInternal).Get("/internal/metrics", h.Metrics)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.With(requireAdmin).Post("/", h.CreateProduct)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddToCart)
		r.Put("/items/{productId}", h.UpdateCartItem)
		r.Delete("/items/{productId}", h.RemoveCartItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.With(requireUser).Get("/mine", h.ListMyOrders)
		r.With(requireUser).Get("/{id}", h.GetOrder)
		r.With(requireAdmin).Put("/{id}/pay", h.MarkOrderPaid)
		r.With(requireAdmin).Put("/{id}/deliver", h.MarkOrderDelivered)
	})

	return r
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			respondError(w, r, errAuthRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return requireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsAdmin(r.Context()) {
			respondError(w, r, errAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func requireInternal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsInternalRequest(r.Context()) {
			respondError(w, r, errInternalOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
