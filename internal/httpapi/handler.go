package httpapi

import (
	"net/http"
	"storefront-be/internal/cart"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"time"
)

type Handler struct {
	orders   order.Service
	products product.Service
	users    user.Service
	carts    cart.Service
	intake   *metrics.Intake

	tokenTTL     time.Duration
	secureCookie bool
}

type Deps struct {
	Orders   order.Service
	Products product.Service
	Users    user.Service
	Carts    cart.Service
	Intake   *metrics.Intake

	// TokenTTL sets the access token cookie lifetime.
	TokenTTL     time.Duration
	SecureCookie bool
}

func NewHandler(d Deps) *Handler {
	intake := d.Intake
	if intake == nil {
		intake = &metrics.Intake{}
	}
	return &Handler{
		orders:       d.Orders,
		products:     d.Products,
		users:        d.Users,
		carts:        d.Carts,
		intake:       intake,
		tokenTTL:     d.TokenTTL,
		secureCookie: d.SecureCookie,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, "", h.intake.Snapshot())
}
