package httpapi

import (
	"net/http"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// CreateOrder serves POST /orders. The session is checked before the body is
// read, so an anonymous request never reaches a store.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input order.CreateOrderInput
	if userID != 0 {
		decoded, err := decodeOrderInput(r)
		if err != nil {
			h.intake.ValidationRejected.Inc()
			respondError(w, r, err)
			return
		}
		input = decoded
	}

	o, err := h.orders.CreateOrder(r.Context(), userID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondData(w, r, http.StatusCreated, "Order created successfully", order.ToResponse(o))
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListUserOrders(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "", order.ToResponses(orders))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	o, err := h.orders.GetOrder(ctx, userID, chi.URLParam(r, "id"), utils.IsAdmin(ctx))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "", order.ToResponse(o))
}

func (h *Handler) MarkOrderPaid(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.MarkAsPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "Order marked as paid", order.ToResponse(o))
}

func (h *Handler) MarkOrderDelivered(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.MarkAsDelivered(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "Order marked as delivered", order.ToResponse(o))
}
