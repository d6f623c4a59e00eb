package httpapi

import (
	"net/http"
	"storefront-be/internal/cart"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	c, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "", cart.ToResponse(c))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input cart.AddToCartInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		respondError(w, r, cart.ErrInvalidInput)
		return
	}

	item, err := h.carts.AddToCart(r.Context(), userID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, "Added to cart", cart.ToItemResponse(item))
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input cart.UpdateCartInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		respondError(w, r, cart.ErrInvalidInput)
		return
	}

	err := h.carts.UpdateQuantity(r.Context(), userID, chi.URLParam(r, "productId"), input.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.carts.RemoveFromCart(r.Context(), userID, chi.URLParam(r, "productId")); err != nil {
		respondError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "Cart cleared", nil)
}
