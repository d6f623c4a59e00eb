package httpapi

import (
	"net/http"
	"storefront-be/internal/product"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "", product.ToResponses(products))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, "", product.ToResponse(p))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input product.CreateProductInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		respondError(w, r, &product.ValidationError{Fields: []product.FieldError{{
			Field:   "body",
			Message: "Malformed JSON: " + err.Error(),
		}}})
		return
	}

	p, err := h.products.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, "Product created successfully", product.ToResponse(p))
}
