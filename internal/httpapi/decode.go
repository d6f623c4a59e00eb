package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"storefront-be/internal/order"

	"github.com/go-chi/render"
)

// decodeOrderInput reads the order payload. Wrong-typed fields are left for
// validation; only a body that is not a JSON object becomes a single field
// error here.
func decodeOrderInput(r *http.Request) (order.CreateOrderInput, error) {
	var input order.CreateOrderInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		return input, &order.Error{
			Kind:    order.ErrValidation,
			Message: "Invalid request body",
			Fields:  []order.FieldError{decodeFieldError(err)},
		}
	}
	return input, nil
}

func decodeFieldError(err error) order.FieldError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return order.FieldError{Field: "body", Message: "Request body must be a JSON object"}
	case errors.Is(err, io.EOF):
		return order.FieldError{Field: "body", Message: "Request body is required"}
	default:
		return order.FieldError{Field: "body", Message: "Malformed JSON: " + err.Error()}
	}
}
