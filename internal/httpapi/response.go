package httpapi

import (
	"errors"
	"net/http"
	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// Machine-readable error codes carried in the envelope's error field.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidOrderItems = "INVALID_ORDER_ITEMS"
	CodeTotalMismatch     = "TOTAL_MISMATCH"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeServerError       = "SERVER_ERROR"
)

var (
	errAuthRequired  = errors.New("authentication required")
	errAdminRequired = errors.New("admin access required")
	errInternalOnly  = errors.New("internal access only")
)

type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorTable = []errorMapping{
	{errAuthRequired, http.StatusUnauthorized, CodeUnauthorized},
	{cart.ErrUserNotAuthenticated, http.StatusUnauthorized, CodeUnauthorized},
	{order.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
	{user.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
	{errAdminRequired, http.StatusForbidden, CodeForbidden},
	{errInternalOnly, http.StatusForbidden, CodeForbidden},
	{order.ErrForbidden, http.StatusForbidden, CodeForbidden},
	{order.ErrValidation, http.StatusBadRequest, CodeValidation},
	{product.ErrInvalidProduct, http.StatusBadRequest, CodeValidation},
	{user.ErrInvalidInput, http.StatusBadRequest, CodeValidation},
	{cart.ErrInvalidQuantity, http.StatusBadRequest, CodeValidation},
	{cart.ErrInvalidInput, http.StatusBadRequest, CodeValidation},
	{cart.ErrInvalidProductID, http.StatusBadRequest, CodeValidation},
	{order.ErrInvalidOrderItems, http.StatusBadRequest, CodeInvalidOrderItems},
	{order.ErrTotalMismatch, http.StatusBadRequest, CodeTotalMismatch},
	{order.ErrOrderNotFound, http.StatusNotFound, CodeNotFound},
	{product.ErrProductNotFound, http.StatusNotFound, CodeNotFound},
	{cart.ErrCartItemNotFound, http.StatusNotFound, CodeNotFound},
	{user.ErrEmailExists, http.StatusConflict, CodeConflict},
	{cart.ErrInsufficientStock, http.StatusConflict, CodeConflict},
	{cart.ErrCartItemAlreadyExist, http.StatusConflict, CodeConflict},
}

func respond(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	render.Status(r, status)
	render.JSON(w, r, env)
}

func respondData(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	respond(w, r, status, Envelope{Success: true, Message: message, Data: data})
}

// respondError translates err into the failure envelope. Anything not in
// errorTable is a SERVER_ERROR.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			respond(w, r, m.status, Envelope{
				Error:   m.code,
				Message: err.Error(),
				Data:    validationData(err),
			})
			return
		}
	}

	logger.FromCtx(r.Context()).Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	env := Envelope{Error: CodeServerError, Message: "Internal server error"}
	if fields := order.PersistenceFieldErrors(err); len(fields) > 0 {
		env.Data = map[string]any{"validationErrors": fields}
	}
	respond(w, r, http.StatusInternalServerError, env)
}

func validationData(err error) any {
	var orderErr *order.Error
	if errors.As(err, &orderErr) && len(orderErr.Fields) > 0 {
		return map[string]any{"validationErrors": orderErr.Fields}
	}

	var productErr *product.ValidationError
	if errors.As(err, &productErr) && len(productErr.Fields) > 0 {
		return map[string]any{"validationErrors": productErr.Fields}
	}
	return nil
}
