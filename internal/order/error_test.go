package order

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestError_Unwrap(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newError(ErrTotalMismatch, "Order totals do not match server calculation"))

	assert.ErrorIs(t, err, ErrTotalMismatch)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "wrapped: Order totals do not match server calculation")
}

func TestPersistenceFieldErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected []FieldError
	}{
		{
			"Check constraint",
			&pq.Error{Code: "23514", Constraint: "orders_payment_method_check", Message: "violates check"},
			[]FieldError{{Field: "paymentMethod", Message: "violates check"}},
		},
		{
			"Not null column",
			fmt.Errorf("insert order: %w", &pq.Error{Code: "23502", Column: "shipping_city", Message: "null value"}),
			[]FieldError{{Field: "shippingAddress.city", Message: "null value"}},
		},
		{"Unknown constraint", &pq.Error{Code: "23514", Constraint: "something_else"}, nil},
		{"Not an integrity violation", &pq.Error{Code: "40001"}, nil},
		{"Plain error", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PersistenceFieldErrors(tt.err))
		})
	}
}
