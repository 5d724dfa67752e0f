package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"backoffice/domain/order"
	"backoffice/domain/quote"
	"backoffice/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"validation", shared.NewValidationError("order", "status", "unknown"), CodeValidation},
		{"duplicate", shared.NewDuplicateKeyError("client", "email", "a@b.c"), CodeDuplicateKey},
		{"invalid amount", order.NewInvalidAmountError(shared.Zero()), CodeInvalidAmount},
		{"no items", quote.NewNoItemsError("q-1"), CodeNoItems},
		{"concurrent", shared.NewConcurrentModificationError("order", "o-1"), CodeConcurrentModify},
		{"not found", order.NewOrderNotFoundError("o-1"), CodeNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", quote.NewQuoteNotFoundError("q-1")), CodeNotFound},
		{"conflict", shared.NewConflictError("client", "deleted"), CodeConflict},
		{"unknown", stdErrors.New("disk full"), CodeInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.want, appErr.Code)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}

func TestFromDomainError_Details(t *testing.T) {
	var violations shared.Violations
	violations.Add("email", "email is required")
	input := map[string]string{"email": ""}

	appErr := FromDomainError(violations.Err("client", input))
	details, ok := appErr.Details.(ValidationDetails)
	require.True(t, ok)
	assert.Equal(t, "email", details.Violations[0].Field)
	assert.Equal(t, input, details.Input)

	dup := FromDomainError(shared.NewDuplicateKeyError("product", "sku", "W-1"))
	assert.Equal(t, DuplicateDetails{Field: "sku", Value: "W-1"}, dup.Details)
}

func TestFromDomainError_EchoesInput(t *testing.T) {
	input := map[string]string{"amount": "-5", "reference": "REF-1"}

	amount := FromDomainError(&shared.InputError{Err: order.NewInvalidAmountError(shared.MustMoney("-5")), Input: input})
	assert.Equal(t, CodeInvalidAmount, amount.Code)
	assert.Equal(t, InputDetails{Input: input}, amount.Details)

	wrapped := fmt.Errorf("save: %w", &shared.InputError{Err: shared.NewDuplicateKeyError("client", "email", "a@b.c"), Input: input})
	dup := FromDomainError(wrapped)
	assert.Equal(t, CodeDuplicateKey, dup.Code)
	assert.Equal(t, DuplicateDetails{Field: "email", Value: "a@b.c", Input: input}, dup.Details)

	assert.Nil(t, FromDomainError(order.NewInvalidAmountError(shared.Zero())).Details)
}

func TestFromDomainError_PassThrough(t *testing.T) {
	assert.Nil(t, FromDomainError(nil))

	original := TooManyRequests("slow down")
	assert.Same(t, original, FromDomainError(fmt.Errorf("middleware: %w", original)))
	assert.True(t, Is(original, CodeTooManyRequest))
	assert.False(t, Is(stdErrors.New("x"), CodeTooManyRequest))
	assert.Contains(t, Internal("boom").Error(), "INTERNAL_ERROR")
}
