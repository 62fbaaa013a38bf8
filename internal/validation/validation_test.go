package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardInput struct {
	CardNumber  string          `form:"card_number" validate:"notblank,len=16,number"`
	CreditLimit decimal.Decimal `form:"credit_limit" validate:"gte=100"`
	Email       string          `json:"email" validate:"omitempty,email"`
}

func TestNew_DecimalComparison(t *testing.T) {
	v := New()

	err := v.Struct(cardInput{CardNumber: "4111000011112222", CreditLimit: decimal.RequireFromString("99.99")})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(Convert(err), &verrs))
	assert.True(t, verrs.Has("credit_limit"))
	assert.False(t, verrs.Has("card_number"))
	assert.Equal(t, "validation failed: credit_limit must be at least 100", verrs.Error())

	assert.NoError(t, v.Struct(cardInput{CardNumber: "4111000011112222", CreditLimit: decimal.NewFromInt(100)}))
}

func TestNew_NotBlankRejectsWhitespace(t *testing.T) {
	v := New()

	err := Convert(v.Struct(cardInput{CardNumber: "   ", CreditLimit: decimal.NewFromInt(500)}))
	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "card_number", verrs[0].Field)
	assert.Equal(t, "card_number is required", verrs[0].String())
}

func TestNew_JSONTagNames(t *testing.T) {
	v := New()

	err := Convert(v.Struct(cardInput{CardNumber: "4111000011112222", CreditLimit: decimal.NewFromInt(500), Email: "nope"}))
	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("email"))
}

func TestConvert_PassesThroughOtherErrors(t *testing.T) {
	other := errors.New("boom")
	assert.Equal(t, other, Convert(other))
	assert.NoError(t, Convert(nil))
}
