// Package banking holds the customer, account, transaction and credit card screens and
// the shell that ties their selections together.
package banking

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/service-console/internal/refresh"
	"github.com/carson-networks/service-console/internal/validation"
)

// ErrInsufficientFunds is returned before any API call when a withdrawal exceeds the balance.
var ErrInsufficientFunds = errors.New("banking: withdrawal exceeds current balance")

var validate = validation.New()

func checkForm[V any](values V) error {
	return validation.Convert(validate.Struct(values))
}

type signaler interface {
	Subscribe(name string, handler refresh.Handler, kinds ...refresh.Kind)
	Signal(ctx context.Context, source string, kinds ...refresh.Kind) error
}

type CustomerForm struct {
	FirstName string `form:"first_name" validate:"notblank"`
	LastName  string `form:"last_name" validate:"notblank"`
	Email     string `form:"email" validate:"notblank,email"`
}

type AccountForm struct {
	AccountNumber string `form:"account_number" validate:"notblank"`
}

type CardForm struct {
	CardNumber  string          `form:"card_number" validate:"notblank,len=16,number"`
	CreditLimit decimal.Decimal `form:"credit_limit" validate:"gte=100"`
}

// MovementForm is a deposit or withdrawal. A blank description is replaced on submit.
type MovementForm struct {
	Amount      decimal.Decimal `form:"amount" validate:"gt=0"`
	Description string          `form:"description"`
}
