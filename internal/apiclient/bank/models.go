package bank

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/service-console/internal/apiclient"
)

// TransactionType is either TransactionDeposit or TransactionWithdrawal.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

type Customer struct {
	ID        int                 `json:"id" validate:"gt=0"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     string              `json:"email"`
	CreatedAt apiclient.Timestamp `json:"created_at"`
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type CustomerCreate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// CheckingAccount numbers are unique across customers; the backend enforces it.
type CheckingAccount struct {
	ID            int                 `json:"id" validate:"gt=0"`
	AccountNumber string              `json:"account_number" validate:"required"`
	CustomerID    int                 `json:"customer_id"`
	Balance       decimal.Decimal     `json:"balance"`
	IsActive      bool                `json:"is_active"`
	CreatedAt     apiclient.Timestamp `json:"created_at"`
}

type CheckingAccountCreate struct {
	AccountNumber string `json:"account_number"`
	CustomerID    int    `json:"customer_id"`
}

type CreditCard struct {
	ID             int                 `json:"id" validate:"gt=0"`
	CardNumber     string              `json:"card_number" validate:"required"`
	CustomerID     int                 `json:"customer_id"`
	CreditLimit    decimal.Decimal     `json:"credit_limit" validate:"gte=0"`
	CurrentBalance decimal.Decimal     `json:"current_balance"`
	IsActive       bool                `json:"is_active"`
	CreatedAt      apiclient.Timestamp `json:"created_at"`
}

type CreditCardCreate struct {
	CardNumber  string      `json:"card_number"`
	CreditLimit json.Number `json:"credit_limit"`
	CustomerID  int         `json:"customer_id"`
}

type Transaction struct {
	ID              int                 `json:"id" validate:"gt=0"`
	AccountID       int                 `json:"account_id"`
	TransactionType TransactionType     `json:"transaction_type" validate:"oneof=deposit withdrawal"`
	Amount          decimal.Decimal     `json:"amount" validate:"gt=0"`
	Description     string              `json:"description"`
	CreatedAt       apiclient.Timestamp `json:"created_at"`
}

// MoneyMovement is the body of a deposit or withdrawal request.
type MoneyMovement struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

// NewMoneyMovement encodes amount as a JSON number.
func NewMoneyMovement(amount decimal.Decimal, description string) MoneyMovement {
	return MoneyMovement{Amount: json.Number(amount.String()), Description: description}
}

// BalanceChange is returned by deposit and withdraw.
type BalanceChange struct {
	Message    string          `json:"message"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// CustomerAccounts is one customer's checking accounts and credit cards.
type CustomerAccounts struct {
	Customer         Customer          `json:"customer"`
	CheckingAccounts []CheckingAccount `json:"checking_accounts" validate:"dive"`
	CreditCards      []CreditCard      `json:"credit_cards" validate:"dive"`
}
