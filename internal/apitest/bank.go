package apitest

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

const naiveLayout = "2006-01-02T15:04:05.000000"

type fakeCustomer struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
}

type fakeAccount struct {
	ID            int
	AccountNumber string
	CustomerID    int
	Balance       decimal.Decimal
}

type fakeCard struct {
	ID             int
	CardNumber     string
	CustomerID     int
	CreditLimit    decimal.Decimal
	CurrentBalance decimal.Decimal
}

type fakeTransaction struct {
	ID          int
	AccountID   int
	Type        string
	Amount      decimal.Decimal
	Description string
}

// BankBackend is an in-memory bank service speaking the bank REST contract.
type BankBackend struct {
	*Backend

	mu           sync.Mutex
	created      time.Time
	customers    []*fakeCustomer
	accounts     []*fakeAccount
	cards        []*fakeCard
	transactions []*fakeTransaction
}

type customerCreateInput struct {
	Body struct {
		FirstName string `json:"first_name" minLength:"1"`
		LastName  string `json:"last_name" minLength:"1"`
		Email     string `json:"email" format:"email"`
	}
}

type accountCreateInput struct {
	Body struct {
		AccountNumber string `json:"account_number" minLength:"1"`
		CustomerID    int    `json:"customer_id"`
	}
}

type cardCreateInput struct {
	Body struct {
		CardNumber  string  `json:"card_number" minLength:"1"`
		CreditLimit float64 `json:"credit_limit"`
		CustomerID  int     `json:"customer_id"`
	}
}

type movementInput struct {
	ID   int `path:"id"`
	Body struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description,omitempty"`
	}
}

func NewBankBackend(t testing.TB) *BankBackend {
	t.Helper()
	b := &BankBackend{
		Backend: NewBackend(t, "Bank Service API"),
		created: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	b.routes()
	return b
}

// SeedCustomer adds a customer directly and returns its id.
func (b *BankBackend) SeedCustomer(first, last, email string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := &fakeCustomer{ID: len(b.customers) + 1, FirstName: first, LastName: last, Email: email}
	b.customers = append(b.customers, c)
	return c.ID
}

// SeedAccount adds a checking account with an opening balance and returns its id.
func (b *BankBackend) SeedAccount(customerID int, number, balance string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := &fakeAccount{ID: len(b.accounts) + 1, AccountNumber: number, CustomerID: customerID, Balance: decimal.RequireFromString(balance)}
	b.accounts = append(b.accounts, a)
	return a.ID
}

// SeedCard adds a credit card and returns its id.
func (b *BankBackend) SeedCard(customerID int, number, limit, balance string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := &fakeCard{
		ID:             len(b.cards) + 1,
		CardNumber:     number,
		CustomerID:     customerID,
		CreditLimit:    decimal.RequireFromString(limit),
		CurrentBalance: decimal.RequireFromString(balance),
	}
	b.cards = append(b.cards, c)
	return c.ID
}

// Balance reports the stored balance of an account.
func (b *BankBackend) Balance(accountID int) decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a := b.account(accountID); a != nil {
		return a.Balance
	}
	return decimal.Zero
}

func (b *BankBackend) routes() {
	Register(b.Backend, http.MethodGet, "/", func(ctx context.Context, in *NoInput) (*Response, error) {
		return OK(map[string]any{"message": "Welcome to Bank Service API! Visit /docs for Swagger documentation"})
	})

	Register(b.Backend, http.MethodGet, "/customers/", func(ctx context.Context, in *NoInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := make([]map[string]any, 0, len(b.customers))
		for _, c := range b.customers {
			out = append(out, b.customerJSON(c))
		}
		return OK(out)
	})

	Register(b.Backend, http.MethodPost, "/customers/", func(ctx context.Context, in *customerCreateInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, c := range b.customers {
			if c.Email == in.Body.Email {
				return nil, huma.Error400BadRequest("Email already registered")
			}
		}
		c := &fakeCustomer{ID: len(b.customers) + 1, FirstName: in.Body.FirstName, LastName: in.Body.LastName, Email: in.Body.Email}
		b.customers = append(b.customers, c)
		return OK(b.customerJSON(c))
	})

	Register(b.Backend, http.MethodGet, "/customers/{id}", func(ctx context.Context, in *IDInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c := b.customer(in.ID)
		if c == nil {
			return nil, huma.Error404NotFound("Customer not found")
		}
		return OK(b.customerJSON(c))
	})

	Register(b.Backend, http.MethodGet, "/customers/{id}/accounts", func(ctx context.Context, in *IDInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c := b.customer(in.ID)
		if c == nil {
			return nil, huma.Error404NotFound("Customer not found")
		}
		accounts := []map[string]any{}
		for _, a := range b.accounts {
			if a.CustomerID == c.ID {
				accounts = append(accounts, b.accountJSON(a))
			}
		}
		cards := []map[string]any{}
		for _, card := range b.cards {
			if card.CustomerID == c.ID {
				cards = append(cards, b.cardJSON(card))
			}
		}
		return OK(map[string]any{
			"customer":          b.customerJSON(c),
			"checking_accounts": accounts,
			"credit_cards":      cards,
		})
	})

	Register(b.Backend, http.MethodGet, "/checking-accounts/", func(ctx context.Context, in *NoInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := make([]map[string]any, 0, len(b.accounts))
		for _, a := range b.accounts {
			out = append(out, b.accountJSON(a))
		}
		return OK(out)
	})

	Register(b.Backend, http.MethodPost, "/checking-accounts/", func(ctx context.Context, in *accountCreateInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.customer(in.Body.CustomerID) == nil {
			return nil, huma.Error404NotFound("Customer not found")
		}
		for _, a := range b.accounts {
			if a.AccountNumber == in.Body.AccountNumber {
				return nil, huma.Error400BadRequest("Account number already exists")
			}
		}
		a := &fakeAccount{ID: len(b.accounts) + 1, AccountNumber: in.Body.AccountNumber, CustomerID: in.Body.CustomerID, Balance: decimal.Zero}
		b.accounts = append(b.accounts, a)
		return OK(b.accountJSON(a))
	})

	Register(b.Backend, http.MethodGet, "/checking-accounts/{id}", func(ctx context.Context, in *IDInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		a := b.account(in.ID)
		if a == nil {
			return nil, huma.Error404NotFound("Account not found")
		}
		return OK(b.accountJSON(a))
	})

	Register(b.Backend, http.MethodGet, "/checking-accounts/{id}/transactions", func(ctx context.Context, in *IDInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.account(in.ID) == nil {
			return nil, huma.Error404NotFound("Account not found")
		}
		out := []map[string]any{}
		for _, tx := range b.transactions {
			if tx.AccountID == in.ID {
				out = append(out, b.transactionJSON(tx))
			}
		}
		return OK(out)
	})

	Register(b.Backend, http.MethodPost, "/checking-accounts/{id}/deposit", func(ctx context.Context, in *movementInput) (*Response, error) {
		return b.move(in, "deposit")
	})

	Register(b.Backend, http.MethodPost, "/checking-accounts/{id}/withdraw", func(ctx context.Context, in *movementInput) (*Response, error) {
		return b.move(in, "withdrawal")
	})

	Register(b.Backend, http.MethodGet, "/credit-cards/", func(ctx context.Context, in *NoInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := make([]map[string]any, 0, len(b.cards))
		for _, c := range b.cards {
			out = append(out, b.cardJSON(c))
		}
		return OK(out)
	})

	Register(b.Backend, http.MethodPost, "/credit-cards/", func(ctx context.Context, in *cardCreateInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.customer(in.Body.CustomerID) == nil {
			return nil, huma.Error404NotFound("Customer not found")
		}
		for _, c := range b.cards {
			if c.CardNumber == in.Body.CardNumber {
				return nil, huma.Error500InternalServerError("Internal Server Error")
			}
		}
		c := &fakeCard{
			ID:             len(b.cards) + 1,
			CardNumber:     in.Body.CardNumber,
			CustomerID:     in.Body.CustomerID,
			CreditLimit:    decimal.NewFromFloat(in.Body.CreditLimit),
			CurrentBalance: decimal.Zero,
		}
		b.cards = append(b.cards, c)
		return OK(b.cardJSON(c))
	})

	Register(b.Backend, http.MethodGet, "/credit-cards/{id}", func(ctx context.Context, in *IDInput) (*Response, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, c := range b.cards {
			if c.ID == in.ID {
				return OK(b.cardJSON(c))
			}
		}
		return nil, huma.Error404NotFound("Credit card not found")
	})
}

func (b *BankBackend) move(in *movementInput, kind string) (*Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a := b.account(in.ID)
	if a == nil {
		return nil, huma.Error404NotFound("Account not found")
	}
	amount := decimal.NewFromFloat(in.Body.Amount)
	if !amount.IsPositive() {
		if kind == "deposit" {
			return nil, huma.Error400BadRequest("Deposit amount must be positive")
		}
		return nil, huma.Error400BadRequest("Withdrawal amount must be positive")
	}

	verb := "deposited"
	if kind == "withdrawal" {
		if a.Balance.LessThan(amount) {
			return nil, huma.Error400BadRequest("Insufficient funds")
		}
		a.Balance = a.Balance.Sub(amount)
		verb = "withdrew"
	} else {
		a.Balance = a.Balance.Add(amount)
	}

	b.transactions = append(b.transactions, &fakeTransaction{
		ID:          len(b.transactions) + 1,
		AccountID:   a.ID,
		Type:        kind,
		Amount:      amount,
		Description: in.Body.Description,
	})

	return OK(map[string]any{
		"message":     "Successfully " + verb + " $" + amount.StringFixed(2),
		"new_balance": a.Balance.StringFixed(2),
	})
}

func (b *BankBackend) customer(id int) *fakeCustomer {
	for _, c := range b.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (b *BankBackend) account(id int) *fakeAccount {
	for _, a := range b.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (b *BankBackend) customerJSON(c *fakeCustomer) map[string]any {
	return map[string]any{
		"id":         c.ID,
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"created_at": b.created.Format(naiveLayout),
	}
}

func (b *BankBackend) accountJSON(a *fakeAccount) map[string]any {
	return map[string]any{
		"id":             a.ID,
		"account_number": a.AccountNumber,
		"customer_id":    a.CustomerID,
		"balance":        a.Balance.StringFixed(2),
		"is_active":      true,
		"created_at":     b.created.Format(naiveLayout),
	}
}

func (b *BankBackend) cardJSON(c *fakeCard) map[string]any {
	return map[string]any{
		"id":              c.ID,
		"card_number":     c.CardNumber,
		"customer_id":     c.CustomerID,
		"credit_limit":    c.CreditLimit.StringFixed(2),
		"current_balance": c.CurrentBalance.StringFixed(2),
		"is_active":       true,
		"created_at":      b.created.Format(naiveLayout),
	}
}

func (b *BankBackend) transactionJSON(tx *fakeTransaction) map[string]any {
	return map[string]any{
		"id":               tx.ID,
		"account_id":       tx.AccountID,
		"transaction_type": tx.Type,
		"amount":           tx.Amount.StringFixed(2),
		"description":      tx.Description,
		"created_at":       b.created.Format(naiveLayout),
	}
}
