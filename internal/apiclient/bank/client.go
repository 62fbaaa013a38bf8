package bank

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/service-console/internal/apiclient"
)

// Client exposes the bank service operations.
type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := c.api.Get(ctx, "ListCustomers", "/customers/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, customerID int) (*Customer, error) {
	var out Customer
	if err := c.api.Get(ctx, "GetCustomer", fmt.Sprintf("/customers/%d", customerID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, create CustomerCreate) (*Customer, error) {
	var out Customer
	if err := c.api.Post(ctx, "CreateCustomer", "/customers/", create, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomerAccounts returns the customer's checking accounts and credit cards in one call.
func (c *Client) ListCustomerAccounts(ctx context.Context, customerID int) (*CustomerAccounts, error) {
	var out CustomerAccounts
	if err := c.api.Get(ctx, "ListCustomerAccounts", fmt.Sprintf("/customers/%d/accounts", customerID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCheckingAccounts(ctx context.Context) ([]CheckingAccount, error) {
	var out []CheckingAccount
	if err := c.api.Get(ctx, "ListCheckingAccounts", "/checking-accounts/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCheckingAccount(ctx context.Context, accountID int) (*CheckingAccount, error) {
	var out CheckingAccount
	if err := c.api.Get(ctx, "GetCheckingAccount", fmt.Sprintf("/checking-accounts/%d", accountID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCheckingAccount(ctx context.Context, create CheckingAccountCreate) (*CheckingAccount, error) {
	var out CheckingAccount
	if err := c.api.Post(ctx, "CreateCheckingAccount", "/checking-accounts/", create, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAccountTransactions(ctx context.Context, accountID int) ([]Transaction, error) {
	var out []Transaction
	if err := c.api.Get(ctx, "ListAccountTransactions", fmt.Sprintf("/checking-accounts/%d/transactions", accountID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Deposit(ctx context.Context, accountID int, movement MoneyMovement) (*BalanceChange, error) {
	var out BalanceChange
	if err := c.api.Post(ctx, "Deposit", fmt.Sprintf("/checking-accounts/%d/deposit", accountID), movement, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Withdraw(ctx context.Context, accountID int, movement MoneyMovement) (*BalanceChange, error) {
	var out BalanceChange
	if err := c.api.Post(ctx, "Withdraw", fmt.Sprintf("/checking-accounts/%d/withdraw", accountID), movement, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCreditCards(ctx context.Context) ([]CreditCard, error) {
	var out []CreditCard
	if err := c.api.Get(ctx, "ListCreditCards", "/credit-cards/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCreditCard(ctx context.Context, cardID int) (*CreditCard, error) {
	var out CreditCard
	if err := c.api.Get(ctx, "GetCreditCard", fmt.Sprintf("/credit-cards/%d", cardID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCreditCard(ctx context.Context, create CreditCardCreate) (*CreditCard, error) {
	var out CreditCard
	if err := c.api.Post(ctx, "CreateCreditCard", "/credit-cards/", create, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewCreditCardCreate encodes limit as a JSON number.
func NewCreditCardCreate(customerID int, cardNumber string, limit decimal.Decimal) CreditCardCreate {
	return CreditCardCreate{
		CardNumber:  cardNumber,
		CreditLimit: json.Number(limit.String()),
		CustomerID:  customerID,
	}
}

func (c *Client) Health(ctx context.Context) (*apiclient.Message, error) {
	return c.api.Health(ctx)
}
