package bank

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apitest"
)

func newBank(t *testing.T) (*Client, *apitest.BankBackend) {
	t.Helper()
	backend := apitest.NewBankBackend(t)
	logger, _ := test.NewNullLogger()
	api := apiclient.New(backend.URL, apiclient.WithLogger(logger), apiclient.WithTimeout(2*time.Second))
	return NewClient(api), backend
}

// -- customers --

func TestClient_ListCustomers(t *testing.T) {
	client, backend := newBank(t)
	backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	backend.SeedCustomer("Alan", "Turing", "alan@example.com")

	customers, err := client.ListCustomers(context.Background())
	require.NoError(t, err)

	require.Len(t, customers, 2)
	assert.Equal(t, "Ada Lovelace", customers[0].FullName())
	assert.Equal(t, 2, customers[1].ID)
	assert.Equal(t, time.UTC, customers[0].CreatedAt.Location())
	assert.Equal(t, 1, backend.CallCount(http.MethodGet, "/customers/"))
}

func TestClient_CreateCustomer(t *testing.T) {
	client, backend := newBank(t)

	created, err := client.CreateCustomer(context.Background(), CustomerCreate{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	calls := backend.Calls(http.MethodPost, "/customers/")
	require.Len(t, calls, 1)
	assert.Equal(t, "Grace", calls[0].JSON("first_name").String())
	assert.Equal(t, "grace@example.com", calls[0].JSON("email").String())
}

func TestClient_CreateCustomer_DuplicateEmail(t *testing.T) {
	client, backend := newBank(t)
	backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")

	_, err := client.CreateCustomer(context.Background(), CustomerCreate{
		FirstName: "Ada",
		LastName:  "Byron",
		Email:     "ada@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", apiclient.MessageOf(err, "Failed to create customer"))
	assert.Equal(t, http.StatusBadRequest, apiclient.StatusOf(err))
}

func TestClient_GetCustomer_NotFound(t *testing.T) {
	client, _ := newBank(t)

	_, err := client.GetCustomer(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apiclient.StatusOf(err))
	assert.Equal(t, "Customer not found", apiclient.MessageOf(err, ""))
}

func TestClient_ListCustomerAccounts(t *testing.T) {
	client, backend := newBank(t)
	id := backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	backend.SeedAccount(id, "ACC12345678001", "250.50")
	backend.SeedCard(id, "4111000011112222", "5000", "1200")
	other := backend.SeedCustomer("Alan", "Turing", "alan@example.com")
	backend.SeedAccount(other, "ACC12345678002", "10")

	got, err := client.ListCustomerAccounts(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", got.Customer.Email)
	require.Len(t, got.CheckingAccounts, 1)
	assert.True(t, decimal.RequireFromString("250.50").Equal(got.CheckingAccounts[0].Balance))
	require.Len(t, got.CreditCards, 1)
	assert.True(t, decimal.NewFromInt(5000).Equal(got.CreditCards[0].CreditLimit))
}

// -- checking accounts --

func TestClient_CreateCheckingAccount(t *testing.T) {
	client, backend := newBank(t)
	id := backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")

	account, err := client.CreateCheckingAccount(context.Background(), CheckingAccountCreate{
		AccountNumber: "ACC00000001123",
		CustomerID:    id,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACC00000001123", account.AccountNumber)
	assert.True(t, account.Balance.IsZero())
	assert.True(t, account.IsActive)
}

func TestClient_Deposit(t *testing.T) {
	client, backend := newBank(t)
	id := backend.SeedAccount(backend.SeedCustomer("Ada", "Lovelace", "ada@example.com"), "ACC1", "100.00")

	change, err := client.Deposit(context.Background(), id, NewMoneyMovement(decimal.RequireFromString("50.25"), "Paycheck"))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("150.25").Equal(change.NewBalance))
	assert.Equal(t, "Successfully deposited $50.25", change.Message)

	calls := backend.Calls(http.MethodPost, "/checking-accounts/1/deposit")
	require.Len(t, calls, 1)
	assert.Equal(t, 50.25, calls[0].JSON("amount").Float())
	assert.Equal(t, "Paycheck", calls[0].JSON("description").String())
}

func TestClient_Withdraw_InsufficientFunds(t *testing.T) {
	client, backend := newBank(t)
	id := backend.SeedAccount(backend.SeedCustomer("Ada", "Lovelace", "ada@example.com"), "ACC1", "20.00")

	_, err := client.Withdraw(context.Background(), id, NewMoneyMovement(decimal.NewFromInt(50), "Rent"))
	require.Error(t, err)
	assert.Equal(t, "Insufficient funds", apiclient.MessageOf(err, ""))
	assert.True(t, decimal.RequireFromString("20").Equal(backend.Balance(id)))
}

func TestClient_ListAccountTransactions(t *testing.T) {
	client, backend := newBank(t)
	id := backend.SeedAccount(backend.SeedCustomer("Ada", "Lovelace", "ada@example.com"), "ACC1", "100.00")
	ctx := context.Background()

	_, err := client.Deposit(ctx, id, NewMoneyMovement(decimal.NewFromInt(10), "Deposit"))
	require.NoError(t, err)
	_, err = client.Withdraw(ctx, id, NewMoneyMovement(decimal.NewFromInt(5), "Withdrawal"))
	require.NoError(t, err)

	txs, err := client.ListAccountTransactions(ctx, id)
	require.NoError(t, err)

	require.Len(t, txs, 2)
	assert.Equal(t, TransactionDeposit, txs[0].TransactionType)
	assert.Equal(t, TransactionWithdrawal, txs[1].TransactionType)
	assert.True(t, decimal.NewFromInt(5).Equal(txs[1].Amount))
}

// -- credit cards --

func TestClient_CreateCreditCard(t *testing.T) {
	client, backend := newBank(t)
	id := backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")

	card, err := client.CreateCreditCard(context.Background(), NewCreditCardCreate(id, "4111222233334444", decimal.NewFromInt(2500)))
	require.NoError(t, err)
	assert.Equal(t, "4111222233334444", card.CardNumber)
	assert.True(t, decimal.NewFromInt(2500).Equal(card.CreditLimit))

	calls := backend.Calls(http.MethodPost, "/credit-cards/")
	require.Len(t, calls, 1)
	assert.Equal(t, int64(2500), calls[0].JSON("credit_limit").Int())
}

func TestClient_ListCreditCards(t *testing.T) {
	client, backend := newBank(t)
	id := backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	backend.SeedCard(id, "4111000011112222", "1000", "250")

	cards, err := client.ListCreditCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.True(t, decimal.NewFromInt(250).Equal(cards[0].CurrentBalance))
}

// -- health --

func TestClient_Health(t *testing.T) {
	client, _ := newBank(t)

	msg, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Contains(t, msg.Message, "Bank Service API")
}
