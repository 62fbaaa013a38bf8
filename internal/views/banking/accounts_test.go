package banking

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/service-console/internal/manager"
)

func TestAccountManager_NoCustomerNoCall(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.shell.Accounts.Load(context.Background()))

	assert.Empty(t, f.shell.Accounts.Accounts())
	assert.Zero(t, f.backend.TotalCalls())
	assert.False(t, f.shell.Accounts.CanSubmit())

	_, err := f.shell.Accounts.Create(context.Background())
	assert.ErrorIs(t, err, manager.ErrNoParent)
}

func TestAccountManager_LoadsCustomerAccountsAndStats(t *testing.T) {
	f := newFixture(t)
	id := f.backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	f.backend.SeedAccount(id, "ACC1", "100.50")
	f.backend.SeedAccount(id, "ACC2", "1200.00")
	other := f.backend.SeedCustomer("Alan", "Turing", "alan@example.com")
	f.backend.SeedAccount(other, "ACC3", "5.00")

	require.NoError(t, f.shell.Accounts.SetCustomer(context.Background(), mo.Some(id)))

	require.Len(t, f.shell.Accounts.Accounts(), 2)
	stats := f.shell.Accounts.Stats()
	assert.True(t, decimal.RequireFromString("1300.50").Equal(stats.TotalBalance))
	assert.Equal(t, 2, stats.ActiveCount)
}

func TestAccountManager_SetSameCustomerDoesNotRefetch(t *testing.T) {
	f := newFixture(t)
	id := f.backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	ctx := context.Background()

	require.NoError(t, f.shell.Accounts.SetCustomer(ctx, mo.Some(id)))
	require.NoError(t, f.shell.Accounts.SetCustomer(ctx, mo.Some(id)))

	assert.Equal(t, 1, f.backend.CallCount(http.MethodGet, f.accountsPath(id)))
}

func TestAccountManager_GenerateAndCreate(t *testing.T) {
	f := newFixture(t)
	id := f.backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	ctx := context.Background()
	require.NoError(t, f.shell.Accounts.SetCustomer(ctx, mo.Some(id)))

	f.shell.Accounts.Form().Open(AccountForm{})
	assert.False(t, f.shell.Accounts.CanSubmit())
	number := f.shell.Accounts.GenerateNumber()
	assert.Regexp(t, regexp.MustCompile(`^ACC\d{11}$`), number)
	require.True(t, f.shell.Accounts.CanSubmit())

	account, err := f.shell.Accounts.Create(ctx)

	require.NoError(t, err)
	assert.Equal(t, number, account.AccountNumber)
	assert.Equal(t, id, account.CustomerID)
	assert.Len(t, f.shell.Accounts.Accounts(), 1)
	assert.False(t, f.shell.Accounts.Form().IsOpen())
	assert.Equal(t, uint64(1), f.shell.RefreshCount())
}

func TestAccountManager_DuplicateNumberShowsServerMessage(t *testing.T) {
	f := newFixture(t)
	id := f.backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	f.backend.SeedAccount(id, "ACC1", "0")
	ctx := context.Background()
	require.NoError(t, f.shell.Accounts.SetCustomer(ctx, mo.Some(id)))
	f.shell.Accounts.Form().Open(AccountForm{AccountNumber: "ACC1"})

	_, err := f.shell.Accounts.Create(ctx)

	require.Error(t, err)
	assert.Equal(t, "Account number already exists", f.shell.Accounts.Error())
	assert.Equal(t, AccountForm{AccountNumber: "ACC1"}, f.shell.Accounts.Form().Values())
}
