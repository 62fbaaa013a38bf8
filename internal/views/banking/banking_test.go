package banking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apiclient/bank"
	"github.com/carson-networks/service-console/internal/apitest"
	"github.com/carson-networks/service-console/internal/operator"
	"github.com/carson-networks/service-console/internal/refresh"
)

type fixture struct {
	shell   *Shell
	backend *apitest.BankBackend
	bus     *refresh.Bus
}

func newBankClient(t *testing.T, baseURL string) *bank.Client {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return bank.NewClient(apiclient.New(baseURL, apiclient.WithLogger(logger), apiclient.WithTimeout(2*time.Second)))
}

func newBus(t *testing.T) *refresh.Bus {
	t.Helper()
	logger, _ := test.NewNullLogger()
	delegator := operator.NewOperatorDelegator(logger, 4)
	delegator.Start()
	t.Cleanup(delegator.Stop)
	return refresh.NewBus(delegator, logger)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := apitest.NewBankBackend(t)
	bus := newBus(t)
	logger, _ := test.NewNullLogger()
	return &fixture{
		shell:   NewShell(newBankClient(t, backend.URL), bus, logger),
		backend: backend,
		bus:     bus,
	}
}

// withAccount seeds a customer with one account at balance, then mounts the shell and
// selects both.
func (f *fixture) withAccount(t *testing.T, balance string) (customerID, accountID int) {
	t.Helper()
	ctx := context.Background()
	customerID = f.backend.SeedCustomer("Ada", "Lovelace", "ada@example.com")
	accountID = f.backend.SeedAccount(customerID, "ACC1234567890", balance)

	require.NoError(t, f.shell.Mount(ctx))
	require.NoError(t, f.shell.SelectCustomerByID(ctx, customerID))
	require.NoError(t, f.shell.SelectAccountByID(ctx, accountID))
	return customerID, accountID
}

func (f *fixture) accountsPath(customerID int) string {
	return fmt.Sprintf("/customers/%d/accounts", customerID)
}
