package banking

import (
	"context"
	"strings"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient/bank"
	"github.com/carson-networks/service-console/internal/manager"
	"github.com/carson-networks/service-console/internal/refresh"
)

const accountManagerName = "accounts"

type accountAPI interface {
	ListCustomerAccounts(ctx context.Context, customerID int) (*bank.CustomerAccounts, error)
	CreateCheckingAccount(ctx context.Context, create bank.CheckingAccountCreate) (*bank.CheckingAccount, error)
}

// AccountManager lists the selected customer's checking accounts.
type AccountManager struct {
	api  accountAPI
	bus  signaler
	list *manager.List[bank.CheckingAccount]
	form *manager.Form[AccountForm]
}

func NewAccountManager(api accountAPI, bus signaler, logger *logrus.Logger) *AccountManager {
	m := &AccountManager{
		api:  api,
		bus:  bus,
		form: manager.NewForm(AccountForm{}, checkForm[AccountForm]),
	}
	m.list = manager.NewScopedList(accountManagerName, "Failed to load accounts",
		func(ctx context.Context, customerID int) ([]bank.CheckingAccount, error) {
			out, err := api.ListCustomerAccounts(ctx, customerID)
			if err != nil {
				return nil, err
			}
			return out.CheckingAccounts, nil
		}, logger)
	bus.Subscribe(accountManagerName, m.Load, refresh.Customers, refresh.Accounts, refresh.Transactions)
	return m
}

// SetCustomer rescopes the manager and reloads when the customer changed.
func (m *AccountManager) SetCustomer(ctx context.Context, customerID mo.Option[int]) error {
	if !m.list.SetParent(customerID) {
		return nil
	}
	m.form.Close()
	return m.list.Load(ctx)
}

func (m *AccountManager) Load(ctx context.Context) error {
	return m.list.Load(ctx)
}

func (m *AccountManager) Accounts() []bank.CheckingAccount {
	return m.list.Items()
}

// Account looks up a loaded account by id.
func (m *AccountManager) Account(accountID int) (bank.CheckingAccount, bool) {
	for _, a := range m.list.Items() {
		if a.ID == accountID {
			return a, true
		}
	}
	return bank.CheckingAccount{}, false
}

func (m *AccountManager) Stats() AccountStats {
	return ComputeAccountStats(m.list.Items())
}

func (m *AccountManager) Status() manager.Status {
	return m.list.Status()
}

func (m *AccountManager) Error() string {
	if msg := m.form.Error(); msg != "" {
		return msg
	}
	return m.list.Error()
}

func (m *AccountManager) Form() *manager.Form[AccountForm] {
	return m.form
}

// GenerateNumber fills the form with a fresh candidate account number.
func (m *AccountManager) GenerateNumber() string {
	number := GenerateAccountNumber()
	m.form.Update(func(v *AccountForm) { v.AccountNumber = number })
	return number
}

func (m *AccountManager) CanSubmit() bool {
	return m.list.Parent().IsPresent() && !m.list.Busy() && m.form.CanSubmit()
}

// Create opens a checking account for the selected customer.
func (m *AccountManager) Create(ctx context.Context) (*bank.CheckingAccount, error) {
	customerID, ok := m.list.Parent().Get()
	if !ok {
		return nil, manager.ErrNoParent
	}

	var created *bank.CheckingAccount
	err := manager.Submit(ctx, m.list, m.form, manager.Submission[bank.CheckingAccount, AccountForm]{
		Operation: "Create",
		Fallback:  "Failed to create account",
		Call: func(ctx context.Context, v AccountForm) error {
			var err error
			created, err = m.api.CreateCheckingAccount(ctx, bank.CheckingAccountCreate{
				AccountNumber: strings.TrimSpace(v.AccountNumber),
				CustomerID:    customerID,
			})
			return err
		},
		Signal: func(ctx context.Context) error {
			return m.bus.Signal(ctx, accountManagerName, refresh.Accounts)
		},
	})
	return created, err
}
