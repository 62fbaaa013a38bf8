package banking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient/bank"
	"github.com/carson-networks/service-console/internal/refresh"
)

type Tab string

const (
	TabCustomers    Tab = "customers"
	TabAccounts     Tab = "accounts"
	TabTransactions Tab = "transactions"
	TabCreditCards  Tab = "credit-cards"
)

var tabOrder = []Tab{TabCustomers, TabAccounts, TabTransactions, TabCreditCards}

var (
	// ErrTabDisabled is returned when selecting a tab whose parent selection is missing.
	ErrTabDisabled = errors.New("banking: tab is disabled")
	// ErrNotLoaded is returned when a selection by id finds nothing in the loaded list.
	ErrNotLoaded = errors.New("banking: not loaded")
)

type TabState struct {
	Tab      Tab
	Disabled bool
}

// API is the bank backend surface the shell's managers use.
type API interface {
	customerAPI
	accountAPI
	creditCardAPI
	transactionAPI
}

// Shell holds the selected customer and account, the active tab and the refresh bus
// shared by the four managers.
type Shell struct {
	Customers    *CustomerManager
	Accounts     *AccountManager
	Transactions *TransactionManager
	CreditCards  *CreditCardManager

	bus    *refresh.Bus
	logger *logrus.Logger

	mu       sync.Mutex
	customer mo.Option[bank.Customer]
	account  mo.Option[bank.CheckingAccount]
	tab      Tab
}

func NewShell(api API, bus *refresh.Bus, logger *logrus.Logger) *Shell {
	return &Shell{
		Customers:    NewCustomerManager(api, bus, logger),
		Accounts:     NewAccountManager(api, bus, logger),
		Transactions: NewTransactionManager(api, bus, logger),
		CreditCards:  NewCreditCardManager(api, bus, logger),
		bus:          bus,
		logger:       logger,
		tab:          TabCustomers,
	}
}

// Mount loads the customer list.
func (s *Shell) Mount(ctx context.Context) error {
	return s.Customers.Load(ctx)
}

// SelectCustomer scopes accounts and cards to customer and clears the selected account.
func (s *Shell) SelectCustomer(ctx context.Context, customer bank.Customer) error {
	s.mu.Lock()
	s.customer = mo.Some(customer)
	s.account = mo.None[bank.CheckingAccount]()
	s.mu.Unlock()

	s.logger.WithField("customerId", customer.ID).Debug("Shell.Banking.SelectCustomer")
	return errors.Join(
		s.Transactions.SetAccount(ctx, mo.None[bank.CheckingAccount]()),
		s.Accounts.SetCustomer(ctx, mo.Some(customer.ID)),
		s.CreditCards.SetCustomer(ctx, mo.Some(customer.ID)),
	)
}

// SelectCustomerByID selects a customer from the loaded list.
func (s *Shell) SelectCustomerByID(ctx context.Context, customerID int) error {
	customer, ok := lo.Find(s.Customers.Customers(), func(c bank.Customer) bool { return c.ID == customerID })
	if !ok {
		return fmt.Errorf("%w: customer %d", ErrNotLoaded, customerID)
	}
	return s.SelectCustomer(ctx, customer)
}

// ClearCustomer drops both selections and returns to the customers tab.
func (s *Shell) ClearCustomer(ctx context.Context) error {
	s.mu.Lock()
	s.customer = mo.None[bank.Customer]()
	s.account = mo.None[bank.CheckingAccount]()
	s.tab = TabCustomers
	s.mu.Unlock()

	return errors.Join(
		s.Transactions.SetAccount(ctx, mo.None[bank.CheckingAccount]()),
		s.Accounts.SetCustomer(ctx, mo.None[int]()),
		s.CreditCards.SetCustomer(ctx, mo.None[int]()),
	)
}

// SelectAccount scopes transactions to account and switches to the transactions tab.
func (s *Shell) SelectAccount(ctx context.Context, account bank.CheckingAccount) error {
	s.mu.Lock()
	if s.customer.IsAbsent() {
		s.mu.Unlock()
		return ErrTabDisabled
	}
	s.account = mo.Some(account)
	s.tab = TabTransactions
	s.mu.Unlock()

	s.logger.WithField("accountId", account.ID).Debug("Shell.Banking.SelectAccount")
	return s.Transactions.SetAccount(ctx, mo.Some(account))
}

// SelectAccountByID selects an account from the loaded account list.
func (s *Shell) SelectAccountByID(ctx context.Context, accountID int) error {
	account, ok := s.Accounts.Account(accountID)
	if !ok {
		return fmt.Errorf("%w: account %d", ErrNotLoaded, accountID)
	}
	return s.SelectAccount(ctx, account)
}

func (s *Shell) SelectTab(tab Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled(tab) {
		return fmt.Errorf("%w: %s", ErrTabDisabled, tab)
	}
	s.tab = tab
	return nil
}

// Tabs lists every tab in display order with its enabled state.
func (s *Shell) Tabs() []TabState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(tabOrder, func(tab Tab, _ int) TabState {
		return TabState{Tab: tab, Disabled: s.disabled(tab)}
	})
}

func (s *Shell) disabled(tab Tab) bool {
	switch tab {
	case TabAccounts, TabCreditCards:
		return s.customer.IsAbsent()
	case TabTransactions:
		return s.account.IsAbsent()
	default:
		return false
	}
}

func (s *Shell) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func (s *Shell) SelectedCustomer() mo.Option[bank.Customer] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

func (s *Shell) SelectedAccount() mo.Option[bank.CheckingAccount] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

// RefreshCount is the number of refresh signals raised by the managers.
func (s *Shell) RefreshCount() uint64 {
	return s.bus.Count()
}
