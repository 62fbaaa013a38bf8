package banking

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient/bank"
	"github.com/carson-networks/service-console/internal/manager"
	"github.com/carson-networks/service-console/internal/refresh"
)

const transactionManagerName = "transactions"

type transactionAPI interface {
	ListAccountTransactions(ctx context.Context, accountID int) ([]bank.Transaction, error)
	Deposit(ctx context.Context, accountID int, movement bank.MoneyMovement) (*bank.BalanceChange, error)
	Withdraw(ctx context.Context, accountID int, movement bank.MoneyMovement) (*bank.BalanceChange, error)
}

// TransactionManager lists the selected account's transactions and moves money in and out.
// It tracks the account balance, adopting the balance returned by each movement.
type TransactionManager struct {
	api      transactionAPI
	bus      signaler
	list     *manager.List[bank.Transaction]
	deposit  *manager.Form[MovementForm]
	withdraw *manager.Form[MovementForm]

	mu      sync.Mutex
	account mo.Option[bank.CheckingAccount]
}

func NewTransactionManager(api transactionAPI, bus signaler, logger *logrus.Logger) *TransactionManager {
	m := &TransactionManager{
		api:     api,
		bus:     bus,
		deposit: manager.NewForm(MovementForm{}, checkForm[MovementForm]),
	}
	m.withdraw = manager.NewForm(MovementForm{}, m.checkWithdrawal)
	m.list = manager.NewScopedList(transactionManagerName, "Failed to load transactions",
		func(ctx context.Context, accountID int) ([]bank.Transaction, error) {
			return api.ListAccountTransactions(ctx, accountID)
		}, logger)
	bus.Subscribe(transactionManagerName, m.Load, refresh.Transactions)
	return m
}

func (m *TransactionManager) checkWithdrawal(v MovementForm) error {
	if err := checkForm(v); err != nil {
		return err
	}
	if v.Amount.GreaterThan(m.Balance()) {
		return ErrInsufficientFunds
	}
	return nil
}

// SetAccount rescopes the manager to account and reloads when the account changed.
func (m *TransactionManager) SetAccount(ctx context.Context, account mo.Option[bank.CheckingAccount]) error {
	m.mu.Lock()
	m.account = account
	m.mu.Unlock()

	id := mo.None[int]()
	if a, ok := account.Get(); ok {
		id = mo.Some(a.ID)
	}
	if !m.list.SetParent(id) {
		return nil
	}
	m.deposit.Close()
	m.withdraw.Close()
	return m.list.Load(ctx)
}

func (m *TransactionManager) Account() mo.Option[bank.CheckingAccount] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account
}

// Balance is the tracked balance of the selected account, zero when none is selected.
func (m *TransactionManager) Balance() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.account.Get(); ok {
		return a.Balance
	}
	return decimal.Zero
}

func (m *TransactionManager) Load(ctx context.Context) error {
	return m.list.Load(ctx)
}

func (m *TransactionManager) Transactions() []bank.Transaction {
	return m.list.Items()
}

func (m *TransactionManager) Stats() TransactionStats {
	return ComputeTransactionStats(m.list.Items())
}

func (m *TransactionManager) Status() manager.Status {
	return m.list.Status()
}

func (m *TransactionManager) Error() string {
	if msg := m.deposit.Error(); msg != "" {
		return msg
	}
	if msg := m.withdraw.Error(); msg != "" {
		return msg
	}
	return m.list.Error()
}

func (m *TransactionManager) DepositForm() *manager.Form[MovementForm] {
	return m.deposit
}

func (m *TransactionManager) WithdrawForm() *manager.Form[MovementForm] {
	return m.withdraw
}

func (m *TransactionManager) CanDeposit() bool {
	return m.list.Parent().IsPresent() && !m.list.Busy() && m.deposit.CanSubmit()
}

func (m *TransactionManager) CanWithdraw() bool {
	return m.list.Parent().IsPresent() && !m.list.Busy() && m.withdraw.CanSubmit()
}

// Deposit submits the deposit form.
func (m *TransactionManager) Deposit(ctx context.Context) (*bank.BalanceChange, error) {
	return m.move(ctx, m.deposit, "Deposit", "Failed to deposit funds", m.api.Deposit)
}

// Withdraw submits the withdraw form. Amounts above the tracked balance are refused
// with ErrInsufficientFunds before any API call.
func (m *TransactionManager) Withdraw(ctx context.Context) (*bank.BalanceChange, error) {
	return m.move(ctx, m.withdraw, "Withdrawal", "Failed to withdraw funds", m.api.Withdraw)
}

type movementCall func(ctx context.Context, accountID int, movement bank.MoneyMovement) (*bank.BalanceChange, error)

func (m *TransactionManager) move(ctx context.Context, form *manager.Form[MovementForm], label, fallback string, call movementCall) (*bank.BalanceChange, error) {
	accountID, ok := m.list.Parent().Get()
	if !ok {
		return nil, manager.ErrNoParent
	}

	var change *bank.BalanceChange
	err := manager.Submit(ctx, m.list, form, manager.Submission[bank.Transaction, MovementForm]{
		Operation: label,
		Fallback:  fallback,
		Call: func(ctx context.Context, v MovementForm) error {
			description := strings.TrimSpace(v.Description)
			if description == "" {
				description = label
			}
			var err error
			change, err = call(ctx, accountID, bank.NewMoneyMovement(v.Amount, description))
			if err != nil {
				return err
			}
			m.adoptBalance(accountID, change.NewBalance)
			return nil
		},
		Signal: func(ctx context.Context) error {
			return m.bus.Signal(ctx, transactionManagerName, refresh.Transactions, refresh.Accounts)
		},
	})
	return change, err
}

func (m *TransactionManager) adoptBalance(accountID int, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.account.Get(); ok && a.ID == accountID {
		a.Balance = balance
		m.account = mo.Some(a)
	}
}
