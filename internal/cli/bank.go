package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/carson-networks/service-console/internal/apiclient/bank"
	"github.com/carson-networks/service-console/internal/views/banking"
)

func newBankCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Customers, checking accounts, transactions and credit cards.",
	}
	cmd.AddCommand(newCustomersCommand(app))
	cmd.AddCommand(newAccountsCommand(app))
	cmd.AddCommand(newTransactionsCommand(app))
	cmd.AddCommand(newCardsCommand(app))
	cmd.AddCommand(newHealthCommand("Check the bank service.", func(ctx context.Context) (string, error) {
		msg, err := app.bankClient().Health(ctx)
		if err != nil {
			return "", err
		}
		return msg.Message, nil
	}, app))
	return cmd
}

// -- customers --

func newCustomersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List and create customers.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every customer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.bankShell()
			if err := shell.Mount(cmd.Context()); err != nil {
				return fail(app.errOut, shell.Customers.Error(), err)
			}
			renderCustomers(app, shell.Customers.Customers())
			return nil
		},
	})

	var form banking.CustomerForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a customer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.bankShell()
			m := shell.Customers
			m.Form().Open(form)
			if err := m.Form().Validate(); err != nil {
				return fail(app.errOut, formMessage(err), err)
			}
			created, err := m.Create(cmd.Context())
			if err != nil {
				return fail(app.errOut, m.Error(), err)
			}
			success(app.out, "Created customer %d: %s <%s>", created.ID, created.FullName(), created.Email)
			return nil
		},
	}
	create.Flags().StringVar(&form.FirstName, "first-name", "", "first name")
	create.Flags().StringVar(&form.LastName, "last-name", "", "last name")
	create.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.AddCommand(create)

	return cmd
}

func renderCustomers(app *App, customers []bank.Customer) {
	if len(customers) == 0 {
		empty(app.out, "customers")
		return
	}
	t := newTable(app.out, "ID", "NAME", "EMAIL", "CREATED")
	for _, c := range customers {
		t.row(strconv.Itoa(c.ID), c.FullName(), c.Email, c.CreatedAt.Format("2006-01-02"))
	}
	t.flush()
	stat(app.out, "Customers", strconv.Itoa(len(customers)))
}

// selectCustomer mounts shell and selects customerID.
func selectCustomer(ctx context.Context, app *App, shell *banking.Shell, customerID int) error {
	if err := shell.Mount(ctx); err != nil {
		return fail(app.errOut, shell.Customers.Error(), err)
	}
	if err := shell.SelectCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, banking.ErrNotLoaded) {
			return fail(app.errOut, fmt.Sprintf("Customer %d not found", customerID), err)
		}
		return fail(app.errOut, loadMessage(err, shell.Accounts.Error(), shell.CreditCards.Error()), err)
	}
	return nil
}

// -- accounts --

func newAccountsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List and open checking accounts.",
	}

	var customerID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List a customer's checking accounts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.bankShell()
			if err := selectCustomer(cmd.Context(), app, shell, customerID); err != nil {
				return err
			}
			renderAccounts(app, shell.Accounts)
			return nil
		},
	}
	list.Flags().IntVar(&customerID, "customer", 0, "customer id")
	_ = list.MarkFlagRequired("customer")
	cmd.AddCommand(list)

	var createCustomerID int
	var number string
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a checking account. Without --number one is generated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.bankShell()
			if err := selectCustomer(cmd.Context(), app, shell, createCustomerID); err != nil {
				return err
			}
			m := shell.Accounts
			m.Form().Open(banking.AccountForm{AccountNumber: number})
			if number == "" {
				m.GenerateNumber()
			}
			account, err := m.Create(cmd.Context())
			if err != nil {
				return fail(app.errOut, submitMessage(err, m.Error()), err)
			}
			success(app.out, "Opened account %d: %s", account.ID, account.AccountNumber)
			return nil
		},
	}
	create.Flags().IntVar(&createCustomerID, "customer", 0, "customer id")
	create.Flags().StringVar(&number, "number", "", "account number")
	_ = create.MarkFlagRequired("customer")
	cmd.AddCommand(create)

	return cmd
}

func renderAccounts(app *App, m *banking.AccountManager) {
	accounts := m.Accounts()
	if len(accounts) == 0 {
		empty(app.out, "checking accounts")
		return
	}
	t := newTable(app.out, "ID", "NUMBER", "BALANCE", "STATUS")
	for _, a := range accounts {
		t.row(strconv.Itoa(a.ID), a.AccountNumber, banking.FormatCurrency(a.Balance), activeLabel(a.IsActive))
	}
	t.flush()
	stats := m.Stats()
	stat(app.out, "Total balance", banking.FormatCurrency(stats.TotalBalance))
	stat(app.out, "Active accounts", fmt.Sprintf("%d of %d", stats.ActiveCount, stats.Count))
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// -- transactions --

func newTransactionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List an account's transactions, deposit and withdraw.",
	}

	var customerID, accountID int
	cmd.PersistentFlags().IntVar(&customerID, "customer", 0, "customer id")
	cmd.PersistentFlags().IntVar(&accountID, "account", 0, "checking account id")
	_ = cmd.MarkPersistentFlagRequired("customer")
	_ = cmd.MarkPersistentFlagRequired("account")

	selectAccount := func(ctx context.Context) (*banking.Shell, error) {
		shell := app.bankShell()
		if err := selectCustomer(ctx, app, shell, customerID); err != nil {
			return nil, err
		}
		if err := shell.SelectAccountByID(ctx, accountID); err != nil {
			if errors.Is(err, banking.ErrNotLoaded) {
				return nil, fail(app.errOut, fmt.Sprintf("Account %d not found for customer %d", accountID, customerID), err)
			}
			return nil, fail(app.errOut, loadMessage(err, shell.Transactions.Error()), err)
		}
		return shell, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the account's transactions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, err := selectAccount(cmd.Context())
			if err != nil {
				return err
			}
			renderTransactions(app, shell.Transactions)
			return nil
		},
	})

	for _, kind := range []bank.TransactionType{bank.TransactionDeposit, bank.TransactionWithdrawal} {
		cmd.AddCommand(newMovementCommand(app, kind, selectAccount))
	}

	return cmd
}

func newMovementCommand(app *App, kind bank.TransactionType, selectAccount func(context.Context) (*banking.Shell, error)) *cobra.Command {
	use, short := "deposit", "Deposit into the account."
	if kind == bank.TransactionWithdrawal {
		use, short = "withdraw", "Withdraw from the account."
	}

	var amount, description string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fail(app.errOut, fmt.Sprintf("amount %q is not a number", amount), err)
			}
			shell, err := selectAccount(cmd.Context())
			if err != nil {
				return err
			}

			m := shell.Transactions
			form, submit := m.DepositForm(), m.Deposit
			if kind == bank.TransactionWithdrawal {
				form, submit = m.WithdrawForm(), m.Withdraw
			}
			form.Open(banking.MovementForm{Amount: value, Description: description})

			change, err := submit(cmd.Context())
			if err != nil {
				return fail(app.errOut, submitMessage(err, m.Error()), err)
			}
			success(app.out, "%s New balance: %s", change.Message, banking.FormatCurrency(change.NewBalance))
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount in dollars")
	cmd.Flags().StringVar(&description, "description", "", "description")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func renderTransactions(app *App, m *banking.TransactionManager) {
	if account, ok := m.Account().Get(); ok {
		stat(app.out, "Account", account.AccountNumber)
		stat(app.out, "Current balance", banking.FormatCurrency(m.Balance()))
	}
	txs := m.Transactions()
	if len(txs) == 0 {
		empty(app.out, "transactions")
		return
	}
	t := newTable(app.out, "ID", "TYPE", "AMOUNT", "DESCRIPTION", "DATE")
	for _, tx := range txs {
		amount := banking.FormatCurrency(tx.Amount)
		if tx.TransactionType == bank.TransactionWithdrawal {
			amount = "-" + amount
		}
		t.row(strconv.Itoa(tx.ID), string(tx.TransactionType), amount, tx.Description, tx.CreatedAt.Format("2006-01-02 15:04"))
	}
	t.flush()
	stats := m.Stats()
	stat(app.out, "Total deposits", banking.FormatCurrency(stats.TotalDeposits))
	stat(app.out, "Total withdrawals", banking.FormatCurrency(stats.TotalWithdrawals))
}

// -- credit cards --

func newCardsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List and issue credit cards.",
	}

	var customerID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List a customer's credit cards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := app.bankShell()
			if err := selectCustomer(cmd.Context(), app, shell, customerID); err != nil {
				return err
			}
			renderCards(app, shell.CreditCards)
			return nil
		},
	}
	list.Flags().IntVar(&customerID, "customer", 0, "customer id")
	_ = list.MarkFlagRequired("customer")
	cmd.AddCommand(list)

	var createCustomerID int
	var number, limit string
	create := &cobra.Command{
		Use:   "create",
		Short: "Issue a credit card. Without --number one is generated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(limit)
			if err != nil {
				return fail(app.errOut, fmt.Sprintf("credit limit %q is not a number", limit), err)
			}
			shell := app.bankShell()
			if err := selectCustomer(cmd.Context(), app, shell, createCustomerID); err != nil {
				return err
			}
			m := shell.CreditCards
			m.Form().Open(banking.CardForm{CardNumber: number, CreditLimit: value})
			if number == "" {
				m.GenerateNumber()
			}
			card, err := m.Create(cmd.Context())
			if err != nil {
				return fail(app.errOut, submitMessage(err, m.Error()), err)
			}
			success(app.out, "Issued card %d: %s with limit %s", card.ID, banking.FormatCardNumber(card.CardNumber), banking.FormatCurrency(card.CreditLimit))
			return nil
		},
	}
	create.Flags().IntVar(&createCustomerID, "customer", 0, "customer id")
	create.Flags().StringVar(&number, "number", "", "16 digit card number")
	create.Flags().StringVar(&limit, "limit", "", "credit limit, at least 100")
	_ = create.MarkFlagRequired("customer")
	_ = create.MarkFlagRequired("limit")
	cmd.AddCommand(create)

	return cmd
}

func renderCards(app *App, m *banking.CreditCardManager) {
	cards := m.Cards()
	if len(cards) == 0 {
		empty(app.out, "credit cards")
		return
	}
	t := newTable(app.out, "ID", "NUMBER", "LIMIT", "BALANCE", "AVAILABLE", "UTILIZATION")
	for _, c := range cards {
		t.row(
			strconv.Itoa(c.ID),
			banking.FormatCardNumber(c.CardNumber),
			banking.FormatCurrency(c.CreditLimit),
			banking.FormatCurrency(c.CurrentBalance),
			banking.FormatCurrency(banking.AvailableCredit(c)),
			utilizationCell(c),
		)
	}
	t.flush()
	stats := m.Stats()
	stat(app.out, "Total limit", banking.FormatCurrency(stats.TotalLimit))
	stat(app.out, "Total balance", banking.FormatCurrency(stats.TotalBalance))
	stat(app.out, "Total available", banking.FormatCurrency(stats.TotalAvailable))
}

// utilizationCell draws a ten step bar from the clamped value next to the unclamped label.
func utilizationCell(c bank.CreditCard) string {
	filled := banking.UtilizationBar(c) / 10
	bar := strings.Repeat("#", filled) + strings.Repeat(".", 10-filled)
	return fmt.Sprintf("[%s] %d%%", bar, banking.Utilization(c))
}
