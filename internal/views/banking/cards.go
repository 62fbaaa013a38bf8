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

const creditCardManagerName = "credit_cards"

type creditCardAPI interface {
	ListCustomerAccounts(ctx context.Context, customerID int) (*bank.CustomerAccounts, error)
	CreateCreditCard(ctx context.Context, create bank.CreditCardCreate) (*bank.CreditCard, error)
}

// CreditCardManager lists the selected customer's credit cards.
type CreditCardManager struct {
	api  creditCardAPI
	bus  signaler
	list *manager.List[bank.CreditCard]
	form *manager.Form[CardForm]
}

func NewCreditCardManager(api creditCardAPI, bus signaler, logger *logrus.Logger) *CreditCardManager {
	m := &CreditCardManager{
		api:  api,
		bus:  bus,
		form: manager.NewForm(CardForm{}, checkForm[CardForm]),
	}
	m.list = manager.NewScopedList(creditCardManagerName, "Failed to load credit cards",
		func(ctx context.Context, customerID int) ([]bank.CreditCard, error) {
			out, err := api.ListCustomerAccounts(ctx, customerID)
			if err != nil {
				return nil, err
			}
			return out.CreditCards, nil
		}, logger)
	bus.Subscribe(creditCardManagerName, m.Load, refresh.Customers, refresh.CreditCards)
	return m
}

func (m *CreditCardManager) SetCustomer(ctx context.Context, customerID mo.Option[int]) error {
	if !m.list.SetParent(customerID) {
		return nil
	}
	m.form.Close()
	return m.list.Load(ctx)
}

func (m *CreditCardManager) Load(ctx context.Context) error {
	return m.list.Load(ctx)
}

func (m *CreditCardManager) Cards() []bank.CreditCard {
	return m.list.Items()
}

func (m *CreditCardManager) Stats() CardStats {
	return ComputeCardStats(m.list.Items())
}

func (m *CreditCardManager) Status() manager.Status {
	return m.list.Status()
}

func (m *CreditCardManager) Error() string {
	if msg := m.form.Error(); msg != "" {
		return msg
	}
	return m.list.Error()
}

func (m *CreditCardManager) Form() *manager.Form[CardForm] {
	return m.form
}

// GenerateNumber fills the form with a fresh candidate card number.
func (m *CreditCardManager) GenerateNumber() string {
	number := GenerateCardNumber()
	m.form.Update(func(v *CardForm) { v.CardNumber = number })
	return number
}

func (m *CreditCardManager) CanSubmit() bool {
	return m.list.Parent().IsPresent() && !m.list.Busy() && m.form.CanSubmit()
}

// Create issues a credit card to the selected customer.
func (m *CreditCardManager) Create(ctx context.Context) (*bank.CreditCard, error) {
	customerID, ok := m.list.Parent().Get()
	if !ok {
		return nil, manager.ErrNoParent
	}

	var created *bank.CreditCard
	err := manager.Submit(ctx, m.list, m.form, manager.Submission[bank.CreditCard, CardForm]{
		Operation: "Create",
		Fallback:  "Failed to create credit card",
		Call: func(ctx context.Context, v CardForm) error {
			var err error
			created, err = m.api.CreateCreditCard(ctx, bank.NewCreditCardCreate(customerID, strings.TrimSpace(v.CardNumber), v.CreditLimit))
			return err
		},
		Signal: func(ctx context.Context) error {
			return m.bus.Signal(ctx, creditCardManagerName, refresh.CreditCards)
		},
	})
	return created, err
}
