package banking

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient/bank"
	"github.com/carson-networks/service-console/internal/manager"
	"github.com/carson-networks/service-console/internal/refresh"
)

const customerManagerName = "customers"

type customerAPI interface {
	ListCustomers(ctx context.Context) ([]bank.Customer, error)
	CreateCustomer(ctx context.Context, create bank.CustomerCreate) (*bank.Customer, error)
}

type CustomerManager struct {
	api  customerAPI
	bus  signaler
	list *manager.List[bank.Customer]
	form *manager.Form[CustomerForm]
}

func NewCustomerManager(api customerAPI, bus signaler, logger *logrus.Logger) *CustomerManager {
	m := &CustomerManager{
		api:  api,
		bus:  bus,
		form: manager.NewForm(CustomerForm{}, checkForm[CustomerForm]),
	}
	m.list = manager.NewList(customerManagerName, "Failed to load customers",
		func(ctx context.Context, _ int) ([]bank.Customer, error) {
			return api.ListCustomers(ctx)
		}, logger)
	bus.Subscribe(customerManagerName, m.Load, refresh.Customers)
	return m
}

func (m *CustomerManager) Load(ctx context.Context) error {
	return m.list.Load(ctx)
}

func (m *CustomerManager) Customers() []bank.Customer {
	return m.list.Items()
}

func (m *CustomerManager) Status() manager.Status {
	return m.list.Status()
}

// Error is the banner text: the last submit failure, else the last load failure.
func (m *CustomerManager) Error() string {
	if msg := m.form.Error(); msg != "" {
		return msg
	}
	return m.list.Error()
}

func (m *CustomerManager) Form() *manager.Form[CustomerForm] {
	return m.form
}

func (m *CustomerManager) CanSubmit() bool {
	return !m.list.Busy() && m.form.CanSubmit()
}

// Create submits the customer form.
func (m *CustomerManager) Create(ctx context.Context) (*bank.Customer, error) {
	var created *bank.Customer
	err := manager.Submit(ctx, m.list, m.form, manager.Submission[bank.Customer, CustomerForm]{
		Operation: "Create",
		Fallback:  "Failed to create customer",
		Call: func(ctx context.Context, v CustomerForm) error {
			var err error
			created, err = m.api.CreateCustomer(ctx, bank.CustomerCreate{
				FirstName: strings.TrimSpace(v.FirstName),
				LastName:  strings.TrimSpace(v.LastName),
				Email:     strings.TrimSpace(v.Email),
			})
			return err
		},
		Signal: func(ctx context.Context) error {
			return m.bus.Signal(ctx, customerManagerName, refresh.Customers)
		},
	})
	return created, err
}
