package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/contafacil-billing/internal/entity"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
	"github.com/xavierca1/contafacil-billing/internal/infra/queue"
)

// MockChargeRepository
type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) Create(ctx context.Context, c *entity.Charge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChargeRepository) FindByID(ctx context.Context, id string) (*entity.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindByProviderID(ctx context.Context, providerID string) (*entity.Charge, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Charge), args.Error(1)
}

func (m *MockChargeRepository) UpdatePaymentData(ctx context.Context, c *entity.Charge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChargeRepository) UpdateError(ctx context.Context, id string, providerResponse json.RawMessage) error {
	args := m.Called(ctx, id, providerResponse)
	return args.Error(0)
}

func (m *MockChargeRepository) MarkPaidByProviderID(ctx context.Context, providerID string, paidAt time.Time) (int64, error) {
	args := m.Called(ctx, providerID, paidAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChargeRepository) MarkOverdueByProviderID(ctx context.Context, providerID string) (int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChargeRepository) UpdateStatusGuarded(ctx context.Context, id string, status entity.ChargeStatus, paidAt *time.Time) (int64, error) {
	args := m.Called(ctx, id, status, paidAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChargeRepository) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *MockCompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockSubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id string) (*entity.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActive(ctx context.Context) ([]*entity.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id string, status entity.SubscriptionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) AdvanceBillingPeriod(ctx context.Context, id string, periodStart, nextCharge time.Time) error {
	args := m.Called(ctx, id, periodStart, nextCharge)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) CancelByProviderID(ctx context.Context, providerSubscriptionID string, cancelledAt time.Time) (int64, error) {
	args := m.Called(ctx, providerSubscriptionID, cancelledAt)
	return args.Get(0).(int64), args.Error(1)
}

// MockMonthlyPaymentRepository
type MockMonthlyPaymentRepository struct {
	mock.Mock
}

func (m *MockMonthlyPaymentRepository) Create(ctx context.Context, p *entity.MonthlyPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockMonthlyPaymentRepository) FindByID(ctx context.Context, id string) (*entity.MonthlyPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MonthlyPayment), args.Error(1)
}

func (m *MockMonthlyPaymentRepository) ExistsForPeriod(ctx context.Context, subscriptionID, mesReferencia string) (bool, error) {
	args := m.Called(ctx, subscriptionID, mesReferencia)
	return args.Bool(0), args.Error(1)
}

func (m *MockMonthlyPaymentRepository) FindDueForReminder(ctx context.Context, dueDate time.Time) ([]*entity.MonthlyPayment, error) {
	args := m.Called(ctx, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.MonthlyPayment), args.Error(1)
}

func (m *MockMonthlyPaymentRepository) UpdatePaymentArtifacts(ctx context.Context, p *entity.MonthlyPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockMonthlyPaymentRepository) MarkReminderSent(ctx context.Context, id string, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

func (m *MockMonthlyPaymentRepository) MarkPaid(ctx context.Context, p *entity.MonthlyPayment, metodo entity.PaymentType, dados json.RawMessage, paidAt time.Time) error {
	args := m.Called(ctx, p, metodo, dados, paidAt)
	return args.Error(0)
}

func (m *MockMonthlyPaymentRepository) MarkOverdueBefore(ctx context.Context, ref time.Time) (int64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentMethod), args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCustomer(input mercadopago.CreateCustomerInput) (string, error) {
	args := m.Called(input)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateCharge(input mercadopago.ChargeInput) (*mercadopago.ChargeOutput, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.ChargeOutput), args.Error(1)
}

func (m *MockPaymentGateway) GetPayment(providerID string) (*mercadopago.ChargeOutput, error) {
	args := m.Called(providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.ChargeOutput), args.Error(1)
}

func (m *MockPaymentGateway) CancelPayment(providerID string) error {
	args := m.Called(providerID)
	return args.Error(0)
}

func (m *MockPaymentGateway) CreateSubscription(input mercadopago.SubscriptionInput) (*mercadopago.SubscriptionOutput, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.SubscriptionOutput), args.Error(1)
}

func (m *MockPaymentGateway) CancelSubscription(providerID string) error {
	args := m.Called(providerID)
	return args.Error(0)
}

func (m *MockPaymentGateway) ProcessWebhook(raw []byte) (*mercadopago.WebhookEvent, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.WebhookEvent), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendChargeNotification(to string, data ChargeNotificationData) error {
	args := m.Called(to, data)
	return args.Error(0)
}

func (m *MockEmailService) SendPaymentReminder(to string, data PaymentReminderData) error {
	args := m.Called(to, data)
	return args.Error(0)
}

// MockWhatsAppService
type MockWhatsAppService struct {
	mock.Mock
}

func (m *MockWhatsAppService) SendMessage(phone, message string) error {
	args := m.Called(phone, message)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishNotification(ctx context.Context, payload queue.NotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
