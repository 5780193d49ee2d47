package usecase

import (
	"context"

	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
	"github.com/xavierca1/contafacil-billing/internal/infra/queue"
)

// PaymentGateway é a fronteira com o provedor de pagamento. O client do
// Mercado Pago implementa; um segundo provedor entraria por aqui.
type PaymentGateway interface {
	CreateCustomer(input mercadopago.CreateCustomerInput) (string, error)
	CreateCharge(input mercadopago.ChargeInput) (*mercadopago.ChargeOutput, error)
	GetPayment(providerID string) (*mercadopago.ChargeOutput, error)
	CancelPayment(providerID string) error
	CreateSubscription(input mercadopago.SubscriptionInput) (*mercadopago.SubscriptionOutput, error)
	CancelSubscription(providerID string) error
	ProcessWebhook(raw []byte) (*mercadopago.WebhookEvent, error)
}

// EmailService: falha de envio retorna erro, mas quem chama decide se engole.
type EmailService interface {
	SendChargeNotification(to string, data ChargeNotificationData) error
	SendPaymentReminder(to string, data PaymentReminderData) error
}

type WhatsAppService interface {
	SendMessage(phone, message string) error
}

type QueueProducerInterface interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}
