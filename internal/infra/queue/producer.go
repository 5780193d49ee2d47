package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type NotificationKind string

const (
	NotificationChargePaid    NotificationKind = "charge_paid"
	NotificationChargeOverdue NotificationKind = "charge_overdue"
)

// NotificationPayload é o aviso administrativo que o reconciliador publica
// e o worker entrega aos usuários master.
type NotificationPayload struct {
	Kind          NotificationKind `json:"kind"`
	ChargeID      string           `json:"charge_id"`
	CompanyID     string           `json:"company_id"`
	RazaoSocial   string           `json:"razao_social"`
	ValorCentavos int64            `json:"valor_centavos"`
	Mensagem      string           `json:"mensagem"`
}

type QueueProducerInterface interface {
	PublishNotification(ctx context.Context, payload NotificationPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, payload NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // sobrevive a restart do broker
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
