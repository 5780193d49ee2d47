package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// AdminNotifier entrega o aviso em si (email hoje, o canal que for amanhã).
type AdminNotifier interface {
	SendAdminAlert(to, subject, message string) error
}

// Worker consome a fila de avisos e entrega para todos os usuários master.
// Desacoplado do reconciliador: se o SMTP estiver fora, a mensagem volta
// para a fila em vez de atrasar o webhook.
type Worker struct {
	Channel  *amqp.Channel
	Notifier AdminNotifier
	Users    entity.UserRepositoryInterface
}

func NewWorker(ch *amqp.Channel, notifier AdminNotifier, users entity.UserRepositoryInterface) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Users:    users,
	}
}

func (w *Worker) Start(ctx context.Context, queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack manual
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	log.Printf(" [*] Worker de notificações aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de notificações encerrado")
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}

			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre: rejeita sem requeue, vai para a DLQ.
				d.Nack(false, false)
				continue
			}

			if err := w.deliver(ctx, payload); err != nil {
				log.Printf("❌ [WORKER] Falha na entrega: %s", err)
				d.Nack(false, false)
				continue
			}

			d.Ack(false)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, payload NotificationPayload) error {
	masters, err := w.Users.FindMasters(ctx)
	if err != nil {
		return err
	}

	subject := "Cobrança Paga"
	if payload.Kind == NotificationChargeOverdue {
		subject = "Cobrança Vencida"
	}

	delivered := 0
	for _, master := range masters {
		if master.Email == "" {
			continue
		}
		if err := w.Notifier.SendAdminAlert(master.Email, subject, payload.Mensagem); err != nil {
			log.Printf("⚠️ [WORKER] Falha ao avisar %s: %v", master.Email, err)
			continue
		}
		delivered++
	}

	log.Printf("✅ [WORKER] Aviso '%s' entregue para %d master(s)", subject, delivered)
	return nil
}
