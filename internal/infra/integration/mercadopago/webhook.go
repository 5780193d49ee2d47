package mercadopago

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventKind é o enum fechado que o reconciliador consome. A tradução do
// payload cru para cá é responsabilidade do gateway: outro provedor entra
// no sistema implementando a mesma normalização, sem tocar no reconciliador.
type EventKind string

const (
	EventPaymentUpdated        EventKind = "payment_updated"
	EventPaymentReceived       EventKind = "payment_received"
	EventPaymentOverdue        EventKind = "payment_overdue"
	EventSubscriptionCancelled EventKind = "subscription_cancelled"
	EventUnknown               EventKind = "unknown"
)

type WebhookEvent struct {
	Kind     EventKind
	ObjectID string // id do pagamento ou da assinatura no gateway
	Status   string // status cru, quando o payload traz
	RawEvent string // nome original do evento, para log
}

// webhookPayload aceita as duas formas que já chegaram em produção:
// o formato do Mercado Pago ({type, action, data}) e o formato legado
// maiúsculo ({event: "PAYMENT_RECEIVED", payment: {id}}).
type webhookPayload struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID     json.Number `json:"id"`
		Status string      `json:"status"`
	} `json:"data"`

	Event   string `json:"event"`
	Payment struct {
		ID json.Number `json:"id"`
	} `json:"payment"`
	Subscription struct {
		ID string `json:"id"`
	} `json:"subscription"`
	SubscriptionID string `json:"subscription_id"`
}

// ProcessWebhook normaliza o payload cru em um WebhookEvent. Erro aqui
// significa payload ilegível; evento desconhecido NÃO é erro (EventUnknown).
func (c *Client) ProcessWebhook(raw []byte) (*WebhookEvent, error) {
	var payload webhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("webhook ilegível: %w", err)
	}

	// Formato Mercado Pago: type + action.
	if payload.Type != "" {
		name := payload.Type + "." + payload.Action
		event := &WebhookEvent{
			ObjectID: payload.Data.ID.String(),
			Status:   payload.Data.Status,
			RawEvent: name,
		}
		switch {
		case payload.Type == "payment" && (strings.Contains(payload.Action, "updated") || strings.Contains(payload.Action, "approved") || strings.Contains(payload.Action, "created")):
			event.Kind = EventPaymentUpdated
		case payload.Type == "payment" && strings.Contains(payload.Action, "overdue"):
			event.Kind = EventPaymentOverdue
		case payload.Type == "subscription" && strings.Contains(payload.Action, "cancelled"):
			event.Kind = EventSubscriptionCancelled
		default:
			event.Kind = EventUnknown
		}
		return event, nil
	}

	// Formato legado maiúsculo.
	if payload.Event != "" {
		event := &WebhookEvent{RawEvent: payload.Event}
		switch payload.Event {
		case "PAYMENT_RECEIVED", "PAYMENT_CONFIRMED", "PAYMENT_APPROVED":
			event.Kind = EventPaymentReceived
			event.ObjectID = payload.Payment.ID.String()
		case "PAYMENT_OVERDUE":
			event.Kind = EventPaymentOverdue
			event.ObjectID = payload.Payment.ID.String()
		case "SUBSCRIPTION_CANCELLED":
			event.Kind = EventSubscriptionCancelled
			event.ObjectID = payload.Subscription.ID
			if event.ObjectID == "" {
				event.ObjectID = payload.SubscriptionID
			}
		default:
			event.Kind = EventUnknown
			event.ObjectID = payload.Payment.ID.String()
		}
		return event, nil
	}

	return &WebhookEvent{Kind: EventUnknown}, nil
}
