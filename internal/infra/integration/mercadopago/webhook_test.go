package mercadopago

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessWebhookMercadoPagoFormat(t *testing.T) {
	client := &Client{}

	raw := []byte(`{"type":"payment","action":"payment.updated","data":{"id":123456789,"status":"approved"}}`)

	event, err := client.ProcessWebhook(raw)

	assert.NoError(t, err)
	assert.Equal(t, EventPaymentUpdated, event.Kind)
	assert.Equal(t, "123456789", event.ObjectID)
	assert.Equal(t, "approved", event.Status)
}

func TestProcessWebhookMercadoPagoOverdue(t *testing.T) {
	client := &Client{}

	raw := []byte(`{"type":"payment","action":"payment.overdue","data":{"id":55}}`)

	event, err := client.ProcessWebhook(raw)

	assert.NoError(t, err)
	assert.Equal(t, EventPaymentOverdue, event.Kind)
	assert.Equal(t, "55", event.ObjectID)
}

func TestProcessWebhookLegacyPaymentReceived(t *testing.T) {
	client := &Client{}

	raw := []byte(`{"event":"PAYMENT_RECEIVED","payment":{"id":987}}`)

	event, err := client.ProcessWebhook(raw)

	assert.NoError(t, err)
	assert.Equal(t, EventPaymentReceived, event.Kind)
	assert.Equal(t, "987", event.ObjectID)
}

func TestProcessWebhookLegacySubscriptionCancelled(t *testing.T) {
	client := &Client{}

	// O id da assinatura já chegou nos dois lugares em produção.
	event, err := client.ProcessWebhook([]byte(`{"event":"SUBSCRIPTION_CANCELLED","subscription":{"id":"sub-9"}}`))
	assert.NoError(t, err)
	assert.Equal(t, EventSubscriptionCancelled, event.Kind)
	assert.Equal(t, "sub-9", event.ObjectID)

	event, err = client.ProcessWebhook([]byte(`{"event":"SUBSCRIPTION_CANCELLED","subscription_id":"sub-10"}`))
	assert.NoError(t, err)
	assert.Equal(t, "sub-10", event.ObjectID)
}

// TestProcessWebhookUnknownEventIsNotError - evento novo não derruba o
// endpoint: vira EventUnknown e o chamador decide dar ACK.
func TestProcessWebhookUnknownEventIsNotError(t *testing.T) {
	client := &Client{}

	event, err := client.ProcessWebhook([]byte(`{"event":"CHARGEBACK_DISPUTE","payment":{"id":1}}`))
	assert.NoError(t, err)
	assert.Equal(t, EventUnknown, event.Kind)

	event, err = client.ProcessWebhook([]byte(`{"type":"plan","action":"plan.updated","data":{"id":71}}`))
	assert.NoError(t, err)
	assert.Equal(t, EventUnknown, event.Kind)

	event, err = client.ProcessWebhook([]byte(`{}`))
	assert.NoError(t, err)
	assert.Equal(t, EventUnknown, event.Kind)
}

func TestProcessWebhookBadJSON(t *testing.T) {
	client := &Client{}

	_, err := client.ProcessWebhook([]byte(`{"type":`))

	assert.Error(t, err)
}
