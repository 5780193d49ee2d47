package mercadopago

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

func TestMapStatus(t *testing.T) {
	cases := map[string]entity.ChargeStatus{
		"approved":     entity.ChargeStatusPaid,
		"pending":      entity.ChargeStatusPending,
		"in_process":   entity.ChargeStatusPending,
		"authorized":   entity.ChargeStatusPending,
		"rejected":     entity.ChargeStatusError,
		"cancelled":    entity.ChargeStatusCancelled,
		"refunded":     entity.ChargeStatusCancelled,
		"charged_back": entity.ChargeStatusCancelled,
	}

	for raw, want := range cases {
		got, err := MapStatus(raw)
		assert.NoError(t, err)
		assert.Equal(t, want, got, raw)
	}
}

// TestMapStatusUnknownFailsLoud - status novo do gateway tem que estourar,
// nunca virar um default silencioso.
func TestMapStatusUnknownFailsLoud(t *testing.T) {
	_, err := MapStatus("in_mediation")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "in_mediation")
}
