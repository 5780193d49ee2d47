package mercadopago

import (
	"fmt"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// MapStatus traduz o vocabulário do Mercado Pago para o nosso enum fechado.
// A tabela é total: status desconhecido é erro de integração e estoura aqui,
// nunca vira um default silencioso.
func MapStatus(status string) (entity.ChargeStatus, error) {
	switch status {
	case "approved":
		return entity.ChargeStatusPaid, nil
	case "pending", "in_process", "authorized":
		return entity.ChargeStatusPending, nil
	case "rejected":
		return entity.ChargeStatusError, nil
	case "cancelled", "refunded", "charged_back":
		return entity.ChargeStatusCancelled, nil
	}
	return "", fmt.Errorf("status do mercado pago sem mapeamento: %q", status)
}
