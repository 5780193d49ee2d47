package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
)

// CheckChargeStatusUseCase consulta o gateway pelo status atual de uma
// cobrança (polling manual, complementar ao webhook). A escrita passa pela
// mesma guarda do reconciliador: paga não rebaixa, mesmo que a consulta
// chegue atrasada em relação a um webhook.
type CheckChargeStatusUseCase struct {
	ChargeRepo entity.ChargeRepositoryInterface
	Gateway    PaymentGateway

	Now func() time.Time
}

func NewCheckChargeStatusUseCase(chargeRepo entity.ChargeRepositoryInterface, gateway PaymentGateway) *CheckChargeStatusUseCase {
	return &CheckChargeStatusUseCase{
		ChargeRepo: chargeRepo,
		Gateway:    gateway,
		Now:        time.Now,
	}
}

func (uc *CheckChargeStatusUseCase) Execute(ctx context.Context, chargeID string) (*entity.Charge, error) {
	charge, err := uc.ChargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		if errors.Is(err, entity.ErrChargeNotFound) {
			return nil, &DomainError{Code: CodeChargeNotFound, Message: "cobrança não encontrada"}
		}
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}

	if charge.ProviderID == "" {
		return nil, &DomainError{Code: CodeValidationError, Message: "cobrança sem ID no gateway"}
	}

	result, err := uc.Gateway.GetPayment(charge.ProviderID)
	if err != nil {
		// Timeout ou recusa do gateway: devolve o que temos no banco,
		// sem inventar status.
		log.Printf("⚠️ Consulta: gateway indisponível para cobrança %s: %v", charge.ID, err)
		return charge, nil
	}

	status, err := mercadopago.MapStatus(result.Status)
	if err != nil {
		log.Printf("❌ Consulta: %v (cobrança %s)", err, charge.ID)
		return charge, nil
	}

	if status == charge.Status {
		return charge, nil
	}

	var paidAt *time.Time
	if status == entity.ChargeStatusPaid {
		now := uc.Now()
		paidAt = &now
	}

	rows, err := uc.ChargeRepo.UpdateStatusGuarded(ctx, charge.ID, status, paidAt)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}
	if rows == 0 {
		// Guarda segurou: alguém (webhook) marcou como paga no meio tempo.
		log.Printf("ℹ️ Consulta: status de %s preservado pela guarda (tentativa de %s)", charge.ID, status)
		return uc.ChargeRepo.FindByID(ctx, chargeID)
	}

	charge.Status = status
	if paidAt != nil {
		charge.DataPagamento = paidAt
	}

	return charge, nil
}
