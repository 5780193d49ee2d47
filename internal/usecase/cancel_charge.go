package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// CancelChargeUseCase cancela uma cobrança que ainda não foi paga.
type CancelChargeUseCase struct {
	ChargeRepo entity.ChargeRepositoryInterface
	Gateway    PaymentGateway
}

func NewCancelChargeUseCase(chargeRepo entity.ChargeRepositoryInterface, gateway PaymentGateway) *CancelChargeUseCase {
	return &CancelChargeUseCase{ChargeRepo: chargeRepo, Gateway: gateway}
}

func (uc *CancelChargeUseCase) Execute(ctx context.Context, chargeID string) (*entity.Charge, error) {
	charge, err := uc.ChargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		if errors.Is(err, entity.ErrChargeNotFound) {
			return nil, &DomainError{Code: CodeChargeNotFound, Message: "cobrança não encontrada"}
		}
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}

	if charge.Status == entity.ChargeStatusPaid {
		return nil, &DomainError{Code: CodeValidationError, Message: "cobrança paga não pode ser cancelada"}
	}
	if charge.Status == entity.ChargeStatusCancelled {
		return charge, nil
	}

	// Cancela no gateway primeiro; se ele não conhecer a cobrança (erro
	// antes de criar lá), cancela só localmente.
	if charge.ProviderID != "" {
		if err := uc.Gateway.CancelPayment(charge.ProviderID); err != nil {
			log.Printf("⚠️ Cancelamento: gateway recusou para cobrança %s: %v", charge.ID, err)
		}
	}

	rows, err := uc.ChargeRepo.UpdateStatusGuarded(ctx, charge.ID, entity.ChargeStatusCancelled, nil)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}
	if rows == 0 {
		// Webhook de pagamento chegou entre a leitura e o cancelamento.
		return nil, &DomainError{Code: CodeValidationError, Message: "cobrança foi paga durante o cancelamento"}
	}

	charge.Status = entity.ChargeStatusCancelled
	return charge, nil
}
