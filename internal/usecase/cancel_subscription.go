package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// CancelSubscriptionUseCase encerra o contrato recorrente. Soft: a
// assinatura vira cancelled, nada é apagado.
type CancelSubscriptionUseCase struct {
	SubRepo entity.SubscriptionRepositoryInterface
	Gateway PaymentGateway

	Now func() time.Time
}

func NewCancelSubscriptionUseCase(subRepo entity.SubscriptionRepositoryInterface, gateway PaymentGateway) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		SubRepo: subRepo,
		Gateway: gateway,
		Now:     time.Now,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, subscriptionID string) error {
	sub, err := uc.SubRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, entity.ErrSubscriptionNotFound) {
			return &DomainError{Code: CodeValidationError, Message: "assinatura não encontrada"}
		}
		return &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}

	if sub.Status == entity.SubscriptionStatusCancelled {
		return nil
	}

	if sub.ProviderSubscriptionID != "" {
		if err := uc.Gateway.CancelSubscription(sub.ProviderSubscriptionID); err != nil {
			// Cancela localmente mesmo assim: o gateway pode ser acertado
			// depois, a cobrança recorrente local para agora.
			log.Printf("⚠️ Assinatura %s: gateway recusou cancelamento: %v", sub.ID, err)
		}
	}

	if err := uc.SubRepo.UpdateStatus(ctx, sub.ID, entity.SubscriptionStatusCancelled); err != nil {
		return &TechnicalError{Code: CodeDatabaseError, Message: "falha ao cancelar assinatura: " + err.Error()}
	}

	return nil
}
