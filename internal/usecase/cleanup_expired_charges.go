package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// CleanupExpiredChargesUseCase é o coletor de cobranças abandonadas:
// PIX e cartão pendentes além da janela de graça são apagados, porque a
// sessão de checkout do gateway já expirou e a linha local só confundiria
// a reconciliação. Boleto nunca entra: a validade dele é longa.
type CleanupExpiredChargesUseCase struct {
	ChargeRepo  entity.ChargeRepositoryInterface
	GraceWindow time.Duration

	Now func() time.Time
}

func NewCleanupExpiredChargesUseCase(chargeRepo entity.ChargeRepositoryInterface, graceWindow time.Duration) *CleanupExpiredChargesUseCase {
	if graceWindow <= 0 {
		graceWindow = 10 * time.Minute
	}
	return &CleanupExpiredChargesUseCase{
		ChargeRepo:  chargeRepo,
		GraceWindow: graceWindow,
		Now:         time.Now,
	}
}

// Execute devolve quantas cobranças foram apagadas.
func (uc *CleanupExpiredChargesUseCase) Execute(ctx context.Context) (int, error) {
	cutoff := uc.Now().Add(-uc.GraceWindow)

	deleted, err := uc.ChargeRepo.DeleteExpiredPending(ctx, cutoff)
	if err != nil {
		return 0, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao limpar cobranças expiradas: " + err.Error()}
	}

	if deleted > 0 {
		log.Printf("✅ %d cobrança(s) expirada(s) removidas", deleted)
	}

	return int(deleted), nil
}
