package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

// ChargeExpirationWorker varre cobranças pendentes de PIX/cartão que
// passaram da janela de pagamento e as remove.
type ChargeExpirationWorker struct {
	cleanup      *usecase.CleanupExpiredChargesUseCase
	tickInterval time.Duration
}

func NewChargeExpirationWorker(cleanup *usecase.CleanupExpiredChargesUseCase, tickInterval time.Duration) *ChargeExpirationWorker {
	return &ChargeExpirationWorker{
		cleanup:      cleanup,
		tickInterval: tickInterval,
	}
}

func (w *ChargeExpirationWorker) Start(ctx context.Context) {
	log.Printf("🕒 Charge Expiration Worker iniciado (intervalo %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Charge Expiration Worker encerrado")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *ChargeExpirationWorker) run(ctx context.Context) {
	if _, err := w.cleanup.Execute(ctx); err != nil {
		log.Printf("❌ Erro ao limpar cobranças expiradas: %v", err)
	}
}
