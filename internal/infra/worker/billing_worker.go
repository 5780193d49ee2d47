package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

// BillingWorker roda o ciclo diário de cobrança: marca mensalidades
// vencidas, gera as do período e dispara os lembretes de vencimento.
type BillingWorker struct {
	generate     *usecase.GenerateMonthlyPaymentsUseCase
	remind       *usecase.SendPaymentRemindersUseCase
	payments     entity.MonthlyPaymentRepositoryInterface
	tickInterval time.Duration
}

func NewBillingWorker(
	generate *usecase.GenerateMonthlyPaymentsUseCase,
	remind *usecase.SendPaymentRemindersUseCase,
	payments entity.MonthlyPaymentRepositoryInterface,
	tickInterval time.Duration,
) *BillingWorker {
	return &BillingWorker{
		generate:     generate,
		remind:       remind,
		payments:     payments,
		tickInterval: tickInterval,
	}
}

func (w *BillingWorker) Start(ctx context.Context) {
	log.Printf("🕒 Billing Worker iniciado (intervalo %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Billing Worker encerrado")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *BillingWorker) runCycle(ctx context.Context) {
	overdue, err := w.payments.MarkOverdueBefore(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Erro ao marcar mensalidades vencidas: %v", err)
	} else if overdue > 0 {
		log.Printf("⏱️ %d mensalidade(s) marcadas como vencidas", overdue)
	}

	created, err := w.generate.Execute(ctx)
	if err != nil {
		log.Printf("❌ Erro na geração de mensalidades: %v", err)
	} else if created > 0 {
		log.Printf("✅ %d mensalidade(s) gerada(s)", created)
	}

	sent, err := w.remind.Execute(ctx)
	if err != nil {
		log.Printf("❌ Erro no envio de lembretes: %v", err)
	} else if sent > 0 {
		log.Printf("✅ %d lembrete(s) enviado(s)", sent)
	}
}
