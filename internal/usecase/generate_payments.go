package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// GenerateMonthlyPaymentsUseCase materializa a obrigação do próximo período
// de cada assinatura ativa, exatamente uma vez por período. Pode rodar
// quantas vezes for: a segunda passada não cria nada.
type GenerateMonthlyPaymentsUseCase struct {
	SubRepo     entity.SubscriptionRepositoryInterface
	PaymentRepo entity.MonthlyPaymentRepositoryInterface

	// Now é injetável para os testes fixarem o relógio.
	Now func() time.Time
}

func NewGenerateMonthlyPaymentsUseCase(
	subRepo entity.SubscriptionRepositoryInterface,
	paymentRepo entity.MonthlyPaymentRepositoryInterface,
) *GenerateMonthlyPaymentsUseCase {
	return &GenerateMonthlyPaymentsUseCase{
		SubRepo:     subRepo,
		PaymentRepo: paymentRepo,
		Now:         time.Now,
	}
}

// Execute devolve quantas mensalidades foram criadas nesta passada.
// Falha de uma assinatura não derruba o lote.
func (uc *GenerateMonthlyPaymentsUseCase) Execute(ctx context.Context) (int, error) {
	subs, err := uc.SubRepo.FindActive(ctx)
	if err != nil {
		return 0, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao listar assinaturas ativas: " + err.Error()}
	}

	now := uc.Now()
	// A obrigação nasce com até um mês de antecedência do vencimento, para
	// o lembrete D-5 ter o que enviar.
	horizon := now.AddDate(0, 1, 0)
	count := 0

	for _, sub := range subs {
		// A sequência de períodos é da assinatura: proxima_cobranca avança
		// um ciclo por fatura. Rodar o job todo dia não muda o ritmo de uma
		// trimestral.
		due := sub.ProximaCobranca
		if due.IsZero() {
			log.Printf("❌ Geração: assinatura %s sem proxima_cobranca, pulando", sub.ID)
			continue
		}
		if due.After(horizon) {
			continue
		}

		periodo := entity.PeriodFor(due)

		exists, err := uc.PaymentRepo.ExistsForPeriod(ctx, sub.ID, periodo)
		if err != nil {
			log.Printf("❌ Geração: assinatura %s: falha ao consultar período %s: %v", sub.ID, periodo, err)
			continue
		}
		if exists {
			// Mensalidade criada numa passada anterior que caiu antes de
			// agendar o próximo ciclo: só reagenda.
			uc.advance(ctx, sub, due)
			continue
		}

		payment := entity.NewMonthlyPayment(sub, periodo, due)

		if err := uc.PaymentRepo.Create(ctx, payment); err != nil {
			// Corrida com outra instância do job: a constraint única
			// segurou a duplicata, trata como "já existe".
			if errors.Is(err, entity.ErrDuplicatePeriod) {
				uc.advance(ctx, sub, due)
				continue
			}
			log.Printf("❌ Geração: assinatura %s: falha ao criar mensalidade %s: %v", sub.ID, periodo, err)
			continue
		}

		uc.advance(ctx, sub, due)
		count++
	}

	if count > 0 {
		log.Printf("✅ Geração: %d mensalidade(s) criadas", count)
	}

	return count, nil
}

func (uc *GenerateMonthlyPaymentsUseCase) advance(ctx context.Context, sub *entity.Subscription, due time.Time) {
	next := entity.NextDueDate(due, sub.Recorrencia)
	if err := uc.SubRepo.AdvanceBillingPeriod(ctx, sub.ID, due, next); err != nil {
		// A próxima passada cai no exists acima e reagenda.
		log.Printf("❌ Geração: assinatura %s: falha ao agendar próximo ciclo: %v", sub.ID, err)
	}
}
