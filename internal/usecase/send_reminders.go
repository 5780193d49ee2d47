package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// SendPaymentRemindersUseCase roda uma vez por dia: acha mensalidades
// pendentes vencendo em N dias, gera a cobrança real pelo motor de cobrança
// e envia o lembrete com os artefatos. A flag email_enviado só sobe depois
// do envio dar certo, então uma falha transitória é retentada amanhã.
type SendPaymentRemindersUseCase struct {
	PaymentRepo entity.MonthlyPaymentRepositoryInterface
	SubRepo     entity.SubscriptionRepositoryInterface
	CompanyRepo entity.CompanyRepositoryInterface
	MethodRepo  entity.PaymentMethodRepositoryInterface
	ChargeUC    *CreateChargeUseCase
	Email       EmailService

	DaysBefore int
	Now        func() time.Time
}

func NewSendPaymentRemindersUseCase(
	paymentRepo entity.MonthlyPaymentRepositoryInterface,
	subRepo entity.SubscriptionRepositoryInterface,
	companyRepo entity.CompanyRepositoryInterface,
	methodRepo entity.PaymentMethodRepositoryInterface,
	chargeUC *CreateChargeUseCase,
	email EmailService,
	daysBefore int,
) *SendPaymentRemindersUseCase {
	if daysBefore <= 0 {
		daysBefore = 5
	}
	return &SendPaymentRemindersUseCase{
		PaymentRepo: paymentRepo,
		SubRepo:     subRepo,
		CompanyRepo: companyRepo,
		MethodRepo:  methodRepo,
		ChargeUC:    chargeUC,
		Email:       email,
		DaysBefore:  daysBefore,
		Now:         time.Now,
	}
}

// Execute devolve quantos lembretes saíram com sucesso nesta passada.
func (uc *SendPaymentRemindersUseCase) Execute(ctx context.Context) (int, error) {
	target := uc.Now().AddDate(0, 0, uc.DaysBefore)

	payments, err := uc.PaymentRepo.FindDueForReminder(ctx, target)
	if err != nil {
		return 0, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao listar mensalidades: " + err.Error()}
	}

	count := 0
	for _, payment := range payments {
		if err := uc.remind(ctx, payment); err != nil {
			log.Printf("❌ Lembrete: mensalidade %s: %v", payment.ID, err)
			continue
		}
		count++
	}

	if count > 0 {
		log.Printf("✅ Lembretes: %d enviado(s)", count)
	}

	return count, nil
}

func (uc *SendPaymentRemindersUseCase) remind(ctx context.Context, payment *entity.MonthlyPayment) error {
	sub, err := uc.SubRepo.FindByID(ctx, payment.SubscriptionID)
	if err != nil {
		return fmt.Errorf("assinatura não encontrada: %w", err)
	}

	method, err := uc.MethodRepo.FindByID(ctx, sub.PaymentMethodID)
	if err != nil {
		return fmt.Errorf("método de pagamento não encontrado: %w", err)
	}

	company, err := uc.CompanyRepo.FindByID(ctx, payment.CompanyID)
	if err != nil {
		return fmt.Errorf("empresa não encontrada: %w", err)
	}

	email := company.BillingEmail()
	if email == "" {
		return fmt.Errorf("empresa %s sem email de cobrança", company.ID)
	}

	// Gera a cobrança real pelo mesmo caminho das cobranças avulsas.
	charge, err := uc.ChargeUC.Execute(ctx, CreateChargeInput{
		CompanyID:     payment.CompanyID,
		TipoPagamento: string(method.Tipo),
		ValorCentavos: payment.ValorCentavos,
		Vencimento:    payment.DataVencimento.Format("2006-01-02"),
		Descricao:     fmt.Sprintf("Mensalidade %s - %s", payment.MesReferencia, sub.Plano),
	})
	if err != nil {
		return fmt.Errorf("falha ao gerar cobrança: %w", err)
	}
	if charge.Status == entity.ChargeStatusError {
		// Sem artefato não tem o que lembrar. Flag fica em false e a
		// próxima rodada tenta de novo.
		return fmt.Errorf("gateway não gerou artefatos (cobrança %s em error)", charge.ID)
	}

	// Copia os artefatos para a mensalidade.
	payment.MetodoPagamento = method.Tipo
	payment.ChavePix = charge.ChavePix
	payment.QRCodePix = charge.QRCodePix
	payment.BoletoURL = charge.URLPdf
	payment.LinkPagamento = charge.LinkPagamento
	payment.ProviderID = charge.ProviderID
	payment.DadosPagamento = charge.ProviderResponse

	if err := uc.PaymentRepo.UpdatePaymentArtifacts(ctx, payment); err != nil {
		return fmt.Errorf("falha ao gravar artefatos: %w", err)
	}

	if err := uc.Email.SendPaymentReminder(email, PaymentReminderData{
		RazaoSocial:     company.RazaoSocial,
		Plano:           sub.Plano,
		MesReferencia:   payment.MesReferencia,
		ValorCentavos:   payment.ValorCentavos,
		DataVencimento:  payment.DataVencimento,
		MetodoPagamento: string(method.Tipo),
		ChavePix:        payment.ChavePix,
		QRCodePix:       payment.QRCodePix,
		BoletoURL:       payment.BoletoURL,
		LinkPagamento:   payment.LinkPagamento,
	}); err != nil {
		return fmt.Errorf("falha ao enviar lembrete: %w", err)
	}

	// Só aqui, depois do envio confirmado.
	if err := uc.PaymentRepo.MarkReminderSent(ctx, payment.ID, uc.Now()); err != nil {
		return fmt.Errorf("lembrete enviado mas falha ao marcar flag: %w", err)
	}

	return nil
}
