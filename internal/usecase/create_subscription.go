package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
)

// CreateSubscriptionUseCase abre o contrato recorrente que alimenta a
// geração de mensalidades.
type CreateSubscriptionUseCase struct {
	SubRepo     entity.SubscriptionRepositoryInterface
	CompanyRepo entity.CompanyRepositoryInterface
	MethodRepo  entity.PaymentMethodRepositoryInterface
	Gateway     PaymentGateway

	Now func() time.Time
}

func NewCreateSubscriptionUseCase(
	subRepo entity.SubscriptionRepositoryInterface,
	companyRepo entity.CompanyRepositoryInterface,
	methodRepo entity.PaymentMethodRepositoryInterface,
	gateway PaymentGateway,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		SubRepo:     subRepo,
		CompanyRepo: companyRepo,
		MethodRepo:  methodRepo,
		Gateway:     gateway,
		Now:         time.Now,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, input CreateSubscriptionInput) (*entity.Subscription, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	company, err := uc.CompanyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, &DomainError{Code: CodeCompanyNotFound, Message: "empresa inválida: " + err.Error()}
	}

	if _, err := uc.MethodRepo.FindByID(ctx, input.PaymentMethodID); err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: "método de pagamento inválido: " + err.Error()}
	}

	cycle, err := entity.ParseBillingCycle(input.Recorrencia)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: "recorrência inválida: " + input.Recorrencia}
	}

	sub, err := entity.NewSubscription(company.ID, input.PaymentMethodID, input.Plano, cycle, input.ValorCentavos, input.DiaVencimento)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: err.Error()}
	}
	sub.ProximaCobranca = uc.nextChargeDate(input.DiaVencimento)

	// Assinatura no gateway é best-effort: a geração de mensalidades não
	// depende dela, mas o ID do provedor habilita o webhook de cancelamento.
	providerSub, err := uc.Gateway.CreateSubscription(mercadopago.SubscriptionInput{
		CustomerEmail: company.BillingEmail(),
		Valor:         float64(sub.ValorCentavos) / 100.0,
		Descricao:     sub.Plano,
		NextDueDate:   sub.ProximaCobranca.Format("2006-01-02"),
		FrequencyType: "months",
		Frequency:     cycle.Months(),
	})
	if err != nil {
		log.Printf("⚠️ Assinatura %s: gateway recusou preapproval: %v", sub.ID, err)
	} else {
		sub.ProviderSubscriptionID = providerSub.ProviderID
	}

	if err := uc.SubRepo.Create(ctx, sub); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao gravar assinatura: " + err.Error()}
	}

	return sub, nil
}

// nextChargeDate: dia de vencimento deste mês, ou do próximo se já passou.
func (uc *CreateSubscriptionUseCase) nextChargeDate(diaVencimento int) time.Time {
	now := uc.Now()
	next := entity.DueDateFor(now, diaVencimento)
	if !next.After(now) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}
