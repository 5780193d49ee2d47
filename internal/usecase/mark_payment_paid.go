package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

// MarkPaymentPaidUseCase quita uma mensalidade manualmente (baixa feita
// pelo escritório). Mensalidade e lista de períodos pagos da assinatura
// mudam na MESMA transação: um crash no meio não pode deixar uma paga e a
// outra sem o período.
type MarkPaymentPaidUseCase struct {
	PaymentRepo entity.MonthlyPaymentRepositoryInterface

	Now func() time.Time
}

func NewMarkPaymentPaidUseCase(paymentRepo entity.MonthlyPaymentRepositoryInterface) *MarkPaymentPaidUseCase {
	return &MarkPaymentPaidUseCase{
		PaymentRepo: paymentRepo,
		Now:         time.Now,
	}
}

func (uc *MarkPaymentPaidUseCase) Execute(ctx context.Context, input MarkPaymentPaidInput) (*entity.MonthlyPayment, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	payment, err := uc.PaymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		if errors.Is(err, entity.ErrPaymentNotFound) {
			return nil, &DomainError{Code: CodePaymentNotFound, Message: "mensalidade não encontrada"}
		}
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}

	if payment.Status == entity.PaymentStatusPaid {
		// Já quitada: idempotente, devolve como está.
		return payment, nil
	}

	metodo := payment.MetodoPagamento
	if input.MetodoPagamento != "" {
		parsed, err := entity.ParsePaymentType(input.MetodoPagamento)
		if err != nil {
			return nil, &DomainError{Code: CodeValidationError, Message: "método de pagamento inválido: " + input.MetodoPagamento}
		}
		metodo = parsed
	}

	paidAt := uc.Now()
	if err := uc.PaymentRepo.MarkPaid(ctx, payment, metodo, payment.DadosPagamento, paidAt); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao quitar mensalidade: " + err.Error()}
	}

	payment.Status = entity.PaymentStatusPaid
	payment.DataPagamento = &paidAt
	payment.MetodoPagamento = metodo

	return payment, nil
}
