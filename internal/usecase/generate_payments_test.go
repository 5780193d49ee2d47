package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

func activeSubscription(id string, diaVencimento int) *entity.Subscription {
	return &entity.Subscription{
		ID:            id,
		CompanyID:     "comp-1",
		Plano:         "Plano Contábil",
		Recorrencia:   entity.CycleMensal,
		ValorCentavos: 29900,
		DiaVencimento: diaVencimento,
		Status:        entity.SubscriptionStatusActive,
	}
}

// TestGeneratePaymentsCreatesDuePeriod - a mensal com próxima cobrança em
// 10/02 gera a mensalidade 2025-02 e agenda o ciclo seguinte para 10/03.
func TestGeneratePaymentsCreatesDuePeriod(t *testing.T) {
	ctx := context.Background()

	mockSubRepo := new(MockSubscriptionRepository)
	mockPaymentRepo := new(MockMonthlyPaymentRepository)

	sub := activeSubscription("sub-1", 10)
	sub.ProximaCobranca = time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	mockSubRepo.On("FindActive", ctx).Return([]*entity.Subscription{sub}, nil)
	mockPaymentRepo.On("ExistsForPeriod", ctx, "sub-1", "2025-02").Return(false, nil)

	var created *entity.MonthlyPayment
	mockPaymentRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.MonthlyPayment)
	}).Return(nil)
	mockSubRepo.On("AdvanceBillingPeriod", ctx, "sub-1",
		time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	).Return(nil)

	uc := NewGenerateMonthlyPaymentsUseCase(mockSubRepo, mockPaymentRepo)
	uc.Now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }

	count, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotNil(t, created)
	assert.Equal(t, "2025-02", created.MesReferencia)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), created.DataVencimento)
	assert.Equal(t, int64(29900), created.ValorCentavos)
	assert.Equal(t, entity.PaymentStatusPending, created.Status)
	mockSubRepo.AssertExpectations(t)
}

// TestGeneratePaymentsNotYetDueIsSkipped - cobrança a mais de um mês do
// vencimento fica para uma passada futura; o banco nem é consultado.
func TestGeneratePaymentsNotYetDueIsSkipped(t *testing.T) {
	ctx := context.Background()

	mockSubRepo := new(MockSubscriptionRepository)
	mockPaymentRepo := new(MockMonthlyPaymentRepository)

	sub := activeSubscription("sub-1", 10)
	sub.Recorrencia = entity.CycleSemestral
	sub.ProximaCobranca = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	mockSubRepo.On("FindActive", ctx).Return([]*entity.Subscription{sub}, nil)

	uc := NewGenerateMonthlyPaymentsUseCase(mockSubRepo, mockPaymentRepo)
	uc.Now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }

	count, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	mockPaymentRepo.AssertNotCalled(t, "ExistsForPeriod", mock.Anything, mock.Anything, mock.Anything)
	mockPaymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestGeneratePaymentsIdempotent - o período já existe: nada é criado, mas o
// próximo ciclo é reagendado (a passada anterior pode ter caído antes disso).
func TestGeneratePaymentsIdempotent(t *testing.T) {
	ctx := context.Background()

	mockSubRepo := new(MockSubscriptionRepository)
	mockPaymentRepo := new(MockMonthlyPaymentRepository)

	sub := activeSubscription("sub-1", 5)
	sub.ProximaCobranca = time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	mockSubRepo.On("FindActive", ctx).Return([]*entity.Subscription{sub}, nil)
	mockPaymentRepo.On("ExistsForPeriod", ctx, "sub-1", "2025-02").Return(true, nil)
	mockSubRepo.On("AdvanceBillingPeriod", ctx, "sub-1",
		time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	).Return(nil)

	uc := NewGenerateMonthlyPaymentsUseCase(mockSubRepo, mockPaymentRepo)
	uc.Now = func() time.Time { return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC) }

	count, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	mockPaymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockSubRepo.AssertExpectations(t)
}

// TestGeneratePaymentsRaceLostIsSkip - a constraint única estourou no meio
// da corrida com outra instância: conta como "já existe", não como erro.
func TestGeneratePaymentsRaceLostIsSkip(t *testing.T) {
	ctx := context.Background()

	mockSubRepo := new(MockSubscriptionRepository)
	mockPaymentRepo := new(MockMonthlyPaymentRepository)

	sub := activeSubscription("sub-1", 5)
	sub.ProximaCobranca = time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	mockSubRepo.On("FindActive", ctx).Return([]*entity.Subscription{sub}, nil)
	mockPaymentRepo.On("ExistsForPeriod", ctx, "sub-1", mock.Anything).Return(false, nil)
	mockPaymentRepo.On("Create", ctx, mock.Anything).Return(entity.ErrDuplicatePeriod)
	mockSubRepo.On("AdvanceBillingPeriod", ctx, "sub-1", mock.Anything, mock.Anything).Return(nil)

	uc := NewGenerateMonthlyPaymentsUseCase(mockSubRepo, mockPaymentRepo)
	uc.Now = func() time.Time { return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC) }

	count, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

// TestGeneratePaymentsOneFailureDoesNotAbort - erro numa assinatura não
// derruba o lote.
func TestGeneratePaymentsOneFailureDoesNotAbort(t *testing.T) {
	ctx := context.Background()

	mockSubRepo := new(MockSubscriptionRepository)
	mockPaymentRepo := new(MockMonthlyPaymentRepository)

	subA := activeSubscription("sub-a", 5)
	subA.ProximaCobranca = time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	subB := activeSubscription("sub-b", 5)
	subB.ProximaCobranca = time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	mockSubRepo.On("FindActive", ctx).Return([]*entity.Subscription{subA, subB}, nil)
	mockPaymentRepo.On("ExistsForPeriod", ctx, "sub-a", mock.Anything).Return(false, errors.New("deadlock"))
	mockPaymentRepo.On("ExistsForPeriod", ctx, "sub-b", mock.Anything).Return(false, nil)
	mockPaymentRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.MonthlyPayment) bool {
		return p.SubscriptionID == "sub-b"
	})).Return(nil)
	mockSubRepo.On("AdvanceBillingPeriod", ctx, "sub-b", mock.Anything, mock.Anything).Return(nil)

	uc := NewGenerateMonthlyPaymentsUseCase(mockSubRepo, mockPaymentRepo)
	uc.Now = func() time.Time { return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC) }

	count, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	mockSubRepo.AssertNotCalled(t, "AdvanceBillingPeriod", mock.Anything, "sub-a", mock.Anything, mock.Anything)
}

// TestGeneratePaymentsQuarterlyBilledOncePerQuarter - três passadas mensais
// sobre a mesma trimestral geram UMA mensalidade: o ritmo vem da assinatura
// (proxima_cobranca avança um ciclo por fatura), não do calendário do job.
func TestGeneratePaymentsQuarterlyBilledOncePerQuarter(t *testing.T) {
	ctx := context.Background()

	mockSubRepo := new(MockSubscriptionRepository)
	mockPaymentRepo := new(MockMonthlyPaymentRepository)

	sub := activeSubscription("sub-tri", 20)
	sub.Recorrencia = entity.CycleTrimestral
	sub.ProximaCobranca = time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	mockSubRepo.On("FindActive", ctx).Return([]*entity.Subscription{sub}, nil)
	mockPaymentRepo.On("ExistsForPeriod", ctx, "sub-tri", mock.Anything).Return(false, nil)

	var periods []string
	mockPaymentRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		periods = append(periods, args.Get(1).(*entity.MonthlyPayment).MesReferencia)
	}).Return(nil)

	// O mock faz o papel do banco: a data avançada fica visível na passada
	// seguinte.
	mockSubRepo.On("AdvanceBillingPeriod", ctx, "sub-tri", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sub.ProximaCobranca = args.Get(3).(time.Time)
	}).Return(nil)

	uc := NewGenerateMonthlyPaymentsUseCase(mockSubRepo, mockPaymentRepo)

	total := 0
	for _, run := range []time.Time{
		time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
	} {
		uc.Now = func() time.Time { return run }
		count, err := uc.Execute(ctx)
		assert.NoError(t, err)
		total += count
	}

	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"2025-01"}, periods)
	// Próxima fatura só no trimestre seguinte.
	assert.Equal(t, time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), sub.ProximaCobranca)
}

// TestGeneratePaymentsMissingNextChargeIsSkipped - assinatura sem
// proxima_cobranca é estado inválido: pula e loga, não inventa período.
func TestGeneratePaymentsMissingNextChargeIsSkipped(t *testing.T) {
	ctx := context.Background()

	mockSubRepo := new(MockSubscriptionRepository)
	mockPaymentRepo := new(MockMonthlyPaymentRepository)

	mockSubRepo.On("FindActive", ctx).Return([]*entity.Subscription{activeSubscription("sub-1", 5)}, nil)

	uc := NewGenerateMonthlyPaymentsUseCase(mockSubRepo, mockPaymentRepo)

	count, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	mockPaymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
