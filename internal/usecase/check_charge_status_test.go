package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/contafacil-billing/internal/entity"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
)

// TestCheckStatusAppliesMappedStatus - consulta manual: approved vira paid
// pela guarda.
func TestCheckStatusAppliesMappedStatus(t *testing.T) {
	ctx := context.Background()

	charge := pendingCharge("mp-10")

	mockChargeRepo := new(MockChargeRepository)
	mockGateway := new(MockPaymentGateway)

	mockChargeRepo.On("FindByID", ctx, "chg-1").Return(charge, nil)
	mockGateway.On("GetPayment", "mp-10").Return(&mercadopago.ChargeOutput{
		ProviderID: "mp-10",
		Status:     "approved",
	}, nil)
	mockChargeRepo.On("UpdateStatusGuarded", ctx, "chg-1", entity.ChargeStatusPaid, mock.Anything).Return(int64(1), nil)

	uc := NewCheckChargeStatusUseCase(mockChargeRepo, mockGateway)

	result, err := uc.Execute(ctx, "chg-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.ChargeStatusPaid, result.Status)
	assert.NotNil(t, result.DataPagamento)
}

// TestCheckStatusGatewayDownReturnsStored - gateway indisponível: devolve o
// que está no banco, sem inventar status.
func TestCheckStatusGatewayDownReturnsStored(t *testing.T) {
	ctx := context.Background()

	charge := pendingCharge("mp-10")

	mockChargeRepo := new(MockChargeRepository)
	mockGateway := new(MockPaymentGateway)

	mockChargeRepo.On("FindByID", ctx, "chg-1").Return(charge, nil)
	mockGateway.On("GetPayment", "mp-10").Return(nil, errors.New("timeout"))

	uc := NewCheckChargeStatusUseCase(mockChargeRepo, mockGateway)

	result, err := uc.Execute(ctx, "chg-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.ChargeStatusPending, result.Status)
	mockChargeRepo.AssertNotCalled(t, "UpdateStatusGuarded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestCheckStatusGuardLostRace - o webhook quitou no meio tempo: a guarda
// devolve 0 linhas e o resultado é relido do banco.
func TestCheckStatusGuardLostRace(t *testing.T) {
	ctx := context.Background()

	charge := pendingCharge("mp-10")
	fresh := pendingCharge("mp-10")
	fresh.Status = entity.ChargeStatusPaid

	mockChargeRepo := new(MockChargeRepository)
	mockGateway := new(MockPaymentGateway)

	mockChargeRepo.On("FindByID", ctx, "chg-1").Return(charge, nil).Once()
	mockGateway.On("GetPayment", "mp-10").Return(&mercadopago.ChargeOutput{
		ProviderID: "mp-10",
		Status:     "cancelled",
	}, nil)
	mockChargeRepo.On("UpdateStatusGuarded", ctx, "chg-1", entity.ChargeStatusCancelled, mock.Anything).Return(int64(0), nil)
	mockChargeRepo.On("FindByID", ctx, "chg-1").Return(fresh, nil).Once()

	uc := NewCheckChargeStatusUseCase(mockChargeRepo, mockGateway)

	result, err := uc.Execute(ctx, "chg-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.ChargeStatusPaid, result.Status)
}

// TestCheckStatusWithoutProviderID - cobrança que nunca chegou ao gateway
// não tem o que consultar.
func TestCheckStatusWithoutProviderID(t *testing.T) {
	ctx := context.Background()

	charge := pendingCharge("")

	mockChargeRepo := new(MockChargeRepository)
	mockChargeRepo.On("FindByID", ctx, "chg-1").Return(charge, nil)

	uc := NewCheckChargeStatusUseCase(mockChargeRepo, new(MockPaymentGateway))

	_, err := uc.Execute(ctx, "chg-1")

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
}
