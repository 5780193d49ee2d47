package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusSuspended SubscriptionStatus = "suspended"
)

var (
	ErrSubscriptionNotFound = errors.New("assinatura não encontrada")
	ErrInvalidDueDay        = errors.New("dia de vencimento deve estar entre 1 e 28")
)

// Subscription é o contrato recorrente de uma empresa (tenant).
// Nunca é apagada: o ciclo de vida é via status.
type Subscription struct {
	ID              string             `json:"id"`
	CompanyID       string             `json:"company_id"`
	PaymentMethodID string             `json:"payment_method_id"`
	Plano           string             `json:"plano"`
	Recorrencia     BillingCycle       `json:"recorrencia"`
	ValorCentavos   int64              `json:"valor_centavos"`
	DiaVencimento   int                `json:"dia_vencimento"` // 1-28
	Status          SubscriptionStatus `json:"status"`

	ProximaCobranca  time.Time  `json:"proxima_cobranca"`
	DataCancelamento *time.Time `json:"data_cancelamento,omitempty"`

	ProviderSubscriptionID string `json:"provider_subscription_id,omitempty"`

	IsTrial            bool       `json:"is_trial"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	AutoRenew          bool       `json:"auto_renew"`

	UsageLimits  map[string]int `json:"usage_limits,omitempty"`
	MesesPagos   []string       `json:"meses_pagos"` // períodos já quitados ("2025-02")
	PagoMesAtual bool           `json:"pago_mes_atual"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSubscription(companyID, paymentMethodID, plano string, cycle BillingCycle, valorCentavos int64, diaVencimento int) (*Subscription, error) {
	if diaVencimento < 1 || diaVencimento > 28 {
		return nil, ErrInvalidDueDay
	}
	if _, err := ParseBillingCycle(string(cycle)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Subscription{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		PaymentMethodID: paymentMethodID,
		Plano:           plano,
		Recorrencia:     cycle,
		ValorCentavos:   valorCentavos,
		DiaVencimento:   diaVencimento,
		Status:          SubscriptionStatusActive,
		AutoRenew:       true,
		MesesPagos:      []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

type SubscriptionRepositoryInterface interface {
	Create(ctx context.Context, sub *Subscription) error
	FindByID(ctx context.Context, id string) (*Subscription, error)
	FindActive(ctx context.Context) ([]*Subscription, error)
	UpdateStatus(ctx context.Context, id string, status SubscriptionStatus) error
	// AdvanceBillingPeriod grava o ciclo recém-faturado (periodStart até
	// nextCharge) e agenda a próxima cobrança. É o que impede a mesma
	// assinatura de ser faturada de novo dentro do ciclo corrente.
	AdvanceBillingPeriod(ctx context.Context, id string, periodStart, nextCharge time.Time) error
	// CancelByProviderID atende o webhook subscription_cancelled.
	CancelByProviderID(ctx context.Context, providerSubscriptionID string, cancelledAt time.Time) (int64, error)
}
