package entity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

var (
	ErrPaymentNotFound = errors.New("mensalidade não encontrada")
	// ErrDuplicatePeriod: já existe mensalidade para (assinatura, período).
	// É a rede de segurança da geração idempotente.
	ErrDuplicatePeriod = errors.New("mensalidade duplicada para o período")
)

// MonthlyPayment é a obrigação de um período de uma assinatura.
// Única por (subscription_id, mes_referencia).
type MonthlyPayment struct {
	ID             string        `json:"id"`
	SubscriptionID string        `json:"subscription_id"`
	CompanyID      string        `json:"company_id"`
	MesReferencia  string        `json:"mes_referencia"` // "2025-02"
	ValorCentavos  int64         `json:"valor_centavos"`
	DataVencimento time.Time     `json:"data_vencimento"`
	DataPagamento  *time.Time    `json:"data_pagamento,omitempty"`
	Status         PaymentStatus `json:"status"`

	MetodoPagamento PaymentType     `json:"metodo_pagamento,omitempty"`
	DadosPagamento  json.RawMessage `json:"dados_pagamento,omitempty"`

	// Artefatos gerados na hora do lembrete (via ChargeEngine)
	ChavePix      string `json:"chave_pix,omitempty"`
	QRCodePix     string `json:"qr_code_pix,omitempty"`
	BoletoURL     string `json:"boleto_url,omitempty"`
	LinkPagamento string `json:"link_pagamento,omitempty"`
	ProviderID    string `json:"provider_id,omitempty"`

	EmailEnviado   bool       `json:"email_enviado"`
	EmailEnviadoEm *time.Time `json:"email_enviado_em,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMonthlyPayment(sub *Subscription, mesReferencia string, dataVencimento time.Time) *MonthlyPayment {
	now := time.Now()
	return &MonthlyPayment{
		ID:             uuid.New().String(),
		SubscriptionID: sub.ID,
		CompanyID:      sub.CompanyID,
		MesReferencia:  mesReferencia,
		ValorCentavos:  sub.ValorCentavos,
		DataVencimento: dataVencimento,
		Status:         PaymentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type MonthlyPaymentRepositoryInterface interface {
	// Create devolve ErrDuplicatePeriod se a constraint única estourar.
	Create(ctx context.Context, p *MonthlyPayment) error
	FindByID(ctx context.Context, id string) (*MonthlyPayment, error)
	ExistsForPeriod(ctx context.Context, subscriptionID, mesReferencia string) (bool, error)
	// FindDueForReminder: pending, vencendo exatamente em dueDate, lembrete ainda não enviado.
	FindDueForReminder(ctx context.Context, dueDate time.Time) ([]*MonthlyPayment, error)
	// UpdatePaymentArtifacts grava método + artefatos gerados pelo ChargeEngine.
	UpdatePaymentArtifacts(ctx context.Context, p *MonthlyPayment) error
	MarkReminderSent(ctx context.Context, id string, sentAt time.Time) error
	// MarkPaid quita a mensalidade E atualiza meses_pagos da assinatura na
	// mesma transação. Um crash não pode deixar os dois fora de sincronia.
	MarkPaid(ctx context.Context, p *MonthlyPayment, metodo PaymentType, dados json.RawMessage, paidAt time.Time) error
	MarkOverdueBefore(ctx context.Context, ref time.Time) (int64, error)
}
