package entity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status fechado da cobrança. Nunca grave string solta no banco.
type ChargeStatus string

const (
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusPaid      ChargeStatus = "paid"
	ChargeStatusOverdue   ChargeStatus = "overdue"
	ChargeStatusCancelled ChargeStatus = "cancelled"
	ChargeStatusError     ChargeStatus = "error"
)

type PaymentType string

const (
	PaymentTypeBoleto     PaymentType = "boleto"
	PaymentTypePix        PaymentType = "pix"
	PaymentTypeCreditCard PaymentType = "credit_card"
)

var ErrInvalidPaymentType = errors.New("tipo de pagamento inválido")

func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case PaymentTypeBoleto, PaymentTypePix, PaymentTypeCreditCard:
		return PaymentType(s), nil
	}
	return "", ErrInvalidPaymentType
}

var (
	ErrChargeNotFound = errors.New("cobrança não encontrada")
	// ErrPaidStatusGuard: tentativa de rebaixar uma cobrança já paga.
	ErrPaidStatusGuard = errors.New("cobrança paga não pode mudar de status")
)

// Charge cobre boleto, PIX e cartão na mesma tabela (boletos).
// Só o conjunto de artefatos do tipo escolhido fica preenchido.
type Charge struct {
	ID            string       `json:"id"`
	CompanyID     string       `json:"company_id"`
	TipoPagamento PaymentType  `json:"tipo_pagamento"`
	ValorCentavos int64        `json:"valor_centavos"`
	Vencimento    time.Time    `json:"vencimento"`
	Status        ChargeStatus `json:"status"`
	Descricao     string       `json:"descricao"`

	// Boleto
	LinhaDigitavel string `json:"linha_digitavel,omitempty"`
	CodigoBarras   string `json:"codigo_barras,omitempty"`
	URLPdf         string `json:"url_pdf,omitempty"`

	// PIX
	ChavePix  string `json:"chave_pix,omitempty"`
	QRCodePix string `json:"qr_code_pix,omitempty"`

	// Cartão (checkout hospedado)
	LinkPagamento string `json:"link_pagamento,omitempty"`

	ProviderID       string          `json:"provider_id,omitempty"`
	ProviderResponse json.RawMessage `json:"provider_response,omitempty"`
	DataPagamento    *time.Time      `json:"data_pagamento,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func NewCharge(companyID string, tipo PaymentType, valorCentavos int64, vencimento time.Time, descricao string) *Charge {
	now := time.Now()
	return &Charge{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		TipoPagamento: tipo,
		ValorCentavos: valorCentavos,
		Vencimento:    vencimento,
		Status:        ChargeStatusPending,
		Descricao:     descricao,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ValorReais converte centavos para o decimal que o gateway espera.
func (c *Charge) ValorReais() float64 {
	return float64(c.ValorCentavos) / 100.0
}

// ReapablePaymentTypes: tipos cuja cobrança pendente expira e pode ser
// apagada. Boleto fica de fora: a validade dele é o próprio vencimento.
var ReapablePaymentTypes = []PaymentType{PaymentTypePix, PaymentTypeCreditCard}

// Reapable diz se a limpeza pode apagar esta cobrança: pendente, de um tipo
// que expira, criada antes do corte.
func (c *Charge) Reapable(cutoff time.Time) bool {
	if c.Status != ChargeStatusPending {
		return false
	}
	for _, t := range ReapablePaymentTypes {
		if c.TipoPagamento == t {
			return c.CreatedAt.Before(cutoff)
		}
	}
	return false
}

type ChargeRepositoryInterface interface {
	Create(ctx context.Context, c *Charge) error
	FindByID(ctx context.Context, id string) (*Charge, error)
	FindByProviderID(ctx context.Context, providerID string) (*Charge, error)
	// UpdatePaymentData grava artefatos + status retornados pelo gateway.
	UpdatePaymentData(ctx context.Context, c *Charge) error
	// UpdateError marca a cobrança como error e guarda a resposta crua.
	UpdateError(ctx context.Context, id string, providerResponse json.RawMessage) error
	// MarkPaidByProviderID só transiciona se ainda não estiver paga.
	// Retorna quantas linhas mudaram (0 = já estava paga, idempotente).
	MarkPaidByProviderID(ctx context.Context, providerID string, paidAt time.Time) (int64, error)
	// MarkOverdueByProviderID nunca rebaixa uma cobrança paga (guard no SQL).
	MarkOverdueByProviderID(ctx context.Context, providerID string) (int64, error)
	// UpdateStatusGuarded aplica status vindo de consulta manual, sem rebaixar paid.
	UpdateStatusGuarded(ctx context.Context, id string, status ChargeStatus, paidAt *time.Time) (int64, error)
	// DeleteExpiredPending apaga cobranças pending de PIX/cartão criadas antes do corte.
	// Boleto fica de fora: tem validade longa.
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
}
