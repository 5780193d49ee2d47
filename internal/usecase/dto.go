package usecase

import "time"

type CreateChargeInput struct {
	CompanyID     string `json:"company_id" validate:"required"`
	TipoPagamento string `json:"tipo_pagamento" validate:"required,oneof=boleto pix credit_card"`
	ValorCentavos int64  `json:"valor_centavos" validate:"required,gt=0"`
	Vencimento    string `json:"vencimento" validate:"required"` // "2006-01-02"
	Descricao     string `json:"descricao" validate:"max=255"`
}

type CreateSubscriptionInput struct {
	CompanyID       string `json:"company_id" validate:"required"`
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
	Plano           string `json:"plano" validate:"required"`
	Recorrencia     string `json:"recorrencia" validate:"required,oneof=mensal trimestral semestral anual"`
	ValorCentavos   int64  `json:"valor_centavos" validate:"required,gt=0"`
	DiaVencimento   int    `json:"dia_vencimento" validate:"required,min=1,max=28"`
}

type MarkPaymentPaidInput struct {
	PaymentID       string `json:"payment_id" validate:"required"`
	MetodoPagamento string `json:"metodo_pagamento,omitempty"`
}

// ChargeNotificationData alimenta o email/WhatsApp de cobrança criada.
type ChargeNotificationData struct {
	NomeResponsavel string
	RazaoSocial     string
	ValorCentavos   int64
	Vencimento      time.Time
	TipoPagamento   string
	Descricao       string

	LinhaDigitavel string
	URLPdf         string
	ChavePix       string
	LinkPagamento  string
}

// PaymentReminderData alimenta o lembrete de mensalidade (5 dias antes).
type PaymentReminderData struct {
	RazaoSocial     string
	Plano           string
	MesReferencia   string
	ValorCentavos   int64
	DataVencimento  time.Time
	MetodoPagamento string

	ChavePix      string
	QRCodePix     string
	BoletoURL     string
	LinkPagamento string
}
