package entity

import (
	"context"
	"errors"
	"time"
)

var ErrPaymentMethodNotFound = errors.New("método de pagamento não encontrado")

// PaymentMethod é a forma de cobrança escolhida pela assinatura.
type PaymentMethod struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	Tipo      PaymentType `json:"tipo"`
	Descricao string      `json:"descricao"`
	Ativo     bool        `json:"ativo"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type PaymentMethodRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*PaymentMethod, error)
}
