package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

type PaymentMethodRepository struct {
	DB *sql.DB
}

func NewPaymentMethodRepository(db *sql.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{DB: db}
}

func (r *PaymentMethodRepository) FindByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	query := `
		SELECT id, company_id, tipo, COALESCE(descricao, ''), ativo, created_at, updated_at
		FROM payment_methods
		WHERE id = $1
	`

	var m entity.PaymentMethod
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.CompanyID,
		&m.Tipo,
		&m.Descricao,
		&m.Ativo,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("erro ao buscar método de pagamento: %w", err)
	}

	return &m, nil
}
