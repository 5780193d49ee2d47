package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

type ChargeRepository struct {
	DB *sql.DB
}

func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{DB: db}
}

const chargeColumns = `
	id, company_id, tipo_pagamento, valor_centavos, vencimento, status, descricao,
	linha_digitavel, codigo_barras, url_pdf,
	chave_pix, qr_code_pix, link_pagamento,
	provider_id, provider_response, data_pagamento, created_at, updated_at
`

func (r *ChargeRepository) Create(ctx context.Context, c *entity.Charge) error {
	query := `
		INSERT INTO boletos (
			id, company_id, tipo_pagamento, valor_centavos, vencimento, status, descricao,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.CompanyID,
		c.TipoPagamento,
		c.ValorCentavos,
		c.Vencimento,
		c.Status,
		c.Descricao,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar cobrança: %w", err)
	}

	return nil
}

func (r *ChargeRepository) FindByID(ctx context.Context, id string) (*entity.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM boletos WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ChargeRepository) FindByProviderID(ctx context.Context, providerID string) (*entity.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM boletos WHERE provider_id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, providerID))
}

func (r *ChargeRepository) scanOne(row *sql.Row) (*entity.Charge, error) {
	var c entity.Charge
	var linhaDigitavel, codigoBarras, urlPdf sql.NullString
	var chavePix, qrCodePix, linkPagamento sql.NullString
	var providerID sql.NullString
	var providerResponse []byte
	var dataPagamento sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.CompanyID,
		&c.TipoPagamento,
		&c.ValorCentavos,
		&c.Vencimento,
		&c.Status,
		&c.Descricao,
		&linhaDigitavel,
		&codigoBarras,
		&urlPdf,
		&chavePix,
		&qrCodePix,
		&linkPagamento,
		&providerID,
		&providerResponse,
		&dataPagamento,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrChargeNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cobrança: %w", err)
	}

	c.LinhaDigitavel = linhaDigitavel.String
	c.CodigoBarras = codigoBarras.String
	c.URLPdf = urlPdf.String
	c.ChavePix = chavePix.String
	c.QRCodePix = qrCodePix.String
	c.LinkPagamento = linkPagamento.String
	c.ProviderID = providerID.String
	c.ProviderResponse = providerResponse
	if dataPagamento.Valid {
		c.DataPagamento = &dataPagamento.Time
	}

	return &c, nil
}

func (r *ChargeRepository) UpdatePaymentData(ctx context.Context, c *entity.Charge) error {
	query := `
		UPDATE boletos SET
			status = $2,
			linha_digitavel = NULLIF($3, ''),
			codigo_barras = NULLIF($4, ''),
			url_pdf = NULLIF($5, ''),
			chave_pix = NULLIF($6, ''),
			qr_code_pix = NULLIF($7, ''),
			link_pagamento = NULLIF($8, ''),
			provider_id = NULLIF($9, ''),
			provider_response = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Status,
		c.LinhaDigitavel,
		c.CodigoBarras,
		c.URLPdf,
		c.ChavePix,
		c.QRCodePix,
		c.LinkPagamento,
		c.ProviderID,
		[]byte(c.ProviderResponse),
	)
	if err != nil {
		return fmt.Errorf("erro ao gravar dados de pagamento: %w", err)
	}

	return nil
}

func (r *ChargeRepository) UpdateError(ctx context.Context, id string, providerResponse json.RawMessage) error {
	query := `
		UPDATE boletos SET
			status = 'error',
			provider_response = $2,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query, id, []byte(providerResponse))
	if err != nil {
		return fmt.Errorf("erro ao marcar cobrança com erro: %w", err)
	}

	return nil
}

// MarkPaidByProviderID transiciona para paid com guarda no próprio SQL:
// se a cobrança já está paga, nenhuma linha muda e o webhook duplicado
// vira no-op.
func (r *ChargeRepository) MarkPaidByProviderID(ctx context.Context, providerID string, paidAt time.Time) (int64, error) {
	query := `
		UPDATE boletos SET
			status = 'paid',
			data_pagamento = $2,
			updated_at = NOW()
		WHERE provider_id = $1 AND status <> 'paid'
	`

	result, err := r.DB.ExecContext(ctx, query, providerID, paidAt)
	if err != nil {
		return 0, fmt.Errorf("erro ao marcar cobrança paga: %w", err)
	}

	return result.RowsAffected()
}

// MarkOverdueByProviderID: paga é terminal, vencido chegando atrasado
// não rebaixa.
func (r *ChargeRepository) MarkOverdueByProviderID(ctx context.Context, providerID string) (int64, error) {
	query := `
		UPDATE boletos SET
			status = 'overdue',
			updated_at = NOW()
		WHERE provider_id = $1 AND status NOT IN ('paid', 'cancelled')
	`

	result, err := r.DB.ExecContext(ctx, query, providerID)
	if err != nil {
		return 0, fmt.Errorf("erro ao marcar cobrança vencida: %w", err)
	}

	return result.RowsAffected()
}

func (r *ChargeRepository) UpdateStatusGuarded(ctx context.Context, id string, status entity.ChargeStatus, paidAt *time.Time) (int64, error) {
	query := `
		UPDATE boletos SET
			status = $2,
			data_pagamento = COALESCE($3, data_pagamento),
			updated_at = NOW()
		WHERE id = $1 AND status <> 'paid'
	`

	result, err := r.DB.ExecContext(ctx, query, id, status, paidAt)
	if err != nil {
		return 0, fmt.Errorf("erro ao atualizar status da cobrança: %w", err)
	}

	return result.RowsAffected()
}

// DeleteExpiredPending remove cobranças pendentes dos tipos que expiram,
// criadas antes do corte. O critério é o de entity.Charge.Reapable; a lista
// de tipos vem de entity.ReapablePaymentTypes para não divergir dele.
func (r *ChargeRepository) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	tipos := make([]string, 0, len(entity.ReapablePaymentTypes))
	for _, t := range entity.ReapablePaymentTypes {
		tipos = append(tipos, string(t))
	}

	query := `
		DELETE FROM boletos
		WHERE status = 'pending'
		  AND tipo_pagamento = ANY($2::text[])
		  AND created_at < $1
	`

	result, err := r.DB.ExecContext(ctx, query, cutoff, pgTextArray(tipos))
	if err != nil {
		return 0, fmt.Errorf("erro ao limpar cobranças expiradas: %w", err)
	}

	return result.RowsAffected()
}
