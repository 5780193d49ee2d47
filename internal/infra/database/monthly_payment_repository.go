package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

type MonthlyPaymentRepository struct {
	DB *sql.DB
}

func NewMonthlyPaymentRepository(db *sql.DB) *MonthlyPaymentRepository {
	return &MonthlyPaymentRepository{DB: db}
}

func (r *MonthlyPaymentRepository) Create(ctx context.Context, p *entity.MonthlyPayment) error {
	query := `
		INSERT INTO pagamentos_mensais (
			id, subscription_id, company_id, mes_referencia, valor_centavos,
			data_vencimento, status, email_enviado, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.SubscriptionID,
		p.CompanyID,
		p.MesReferencia,
		p.ValorCentavos,
		p.DataVencimento,
		p.Status,
		p.EmailEnviado,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		// 23505 na unique (subscription_id, mes_referencia): outra execução
		// da geração chegou primeiro. Quem chama trata como "já existe".
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrDuplicatePeriod
		}
		return fmt.Errorf("erro ao criar mensalidade: %w", err)
	}

	return nil
}

const paymentColumns = `
	id, subscription_id, company_id, mes_referencia, valor_centavos,
	data_vencimento, data_pagamento, status, metodo_pagamento, dados_pagamento,
	chave_pix, qr_code_pix, boleto_url, link_pagamento, provider_id,
	email_enviado, email_enviado_em, created_at, updated_at
`

func (r *MonthlyPaymentRepository) FindByID(ctx context.Context, id string) (*entity.MonthlyPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pagamentos_mensais WHERE id = $1`

	p, err := scanPayment(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar mensalidade: %w", err)
	}

	return p, nil
}

func (r *MonthlyPaymentRepository) ExistsForPeriod(ctx context.Context, subscriptionID, mesReferencia string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM pagamentos_mensais WHERE subscription_id = $1 AND mes_referencia = $2)`

	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, subscriptionID, mesReferencia).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao verificar período: %w", err)
	}

	return exists, nil
}

// FindDueForReminder busca mensalidades pendentes vencendo exatamente no
// dia informado e que ainda não receberam lembrete. Comparação por DATE:
// o horário do cron não importa.
func (r *MonthlyPaymentRepository) FindDueForReminder(ctx context.Context, dueDate time.Time) ([]*entity.MonthlyPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM pagamentos_mensais
		WHERE status = 'pending'
		  AND email_enviado = FALSE
		  AND data_vencimento::date = $1::date
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, dueDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar mensalidades para lembrete: %w", err)
	}
	defer rows.Close()

	var payments []*entity.MonthlyPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler mensalidade: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *MonthlyPaymentRepository) UpdatePaymentArtifacts(ctx context.Context, p *entity.MonthlyPayment) error {
	query := `
		UPDATE pagamentos_mensais SET
			metodo_pagamento = NULLIF($2, ''),
			chave_pix = NULLIF($3, ''),
			qr_code_pix = NULLIF($4, ''),
			boleto_url = NULLIF($5, ''),
			link_pagamento = NULLIF($6, ''),
			provider_id = NULLIF($7, ''),
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.MetodoPagamento,
		p.ChavePix,
		p.QRCodePix,
		p.BoletoURL,
		p.LinkPagamento,
		p.ProviderID,
	)
	if err != nil {
		return fmt.Errorf("erro ao gravar artefatos da mensalidade: %w", err)
	}

	return nil
}

// MarkReminderSent só é chamado DEPOIS do envio bem sucedido. Se o email
// falhar, a flag fica falsa e a próxima rodada tenta de novo.
func (r *MonthlyPaymentRepository) MarkReminderSent(ctx context.Context, id string, sentAt time.Time) error {
	query := `
		UPDATE pagamentos_mensais SET
			email_enviado = TRUE,
			email_enviado_em = $2,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query, id, sentAt)
	if err != nil {
		return fmt.Errorf("erro ao marcar lembrete enviado: %w", err)
	}

	return nil
}

// MarkPaid quita a mensalidade e atualiza meses_pagos/pago_mes_atual da
// assinatura na MESMA transação.
func (r *MonthlyPaymentRepository) MarkPaid(ctx context.Context, p *entity.MonthlyPayment, metodo entity.PaymentType, dados json.RawMessage, paidAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	updatePayment := `
		UPDATE pagamentos_mensais SET
			status = 'paid',
			data_pagamento = $2,
			metodo_pagamento = NULLIF($3, ''),
			dados_pagamento = $4,
			updated_at = NOW()
		WHERE id = $1 AND status <> 'paid'
	`

	result, err := tx.ExecContext(ctx, updatePayment, p.ID, paidAt, metodo, []byte(dados))
	if err != nil {
		return fmt.Errorf("erro ao quitar mensalidade: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Já estava paga. Nada a fazer, idempotente.
		return tx.Commit()
	}

	// array_append só se o período ainda não estiver lá
	updateSubscription := `
		UPDATE subscriptions SET
			meses_pagos = CASE
				WHEN $2 = ANY(meses_pagos) THEN meses_pagos
				ELSE array_append(meses_pagos, $2)
			END,
			pago_mes_atual = TRUE,
			updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.ExecContext(ctx, updateSubscription, p.SubscriptionID, p.MesReferencia); err != nil {
		return fmt.Errorf("erro ao atualizar meses pagos: %w", err)
	}

	return tx.Commit()
}

func (r *MonthlyPaymentRepository) MarkOverdueBefore(ctx context.Context, ref time.Time) (int64, error) {
	query := `
		UPDATE pagamentos_mensais SET
			status = 'overdue',
			updated_at = NOW()
		WHERE status = 'pending' AND data_vencimento::date < $1::date
	`

	result, err := r.DB.ExecContext(ctx, query, ref)
	if err != nil {
		return 0, fmt.Errorf("erro ao marcar mensalidades vencidas: %w", err)
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*entity.MonthlyPayment, error) {
	var p entity.MonthlyPayment
	var dataPagamento, emailEnviadoEm sql.NullTime
	var metodo, chavePix, qrCodePix, boletoURL, linkPagamento, providerID sql.NullString
	var dados []byte

	err := row.Scan(
		&p.ID,
		&p.SubscriptionID,
		&p.CompanyID,
		&p.MesReferencia,
		&p.ValorCentavos,
		&p.DataVencimento,
		&dataPagamento,
		&p.Status,
		&metodo,
		&dados,
		&chavePix,
		&qrCodePix,
		&boletoURL,
		&linkPagamento,
		&providerID,
		&p.EmailEnviado,
		&emailEnviadoEm,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dataPagamento.Valid {
		p.DataPagamento = &dataPagamento.Time
	}
	if emailEnviadoEm.Valid {
		p.EmailEnviadoEm = &emailEnviadoEm.Time
	}
	p.MetodoPagamento = entity.PaymentType(metodo.String)
	p.DadosPagamento = dados
	p.ChavePix = chavePix.String
	p.QRCodePix = qrCodePix.String
	p.BoletoURL = boletoURL.String
	p.LinkPagamento = linkPagamento.String
	p.ProviderID = providerID.String

	return &p, nil
}
