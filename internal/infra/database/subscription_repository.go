package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

type SubscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, company_id, payment_method_id, plano, recorrencia, valor_centavos,
			dia_vencimento, status, proxima_cobranca, provider_subscription_id,
			is_trial, trial_ends_at, current_period_start, current_period_end,
			auto_renew, usage_limits, meses_pagos, pago_mes_atual,
			created_at, updated_at
		) VALUES (
			$1, $2, NULLIF($3, '')::uuid, $4, $5, $6,
			$7, $8, $9, NULLIF($10, ''),
			$11, $12, $13, $14,
			$15, $16::jsonb, $17::text[], $18,
			$19, $20
		)
	`

	_, err := r.DB.ExecContext(ctx, query,
		sub.ID,
		sub.CompanyID,
		sub.PaymentMethodID,
		sub.Plano,
		sub.Recorrencia,
		sub.ValorCentavos,
		sub.DiaVencimento,
		sub.Status,
		sub.ProximaCobranca,
		sub.ProviderSubscriptionID,
		sub.IsTrial,
		sub.TrialEndsAt,
		sub.CurrentPeriodStart,
		sub.CurrentPeriodEnd,
		sub.AutoRenew,
		pgJSONMap(sub.UsageLimits),
		pgTextArray(sub.MesesPagos),
		sub.PagoMesAtual,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar assinatura: %w", err)
	}

	return nil
}

const subscriptionColumns = `
	id, company_id, COALESCE(payment_method_id::text, ''), plano, recorrencia,
	valor_centavos, dia_vencimento, status, proxima_cobranca, data_cancelamento,
	COALESCE(provider_subscription_id, ''), is_trial, trial_ends_at,
	current_period_start, current_period_end, auto_renew, usage_limits::text,
	meses_pagos::text, pago_mes_atual, created_at, updated_at
`

func (r *SubscriptionRepository) FindByID(ctx context.Context, id string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	sub, err := scanSubscription(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("erro ao buscar assinatura: %w", err)
	}

	return sub, nil
}

func (r *SubscriptionRepository) FindActive(ctx context.Context) ([]*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE status = 'active' ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar assinaturas ativas: %w", err)
	}
	defer rows.Close()

	var subs []*entity.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler assinatura: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// UpdateStatus grava data_cancelamento junto quando o destino é cancelled.
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id string, status entity.SubscriptionStatus) error {
	query := `
		UPDATE subscriptions SET
			status = $2,
			data_cancelamento = CASE WHEN $2 = 'cancelled' THEN NOW() ELSE data_cancelamento END,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da assinatura: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrSubscriptionNotFound
	}

	return nil
}

// AdvanceBillingPeriod registra o ciclo recém-faturado e agenda a próxima
// cobrança. pago_mes_atual zera: o período que abre ainda não foi quitado.
func (r *SubscriptionRepository) AdvanceBillingPeriod(ctx context.Context, id string, periodStart, nextCharge time.Time) error {
	query := `
		UPDATE subscriptions SET
			proxima_cobranca = $3,
			current_period_start = $2,
			current_period_end = $3,
			pago_mes_atual = FALSE,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query, id, periodStart, nextCharge)
	if err != nil {
		return fmt.Errorf("erro ao agendar próximo ciclo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepository) CancelByProviderID(ctx context.Context, providerSubscriptionID string, cancelledAt time.Time) (int64, error) {
	query := `
		UPDATE subscriptions SET
			status = 'cancelled',
			data_cancelamento = $2,
			updated_at = NOW()
		WHERE provider_subscription_id = $1 AND status <> 'cancelled'
	`

	result, err := r.DB.ExecContext(ctx, query, providerSubscriptionID, cancelledAt)
	if err != nil {
		return 0, fmt.Errorf("erro ao cancelar assinatura via provedor: %w", err)
	}

	return result.RowsAffected()
}

func scanSubscription(row rowScanner) (*entity.Subscription, error) {
	var sub entity.Subscription
	var dataCancelamento, trialEndsAt, periodStart, periodEnd sql.NullTime
	var usageLimits sql.NullString
	var mesesPagos []string

	err := row.Scan(
		&sub.ID,
		&sub.CompanyID,
		&sub.PaymentMethodID,
		&sub.Plano,
		&sub.Recorrencia,
		&sub.ValorCentavos,
		&sub.DiaVencimento,
		&sub.Status,
		&sub.ProximaCobranca,
		&dataCancelamento,
		&sub.ProviderSubscriptionID,
		&sub.IsTrial,
		&trialEndsAt,
		&periodStart,
		&periodEnd,
		&sub.AutoRenew,
		&usageLimits,
		pgTextArrayScanner{&mesesPagos},
		&sub.PagoMesAtual,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dataCancelamento.Valid {
		sub.DataCancelamento = &dataCancelamento.Time
	}
	if trialEndsAt.Valid {
		sub.TrialEndsAt = &trialEndsAt.Time
	}
	if periodStart.Valid {
		sub.CurrentPeriodStart = &periodStart.Time
	}
	if periodEnd.Valid {
		sub.CurrentPeriodEnd = &periodEnd.Time
	}
	if usageLimits.Valid && usageLimits.String != "" && usageLimits.String != "{}" {
		if err := json.Unmarshal([]byte(usageLimits.String), &sub.UsageLimits); err != nil {
			return nil, fmt.Errorf("usage_limits inválido: %w", err)
		}
	}
	sub.MesesPagos = mesesPagos

	return &sub, nil
}

// pgJSONMap serializa o mapa de limites para jsonb; mapa vazio vira '{}'
// para a coluna NOT NULL.
func pgJSONMap(m map[string]int) string {
	if len(m) == 0 {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// pgTextArray serializa []string para o literal text[] do Postgres
// ({a,b,"c d"}). Períodos são sempre "YYYY-MM", mas escapamos mesmo assim.
func pgTextArray(values []string) string {
	if len(values) == 0 {
		return "{}"
	}

	quoted := make([]string, 0, len(values))
	for _, v := range values {
		escaped := strings.ReplaceAll(v, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		quoted = append(quoted, `"`+escaped+`"`)
	}

	return "{" + strings.Join(quoted, ",") + "}"
}

// pgTextArrayScanner lê text[] de volta para []string via pgx.
type pgTextArrayScanner struct {
	dest *[]string
}

func (s pgTextArrayScanner) Scan(src interface{}) error {
	if src == nil {
		*s.dest = []string{}
		return nil
	}

	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("tipo inesperado para text[]: %T", src)
	}

	*s.dest = parseTextArray(raw)
	return nil
}

// parseTextArray cobre o formato {a,b,"c d"} que o driver devolve.
func parseTextArray(raw string) []string {
	if len(raw) < 2 || raw == "{}" {
		return []string{}
	}

	inner := raw[1 : len(raw)-1]
	if inner == "" {
		return []string{}
	}

	var out []string
	var cur []rune
	inQuotes := false
	for i := 0; i < len(inner); i++ {
		ch := rune(inner[i])
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == '\\' && i+1 < len(inner):
			i++
			cur = append(cur, rune(inner[i]))
		case ch == ',' && !inQuotes:
			out = append(out, string(cur))
			cur = cur[:0]
		default:
			cur = append(cur, ch)
		}
	}
	out = append(out, string(cur))

	return out
}
