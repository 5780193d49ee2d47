package entity

import (
	"errors"
	"fmt"
	"time"
)

// BillingCycle define de quanto em quanto tempo a assinatura cobra.
type BillingCycle string

const (
	CycleMensal     BillingCycle = "mensal"
	CycleTrimestral BillingCycle = "trimestral"
	CycleSemestral  BillingCycle = "semestral"
	CycleAnual      BillingCycle = "anual"
)

var ErrInvalidBillingCycle = errors.New("recorrência inválida")

func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(s) {
	case CycleMensal, CycleTrimestral, CycleSemestral, CycleAnual:
		return BillingCycle(s), nil
	}
	return "", ErrInvalidBillingCycle
}

// Months retorna o tamanho do ciclo em meses.
func (c BillingCycle) Months() int {
	switch c {
	case CycleTrimestral:
		return 3
	case CycleSemestral:
		return 6
	case CycleAnual:
		return 12
	default:
		return 1
	}
}

// PeriodFor devolve o identificador "YYYY-MM" do período que contém t.
// É a chave de idempotência da geração de mensalidades.
func PeriodFor(t time.Time) string {
	return t.Format("2006-01")
}

// NextDueDate avança o vencimento um ciclo inteiro. A âncora é o vencimento
// da assinatura, nunca o mês do calendário: uma trimestral vence 4 vezes por
// ano. Dia 1-28 nunca estoura o mês de destino.
func NextDueDate(due time.Time, cycle BillingCycle) time.Time {
	return due.AddDate(0, cycle.Months(), 0)
}

// DueDateFor posiciona o vencimento no dia escolhido pela assinatura dentro
// do mês-âncora. diaVencimento é validado na criação (1-28), então não há
// risco de estourar o mês.
func DueDateFor(anchor time.Time, diaVencimento int) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), diaVencimento, 0, 0, 0, 0, anchor.Location())
}

// ParsePeriod valida um identificador de período vindo de fora.
func ParsePeriod(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("período inválido %q: %w", s, err)
	}
	return t, nil
}
