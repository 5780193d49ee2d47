package usecase

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct roda as tags `validate` e condensa as falhas em um
// DomainError legível.
func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return &DomainError{Code: CodeValidationError, Message: err.Error()}
		}
		msg := "validation failed: "
		for i, fe := range errs {
			if i > 0 {
				msg += ", "
			}
			msg += fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
		}
		return &DomainError{Code: CodeValidationError, Message: msg}
	}
	return nil
}

// parseDueDate valida o vencimento. Boleto e PIX exigem hoje-ou-futuro;
// a comparação é por dia, não por instante.
func parseDueDate(s string, requireFuture bool) (time.Time, error) {
	due, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, &DomainError{
			Code:    CodeValidationError,
			Message: "vencimento inválido, use o formato AAAA-MM-DD",
		}
	}

	if requireFuture {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if due.Before(today) {
			return time.Time{}, &DomainError{
				Code:    CodeValidationError,
				Message: "vencimento não pode estar no passado",
			}
		}
	}

	return due, nil
}
