package usecase

// Códigos usados pelos handlers para decidir o status HTTP.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeCompanyNotFound = "COMPANY_NOT_FOUND"
	CodeChargeNotFound  = "CHARGE_NOT_FOUND"
	CodePaymentNotFound = "PAYMENT_NOT_FOUND"
	CodePaymentFailed   = "PAYMENT_FAILED"
	CodeDatabaseError   = "DATABASE_ERROR"
)

// DomainError: problema do pedido (validação, recurso inexistente).
// Vira 4xx na borda HTTP.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: falha de infraestrutura (banco, fila). Vira 5xx.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
