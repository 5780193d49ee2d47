package mercadopago

import "encoding/json"

// --- Entradas limpas (o que os usecases enxergam) ---

type CreateCustomerInput struct {
	Name    string
	Email   string
	CpfCnpj string
	Phone   string
	ZipCode string
	Street  string
	City    string
	State   string
}

type ChargeInput struct {
	Tipo          string // boleto, pix, credit_card
	Valor         float64
	Descricao     string
	Vencimento    string // "2006-01-02"
	CustomerID    string
	PayerEmail    string
	PayerName     string
	PayerDocument string
}

// ChargeOutput é a resposta normalizada: só os artefatos do tipo pedido
// vêm preenchidos.
type ChargeOutput struct {
	ProviderID string
	Status     string // status cru do Mercado Pago, mapeado depois

	LinhaDigitavel string
	CodigoBarras   string
	URLPdf         string

	ChavePix  string
	QRCodePix string

	LinkPagamento string

	Raw json.RawMessage
}

type SubscriptionInput struct {
	CustomerEmail string
	Valor         float64
	Descricao     string
	NextDueDate   string // "2006-01-02"
	FrequencyType string // "months"
	Frequency     int
}

type SubscriptionOutput struct {
	ProviderID    string
	Status        string
	LinkPagamento string
}

// --- Payloads internos (formato Mercado Pago) ---

type customerRequest struct {
	Email          string          `json:"email,omitempty"`
	FirstName      string          `json:"first_name,omitempty"`
	LastName       string          `json:"last_name,omitempty"`
	Identification *identification `json:"identification,omitempty"`
}

type identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type customerResponse struct {
	ID string `json:"id"`
}

type paymentRequest struct {
	TransactionAmount float64      `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id"`
	DateOfExpiration  string       `json:"date_of_expiration,omitempty"`
	Payer             paymentPayer `json:"payer"`
}

type paymentPayer struct {
	ID             string          `json:"id,omitempty"`
	Email          string          `json:"email,omitempty"`
	FirstName      string          `json:"first_name,omitempty"`
	LastName       string          `json:"last_name,omitempty"`
	Identification *identification `json:"identification,omitempty"`
}

type paymentResponse struct {
	ID                 json.Number         `json:"id"`
	Status             string              `json:"status"`
	TransactionAmount  float64             `json:"transaction_amount"`
	PointOfInteraction *pointOfInteraction `json:"point_of_interaction,omitempty"`
}

type pointOfInteraction struct {
	TransactionData *transactionData `json:"transaction_data,omitempty"`
}

type transactionData struct {
	QRCode              string          `json:"qr_code,omitempty"`
	QRCodeBase64        string          `json:"qr_code_base64,omitempty"`
	TicketURL           string          `json:"ticket_url,omitempty"`
	ExternalResourceURL string          `json:"external_resource_url,omitempty"`
	Barcode             json.RawMessage `json:"barcode,omitempty"`
}

type preferenceRequest struct {
	Items              []preferenceItem `json:"items"`
	Payer              preferencePayer  `json:"payer"`
	BackURLs           backURLs         `json:"back_urls"`
	AutoReturn         string           `json:"auto_return"`
	Expires            bool             `json:"expires"`
	ExpirationDateFrom string           `json:"expiration_date_from,omitempty"`
	ExpirationDateTo   string           `json:"expiration_date_to,omitempty"`
}

type preferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferencePayer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type backURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type preapprovalRequest struct {
	Reason        string        `json:"reason"`
	PayerEmail    string        `json:"payer_email"`
	AutoRecurring autoRecurring `json:"auto_recurring"`
	BackURL       string        `json:"back_url"`
	Status        string        `json:"status,omitempty"`
}

type autoRecurring struct {
	Frequency         int     `json:"frequency"`
	FrequencyType     string  `json:"frequency_type"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
	StartDate         string  `json:"start_date,omitempty"`
}

type preapprovalResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	InitPoint string `json:"init_point"`
}
