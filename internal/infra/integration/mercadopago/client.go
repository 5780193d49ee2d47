package mercadopago

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client fala com a API REST do Mercado Pago. Credenciais chegam prontas
// na construção (via config) e não mudam durante a vida do client.
type Client struct {
	baseURL string
	token   string
	appURL  string
	http    *http.Client
}

func NewClient(accessToken, baseURL, appURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   accessToken,
		appURL:  strings.TrimRight(appURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured indica se o access token foi informado. Sem ele toda chamada
// falha cedo, antes de bater na rede.
func (c *Client) Configured() bool {
	return c.token != ""
}

// CreateCustomer cria o pagador no Mercado Pago. Best-effort: sem email e
// sem nome não dá para criar, então devolve ID vazio em vez de erro.
func (c *Client) CreateCustomer(input CreateCustomerInput) (string, error) {
	if err := c.checkToken(); err != nil {
		return "", err
	}

	if input.Email == "" && input.Name == "" {
		return "", nil
	}

	first, last := splitName(input.Name)
	payload := customerRequest{
		Email:     input.Email,
		FirstName: first,
		LastName:  last,
	}
	if doc := cleanDocument(input.CpfCnpj); doc != "" {
		payload.Identification = &identification{
			Type:   identificationType(doc),
			Number: doc,
		}
	}

	var response customerResponse
	if err := c.post("/v1/customers", payload, &response); err != nil {
		return "", err
	}

	return response.ID, nil
}

// CreateCharge gera a cobrança conforme o tipo. Cartão não tem "payment"
// direto sem token de cartão, então vira uma preferência de checkout e o
// init_point é devolvido como link de pagamento.
func (c *Client) CreateCharge(input ChargeInput) (*ChargeOutput, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	switch input.Tipo {
	case "boleto":
		return c.createPayment(input, "bolbradesco")
	case "pix":
		return c.createPayment(input, "pix")
	case "credit_card":
		return c.createPreference(input)
	default:
		return nil, fmt.Errorf("tipo de pagamento desconhecido: %s", input.Tipo)
	}
}

func (c *Client) createPayment(input ChargeInput, methodID string) (*ChargeOutput, error) {
	first, last := splitName(input.PayerName)
	payload := paymentRequest{
		TransactionAmount: input.Valor,
		Description:       input.Descricao,
		PaymentMethodID:   methodID,
		Payer: paymentPayer{
			ID:        input.CustomerID,
			Email:     input.PayerEmail,
			FirstName: first,
			LastName:  last,
		},
	}
	if doc := cleanDocument(input.PayerDocument); doc != "" {
		payload.Payer.Identification = &identification{
			Type:   identificationType(doc),
			Number: doc,
		}
	}
	if methodID == "bolbradesco" {
		// Boleto vence no fim do dia do vencimento, fuso de Brasília.
		payload.DateOfExpiration = input.Vencimento + "T23:59:59.000-03:00"
	}

	var response paymentResponse
	raw, err := c.postRaw("/v1/payments", payload, &response)
	if err != nil {
		return nil, err
	}

	out := &ChargeOutput{
		ProviderID: response.ID.String(),
		Status:     response.Status,
		Raw:        raw,
	}

	if response.PointOfInteraction != nil && response.PointOfInteraction.TransactionData != nil {
		tx := response.PointOfInteraction.TransactionData
		switch methodID {
		case "bolbradesco":
			out.URLPdf = tx.TicketURL
			out.CodigoBarras = barcodeContent(tx.Barcode)
			out.LinhaDigitavel = tx.ExternalResourceURL
			if out.LinhaDigitavel == "" {
				out.LinhaDigitavel = tx.TicketURL
			}
		case "pix":
			out.ChavePix = tx.QRCode
			out.QRCodePix = tx.QRCodeBase64
			if out.ChavePix == "" {
				out.ChavePix = tx.ExternalResourceURL
			}
		}
	}

	return out, nil
}

func (c *Client) createPreference(input ChargeInput) (*ChargeOutput, error) {
	payload := preferenceRequest{
		Items: []preferenceItem{{
			Title:     input.Descricao,
			Quantity:  1,
			UnitPrice: input.Valor,
		}},
		Payer: preferencePayer{
			Name:  input.PayerName,
			Email: input.PayerEmail,
		},
		BackURLs: backURLs{
			Success: c.appURL + "/payment/success",
			Failure: c.appURL + "/payment/failure",
			Pending: c.appURL + "/payment/pending",
		},
		AutoReturn:         "approved",
		Expires:            true,
		ExpirationDateFrom: time.Now().Format(time.RFC3339),
	}
	if due, err := time.Parse("2006-01-02", input.Vencimento); err == nil {
		payload.ExpirationDateTo = due.AddDate(0, 0, 30).Format(time.RFC3339)
	}

	var response preferenceResponse
	raw, err := c.postRaw("/checkout/preferences", payload, &response)
	if err != nil {
		return nil, err
	}

	link := response.InitPoint
	if link == "" {
		link = response.SandboxInitPoint
	}

	return &ChargeOutput{
		ProviderID:    response.ID,
		Status:        "pending", // preferência ainda não tem pagamento
		LinkPagamento: link,
		Raw:           raw,
	}, nil
}

// GetPayment consulta o status atual de um pagamento (checagem manual).
func (c *Client) GetPayment(providerID string) (*ChargeOutput, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", c.baseURL+"/v1/payments/"+providerID, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request mercado pago: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("mercado pago rejeitou consulta (status %d): %s", resp.StatusCode, string(body))
	}

	var response paymentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro decode mercado pago: %w", err)
	}

	return &ChargeOutput{
		ProviderID: response.ID.String(),
		Status:     response.Status,
		Raw:        body,
	}, nil
}

// CancelPayment cancela um pagamento pendente no gateway.
func (c *Client) CancelPayment(providerID string) error {
	if err := c.checkToken(); err != nil {
		return err
	}
	return c.put("/v1/payments/"+providerID, map[string]string{"status": "cancelled"})
}

// CreateSubscription cria um preapproval (assinatura recorrente).
func (c *Client) CreateSubscription(input SubscriptionInput) (*SubscriptionOutput, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	freqType := input.FrequencyType
	if freqType == "" {
		freqType = "months"
	}
	freq := input.Frequency
	if freq <= 0 {
		freq = 1
	}

	payload := preapprovalRequest{
		Reason:     input.Descricao,
		PayerEmail: input.CustomerEmail,
		AutoRecurring: autoRecurring{
			Frequency:         freq,
			FrequencyType:     freqType,
			TransactionAmount: input.Valor,
			CurrencyID:        "BRL",
			StartDate:         input.NextDueDate + "T00:00:00.000-03:00",
		},
		BackURL: c.appURL + "/subscription/success",
	}

	var response preapprovalResponse
	if err := c.post("/preapproval", payload, &response); err != nil {
		return nil, err
	}

	return &SubscriptionOutput{
		ProviderID:    response.ID,
		Status:        response.Status,
		LinkPagamento: response.InitPoint,
	}, nil
}

// CancelSubscription cancela o preapproval no gateway.
func (c *Client) CancelSubscription(providerID string) error {
	if err := c.checkToken(); err != nil {
		return err
	}
	return c.put("/preapproval/"+providerID, map[string]string{"status": "cancelled"})
}

// --- helpers HTTP ---

func (c *Client) checkToken() error {
	if c.token == "" {
		return fmt.Errorf("access token do mercado pago não configurado")
	}
	return nil
}

func (c *Client) post(path string, payload, out any) error {
	_, err := c.doJSON("POST", path, payload, out)
	return err
}

func (c *Client) postRaw(path string, payload, out any) (json.RawMessage, error) {
	return c.doJSON("POST", path, payload, out)
}

func (c *Client) put(path string, payload any) error {
	_, err := c.doJSON("PUT", path, payload, nil)
	return err
}

func (c *Client) doJSON(method, path string, payload, out any) (json.RawMessage, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal payload: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request mercado pago: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("mercado pago rejeitou (status %d): %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("erro decode mercado pago: %w", err)
		}
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", uuid.New().String())
	req.Header.Set("User-Agent", "ContaFacilBilling/1.0")
}

// --- helpers de dados ---

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func cleanDocument(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func identificationType(cleanDoc string) string {
	if len(cleanDoc) == 11 {
		return "CPF"
	}
	return "CNPJ"
}

// barcode pode vir como string ou como objeto {"content": "..."}.
func barcodeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Content
	}
	return ""
}
