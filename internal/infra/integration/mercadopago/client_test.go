package mercadopago

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("TEST-TOKEN", server.URL, "https://app.contafacil.com.br")
}

// TestCreateChargeBoleto - boleto vira payment com bolbradesco e vencimento
// no fim do dia, fuso de Brasília.
func TestCreateChargeBoleto(t *testing.T) {
	var received paymentRequest

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "Bearer TEST-TOKEN", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))

		json.NewDecoder(r.Body).Decode(&received)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 123456789,
			"status": "pending",
			"point_of_interaction": {
				"transaction_data": {
					"ticket_url": "https://mp.com/boleto/123.pdf",
					"barcode": {"content": "23790000012345"}
				}
			}
		}`))
	})

	out, err := client.CreateCharge(ChargeInput{
		Tipo:          "boleto",
		Valor:         150.00,
		Descricao:     "Honorários Janeiro/2025",
		Vencimento:    "2025-01-10",
		PayerEmail:    "maria@padaria.com.br",
		PayerName:     "Maria Oliveira",
		PayerDocument: "12.345.678/0001-90",
	})

	assert.NoError(t, err)
	assert.Equal(t, "123456789", out.ProviderID)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "https://mp.com/boleto/123.pdf", out.URLPdf)
	assert.Equal(t, "23790000012345", out.CodigoBarras)
	assert.NotEmpty(t, out.Raw)

	assert.Equal(t, "bolbradesco", received.PaymentMethodID)
	assert.Equal(t, "2025-01-10T23:59:59.000-03:00", received.DateOfExpiration)
	assert.Equal(t, "CNPJ", received.Payer.Identification.Type)
	assert.Equal(t, "12345678000190", received.Payer.Identification.Number)
}

func TestCreateChargePix(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 555,
			"status": "pending",
			"point_of_interaction": {
				"transaction_data": {
					"qr_code": "00020126580014br.gov.bcb.pix",
					"qr_code_base64": "aVBORw0K"
				}
			}
		}`))
	})

	out, err := client.CreateCharge(ChargeInput{
		Tipo:       "pix",
		Valor:      99.90,
		Descricao:  "Mensalidade",
		Vencimento: "2025-01-10",
		PayerEmail: "maria@padaria.com.br",
		PayerName:  "Maria Oliveira",
	})

	assert.NoError(t, err)
	assert.Equal(t, "555", out.ProviderID)
	assert.Equal(t, "00020126580014br.gov.bcb.pix", out.ChavePix)
	assert.Equal(t, "aVBORw0K", out.QRCodePix)
}

// TestCreateChargeCreditCard - cartão não tem payment direto sem token de
// cartão: vira preferência de checkout e o init_point é o link de pagamento.
func TestCreateChargeCreditCard(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "pref-abc", "init_point": "https://mp.com/checkout/pref-abc"}`))
	})

	out, err := client.CreateCharge(ChargeInput{
		Tipo:       "credit_card",
		Valor:      200.00,
		Descricao:  "Mensalidade",
		Vencimento: "2025-01-10",
		PayerEmail: "maria@padaria.com.br",
		PayerName:  "Maria Oliveira",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pref-abc", out.ProviderID)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "https://mp.com/checkout/pref-abc", out.LinkPagamento)
}

func TestCreateChargeUnknownType(t *testing.T) {
	client := NewClient("TEST-TOKEN", "http://localhost", "http://localhost")

	_, err := client.CreateCharge(ChargeInput{Tipo: "dinheiro"})

	assert.Error(t, err)
}

func TestCreateChargeGatewayRejection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "invalid transaction_amount"}`))
	})

	_, err := client.CreateCharge(ChargeInput{Tipo: "pix", Valor: -1})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

// TestCreateCustomerBestEffort - sem email e sem nome não dá para criar o
// pagador: devolve ID vazio em vez de erro.
func TestCreateCustomerBestEffort(t *testing.T) {
	client := NewClient("TEST-TOKEN", "http://localhost:0", "http://localhost")

	id, err := client.CreateCustomer(CreateCustomerInput{CpfCnpj: "12345678901"})

	assert.NoError(t, err)
	assert.Empty(t, id)
}

func TestCancelPayment(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	err := client.CancelPayment("123456789")

	assert.NoError(t, err)
	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, "/v1/payments/123456789", gotPath)
	assert.Equal(t, "cancelled", gotBody["status"])
}

func TestClientWithoutToken(t *testing.T) {
	client := NewClient("", "http://localhost", "http://localhost")

	assert.False(t, client.Configured())

	_, err := client.CreateCharge(ChargeInput{Tipo: "pix"})
	assert.Error(t, err)

	_, err = client.CreateCustomer(CreateCustomerInput{Email: "a@b.com"})
	assert.Error(t, err)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Maria Oliveira dos Santos")
	assert.Equal(t, "Maria", first)
	assert.Equal(t, "Oliveira dos Santos", last)

	first, last = splitName("Maria")
	assert.Equal(t, "Maria", first)
	assert.Empty(t, last)

	first, last = splitName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}

func TestIdentificationType(t *testing.T) {
	assert.Equal(t, "CPF", identificationType(cleanDocument("123.456.789-01")))
	assert.Equal(t, "CNPJ", identificationType(cleanDocument("12.345.678/0001-90")))
}

// barcode chega como string ou como objeto, dependendo do endpoint.
func TestBarcodeContent(t *testing.T) {
	assert.Equal(t, "2379", barcodeContent(json.RawMessage(`"2379"`)))
	assert.Equal(t, "2379", barcodeContent(json.RawMessage(`{"content":"2379"}`)))
	assert.Empty(t, barcodeContent(nil))
}
