package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

type Client struct {
	accessToken string
	phoneID     string
	baseURL     string
}

func NewClient(accessToken, phoneID string) *Client {
	return &Client{
		accessToken: accessToken,
		phoneID:     phoneID,
		baseURL:     "https://graph.facebook.com/v18.0",
	}
}

func (c *Client) Configured() bool {
	return c.accessToken != "" && c.phoneID != ""
}

// SendMessage envia texto livre (cobranças trazem valor, vencimento e
// dados de pagamento no corpo, montados por quem chama).
func (c *Client) SendMessage(input SendMessageInput) error {
	if !c.Configured() {
		log.Println("⚠️ WhatsApp: ACCESS_TOKEN ou PHONE_ID não configurados")
		return fmt.Errorf("whatsapp não configurado")
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                input.PhoneNumber,
		"type":              "text",
		"text": map[string]interface{}{
			"preview_url": false,
			"body":        input.Message,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ WhatsApp: Erro ao serializar payload: %v", err)
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ WhatsApp: Erro ao criar requisição: %v", err)
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ WhatsApp: Erro ao enviar mensagem: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("❌ WhatsApp: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("❌ WhatsApp: Erro ao parsear resposta: %v", err)
		return err
	}

	if result.Error != nil {
		log.Printf("❌ WhatsApp: Erro na API: %s (Code: %d)", result.Error.Message, result.Error.Code)
		return fmt.Errorf("whatsapp: %s", result.Error.Message)
	}

	log.Printf("✅ WhatsApp: Mensagem enviada para %s", input.PhoneNumber)
	return nil
}
