package mail

import (
	"log"

	"github.com/xavierca1/contafacil-billing/internal/infra/integration/whatsapp"
)

// WhatsAppSender implementa o canal de WhatsApp do jeito que a cobrança
// precisa: falha de envio nunca derruba a operação que a disparou.
type WhatsAppSender struct {
	client *whatsapp.Client
}

func NewWhatsAppSender(client *whatsapp.Client) *WhatsAppSender {
	return &WhatsAppSender{
		client: client,
	}
}

func (s *WhatsAppSender) SendMessage(phone, message string) error {
	if phone == "" || message == "" {
		log.Printf("⚠️ WhatsApp: Dados incompletos para envio (phone: %s)", phone)
		return nil
	}

	input := whatsapp.SendMessageInput{
		PhoneNumber: phone,
		Message:     message,
	}

	if err := s.client.SendMessage(input); err != nil {
		log.Printf("⚠️ WhatsApp: Falha ao enviar para %s: %v", phone, err)
		return nil
	}

	return nil
}
