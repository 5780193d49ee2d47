package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendChargeNotification avisa o responsável financeiro que uma cobrança
// foi gerada, com os dados de pagamento do método escolhido.
func (s *EmailSender) SendChargeNotification(to string, data usecase.ChargeNotificationData) error {
	emailData := ChargeEmailData{
		NomeResponsavel: data.NomeResponsavel,
		RazaoSocial:     data.RazaoSocial,
		Valor:           usecase.FormatCentavos(data.ValorCentavos),
		Vencimento:      data.Vencimento.Format("02/01/2006"),
		TipoPagamento:   data.TipoPagamento,
		Descricao:       data.Descricao,
		LinhaDigitavel:  data.LinhaDigitavel,
		URLPdf:          data.URLPdf,
		ChavePix:        data.ChavePix,
		LinkPagamento:   data.LinkPagamento,
	}

	subject := fmt.Sprintf("Nova cobrança gerada - %s", data.RazaoSocial)
	return s.send(to, subject, "charge.html", emailData)
}

// SendPaymentReminder é o lembrete de mensalidade que sai dias antes do
// vencimento, já com a cobrança anexada.
func (s *EmailSender) SendPaymentReminder(to string, data usecase.PaymentReminderData) error {
	emailData := ReminderEmailData{
		RazaoSocial:   data.RazaoSocial,
		Plano:         data.Plano,
		MesReferencia: data.MesReferencia,
		Valor:         usecase.FormatCentavos(data.ValorCentavos),
		Vencimento:    data.DataVencimento.Format("02/01/2006"),
		Metodo:        data.MetodoPagamento,
		ChavePix:      data.ChavePix,
		QRCodePix:     data.QRCodePix,
		BoletoURL:     data.BoletoURL,
		LinkPagamento: data.LinkPagamento,
	}

	subject := fmt.Sprintf("Sua mensalidade %s vence em breve", data.MesReferencia)
	return s.send(to, subject, "reminder.html", emailData)
}

// SendAdminAlert entrega avisos internos (cobrança paga/vencida) para os
// usuários master. Corpo em texto simples, sem template de marketing.
func (s *EmailSender) SendAdminAlert(to, subject, message string) error {
	return s.send(to, subject, "admin_alert.html", AdminAlertData{Mensagem: message})
}

func (s *EmailSender) send(to, subject, templateName string, data interface{}) error {
	tmplPath := filepath.Join("templates", templateName)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
