package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xavierca1/contafacil-billing/internal/entity"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
)

// CreateChargeUseCase é o motor de cobrança: transforma um pedido
// (empresa, valor, vencimento, tipo) em uma cobrança no gateway mais o
// registro local canônico, e avisa o responsável financeiro.
type CreateChargeUseCase struct {
	ChargeRepo  entity.ChargeRepositoryInterface
	CompanyRepo entity.CompanyRepositoryInterface
	Gateway     PaymentGateway
	Email       EmailService
	WhatsApp    WhatsAppService
}

func NewCreateChargeUseCase(
	chargeRepo entity.ChargeRepositoryInterface,
	companyRepo entity.CompanyRepositoryInterface,
	gateway PaymentGateway,
	email EmailService,
	whatsapp WhatsAppService,
) *CreateChargeUseCase {
	return &CreateChargeUseCase{
		ChargeRepo:  chargeRepo,
		CompanyRepo: companyRepo,
		Gateway:     gateway,
		Email:       email,
		WhatsApp:    whatsapp,
	}
}

// Execute devolve a cobrança mesmo quando o gateway falha: nesse caso ela
// fica com status=error e a resposta crua guardada. Erro de verdade só para
// validação ou falha de persistência.
func (uc *CreateChargeUseCase) Execute(ctx context.Context, input CreateChargeInput) (*entity.Charge, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	tipo, err := entity.ParsePaymentType(input.TipoPagamento)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationError, Message: "tipo de pagamento inválido: " + input.TipoPagamento}
	}

	// Boleto e PIX não podem nascer vencidos. Cartão vira checkout com
	// validade própria, então a data passada é tolerada.
	requireFuture := tipo == entity.PaymentTypeBoleto || tipo == entity.PaymentTypePix
	vencimento, err := parseDueDate(input.Vencimento, requireFuture)
	if err != nil {
		return nil, err
	}

	company, err := uc.CompanyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, &DomainError{Code: CodeCompanyNotFound, Message: "empresa inválida: " + err.Error()}
	}

	descricao := input.Descricao
	if descricao == "" {
		descricao = fmt.Sprintf("Cobrança %s", company.RazaoSocial)
	}

	// 1. Grava a cobrança pending ANTES de falar com o gateway. Se o
	// gateway cair, o registro continua rastreável.
	charge := entity.NewCharge(company.ID, tipo, input.ValorCentavos, vencimento, descricao)
	if err := uc.ChargeRepo.Create(ctx, charge); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao gravar cobrança: " + err.Error()}
	}

	// 2. Pagador no gateway é best-effort: sem email/nome segue sem ID.
	customerID, err := uc.Gateway.CreateCustomer(mercadopago.CreateCustomerInput{
		Name:    company.BillingName(),
		Email:   company.BillingEmail(),
		CpfCnpj: company.CNPJ,
		Phone:   company.BillingPhone(),
		ZipCode: company.CEP,
		Street:  company.Endereco,
		City:    company.Cidade,
		State:   company.Estado,
	})
	if err != nil {
		log.Printf("⚠️ Cobrança %s: gateway recusou o pagador, seguindo sem customer: %v", charge.ID, err)
		customerID = ""
	}

	// 3. Cria a cobrança no gateway.
	result, err := uc.Gateway.CreateCharge(mercadopago.ChargeInput{
		Tipo:          string(tipo),
		Valor:         charge.ValorReais(),
		Descricao:     descricao,
		Vencimento:    vencimento.Format("2006-01-02"),
		CustomerID:    customerID,
		PayerEmail:    company.BillingEmail(),
		PayerName:     company.BillingName(),
		PayerDocument: company.CNPJ,
	})
	if err != nil {
		uc.recordGatewayError(ctx, charge, err)
		uc.notify(charge, company)
		return charge, nil
	}

	status, err := mercadopago.MapStatus(result.Status)
	if err != nil {
		// Status fora da tabela é erro de integração: fica registrado alto
		// e a cobrança vai para error em vez de assumir um default.
		uc.recordGatewayError(ctx, charge, err)
		uc.notify(charge, company)
		return charge, nil
	}

	// 4. Artefatos do tipo escolhido + status mapeado.
	charge.ProviderID = result.ProviderID
	charge.ProviderResponse = result.Raw
	charge.Status = status
	charge.LinhaDigitavel = result.LinhaDigitavel
	charge.CodigoBarras = result.CodigoBarras
	charge.URLPdf = result.URLPdf
	charge.ChavePix = result.ChavePix
	charge.QRCodePix = result.QRCodePix
	charge.LinkPagamento = result.LinkPagamento

	if err := uc.ChargeRepo.UpdatePaymentData(ctx, charge); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao atualizar cobrança: " + err.Error()}
	}

	// 5. Notificação nunca derruba a criação da cobrança.
	uc.notify(charge, company)

	return charge, nil
}

func (uc *CreateChargeUseCase) recordGatewayError(ctx context.Context, charge *entity.Charge, cause error) {
	log.Printf("❌ Cobrança %s: gateway falhou: %v", charge.ID, cause)

	charge.Status = entity.ChargeStatusError
	raw, _ := json.Marshal(map[string]string{"error": cause.Error()})
	charge.ProviderResponse = raw

	if err := uc.ChargeRepo.UpdateError(ctx, charge.ID, raw); err != nil {
		log.Printf("❌ Cobrança %s: falha ao registrar erro do gateway: %v", charge.ID, err)
	}
}

// notify tenta email e WhatsApp. Falha é logada e engolida: cobrança criada
// vale mais que aviso entregue.
func (uc *CreateChargeUseCase) notify(charge *entity.Charge, company *entity.Company) {
	data := ChargeNotificationData{
		NomeResponsavel: company.BillingName(),
		RazaoSocial:     company.RazaoSocial,
		ValorCentavos:   charge.ValorCentavos,
		Vencimento:      charge.Vencimento,
		TipoPagamento:   string(charge.TipoPagamento),
		Descricao:       charge.Descricao,
		LinhaDigitavel:  charge.LinhaDigitavel,
		URLPdf:          charge.URLPdf,
		ChavePix:        charge.ChavePix,
		LinkPagamento:   charge.LinkPagamento,
	}

	if email := company.BillingEmail(); email != "" && uc.Email != nil {
		if err := uc.Email.SendChargeNotification(email, data); err != nil {
			log.Printf("⚠️ Cobrança %s: falha ao enviar email para %s: %v", charge.ID, email, err)
		}
	}

	if phone := company.BillingWhatsapp(); phone != "" && uc.WhatsApp != nil {
		if err := uc.WhatsApp.SendMessage(phone, BuildChargeMessage(data)); err != nil {
			log.Printf("⚠️ Cobrança %s: falha ao enviar WhatsApp para %s: %v", charge.ID, phone, err)
		}
	}
}

// BuildChargeMessage monta o texto de WhatsApp da cobrança.
func BuildChargeMessage(data ChargeNotificationData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Olá %s!\n\n", data.NomeResponsavel)
	fmt.Fprintf(&b, "Uma nova cobrança foi criada para %s:\n\n", data.RazaoSocial)
	fmt.Fprintf(&b, "💰 Valor: R$ %s\n", FormatCentavos(data.ValorCentavos))
	fmt.Fprintf(&b, "📅 Vencimento: %s\n", data.Vencimento.Format("02/01/2006"))
	fmt.Fprintf(&b, "💳 Forma de Pagamento: %s\n", paymentTypeLabel(data.TipoPagamento))
	if data.Descricao != "" {
		fmt.Fprintf(&b, "📝 Descrição: %s\n", data.Descricao)
	}
	b.WriteString("\n")

	switch data.TipoPagamento {
	case "pix":
		if data.ChavePix != "" {
			fmt.Fprintf(&b, "🔑 Chave PIX (Copia e Cola):\n%s\n\n", data.ChavePix)
		}
		b.WriteString("📧 QR Code e mais detalhes disponíveis no email.\n")
	case "boleto":
		if data.LinhaDigitavel != "" {
			fmt.Fprintf(&b, "📄 Linha Digitável: %s\n\n", data.LinhaDigitavel)
		}
		b.WriteString("📧 Boleto em PDF e mais detalhes disponíveis no email.\n")
	case "credit_card":
		if data.LinkPagamento != "" {
			fmt.Fprintf(&b, "🔗 Link para pagamento: %s\n\n", data.LinkPagamento)
		}
		b.WriteString("📧 Mais detalhes disponíveis no email.\n")
	}

	fmt.Fprintf(&b, "\n⚠️ Esta cobrança vence em %s. Realize o pagamento até a data de vencimento.", data.Vencimento.Format("02/01/2006"))

	return b.String()
}

func paymentTypeLabel(tipo string) string {
	switch tipo {
	case "boleto":
		return "Boleto Bancário"
	case "pix":
		return "PIX"
	case "credit_card":
		return "Cartão de Crédito"
	}
	return "Cobrança"
}

// FormatCentavos imprime centavos como valor em reais (1.234,56).
func FormatCentavos(centavos int64) string {
	reais := centavos / 100
	resto := centavos % 100
	if resto < 0 {
		resto = -resto
	}

	intPart := fmt.Sprintf("%d", reais)
	var out strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 && d != '-' {
			out.WriteString(".")
		}
		out.WriteRune(d)
	}
	return fmt.Sprintf("%s,%02d", out.String(), resto)
}
