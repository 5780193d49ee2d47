package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/contafacil-billing/internal/entity"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
	"github.com/xavierca1/contafacil-billing/internal/infra/queue"
)

// ProcessWebhookUseCase é o reconciliador: aplica eventos assíncronos do
// gateway sobre cobranças e assinaturas. Corre em paralelo com o scheduler
// e com checagens manuais; a correção vem de transições idempotentes com
// guarda no banco (paga não rebaixa), não de lock.
type ProcessWebhookUseCase struct {
	Gateway     PaymentGateway
	ChargeRepo  entity.ChargeRepositoryInterface
	SubRepo     entity.SubscriptionRepositoryInterface
	CompanyRepo entity.CompanyRepositoryInterface
	Producer    QueueProducerInterface

	Now func() time.Time
}

func NewProcessWebhookUseCase(
	gateway PaymentGateway,
	chargeRepo entity.ChargeRepositoryInterface,
	subRepo entity.SubscriptionRepositoryInterface,
	companyRepo entity.CompanyRepositoryInterface,
	producer QueueProducerInterface,
) *ProcessWebhookUseCase {
	return &ProcessWebhookUseCase{
		Gateway:     gateway,
		ChargeRepo:  chargeRepo,
		SubRepo:     subRepo,
		CompanyRepo: companyRepo,
		Producer:    producer,
		Now:         time.Now,
	}
}

// Execute devolve nil para tudo que é "normal" (evento desconhecido,
// cobrança inexistente, evento repetido): o provedor recebe 200 e para de
// reenviar. Erro só quando algo inesperado falhou e vale o retry do provedor.
// O kind normalizado volta para o handler alimentar as métricas.
func (uc *ProcessWebhookUseCase) Execute(ctx context.Context, raw []byte) (mercadopago.EventKind, error) {
	event, err := uc.Gateway.ProcessWebhook(raw)
	if err != nil {
		return mercadopago.EventUnknown, &DomainError{Code: CodeValidationError, Message: err.Error()}
	}

	switch event.Kind {
	case mercadopago.EventPaymentUpdated:
		// Mercado Pago manda payment.updated para tudo; só interessa
		// quando o pagamento foi aprovado.
		if event.Status == "" {
			log.Printf("ℹ️ Webhook: %s sem status para pagamento %s, ignorando", event.RawEvent, event.ObjectID)
			return event.Kind, nil
		}
		status, err := mercadopago.MapStatus(event.Status)
		if err != nil {
			log.Printf("❌ Webhook: %v (evento %s)", err, event.RawEvent)
			return event.Kind, nil
		}
		if status != entity.ChargeStatusPaid {
			return event.Kind, nil
		}
		return event.Kind, uc.handlePaymentReceived(ctx, event.ObjectID)

	case mercadopago.EventPaymentReceived:
		return event.Kind, uc.handlePaymentReceived(ctx, event.ObjectID)

	case mercadopago.EventPaymentOverdue:
		return event.Kind, uc.handlePaymentOverdue(ctx, event.ObjectID)

	case mercadopago.EventSubscriptionCancelled:
		return event.Kind, uc.handleSubscriptionCancelled(ctx, event.ObjectID)

	default:
		log.Printf("ℹ️ Webhook: evento não tratado %q, reconhecendo sem mudança", event.RawEvent)
		return event.Kind, nil
	}
}

func (uc *ProcessWebhookUseCase) handlePaymentReceived(ctx context.Context, providerID string) error {
	if providerID == "" {
		return nil
	}

	charge, err := uc.ChargeRepo.FindByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, entity.ErrChargeNotFound) {
			log.Printf("ℹ️ Webhook: pagamento %s sem cobrança local, reconhecendo", providerID)
			return nil
		}
		return &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}

	rows, err := uc.ChargeRepo.MarkPaidByProviderID(ctx, providerID, uc.Now())
	if err != nil {
		return &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}
	if rows == 0 {
		// Evento repetido ou fora de ordem: já estava paga. Estado final
		// idêntico, nada a fazer.
		log.Printf("ℹ️ Webhook: cobrança %s já estava paga, evento repetido", charge.ID)
		return nil
	}

	log.Printf("✅ Webhook: cobrança %s marcada como paga", charge.ID)
	uc.notifyMasters(ctx, queue.NotificationChargePaid, charge)
	return nil
}

func (uc *ProcessWebhookUseCase) handlePaymentOverdue(ctx context.Context, providerID string) error {
	if providerID == "" {
		return nil
	}

	charge, err := uc.ChargeRepo.FindByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, entity.ErrChargeNotFound) {
			log.Printf("ℹ️ Webhook: pagamento %s sem cobrança local, reconhecendo", providerID)
			return nil
		}
		return &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}

	rows, err := uc.ChargeRepo.MarkOverdueByProviderID(ctx, providerID)
	if err != nil {
		return &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}
	if rows == 0 {
		// Paga ganha de vencida: evento atrasado chegou depois do
		// pagamento e a guarda no SQL segurou. Só loga.
		log.Printf("ℹ️ Webhook: overdue ignorado para cobrança %s (status atual %s)", charge.ID, charge.Status)
		return nil
	}

	log.Printf("⚠️ Webhook: cobrança %s marcada como vencida", charge.ID)
	uc.notifyMasters(ctx, queue.NotificationChargeOverdue, charge)
	return nil
}

func (uc *ProcessWebhookUseCase) handleSubscriptionCancelled(ctx context.Context, providerSubID string) error {
	if providerSubID == "" {
		return nil
	}

	rows, err := uc.SubRepo.CancelByProviderID(ctx, providerSubID, uc.Now())
	if err != nil {
		return &TechnicalError{Code: CodeDatabaseError, Message: err.Error()}
	}
	if rows == 0 {
		log.Printf("ℹ️ Webhook: assinatura %s não encontrada ou já cancelada", providerSubID)
		return nil
	}

	log.Printf("⚠️ Webhook: assinatura %s cancelada pelo gateway", providerSubID)
	return nil
}

// notifyMasters publica o aviso administrativo na fila. Falha de fila não
// derruba a reconciliação: o estado da cobrança já está certo no banco.
func (uc *ProcessWebhookUseCase) notifyMasters(ctx context.Context, kind queue.NotificationKind, charge *entity.Charge) {
	if uc.Producer == nil {
		return
	}

	razao := ""
	if company, err := uc.CompanyRepo.FindByID(ctx, charge.CompanyID); err == nil {
		razao = company.RazaoSocial
	}

	verbo := "foi paga"
	if kind == queue.NotificationChargeOverdue {
		verbo = "venceu"
	}

	payload := queue.NotificationPayload{
		Kind:          kind,
		ChargeID:      charge.ID,
		CompanyID:     charge.CompanyID,
		RazaoSocial:   razao,
		ValorCentavos: charge.ValorCentavos,
		Mensagem:      fmt.Sprintf("A cobrança #%s da empresa %s %s.", charge.ID, razao, verbo),
	}

	if err := uc.Producer.PublishNotification(ctx, payload); err != nil {
		log.Printf("⚠️ Webhook: falha ao publicar aviso na fila: %v", err)
	}
}
