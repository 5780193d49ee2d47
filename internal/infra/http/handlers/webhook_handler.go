package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/xavierca1/contafacil-billing/internal/infra/http/middleware"
	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

type WebhookHandler struct {
	ProcessWebhookUC *usecase.ProcessWebhookUseCase
}

func NewWebhookHandler(uc *usecase.ProcessWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{ProcessWebhookUC: uc}
}

// Handle (POST /api/webhooks/payment). Contrato com o provedor:
// 200 = processado (inclui evento repetido/desconhecido, que são no-op),
// 400 = payload ilegível (reenviar não vai ajudar),
// 500 = falha nossa, pode reenviar.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	kind, err := h.ProcessWebhookUC.Execute(r.Context(), raw)
	middleware.RecordWebhookEvent(string(kind))

	if err != nil {
		if usecase.IsDomainError(err) {
			log.Printf("❌ Webhook ilegível: %v", err)
			http.Error(w, "Bad JSON", http.StatusBadRequest)
			return
		}
		log.Printf("❌ Webhook: falha de processamento: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
