package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

type SubscriptionHandler struct {
	CreateUC *usecase.CreateSubscriptionUseCase
	CancelUC *usecase.CancelSubscriptionUseCase
}

func NewSubscriptionHandler(createUC *usecase.CreateSubscriptionUseCase, cancelUC *usecase.CancelSubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{
		CreateUC: createUC,
		CancelUC: cancelUC,
	}
}

// Create (POST /api/subscriptions)
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateSubscriptionInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	sub, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// Cancel (POST /api/subscriptions/{id}/cancel)
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	subscriptionID := chi.URLParam(r, "id")
	if subscriptionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id é obrigatório"})
		return
	}

	if err := h.CancelUC.Execute(r.Context(), subscriptionID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
