package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

type MonthlyPaymentHandler struct {
	MarkPaidUC *usecase.MarkPaymentPaidUseCase
}

func NewMonthlyPaymentHandler(markPaidUC *usecase.MarkPaymentPaidUseCase) *MonthlyPaymentHandler {
	return &MonthlyPaymentHandler{MarkPaidUC: markPaidUC}
}

// Pay (POST /api/monthly-payments/{id}/pay) quita a mensalidade manualmente.
func (h *MonthlyPaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id é obrigatório"})
		return
	}

	var body struct {
		MetodoPagamento string `json:"metodo_pagamento"`
	}
	// Corpo é opcional: sem ele, vale o método já registrado na mensalidade.
	_ = json.NewDecoder(r.Body).Decode(&body)

	payment, err := h.MarkPaidUC.Execute(r.Context(), usecase.MarkPaymentPaidInput{
		PaymentID:       paymentID,
		MetodoPagamento: body.MetodoPagamento,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}
