package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/contafacil-billing/internal/infra/http/middleware"
	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

type ChargeHandler struct {
	CreateChargeUC *usecase.CreateChargeUseCase
	CheckStatusUC  *usecase.CheckChargeStatusUseCase
	CancelChargeUC *usecase.CancelChargeUseCase
}

func NewChargeHandler(
	createUC *usecase.CreateChargeUseCase,
	checkUC *usecase.CheckChargeStatusUseCase,
	cancelUC *usecase.CancelChargeUseCase,
) *ChargeHandler {
	return &ChargeHandler{
		CreateChargeUC: createUC,
		CheckStatusUC:  checkUC,
		CancelChargeUC: cancelUC,
	}
}

// Create (POST /api/charges)
func (h *ChargeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateChargeInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "JSON inválido: " + err.Error()})
		return
	}

	charge, err := h.CreateChargeUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordChargeCreated(string(charge.TipoPagamento), string(charge.Status))

	writeJSON(w, http.StatusCreated, charge)
}

// Status (GET /api/charges/{id}/status) consulta o gateway e devolve a
// cobrança já reconciliada.
func (h *ChargeHandler) Status(w http.ResponseWriter, r *http.Request) {
	chargeID := chi.URLParam(r, "id")
	if chargeID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id é obrigatório"})
		return
	}

	charge, err := h.CheckStatusUC.Execute(r.Context(), chargeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, charge)
}

// Cancel (POST /api/charges/{id}/cancel)
func (h *ChargeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	chargeID := chi.URLParam(r, "id")
	if chargeID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id é obrigatório"})
		return
	}

	charge, err := h.CancelChargeUC.Execute(r.Context(), chargeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, charge)
}
