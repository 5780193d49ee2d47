package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError traduz o erro do usecase para o status HTTP: DomainError é
// culpa do pedido (4xx), o resto é infraestrutura (5xx).
func writeError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case usecase.CodeCompanyNotFound, usecase.CodeChargeNotFound, usecase.CodePaymentNotFound:
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	if techErr, ok := err.(*usecase.TechnicalError); ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: techErr.Message, Code: techErr.Code})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
