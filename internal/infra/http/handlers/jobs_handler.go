package handlers

import (
	"net/http"

	"github.com/xavierca1/contafacil-billing/internal/infra/http/middleware"
	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

// JobsHandler expõe os jobs agendados para disparo manual. Os workers já
// rodam sozinhos; isto existe para operação e debugging.
type JobsHandler struct {
	GenerateUC *usecase.GenerateMonthlyPaymentsUseCase
	RemindUC   *usecase.SendPaymentRemindersUseCase
	CleanupUC  *usecase.CleanupExpiredChargesUseCase
}

func NewJobsHandler(
	generateUC *usecase.GenerateMonthlyPaymentsUseCase,
	remindUC *usecase.SendPaymentRemindersUseCase,
	cleanupUC *usecase.CleanupExpiredChargesUseCase,
) *JobsHandler {
	return &JobsHandler{
		GenerateUC: generateUC,
		RemindUC:   remindUC,
		CleanupUC:  cleanupUC,
	}
}

// GeneratePayments (POST /api/jobs/generate-payments)
func (h *JobsHandler) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	count, err := h.GenerateUC.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordPaymentsGenerated(count)

	writeJSON(w, http.StatusOK, map[string]int{"generated": count})
}

// SendReminders (POST /api/jobs/send-reminders)
func (h *JobsHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	count, err := h.RemindUC.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordRemindersSent(count)

	writeJSON(w, http.StatusOK, map[string]int{"sent": count})
}

// CleanupCharges (POST /api/jobs/cleanup-charges)
func (h *JobsHandler) CleanupCharges(w http.ResponseWriter, r *http.Request) {
	count, err := h.CleanupUC.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordChargesReaped(count)

	writeJSON(w, http.StatusOK, map[string]int{"deleted": count})
}
