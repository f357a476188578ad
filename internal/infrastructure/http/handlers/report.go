package handlers

import (
	"net/http"

	"github.com/yuzvak/pos-service/internal/application/use_cases"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/response"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type ReportHandler struct {
	reports *use_cases.ReportUseCase
	log     *logger.Logger
}

func NewReportHandler(reports *use_cases.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		log:     log,
	}
}

func reportQuery(r *http.Request) use_cases.ReportQuery {
	q := r.URL.Query()
	return use_cases.ReportQuery{
		Year:   q.Get("tahun"),
		Month:  q.Get("bulan"),
		Search: q.Get("q"),
		Kind:   q.Get("jenis"),
	}
}

func (h *ReportHandler) HandleRekapitulasi(w http.ResponseWriter, r *http.Request) {
	recap, err := h.reports.Rekapitulasi(r.Context(), reportQuery(r))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, recap)
}

func (h *ReportHandler) HandleTransactionHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.reports.TransactionHistory(r.Context(), reportQuery(r))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, history)
}

func (h *ReportHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reports.Dashboard(r.Context())
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, dashboard)
}
