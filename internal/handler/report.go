package handler

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
)

type ReportHandler struct {
	reports   ReportService
	validator *validator.Validate
}

func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		validator: validator.New(),
	}
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	snap, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, snap)
}

func (h *ReportHandler) Defaulters(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	defaulters, err := h.reports.Defaulters(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, defaulters)
}

// Export streams the rendered report as a file download.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	query := r.URL.Query()
	req := domain.ExportRequest{
		Type:   query.Get("type"),
		Format: query.Get("format"),
		From:   query.Get("from"),
		To:     query.Get("to"),
	}
	if req.Format == "" {
		req.Format = domain.FormatCSV
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "type must be daily, weekly or yearly and format csv or pdf", err)
		return
	}

	doc, err := h.reports.Export(r.Context(), req)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("X-Report-Source", doc.Source)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}
