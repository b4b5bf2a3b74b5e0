package handler

import (
	"net/http"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
)

// StudentHandler serves the signed-in student's own records.
type StudentHandler struct {
	directory DirectoryService
}

func NewStudentHandler(directory DirectoryService) *StudentHandler {
	return &StudentHandler{directory: directory}
}

func (h *StudentHandler) Me(w http.ResponseWriter, r *http.Request, session domain.StudentSession) {
	student, err := h.directory.GetStudent(r.Context(), session.StudentID)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, student)
}

func (h *StudentHandler) MyPayments(w http.ResponseWriter, r *http.Request, session domain.StudentSession) {
	filter := domain.PaymentFilter{
		StudentID: session.StudentID,
		Status:    r.URL.Query().Get("status"),
	}
	payments, err := h.directory.ListPayments(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, payments)
}

func (h *StudentHandler) Fees(w http.ResponseWriter, r *http.Request, _ domain.StudentSession) {
	fees, err := h.directory.ListFees(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, fees)
}
