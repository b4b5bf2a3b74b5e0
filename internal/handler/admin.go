package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

// AdminHandler manages the student roster, fee catalogue and payment log.
type AdminHandler struct {
	directory DirectoryService
	validator *validator.Validate
}

func NewAdminHandler(directory DirectoryService) *AdminHandler {
	return &AdminHandler{
		directory: directory,
		validator: validator.New(),
	}
}

func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	students, err := h.directory.ListStudents(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, students)
}

func (h *AdminHandler) GetStudent(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	student, err := h.directory.GetStudent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, student)
}

func (h *AdminHandler) CreateStudent(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	var in domain.StudentInput
	if err := decodeJSON(r, &in); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	student, err := h.directory.CreateStudent(r.Context(), in)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Created(w, student)
}

func (h *AdminHandler) UpdateStudent(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	var patch domain.StudentPatch
	if err := decodeJSON(r, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(patch); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	student, err := h.directory.UpdateStudent(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, student)
}

func (h *AdminHandler) DeleteStudent(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	if err := h.directory.DeleteStudent(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Notice(w, "Student deleted", nil)
}

func (h *AdminHandler) StudentPayments(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	payments, err := h.directory.ListPayments(r.Context(), domain.PaymentFilter{StudentID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, payments)
}

func (h *AdminHandler) ListFees(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	fees, err := h.directory.ListFees(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, fees)
}

func (h *AdminHandler) CreateFee(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	var in domain.FeeInput
	if err := decodeJSON(r, &in); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}
	if in.Amount.IsNegative() {
		response.BadRequest(w, "Amount must not be negative", nil)
		return
	}

	fee, err := h.directory.CreateFee(r.Context(), in)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Created(w, fee)
}

func (h *AdminHandler) UpdateFee(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	var patch domain.FeePatch
	if err := decodeJSON(r, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if patch.Amount != nil && patch.Amount.IsNegative() {
		response.BadRequest(w, "Amount must not be negative", nil)
		return
	}

	fee, err := h.directory.UpdateFee(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, fee)
}

func (h *AdminHandler) DeleteFee(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	if err := h.directory.DeleteFee(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Notice(w, "Fee deleted", nil)
}

// ListPayments supports ?status=&q=&studentId=&from=&to= with YYYY-MM-DD dates.
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request, _ domain.AdminSession) {
	query := r.URL.Query()
	filter := domain.PaymentFilter{
		StudentID: query.Get("studentId"),
		Status:    query.Get("status"),
		Query:     query.Get("q"),
	}

	from, to, err := utils.ParseDateRange(query.Get("from"), query.Get("to"))
	if err != nil {
		response.BadRequest(w, "Invalid date range", err)
		return
	}
	filter.From, filter.To = from, to

	payments, err := h.directory.ListPayments(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	response.Success(w, payments)
}
