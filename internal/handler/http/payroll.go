package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) period(w http.ResponseWriter, r *http.Request) (payroll.Period, bool) {
	p, err := h.payrollService.CurrentPeriod(periodRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return payroll.Period{}, false
	}
	return p, true
}

// Summary implements PayrollHandler.
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.period(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Summary(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// writeFile renders into memory first so a failed render still gets a JSON error.
func writeFile(w http.ResponseWriter, contentType, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		response.HandleError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = buf.WriteTo(w)
}

func periodFilename(prefix string, p payroll.Period, ext string) string {
	resp := payroll.NewPeriodResponse(p)
	return fmt.Sprintf("%s-%s-%s.%s", prefix, resp.Start, resp.End, ext)
}

// ExportCSV implements PayrollHandler.
func (h *payrollHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	p, ok := h.period(w, r)
	if !ok {
		return
	}
	writeFile(w, "text/csv", periodFilename("payroll", p, "csv"), func(out io.Writer) error {
		return h.payrollService.ExportCSV(r.Context(), p, out)
	})
}

// ExportXLSX implements PayrollHandler.
func (h *payrollHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	p, ok := h.period(w, r)
	if !ok {
		return
	}
	writeFile(w, xlsxContentType, periodFilename("payroll", p, "xlsx"), func(out io.Writer) error {
		return h.payrollService.ExportXLSX(r.Context(), p, out)
	})
}

// GetMine implements PayrollHandler.
func (h *payrollHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	p, ok := h.period(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetForEmployee(r.Context(), employeeID, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Payslip lets employees download their own payslip and admins any.
func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID != callerID && !middleware.IsAdmin(r.Context()) {
		response.Forbidden(w, "Not allowed to view this payslip")
		return
	}

	p, ok := h.period(w, r)
	if !ok {
		return
	}
	writeFile(w, "application/pdf", periodFilename("payslip-"+employeeID, p, "pdf"), func(out io.Writer) error {
		return h.payrollService.Payslip(r.Context(), employeeID, p, out)
	})
}
