package http

import (
	"fmt"
	"net/http"

	"coursebank-service/internal/app"
	"coursebank-service/internal/domain"
)

// ExportHandler serves the current filtered question list as a downloadable
// JSON document named with the current date.
type ExportHandler struct {
	bank *app.BankService
}

func NewExportHandler(bank *app.BankService) *ExportHandler {
	return &ExportHandler{bank: bank}
}

func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	unit := domain.Unit(r.URL.Query().Get("unit"))
	if unit == "" {
		unit = domain.UnitAll
	}
	query := r.URL.Query().Get("q")

	data, filename, err := h.bank.ExportJSON(unit, query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
