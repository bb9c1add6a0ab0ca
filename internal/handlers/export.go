package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xelth-com/scanordergo/internal/export"
)

func exportFileName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("2006-01-02"), ext)
}

func (r *Router) exportCSV(w http.ResponseWriter, req *http.Request) {
	lines := r.cart.Lines()
	if len(lines) == 0 {
		respondError(w, http.StatusConflict, "Cart is empty")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("ordine", "csv")))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(export.OrderCSV(lines)))
}

func (r *Router) exportMexal(w http.ResponseWriter, req *http.Request) {
	lines := r.cart.Lines()
	if len(lines) == 0 {
		respondError(w, http.StatusConflict, "Cart is empty")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("mexal", "csv")))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(export.MexalCSV(lines)))
}

func (r *Router) exportPDF(w http.ResponseWriter, req *http.Request) {
	lines := r.cart.Lines()
	if len(lines) == 0 {
		respondError(w, http.StatusConflict, "Cart is empty")
		return
	}

	pdfBytes, err := export.OrderPDF(lines)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "PDF generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("ordine", "pdf")))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func (r *Router) exportShare(w http.ResponseWriter, req *http.Request) {
	lines := r.cart.Lines()
	if len(lines) == 0 {
		respondError(w, http.StatusConflict, "Cart is empty")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"text": export.ShareText(lines)})
}
