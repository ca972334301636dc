package export

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/repository"

	"github.com/google/uuid"
)

// Handler serves archived datasets as file downloads. Paths look like
// /datasets/{id}/export?format=csv.
type Handler struct {
	datasets repository.DatasetRepository
}

// NewHTTPHandler wraps the dataset repository with a download endpoint.
func NewHTTPHandler(datasets repository.DatasetRepository) http.Handler {
	return &Handler{datasets: datasets}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-1] != "export" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	id, err := uuid.Parse(segments[len(segments)-2])
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid dataset identifier: %v", err), http.StatusBadRequest)
		return
	}
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dataset, err := h.datasets.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("dataset not found: %v", err), http.StatusNotFound)
		return
	}
	records, err := h.datasets.GetRecords(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load dataset records: %v", err), http.StatusInternalServerError)
		return
	}

	table := domain.Table{
		Domain:  dataset.Domain,
		Columns: columnsFor(dataset.Domain, records),
		Records: records,
	}

	filename := fmt.Sprintf("%s-%s.%s", strings.ToLower(string(dataset.Domain)), dataset.ID, format)
	w.Header().Set("Content-Type", format.MimeType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := Write(w, table, format); err != nil {
		http.Error(w, fmt.Sprintf("failed to render dataset: %v", err), http.StatusInternalServerError)
	}
}

// columnsFor reconstructs the canonical column order for archived records:
// catalogue order for known variables, with any extra keys appended.
func columnsFor(code domain.Code, records []domain.Record) []string {
	present := make(map[string]struct{})
	for _, rec := range records {
		for key := range rec.Values {
			present[key] = struct{}{}
		}
	}

	var columns []string
	if cat, ok := domain.CatalogueFor(code); ok {
		for _, name := range cat.CanonicalOrder(nil) {
			if _, ok := present[name]; ok {
				columns = append(columns, name)
				delete(present, name)
			}
		}
	}
	var extras []string
	for key := range present {
		extras = append(extras, key)
	}
	sort.Strings(extras)
	return append(columns, extras...)
}
