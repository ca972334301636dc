package pipeline

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/ingestion"
)

// Handler exposes a full pipeline run as an HTTP endpoint. Each uploaded
// file part is named after its target domain code, e.g. a part named "DM"
// holds the demographics extract.
type Handler struct {
	service *Service
	intake  *ingestion.Service
}

// NewHTTPHandler wraps the service with a POST endpoint.
func NewHTTPHandler(service *Service, intake *ingestion.Service) http.Handler {
	return &Handler{service: service, intake: intake}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	studyID := strings.TrimSpace(r.FormValue("studyId"))

	var inputs []Input
	names := make([]string, 0, len(r.MultipartForm.File))
	for name := range r.MultipartForm.File {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		code := domain.Code(strings.ToUpper(strings.TrimSpace(name)))
		if _, ok := domain.CatalogueFor(code); !ok {
			http.Error(w, fmt.Sprintf("unknown target domain %q", name), http.StatusBadRequest)
			return
		}
		headers := r.MultipartForm.File[name]
		if len(headers) == 0 {
			continue
		}
		file, err := headers[0].Open()
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to open %s upload: %v", name, err), http.StatusBadRequest)
			return
		}
		table, err := h.intake.Parse(ingestion.Request{
			FileName: headers[0].Filename,
			Data:     file,
		})
		file.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to parse %s upload: %v", name, err), http.StatusBadRequest)
			return
		}
		inputs = append(inputs, Input{Domain: code, Table: table})
	}

	result, err := h.service.Run(r.Context(), studyID, inputs)
	if err != nil {
		status := http.StatusInternalServerError
		if err == ErrNoInputs {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
