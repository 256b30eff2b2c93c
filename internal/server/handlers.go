package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
	apperrors "github.com/arvindbhardwaj2003/kundliDesign/internal/errors"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/kundli"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/store"
)

const maxBodyBytes = 1 << 20

// KundliHandlers serves the kundli and chart derivation endpoints.
type KundliHandlers struct {
	service *kundli.Service
	log     zerolog.Logger
}

// NewKundliHandlers creates the handlers.
func NewKundliHandlers(service *kundli.Service, log zerolog.Logger) *KundliHandlers {
	return &KundliHandlers{service: service, log: log}
}

// RegisterRoutes mounts the handlers under r.
func (h *KundliHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/kundli", func(r chi.Router) {
		r.Post("/", h.HandleGenerate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Delete("/{id}", h.HandleDelete)
	})
	r.Post("/charts/derive", h.HandleDerive)
}

// HandleGenerate handles POST /api/kundli.
func (h *KundliHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var birth models.BirthData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&birth); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.Generate(r.Context(), birth, kundli.GenerateOptions{
		DryRun: r.URL.Query().Get("dry_run") == "true",
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, record)
}

// HandleList handles GET /api/kundli?limit=N&name=S.
func (h *KundliHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := store.KundliFilter{Name: r.URL.Query().Get("name")}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeError(w, h.log, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	records, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.fail(w, err)
		return
	}

	summaries := make([]models.KundliSummary, len(records))
	for i := range records {
		summaries[i] = records[i].Summary()
	}
	writeJSON(w, h.log, http.StatusOK, summaries)
}

// HandleGet handles GET /api/kundli/{id}.
func (h *KundliHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, record)
}

// HandleDelete handles DELETE /api/kundli/{id}.
func (h *KundliHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDerive handles POST /api/charts/derive: a Lagna chart in, Moon and Navamsa charts out.
func (h *KundliHandlers) HandleDerive(w http.ResponseWriter, r *http.Request) {
	var lagna chart.Chart
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&lagna); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid lagna chart: "+err.Error())
		return
	}

	derived, err := h.service.Derive(lagna)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, derived)
}

func (h *KundliHandlers) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Request failed")
	}

	var ve *apperrors.ValidationError
	if apperrors.As(err, &ve) {
		writeJSON(w, h.log, status, map[string]string{"error": ve.Message, "field": ve.Field})
		return
	}
	writeError(w, h.log, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrChartNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrInputValidation), apperrors.Is(err, apperrors.ErrInvalidChart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, message string) {
	writeJSON(w, log, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
