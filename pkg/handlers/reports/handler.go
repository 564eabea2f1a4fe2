package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/adapters"
	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/api"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/daterange"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/registry"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/reports"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const maxBodyBytes = 8 << 20

type Handler struct {
	registry registry.Registry
	resolver daterange.Resolver
	reports  reports.Service
	exporter export.Service
	now      func() time.Time
}

func NewHandler(
	reg registry.Registry,
	resolver daterange.Resolver,
	svc reports.Service,
	exporter export.Service,
	now func() time.Time,
) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		registry: reg,
		resolver: resolver,
		reports:  svc,
		exporter: exporter,
		now:      now,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.ListReportsResponse{
		Success: true,
		Reports: lo.Map(h.registry.List(), func(def domain.ReportDefinition, _ int) api.ReportDefinition {
			return adapters.MapDomainDefinitionToAPI(def)
		}),
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := domain.ReportID(chi.URLParam(r, "reportId"))
	h.generate(w, r, id, r.URL.Query().Get("dateRange"), domain.Filters{})
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateReportRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id := req.ReportID
	if id == "" {
		id = req.ReportType
	} else if req.ReportType != "" && req.ReportType != req.ReportID {
		writeError(w, r, ierr.NewErrorf("reportId %q and reportType %q differ", req.ReportID, req.ReportType).
			Mark(ierr.ErrValidation))
		return
	}

	h.generate(w, r, domain.ReportID(id), req.DateRange, adapters.MapAPIFiltersToDomain(req.Filters))
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, id domain.ReportID, token string, filters domain.Filters) {
	ctx := r.Context()

	if _, err := h.registry.Get(id); err != nil {
		writeError(w, r, err)
		return
	}

	window := h.resolver.Resolve(token)
	payload, err := h.reports.Generate(ctx, reports.Request{
		ReportID: id,
		Range:    window,
		Filters:  filters,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.ReportResponse{
		Success:     true,
		ReportID:    id.String(),
		Data:        payload,
		GeneratedAt: h.now().UTC(),
		DateRange:   adapters.MapDomainRangeToAPI(window),
	})
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ExportReportRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id := domain.ReportID(req.ReportID)
	var payload domain.Payload
	if custom := bytes.TrimSpace(req.CustomData); len(custom) > 0 && !bytes.Equal(custom, []byte("null")) {
		if _, err := h.registry.Get(id); err != nil {
			writeError(w, r, err)
			return
		}
		decoded, err := domain.DecodePayload(id, custom)
		if err != nil {
			writeError(w, r, ierr.WithError(err).
				WithMessage("customData does not match the report").
				Mark(ierr.ErrValidation))
			return
		}
		payload = decoded
	}

	file, err := h.exporter.Export(ctx, export.Request{
		ReportID:   id,
		RangeToken: req.DateRange,
		Format:     req.Format,
		Payload:    payload,
		Filters:    adapters.MapAPIFiltersToDomain(req.Filters),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		logger.Error().
			Err(err).
			Str("file", file.Name).
			Msg("failed to write export")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ierr.WithError(err).
			WithMessage("invalid request body").
			Mark(ierr.ErrValidation)
	}
	return api.Validate(dst)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := ierr.HTTPStatus(err)
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, r, status, api.ErrorResponse{
		Success: false,
		Error:   ierr.PublicMessage(err),
		Hint:    ierr.Hint(err),
	})
}
