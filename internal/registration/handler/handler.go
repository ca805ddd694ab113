// Package handler is the thin HTTP layer over the registration workflow.
// It owns request decoding and the response table; all business rules live in
// the service and validator.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplierintake/internal/platform/middleware"
	"supplierintake/internal/registration/models"
	"supplierintake/internal/registration/service"
	"supplierintake/internal/registration/validate"
	dErrors "supplierintake/pkg/errors"
	"supplierintake/pkg/platform/httputil"
)

// Registrar is the workflow interface the handler depends on.
type Registrar interface {
	Register(ctx context.Context, req models.SubmissionRequest) (*service.Outcome, error)
}

// HealthCheck probes one dependency; the name appears in the health response.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Handler handles the supplier intake endpoints.
type Handler struct {
	logger    *slog.Logger
	registrar Registrar
	checks    []HealthCheck
}

// New creates the intake Handler.
func New(registrar Registrar, logger *slog.Logger, checks ...HealthCheck) *Handler {
	return &Handler{
		logger:    logger,
		registrar: registrar,
		checks:    checks,
	}
}

// Register mounts the intake routes on the given router. submitMiddleware
// wraps only the submission route; the rate limiter goes here so the VAT
// wizard check and health probes stay unthrottled.
func (h *Handler) Register(r chi.Router, submitMiddleware ...func(http.Handler) http.Handler) {
	if len(submitMiddleware) > 0 {
		r.With(submitMiddleware...).Post("/api/suppliers", h.handleSubmit)
	} else {
		r.Post("/api/suppliers", h.handleSubmit)
	}
	r.Post("/api/vat/validate", h.handleValidateVAT)
	r.Get("/healthz", h.handleHealth)
}

// handleSubmit processes a registration submission and writes exactly one
// response: 200 on persistence (with notification status), 400/409/429/500
// otherwise.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "malformed submission body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON body"))
		return
	}

	outcome, err := h.registrar.Register(ctx, req)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "registration failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.SubmissionResponse{
		Message: "Supplier registered successfully",
		Data: models.SubmissionData{
			CompanyName: outcome.Registration.CompanyName,
			Email:       outcome.Registration.Email,
		},
		EmailStatus: outcome.EmailStatus,
	})
}

// handleValidateVAT is the standalone format check the form's wizard calls
// before the final submission.
func (h *Handler) handleValidateVAT(w http.ResponseWriter, r *http.Request) {
	var req models.VATValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON body"))
		return
	}
	if req.VATNumber == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "VAT number is required"))
		return
	}

	country, ok := validate.MatchVAT(validate.NormalizeVAT(req.VATNumber))
	resp := models.VATValidationResponse{
		Valid:     ok,
		VATNumber: req.VATNumber,
		Country:   country,
		Message:   "Invalid VAT number format",
	}
	if ok {
		resp.Message = "Valid VAT number"
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handleHealth reports dependency status: 200 when every probe passes,
// 503 with per-check detail otherwise.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := c.Probe(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[c.Name] = err.Error()
			continue
		}
		checks[c.Name] = "ok"
	}

	body := map[string]any{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	httputil.WriteJSON(w, status, body)
}
