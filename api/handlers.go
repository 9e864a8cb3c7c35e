/*
handlers.go - HTTP API handlers for the shift pay service

PURPOSE:
  Exposes the shift pricing engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Quotes:
    POST   /api/shifts/quote    Price a shift (inline tariff or plan)

  Rate plans:
    GET    /api/plans           List rate plans (?name= looks one up)
    POST   /api/plans           Create rate plan
    GET    /api/plans/{id}      Get rate plan
    PUT    /api/plans/{id}      Replace rate plan document
    DELETE /api/plans/{id}      Delete rate plan

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Plan not found
  - 409: Duplicate plan name
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/DavidLHW/robot-salary-calculator/factory"
	"github.com/DavidLHW/robot-salary-calculator/schedule"
	"github.com/DavidLHW/robot-salary-calculator/shift"
	"github.com/DavidLHW/robot-salary-calculator/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// QUOTE ENDPOINTS
// =============================================================================

// QuoteShift prices a shift and returns its whole-unit value.
// POST /api/shifts/quote
func (h *Handler) QuoteShift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	roboRate := req.RoboRate
	if req.PlanID != "" {
		if roboRate != nil {
			writeError(w, http.StatusBadRequest, "Provide either roboRate or planId, not both", nil)
			return
		}
		plan, err := h.Store.GetPlan(ctx, req.PlanID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load rate plan", err)
			return
		}
		if plan == nil {
			writeError(w, http.StatusNotFound, "Rate plan not found", nil)
			return
		}
		var doc factory.RateDocument
		if err := json.Unmarshal([]byte(plan.DocumentJSON), &doc); err != nil {
			writeError(w, http.StatusInternalServerError, "Stored rate plan is unreadable", err)
			return
		}
		roboRate = &doc
	}

	in, err := factory.BuildInput(factory.InputDocument{
		Shift:       req.Shift,
		RoboRate:    roboRate,
		BreakPolicy: req.BreakPolicy,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid quote input", err)
		return
	}

	calc := shift.Calculator{Rates: in.Rates, Policy: in.Policy}
	total, err := calc.TotalPay(in.Start, in.End)
	if err != nil {
		status := http.StatusInternalServerError
		if schedule.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Failed to price shift", err)
		return
	}
	writeJSON(w, http.StatusOK, QuoteResponse{Value: total.IntPart()})
}

// =============================================================================
// RATE PLAN ENDPOINTS
// =============================================================================

// ListPlans returns all rate plans, or the one matching ?name=.
// GET /api/plans?name=standard
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	var plans []sqlite.RatePlanRecord
	var err error
	if name := r.URL.Query().Get("name"); name != "" {
		var plan *sqlite.RatePlanRecord
		plan, err = h.Store.GetPlanByName(r.Context(), name)
		if plan != nil {
			plans = []sqlite.RatePlanRecord{*plan}
		}
	} else {
		plans, err = h.Store.ListPlans(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rate plans", err)
		return
	}

	dtos := make([]RatePlanDTO, 0, len(plans))
	for _, p := range plans {
		dto, err := toPlanDTO(p)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Stored rate plan is unreadable", err)
			return
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePlan stores a new rate plan.
// POST /api/plans
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record, err := h.planRecord(uuid.NewString(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate plan", err)
		return
	}

	if err := h.Store.SavePlan(r.Context(), record); err != nil {
		if errors.Is(err, sqlite.ErrDuplicatePlanName) {
			writeError(w, http.StatusConflict, "Plan name already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save rate plan", err)
		return
	}

	h.respondWithPlan(w, r, record.ID, http.StatusCreated)
}

// GetPlan returns one rate plan.
// GET /api/plans/{id}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	h.respondWithPlan(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

// UpdatePlan replaces a plan's name and tariff document.
// PUT /api/plans/{id}
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetPlan(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load rate plan", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Rate plan not found", nil)
		return
	}

	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record, err := h.planRecord(id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate plan", err)
		return
	}

	if err := h.Store.SavePlan(ctx, record); err != nil {
		if errors.Is(err, sqlite.ErrDuplicatePlanName) {
			writeError(w, http.StatusConflict, "Plan name already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save rate plan", err)
		return
	}

	h.respondWithPlan(w, r, id, http.StatusOK)
}

// DeletePlan removes a rate plan.
// DELETE /api/plans/{id}
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Store.DeletePlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete rate plan", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Rate plan not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// planRecord validates a save request and assembles the stored record.
func (h *Handler) planRecord(id string, req SavePlanRequest) (sqlite.RatePlanRecord, error) {
	if req.Name == "" {
		return sqlite.RatePlanRecord{}, &schedule.RateConfigError{Field: "name", Reason: "required"}
	}
	if req.RoboRate == nil {
		return sqlite.RatePlanRecord{}, &schedule.RateConfigError{Field: "roboRate", Reason: "required"}
	}
	if _, err := factory.BuildRateTable(*req.RoboRate); err != nil {
		return sqlite.RatePlanRecord{}, err
	}

	doc, err := json.Marshal(req.RoboRate)
	if err != nil {
		return sqlite.RatePlanRecord{}, err
	}
	return sqlite.RatePlanRecord{ID: id, Name: req.Name, DocumentJSON: string(doc)}, nil
}

func (h *Handler) respondWithPlan(w http.ResponseWriter, r *http.Request, id string, status int) {
	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load rate plan", err)
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "Rate plan not found", nil)
		return
	}
	dto, err := toPlanDTO(*plan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored rate plan is unreadable", err)
		return
	}
	writeJSON(w, status, dto)
}

func toPlanDTO(p sqlite.RatePlanRecord) (RatePlanDTO, error) {
	var doc factory.RateDocument
	if err := json.Unmarshal([]byte(p.DocumentJSON), &doc); err != nil {
		return RatePlanDTO{}, err
	}
	return RatePlanDTO{
		ID:        p.ID,
		Name:      p.Name,
		RoboRate:  doc,
		Version:   p.Version,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
