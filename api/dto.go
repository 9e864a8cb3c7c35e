/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
  - factory/rates.go: The tariff document schema embedded here
*/
package api

import (
	"github.com/DavidLHW/robot-salary-calculator/factory"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// QuoteRequest prices a shift. The tariff comes either inline as roboRate
// or by reference to a stored rate plan.
type QuoteRequest struct {
	Shift       *factory.ShiftDocument       `json:"shift"`
	RoboRate    *factory.RateDocument        `json:"roboRate,omitempty"`
	BreakPolicy *factory.BreakPolicyDocument `json:"breakPolicy,omitempty"`
	PlanID      string                       `json:"planId,omitempty"`
}

// QuoteResponse carries the whole-unit value of the priced shift.
type QuoteResponse struct {
	Value int64 `json:"value"`
}

// SavePlanRequest creates or replaces a rate plan.
type SavePlanRequest struct {
	Name     string                `json:"name"`
	RoboRate *factory.RateDocument `json:"roboRate"`
}

// RatePlanDTO represents a stored rate plan in API responses.
type RatePlanDTO struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	RoboRate  factory.RateDocument `json:"roboRate"`
	Version   int                  `json:"version"`
	CreatedAt string               `json:"created_at,omitempty"`
	UpdatedAt string               `json:"updated_at,omitempty"`
}

// ErrorResponse is the JSON shape of all error replies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
