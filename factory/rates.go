/*
Package factory provides JSON and YAML rate configuration parsing.

PURPOSE:
  Converts rate documents into shift.RateTable values. This enables rate
  configuration without code changes - operators define the robot's
  tariff in JSON or YAML, and the factory builds the proper Go structs.

JSON SCHEMA:
  {
    "shift": {
      "start": "2038-01-01T20:15:00",
      "end":   "2038-01-02T08:45:00"
    },
    "roboRate": {
      "standardDay":   {"start": "07:00:00", "end": "23:00:00", "value": 20},
      "standardNight": {"start": "23:00:00", "end": "07:00:00", "value": 25},
      "extraDay":      {"start": "07:00:00", "end": "23:00:00", "value": 30},
      "extraNight":    {"start": "23:00:00", "end": "07:00:00", "value": 35}
    }
  }

  The standard bands apply Monday through Friday, the extra bands on
  Saturday and Sunday. Values are per-minute rates. The night bands
  contribute their value only; their boundaries are implied by the
  matching day band.

KEY FEATURES:
  - Validates document structure
  - Sets the standard break policy when none is given
  - Rejects inverted windows and negative rates

SEE ALSO:
  - shift/rates.go: RateTable consumed by the calculator
  - api/handlers.go: Parses the same rate schema from quote requests
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/DavidLHW/robot-salary-calculator/schedule"
	"github.com/DavidLHW/robot-salary-calculator/shift"
)

// TimestampLayout is the wall-clock timestamp format used for shift
// boundaries. Timestamps carry no zone; they are read as UTC.
const TimestampLayout = "2006-01-02T15:04:05"

var validate = validator.New(validator.WithRequiredStructEnabled())

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// Rate is a per-minute money rate. JSON decoding comes with the embedded
// decimal; YAML needs the node hook below since the YAML decoder knows
// nothing about decimals.
type Rate struct {
	decimal.Decimal
}

func (r *Rate) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", node.Value, err)
	}
	r.Decimal = d
	return nil
}

// RateBand is one tariff band of a rate document.
type RateBand struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Value Rate   `json:"value" yaml:"value"`
}

// RateDocument is the four-band roboRate tariff.
type RateDocument struct {
	StandardDay   *RateBand `json:"standardDay" yaml:"standardDay" validate:"required"`
	StandardNight *RateBand `json:"standardNight" yaml:"standardNight" validate:"required"`
	ExtraDay      *RateBand `json:"extraDay" yaml:"extraDay" validate:"required"`
	ExtraNight    *RateBand `json:"extraNight" yaml:"extraNight" validate:"required"`
}

// ShiftDocument is the shift boundary section of an input document.
type ShiftDocument struct {
	Start string `json:"start" yaml:"start" validate:"required"`
	End   string `json:"end" yaml:"end" validate:"required"`
}

// BreakPolicyDocument optionally overrides the standard work/rest rhythm.
type BreakPolicyDocument struct {
	WorkHours  int `json:"workHours" yaml:"workHours" validate:"min=1,max=23"`
	BreakHours int `json:"breakHours" yaml:"breakHours" validate:"min=1,max=23"`
}

// InputDocument is a complete quote input: the shift to price and the
// tariff to price it against.
type InputDocument struct {
	Shift       *ShiftDocument       `json:"shift" yaml:"shift" validate:"required"`
	RoboRate    *RateDocument        `json:"roboRate" yaml:"roboRate" validate:"required"`
	BreakPolicy *BreakPolicyDocument `json:"breakPolicy,omitempty" yaml:"breakPolicy,omitempty"`
}

// QuoteInput is a parsed and validated input document.
type QuoteInput struct {
	Start  time.Time
	End    time.Time
	Rates  shift.RateTable
	Policy schedule.BreakPolicy
}

// =============================================================================
// PARSING
// =============================================================================

// ParseRateJSON parses a roboRate JSON document into a rate table.
func ParseRateJSON(data []byte) (shift.RateTable, error) {
	var doc RateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return shift.RateTable{}, &schedule.RateConfigError{Field: "roboRate", Reason: err.Error()}
	}
	return BuildRateTable(doc)
}

// ParseRateYAML parses a roboRate YAML document into a rate table.
func ParseRateYAML(data []byte) (shift.RateTable, error) {
	var doc RateDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return shift.RateTable{}, &schedule.RateConfigError{Field: "roboRate", Reason: err.Error()}
	}
	return BuildRateTable(doc)
}

// ParseInputJSON parses a complete quote input from JSON.
func ParseInputJSON(data []byte) (QuoteInput, error) {
	var doc InputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return QuoteInput{}, &schedule.RateConfigError{Field: "input", Reason: err.Error()}
	}
	return BuildInput(doc)
}

// ParseInputYAML parses a complete quote input from YAML.
func ParseInputYAML(data []byte) (QuoteInput, error) {
	var doc InputDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return QuoteInput{}, &schedule.RateConfigError{Field: "input", Reason: err.Error()}
	}
	return BuildInput(doc)
}

// BuildInput validates an input document and resolves it into shift
// boundaries, a rate table and a break policy.
func BuildInput(doc InputDocument) (QuoteInput, error) {
	if err := validate.Struct(doc); err != nil {
		return QuoteInput{}, &schedule.RateConfigError{Field: "input", Reason: err.Error()}
	}

	start, err := time.Parse(TimestampLayout, doc.Shift.Start)
	if err != nil {
		return QuoteInput{}, &schedule.RateConfigError{Field: "shift.start", Reason: err.Error()}
	}
	end, err := time.Parse(TimestampLayout, doc.Shift.End)
	if err != nil {
		return QuoteInput{}, &schedule.RateConfigError{Field: "shift.end", Reason: err.Error()}
	}

	rates, err := BuildRateTable(*doc.RoboRate)
	if err != nil {
		return QuoteInput{}, err
	}

	policy := schedule.DefaultBreakPolicy()
	if doc.BreakPolicy != nil {
		policy = schedule.BreakPolicy{
			WorkHours:  doc.BreakPolicy.WorkHours,
			BreakHours: doc.BreakPolicy.BreakHours,
		}
		if policy.WorkHours+policy.BreakHours > 24 {
			return QuoteInput{}, &schedule.RateConfigError{
				Field:  "breakPolicy",
				Reason: "work and break hours must fit within a day",
			}
		}
	}

	return QuoteInput{Start: start, End: end, Rates: rates, Policy: policy}, nil
}

// BuildRateTable validates a rate document and assembles the rate table.
func BuildRateTable(doc RateDocument) (shift.RateTable, error) {
	if err := validate.Struct(doc); err != nil {
		return shift.RateTable{}, &schedule.RateConfigError{Field: "roboRate", Reason: err.Error()}
	}

	weekday, err := buildSchedule("standardDay", doc.StandardDay, doc.StandardNight)
	if err != nil {
		return shift.RateTable{}, err
	}
	weekend, err := buildSchedule("extraDay", doc.ExtraDay, doc.ExtraNight)
	if err != nil {
		return shift.RateTable{}, err
	}
	return shift.RateTable{Weekday: weekday, Weekend: weekend}, nil
}

func buildSchedule(field string, day, night *RateBand) (schedule.RateSchedule, error) {
	open, err := schedule.ParseClock(day.Start)
	if err != nil {
		return schedule.RateSchedule{}, &schedule.RateConfigError{Field: field + ".start", Reason: err.Error()}
	}
	cls, err := schedule.ParseClock(day.End)
	if err != nil {
		return schedule.RateSchedule{}, &schedule.RateConfigError{Field: field + ".end", Reason: err.Error()}
	}
	if !open.Before(cls) {
		return schedule.RateSchedule{}, &schedule.RateConfigError{
			Field:  field,
			Reason: fmt.Sprintf("window %s-%s is inverted or empty", open, cls),
		}
	}
	if day.Value.IsNegative() || night.Value.IsNegative() {
		return schedule.RateSchedule{}, &schedule.RateConfigError{Field: field, Reason: "negative rate"}
	}
	return schedule.RateSchedule{
		Window:    schedule.DayWindow{Open: open, Close: cls},
		DayRate:   day.Value.Decimal,
		NightRate: night.Value.Decimal,
	}, nil
}
