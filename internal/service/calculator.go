// Package service implements the arithmetic behind POST /api/calculate.
package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/iliyamo/visits-api/internal/model"
)

var (
	// ErrMissingParameters is returned when a or b is absent from the body.
	ErrMissingParameters = errors.New("both a and b are required")
	// ErrInvalidParameters is returned when a or b is present but not a JSON number.
	ErrInvalidParameters = errors.New("both a and b must be numbers")
	// ErrMalformedBody is returned when the body is not valid JSON.
	ErrMalformedBody = errors.New("malformed JSON body")
)

// ParseOperands extracts a and b from a JSON request body.  Presence is
// checked before type: a body with a missing operand reports
// ErrMissingParameters even when the other operand has the wrong type.  An
// explicit null counts as present.  An empty body, or a JSON value that is
// not an object, carries no operands.
func ParseOperands(body []byte) (model.CalculationRequest, error) {
	var req model.CalculationRequest

	fields := map[string]json.RawMessage{}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return req, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		if _, ok := v.(map[string]any); ok {
			if err := json.Unmarshal(trimmed, &fields); err != nil {
				return req, fmt.Errorf("%w: %v", ErrMalformedBody, err)
			}
		}
	}

	rawA, okA := fields["a"]
	rawB, okB := fields["b"]
	if !okA || !okB {
		return req, ErrMissingParameters
	}

	a, okA := number(rawA)
	b, okB := number(rawB)
	if !okA || !okB {
		return req, ErrInvalidParameters
	}
	req.A, req.B = a, b
	return req, nil
}

// number decodes raw as a JSON number.  Strings holding digits, booleans and
// null are rejected.
func number(raw json.RawMessage) (float64, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Calculate computes the four derived values.  Division by zero yields a nil
// quotient rather than an infinity or an error.
func Calculate(req model.CalculationRequest) model.CalculationResult {
	res := model.CalculationResult{
		Sum:        finite(req.A + req.B),
		Product:    finite(req.A * req.B),
		Difference: finite(req.A - req.B),
	}
	if req.B != 0 {
		res.Quotient = finite(req.A / req.B)
	}
	return res
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
