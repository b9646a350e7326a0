package model

// CalculationRequest holds the two validated operands of POST /api/calculate.
type CalculationRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalculationResult is the body of a successful calculation.  A nil field is
// encoded as JSON null: Quotient is nil when B is zero, and any value that
// is not a finite number is nil as well.
type CalculationResult struct {
	Sum        *float64 `json:"sum"`
	Product    *float64 `json:"product"`
	Difference *float64 `json:"difference"`
	Quotient   *float64 `json:"quotient"`
}
