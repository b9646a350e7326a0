// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/iliyamo/visits-api/internal/model"

// CalculationPerformedEvent is published after a successful calculation.  It
// carries the operands and the result so consumers never need to recompute.
type CalculationPerformedEvent struct {
	RequestID   string                  `json:"request_id"`
	RemoteIP    string                  `json:"remote_ip"`
	A           float64                 `json:"a"`
	B           float64                 `json:"b"`
	Result      model.CalculationResult `json:"result"`
	PerformedAt string                  `json:"performed_at"`
}
