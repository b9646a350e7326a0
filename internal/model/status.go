package model

// Welcome is the body of GET /.
type Welcome struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Visits    int64  `json:"visits"`
	Hostname  string `json:"hostname"`
	Timestamp string `json:"timestamp"` // ISO 8601, UTC, millisecond precision
}

// Health is the body of GET /health.
type Health struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`    // seconds since process start
	Timestamp int64   `json:"timestamp"` // Unix epoch milliseconds
}
