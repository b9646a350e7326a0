package handler // handler holds the HTTP handlers of the API

import (
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/visits-api/internal/queue"
	"github.com/iliyamo/visits-api/internal/visits"
)

// APIVersion is reported by the welcome endpoint.
const APIVersion = "1.0.0"

// WelcomeMessage is the greeting returned by GET /.
const WelcomeMessage = "Welcome to my Go API!"

// isoMillis renders timestamps the way JavaScript's toISOString does.
const isoMillis = "2006-01-02T15:04:05.000Z"

// APIHandler bundles the state the endpoints read: the visit counter, the
// process start time and the host name.  Events is optional.
type APIHandler struct {
	Counter  *visits.Counter
	Hostname string
	Started  time.Time
	Events   queue.Publisher
	Logger   *zap.Logger

	now func() time.Time
}

// NewAPIHandler constructs an APIHandler and panics if counter is nil.
func NewAPIHandler(counter *visits.Counter, hostname string, started time.Time, events queue.Publisher, logger *zap.Logger) *APIHandler {
	if counter == nil {
		panic("nil visit counter passed to NewAPIHandler")
	}
	if hostname == "" {
		hostname = "unknown"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		Counter:  counter,
		Hostname: hostname,
		Started:  started,
		Events:   events,
		Logger:   logger,
		now:      time.Now,
	}
}

func isoTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
