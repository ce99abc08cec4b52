package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/cache"
)

// Pinger is a dependency the readiness check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler interface {
	Ready(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) HealthHandler {
	return &healthHandlerImpl{checks: checks}
}

// Ready reports each dependency as up, down or disabled. Any down
// dependency makes the whole response 503.
func (h *healthHandlerImpl) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		err := check.Ping(ctx)
		switch {
		case err == nil:
			status[name] = "up"
		case errors.Is(err, cache.ErrNotConfigured):
			status[name] = "disabled"
		default:
			status[name] = "down"
			ready = false
		}
	}

	if !ready {
		response.ServiceUnavailable(w, "NOT_READY", "One or more dependencies are unavailable")
		return
	}
	response.Success(w, status)
}
