package handler

import (
	"net/http"
)

// HealthHandler reports process health. Each check names a dependency and
// reports whether it is currently usable.
type HealthHandler struct {
	checks map[string]func() bool
}

func NewHealthHandler(checks map[string]func() bool) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthEnvelope{Status: "UP"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]bool, len(h.checks))
		for name, check := range h.checks {
			ok := check()
			resp.Checks[name] = ok
			if !ok {
				resp.Status = "DEGRADED"
				status = http.StatusServiceUnavailable
			}
		}
	}
	writeJSON(w, status, resp)
}
