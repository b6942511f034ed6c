package httpapi

import (
	"net/http"

	"github.com/riskibarqy/leetstreak/internal/platform/cache"
)

type healthDTO struct {
	Status string        `json:"status"`
	Cache  *cache.Health `json:"cache,omitempty"`
}

// Healthz always answers 200: the fallback tier keeps the service usable
// while the durable cache is down, so that is reported as "degraded".
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startRequestSpan(r, "httpapi.Handler.Healthz")
	defer span.End()

	out := healthDTO{Status: "ok"}
	if h.cacheHealth != nil {
		health := h.cacheHealth.Health()
		out.Cache = &health
		if !health.DurableReady {
			out.Status = "degraded"
		}
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
