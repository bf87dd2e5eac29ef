package http

import (
	"net/http"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Probe
//	@Description	Returns 200 OK when the service can reach its database, 503 otherwise.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	careteamsdk.HealthResponse	"status, uptime, version"
//	@Failure		503	{object}	careteamsdk.HealthResponse	"status, uptime, version - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, careteamsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
