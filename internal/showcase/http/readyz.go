package http

import (
	"net/http"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/LauchlanT/brickshowcase/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe verifying the database connection is alive
//	@Description	Returns 503 when the store cannot be reached
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version"
//	@Failure		503	{object}	HealthResponse	"status degraded"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		if err := st.Ping(r.Context()); err != nil {
			response.Status = "degraded"
			httpx.WriteJSON(w, http.StatusServiceUnavailable, response)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
