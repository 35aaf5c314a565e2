package healthcheck

import (
	"net/http"
	"time"

	"github.com/getblogd/blogd-services/pkg/ajan/httpfx"
)

type healthzResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func RegisterHTTPRoutes(routes *httpfx.Router, config *httpfx.Config) {
	if !config.HealthCheckEnabled {
		return
	}

	routes.
		Route("GET /healthz", func(ctx *httpfx.Context) httpfx.Result {
			return ctx.Results.JSON(healthzResponse{
				Status: "ok",
				Time:   time.Now().UTC().Format(time.RFC3339Nano),
			})
		}).
		HasSummary("Health Check").
		HasDescription("Health Check Endpoint").
		HasResponse(http.StatusOK)
}
