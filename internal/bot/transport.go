package bot

import (
	"net/http"
	"strconv"
	"time"

	"github.com/neonflux-io/discord-admin-bot/internal/metrics"
)

// metricsTransport times every Discord REST round trip.
type metricsTransport struct {
	base http.RoundTripper
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.RESTRequestDuration.
		WithLabelValues(req.Method, status).
		Observe(time.Since(start).Seconds())
	return resp, err
}
