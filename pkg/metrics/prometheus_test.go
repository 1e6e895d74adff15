package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/pkg/metrics"
)

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m := metrics.New()

	m.RecordHTTPRequest("GET", "/api/invoices", 200, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/invoices", 200, 20*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/invoices", 409, 5*time.Millisecond)

	n, err := testutil.GatherAndCount(m.Gatherer(), "facturacion_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por combinación method/route/status")
}

func TestMetrics_DosInstanciasNoColisionan(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New()
		metrics.New()
	})
}

func TestMetrics_HandlerExponeMetricas(t *testing.T) {
	m := metrics.New()
	m.RecordDomainError("CONFLICT")
	m.IncInFlight()
	m.DecInFlight()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `facturacion_domain_errors_total{code="CONFLICT"} 1`))
}
