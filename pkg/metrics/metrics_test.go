package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistrosIndependientes(t *testing.T) {
	// Dos instancias con el mismo prefijo no deben colisionar.
	a := New("test")
	b := New("test")

	a.RecordMovement("in")
	a.RecordMovement("in")
	b.RecordMovement("out")

	assert.Equal(t, 2.0, testutil.ToFloat64(a.MovementsRecorded.WithLabelValues("in")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.MovementsRecorded.WithLabelValues("in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.MovementsRecorded.WithLabelValues("out")))
}

func TestRecordAuthAttempt(t *testing.T) {
	m := New("")
	m.RecordAuthAttempt(true)
	m.RecordAuthAttempt(false)
	m.RecordAuthAttempt(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("failure")))
}

func TestHandler_Exposicion(t *testing.T) {
	m := New("inv")
	m.ObserveHTTP("GET", "/api/v1/products", "200", 15*time.Millisecond)
	m.InsufficientStock.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "inv_http_requests_total")
	assert.Contains(t, string(body), "inv_insufficient_stock_total 1")
}
