package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByPattern(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Middleware(mux)

	counter := httpRequestsTotal.WithLabelValues("418", http.MethodGet, "GET /api/v1/orders/{id}")
	before := testutil.ToFloat64(counter)

	// Act
	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	// Assert
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}

func TestMiddlewareUnmatched(t *testing.T) {
	handler := Middleware(http.NewServeMux())
	counter := httpRequestsTotal.WithLabelValues("404", http.MethodGet, "unmatched")
	before := testutil.ToFloat64(counter)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestDomainCounters(t *testing.T) {
	submissions := orderSubmissionsTotal.WithLabelValues(SubmissionRateLimited)
	mutations := cartMutationsTotal.WithLabelValues("add")
	beforeSubmissions := testutil.ToFloat64(submissions)
	beforeMutations := testutil.ToFloat64(mutations)

	RecordOrderSubmission(SubmissionRateLimited)
	RecordCartMutation("add")
	RecordCartMutation("add")

	assert.Equal(t, beforeSubmissions+1, testutil.ToFloat64(submissions))
	assert.Equal(t, beforeMutations+2, testutil.ToFloat64(mutations))
}
