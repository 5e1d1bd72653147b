package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"andaman_vendor/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("listings", "profile", 200, 5*time.Millisecond)
	observability.ObserveEditOpen("ready")
	observability.ObserveEditSubmit("ok")
	observability.SetBreakerState("listings-api", 2)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"andaman_http_requests_total",
		"andaman_external_requests_total",
		"andaman_hotel_edit_opens_total",
		"andaman_hotel_edit_submits_total",
		`andaman_circuit_breaker_state{breaker="listings-api"} 2`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}
