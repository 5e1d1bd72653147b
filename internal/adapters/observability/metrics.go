package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "andaman"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func latency(name, help string, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: name, Help: help, Buckets: prometheus.DefBuckets,
	}, labels)
}

var (
	HTTPRequests     = counter("http_requests_total", "HTTP requests served.", "route", "method", "status")
	HTTPLatency      = latency("http_request_duration_seconds", "HTTP request duration seconds.", "route", "method")
	ExternalRequests = counter("external_requests_total", "Calls to the listings API.", "service", "endpoint", "status")
	ExternalLatency  = latency("external_request_duration_seconds", "Listings API call duration seconds.", "service", "endpoint")
	CacheEvents      = counter("cache_events_total", "Cache events.", "cache", "event") // hit|miss|error|set|del
	EditOpens        = counter("hotel_edit_opens_total", "Hotel edit sessions opened, by resulting state.", "state")
	EditSubmits      = counter("hotel_edit_submits_total", "Hotel edit submits, by result.", "result") // ok|invalid|rejected|in_flight|error
	BreakerState     = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "circuit_breaker_state",
		Help: "Outbound circuit breaker state: 0 closed, 1 half-open, 2 open.",
	}, []string{"breaker"})
)

// Serve exposes reg on a dedicated listener. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents, EditOpens, EditSubmits, BreakerState)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { CacheEvents.WithLabelValues(cache, event).Inc() }

func ObserveEditOpen(state string) { EditOpens.WithLabelValues(state).Inc() }

func ObserveEditSubmit(result string) { EditSubmits.WithLabelValues(result).Inc() }

// SetBreakerState takes the numeric value of a gobreaker.State.
func SetBreakerState(breaker string, state int) {
	BreakerState.WithLabelValues(breaker).Set(float64(state))
}
