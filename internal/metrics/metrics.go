// Package metrics defines the Prometheus collectors of the catalog service.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
)

const namespace = "catalog"

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of HTTP requests by route pattern, method and status code.",
		},
		[]string{"route", "method", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	storeOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Count of record-store operations by resource, operation and result.",
		},
		[]string{"resource", "operation", "result"},
	)
	storeRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records",
			Help:      "Number of records currently held per resource.",
		},
		[]string{"resource"},
	)
)

var registerMetrics sync.Once

// Register registers all collectors with the default Prometheus registry.
// It is safe to call more than once.
func Register() {
	registerMetrics.Do(func() {
		prometheus.MustRegister(httpRequests)
		prometheus.MustRegister(httpDuration)
		prometheus.MustRegister(storeOperations)
		prometheus.MustRegister(storeRecords)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency labelled with the matched chi
// route pattern, so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// StoreObserver returns a store.Observer reporting under the given resource
// label.
func StoreObserver(resource string) store.Observer {
	return storeObserver{resource: resource}
}

type storeObserver struct {
	resource string
}

func (o storeObserver) ObserveOperation(op string, err error) {
	storeOperations.WithLabelValues(o.resource, op, result(err)).Inc()
}

func (o storeObserver) ObserveSize(n int) {
	storeRecords.WithLabelValues(o.resource).Set(float64(n))
}

func result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, store.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
