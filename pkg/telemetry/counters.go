// Package telemetry is the counters facade: every other component
// reports through it rather than touching prometheus directly.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dbautoscaler"

// Counters bundles every metric the tick pipeline emits. A nil *Counters
// is never passed to callers; NewCounters always returns a usable value,
// and components that don't want metrics construct their own unregistered
// instance with NewUnregistered.
type Counters struct {
	TicksTotal      *prometheus.CounterVec
	RequestsSuccess *prometheus.CounterVec
	RequestsFailed  *prometheus.CounterVec
	DeniedTotal     *prometheus.CounterVec
	ResizeStarted   *prometheus.CounterVec
	ResizeErrors    *prometheus.CounterVec

	ScalingSucceeded prometheus.Counter
	ScalingFailed    prometheus.Counter

	scalingDuration *prometheus.HistogramVec
	currentSize     *prometheus.GaugeVec
}

// NewCounters builds the full metric set and registers it against reg.
// cmd/autoscaler passes its own prometheus.NewRegistry(), and tests get a
// fresh one through NewUnregistered to avoid collisions between test cases
// registering the same metric names twice.
func NewCounters(reg prometheus.Registerer) *Counters {
	c := &Counters{
		TicksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tick",
			Name:      "total",
			Help:      "Total number of ticks processed, by instance.",
		}, []string{"instance"}),
		RequestsSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "success_total",
			Help:      "Total number of ticks that completed without a validation or sizing error.",
		}, []string{"instance"}),
		RequestsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "failed_total",
			Help:      "Total number of ticks aborted by a validation, state-store or sizing error.",
		}, []string{"instance"}),
		DeniedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tick",
			Name:      "denied_total",
			Help:      "Total number of ticks where a scaling decision was computed but denied, by reason.",
		}, []string{"instance", "reason"}),
		ResizeStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resize",
			Name:      "started_total",
			Help:      "Total number of resize operations started.",
		}, []string{"instance", "method"}),
		ResizeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resize",
			Name:      "start_errors_total",
			Help:      "Total number of errors starting a resize operation.",
		}, []string{"instance"}),
		ScalingSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scaling",
			Name:      "succeeded_total",
			Help:      "Total number of resize operations observed to complete successfully.",
		}),
		ScalingFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scaling",
			Name:      "failed_total",
			Help:      "Total number of resize operations observed to fail.",
		}),
		scalingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scaling",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of completed resize operations.",
			Buckets:   prometheus.ExponentialBuckets(15, 2, 10),
		}, []string{"method", "previous_size", "requested_size"}),
		currentSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "instance",
			Name:      "current_size",
			Help:      "Last observed current size reported in a snapshot.",
		}, []string{"instance"}),
	}
	reg.MustRegister(c.TicksTotal, c.RequestsSuccess, c.RequestsFailed, c.DeniedTotal,
		c.ResizeStarted, c.ResizeErrors,
		c.ScalingSucceeded, c.ScalingFailed, c.scalingDuration, c.currentSize)
	return c
}

// NewUnregistered builds the same metric set registered against a fresh
// private registry rather than a shared one, for use in tests that
// construct a Counters per test case.
func NewUnregistered() *Counters {
	return NewCounters(prometheus.NewRegistry())
}

func (c *Counters) Tick(instance string) {
	c.TicksTotal.WithLabelValues(instance).Inc()
}

func (c *Counters) RequestSuccess(instance string) {
	c.RequestsSuccess.WithLabelValues(instance).Inc()
}

func (c *Counters) RequestFailed(instance string) {
	c.RequestsFailed.WithLabelValues(instance).Inc()
}

func (c *Counters) Denied(instance, reason string) {
	c.DeniedTotal.WithLabelValues(instance, reason).Inc()
}

func (c *Counters) ResizeStart(instance, method string) {
	c.ResizeStarted.WithLabelValues(instance, method).Inc()
}

func (c *Counters) ResizeError(instance string) {
	c.ResizeErrors.WithLabelValues(instance).Inc()
}

func (c *Counters) CurrentSize(instance string, size int32) {
	c.currentSize.WithLabelValues(instance).Set(float64(size))
}

// ScalingDuration records the observed duration of a completed resize,
// labelled by the sizing method and the previous/requested sizes so the
// histogram can be sliced by scaling direction.
func (c *Counters) ScalingDuration(method string, previousSize, requestedSize int32, d time.Duration) {
	c.scalingDuration.WithLabelValues(
		method,
		formatSize(previousSize),
		formatSize(requestedSize),
	).Observe(d.Seconds())
}

func formatSize(n int32) string {
	return strconv.FormatInt(int64(n), 10)
}
