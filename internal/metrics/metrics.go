package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the detection collectors and the registry that exposes
// them. A nil *Metrics records nothing.
type Metrics struct {
	FramesDecoded    prometheus.Counter
	FramesSampled    prometheus.Counter
	InferenceCalls   prometheus.Counter
	InferenceLatency prometheus.Histogram
	FrameErrors      prometheus.Counter
	PositiveFrames   prometheus.Counter
	Requests         *prometheus.CounterVec

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		FramesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "detection_frames_decoded_total",
			Help: "Total video frames decoded",
		}),
		FramesSampled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "detection_frames_sampled_total",
			Help: "Total frames sent to inference",
		}),
		InferenceCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "detection_inference_calls_total",
			Help: "Total inference batch calls",
		}),
		InferenceLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "detection_inference_duration_seconds",
			Help:    "Inference batch latency",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		FrameErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "detection_frame_errors_total",
			Help: "Frames whose prediction could not be interpreted",
		}),
		PositiveFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "detection_positive_frames_total",
			Help: "Frames with at least one detection above threshold",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "detection_requests_total",
			Help: "Detection requests by media kind and outcome",
		}, []string{"kind", "outcome"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FramesDecoded,
		m.FramesSampled,
		m.InferenceCalls,
		m.InferenceLatency,
		m.FrameErrors,
		m.PositiveFrames,
		m.Requests,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveDecoded() {
	if m != nil {
		m.FramesDecoded.Inc()
	}
}

func (m *Metrics) ObserveBatch(size int, took time.Duration) {
	if m == nil {
		return
	}
	m.FramesSampled.Add(float64(size))
	m.InferenceCalls.Inc()
	m.InferenceLatency.Observe(took.Seconds())
}

func (m *Metrics) ObserveFrame(errored, detected bool) {
	if m == nil {
		return
	}
	if errored {
		m.FrameErrors.Inc()
	}
	if detected {
		m.PositiveFrames.Inc()
	}
}

func (m *Metrics) ObserveRequest(kind, outcome string) {
	if m != nil {
		m.Requests.WithLabelValues(kind, outcome).Inc()
	}
}
