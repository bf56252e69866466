package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the collectors exported by the service on its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	LoginSuccess    prometheus.Counter
	LoginFailure    *prometheus.CounterVec
	RegisterSuccess prometheus.Counter
	MessagesPosted  prometheus.Counter
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		LoginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "login_success_total",
			Help: "Total successful login attempts",
		}),
		LoginFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_failure_total",
			Help: "Total failed login attempts",
		}, []string{"reason"}),
		RegisterSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "register_success_total",
			Help: "Total successful register attempts",
		}),
		MessagesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messages_posted_total",
			Help: "Total messages successfully posted",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.LoginSuccess,
		m.LoginFailure,
		m.RegisterSuccess,
		m.MessagesPosted,
	)
	return m
}
