package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	OrdersCreated   prometheus.Counter
	SpaceDecrements *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

func New() *Metrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

func newWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		OrdersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "lessonstore_orders_created_total",
			Help: "Total number of orders persisted",
		}),
		SpaceDecrements: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "lessonstore_space_decrements_total",
			Help: "Lesson space decrement attempts by outcome",
		}, []string{"outcome"}),
		HTTPRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "lessonstore_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return collector
}
