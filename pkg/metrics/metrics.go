package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SubmissionsTotal      *prometheus.CounterVec
	SlotEvaluationsTotal  *prometheus.CounterVec
	BookingAPIRequestTime *prometheus.HistogramVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Количество HTTP запросов",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Длительность обработки HTTP запросов",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "route"},
		),
		SubmissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "appointment_submissions_total",
				Help:        "Попытки записи на услугу по результату",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		SlotEvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "slot_evaluations_total",
				Help:        "Проверки доступности слотов",
				ConstLabels: constLabels,
			},
			[]string{"selectable"},
		),
		BookingAPIRequestTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "booking_api_request_duration_seconds",
				Help:        "Длительность запросов к Booking API",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"operation", "result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SubmissionsTotal,
		m.SlotEvaluationsTotal,
		m.BookingAPIRequestTime,
	)

	return m
}

// ObserveHTTP фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveSubmission фиксирует результат попытки записи
func (m *Metrics) ObserveSubmission(outcome string) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSlotEvaluation фиксирует проверку слота
func (m *Metrics) ObserveSlotEvaluation(selectable bool) {
	label := "false"
	if selectable {
		label = "true"
	}
	m.SlotEvaluationsTotal.WithLabelValues(label).Inc()
}

// ObserveBookingAPI фиксирует запрос к Booking API
func (m *Metrics) ObserveBookingAPI(operation, result string, duration time.Duration) {
	m.BookingAPIRequestTime.WithLabelValues(operation, result).Observe(duration.Seconds())
}
