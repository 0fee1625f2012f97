package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking proxy.
type BookingMetrics struct {
	bookingsTotal       *prometheus.CounterVec
	checkInTotal        *prometheus.CounterVec
	catalogRefreshTotal *prometheus.CounterVec
	catalogMissTotal    prometheus.Counter
	compileLatency      *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Booking attempts by service family and outcome",
		}, []string{"family", "status"}),
		checkInTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "booking",
			Name:      "checkin_total",
			Help:      "Check-in attempts by trigger and outcome",
		}, []string{"trigger", "status"}),
		catalogRefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "catalog",
			Name:      "refresh_total",
			Help:      "Catalog refresh attempts by outcome",
		}, []string{"outcome"}),
		catalogMissTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "catalog",
			Name:      "miss_total",
			Help:      "Bookings that fell back to default duration/price for an unknown service id",
		}),
		compileLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "booking",
			Name:      "compile_latency_seconds",
			Help:      "Latency of appointment compilation including the catalog refresh",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.checkInTotal, m.catalogRefreshTotal, m.catalogMissTotal, m.compileLatency)
	return m
}

func (m *BookingMetrics) ObserveBooking(family, status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(family, status).Inc()
}

func (m *BookingMetrics) ObserveCheckIn(trigger, status string) {
	if m == nil {
		return
	}
	m.checkInTotal.WithLabelValues(trigger, status).Inc()
}

func (m *BookingMetrics) ObserveCatalogRefresh(outcome string) {
	if m == nil {
		return
	}
	m.catalogRefreshTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveCatalogMiss() {
	if m == nil {
		return
	}
	m.catalogMissTotal.Inc()
}

func (m *BookingMetrics) ObserveCompileLatency(family string, seconds float64) {
	if m == nil {
		return
	}
	m.compileLatency.WithLabelValues(family).Observe(seconds)
}
