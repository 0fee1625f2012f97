package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveBooking("daycare", "ok")
	m.ObserveBooking("daycare", "ok")
	m.ObserveCheckIn("auto", "ok")
	m.ObserveCatalogRefresh("ok")
	m.ObserveCatalogMiss()
	m.ObserveCompileLatency("spa", 0.25)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	got := map[string]*dto.MetricFamily{}
	for _, mf := range families {
		got[mf.GetName()] = mf
	}
	bookings, ok := got["frontdesk_booking_bookings_total"]
	if !ok {
		t.Fatal("bookings_total not registered")
	}
	if v := bookings.GetMetric()[0].GetCounter().GetValue(); v != 2 {
		t.Fatalf("bookings_total = %v, want 2", v)
	}
	if _, ok := got["frontdesk_catalog_miss_total"]; !ok {
		t.Fatal("catalog miss_total not registered")
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveBooking("spa", "error")
	m.ObserveCheckIn("manual", "error")
	m.ObserveCatalogRefresh("error")
	m.ObserveCatalogMiss()
	m.ObserveCompileLatency("boarding", 0.1)
}
