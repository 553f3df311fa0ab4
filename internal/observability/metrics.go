package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeStored          = "stored"
	OutcomeNoFix           = "no_fix"
	OutcomeGeocodeFailed   = "geocode_failed"
	OutcomeStorageFailed   = "storage_failed"
	OutcomeSkippedInFlight = "skipped_in_flight"
)

var (
	cycleCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estate_tracker",
		Subsystem: "tracker",
		Name:      "cycles_total",
		Help:      "Number of sample-and-store cycles grouped by outcome.",
	}, []string{"outcome"})

	cycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "estate_tracker",
		Subsystem: "tracker",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of sample-and-store cycles.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	trackingActiveGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "estate_tracker",
		Subsystem: "tracker",
		Name:      "active",
		Help:      "1 while tracking is active, 0 otherwise.",
	})

	lastSampleGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "estate_tracker",
		Subsystem: "store",
		Name:      "last_sample_captured_timestamp_seconds",
		Help:      "Unix timestamp of the fix behind the most recently stored sample.",
	})

	wakeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estate_tracker",
		Subsystem: "scheduler",
		Name:      "wakes_total",
		Help:      "Scheduled wakes grouped by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(cycleCounter, cycleDuration, trackingActiveGauge, lastSampleGauge, wakeCounter)
}

// RecordCycle учитывает завершенный цикл
func RecordCycle(outcome string, started time.Time) {
	cycleCounter.WithLabelValues(outcome).Inc()
	cycleDuration.Observe(time.Since(started).Seconds())
}

// RecordTrackingActive выставляет флаг активности трекинга
func RecordTrackingActive(active bool) {
	if active {
		trackingActiveGauge.Set(1)
		return
	}
	trackingActiveGauge.Set(0)
}

// RecordSampleStored обновляет водяной знак последнего сэмпла
func RecordSampleStored(capturedAt time.Time) {
	if capturedAt.IsZero() {
		return
	}
	lastSampleGauge.Set(float64(capturedAt.Unix()))
}

// RecordWake учитывает пробуждение планировщика: fired, skipped_pending, expired
func RecordWake(result string) {
	wakeCounter.WithLabelValues(result).Inc()
}
