package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studycafe",
			Name:      "reservation_created_total",
			Help:      "Count of reservations created.",
		},
	)

	reservationConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studycafe",
			Name:      "reservation_conflict_total",
			Help:      "Count of create/edit attempts rejected as double bookings.",
		},
	)

	reservationClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studycafe",
			Name:      "reservation_closed_total",
			Help:      "Count of reservations closed, by outcome (cancelled, completed, expired).",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservationCreated, reservationConflict, reservationClosed)
	})
}

func IncCreated() { reservationCreated.Inc() }

func IncConflict() { reservationConflict.Inc() }

func IncClosed(outcome string) { reservationClosed.WithLabelValues(outcome).Inc() }

func AddExpired(n int) { reservationClosed.WithLabelValues("expired").Add(float64(n)) }
