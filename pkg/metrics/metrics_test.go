package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegisterer("booking-test", prometheus.NewRegistry())

	m.IncReservation("created")
	m.IncReservation("created")
	m.IncReservation("conflict")
	m.IncConfirmation("duplicate")
	m.IncHoursFallback()
	m.AddSwept(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfirmationsTotal.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HoursFallbackTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SweptReservations))
}

func TestMetrics_DBObserver(t *testing.T) {
	m := NewWithRegisterer("booking-test", prometheus.NewRegistry())

	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("select", time.Millisecond, sql.ErrNoRows)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))
	m.SetDBPoolStats(sql.DBStats{OpenConnections: 4, InUse: 1})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("insert")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DBOpenConns))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncReservation("created")
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("select", time.Second, nil)
	})
}
