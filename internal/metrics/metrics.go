package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Intake counts order intake outcomes. The zero value is ready to use.
type Intake struct {
	OrdersCreated          Counter
	Unauthorized           Counter
	ValidationRejected     Counter
	InvalidItemsRejected   Counter
	TotalMismatchRejected  Counter
	ServerErrors           Counter
	StockDecrementFailures Counter

	// Sum of successful intake latencies, in microseconds.
	latencyMicros Counter
}

func (m *Intake) ObserveCreated(t *Timer) {
	m.OrdersCreated.Inc()
	m.latencyMicros.Add(uint64(t.Duration().Microseconds()))
}

func (m *Intake) Snapshot() map[string]uint64 {
	created := m.OrdersCreated.Load()
	avg := uint64(0)
	if created > 0 {
		avg = m.latencyMicros.Load() / created
	}

	return map[string]uint64{
		"orders_created":           created,
		"rejected_unauthorized":    m.Unauthorized.Load(),
		"rejected_validation":      m.ValidationRejected.Load(),
		"rejected_invalid_items":   m.InvalidItemsRejected.Load(),
		"rejected_total_mismatch":  m.TotalMismatchRejected.Load(),
		"server_errors":            m.ServerErrors.Load(),
		"stock_decrement_failures": m.StockDecrementFailures.Load(),
		"avg_create_latency_us":    avg,
	}
}
