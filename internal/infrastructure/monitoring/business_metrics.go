package monitoring

import (
	"time"
)

type CheckoutMetrics struct {
	start time.Time
}

func NewCheckoutMetrics() *CheckoutMetrics {
	return &CheckoutMetrics{
		start: time.Now(),
	}
}

func (m *CheckoutMetrics) RecordAttempt() {
	CheckoutAttemptsTotal.Inc()
}

func (m *CheckoutMetrics) RecordLineCommitted() {
	CheckoutLinesTotal.WithLabelValues("committed").Inc()
}

func (m *CheckoutMetrics) RecordLineFailed() {
	CheckoutLinesTotal.WithLabelValues("failed").Inc()
}

func (m *CheckoutMetrics) RecordSuccess() {
	CheckoutSuccessTotal.Inc()
	CheckoutDuration.Observe(time.Since(m.start).Seconds())
}

func (m *CheckoutMetrics) RecordFailure(reason string) {
	CheckoutFailureTotal.WithLabelValues(reason).Inc()
	CheckoutDuration.Observe(time.Since(m.start).Seconds())
}
