package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := New()
	m.ObserveAPI("POST", "/api/checkout", "201", 20*time.Millisecond)
	m.ObserveAPI("POST", "/api/checkout", "500", 20*time.Millisecond)
	m.ObserveAggregateOperation("checkout.store", "success", time.Millisecond)
	m.IncAggregateConflict("order.transition")
	m.ObserveCheckout("success", 2)
	m.IncOrderTransition("pending", "confirmed")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`mp_api_requests_total{method="POST",route="/api/checkout",status="201"} 1.000000`,
		`mp_api_requests_error_total 1.000000`,
		`mp_aggregate_operations_total{operation="checkout.store",status="success"} 1.000000`,
		`mp_aggregate_conflicts_total{operation="order.transition"} 1.000000`,
		`mp_checkout_total{outcome="success"} 1.000000`,
		`mp_orders_created_total 2.000000`,
		`mp_order_transitions_total{from="pending",to="confirmed"} 1.000000`,
		`mp_aggregate_operation_duration_seconds_bucket{operation="checkout.store",status="success",le="+Inf"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveAggregateOperation("x", "success", time.Millisecond)
	m.IncAggregateRetry("x")
	m.ObserveCheckout("empty_cart", 0)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestParseOtelHeaders(t *testing.T) {
	got := ParseOtelHeaders(" a=1, b = 2 ,bad, =x")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("ParseOtelHeaders: got=%v", got)
	}
	if ParseOtelHeaders("") != nil {
		t.Fatalf("ParseOtelHeaders empty: want nil")
	}
}
