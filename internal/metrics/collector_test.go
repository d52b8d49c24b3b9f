package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dantte-lp/choadra/internal/metrics"
)

func TestNewCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	if c.FramesSent == nil {
		t.Error("FramesSent is nil")
	}
	if c.FramesReceived == nil {
		t.Error("FramesReceived is nil")
	}
	if c.CompressionRatio == nil {
		t.Error("CompressionRatio is nil")
	}
	if c.LoginDuration == nil {
		t.Error("LoginDuration is nil")
	}
	if c.PacketsDispatched == nil {
		t.Error("PacketsDispatched is nil")
	}

	// Registration must not panic, and must actually be gatherable.
	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
}

func TestFrameCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.IncFramesSent()
	c.IncFramesSent()
	c.IncFramesReceived()

	if got := counterValue(t, c.FramesSent); got != 2 {
		t.Errorf("FramesSent = %v, want 2", got)
	}

	if got := counterValue(t, c.FramesReceived); got != 1 {
		t.Errorf("FramesReceived = %v, want 1", got)
	}
}

func TestCompressionRatioIgnoresZeroLength(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	// Must not panic or divide by zero.
	c.ObserveCompressionRatio(0, 0)

	m := &dto.Metric{}
	if err := c.CompressionRatio.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if m.GetHistogram().GetSampleCount() != 0 {
		t.Errorf("sample count = %d, want 0 after a zero-length observation", m.GetHistogram().GetSampleCount())
	}
}

func TestCompressionRatioRecordsObservation(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.ObserveCompressionRatio(50, 100)

	m := &dto.Metric{}
	if err := c.CompressionRatio.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if got := m.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("sample count = %d, want 1", got)
	}

	if got := m.GetHistogram().GetSampleSum(); got != 0.5 {
		t.Errorf("sample sum = %v, want 0.5", got)
	}
}

func TestLoginDurationObservation(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.ObserveLoginDuration(250 * time.Millisecond)

	m := &dto.Metric{}
	if err := c.LoginDuration.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if got := m.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("sample count = %d, want 1", got)
	}
}

func TestPacketsDispatchedLabelsByPhaseDirectionID(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.IncPacketsDispatched("play", "clientbound", 0x0e)
	c.IncPacketsDispatched("play", "clientbound", 0x0e)
	c.IncPacketsDispatched("login", "serverbound", 0x00)

	if got := counterVecValue(t, c.PacketsDispatched, "play", "clientbound", "0x0e"); got != 2 {
		t.Errorf("play/clientbound/0x0e = %v, want 2", got)
	}

	if got := counterVecValue(t, c.PacketsDispatched, "login", "serverbound", "0x00"); got != 1 {
		t.Errorf("login/serverbound/0x00 = %v, want 1", got)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}

	return m.GetCounter().GetValue()
}

func counterVecValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()

	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}

	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}

	return m.GetCounter().GetValue()
}
