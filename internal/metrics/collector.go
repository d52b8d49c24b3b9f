// Package metrics exposes the Prometheus metrics the demo CLI publishes
// for a running session: frame volume, compression efficiency, login
// latency and packet-catalog dispatch counts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "choadra"
	subsystem = "client"
)

// Label names.
const (
	labelDirection = "direction"
	labelPhase     = "phase"
	labelPacketID  = "packet_id"
)

// Collector holds all choadra client Prometheus metrics.
//
// Metrics cover what a client operator actually wants to watch:
//   - Frame counters track transport-layer volume in each direction.
//   - CompressionRatio tracks how much zlib is saving once engaged.
//   - LoginDuration tracks how long the login handshake takes,
//     including any RSA/join_session round trip.
//   - PacketsDispatched counts decoded packets per (phase, direction, id).
type Collector struct {
	// FramesSent counts frames written to the connection.
	FramesSent prometheus.Counter

	// FramesReceived counts frames read from the connection.
	FramesReceived prometheus.Counter

	// CompressionRatio observes compressed_len/uncompressed_len for each
	// frame written above the compression threshold.
	CompressionRatio prometheus.Histogram

	// LoginDuration observes the wall-clock time of LoginSession.Login,
	// from LoginStart to the terminal LoginSuccess or Disconnect.
	LoginDuration prometheus.Histogram

	// PacketsDispatched counts packets successfully decoded by the
	// catalog, labeled by phase, direction and packet id.
	PacketsDispatched *prometheus.CounterVec
}

// NewCollector creates a Collector with all metrics registered against
// reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.FramesSent,
		c.FramesReceived,
		c.CompressionRatio,
		c.LoginDuration,
		c.PacketsDispatched,
	)

	return c
}

func newMetrics() *Collector {
	return &Collector{
		FramesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_sent_total",
			Help:      "Total frames written to the connection.",
		}),

		FramesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_received_total",
			Help:      "Total frames read from the connection.",
		}),

		CompressionRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "compression_ratio",
			Help:      "Compressed-to-uncompressed byte ratio for frames above the compression threshold.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),

		LoginDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "login_duration_seconds",
			Help:      "Time from LoginStart to the terminal LoginSuccess or Disconnect.",
			Buckets:   prometheus.DefBuckets,
		}),

		PacketsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_dispatched_total",
			Help:      "Total packets decoded by the packet catalog, per phase/direction/id.",
		}, []string{labelPhase, labelDirection, labelPacketID}),
	}
}

// -------------------------------------------------------------------------
// Frame Counters
// -------------------------------------------------------------------------

// IncFramesSent increments the sent-frame counter.
func (c *Collector) IncFramesSent() {
	c.FramesSent.Inc()
}

// IncFramesReceived increments the received-frame counter.
func (c *Collector) IncFramesReceived() {
	c.FramesReceived.Inc()
}

// ObserveCompressionRatio records the ratio of compressed to
// uncompressed bytes for one outgoing frame.
func (c *Collector) ObserveCompressionRatio(compressedLen, uncompressedLen int) {
	if uncompressedLen == 0 {
		return
	}

	c.CompressionRatio.Observe(float64(compressedLen) / float64(uncompressedLen))
}

// -------------------------------------------------------------------------
// Login Timing
// -------------------------------------------------------------------------

// ObserveLoginDuration records how long a login handshake took.
func (c *Collector) ObserveLoginDuration(d time.Duration) {
	c.LoginDuration.Observe(d.Seconds())
}

// -------------------------------------------------------------------------
// Packet Dispatch
// -------------------------------------------------------------------------

// IncPacketsDispatched increments the dispatch counter for one decoded
// packet.
func (c *Collector) IncPacketsDispatched(phase, direction string, packetID int32) {
	c.PacketsDispatched.WithLabelValues(phase, direction, formatPacketID(packetID)).Inc()
}

// formatPacketID renders a packet id as a fixed hex label, matching the
// "0x%02x"-style ids used throughout the packet catalog's doc comments.
func formatPacketID(id int32) string {
	const hexDigits = "0123456789abcdef"

	buf := [4]byte{'0', 'x', hexDigits[(id>>4)&0xf], hexDigits[id&0xf]}

	return string(buf[:])
}
