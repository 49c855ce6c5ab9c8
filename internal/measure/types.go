// Package measure holds the accounting and aggregation core of the routing
// comparison: per-arrival reception counters, the once-per-second throughput
// sampler, and the end-of-run flow statistics reduction.
package measure

import (
	"net"
	"time"
)

// PayloadBytes is the constant application payload carried by every
// generated packet.
const PayloadBytes = 64

// Arrival is one application-layer packet handed up by a receiving node.
type Arrival struct {
	Node   int
	Sender net.Addr
	Size   int
	At     float64 // simulation seconds
}

// SampleRow is one line of the per-second throughput time series.
type SampleRow struct {
	Second   float64 `json:"simulation_second"`
	RateKbps float64 `json:"receive_rate_kbps"`
	Packets  int64   `json:"packets_received"`
	Sinks    int     `json:"sinks"`
	Protocol string  `json:"protocol"`
	TxPower  float64 `json:"tx_power_dbm"`
}

// FlowRecord carries the end-of-run counters for one observed flow.
// Packets still in flight at collection time are neither received nor lost,
// so RxPackets+LostPackets may fall short of TxPackets.
type FlowRecord struct {
	FlowID      int
	TxPackets   int64
	RxPackets   int64
	LostPackets int64
	DelaySum    time.Duration
}

// SweepKey identifies one point of a parameter sweep.
type SweepKey struct {
	Nodes         int `json:"nodes" yaml:"nodes"`
	NodeSpeed     int `json:"node_speed" yaml:"nodeSpeed"`
	PacketsPerSec int `json:"packets_per_sec" yaml:"packetsPerSec"`
}

// Window is the traffic observation window used to normalize summary
// throughput. It is fixed by configuration, never by measured run length.
type Window struct {
	Start time.Duration
	End   time.Duration
}

func (w Window) Seconds() float64 { return (w.End - w.Start).Seconds() }

// AggregateResult is one row of the sweep summary file.
type AggregateResult struct {
	SweepKey

	DeliveryRatio   float64 `json:"packet_delivery_ratio"`
	DropRatio       float64 `json:"packet_drop_ratio"`
	AvgDelaySeconds float64 `json:"avg_delay_seconds"`
	ThroughputKbps  float64 `json:"throughput_kbps"`
}
