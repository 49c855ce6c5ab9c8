package adhoc

import (
	"fmt"
	"time"

	"github.com/routinglab/manet-compare/internal/measure"
)

// FlowMonitor keeps per-flow counters during the run and hands them over
// once at collection time. Packets still in flight when Collect runs sit in
// no bucket.
type FlowMonitor struct {
	stats     []flowStats
	collected bool
}

type flowStats struct {
	tx, rx, lost int64
	delaySec     float64
}

func NewFlowMonitor(flows int) *FlowMonitor {
	return &FlowMonitor{stats: make([]flowStats, flows)}
}

func (m *FlowMonitor) OnTx(flow int)   { m.stats[flow].tx++ }
func (m *FlowMonitor) OnLost(flow int) { m.stats[flow].lost++ }

func (m *FlowMonitor) OnRx(flow int, delaySec float64) {
	m.stats[flow].rx++
	m.stats[flow].delaySec += delaySec
}

// Collect returns one record per flow. It answers exactly once per run.
func (m *FlowMonitor) Collect() ([]measure.FlowRecord, error) {
	if m.collected {
		return nil, fmt.Errorf("flow statistics already collected")
	}
	m.collected = true

	out := make([]measure.FlowRecord, len(m.stats))
	for i, s := range m.stats {
		out[i] = measure.FlowRecord{
			FlowID:      i + 1,
			TxPackets:   s.tx,
			RxPackets:   s.rx,
			LostPackets: s.lost,
			DelaySum:    time.Duration(s.delaySec * float64(time.Second)),
		}
	}
	return out, nil
}
