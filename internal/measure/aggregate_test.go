package measure

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testWindow = Window{Start: 100 * time.Second, End: 200 * time.Second}

func TestReduceSummaryScenario(t *testing.T) {
	records := []FlowRecord{
		{FlowID: 1, TxPackets: 10, RxPackets: 8, LostPackets: 2, DelaySum: 4 * time.Second},
		{FlowID: 2, TxPackets: 5, RxPackets: 5, LostPackets: 0, DelaySum: 1 * time.Second},
		{FlowID: 3, TxPackets: 5, RxPackets: 0, LostPackets: 5, DelaySum: 0},
	}

	res := Reduce(SweepKey{Nodes: 50, NodeSpeed: 5, PacketsPerSec: 100}, records, testWindow)

	require.InDelta(t, 0.65, res.DeliveryRatio, 1e-12)
	require.InDelta(t, 0.35, res.DropRatio, 1e-12)
	require.InDelta(t, 5.0/13.0, res.AvgDelaySeconds, 1e-12)
	require.InDelta(t, 13*64*8.0/(100*1000.0), res.ThroughputKbps, 1e-12)
	require.Equal(t, 50, res.Nodes)
	require.Equal(t, 5, res.NodeSpeed)
	require.Equal(t, 100, res.PacketsPerSec)
}

func TestReduceZeroTransmitted(t *testing.T) {
	res := Reduce(SweepKey{}, []FlowRecord{{FlowID: 1}}, testWindow)

	require.True(t, math.IsNaN(res.DeliveryRatio))
	require.True(t, math.IsNaN(res.DropRatio))
	require.True(t, math.IsNaN(res.AvgDelaySeconds))
	require.True(t, math.IsNaN(res.ThroughputKbps))

	res = Reduce(SweepKey{}, nil, testWindow)
	require.True(t, math.IsNaN(res.DeliveryRatio))
}

func TestReduceZeroReceived(t *testing.T) {
	records := []FlowRecord{{FlowID: 1, TxPackets: 10, LostPackets: 10}}
	res := Reduce(SweepKey{}, records, testWindow)

	require.Zero(t, res.DeliveryRatio)
	require.InDelta(t, 1.0, res.DropRatio, 1e-12)
	require.True(t, math.IsNaN(res.AvgDelaySeconds))
	require.Zero(t, res.ThroughputKbps)
}

func TestReduceRatiosNeedNotSumToOne(t *testing.T) {
	// three packets were still in flight at collection time
	records := []FlowRecord{{FlowID: 1, TxPackets: 10, RxPackets: 4, LostPackets: 3, DelaySum: time.Second}}
	res := Reduce(SweepKey{}, records, testWindow)

	require.InDelta(t, 0.4, res.DeliveryRatio, 1e-12)
	require.InDelta(t, 0.3, res.DropRatio, 1e-12)
	require.Less(t, res.DeliveryRatio+res.DropRatio, 1.0)
}
