package measure

import "math"

// Reduce folds the per-flow counters of one finished run into the sweep
// summary metrics. Throughput is normalized over the configured observation
// window, not the measured run length. Degenerate inputs (no transmitted or
// no received packets) yield NaN fields, never a panic.
func Reduce(key SweepKey, records []FlowRecord, w Window) AggregateResult {
	var tx, rx, lost int64
	var delaySec float64
	for _, r := range records {
		tx += r.TxPackets
		rx += r.RxPackets
		lost += r.LostPackets
		delaySec += r.DelaySum.Seconds()
	}

	out := AggregateResult{SweepKey: key}
	out.DeliveryRatio = ratio(float64(rx), float64(tx))
	out.DropRatio = ratio(float64(lost), float64(tx))
	out.AvgDelaySeconds = ratio(delaySec, float64(rx))
	if tx == 0 {
		out.ThroughputKbps = math.NaN()
	} else {
		out.ThroughputKbps = float64(rx) * PayloadBytes * 8.0 / (w.Seconds() * 1000.0)
	}
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
