package measure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type memWriter struct {
	rows []SampleRow
	fail error
}

func (m *memWriter) WriteSample(r SampleRow) error {
	if m.fail != nil {
		return m.fail
	}
	m.rows = append(m.rows, r)
	return nil
}

func (m *memWriter) Close() error { return nil }

func TestSamplerRateLaw(t *testing.T) {
	a := NewAccountant()
	out := &memWriter{}
	s := NewSampler(SamplerSpec{Interval: 1, Until: 200, Sinks: 10, Protocol: "AODV", TxPower: 7.5}, a, out)

	for i := 0; i < 3; i++ {
		a.OnArrival(Arrival{Node: 0, Size: 64, At: 0.5})
	}
	require.True(t, s.tick(1.0))

	require.Len(t, out.rows, 1)
	row := out.rows[0]
	require.InDelta(t, 1.536, row.RateKbps, 1e-12)
	require.Equal(t, int64(3), row.Packets)
	require.Equal(t, 10, row.Sinks)
	require.Equal(t, "AODV", row.Protocol)
	require.InDelta(t, 7.5, row.TxPower, 1e-12)

	// nothing arrived since, so the next two windows both read empty
	require.True(t, s.tick(2.0))
	require.True(t, s.tick(3.0))
	require.Zero(t, out.rows[1].RateKbps)
	require.Zero(t, out.rows[2].RateKbps)
}

func TestSamplerPacketTotalsMatchArrivals(t *testing.T) {
	a := NewAccountant()
	out := &memWriter{}
	s := NewSampler(SamplerSpec{Interval: 1, Until: 10}, a, out)

	arrivals := []int{0, 3, 1, 0, 7, 2, 0, 0, 5, 1}
	total := int64(0)
	for sec, n := range arrivals {
		for i := 0; i < n; i++ {
			a.OnArrival(Arrival{Node: 0, Size: PayloadBytes, At: float64(sec)})
			total++
		}
		s.tick(float64(sec))
	}

	var sum int64
	for _, r := range out.rows {
		sum += r.Packets
	}
	require.Equal(t, total, sum)
}

func TestSamplerStopsAtDuration(t *testing.T) {
	a := NewAccountant()
	s := NewSampler(SamplerSpec{Interval: 1, Until: 200}, a, &memWriter{})

	require.True(t, s.tick(198.0))
	require.False(t, s.tick(199.0))
	require.Equal(t, int64(2), s.Rows())
}

func TestSamplerKeepsFirstWriteError(t *testing.T) {
	a := NewAccountant()
	out := &memWriter{fail: errors.New("disk full")}
	s := NewSampler(SamplerSpec{Interval: 1, Until: 10}, a, out)

	require.True(t, s.tick(0.0))
	firstErr := s.Err()
	require.Error(t, firstErr)

	out.fail = errors.New("still broken")
	require.True(t, s.tick(1.0))
	require.Same(t, firstErr, s.Err())

	// the chain kept running through both failures
	require.Equal(t, int64(2), s.Rows())
}

func TestSamplerDefaultInterval(t *testing.T) {
	s := NewSampler(SamplerSpec{Until: 5}, NewAccountant(), &memWriter{})
	require.Equal(t, 1.0, s.spec.Interval)
}
