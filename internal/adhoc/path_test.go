package adhoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileForKnownProtocols(t *testing.T) {
	for _, name := range []string{"OLSR", "AODV", "DSDV", "DSR"} {
		p, ok := ProfileFor(name)
		require.True(t, ok, name)
		require.Equal(t, name, p.Name)
		require.Greater(t, p.HopDelivery, 0.9)
		require.LessOrEqual(t, p.HopDelivery, 1.0)
	}

	_, ok := ProfileFor("aodv")
	require.False(t, ok, "protocol names are case sensitive")
	_, ok = ProfileFor("ZRP")
	require.False(t, ok)
}

func TestJudgeDelays(t *testing.T) {
	profile, _ := ProfileFor("AODV")
	mob := NewMobility(20, 0, 100)
	pm := NewPathModel(profile, mob, 10, 4)

	if v := pm.Judge(0, 10, 0, true, 50); v.Delivered {
		// a first packet pays the route discovery cost on top
		require.GreaterOrEqual(t, v.Delay, profile.RouteLatency)
	}

	for i := 0; i < 500; i++ {
		v := pm.Judge(0, 10, 0, false, 50)
		if !v.Delivered {
			require.Zero(t, v.Delay)
			continue
		}
		require.GreaterOrEqual(t, v.Delay, profile.HopDelay)
		require.Less(t, v.Delay, 10*profile.HopDelay+maxJitter)
	}
}

func TestJudgeDeliversMostPacketsOnQuietChannel(t *testing.T) {
	profile, _ := ProfileFor("AODV")
	mob := NewMobility(20, 0, 100)
	pm := NewPathModel(profile, mob, 10, 4)

	delivered := 0
	const total = 2000
	for i := 0; i < total; i++ {
		if pm.Judge(1, 11, 1, false, 50).Delivered {
			delivered++
		}
	}
	require.Greater(t, delivered, total/2)
}
