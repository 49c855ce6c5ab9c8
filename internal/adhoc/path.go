package adhoc

import (
	"fmt"
	"math"

	"github.com/iti/rngstream"

	"github.com/routinglab/manet-compare/internal/measure"
)

// Profile captures how a routing protocol degrades under hop count, node
// speed and offered load. These are calibration knobs for the delivery
// model, not protocol implementations.
type Profile struct {
	Name            string
	HopDelivery     float64 // per-hop delivery probability on a settled route
	SpeedPenalty    float64 // delivery probability lost per m/s of node speed
	RouteLatency    float64 // discovery delay on a flow's first packet, seconds
	HopDelay        float64 // per-hop forwarding delay, seconds
	ControlOverhead float64 // share of capacity consumed by control traffic
}

var profiles = map[string]Profile{
	"OLSR": {Name: "OLSR", HopDelivery: 0.985, SpeedPenalty: 0.004, RouteLatency: 0, HopDelay: 0.002, ControlOverhead: 0.05},
	"AODV": {Name: "AODV", HopDelivery: 0.99, SpeedPenalty: 0.003, RouteLatency: 0.05, HopDelay: 0.0025, ControlOverhead: 0.02},
	"DSDV": {Name: "DSDV", HopDelivery: 0.98, SpeedPenalty: 0.006, RouteLatency: 0, HopDelay: 0.002, ControlOverhead: 0.04},
	"DSR":  {Name: "DSR", HopDelivery: 0.985, SpeedPenalty: 0.005, RouteLatency: 0.08, HopDelay: 0.003, ControlOverhead: 0.015},
}

// ProfileFor returns the delivery profile for a protocol name.
func ProfileFor(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Channel constants for the shared 802.11b ad hoc medium.
const (
	radioRange  = 250.0 // meters covered per hop
	capacityBps = 5.0e6 // practical shared-channel throughput
	maxJitter   = 0.01  // per-packet queueing jitter bound, seconds
)

// Verdict is the path model's decision for one packet.
type Verdict struct {
	Delivered bool
	Delay     float64
}

// PathModel decides per packet whether the routed path delivers it and how
// long delivery takes. Independent per-hop losses are overlaid with a
// per-flow burst chain standing in for route breaks.
type PathModel struct {
	profile    Profile
	mob        *Mobility
	offeredBps float64
	rng        *rngstream.RngStream
	burst      []*burstChain
}

func NewPathModel(profile Profile, mob *Mobility, flows, pps int) *PathModel {
	pm := &PathModel{
		profile:    profile,
		mob:        mob,
		offeredBps: float64(flows*pps) * measure.PayloadBytes * 8,
		rng:        rngstream.New("path"),
		burst:      make([]*burstChain, flows),
	}
	for i := range pm.burst {
		pm.burst[i] = newBurstChain(fmt.Sprintf("burst-%d", i))
	}
	return pm
}

// Judge decides the fate of one packet sent on the given flow at time now.
// first marks a flow's first packet, which pays the route discovery cost.
func (p *PathModel) Judge(flow, src, dst int, first bool, now float64) Verdict {
	hops := int(math.Ceil(p.mob.Distance(src, dst, now) / radioRange))
	if hops < 1 {
		hops = 1
	}
	speed := (p.mob.SpeedAt(src, now) + p.mob.SpeedAt(dst, now)) / 2

	pDeliver := math.Pow(p.profile.HopDelivery, float64(hops))
	pDeliver *= 1 - clamp01(p.profile.SpeedPenalty*speed)

	// forwarding multiplies the load on the shared medium
	util := p.offeredBps * float64(hops) / (capacityBps * (1 - p.profile.ControlOverhead))
	if util > 0.6 {
		pDeliver *= 1 - clamp01(0.5*(util-0.6))
	}

	if p.burst[flow].step() {
		pDeliver *= 0.2
	}

	if p.rng.RandU01() >= pDeliver {
		return Verdict{}
	}

	delay := float64(hops)*p.profile.HopDelay + p.rng.RandU01()*maxJitter
	if first {
		delay += p.profile.RouteLatency
	}
	return Verdict{Delivered: true, Delay: delay}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
