package adhoc

import (
	"fmt"

	"github.com/iti/rngstream"

	"github.com/routinglab/manet-compare/internal/measure"
)

// Spec describes the ad hoc network for one run.
type Spec struct {
	Nodes         int
	Sinks         int
	MaxSpeed      float64 // m/s
	PacketsPerSec int
	Protocol      string
	Duration      float64 // seconds
	TrafficStart  float64 // flows start uniformly inside [TrafficStart, TrafficStart+1)
	Port          int
}

// Flow is one CBR source/sink pair. Sink node i receives from source node
// i+Sinks, the pairing the sweep scripts assume.
type Flow struct {
	ID  int
	Src int
	Dst int

	start float64
	sent  bool
}

// Network wires mobility, the path model, the traffic flows and the flow
// monitor for one run. Delivered packets are handed to the deliver callback
// at their arrival time.
type Network struct {
	spec    Spec
	mob     *Mobility
	path    *PathModel
	mon     *FlowMonitor
	flows   []*Flow
	deliver func(measure.Arrival)
}

func NewNetwork(spec Spec, deliver func(measure.Arrival)) (*Network, error) {
	profile, ok := ProfileFor(spec.Protocol)
	if !ok {
		return nil, fmt.Errorf("no such protocol: %s", spec.Protocol)
	}
	pairs := spec.Nodes / 2
	if pairs < 1 {
		return nil, fmt.Errorf("%d nodes leave no source/sink pair", spec.Nodes)
	}
	if pairs-1+spec.Sinks >= spec.Nodes {
		return nil, fmt.Errorf("source index %d out of range for %d nodes", pairs-1+spec.Sinks, spec.Nodes)
	}
	if spec.PacketsPerSec <= 0 {
		return nil, fmt.Errorf("packet rate must be positive, got %d", spec.PacketsPerSec)
	}

	mob := NewMobility(spec.Nodes, spec.MaxSpeed, spec.Duration)
	starts := rngstream.New("traffic-start")

	n := &Network{
		spec:    spec,
		mob:     mob,
		path:    NewPathModel(profile, mob, pairs, spec.PacketsPerSec),
		mon:     NewFlowMonitor(pairs),
		deliver: deliver,
	}
	for i := 0; i < pairs; i++ {
		n.flows = append(n.flows, &Flow{
			ID:    i,
			Src:   i + spec.Sinks,
			Dst:   i,
			start: spec.TrafficStart + starts.RandU01(),
		})
	}
	return n, nil
}

func (n *Network) Flows() int            { return len(n.flows) }
func (n *Network) Monitor() *FlowMonitor { return n.mon }
func (n *Network) Mobility() *Mobility   { return n.mob }
