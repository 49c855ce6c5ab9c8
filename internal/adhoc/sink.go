package adhoc

import (
	"net"

	"github.com/iti/evt/evtm"

	"github.com/routinglab/manet-compare/internal/measure"
)

type arrivalMsg struct {
	flow  *Flow
	delay float64
}

// deliverPacket runs when a routed packet reaches its sink node. Arrivals
// scheduled past the run duration never dispatch; those packets stay in
// flight and show up in no flow counter.
func deliverPacket(evtMgr *evtm.EventManager, cxt any, msg any) any {
	n := cxt.(*Network)
	ar := msg.(arrivalMsg)

	n.mon.OnRx(ar.flow.ID, ar.delay)
	if n.deliver != nil {
		n.deliver(measure.Arrival{
			Node:   ar.flow.Dst,
			Sender: nodeAddr(ar.flow.Src, n.spec.Port),
			Size:   measure.PayloadBytes,
			At:     evtMgr.CurrentSeconds(),
		})
	}
	return nil
}

// nodeAddr is a node's UDP transport address on the experiment subnet.
func nodeAddr(node, port int) *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4(10, 1, 1, byte(node+1)), Port: port}
}
