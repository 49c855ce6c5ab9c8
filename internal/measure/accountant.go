package measure

import (
	"net"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Accountant totals bytes and packets delivered to the sinks since the last
// sampler read. Event dispatch is single threaded, but the counters stay
// mutex-guarded so the type remains correct when fed from real goroutines.
type Accountant struct {
	mu      sync.Mutex
	bytes   int64
	packets int64
}

func NewAccountant() *Accountant { return &Accountant{} }

// OnArrival books one received packet and emits the per-packet reception
// notice. Arrivals are never rejected.
func (a *Accountant) OnArrival(ar Arrival) {
	a.mu.Lock()
	a.bytes += int64(ar.Size)
	a.packets++
	a.mu.Unlock()

	if udp, ok := ar.Sender.(*net.UDPAddr); ok {
		log.Infof("%g %d received one packet from %s", ar.At, ar.Node, udp.IP)
	} else {
		log.Infof("%g %d received one packet!", ar.At, ar.Node)
	}
}

// ReadAndReset returns the totals accumulated since the previous call and
// zeroes both counters in the same critical section, so no arrival can be
// split across two sampling windows.
func (a *Accountant) ReadAndReset() (bytes, packets int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	bytes, packets = a.bytes, a.packets
	a.bytes, a.packets = 0, 0
	return bytes, packets
}
