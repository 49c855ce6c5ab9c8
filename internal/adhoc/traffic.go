package adhoc

import (
	"github.com/iti/evt/evtm"
	"github.com/iti/evt/vrtime"
	log "github.com/sirupsen/logrus"
)

// Arm schedules every flow's first transmission. Call once, before the
// event manager runs.
func (n *Network) Arm(evtMgr *evtm.EventManager) {
	for _, fl := range n.flows {
		evtMgr.Schedule(n, fl, sendPacket, vrtime.SecondsToTime(fl.start))
	}
	log.Debugf("[Network] armed %d %s flows at %d packets/s", len(n.flows), n.spec.Protocol, n.spec.PacketsPerSec)
}

func (n *Network) interval() float64 { return 1.0 / float64(n.spec.PacketsPerSec) }

// sendPacket emits one CBR packet on a flow, asks the path model for its
// fate, and re-arms the source until the run duration.
func sendPacket(evtMgr *evtm.EventManager, cxt any, msg any) any {
	n := cxt.(*Network)
	fl := msg.(*Flow)
	now := evtMgr.CurrentSeconds()

	n.mon.OnTx(fl.ID)

	v := n.path.Judge(fl.ID, fl.Src, fl.Dst, !fl.sent, now)
	fl.sent = true
	if v.Delivered {
		evtMgr.Schedule(n, arrivalMsg{flow: fl, delay: v.Delay}, deliverPacket, vrtime.SecondsToTime(v.Delay))
	} else {
		n.mon.OnLost(fl.ID)
	}

	if next := now + n.interval(); next < n.spec.Duration {
		evtMgr.Schedule(n, fl, sendPacket, vrtime.SecondsToTime(n.interval()))
	}
	return nil
}
