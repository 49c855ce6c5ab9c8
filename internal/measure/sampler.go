package measure

import (
	"github.com/iti/evt/evtm"
	"github.com/iti/evt/vrtime"
	log "github.com/sirupsen/logrus"
)

// SampleWriter receives one time-series row per sampler tick.
type SampleWriter interface {
	WriteSample(SampleRow) error
	Close() error
}

// SamplerSpec fixes a sampler's cadence and the constant columns it stamps
// onto every row.
type SamplerSpec struct {
	Interval float64 // seconds between ticks
	Until    float64 // ticks fire strictly before this time
	Sinks    int
	Protocol string
	TxPower  float64
}

// Sampler drains the accountant once per tick and appends one SampleRow
// through the writer. It re-arms itself until the run duration is reached,
// so no late firing can land after the scheduler stops.
type Sampler struct {
	spec SamplerSpec
	acct *Accountant
	out  SampleWriter

	rows int64
	err  error
}

func NewSampler(spec SamplerSpec, acct *Accountant, out SampleWriter) *Sampler {
	if spec.Interval <= 0 {
		spec.Interval = 1.0
	}
	return &Sampler{spec: spec, acct: acct, out: out}
}

// Arm schedules the first tick at the current simulation time. Call once,
// before the event manager runs.
func (s *Sampler) Arm(evtMgr *evtm.EventManager) {
	evtMgr.Schedule(s, nil, checkThroughput, vrtime.SecondsToTime(0.0))
}

func checkThroughput(evtMgr *evtm.EventManager, cxt any, msg any) any {
	s := cxt.(*Sampler)
	if s.tick(evtMgr.CurrentSeconds()) {
		evtMgr.Schedule(s, nil, checkThroughput, vrtime.SecondsToTime(s.spec.Interval))
	}
	return nil
}

// tick executes one firing at simulation time now and reports whether the
// chain should re-arm.
func (s *Sampler) tick(now float64) bool {
	bytes, packets := s.acct.ReadAndReset()

	row := SampleRow{
		Second:   now,
		RateKbps: float64(bytes) * 8.0 / 1000.0,
		Packets:  packets,
		Sinks:    s.spec.Sinks,
		Protocol: s.spec.Protocol,
		TxPower:  s.spec.TxPower,
	}
	if err := s.out.WriteSample(row); err != nil {
		if s.err == nil {
			s.err = err
		}
		log.Warnf("[Sampler] sample at t=%gs not written: %v", now, err)
	}
	s.rows++

	return now+s.spec.Interval < s.spec.Until
}

// Rows reports how many firings the sampler executed.
func (s *Sampler) Rows() int64 { return s.rows }

// Err reports the first writer failure seen during the run. Later rows are
// still attempted.
func (s *Sampler) Err() error { return s.err }
