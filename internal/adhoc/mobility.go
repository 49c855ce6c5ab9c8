// Package adhoc models the mobile ad hoc network under test: node mobility,
// a per-packet path delivery model parameterized by routing protocol, CBR
// traffic between source/sink pairs, and per-flow statistics collection.
// Routing algorithms themselves are out of scope; protocols enter the model
// only as delivery profiles.
package adhoc

import (
	"math"

	"github.com/iti/rngstream"
)

// Field dimensions of the simulation area in meters.
const (
	FieldX = 300.0
	FieldY = 1500.0
)

type Position struct {
	X, Y float64
}

func dist(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

type leg struct {
	from, to Position
	speed    float64
	start    float64
	end      float64
}

// Mobility precomputes a random waypoint trajectory per node: a uniform
// starting position, waypoints drawn over the full field, speed uniform in
// [0, max], zero pause time.
type Mobility struct {
	legs [][]leg
}

func NewMobility(nodes int, maxSpeed, duration float64) *Mobility {
	rng := rngstream.New("mobility")
	m := &Mobility{legs: make([][]leg, nodes)}
	for i := range m.legs {
		m.legs[i] = walk(maxSpeed, duration, rng)
	}
	return m
}

func walk(maxSpeed, duration float64, rng *rngstream.RngStream) []leg {
	pos := Position{X: rng.RandU01() * FieldX, Y: rng.RandU01() * FieldY}
	if maxSpeed <= 0 {
		return []leg{{from: pos, to: pos, start: 0, end: duration}}
	}

	var legs []leg
	t := 0.0
	for t < duration {
		next := Position{X: rng.RandU01() * FieldX, Y: rng.RandU01() * FieldY}
		d := dist(pos, next)
		if d < 1e-9 {
			continue
		}
		speed := rng.RandU01() * maxSpeed
		if speed < 1e-9 {
			// a near-zero draw parks the node for the rest of the run
			legs = append(legs, leg{from: pos, to: pos, start: t, end: duration})
			return legs
		}
		end := t + d/speed
		legs = append(legs, leg{from: pos, to: next, speed: speed, start: t, end: end})
		pos = next
		t = end
	}
	return legs
}

func (m *Mobility) Nodes() int { return len(m.legs) }

// PositionAt returns the node's position at simulation time t, interpolating
// along the current leg.
func (m *Mobility) PositionAt(node int, t float64) Position {
	legs := m.legs[node]
	last := legs[len(legs)-1]
	if t >= last.end {
		return last.to
	}
	for _, l := range legs {
		if t < l.end {
			if l.end <= l.start {
				return l.from
			}
			p := (t - l.start) / (l.end - l.start)
			return Position{
				X: l.from.X + (l.to.X-l.from.X)*p,
				Y: l.from.Y + (l.to.Y-l.from.Y)*p,
			}
		}
	}
	return last.to
}

// SpeedAt returns the node's speed at simulation time t.
func (m *Mobility) SpeedAt(node int, t float64) float64 {
	legs := m.legs[node]
	for _, l := range legs {
		if t < l.end {
			return l.speed
		}
	}
	return 0
}

// Distance returns the separation of two nodes at simulation time t.
func (m *Mobility) Distance(a, b int, t float64) float64 {
	return dist(m.PositionAt(a, t), m.PositionAt(b, t))
}
