package adhoc

import "github.com/iti/rngstream"

// Burst chain transition probabilities, per packet. Good links occasionally
// fall into a bad stretch where most packets die, the way a broken route
// behaves while the protocol repairs it.
const (
	pGoodToBad = 0.02
	pBadToGood = 0.25
)

type burstChain struct {
	bad bool
	rng *rngstream.RngStream
}

func newBurstChain(name string) *burstChain {
	return &burstChain{rng: rngstream.New(name)}
}

// step advances the chain by one packet and reports whether that packet sees
// the bad state.
func (c *burstChain) step() bool {
	if !c.bad {
		if c.rng.RandU01() < pGoodToBad {
			c.bad = true
		}
	} else {
		if c.rng.RandU01() < pBadToGood {
			c.bad = false
		}
	}
	return c.bad
}
