package race

import "math"

// Snapshot is the state of every agent at one step, index-aligned with
// the roster.
type Snapshot []Agent

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return append(Snapshot(nil), s...)
}

// Equal reports whether both snapshots hold bit-identical agents.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if agentBits(s[i]) != agentBits(o[i]) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the exact bit patterns of every agent, for
// determinism checks.
func (s Snapshot) Hash() uint64 {
	h := uint64(len(s))
	for _, a := range s {
		for _, v := range agentBits(a) {
			h = h*31 + v
		}
	}
	return h
}

func agentBits(a Agent) [6]uint64 {
	return [6]uint64{
		math.Float64bits(a.Pos.X),
		math.Float64bits(a.Pos.Y),
		math.Float64bits(a.Vel.X),
		math.Float64bits(a.Vel.Y),
		math.Float64bits(a.Radius),
		math.Float64bits(a.Speed),
	}
}
