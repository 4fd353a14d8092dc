package race

import "sort"

// Standing is one runner's place in the race.
type Standing struct {
	Index    int
	Distance float64
	Rank     int
}

// Odometer accumulates the path length each agent has covered.
type Odometer struct {
	prev Snapshot
	dist []float64
}

// Reset forgets all distances and starts measuring from s.
func (o *Odometer) Reset(s Snapshot) {
	o.prev = s.Clone()
	o.dist = make([]float64, len(s))
}

// Observe adds the displacement from the last observed snapshot. A
// snapshot of a different size restarts the measurement.
func (o *Odometer) Observe(s Snapshot) {
	if len(s) != len(o.prev) {
		o.Reset(s)
		return
	}
	for i := range s {
		o.dist[i] += s[i].Pos.Dist(o.prev[i].Pos)
	}
	o.prev = s.Clone()
}

// Distances returns the accumulated path lengths by roster index.
func (o *Odometer) Distances() []float64 {
	return append([]float64(nil), o.dist...)
}

// Standings ranks agents by distance covered, furthest first. Ties keep
// roster order and share a rank.
func (o *Odometer) Standings() []Standing {
	out := make([]Standing, len(o.dist))
	for i, d := range o.dist {
		out[i] = Standing{Index: i, Distance: d}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance > out[j].Distance
	})
	for i := range out {
		if i > 0 && out[i].Distance == out[i-1].Distance {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}
