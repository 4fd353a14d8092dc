package race

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-derby/internal/core"
)

// Roster is the ordered list of runners. IDs are stable handles handed
// out from a counter; a runner's index is its position in the list and
// shifts when earlier runners are removed.
//
// While locked (a run is in progress) every edit panics with
// ErrContractViolation.
type Roster struct {
	runners []Runner
	nextID  int
	locked  bool
	version uint64
}

// NewRoster returns a roster holding the given runners in order.
func NewRoster(runners ...Runner) *Roster {
	r := &Roster{nextID: 1}
	for _, rn := range runners {
		r.Add(rn)
	}
	return r
}

// Len returns the number of runners.
func (r *Roster) Len() int {
	return len(r.runners)
}

// Runners returns a copy of the runners in roster order.
func (r *Roster) Runners() []Runner {
	return append([]Runner(nil), r.runners...)
}

// At returns the runner at index i.
func (r *Roster) At(i int) Runner {
	if i < 0 || i >= len(r.runners) {
		violation("runner index %d out of range [0,%d)", i, len(r.runners))
	}
	return r.runners[i]
}

// Index returns the position of runner id, or -1.
func (r *Roster) Index(id int) int {
	for i, rn := range r.runners {
		if rn.ID == id {
			return i
		}
	}
	return -1
}

// Get returns runner id.
func (r *Roster) Get(id int) (Runner, error) {
	i := r.Index(id)
	if i < 0 {
		return Runner{}, fmt.Errorf("%w: %d", ErrUnknownRunner, id)
	}
	return r.runners[i], nil
}

// Add validates rn, assigns it the next ID when rn.ID is zero, appends it
// and returns the ID.
func (r *Roster) Add(rn Runner) int {
	r.mustEdit()
	rn.Agent() // validates
	if rn.Tint == "" {
		rn.Tint = DefaultTint
	}
	if rn.ID == 0 {
		rn.ID = r.nextID
	} else if r.Index(rn.ID) >= 0 {
		violation("duplicate runner id %d", rn.ID)
	}
	r.nextID = max(r.nextID, rn.ID+1)
	r.runners = append(r.runners, rn)
	r.version++
	return rn.ID
}

// Remove deletes runner id, keeping the order of the others.
func (r *Roster) Remove(id int) error {
	r.mustEdit()
	i := r.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownRunner, id)
	}
	r.runners = append(r.runners[:i], r.runners[i+1:]...)
	r.version++
	return nil
}

// SetName renames runner id.
func (r *Roster) SetName(id int, name string) error {
	return r.update(id, func(rn *Runner) { rn.Name = name })
}

// SetTint changes runner id's tint.
func (r *Roster) SetTint(id int, tint string) error {
	if _, err := core.ParseTint(tint); err != nil {
		return fmt.Errorf("race: runner %d: %w", id, err)
	}
	return r.update(id, func(rn *Runner) { rn.Tint = tint })
}

// SetSpeed changes runner id's nominal speed.
func (r *Roster) SetSpeed(id int, speed float64) error {
	return r.update(id, func(rn *Runner) { rn.Speed = speed })
}

// SetRadius changes runner id's radius.
func (r *Roster) SetRadius(id int, radius float64) error {
	return r.update(id, func(rn *Runner) { rn.Radius = radius })
}

// SetAngle changes runner id's start heading.
func (r *Roster) SetAngle(id int, angle float64) error {
	return r.update(id, func(rn *Runner) { rn.Angle = angle })
}

// Move changes runner id's start point.
func (r *Roster) Move(id int, start core.Vec2) error {
	return r.update(id, func(rn *Runner) { rn.Start = start })
}

func (r *Roster) update(id int, fn func(*Runner)) error {
	r.mustEdit()
	i := r.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownRunner, id)
	}
	rn := r.runners[i]
	fn(&rn)
	rn.Agent() // validates
	r.runners[i] = rn
	r.version++
	return nil
}

// Lock forbids edits until Unlock.
func (r *Roster) Lock() {
	r.locked = true
}

// Unlock allows edits again.
func (r *Roster) Unlock() {
	r.locked = false
}

// Locked reports whether edits are currently forbidden.
func (r *Roster) Locked() bool {
	return r.locked
}

// Version changes on every successful edit.
func (r *Roster) Version() uint64 {
	return r.version
}

// Initial returns the configured starting snapshot.
func (r *Roster) Initial() Snapshot {
	s := make(Snapshot, len(r.runners))
	for i, rn := range r.runners {
		s[i] = rn.Agent()
	}
	return s
}

func (r *Roster) mustEdit() {
	if r.locked {
		violation("roster edited during a run")
	}
}

// ValidateRunner checks a runner against the editor's input bounds:
// speed within [MinSpeed, MaxSpeed] and radius at least MinRadius.
// The engine itself accepts any positive values.
func ValidateRunner(rn Runner) error {
	switch {
	case !rn.Start.IsFinite():
		return fmt.Errorf("race: runner %q: start %v is not finite", rn.Label(), rn.Start)
	case math.IsNaN(rn.Angle) || math.IsInf(rn.Angle, 0):
		return fmt.Errorf("race: runner %q: angle is not finite", rn.Label())
	case rn.Speed < MinSpeed || rn.Speed > MaxSpeed:
		return fmt.Errorf("race: runner %q: speed %v outside [%v, %v]", rn.Label(), rn.Speed, MinSpeed, MaxSpeed)
	case rn.Radius < MinRadius || math.IsInf(rn.Radius, 0):
		return fmt.Errorf("race: runner %q: radius %v below %v", rn.Label(), rn.Radius, MinRadius)
	}
	if rn.Tint != "" {
		if _, err := core.ParseTint(rn.Tint); err != nil {
			return fmt.Errorf("race: runner %q: %w", rn.Label(), err)
		}
	}
	return nil
}
