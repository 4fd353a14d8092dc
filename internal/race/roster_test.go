package race

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/vovakirdan/tui-derby/internal/core"
)

// expectViolation fails the test unless fn panics with ErrContractViolation.
func expectViolation(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrContractViolation) {
			t.Errorf("expected ErrContractViolation panic, got %v", r)
		}
	}()
	fn()
}

func TestRosterIDs(t *testing.T) {
	r := NewRoster()
	ids := make([]int, 3)
	for i := range ids {
		ids[i] = r.Add(NewRunner(fmt.Sprintf("r%d", i), core.V(50, 50), 0))
	}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("IDs = %v, expected [1 2 3]", ids)
	}

	if err := r.Remove(2); err != nil {
		t.Fatalf("Remove(2) failed: %v", err)
	}
	if got := r.Index(3); got != 1 {
		t.Errorf("Index(3) after removal = %d, expected 1", got)
	}
	if got := r.Index(2); got != -1 {
		t.Errorf("Index(2) after removal = %d, expected -1", got)
	}
	if id := r.Add(NewRunner("late", core.V(50, 50), 0)); id != 4 {
		t.Errorf("ID after removal = %d, expected 4 (IDs are never reused)", id)
	}

	if err := r.Remove(2); !errors.Is(err, ErrUnknownRunner) {
		t.Errorf("Remove(2) twice = %v, expected ErrUnknownRunner", err)
	}
	if _, err := r.Get(99); !errors.Is(err, ErrUnknownRunner) {
		t.Errorf("Get(99) = %v, expected ErrUnknownRunner", err)
	}
}

func TestRosterKeepsExplicitIDs(t *testing.T) {
	rn := NewRunner("fixed", core.V(10, 10), 0)
	rn.ID = 7
	r := NewRoster(rn)

	if id := r.Add(NewRunner("next", core.V(10, 10), 0)); id != 8 {
		t.Errorf("ID after explicit 7 = %d, expected 8", id)
	}
	expectViolation(t, func() { r.Add(rn) })
}

func TestRosterUpdates(t *testing.T) {
	r := NewRoster()
	id := r.Add(NewRunner("", core.V(100, 100), 0))

	if err := r.SetSpeed(id, 5); err != nil {
		t.Fatalf("SetSpeed failed: %v", err)
	}
	if err := r.SetRadius(id, 20); err != nil {
		t.Fatalf("SetRadius failed: %v", err)
	}
	if err := r.SetName(id, "Comet"); err != nil {
		t.Fatalf("SetName failed: %v", err)
	}
	if err := r.SetTint(id, "rgba(255,0,0,1)"); err != nil {
		t.Fatalf("SetTint failed: %v", err)
	}
	if err := r.Move(id, core.V(40, 60)); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := r.SetAngle(id, math.Pi/2); err != nil {
		t.Fatalf("SetAngle failed: %v", err)
	}

	got, _ := r.Get(id)
	if got.Speed != 5 || got.Radius != 20 || got.Name != "Comet" || got.Start != core.V(40, 60) {
		t.Errorf("runner after updates = %+v", got)
	}

	if err := r.SetTint(id, "chartreuse"); err == nil {
		t.Error("SetTint with an invalid tint should fail")
	}
	if err := r.SetSpeed(42, 3); !errors.Is(err, ErrUnknownRunner) {
		t.Errorf("SetSpeed on unknown id = %v, expected ErrUnknownRunner", err)
	}

	initial := r.Initial()
	if initial[0].Pos != core.V(40, 60) || math.Abs(initial[0].Vel.Y-5) > 1e-12 {
		t.Errorf("Initial() = %+v, expected start (40,60) heading down at 5", initial[0])
	}
}

func TestRosterContractViolations(t *testing.T) {
	tests := []struct {
		name string
		fn   func(r *Roster)
	}{
		{"negative radius", func(r *Roster) {
			rn := NewRunner("", core.V(0, 0), 0)
			rn.Radius = -1
			r.Add(rn)
		}},
		{"negative speed update", func(r *Roster) { r.SetSpeed(1, -2) }},
		{"NaN start", func(r *Roster) { r.Add(NewRunner("", core.V(math.NaN(), 0), 0)) }},
		{"edit while locked", func(r *Roster) {
			r.Lock()
			r.Add(NewRunner("", core.V(0, 0), 0))
		}},
		{"remove while locked", func(r *Roster) {
			r.Lock()
			r.Remove(1)
		}},
		{"index out of range", func(r *Roster) { r.At(5) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRoster(NewRunner("a", core.V(50, 50), 0))
			expectViolation(t, func() { tc.fn(r) })
		})
	}
}

func TestRosterUnlock(t *testing.T) {
	r := NewRoster()
	r.Lock()
	r.Unlock()
	if r.Locked() {
		t.Fatal("Unlock should clear the lock")
	}
	r.Add(NewRunner("ok", core.V(10, 10), 0))
	if r.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", r.Len())
	}
}

func TestValidateRunner(t *testing.T) {
	base := NewRunner("x", core.V(10, 10), 0)

	tests := []struct {
		name    string
		mutate  func(*Runner)
		wantErr bool
	}{
		{"defaults", func(*Runner) {}, false},
		{"speed too low", func(r *Runner) { r.Speed = 0.5 }, true},
		{"speed too high", func(r *Runner) { r.Speed = 11 }, true},
		{"radius below one", func(r *Runner) { r.Radius = 0.5 }, true},
		{"bad tint", func(r *Runner) { r.Tint = "#12" }, true},
		{"infinite angle", func(r *Runner) { r.Angle = math.Inf(1) }, true},
		{"max speed", func(r *Runner) { r.Speed = MaxSpeed }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rn := base
			tc.mutate(&rn)
			err := ValidateRunner(rn)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateRunner() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunnerLabel(t *testing.T) {
	rn := Runner{ID: 12}
	if got := rn.Label(); got != "#12" {
		t.Errorf("Label() = %q, expected #12", got)
	}
	rn.Name = "Dash"
	if got := rn.Label(); got != "Dash" {
		t.Errorf("Label() = %q, expected Dash", got)
	}
}
