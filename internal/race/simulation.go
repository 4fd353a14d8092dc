package race

// Simulation owns the live state of a race: an engine, the roster it was
// configured from and the current snapshot.
type Simulation struct {
	engine  *Engine
	roster  *Roster
	state   Snapshot
	steps   int
	version uint64
}

// NewSimulation returns a simulation reset to the roster's start.
func NewSimulation(engine *Engine, roster *Roster) *Simulation {
	if roster == nil {
		roster = NewRoster()
	}
	s := &Simulation{engine: engine, roster: roster}
	s.Reset()
	return s
}

// Engine returns the engine used for stepping.
func (s *Simulation) Engine() *Engine {
	return s.engine
}

// Roster returns the roster the simulation resets from.
func (s *Simulation) Roster() *Roster {
	return s.roster
}

// SetEngine swaps the engine, for example after the course changed, and
// resets. It panics while the roster is locked.
func (s *Simulation) SetEngine(e *Engine) {
	if s.roster.Locked() {
		violation("course changed during a run")
	}
	s.engine = e
	s.Reset()
}

// Reset puts every agent back at its configured start.
func (s *Simulation) Reset() {
	s.state = s.roster.Initial()
	s.steps = 0
	s.version = s.roster.Version()
}

// Steps returns the number of steps since the last reset.
func (s *Simulation) Steps() int {
	return s.steps
}

// State returns a copy of the current snapshot.
func (s *Simulation) State() Snapshot {
	s.sync()
	return s.state.Clone()
}

// Step advances one step and returns a copy of the new snapshot.
func (s *Simulation) Step() Snapshot {
	snap, _ := s.StepWithStats()
	return snap
}

// StepWithStats is Step with the step's event counters.
func (s *Simulation) StepWithStats() (Snapshot, Stats) {
	s.sync()
	next, st := s.engine.StepWithStats(s.state)
	s.state = next
	s.steps++
	return next.Clone(), st
}

// sync resets when the roster was edited since the last reset, so the
// snapshot always stays index-aligned with the roster.
func (s *Simulation) sync() {
	if s.version != s.roster.Version() {
		s.Reset()
	}
}
