package world

// Engine holds the current snapshot and folds events into it one at a time.
// It is not safe for concurrent use; callers serialise Apply.
type Engine struct {
	current World
	subs    []func(World)
}

// NewEngine returns an engine positioned at a fresh game.
func NewEngine() *Engine {
	return NewEngineFrom(NewWorld())
}

// NewEngineFrom returns an engine starting at w.
func NewEngineFrom(w World) *Engine {
	return &Engine{current: w}
}

// Apply validates ev, reduces it into the current snapshot and notifies
// subscribers. A rejected event leaves the engine unchanged and notifies
// nobody.
func (e *Engine) Apply(ev Event) (World, error) {
	if err := ValidateEvent(ev); err != nil {
		return e.current, err
	}
	e.current = Reduce(e.current, ev)
	for _, fn := range e.subs {
		fn(e.current)
	}
	return e.current, nil
}

// Snapshot returns the current world.
func (e *Engine) Snapshot() World {
	return e.current
}

// Subscribe registers fn to be called with every new snapshot, in
// registration order.
func (e *Engine) Subscribe(fn func(World)) {
	e.subs = append(e.subs, fn)
}
