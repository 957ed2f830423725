package world

import "fmt"

// Reduce folds one event into w and returns the next snapshot. It is a pure
// function; ev must already have passed ValidateEvent.
//
// While the game is over only Reset has any effect.
func Reduce(w World, ev Event) World {
	if _, ok := ev.(Reset); !ok && w.GameOver {
		return w
	}

	switch e := ev.(type) {
	case Move:
		w.Player.Position = w.Player.Position.Add(e.Delta)
		return w
	case Score:
		w.Score += e.Amount
		return w
	case Reset:
		fresh := NewWorld()
		fresh.HighScore = max(w.Score, w.HighScore)
		return fresh
	case Tick:
		return tick(w, e.Elapsed)
	default:
		panic(fmt.Sprintf("world: unhandled event %T", ev))
	}
}

// tick moves everything that moves, then resolves collisions.
func tick(w World, elapsed float64) World {
	w.Player = Advance(w.Player)
	w.Cars = mapEntities(w.Cars, Advance)
	w.Trucks = mapEntities(w.Trucks, Advance)
	w.Logs = mapEntities(w.Logs, Advance)
	w.Fish = mapEntities(w.Fish, Advance)
	w.ElapsedTime = elapsed
	return resolve(w, Classify(w))
}
