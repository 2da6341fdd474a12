package caterpillar

// Snapshot captures the complete game state for renderers, determinism
// testing and round bookkeeping. It shares no memory with the engine.
type Snapshot struct {
	Tick        uint64
	State       RoundState
	Score       int
	HighScore   int
	Caterpillar []Position // Head at index 0
	Food        Position
	Dir         Direction
	SpeedMS     float64
}

// Head returns the head position.
func (s Snapshot) Head() Position {
	if len(s.Caterpillar) == 0 {
		return Position{}
	}
	return s.Caterpillar[0]
}

// Length returns the number of segments.
func (s Snapshot) Length() int {
	return len(s.Caterpillar)
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() Snapshot {
	segments := make([]Position, len(e.caterpillar))
	copy(segments, e.caterpillar)

	return Snapshot{
		Tick:        e.tick,
		State:       e.state,
		Score:       e.score,
		HighScore:   e.highScore,
		Caterpillar: segments,
		Food:        e.food,
		Dir:         e.direction,
		SpeedMS:     e.speed,
	}
}
