// Package caterpillar implements the caterpillar game engine: a growing
// segmented actor on a fixed grid that eats food, speeds up, and ends the
// round on a wall or self collision (loss) or on reaching WinLength (win).
//
// The engine is pure logic. Drawing goes through a Renderer, score and
// outcome display through a Presenter, and time through a sched.Scheduler.
package caterpillar

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/sched"
)

// Fixed game constants.
const (
	GridSize     = 20
	CanvasSize   = 600
	CellSize     = CanvasSize / GridSize
	WinLength    = 15
	InitialSpeed = 150.0 // Tick interval in milliseconds
	SpeedDecay   = 0.95  // Interval multiplier per food eaten
	MinSpeed     = 50.0  // Interval floor in milliseconds
)

// Bounds is the playable area in grid cells.
var Bounds = core.NewRect(0, 0, GridSize, GridSize)

// Position is a grid cell.
type Position struct {
	X, Y int
}

// InBounds reports whether p lies on the grid.
func (p Position) InBounds() bool {
	return Bounds.Contains(p.X, p.Y)
}

// Step returns the neighbouring cell in direction d.
func (p Position) Step(d Direction) Position {
	switch d {
	case DirUp:
		return Position{X: p.X, Y: p.Y - 1}
	case DirDown:
		return Position{X: p.X, Y: p.Y + 1}
	case DirLeft:
		return Position{X: p.X - 1, Y: p.Y}
	default:
		return Position{X: p.X + 1, Y: p.Y}
	}
}

// Direction represents the caterpillar's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// directionFor maps a steering action to a direction.
func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// RoundState is the lifecycle state of the current round.
type RoundState string

const (
	StateNotStarted RoundState = "not_started"
	StateRunning    RoundState = "running"
	StateWon        RoundState = "won"
	StateLost       RoundState = "lost"
)

// Ended reports whether the round reached a terminal state.
func (s RoundState) Ended() bool {
	return s == StateWon || s == StateLost
}

// Renderer draws the current game state. Implementations must treat the
// snapshot as read-only input and must not call back into the engine.
type Renderer interface {
	Render(s Snapshot)
}

// Presenter displays the score and the end-of-round outcome.
type Presenter interface {
	UpdateScore(score, highScore int)
	ShowOutcome(won bool)
	HideOutcome()
}

// Options configures a new Engine. Nil collaborators are replaced by
// no-ops; a nil Scheduler is replaced by a sched.Manual.
type Options struct {
	Renderer  Renderer
	Presenter Presenter
	Scheduler sched.Scheduler
	Seed      int64
}

// Engine holds all mutable state of one game and implements its operations.
// It is not safe for concurrent use; frontends drive it from a single
// goroutine.
type Engine struct {
	renderer  Renderer
	presenter Presenter
	scheduler sched.Scheduler
	rng       *rand.Rand

	caterpillar []Position // Head at index 0
	food        Position
	direction   Direction
	state       RoundState
	score       int
	highScore   int
	speed       float64 // Tick interval in milliseconds
	tick        uint64

	cancelTick func() // Pending tick, nil when none is armed
}

// New creates an engine in the not_started state. It does not draw; call
// Reset to paint the initial frame.
func New(opts Options) *Engine {
	e := &Engine{
		renderer:  opts.Renderer,
		presenter: opts.Presenter,
		scheduler: opts.Scheduler,
		rng:       rand.New(rand.NewSource(opts.Seed)),
	}
	if e.renderer == nil {
		e.renderer = nopRenderer{}
	}
	if e.presenter == nil {
		e.presenter = nopPresenter{}
	}
	if e.scheduler == nil {
		e.scheduler = sched.NewManual()
	}
	e.resetState()
	return e
}

// resetState restores everything except the high score.
func (e *Engine) resetState() {
	e.caterpillar = []Position{
		{X: 10, Y: 10}, // Head
		{X: 9, Y: 10},
		{X: 8, Y: 10},
	}
	e.food = Position{X: 15, Y: 10}
	e.direction = DirRight
	e.speed = InitialSpeed
	e.score = 0
	e.tick = 0
	e.state = StateNotStarted
}

// Reset cancels any pending tick, restores the initial round state, hides
// the outcome and redraws the start prompt. The high score survives.
func (e *Engine) Reset() {
	e.cancelPending()
	e.resetState()
	e.presenter.HideOutcome()
	e.presenter.UpdateScore(e.score, e.highScore)
	e.renderer.Render(e.Snapshot())
}

// Start begins the round and arms the first tick. Ignored unless the round
// has not started yet.
func (e *Engine) Start() {
	if e.state != StateNotStarted {
		return
	}
	e.state = StateRunning
	e.renderer.Render(e.Snapshot())
	e.schedule()
}

// SetDirection steers the caterpillar. Requests are ignored while the round
// is not running and when d reverses the current direction.
func (e *Engine) SetDirection(d Direction) {
	if e.state != StateRunning {
		return
	}
	if d == e.direction.Opposite() {
		return
	}
	e.direction = d
}

// HandleAction applies one input event. The restart control resets the
// game. Before the round starts any other key starts it and is consumed.
// While running only the four directions have an effect.
func (e *Engine) HandleAction(a core.Action) {
	switch {
	case a == core.ActionRestart:
		e.Reset()
		return
	case a.IsFrontend():
		return
	case e.state == StateNotStarted:
		e.Start()
		return
	}

	if d, ok := directionFor(a); ok {
		e.SetDirection(d)
	}
}

// Tick advances the caterpillar by one cell. It is normally invoked by the
// scheduler; calls while the round is not running are ignored.
func (e *Engine) Tick() {
	if e.state != StateRunning {
		return
	}
	e.cancelPending()
	e.tick++

	head := e.caterpillar[0].Step(e.direction)

	// The cell the tail is about to leave still counts as occupied, the
	// current head does not.
	if !head.InBounds() || e.occupies(e.caterpillar[1:], head) {
		e.endRound(false)
		return
	}

	e.caterpillar = append([]Position{head}, e.caterpillar...)

	if head == e.food {
		e.score++
		if len(e.caterpillar) >= WinLength {
			e.endRound(true)
			return
		}
		e.placeFood()
		e.speed = math.Max(e.speed*SpeedDecay, MinSpeed)
	} else {
		e.caterpillar = e.caterpillar[:len(e.caterpillar)-1]
	}

	e.presenter.UpdateScore(e.score, e.highScore)
	e.renderer.Render(e.Snapshot())
	e.schedule()
}

// endRound moves the round into its terminal state.
func (e *Engine) endRound(won bool) {
	e.cancelPending()
	if won {
		e.state = StateWon
	} else {
		e.state = StateLost
	}
	if e.score > e.highScore {
		e.highScore = e.score
	}
	e.presenter.UpdateScore(e.score, e.highScore)
	e.presenter.ShowOutcome(won)
	e.renderer.Render(e.Snapshot())
}

// placeFood picks a uniformly random free cell by rejection sampling.
// The caterpillar never covers more than WinLength cells, far below the
// grid capacity, so the loop terminates quickly.
func (e *Engine) placeFood() {
	for {
		p := Position{X: e.rng.Intn(GridSize), Y: e.rng.Intn(GridSize)}
		if !e.occupies(e.caterpillar, p) {
			e.food = p
			return
		}
	}
}

// occupies reports whether any of segments is at p.
func (e *Engine) occupies(segments []Position, p Position) bool {
	for _, seg := range segments {
		if seg == p {
			return true
		}
	}
	return false
}

// schedule arms the next tick at the current speed.
func (e *Engine) schedule() {
	e.cancelPending()
	e.cancelTick = e.scheduler.After(e.Interval(), e.Tick)
}

func (e *Engine) cancelPending() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
}

// State returns the current round state.
func (e *Engine) State() RoundState {
	return e.state
}

// Score returns the score of the current round.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best score seen by this engine.
func (e *Engine) HighScore() int {
	return e.highScore
}

// Direction returns the current movement direction.
func (e *Engine) Direction() Direction {
	return e.direction
}

// Interval returns the current tick interval.
func (e *Engine) Interval() time.Duration {
	return time.Duration(e.speed * float64(time.Millisecond))
}

// SpeedMS returns the current tick interval in milliseconds.
func (e *Engine) SpeedMS() float64 {
	return e.speed
}

// Length returns the number of caterpillar segments.
func (e *Engine) Length() int {
	return len(e.caterpillar)
}

type nopRenderer struct{}

func (nopRenderer) Render(Snapshot) {}

type nopPresenter struct{}

func (nopPresenter) UpdateScore(int, int) {}
func (nopPresenter) ShowOutcome(bool)     {}
func (nopPresenter) HideOutcome()         {}
