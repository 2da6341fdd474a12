package caterpillar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/sched"
)

type recordingRenderer struct {
	frames []Snapshot
}

func (r *recordingRenderer) Render(s Snapshot) {
	r.frames = append(r.frames, s)
}

func (r *recordingRenderer) last() Snapshot {
	return r.frames[len(r.frames)-1]
}

type recordingPresenter struct {
	score, highScore int
	outcomes         []bool
	hidden           int
	visible          bool
}

func (p *recordingPresenter) UpdateScore(score, highScore int) {
	p.score = score
	p.highScore = highScore
}

func (p *recordingPresenter) ShowOutcome(won bool) {
	p.outcomes = append(p.outcomes, won)
	p.visible = true
}

func (p *recordingPresenter) HideOutcome() {
	p.hidden++
	p.visible = false
}

func newTestEngine(seed int64) (*Engine, *sched.Manual, *recordingRenderer, *recordingPresenter) {
	clock := sched.NewManual()
	r := &recordingRenderer{}
	p := &recordingPresenter{}
	e := New(Options{
		Renderer:  r,
		Presenter: p,
		Scheduler: clock,
		Seed:      seed,
	})
	e.Reset()
	return e, clock, r, p
}

func TestInitialState(t *testing.T) {
	e, clock, r, p := newTestEngine(1)

	if e.State() != StateNotStarted {
		t.Errorf("Initial state = %s, expected not_started", e.State())
	}
	expected := []Position{{10, 10}, {9, 10}, {8, 10}}
	for i, seg := range e.caterpillar {
		if seg != expected[i] {
			t.Errorf("Segment %d = %v, expected %v", i, seg, expected[i])
		}
	}
	if e.food != (Position{X: 15, Y: 10}) {
		t.Errorf("Initial food = %v, expected (15,10)", e.food)
	}
	if e.Direction() != DirRight {
		t.Errorf("Initial direction = %v, expected right", e.Direction())
	}
	if e.Interval() != 150*time.Millisecond {
		t.Errorf("Initial interval = %v, expected 150ms", e.Interval())
	}
	if clock.Pending() != 0 {
		t.Error("No tick should be armed before start")
	}
	if len(r.frames) != 1 || r.last().State != StateNotStarted {
		t.Error("Reset should render the start prompt frame once")
	}
	if p.hidden != 1 {
		t.Error("Reset should hide the outcome overlay")
	}
}

func TestStartArmsFirstTick(t *testing.T) {
	e, clock, _, _ := newTestEngine(1)

	e.Start()
	if e.State() != StateRunning {
		t.Fatalf("State after Start = %s, expected running", e.State())
	}
	next, ok := clock.Next()
	if !ok || next != 150*time.Millisecond {
		t.Errorf("First tick armed at (%v, %v), expected (150ms, true)", next, ok)
	}

	// Duplicate start requests are ignored
	e.Start()
	if clock.Pending() != 1 {
		t.Errorf("Duplicate Start armed extra ticks: pending = %d", clock.Pending())
	}
}

func TestEatFoodScenario(t *testing.T) {
	e, clock, _, p := newTestEngine(7)
	e.Start()

	for i := 0; i < 5; i++ {
		if !clock.FireNext() {
			t.Fatalf("Tick %d was not armed", i+1)
		}
	}

	if head := e.caterpillar[0]; head != (Position{X: 15, Y: 10}) {
		t.Errorf("Head after 5 ticks = %v, expected (15,10)", head)
	}
	if e.Score() != 1 || p.score != 1 {
		t.Errorf("Score = %d (presented %d), expected 1", e.Score(), p.score)
	}
	if e.Length() != 4 {
		t.Errorf("Length = %d, expected 4", e.Length())
	}
	if e.SpeedMS() != 150*0.95 {
		t.Errorf("Speed = %v, expected 142.5", e.SpeedMS())
	}
	if e.food == (Position{X: 15, Y: 10}) {
		t.Error("New food should be placed elsewhere")
	}
	if e.occupies(e.caterpillar, e.food) {
		t.Errorf("New food %v placed on the caterpillar", e.food)
	}
	next, ok := clock.Next()
	if !ok || next != 142500*time.Microsecond {
		t.Errorf("Next tick armed at (%v, %v), expected 142.5ms", next, ok)
	}
	if e.State() != StateRunning {
		t.Errorf("State = %s, expected running", e.State())
	}
}

func TestOppositeDirectionIgnored(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		e, _, _, _ := newTestEngine(1)
		e.Start()
		e.direction = d

		e.SetDirection(d.Opposite())
		if e.Direction() != d {
			t.Errorf("Reversal from %v to %v should be ignored, got %v", d, d.Opposite(), e.Direction())
		}
	}
}

func TestSetDirectionIgnoredWhenNotRunning(t *testing.T) {
	e, _, _, _ := newTestEngine(1)

	e.SetDirection(DirUp)
	if e.Direction() != DirRight {
		t.Error("Direction changes before start should be ignored")
	}

	e.Start()
	e.endRound(false)
	e.SetDirection(DirUp)
	if e.Direction() != DirRight {
		t.Error("Direction changes after the round ended should be ignored")
	}
}

func TestTurnUpThenTick(t *testing.T) {
	e, clock, _, _ := newTestEngine(1)
	e.Start()

	e.SetDirection(DirUp)
	clock.FireNext()

	if head := e.caterpillar[0]; head != (Position{X: 10, Y: 9}) {
		t.Errorf("Head = %v, expected (10,9)", head)
	}
}

func TestWallCollisionFromOrigin(t *testing.T) {
	e, clock, r, p := newTestEngine(1)
	e.Start()
	e.caterpillar = []Position{{0, 0}, {1, 0}, {2, 0}}
	e.direction = DirLeft

	clock.FireNext()

	if e.State() != StateLost {
		t.Fatalf("State = %s, expected lost", e.State())
	}
	if e.caterpillar[0] != (Position{X: 0, Y: 0}) || e.Length() != 3 {
		t.Errorf("Caterpillar mutated on collision: %v", e.caterpillar)
	}
	if clock.Pending() != 0 {
		t.Error("No tick should be armed after a loss")
	}
	if len(p.outcomes) != 1 || p.outcomes[0] {
		t.Errorf("Presenter outcomes = %v, expected [false]", p.outcomes)
	}
	if r.last().State != StateLost {
		t.Error("Final frame should show the lost state")
	}
}

func TestWallCollisionAllEdges(t *testing.T) {
	tests := []struct {
		name string
		body []Position
		dir  Direction
	}{
		{"left", []Position{{0, 5}, {1, 5}, {2, 5}}, DirLeft},
		{"right", []Position{{19, 5}, {18, 5}, {17, 5}}, DirRight},
		{"top", []Position{{5, 0}, {5, 1}, {5, 2}}, DirUp},
		{"bottom", []Position{{5, 19}, {5, 18}, {5, 17}}, DirDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _, _ := newTestEngine(1)
			e.Start()
			e.caterpillar = append([]Position(nil), tt.body...)
			e.direction = tt.dir

			e.Tick()

			if e.State() != StateLost {
				t.Errorf("State = %s, expected lost", e.State())
			}
			for i, seg := range e.caterpillar {
				if seg != tt.body[i] {
					t.Errorf("Segment %d changed to %v", i, seg)
				}
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	e, _, _, _ := newTestEngine(1)
	e.Start()
	e.caterpillar = []Position{
		{5, 5}, // Head
		{5, 6},
		{6, 6},
		{6, 5},
		{6, 4},
	}
	e.direction = DirRight

	// (6,5) is a body segment
	e.Tick()

	if e.State() != StateLost {
		t.Errorf("State = %s, expected lost after self collision", e.State())
	}
}

func TestTailCellCountsAsOccupied(t *testing.T) {
	e, _, _, _ := newTestEngine(1)
	e.Start()
	e.caterpillar = []Position{
		{5, 5}, // Head, arrived moving left
		{6, 5},
		{6, 6},
		{5, 6}, // Tail
	}
	e.direction = DirLeft
	e.SetDirection(DirDown)

	e.Tick()

	if e.State() != StateLost {
		t.Errorf("Moving into the tail cell should lose, state = %s", e.State())
	}
}

func TestWinOnReachingWinLength(t *testing.T) {
	e, clock, _, p := newTestEngine(1)
	e.Start()

	body := make([]Position, 0, WinLength-1)
	for i := 0; i < WinLength-1; i++ {
		body = append(body, Position{X: 16 - i, Y: 3})
	}
	e.caterpillar = body
	e.food = Position{X: 17, Y: 3}
	e.score = WinLength - 4
	speedBefore := e.SpeedMS()

	e.Tick()

	if e.State() != StateWon {
		t.Fatalf("State = %s, expected won", e.State())
	}
	if e.Length() != WinLength {
		t.Errorf("Length = %d, expected %d", e.Length(), WinLength)
	}
	if e.food != (Position{X: 17, Y: 3}) {
		t.Errorf("No new food should be placed on win, food = %v", e.food)
	}
	if e.SpeedMS() != speedBefore {
		t.Error("Speed should not change on the winning bite")
	}
	if e.HighScore() != WinLength-3 {
		t.Errorf("HighScore = %d, expected %d", e.HighScore(), WinLength-3)
	}
	if len(p.outcomes) != 1 || !p.outcomes[0] {
		t.Errorf("Presenter outcomes = %v, expected [true]", p.outcomes)
	}
	if clock.Pending() != 0 {
		t.Error("No tick should be armed after a win")
	}
}

func TestHighScoreIsMaximum(t *testing.T) {
	e, _, _, p := newTestEngine(1)

	e.Start()
	e.score = 7
	e.endRound(false)
	if e.HighScore() != 7 || p.highScore != 7 {
		t.Fatalf("HighScore = %d (presented %d), expected 7", e.HighScore(), p.highScore)
	}

	e.Reset()
	if e.HighScore() != 7 {
		t.Errorf("Reset should keep the high score, got %d", e.HighScore())
	}

	e.Start()
	e.score = 3
	e.endRound(true)
	if e.HighScore() != 7 {
		t.Errorf("A lower score should not replace the high score, got %d", e.HighScore())
	}
}

func TestResetAfterLoss(t *testing.T) {
	e, clock, r, p := newTestEngine(3)
	e.Start()
	for i := 0; i < 5; i++ {
		clock.FireNext()
	}
	e.caterpillar[0] = Position{X: 19, Y: 0}
	e.direction = DirUp
	clock.FireNext()
	if e.State() != StateLost {
		t.Fatalf("Setup failed, state = %s", e.State())
	}
	high := e.HighScore()

	e.Reset()

	if e.State() != StateNotStarted {
		t.Errorf("State = %s, expected not_started", e.State())
	}
	if e.Length() != 3 || e.caterpillar[0] != (Position{X: 10, Y: 10}) {
		t.Errorf("Caterpillar not restored: %v", e.caterpillar)
	}
	if e.Score() != 0 || p.score != 0 {
		t.Errorf("Score = %d (presented %d), expected 0", e.Score(), p.score)
	}
	if e.SpeedMS() != InitialSpeed {
		t.Errorf("Speed = %v, expected %v", e.SpeedMS(), InitialSpeed)
	}
	if e.HighScore() != high || high != 1 {
		t.Errorf("HighScore = %d, expected preserved value 1", e.HighScore())
	}
	if p.visible {
		t.Error("Reset should hide the outcome overlay")
	}
	if r.last().State != StateNotStarted {
		t.Error("Reset should redraw the start prompt")
	}
}

func TestResetCancelsPendingTick(t *testing.T) {
	e, clock, _, _ := newTestEngine(1)
	e.Start()
	clock.FireNext()

	e.Reset()

	if clock.Pending() != 0 {
		t.Errorf("Reset left %d ticks armed", clock.Pending())
	}
	if clock.FireNext() {
		t.Error("A stale tick fired after reset")
	}

	// A tick delivered outside a running round is ignored
	e.Tick()
	if e.caterpillar[0] != (Position{X: 10, Y: 10}) {
		t.Error("Tick while not running moved the caterpillar")
	}

	e.Reset() // idempotent
	if e.State() != StateNotStarted || clock.Pending() != 0 {
		t.Error("Second Reset should leave the same state")
	}
}

func TestSpeedFloor(t *testing.T) {
	e, _, _, _ := newTestEngine(1)
	e.Start()
	e.speed = 52
	e.food = e.caterpillar[0].Step(DirRight)

	e.Tick()

	if e.SpeedMS() != MinSpeed {
		t.Errorf("Speed = %v, expected floor %v", e.SpeedMS(), MinSpeed)
	}
	if e.Interval() != 50*time.Millisecond {
		t.Errorf("Interval = %v, expected 50ms", e.Interval())
	}
}

func TestFoodNeverOnCaterpillar(t *testing.T) {
	e, _, _, _ := newTestEngine(99)

	// Fill most of one row and column so rejection sampling is exercised
	e.caterpillar = e.caterpillar[:0]
	for x := 0; x < GridSize; x++ {
		e.caterpillar = append(e.caterpillar, Position{X: x, Y: 0})
	}
	for y := 1; y < GridSize; y++ {
		e.caterpillar = append(e.caterpillar, Position{X: 0, Y: y})
	}

	for i := 0; i < 500; i++ {
		e.placeFood()
		if !e.food.InBounds() {
			t.Fatalf("Food placed out of bounds at %v", e.food)
		}
		if e.occupies(e.caterpillar, e.food) {
			t.Fatalf("Food placed on caterpillar at %v", e.food)
		}
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e, clock, _, _ := newTestEngine(seed)
		input := rand.New(rand.NewSource(seed * 31))
		actions := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

		e.HandleAction(core.ActionNone)
		prevLen := e.Length()

		for i := 0; i < 5000 && e.State() == StateRunning; i++ {
			if input.Intn(3) == 0 {
				e.HandleAction(actions[input.Intn(len(actions))])
			}
			clock.FireNext()

			if e.Length() < prevLen {
				t.Fatalf("seed %d: length decreased from %d to %d", seed, prevLen, e.Length())
			}
			prevLen = e.Length()
			if e.State() == StateRunning && e.occupies(e.caterpillar, e.food) {
				t.Fatalf("seed %d: food %v inside caterpillar", seed, e.food)
			}
			if e.State() == StateRunning && clock.Pending() != 1 {
				t.Fatalf("seed %d: %d ticks armed, expected exactly 1", seed, clock.Pending())
			}
		}

		if !e.State().Ended() {
			continue
		}
		if clock.Pending() != 0 {
			t.Errorf("seed %d: ticks armed after round ended", seed)
		}
		if e.HighScore() != e.Score() {
			t.Errorf("seed %d: high score %d, expected %d", seed, e.HighScore(), e.Score())
		}
	}
}

func TestHandleAction(t *testing.T) {
	e, clock, _, _ := newTestEngine(1)

	// First key starts the round and is not treated as a direction
	e.HandleAction(core.ActionUp)
	if e.State() != StateRunning {
		t.Fatalf("State = %s, expected running", e.State())
	}
	if e.Direction() != DirRight {
		t.Errorf("Starting key changed direction to %v", e.Direction())
	}

	e.HandleAction(core.ActionDown)
	if e.Direction() != DirDown {
		t.Errorf("Direction = %v, expected down", e.Direction())
	}

	// Frontend-only and unmapped actions are ignored while running
	e.HandleAction(core.ActionQuit)
	e.HandleAction(core.ActionNone)
	if e.State() != StateRunning || e.Direction() != DirDown {
		t.Error("Ignored actions changed the game")
	}

	e.HandleAction(core.ActionRestart)
	if e.State() != StateNotStarted || clock.Pending() != 0 {
		t.Error("Restart should reset the round")
	}

	// Quit never starts a round
	e.HandleAction(core.ActionQuit)
	if e.State() != StateNotStarted {
		t.Error("Quit should not start the round")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e, clock, _, _ := newTestEngine(12345)
		e.HandleAction(core.ActionNone)
		for i := 0; i < 60 && e.State() == StateRunning; i++ {
			switch i {
			case 4:
				e.HandleAction(core.ActionDown)
			case 9:
				e.HandleAction(core.ActionLeft)
			case 14:
				e.HandleAction(core.ActionUp)
			}
			clock.FireNext()
		}
		return e.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.State != s2.State {
		t.Errorf("Snapshots differ: %+v vs %+v", s1, s2)
	}
	if s1.Head() != s2.Head() || s1.Food != s2.Food {
		t.Errorf("Positions differ: head %v/%v food %v/%v", s1.Head(), s2.Head(), s1.Food, s2.Food)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e, _, _, _ := newTestEngine(1)
	s := e.Snapshot()
	s.Caterpillar[0] = Position{X: 0, Y: 0}

	if e.caterpillar[0] != (Position{X: 10, Y: 10}) {
		t.Error("Mutating a snapshot changed the engine")
	}
	if s.Length() != 3 || s.SpeedMS != InitialSpeed {
		t.Errorf("Unexpected snapshot %+v", s)
	}
}

func TestNewWithoutCollaborators(t *testing.T) {
	e := New(Options{Seed: 1})
	e.Reset()
	e.HandleAction(core.ActionNone)
	e.Tick()

	if e.caterpillar[0] != (Position{X: 11, Y: 10}) {
		t.Errorf("Head = %v, expected (11,10)", e.caterpillar[0])
	}
}

func TestDirectionHelpers(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
	}
	for d, opp := range pairs {
		if d.Opposite() != opp {
			t.Errorf("%v.Opposite() = %v, expected %v", d, d.Opposite(), opp)
		}
		p := Position{X: 5, Y: 5}
		if p.Step(d).Step(opp) != p {
			t.Errorf("Stepping %v then %v should return to start", d, opp)
		}
	}
}
