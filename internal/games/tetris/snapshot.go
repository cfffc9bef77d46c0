package tetris

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Frame        uint64
	Score        int
	DisplayScore int
	Lines        int
	Pieces       int
	Pace         float64
	Current      Piece
	Next         Kind
	Filled       int // Settled cells on the board
	Pending      int // Queued actions
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.Lost():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Frame:        g.frame,
		Score:        g.engine.Score(),
		DisplayScore: g.engine.DisplayScore(),
		Lines:        g.engine.Lines(),
		Pieces:       g.engine.Pieces(),
		Pace:         g.engine.Pace(),
		Current:      g.engine.Current(),
		Next:         g.engine.Next(),
		Filled:       g.engine.board.FilledCount(),
		Pending:      g.engine.Pending(),
		State:        state,
	}
}
