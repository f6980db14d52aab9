package common

import (
	"time"

	"github.com/notnil/chess"
)

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const (
	// MaxMoves comfortably exceeds the number of legal moves in any
	// reachable chess position.
	MaxMoves = 256
	// MaxHeight bounds search depth and principal variation length.
	MaxHeight = 64
)

// LimitsType carries the timing and depth fields of a go command.
// Zero values mean the field was not given.
type LimitsType struct {
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
}

type SearchParams struct {
	Position *chess.Position
	Limits   LimitsType
	// Budget is the wall-clock allotment for this search.
	// Zero means unbounded.
	Budget   time.Duration
	Progress func(si SearchInfo)
}

// SearchInfo is an immutable snapshot of one completed iteration.
type SearchInfo struct {
	Score    UciScore
	Depth    int
	Nodes    int64
	Time     time.Duration
	MainLine []*chess.Move
	Position *chess.Position
}

type UciScore struct {
	Centipawns int
	Mate       int
}
