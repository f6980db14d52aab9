package engine

import (
	"github.com/notnil/chess"
)

var pieceValues = [...]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   0,
}

// evaluate scores the position in centipawns from the side to move.
// Plain material; the orchestration layer does not care how strong
// this is, only that it is deterministic and cheap.
func evaluate(pos *chess.Position) int {
	var score = 0
	for _, piece := range pos.Board().SquareMap() {
		var v = pieceValues[piece.Type()]
		if piece.Color() == chess.White {
			score += v
		} else {
			score -= v
		}
	}
	if pos.Turn() == chess.Black {
		score = -score
	}
	return score
}
