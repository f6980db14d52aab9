package engine

import (
	"context"

	"github.com/notnil/chess"

	"github.com/liamvdvyver/chest/pkg/common"
)

// worker holds the per-goroutine search state: one principal-variation
// stack per height, reused across nodes.
type worker struct {
	engine *Engine
	ctx    context.Context
	pvs    []common.Stack[*chess.Move]
}

func newWorker(e *Engine, ctx context.Context) *worker {
	var w = &worker{engine: e, ctx: ctx}
	w.pvs = make([]common.Stack[*chess.Move], common.MaxHeight)
	for i := range w.pvs {
		w.pvs[i] = common.NewStack[*chess.Move](common.MaxHeight)
	}
	return w
}

func (w *worker) alphabeta(pos *chess.Position, depth, height, alpha, beta int) (int, error) {
	if err := w.engine.incNode(w.ctx); err != nil {
		return 0, err
	}
	w.pvs[height].Clear()

	var moves = pos.ValidMoves()
	if len(moves) == 0 {
		if pos.Status() == chess.Checkmate {
			return lossIn(height), nil
		}
		return valueDraw, nil
	}
	if depth <= 0 || height >= common.MaxHeight-1 {
		return evaluate(pos), nil
	}

	for _, move := range moves {
		var score, err = w.alphabeta(pos.Update(move), depth-1, height+1, -beta, -alpha)
		if err != nil {
			return 0, err
		}
		score = -score
		if score > alpha {
			alpha = score
			w.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	return alpha, nil
}

// assignPV rebuilds the line at height as move followed by the child
// line one ply below.
func (w *worker) assignPV(height int, move *chess.Move) {
	var pv = &w.pvs[height]
	pv.Clear()
	pv.Push(move)
	for _, m := range w.pvs[height+1].Items() {
		pv.Push(m)
	}
}
