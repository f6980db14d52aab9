package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/notnil/chess"
	"golang.org/x/sync/errgroup"

	"github.com/liamvdvyver/chest/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

// Engine is a deliberately plain iterative-deepening alpha-beta search
// over the notnil/chess move generator. It honors the orchestration
// contract: cooperative timeout against the budget, ctx cancellation,
// one progress report per completed iteration.
type Engine struct {
	Threads int

	start  time.Time
	budget time.Duration
	nodes  int64
}

type mainLine struct {
	moves []*chess.Move
	score int
}

func NewEngine() *Engine {
	return &Engine{Threads: 1}
}

func (e *Engine) Prepare() {}

func (e *Engine) Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo {
	e.start = time.Now()
	e.budget = searchParams.Budget
	atomic.StoreInt64(&e.nodes, 0)

	var pos = searchParams.Position
	var result = common.SearchInfo{Depth: 0, Position: pos}
	var rootBuffer = common.NewStack[*chess.Move](common.MaxMoves)
	for _, move := range pos.ValidMoves() {
		rootBuffer.Push(move)
	}
	var rootMoves = rootBuffer.Items()
	if len(rootMoves) == 0 {
		return result
	}
	result.MainLine = []*chess.Move{rootMoves[0]}

	var maxDepth = common.MaxHeight - 1
	if limit := searchParams.Limits.Depth; limit > 0 {
		maxDepth = common.Min(maxDepth, limit)
	}

	for depth := 1; depth <= maxDepth; depth++ {
		var line, err = e.searchRoot(ctx, pos, rootMoves, depth)
		if err != nil {
			// Timed out or cancelled mid-iteration; the last
			// completed iteration stands.
			break
		}
		result = common.SearchInfo{
			Depth:    depth,
			Score:    newUciScore(line.score),
			Nodes:    atomic.LoadInt64(&e.nodes),
			Time:     time.Since(e.start),
			MainLine: line.moves,
			Position: pos,
		}
		if searchParams.Progress != nil {
			searchParams.Progress(result)
		}
		moveToFront(rootMoves, line.moves[0])
		if line.score >= valueWin || line.score <= valueLoss {
			break
		}
		if e.budget > 0 && time.Since(e.start) >= e.budget {
			break
		}
	}
	return result
}

// searchRoot scores every root move at the given depth, splitting the
// move list across Threads workers.
func (e *Engine) searchRoot(ctx context.Context, pos *chess.Position,
	rootMoves []*chess.Move, depth int) (mainLine, error) {

	var g, gctx = errgroup.WithContext(ctx)
	var next int64 = -1
	var mu sync.Mutex
	var best = mainLine{score: -valueInfinity}

	var threads = common.Max(1, e.Threads)
	for t := 0; t < common.Min(threads, len(rootMoves)); t++ {
		var w = newWorker(e, gctx)
		g.Go(func() error {
			for {
				var i = int(atomic.AddInt64(&next, 1))
				if i >= len(rootMoves) {
					return nil
				}
				var move = rootMoves[i]
				var score, err = w.alphabeta(pos.Update(move), depth-1, 1, -valueInfinity, valueInfinity)
				if err != nil {
					return err
				}
				score = -score
				mu.Lock()
				if score > best.score {
					best = mainLine{moves: composeLine(move, w.pvs[1].Items()), score: score}
				}
				mu.Unlock()
			}
		})
	}
	if err := g.Wait(); err != nil {
		return mainLine{}, err
	}
	return best, nil
}

func (e *Engine) incNode(ctx context.Context) error {
	var n = atomic.AddInt64(&e.nodes, 1)
	if n&1023 == 0 {
		if ctx.Err() != nil {
			return errSearchTimeout
		}
		if e.budget > 0 && time.Since(e.start) >= e.budget {
			return errSearchTimeout
		}
	}
	return nil
}

func composeLine(move *chess.Move, tail []*chess.Move) []*chess.Move {
	var moves = make([]*chess.Move, 0, 1+len(tail))
	moves = append(moves, move)
	return append(moves, tail...)
}

func moveToFront(moves []*chess.Move, move *chess.Move) {
	for i, m := range moves {
		if m == move {
			copy(moves[1:i+1], moves[:i])
			moves[0] = move
			return
		}
	}
}
