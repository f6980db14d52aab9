package uci

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liamvdvyver/chest/pkg/common"
)

var errAlreadyBusy = errors.New("search still running")

// searcher owns the busy/idle lifecycle of the single background
// search worker. Reports stream back over a channel; closing it is the
// worker's completion message, so busy is simply "channel open". All
// methods except the worker body run on the dispatch goroutine.
type searcher struct {
	engine Engine
	log    *Logger
	output chan common.SearchInfo
	cancel context.CancelFunc
	last   common.SearchInfo
}

func newSearcher(engine Engine, log *Logger) *searcher {
	return &searcher{engine: engine, log: log}
}

func (s *searcher) isBusy() bool {
	return s.output != nil
}

// reports is nil while idle, which parks the dispatch loop's select
// arm until a search starts.
func (s *searcher) reports() <-chan common.SearchInfo {
	return s.output
}

// start spawns the worker bound to the snapshot and budget inside
// params. It refuses while a search is in flight.
func (s *searcher) start(params common.SearchParams) error {
	if s.isBusy() {
		return errAlreadyBusy
	}
	var ctx, cancel = context.WithCancel(context.Background())
	s.cancel = cancel
	s.output = make(chan common.SearchInfo, 3)

	var output = s.output
	params.Progress = func(si common.SearchInfo) {
		// Dropped intermediate reports are fine; the final one is
		// delivered unconditionally below.
		select {
		case output <- si:
		default:
		}
	}
	go func() {
		var searchResult = s.engine.Search(ctx, params)
		output <- searchResult
		close(output)
	}()
	return nil
}

// stop requests cooperative cancellation; the worker still publishes
// its final report and flips the state back to idle.
func (s *searcher) stop() error {
	if !s.isBusy() {
		return errors.New("no search running")
	}
	s.cancel()
	return nil
}

// onReport handles one message from the worker: an open-channel receive
// forwards the report, the close drains to idle after the bestmove line
// is fully written.
func (s *searcher) onReport(si common.SearchInfo, ok bool) {
	if ok {
		s.log.Raw("%s", searchInfoString(si))
		s.last = si
		return
	}
	if len(s.last.MainLine) != 0 {
		s.log.Raw("bestmove %v", s.last.MainLine[0])
	}
	s.cancel()
	s.cancel = nil
	s.output = nil
	s.last = common.SearchInfo{}
}

func searchInfoString(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}
