package uci

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/notnil/chess"

	"github.com/liamvdvyver/chest/pkg/common"
)

// stubEngine lets tests control when the worker finishes.
type stubEngine struct {
	searches int32
	block    chan struct{}
	result   common.SearchInfo
}

func (e *stubEngine) Prepare() {}

func (e *stubEngine) Search(ctx context.Context, sp common.SearchParams) common.SearchInfo {
	atomic.AddInt32(&e.searches, 1)
	if e.block != nil {
		select {
		case <-e.block:
		case <-ctx.Done():
		}
	}
	return e.result
}

func mustMove(t *testing.T, fen, smove string) *chess.Move {
	t.Helper()
	var fenOption, err = chess.FEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	var move *chess.Move
	move, err = chess.UCINotation{}.Decode(chess.NewGame(fenOption).Position(), smove)
	if err != nil {
		t.Fatal(err)
	}
	return move
}

func newTestProtocol(t *testing.T, eng Engine) (*Protocol, *bytes.Buffer) {
	t.Helper()
	var out = &bytes.Buffer{}
	return New("test", "nobody", "0.0", eng, NewLogger(out, false)), out
}

// drain consumes worker reports until the completion message, the way
// Run's select loop does.
func drain(p *Protocol) {
	for {
		var si, ok = <-p.searcher.reports()
		p.searcher.onReport(si, ok)
		if !ok {
			return
		}
	}
}

func countLines(out *bytes.Buffer, substr string) int {
	var n = 0
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func TestGarbageBeforeKeyword(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	p.handleLine("foo bar isready")
	if got := countLines(out, "[WARN]:"); got != 2 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}
	if got := countLines(out, "readyok"); got != 1 {
		t.Errorf("readyok lines: %d\n%s", got, out.String())
	}
}

func TestAllGarbageLine(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	var code, terminate = p.handleLine("foo bar baz")
	if terminate || code != 0 {
		t.Error("garbage line terminated the loop")
	}
	if got := countLines(out, "[WARN]:"); got != 3 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}
}

func TestQuitTerminates(t *testing.T) {
	var p, _ = newTestProtocol(t, &stubEngine{})
	var code, terminate = p.handleLine("quit")
	if !terminate || code != 0 {
		t.Errorf("quit: code=%d terminate=%v", code, terminate)
	}
}

func TestGoWhileBusy(t *testing.T) {
	var eng = &stubEngine{
		block:  make(chan struct{}),
		result: common.SearchInfo{MainLine: []*chess.Move{mustMove(t, common.InitialPositionFen, "e2e4")}},
	}
	var p, out = newTestProtocol(t, eng)

	p.handleLine("go")
	if !p.searcher.isBusy() {
		t.Fatal("not busy after go")
	}
	p.handleLine("go")
	if !p.searcher.isBusy() {
		t.Error("busy flag lost")
	}
	if got := countLines(out, "[WARN]:"); got != 1 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}

	close(eng.block)
	drain(p)
	if p.searcher.isBusy() {
		t.Error("still busy after completion")
	}
	if got := atomic.LoadInt32(&eng.searches); got != 1 {
		t.Errorf("workers spawned: %d", got)
	}
	if got := countLines(out, "bestmove e2e4"); got != 1 {
		t.Errorf("bestmove lines: %d\n%s", got, out.String())
	}
}

func TestPositionWhileBusyRejected(t *testing.T) {
	var eng = &stubEngine{block: make(chan struct{})}
	var p, out = newTestProtocol(t, eng)
	var before = p.position

	p.handleLine("go")
	p.handleLine("position startpos moves e2e4")
	if p.position != before {
		t.Error("position replaced while busy")
	}
	if got := countLines(out, "[WARN]:"); got != 1 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}

	close(eng.block)
	drain(p)
}

func TestStopCancelsSearch(t *testing.T) {
	var eng = &stubEngine{block: make(chan struct{})}
	var p, _ = newTestProtocol(t, eng)

	p.handleLine("go")
	p.handleLine("stop")
	drain(p)
	if p.searcher.isBusy() {
		t.Error("still busy after stop")
	}
}

func TestStopWhileIdle(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	p.handleLine("stop")
	if got := countLines(out, "[WARN]:"); got != 1 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}
}

func TestPositionStartposEqualsFen(t *testing.T) {
	var p1, _ = newTestProtocol(t, &stubEngine{})
	var p2, _ = newTestProtocol(t, &stubEngine{})
	p1.handleLine("position startpos moves e2e4 e7e5")
	p2.handleLine("position fen " + common.InitialPositionFen + " moves e2e4 e7e5")
	if p1.position.String() != p2.position.String() {
		t.Errorf("positions differ:\n%v\n%v", p1.position, p2.position)
	}
}

func TestPositionIllegalMove(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	p.handleLine("position startpos moves e2e5")
	if got := countLines(out, "[WARN]:"); got != 1 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}
}

func TestPositionWithoutSourceIsBadUsage(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	p.handleLine("position moves e2e4")
	if got := countLines(out, "bad usage"); got != 1 {
		t.Errorf("bad usage lines: %d\n%s", got, out.String())
	}
}

func TestGoFieldOrderIrrelevant(t *testing.T) {
	var p, _ = newTestProtocol(t, &stubEngine{})
	var a = &goCommand{p: p}
	var b = &goCommand{p: p}
	a.parse(strings.Fields("wtime 1000 winc 10"))
	b.parse(strings.Fields("winc 10 wtime 1000"))
	var budgetA = thinkTime(a.limits, true, p.MoveOverhead)
	var budgetB = thinkTime(b.limits, true, p.MoveOverhead)
	if budgetA != budgetB {
		t.Errorf("budgets differ: %v vs %v", budgetA, budgetB)
	}
}

func TestGoUnknownFieldKeepsRest(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	var cmd = &goCommand{p: p}
	if !cmd.parse(strings.Fields("foo wtime 500")) {
		t.Fatal("go reported insufficient")
	}
	if got := countLines(out, "[WARN]:"); got != 1 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}
	if cmd.limits.WhiteTime != 500 {
		t.Errorf("wtime: %d", cmd.limits.WhiteTime)
	}
}

func TestDebugWithoutArgumentIsBadUsage(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	p.handleLine("debug")
	if got := countLines(out, "bad usage"); got != 1 {
		t.Errorf("bad usage lines: %d\n%s", got, out.String())
	}
}

func TestDebugToggle(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	p.handleLine("debug on")
	if !p.log.DebugEnabled() {
		t.Error("debug on did not enable")
	}
	p.handleLine("debug off")
	if p.log.DebugEnabled() {
		t.Error("debug off did not disable")
	}
	if got := countLines(out, "[WARN]:"); got != 0 {
		t.Errorf("warn lines: %d\n%s", got, out.String())
	}
}

func TestUciIdentification(t *testing.T) {
	var p, out = newTestProtocol(t, &stubEngine{})
	p.handleLine("uci")
	var s = out.String()
	if !strings.Contains(s, "id name test") ||
		!strings.Contains(s, "id author nobody") ||
		!strings.HasSuffix(strings.TrimSpace(s), "uciok") {
		t.Errorf("uci output:\n%s", s)
	}
}

func TestReportsForwardedInOrder(t *testing.T) {
	var move = mustMove(t, common.InitialPositionFen, "e2e4")
	var eng = &stubEngine{result: common.SearchInfo{
		Depth:    2,
		Score:    common.UciScore{Centipawns: 15},
		Nodes:    420,
		MainLine: []*chess.Move{move},
	}}
	var p, out = newTestProtocol(t, eng)
	p.handleLine("go depth 2")
	drain(p)
	var s = out.String()
	var infoAt = strings.Index(s, "info depth 2 score cp 15 nodes 420")
	var bestAt = strings.Index(s, "bestmove e2e4")
	if infoAt == -1 || bestAt == -1 || bestAt < infoAt {
		t.Errorf("report output:\n%s", s)
	}
}
