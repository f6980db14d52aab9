package uci

import (
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/liamvdvyver/chest/pkg/common"
)

// command is one protocol command, built per input line by its factory
// and discarded after execute.
type command interface {
	// parse consumes the tokens after the keyword and reports whether
	// they were sufficient to run the command.
	parse(fields []string) bool
	// execute returns terminate=true with a process exit code to end
	// the dispatch loop.
	execute() (exitCode int, terminate bool)
}

var commandFactories = map[string]func(p *Protocol) command{
	"uci":      func(p *Protocol) command { return &uciCommand{p: p} },
	"isready":  func(p *Protocol) command { return &isReadyCommand{p: p} },
	"debug":    func(p *Protocol) command { return &debugCommand{p: p} },
	"position": func(p *Protocol) command { return &positionCommand{p: p} },
	"go":       func(p *Protocol) command { return &goCommand{p: p} },
	"stop":     func(p *Protocol) command { return &stopCommand{p: p} },
	"quit":     func(p *Protocol) command { return &quitCommand{} },
}

// fieldHandler consumes the tokens it needs from args, which start
// right after the field keyword, and reports how many it took.
type fieldHandler func(args []string) int

// parseFields walks the tokens left to right, dispatching recognized
// field keywords to their handlers. Unknown tokens get one diagnostic
// each and scanning continues; a line is never abandoned mid-way.
func parseFields(log *Logger, fields []string, handlers map[string]fieldHandler) {
	for i := 0; i < len(fields); {
		var h, ok = handlers[fields[i]]
		if !ok {
			log.Warn("unrecognised field %q", fields[i])
			i++
			continue
		}
		i += 1 + h(fields[i+1:])
	}
}

// intField parses the single argument of a numeric field into dst.
func intField(log *Logger, name string, dst *int) fieldHandler {
	return func(args []string) int {
		if len(args) == 0 {
			log.Warn("field %q needs a value", name)
			return 0
		}
		var v, err = strconv.Atoi(args[0])
		if err != nil {
			log.Warn("field %q: bad value %q", name, args[0])
		} else {
			*dst = v
		}
		return 1
	}
}

type uciCommand struct {
	p *Protocol
}

func (c *uciCommand) parse(fields []string) bool { return true }

func (c *uciCommand) execute() (int, bool) {
	c.p.log.Raw("id name %s %s", c.p.name, c.p.version)
	c.p.log.Raw("id author %s", c.p.author)
	c.p.log.Raw("uciok")
	return 0, false
}

type isReadyCommand struct {
	p *Protocol
}

func (c *isReadyCommand) parse(fields []string) bool { return true }

func (c *isReadyCommand) execute() (int, bool) {
	// The worker owns the engine while a search runs; readiness is
	// still answerable because the context itself is consistent.
	if !c.p.searcher.isBusy() {
		c.p.engine.Prepare()
	}
	c.p.log.Raw("readyok")
	return 0, false
}

type debugCommand struct {
	p       *Protocol
	enable  bool
	present bool
}

func (c *debugCommand) parse(fields []string) bool {
	parseFields(c.p.log, fields, map[string]fieldHandler{
		"on": func(args []string) int {
			c.enable, c.present = true, true
			return 0
		},
		"off": func(args []string) int {
			c.enable, c.present = false, true
			return 0
		},
	})
	return c.present
}

func (c *debugCommand) execute() (int, bool) {
	c.p.log.SetDebug(c.enable)
	return 0, false
}

type positionCommand struct {
	p     *Protocol
	fen   string
	moves []string
}

func (c *positionCommand) parse(fields []string) bool {
	parseFields(c.p.log, fields, map[string]fieldHandler{
		"startpos": func(args []string) int {
			c.fen = common.InitialPositionFen
			return 0
		},
		"fen": func(args []string) int {
			var n = 0
			for n < len(args) && args[n] != "moves" {
				n++
			}
			c.fen = strings.Join(args[:n], " ")
			return n
		},
		"moves": func(args []string) int {
			c.moves = args
			return len(args)
		},
	})
	return c.fen != ""
}

func (c *positionCommand) execute() (int, bool) {
	if c.p.searcher.isBusy() {
		c.p.log.Warn("position rejected: search still running")
		return 0, false
	}
	var fenOption, err = chess.FEN(c.fen)
	if err != nil {
		c.p.log.Warn("bad fen %q: %v", c.fen, err)
		return 0, false
	}
	var pos = chess.NewGame(fenOption).Position()
	for _, smove := range c.moves {
		var move, err = chess.UCINotation{}.Decode(pos, smove)
		if err != nil {
			c.p.log.Warn("bad move %q: %v", smove, err)
			return 0, false
		}
		var legal = false
		for _, m := range pos.ValidMoves() {
			if m.S1() == move.S1() && m.S2() == move.S2() && m.Promo() == move.Promo() {
				move, legal = m, true
				break
			}
		}
		if !legal {
			c.p.log.Warn("illegal move %q", smove)
			return 0, false
		}
		pos = pos.Update(move)
	}
	c.p.position = pos
	return 0, false
}

type goCommand struct {
	p      *Protocol
	limits common.LimitsType
}

func (c *goCommand) parse(fields []string) bool {
	var log = c.p.log
	parseFields(log, fields, map[string]fieldHandler{
		"wtime":     intField(log, "wtime", &c.limits.WhiteTime),
		"btime":     intField(log, "btime", &c.limits.BlackTime),
		"winc":      intField(log, "winc", &c.limits.WhiteIncrement),
		"binc":      intField(log, "binc", &c.limits.BlackIncrement),
		"movestogo": intField(log, "movestogo", &c.limits.MovesToGo),
		"movetime":  intField(log, "movetime", &c.limits.MoveTime),
		"depth":     intField(log, "depth", &c.limits.Depth),
		"infinite": func(args []string) int {
			c.limits.Infinite = true
			return 0
		},
	})
	// No fields means an untimed search to the depth cap.
	return true
}

func (c *goCommand) execute() (int, bool) {
	var p = c.p
	var budget = thinkTime(c.limits, p.position.Turn() == chess.White, p.MoveOverhead)
	p.log.Info("search budget %v", budget)
	var err = p.searcher.start(common.SearchParams{
		Position: p.position,
		Limits:   c.limits,
		Budget:   budget,
	})
	if err != nil {
		p.log.Warn("go rejected: %v", err)
	}
	return 0, false
}

type stopCommand struct {
	p *Protocol
}

func (c *stopCommand) parse(fields []string) bool { return true }

func (c *stopCommand) execute() (int, bool) {
	if err := c.p.searcher.stop(); err != nil {
		c.p.log.Warn("stop rejected: %v", err)
	}
	return 0, false
}

type quitCommand struct{}

func (c *quitCommand) parse(fields []string) bool { return true }

func (c *quitCommand) execute() (int, bool) {
	return 0, true
}
