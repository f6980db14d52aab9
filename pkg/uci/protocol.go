package uci

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/notnil/chess"

	"github.com/liamvdvyver/chest/pkg/common"
)

// Engine is the external search collaborator. Search runs to
// completion, bounded cooperatively by the budget and depth carried in
// searchParams and by ctx cancellation, reporting each finished
// iteration through searchParams.Progress.
type Engine interface {
	Prepare()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type Protocol struct {
	name     string
	author   string
	version  string
	engine   Engine
	log      *Logger
	position *chess.Position
	searcher *searcher

	// MoveOverhead is the safety margin subtracted from each time
	// budget so the bestmove line beats the controller's deadline.
	MoveOverhead time.Duration
}

func New(name, author, version string, engine Engine, log *Logger) *Protocol {
	var fenOption, err = chess.FEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:         name,
		author:       author,
		version:      version,
		engine:       engine,
		log:          log,
		position:     chess.NewGame(fenOption).Position(),
		searcher:     newSearcher(engine, log),
		MoveOverhead: 50 * time.Millisecond,
	}
}

// Run drives the dispatch loop until quit or EOF and returns the
// process exit code. The loop blocks only on the next input line or
// the next worker report, never on search completion.
func (p *Protocol) Run(input io.Reader) int {
	var commands = make(chan string)
	go func() {
		defer close(commands)
		var scanner = bufio.NewScanner(input)
		for scanner.Scan() {
			commands <- scanner.Text()
		}
	}()

	for {
		select {
		case si, ok := <-p.searcher.reports():
			p.searcher.onReport(si, ok)
		case commandLine, ok := <-commands:
			if !ok {
				return 0
			}
			var code, terminate = p.handleLine(commandLine)
			if terminate {
				return code
			}
		}
	}
}

// handleLine tokenizes one input line and dispatches the first
// registered keyword. Leading tokens that match nothing each get one
// diagnostic; an all-garbage line changes no state.
func (p *Protocol) handleLine(commandLine string) (exitCode int, terminate bool) {
	var fields = strings.Fields(commandLine)
	for len(fields) > 0 {
		var factory, ok = commandFactories[fields[0]]
		if !ok {
			p.log.Warn("unrecognised command %q", fields[0])
			fields = fields[1:]
			continue
		}
		var cmd = factory(p)
		if cmd == nil {
			p.log.Err("no command for registered keyword %q", fields[0])
			return 0, false
		}
		if !cmd.parse(fields[1:]) {
			p.log.Warn("bad usage of %q", fields[0])
			return 0, false
		}
		return cmd.execute()
	}
	return 0, false
}
