package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/liamvdvyver/chest/internal/config"
	"github.com/liamvdvyver/chest/pkg/engine"
	"github.com/liamvdvyver/chest/pkg/uci"
)

const (
	name   = "Chest"
	author = "Liam van der Vyver"
)

var (
	versionName = "dev"
	flgThreads  int
	flgDebug    bool
)

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	var cfg, err = config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	flag.IntVar(&flgThreads, "threads", cfg.Threads, "search worker goroutines")
	flag.BoolVar(&flgDebug, "debug", cfg.Debug, "enable engine-info output")
	flag.Parse()

	logger.Info().
		Str("version", versionName).
		Str("runtime", runtime.Version()).
		Int("threads", flgThreads).
		Msg(name)

	var eng = engine.NewEngine()
	eng.Threads = flgThreads

	var protocol = uci.New(name, author, versionName, eng,
		uci.NewLogger(os.Stdout, flgDebug))
	protocol.MoveOverhead = cfg.MoveOverhead

	os.Exit(protocol.Run(os.Stdin))
}
