// Command sharedptr-demo walks a pair of shared-ownership handles
// through their lifecycle, reporting the reference count and
// emptiness at each step: allocate, copy, reset each owner in turn,
// then pass a handle into a function and watch the count restore.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"shared_ownership_code/sharedptr"
)

func main() {
	configPath := flag.String("config", "", "optional TOML config file")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sharedptr-demo: %v\n", err)
			os.Exit(1)
		}
	}

	run(newLogger(cfg.Verbose), cfg)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true}
	return zerolog.New(out).Level(level)
}

func run(log zerolog.Logger, cfg demoConfig) {
	destroyed := func(v int) {
		log.Debug().Int("value", v).Msg("value destroyed")
	}

	sp1 := sharedptr.NewWithRelease(cfg.Value, destroyed)
	report(log, "sp1 = allocate", sp1)

	var p1 sharedptr.Ptr[int]
	report(log, "p1 declared empty", p1)

	p1.ResetTo(cfg.ResetValue)
	report(log, "p1.ResetTo", p1)

	p2 := p1.Clone()
	report(log, "p2 = p1.Clone()", p2)
	report(log, "p1 after clone", p1)

	p1.Reset()
	report(log, "p1.Reset()", p1)
	report(log, "p2 after p1 reset", p2)
	if p1.Empty() {
		log.Info().Msg("p1 is empty")
	}
	if !p2.Empty() {
		log.Info().Msg("p2 is not empty")
	}

	p2.Reset()
	report(log, "p2.Reset()", p2)
	if p2.Empty() {
		log.Info().Msg("p2 is empty")
	}

	inside := sharedptr.Observe(sp1.Clone())
	log.Info().Int64("use_count", inside).Msg("inside callee")
	report(log, "sp1 after call", sp1)

	sp1.Reset()
	report(log, "sp1.Reset()", sp1)
}

func report(log zerolog.Logger, step string, p sharedptr.Ptr[int]) {
	log.Info().
		Int64("use_count", p.UseCount()).
		Bool("empty", p.Empty()).
		Msg(step)
}
