package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mpb/strandvm/internal/logio"
	"github.com/mpb/strandvm/internal/program"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace bool
	var maxSteps int64
	var configPath string
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.Int64Var(&maxSteps, "max-steps", 0, "abort after this many steps (0 disables the limit)")
	flag.StringVar(&configPath, "config", "", "path to a TOML config file")
	flag.Parse()

	given := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { given[f.Name] = true })

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
	if cfg.Trace && !given["trace"] {
		trace = true
	}
	if cfg.MaxSteps != 0 && !given["max-steps"] {
		maxSteps = cfg.MaxSteps
	}
	if !given["timeout"] && cfg.Timeout != "" {
		if d, perr := time.ParseDuration(cfg.Timeout); perr == nil {
			timeout = d
		}
	}

	prog, err := program.Read(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}

	opts := []VMOption{
		WithProgram(Program(prog)),
		WithOutput(os.Stdout),
	}
	var traceLog logio.Logger
	if trace {
		traceLog.SetOutput(os.Stderr)
		opts = append(opts, WithLogf(traceLog.Leveledf("trace")))
	}
	if maxSteps != 0 {
		opts = append(opts, WithMaxSteps(maxSteps))
	}
	vm := New(opts...)
	defer vm.Close()
	defer traceLog.Close()

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := vm.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}
