package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/crucible/internal/compare"
	"github.com/roach88/crucible/internal/config"
	"github.com/roach88/crucible/internal/registry"
	"github.com/roach88/crucible/internal/runner"
)

func run(cmd *cobra.Command, p Params, fv *flagValues, argv []string) error {
	cfg, err := resolveConfig(cmd, fv)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading configuration", err)
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	if len(p.RegistrationErrors) > 0 {
		for _, regErr := range p.RegistrationErrors {
			logger.Error("registration failed", "error", regErr)
		}
		plural := ""
		if len(p.RegistrationErrors) > 1 {
			plural = "s"
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("%d registration error%s", len(p.RegistrationErrors), plural))
	}

	colored := false
	coloredSet := false
	switch cfg.Color {
	case config.ColorAlways:
		colored, coloredSet = true, true
	case config.ColorNever:
		colored, coloredSet = false, true
	}

	if cfg.Logfile != "" {
		f, err := os.Create(cfg.Logfile)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening logfile", err)
		}
		defer f.Close()
		out = f
		colored, coloredSet = false, true
	}

	seed := cfg.RandomSeed
	if cmd.Flags().Changed("test_random_seed") {
		seed = fv.randomSeed
	} else if seed == 0 {
		now := p.Now
		if now == nil {
			now = time.Now
		}
		seed = now().Unix()
	}

	reg := p.Registry
	if reg == nil {
		reg = registry.New()
	}
	types := p.Types
	if types == nil {
		types = compare.NewRegistry()
	}

	ropts := []runner.Option{
		runner.WithOutput(out),
		runner.WithLogger(logger),
	}
	if coloredSet {
		ropts = append(ropts, runner.WithColor(colored))
	}
	if p.Hook != nil {
		ropts = append(ropts, runner.WithHook(p.Hook))
	}
	if p.Clock != nil {
		ropts = append(ropts, runner.WithClock(p.Clock))
	}
	if p.Tokens != nil {
		ropts = append(ropts, runner.WithTokens(p.Tokens))
	}
	r := runner.New(reg, types, ropts...)

	if fv.listTests {
		r.List()
		return nil
	}

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	res := r.Run(ctx, runner.Options{
		Args:            argv,
		Filter:          cfg.Filter,
		AlsoRunDisabled: cfg.AlsoRunDisabled,
		Repeat:          cfg.Repeat,
		Shuffle:         cfg.Shuffle,
		RandomSeed:      seed,
		PrintTime:       cfg.PrintTime,
		BreakOnFailure:  cfg.BreakOnFailure,
	})
	if res.ExitCode() != 0 {
		// The report already told the story on the console.
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

// resolveConfig merges the configuration file, when given, with the
// flags the user set explicitly. Flags win.
func resolveConfig(cmd *cobra.Command, fv *flagValues) (config.Config, error) {
	cfg := config.Default()
	if fv.configPath != "" {
		var err error
		cfg, err = config.Load(fv.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("test_filter") {
		cfg.Filter = fv.filter
	}
	if flags.Changed("test_also_run_disabled_tests") {
		cfg.AlsoRunDisabled = fv.alsoRunDisabled
	}
	if flags.Changed("test_repeat") {
		cfg.Repeat = fv.repeat
	}
	if flags.Changed("test_shuffle") {
		cfg.Shuffle = fv.shuffle
	}
	if flags.Changed("test_random_seed") {
		cfg.RandomSeed = fv.randomSeed
	}
	if flags.Changed("test_print_time") {
		cfg.PrintTime = fv.printTime != 0
	}
	if flags.Changed("test_break_on_failure") {
		cfg.BreakOnFailure = fv.breakOnFailure
	}
	if flags.Changed("test_logfile") {
		cfg.Logfile = fv.logfile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = fv.verbose
	}
	return cfg, nil
}

// signalContext cancels the run on SIGINT or SIGTERM so the current
// iteration finishes and the summary still prints.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			logger.Warn("signal received, stopping after current iteration", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
