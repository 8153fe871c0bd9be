// Package cli builds the command-line surface of a test binary: the
// --test_* flag set, the optional YAML configuration file, and the
// mapping from run results to process exit codes.
package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/crucible/internal/compare"
	"github.com/roach88/crucible/internal/registry"
	"github.com/roach88/crucible/internal/runner"
)

// Params carries what the registration layer assembled for this
// binary: the case and type registries, startup errors collected while
// registering, lifecycle hooks, and optional overrides used by tests.
type Params struct {
	Registry *registry.Registry
	Types    *compare.Registry

	// RegistrationErrors aborts the run with ExitCommandError before
	// anything executes. Conflicting declarations are defects of the
	// test binary itself, not of the cases under test.
	RegistrationErrors []error

	Hook *runner.Hook

	// Out receives the report and case diagnostics. Defaults to
	// standard output; --test_logfile replaces it.
	Out io.Writer

	// ErrOut receives structured logs and command errors. Defaults to
	// standard error.
	ErrOut io.Writer

	// Clock and Tokens override the runner's time source and run token
	// generator. Used for testing.
	Clock  runner.Clock
	Tokens runner.RunTokenGenerator

	// Now supplies the time-based default shuffle seed.
	// Defaults to time.Now.
	Now func() time.Time
}

// flagValues holds the raw flag bindings before the merge with the
// configuration file.
type flagValues struct {
	listTests       bool
	filter          string
	alsoRunDisabled bool
	repeat          int
	shuffle         bool
	randomSeed      int64
	printTime       int
	breakOnFailure  bool
	logfile         string
	configPath      string
	verbose         bool
}

// NewRootCommand builds the test binary's command. argv is the raw
// invocation: element zero names the command and the whole slice is
// handed to the BeforeAll hook.
func NewRootCommand(p Params, argv []string) *cobra.Command {
	fv := &flagValues{}

	use := "crucible"
	if len(argv) > 0 && argv[0] != "" {
		use = filepath.Base(argv[0])
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: "Run the registered test cases",
		Long: `This program contains tests registered with crucible. The flags below
control which cases run and how results are reported. Unrecognized
flags and positional arguments are passed through to the BeforeAll
hook untouched.`,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, p, fv, argv)
		},
	}
	if p.Out != nil {
		cmd.SetOut(p.Out)
	}
	if p.ErrOut != nil {
		cmd.SetErr(p.ErrOut)
	}

	flags := cmd.Flags()
	flags.BoolVar(&fv.listTests, "test_list_tests", false,
		`List the names of all tests instead of running them. The name of a case declared under fixture Foo as Bar is "Foo.Bar".`)
	flags.StringVar(&fv.filter, "test_filter", "",
		"Run only the tests whose name matches one of the positive patterns but none of the negative patterns. '?' matches any single character; '*' matches any substring; ':' separates two patterns; a leading '-' makes a pattern negative.")
	flags.BoolVar(&fv.alsoRunDisabled, "test_also_run_disabled_tests", false,
		"Run all disabled tests too.")
	flags.IntVar(&fv.repeat, "test_repeat", 1,
		"Run the tests repeatedly; use a negative count to repeat forever.")
	flags.BoolVar(&fv.shuffle, "test_shuffle", false,
		"Randomize the order the tests run in.")
	flags.Int64Var(&fv.randomSeed, "test_random_seed", 0,
		"Random number seed to use for shuffling test orders. By default a seed based on the current time is used.")
	flags.IntVar(&fv.printTime, "test_print_time", 1,
		"Print the elapsed time of each test (0 to disable).")
	flags.BoolVar(&fv.breakOnFailure, "test_break_on_failure", false,
		"Turn assertion failures into debugger break-points.")
	flags.StringVar(&fv.logfile, "test_logfile", "",
		"Redirect console output to file. The file will be truncated to zero first.")
	flags.StringVar(&fv.configPath, "config", "",
		"Load run options from a YAML file; explicitly set flags take precedence.")
	flags.BoolVarP(&fv.verbose, "verbose", "v", false,
		"Verbose run tracing on standard error.")

	return cmd
}

// Main executes the command line and returns the process exit code.
func Main(p Params, argv []string) int {
	cmd := NewRootCommand(p, argv)

	rest := []string{}
	if len(argv) > 1 {
		rest = argv[1:]
	}
	cmd.SetArgs(rest)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		// Run failures report through the console; only errors with a
		// message of their own are worth another line.
		if exitErr.Message != "" || exitErr.Err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", exitErr.Error())
		}
		return exitErr.Code
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return ExitCommandError
}
