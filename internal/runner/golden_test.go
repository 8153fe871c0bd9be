package runner_test

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crucible/internal/compare"
	"github.com/roach88/crucible/internal/harness"
	"github.com/roach88/crucible/internal/registry"
	"github.com/roach88/crucible/internal/runner"
	"github.com/roach88/crucible/internal/testutil"
)

// Diagnostic lines carry the failing call's line number, which moves
// whenever this file is edited. Golden transcripts pin it to zero.
var siteRef = regexp.MustCompile(`golden_test\.go:\d+`)

func scrubSites(b []byte) []byte {
	return siteRef.ReplaceAll(b, []byte("golden_test.go:0"))
}

func assertTranscript(t *testing.T, name string, out []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, scrubSites(out))
}

func transcriptRunner(reg *registry.Registry, out *bytes.Buffer) *runner.Runner {
	return runner.New(reg, compare.NewRegistry(),
		runner.WithOutput(out),
		runner.WithColor(false),
		runner.WithClock(testutil.NewFakeClock(runStart, time.Millisecond)),
		runner.WithTokens(testutil.NewFixedTokenGenerator("golden-run")),
	)
}

func TestTranscript_AllPass(t *testing.T) {
	reg := registry.New()
	pass := func(*harness.T) {}
	require.NoError(t, reg.DeclareCase("calc", "add", pass))
	require.NoError(t, reg.DeclareCase("calc", "sub", pass))
	require.NoError(t, reg.DeclareCase("text", "upper", pass))

	var out bytes.Buffer
	res := transcriptRunner(reg, &out).Run(context.Background(), runner.Options{Repeat: 1, PrintTime: true})

	require.Equal(t, 0, res.ExitCode())
	assertTranscript(t, "all_pass", out.Bytes())
}

func TestTranscript_MixedOutcomes(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.DeclareCase("calc", "add", func(*harness.T) {}))
	require.NoError(t, reg.DeclareCase("parse", "DISABLED_legacy", func(*harness.T) {}))
	require.NoError(t, reg.DeclareCase("parse", "empty", func(tc *harness.T) { tc.Skip() }))
	require.NoError(t, reg.DeclareCase("parse", "number", func(tc *harness.T) { tc.ExpectEq(41, 42) }))
	require.NoError(t, reg.DeclareCase("parse", "ws", func(*harness.T) {}))

	var out bytes.Buffer
	res := transcriptRunner(reg, &out).Run(context.Background(), runner.Options{Repeat: 1})

	require.Equal(t, 1, res.ExitCode())
	assertTranscript(t, "mixed_outcomes", out.Bytes())
}

func TestTranscript_RepeatLoop(t *testing.T) {
	reg := registry.New()
	pass := func(*harness.T) {}
	require.NoError(t, reg.DeclareCase("calc", "add", pass))
	require.NoError(t, reg.DeclareCase("calc", "sub", pass))

	var out bytes.Buffer
	res := transcriptRunner(reg, &out).Run(context.Background(), runner.Options{Repeat: 2})

	require.Equal(t, 0, res.ExitCode())
	assertTranscript(t, "repeat_loop", out.Bytes())
}

func TestTranscript_Filtered(t *testing.T) {
	reg := registry.New()
	pass := func(*harness.T) {}
	require.NoError(t, reg.DeclareCase("calc", "add", pass))
	require.NoError(t, reg.DeclareCase("calc", "slow", pass))
	require.NoError(t, reg.DeclareCase("calc", "sub", pass))
	require.NoError(t, reg.DeclareCase("text", "upper", pass))

	var out bytes.Buffer
	res := transcriptRunner(reg, &out).Run(context.Background(), runner.Options{
		Repeat: 1,
		Filter: "calc.*:-calc.slow",
	})

	require.Equal(t, 0, res.ExitCode())
	assertTranscript(t, "filtered", out.Bytes())
}

func TestTranscript_List(t *testing.T) {
	reg := registry.New()
	pass := func(*harness.T) {}
	require.NoError(t, reg.DeclareCase("calc", "add", pass))
	require.NoError(t, reg.DeclareParamCase("calc", "div", []any{1, 2}, pass))
	require.NoError(t, reg.DeclareParamCase("codec", "roundtrip", []any{"gzip", "zstd"}, pass))
	require.NoError(t, reg.DeclareCase("text", "DISABLED_legacy", pass))
	require.NoError(t, reg.DeclareCase("text", "upper", pass))

	var out bytes.Buffer
	transcriptRunner(reg, &out).List()

	assertTranscript(t, "list", out.Bytes())
}
