package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(Params{}, []string{"/usr/local/bin/calc.test"})
	require.NotNil(t, cmd)
	assert.Equal(t, "calc.test", cmd.Use)
	assert.Contains(t, cmd.Long, "contains tests")
}

func TestRootCommand_DefaultName(t *testing.T) {
	cmd := NewRootCommand(Params{}, nil)
	assert.Equal(t, "crucible", cmd.Use)
}

func TestRunFlags(t *testing.T) {
	cmd := NewRootCommand(Params{}, []string{"crucible"})

	tests := []struct {
		name     string
		defValue string
	}{
		{"test_list_tests", "false"},
		{"test_filter", ""},
		{"test_also_run_disabled_tests", "false"},
		{"test_repeat", "1"},
		{"test_shuffle", "false"},
		{"test_random_seed", "0"},
		{"test_print_time", "1"},
		{"test_break_on_failure", "false"},
		{"test_logfile", ""},
		{"config", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestVerboseFlag(t *testing.T) {
	cmd := NewRootCommand(Params{}, []string{"crucible"})

	verboseFlag := cmd.Flags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)
}

func TestUnknownFlagsAreWhitelisted(t *testing.T) {
	cmd := NewRootCommand(Params{}, []string{"crucible"})
	assert.True(t, cmd.FParseErrWhitelist.UnknownFlags)
}

func TestCommandHelp(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand(Params{Out: &out}, []string{"crucible"})
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "test_filter")
	assert.Contains(t, out.String(), "test_shuffle")
	assert.Contains(t, out.String(), "repeat forever")
}
