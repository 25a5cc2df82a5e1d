package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Subcommands(t *testing.T) {
	cmd := findCommand(t, "policy")

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"deploy", "egress", "sgts"}, names)
}

func TestPolicy_SharedConfigFlag(t *testing.T) {
	for _, sub := range []string{"deploy", "egress"} {
		cmd := findCommand(t, "policy", sub)

		flag := cmd.InheritedFlags().Lookup("config")
		require.NotNil(t, flag, "policy %s should inherit --config", sub)
		assert.Equal(t, "config/ise-config.json", flag.DefValue)
		assert.NotNil(t, cmd.InheritedFlags().Lookup("host"))
	}
}
