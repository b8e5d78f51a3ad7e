package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybreeze/fanctl/internal/config"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

// resetCommandFlags restores the cmd subcommand's flag state between table
// entries, including pflag's Changed tracking.
func resetCommandFlags(t *testing.T) {
	t.Helper()
	commandCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKind tr198a.CommandKind
		wantErr  bool
	}{
		{"speed", []string{"--speed", "5"}, tr198a.CmdSetSpeed, false},
		{"speed zero", []string{"--speed", "0"}, tr198a.CmdSetSpeed, false},
		{"speed out of range", []string{"--speed", "10"}, 0, true},
		{"direction only", []string{"--direction", "forward"}, tr198a.CmdSetDirection, false},
		{"light", []string{"--light"}, tr198a.CmdToggleLight, false},
		{"dim", []string{"--dim", "down"}, tr198a.CmdDimStep, false},
		{"dim burst", []string{"--dim", "up", "--dim-steps", "3"}, tr198a.CmdDimStep, false},
		{"breeze", []string{"--breeze", "2"}, tr198a.CmdBreezePreset, false},
		{"timer", []string{"--timer", "4"}, tr198a.CmdTimer, false},
		{"bad timer", []string{"--timer", "5"}, 0, true},
		{"two variants", []string{"--speed", "3", "--light"}, 0, true},
		{"nothing selected", nil, 0, true},
		{"bad direction", []string{"--direction", "sideways"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCommandFlags(t)
			require.NoError(t, commandCmd.Flags().Parse(tt.args))

			cmd, err := buildCommand(commandCmd)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, cmd.Kind())
		})
	}
}

func TestParsePacketArg(t *testing.T) {
	pkt, err := tr198a.BuildPairPacket(0x15A9)
	require.NoError(t, err)

	t.Run("hex", func(t *testing.T) {
		data, err := parsePacketArg(pkt.Hex())
		require.NoError(t, err)
		assert.Equal(t, pkt.Bytes(), data)
	})

	t.Run("base64", func(t *testing.T) {
		data, err := parsePacketArg(pkt.Base64())
		require.NoError(t, err)
		assert.Equal(t, pkt.Bytes(), data)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parsePacketArg("not hex at all")
		require.Error(t, err)
	})
}

func TestResolveIdentity(t *testing.T) {
	t.Setenv(config.ConfigDirEnvVar, t.TempDir())

	registry, err := config.LoadRegistry()
	require.NoError(t, err)
	registry.SetFan("bedroom", 0x15A9, "")
	require.NoError(t, registry.Save())

	t.Run("saved name", func(t *testing.T) {
		id, err := resolveIdentity("bedroom")
		require.NoError(t, err)
		assert.EqualValues(t, 0x15A9, id)
	})

	t.Run("identity literal", func(t *testing.T) {
		id, err := resolveIdentity("0x0BEE")
		require.NoError(t, err)
		assert.EqualValues(t, 0x0BEE, id)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := resolveIdentity("attic")
		require.Error(t, err)
	})
}
