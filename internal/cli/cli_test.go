package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"  yes  \n", true},
		{"yes", true},
		{"y\n", false},
		{"YES\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(tt.input), &out, "sure? ")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "sure? ", out.String())
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"practice", "import", "export", "restore"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestPracticeRequiresOneArgument(t *testing.T) {
	assert.Error(t, practiceCmd.Args(practiceCmd, nil))
	assert.Error(t, practiceCmd.Args(practiceCmd, []string{"a", "b"}))
	assert.NoError(t, practiceCmd.Args(practiceCmd, []string{"words.txt"}))
}
