package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerID(t *testing.T) {
	assert.NoError(t, ContainerID("workbench-aider"))
	assert.NoError(t, ContainerID("0123456789abcdef"))

	assert.Error(t, ContainerID(""))
	assert.Error(t, ContainerID("name with spaces"))
	assert.Error(t, ContainerID("name;rm -rf /"))
	assert.Error(t, ContainerID("name$(whoami)"))
}

func TestEnvironmentVariableKey(t *testing.T) {
	assert.NoError(t, EnvironmentVariableKey("OPENAI_API_KEY"))
	assert.NoError(t, EnvironmentVariableKey("http_proxy"))

	assert.Error(t, EnvironmentVariableKey(""))
	assert.Error(t, EnvironmentVariableKey("BAD-KEY"))
	assert.Error(t, EnvironmentVariableKey("BAD KEY"))
}

func TestNonEmptyString(t *testing.T) {
	assert.NoError(t, NonEmptyString("x"))
	assert.Error(t, NonEmptyString(""))
	assert.Error(t, NonEmptyString("   "))
}

func TestShellEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"with-dash_and.dots/slash=eq", "with-dash_and.dots/slash=eq"},
		{"two words", "'two words'"},
		{"semi;colon", "'semi;colon'"},
		{"$(whoami)", "'$(whoami)'"},
		{"it's", `'it'"'"'s'`},
		{"", "''"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShellEscape(tt.in), tt.in)
	}
}
