package flagx

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet() (*flag.FlagSet, *string, *bool) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addr := fs.String("a", ":4000", "")
	public := fs.Bool("public", false, "")
	return fs, addr, public
}

func TestKnown(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"separate value", []string{"-a", ":8080", "-email", "x@y.z"}, []string{"-a", ":8080"}},
		{"equals form", []string{"-a=:1", "-x=1"}, []string{"-a=:1"}},
		{"double dash", []string{"--a", ":2"}, []string{"--a", ":2"}},
		{"bool keeps next arg", []string{"-public", "stray", "-a", ":1"}, []string{"-public", "-a", ":1"}},
		{"bool with value", []string{"-public=false"}, []string{"-public=false"}},
		{"unknown only", []string{"-email", "a@b.c", "--", "-"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _, _ := newSet()
			assert.Equal(t, tt.want, Known(fs, tt.args))
		})
	}
}

func TestParseKnown(t *testing.T) {
	fs, addr, public := newSet()

	require.NoError(t, ParseKnown(fs, []string{"-email", "root@example.com", "-public", "-a", ":9000", "-name", "Root"}))
	assert.Equal(t, ":9000", *addr)
	assert.True(t, *public)

	fs, _, _ = newSet()
	assert.Error(t, ParseKnown(fs, []string{"-public=maybe"}))
}

func TestJSONConfigPath(t *testing.T) {
	assert.Equal(t, "cfg.json", JSONConfigPath([]string{"-a", ":1", "-c", "cfg.json"}))
	assert.Equal(t, "other.json", JSONConfigPath([]string{"-config=other.json"}))
	assert.Equal(t, "long.json", JSONConfigPath([]string{"--config", "long.json"}))
	assert.Equal(t, "", JSONConfigPath([]string{"-a", ":1"}))
}
