package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := New()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "dnatop dev")
}

func TestRootFlags(t *testing.T) {
	root := New()
	for _, name := range []string{"api", "via-proxy", "poll", "prefs", "log-file", "export-dir"} {
		assert.NotNil(t, root.Flags().Lookup(name), "flag --%s should be registered", name)
	}
}
