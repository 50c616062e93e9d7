package main

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	Version = "test"
	BuildDate = "2025-03-14"

	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	cmd.SetOut(buffer)

	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "test (2025-03-14), Go Version: "+runtime.Version()+"\n", buffer.String())

	buffer.Reset()
	BuildDate = ""
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, versionString("test", "", runtime.Version())+"\n", buffer.String())
}

func TestRootCommandWiresSubcommands(t *testing.T) {
	cmd := rootCmd()
	for _, name := range []string{"emit", "files", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestVersionRejectsArgs(t *testing.T) {
	cmd := rootCmd()
	errBuf := new(bytes.Buffer)
	cmd.SetErr(errBuf)
	cmd.SetOut(new(bytes.Buffer))

	cmd.SetArgs([]string{"version", "extra"})
	require.Error(t, cmd.Execute())
	assert.Contains(t, errBuf.String(), "unknown command")
}
