package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.config/daycheck/daycheck.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/daycheck/daycheck.db"), got)

	got, err = ExpandHome("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = ExpandHome("/var/lib/daycheck.db")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/daycheck.db", got)

	got, err = ExpandHome("~other/file")
	require.NoError(t, err)
	assert.Equal(t, "~other/file", got)
}
