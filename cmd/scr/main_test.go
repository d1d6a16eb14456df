package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	paths := defaultConfigPaths()

	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(home, ".config", "scr"), paths[0])
}
