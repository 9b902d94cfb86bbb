package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-engine/kestrel/internal/engine"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kestrel.toml")

	opts := engine.DefaultOptions()
	opts.HashMB = 64
	opts.Threads = 4
	opts.Contempt = 15
	opts.Chess960 = true
	opts.TimeBuffer = 120 * time.Millisecond

	require.NoError(t, Save(path, opts))

	loaded := Load(path)
	assert.Equal(t, opts, loaded)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	loaded := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, engine.DefaultOptions(), loaded)
}
