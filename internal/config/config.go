// Package config persists the engine's UCI options across restarts as a
// small TOML file, so a controller's tuned Hash/Threads/Contempt survive a
// process restart instead of resetting to defaults every time.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kestrel-engine/kestrel/internal/engine"
)

// FileName is the config file's name inside its directory.
const FileName = "kestrel.toml"

// DefaultPath returns ~/.kestrel/kestrel.toml, falling back to FileName in
// the working directory if the home directory can't be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, ".kestrel", FileName)
}

// File is the on-disk representation of engine.Options; field names map to
// the UCI option names via the toml tags.
type File struct {
	Hash         int  `toml:"hash_mb"`
	Threads      int  `toml:"threads"`
	Contempt     int  `toml:"contempt"`
	Level        int  `toml:"level"`
	UCIChess960  bool `toml:"uci_chess960"`
	TimeBufferMS int  `toml:"time_buffer_ms"`
	Ponder       bool `toml:"ponder"`
}

// FromOptions converts in-memory engine options to their persisted form.
func FromOptions(o engine.Options) File {
	return File{
		Hash:         o.HashMB,
		Threads:      o.Threads,
		Contempt:     o.Contempt,
		Level:        o.Level,
		UCIChess960:  o.Chess960,
		TimeBufferMS: int(o.TimeBuffer.Milliseconds()),
		Ponder:       o.Ponder,
	}
}

// ToOptions converts a persisted file back into engine options, starting
// from DefaultOptions so a partially-populated or hand-edited file still
// yields sane values for any field it omits.
func (f File) ToOptions() engine.Options {
	o := engine.DefaultOptions()
	if f.Hash > 0 {
		o.HashMB = f.Hash
	}
	if f.Threads > 0 {
		o.Threads = f.Threads
	}
	o.Contempt = f.Contempt
	o.Level = f.Level
	o.Chess960 = f.UCIChess960
	if f.TimeBufferMS > 0 {
		o.TimeBuffer = time.Duration(f.TimeBufferMS) * time.Millisecond
	}
	o.Ponder = f.Ponder
	return o
}

// Load reads path (or engine.DefaultOptions if path doesn't exist or fails
// to parse; a missing or malformed config file is never fatal).
func Load(path string) engine.Options {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return engine.DefaultOptions()
	}
	return f.ToOptions()
}

// Save writes opts to path as TOML, creating its parent directory if
// necessary.
func Save(path string, opts engine.Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return toml.NewEncoder(fh).Encode(FromOptions(opts))
}
