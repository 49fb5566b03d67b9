// Package sounds resolves sound names to playable files. The daemon ships
// a small set of named sounds; alarms and timers may also reference files
// by absolute path.
package sounds

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chimekit/chime/common"
	"github.com/spf13/afero"
)

// Catalog maps sound names to files under a sounds directory. The
// filesystem is injectable so tests can run against an in-memory fs.
type Catalog struct {
	fs  afero.Fs
	dir string
}

// NewCatalog returns a catalog rooted at dir. A nil fs uses the OS
// filesystem.
func NewCatalog(fs afero.Fs, dir string) *Catalog {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Catalog{fs: fs, dir: dir}
}

// Resolve returns the file path for the given sound name. Built-in names
// resolve to <dir>/<name>.mp3, falling back to the default sound when the
// file is missing. A path-like name must exist to resolve.
func (c *Catalog) Resolve(name string) (string, error) {
	if name == "" {
		name = common.DefaultSound
	}

	if strings.ContainsRune(name, filepath.Separator) || filepath.IsAbs(name) {
		ok, err := afero.Exists(c.fs, name)
		if err != nil {
			return "", fmt.Errorf("check sound file %s: %w", name, err)
		}
		if !ok {
			return "", fmt.Errorf("sound file %s does not exist", name)
		}
		return name, nil
	}

	if !IsKnown(name) {
		name = common.DefaultSound
	}
	path := filepath.Join(c.dir, name+".mp3")
	if ok, _ := afero.Exists(c.fs, path); ok {
		return path, nil
	}

	// Fall back to the default sound if the named file is missing.
	fallback := filepath.Join(c.dir, common.DefaultSound+".mp3")
	if ok, _ := afero.Exists(c.fs, fallback); ok {
		return fallback, nil
	}
	return path, nil
}

// IsKnown reports whether name is one of the built-in sound names.
func IsKnown(name string) bool {
	for _, n := range common.SoundNames {
		if n == name {
			return true
		}
	}
	return false
}
