// Package fileset selects the agent documents of a directory using a
// doublestar include pattern and gobwas/glob exclude patterns.
package fileset

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// DefaultInclude matches markdown documents
const DefaultInclude = "*.md"

// DefaultExclude names the documentation index skipped in every directory
var DefaultExclude = []string{"README.md"}

// Filter decides which file names belong to the set
type Filter struct {
	include  string
	excludes []glob.Glob
}

// NewFilter compiles the include and exclude patterns. An empty include
// falls back to DefaultInclude.
func NewFilter(include string, exclude []string) (*Filter, error) {
	if include == "" {
		include = DefaultInclude
	}
	if !doublestar.ValidatePattern(include) {
		return nil, errors.Errorf("invalid include pattern '%s'", include)
	}

	f := &Filter{include: include}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid exclude pattern '%s'", pattern)
		}
		f.excludes = append(f.excludes, g)
	}
	return f, nil
}

// Default returns the filter for *.md without README.md
func Default() *Filter {
	f, _ := NewFilter(DefaultInclude, DefaultExclude)
	return f
}

// Match reports whether name (a base name) is selected
func (f *Filter) Match(name string) bool {
	ok, err := doublestar.Match(f.include, name)
	if err != nil || !ok {
		return false
	}
	for _, g := range f.excludes {
		if g.Match(name) {
			return false
		}
	}
	return true
}

// List returns the sorted base names of the files in dir selected by f.
// Subdirectories are not descended into.
func List(dir string, f *Filter) ([]string, error) {
	if f == nil {
		f = Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory '%s'", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !f.Match(entry.Name()) {
			continue
		}
		// Symlinks to directories are skipped; broken links are kept so the
		// reader reports them.
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil && info.IsDir() {
				continue
			}
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// DirExists reports whether dir exists and is a directory
func DirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
