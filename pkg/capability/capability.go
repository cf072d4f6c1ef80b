// Package capability translates legacy tool names into the fixed set of
// capability flags understood by the destination agent format.
package capability

import (
	"slices"

	"github.com/jingkaihe/agentconv/pkg/frontmatter"
)

// Capability names, in output order
const (
	Read      = "read"
	Write     = "write"
	Edit      = "edit"
	Bash      = "bash"
	Grep      = "grep"
	Glob      = "glob"
	List      = "list"
	Patch     = "patch"
	TodoWrite = "todowrite"
	TodoRead  = "todoread"
	WebFetch  = "webfetch"
)

// Wildcard is the legacy tool name that grants every capability
const Wildcard = "*"

var names = []string{Read, Write, Edit, Bash, Grep, Glob, List, Patch, TodoWrite, TodoRead, WebFetch}

var defaults = map[string]bool{Read: true, Grep: true, Glob: true}

// legacyTools maps legacy tool names to the capabilities they grant
var legacyTools = map[string][]string{
	"Read":         {Read},
	"Write":        {Write},
	"Edit":         {Edit},
	"MultiEdit":    {Edit, Patch},
	"Bash":         {Bash},
	"Grep":         {Grep},
	"Glob":         {Glob},
	"LS":           {List},
	"WebFetch":     {WebFetch},
	"WebSearch":    {WebFetch},
	"TodoWrite":    {TodoWrite, TodoRead},
	"TodoRead":     {TodoRead},
	"NotebookRead": {Read},
	"NotebookEdit": {Edit},
}

// Names returns the recognized capability names in output order
func Names() []string {
	return slices.Clone(names)
}

// IsKnown reports whether name is a recognized capability
func IsKnown(name string) bool {
	return slices.Contains(names, name)
}

// Default returns the baseline map: read, grep and glob enabled, everything
// else disabled
func Default() *frontmatter.BoolMap {
	m := frontmatter.NewBoolMap()
	for _, name := range names {
		m.Set(name, defaults[name])
	}
	return m
}

// All returns a map with every capability enabled
func All() *frontmatter.BoolMap {
	m := frontmatter.NewBoolMap()
	for _, name := range names {
		m.Set(name, true)
	}
	return m
}

func grants(tool string) *frontmatter.BoolMap {
	if tool == Wildcard {
		return All()
	}
	caps, ok := legacyTools[tool]
	if !ok {
		return nil
	}
	m := frontmatter.NewBoolMap()
	for _, c := range caps {
		m.Set(c, true)
	}
	return m
}

// TranslateList merges the grants of every known tool onto Default.
// Unknown tool names grant nothing.
func TranslateList(tools []string) *frontmatter.BoolMap {
	result := Default()
	for _, tool := range tools {
		if g := grants(tool); g != nil {
			result.Merge(g)
		}
	}
	return result
}

// Translate converts a frontmatter tools value to a capability map. A map
// that is already in the destination format is returned unchanged.
func Translate(v frontmatter.Value) *frontmatter.BoolMap {
	switch t := v.(type) {
	case *frontmatter.BoolMap:
		return t
	case frontmatter.StringList:
		return TranslateList(t)
	case frontmatter.Scalar:
		return TranslateList(frontmatter.SplitList(string(t)))
	default:
		return Default()
	}
}

// Unknown returns the tool names that have no translation
func Unknown(tools []string) []string {
	var unknown []string
	for _, tool := range tools {
		if tool == Wildcard {
			continue
		}
		if _, ok := legacyTools[tool]; !ok {
			unknown = append(unknown, tool)
		}
	}
	return unknown
}
