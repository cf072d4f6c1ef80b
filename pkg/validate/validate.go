// Package validate checks destination dialect agent documents. Findings are
// split into errors, which block adoption of a document, and advisory
// warnings.
package validate

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/jingkaihe/agentconv/pkg/agents"
	"github.com/jingkaihe/agentconv/pkg/capability"
	"github.com/jingkaihe/agentconv/pkg/fileset"
	"github.com/jingkaihe/agentconv/pkg/frontmatter"
	"github.com/jingkaihe/agentconv/pkg/logger"
)

// Finding is a single problem found in a document
type Finding struct {
	File    string
	Field   string
	Message string
}

func (f Finding) String() string {
	if f.File == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.File, f.Message)
}

// Report holds the findings for one document, in discovery order
type Report struct {
	Errors   []Finding
	Warnings []Finding
}

// Valid reports whether the document has no findings at all
func (r Report) Valid() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

func (r *Report) errorf(file, field, format string, args ...any) {
	r.Errors = append(r.Errors, Finding{File: file, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(file, field, format string, args ...any) {
	r.Warnings = append(r.Warnings, Finding{File: file, Field: field, Message: fmt.Sprintf(format, args...)})
}

// Frontmatter validates a destination frontmatter block. It performs no I/O.
func Frontmatter(block *frontmatter.Block, filename string) Report {
	var r Report

	if desc, ok := block.String(agents.KeyDescription); !ok || strings.TrimSpace(desc) == "" {
		r.errorf(filename, agents.KeyDescription, "missing required field 'description'")
	}

	if block.Has(agents.KeyMode) {
		mode, ok := block.String(agents.KeyMode)
		if !ok || !slices.Contains(agents.Modes, mode) {
			r.errorf(filename, agents.KeyMode, "invalid mode '%s', expected one of: %s",
				describe(block.Get(agents.KeyMode)), strings.Join(agents.Modes, ", "))
		}
	}

	switch t := block.Get(agents.KeyTemperature).(type) {
	case nil:
	case frontmatter.Number:
		if f := float64(t); math.IsNaN(f) || f < 0 || f > 1 {
			r.warnf(filename, agents.KeyTemperature, "temperature %s is outside the range [0.0, 1.0]", frontmatter.FormatNumber(f))
		}
	default:
		r.warnf(filename, agents.KeyTemperature, "temperature '%s' is not a number", describe(t))
	}

	switch tools := block.Get(agents.KeyTools).(type) {
	case nil:
	case *frontmatter.BoolMap:
		for _, name := range tools.Keys() {
			if !capability.IsKnown(name) {
				r.warnf(filename, agents.KeyTools, "unknown tool '%s'", name)
			}
		}
	default:
		r.warnf(filename, agents.KeyTools, "tools should be a map of tool names to booleans, got '%s'", describe(tools))
	}

	return r
}

// Document parses content and validates its frontmatter. Frontmatter that a
// strict YAML parser rejects is reported as a warning; only the field checks
// produce errors.
func Document(content, filename string) Report {
	doc := frontmatter.Parse(content)
	if !doc.HasFrontmatter {
		var r Report
		r.errorf(filename, "", "missing frontmatter block")
		return r
	}

	r := Frontmatter(doc.Frontmatter, filename)
	if err := checkYAML(content); err != nil {
		r.warnf(filename, "", "frontmatter is not valid YAML: %v", err)
	}
	return r
}

func checkYAML(content string) error {
	md := goldmark.New(
		goldmark.WithExtensions(
			meta.Meta,
		),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert([]byte(content), &buf, parser.WithContext(pctx)); err != nil {
		return errors.Wrap(err, "failed to convert markdown")
	}

	_, err := meta.TryGet(pctx)
	return err
}

func describe(v frontmatter.Value) string {
	switch t := v.(type) {
	case frontmatter.Scalar:
		return string(t)
	case frontmatter.Number:
		return frontmatter.FormatNumber(float64(t))
	case frontmatter.StringList:
		return strings.Join(t, ", ")
	case *frontmatter.BoolMap:
		return "map"
	default:
		return ""
	}
}

// FileReport is the report of one file in a directory run
type FileReport struct {
	Name string
	Report
}

// DirReport aggregates a directory run
type DirReport struct {
	Files    []FileReport
	Valid    int
	Errors   int
	Warnings int
}

// Total returns the number of files checked
func (d *DirReport) Total() int {
	return len(d.Files)
}

// WithFindings returns the reports that have at least one finding
func (d *DirReport) WithFindings() []FileReport {
	var out []FileReport
	for _, f := range d.Files {
		if !f.Report.Valid() {
			out = append(out, f)
		}
	}
	return out
}

// ReadFunc reads a file's content
type ReadFunc func(path string) ([]byte, error)

// Dir validates every selected document in dir. A file that cannot be read is
// reported as an error finding for that file. A nil read uses os.ReadFile.
func Dir(ctx context.Context, dir string, filter *fileset.Filter, read ReadFunc) (*DirReport, error) {
	if read == nil {
		read = os.ReadFile
	}

	names, err := fileset.List(dir, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list agent files")
	}

	result := &DirReport{}
	for _, name := range names {
		var r Report
		content, err := read(filepath.Join(dir, name))
		if err != nil {
			logger.G(ctx).WithError(err).WithField("file", name).Debug("Failed to read agent file")
			r.errorf(name, "", "failed to read file: %v", err)
		} else {
			r = Document(string(content), name)
		}

		if r.Valid() {
			result.Valid++
		}
		result.Errors += len(r.Errors)
		result.Warnings += len(r.Warnings)
		result.Files = append(result.Files, FileReport{Name: name, Report: r})
	}

	return result, nil
}
