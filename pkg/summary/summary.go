// Package summary renders the AGENTS.md index of converted agents, grouped
// into categories by name.
package summary

import (
	"context"
	"embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"

	"github.com/jingkaihe/agentconv/pkg/agents"
	"github.com/jingkaihe/agentconv/pkg/fileset"
	"github.com/jingkaihe/agentconv/pkg/frontmatter"
	"github.com/jingkaihe/agentconv/pkg/logger"
)

//go:embed templates/*
var templateFS embed.FS

const templateName = "agents.md.tmpl"

var summaryTemplate = template.Must(template.ParseFS(templateFS, "templates/"+templateName))

// DefaultAgentDir is the directory named in the generated document
const DefaultAgentDir = ".opencode/agent"

// Entry is one agent line of the summary
type Entry struct {
	Name        string
	Description string
}

// Section is a non-empty category of entries
type Section struct {
	Title   string
	Entries []Entry
}

type templateData struct {
	AgentDir    string
	Sections    []Section
	GeneratedAt string
}

// Generator builds the summary from the agent sources in a directory
type Generator struct {
	inputDir string
	agentDir string
	filter   *fileset.Filter
	now      func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithFilter selects which source files are listed
func WithFilter(filter *fileset.Filter) Option {
	return func(g *Generator) {
		g.filter = filter
	}
}

// WithAgentDir sets the agent directory mentioned in the document
func WithAgentDir(dir string) Option {
	return func(g *Generator) {
		g.agentDir = dir
	}
}

// WithClock overrides the generation timestamp source
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a generator reading agent sources from inputDir
func NewGenerator(inputDir string, opts ...Option) *Generator {
	g := &Generator{
		inputDir: inputDir,
		agentDir: DefaultAgentDir,
		filter:   fileset.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Entries reads every selected source file. The first read error aborts.
func (g *Generator) Entries(ctx context.Context) ([]Entry, error) {
	names, err := fileset.List(g.inputDir, g.filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list agent sources")
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(g.inputDir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read agent source '%s'", name)
		}

		agentName := agents.AgentName(name)
		entries = append(entries, Entry{
			Name:        agentName,
			Description: describe(string(content), agentName),
		})
		logger.G(ctx).WithField("file", name).Debug("Added agent to summary")
	}
	return entries, nil
}

func describe(content, name string) string {
	doc := frontmatter.Parse(content)
	if desc, ok := doc.Frontmatter.String(agents.KeyDescription); ok {
		if desc = strings.Join(strings.Fields(desc), " "); desc != "" {
			return desc
		}
	}
	return "Specialized agent for " + agents.HumanizeName(name)
}

// Group sorts entries into sections in category order. Empty categories are
// dropped and entries keep their relative order.
func Group(entries []Entry) []Section {
	byTitle := make(map[string][]Entry)
	for _, e := range entries {
		title := Categorize(e.Name)
		byTitle[title] = append(byTitle[title], e)
	}

	var sections []Section
	for _, title := range titles() {
		if len(byTitle[title]) > 0 {
			sections = append(sections, Section{Title: title, Entries: byTitle[title]})
		}
	}
	return sections
}

// Render produces the summary document for entries
func (g *Generator) Render(entries []Entry) (string, error) {
	data := templateData{
		AgentDir:    g.agentDir,
		Sections:    Group(entries),
		GeneratedAt: g.now().UTC().Format(time.RFC3339),
	}

	var buf strings.Builder
	if err := summaryTemplate.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %s", templateName)
	}
	return buf.String(), nil
}

// Write generates the summary and writes it to path
func (g *Generator) Write(ctx context.Context, path string) (int, error) {
	entries, err := g.Entries(ctx)
	if err != nil {
		return 0, err
	}

	content, err := g.Render(entries)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, errors.Wrapf(err, "failed to create directory '%s'", dir)
		}
	}
	if err := lockedfile.Write(path, strings.NewReader(content), 0o644); err != nil {
		return 0, errors.Wrapf(err, "failed to write summary '%s'", path)
	}

	logger.G(ctx).WithField("path", path).WithField("agents", len(entries)).Info("Wrote agent summary")
	return len(entries), nil
}
