// Package agents rewrites agent definition files from the legacy dialect
// (comma separated tools, model aliases) into the destination dialect
// (mode, temperature and a boolean capability map).
package agents

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/agentconv/pkg/capability"
	"github.com/jingkaihe/agentconv/pkg/frontmatter"
	"github.com/jingkaihe/agentconv/pkg/logger"
)

// Agent modes accepted by the destination format
const (
	ModePrimary  = "primary"
	ModeSubagent = "subagent"
	ModeAll      = "all"
)

// Modes lists every valid mode
var Modes = []string{ModePrimary, ModeSubagent, ModeAll}

// DefaultTemperature is used when the source does not specify a usable temperature
const DefaultTemperature = 0.3

// Frontmatter keys
const (
	KeyDescription = "description"
	KeyMode        = "mode"
	KeyModel       = "model"
	KeyTemperature = frontmatter.TemperatureKey
	KeyTools       = frontmatter.ToolsKey
)

// Converter rewrites agent documents into the destination dialect
type Converter struct {
	defaultTemperature float64
	models             map[string]string
}

// ConverterOption configures a Converter
type ConverterOption func(*Converter) error

// WithDefaultTemperature overrides the temperature used when the source has none
func WithDefaultTemperature(temperature float64) ConverterOption {
	return func(c *Converter) error {
		if math.IsNaN(temperature) || temperature < 0 || temperature > 1 {
			return errors.Errorf("default temperature %v must be within [0, 1]", temperature)
		}
		c.defaultTemperature = temperature
		return nil
	}
}

// WithModels adds or overrides model alias translations
func WithModels(models map[string]string) ConverterOption {
	return func(c *Converter) error {
		for alias, id := range models {
			alias = normalizeModelAlias(alias)
			if alias == "" || strings.TrimSpace(id) == "" {
				return errors.Errorf("invalid model translation %q -> %q", alias, id)
			}
			c.models[alias] = strings.TrimSpace(id)
		}
		return nil
	}
}

// NewConverter creates a converter with the default model table and temperature
func NewConverter(opts ...ConverterOption) (*Converter, error) {
	c := &Converter{
		defaultTemperature: DefaultTemperature,
		models:             defaultModels(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.Wrap(err, "failed to apply converter option")
		}
	}

	return c, nil
}

// Convert rewrites content into the destination dialect. It never fails:
// missing or malformed metadata falls back to defaults and the body is kept
// verbatim.
func (c *Converter) Convert(ctx context.Context, content, filename string) string {
	doc := frontmatter.Parse(content)
	block := c.Frontmatter(ctx, doc, filename)
	return frontmatter.Compose(block, doc.Body)
}

// ConvertFile reads path and converts its content
func (c *Converter) ConvertFile(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read agent file '%s'", path)
	}
	return c.Convert(ctx, string(content), filepath.Base(path)), nil
}

// Frontmatter builds the destination block for a parsed source document
func (c *Converter) Frontmatter(ctx context.Context, doc *frontmatter.Document, filename string) *frontmatter.Block {
	source := doc.Frontmatter
	out := frontmatter.NewBlock()

	out.Set(KeyDescription, frontmatter.Scalar(ResolveDescription(source, doc.Body, filename)))
	out.Set(KeyMode, frontmatter.Scalar(ModeSubagent))

	if alias, ok := source.String(KeyModel); ok {
		if id, found := c.ResolveModel(alias); found {
			out.Set(KeyModel, frontmatter.Scalar(id))
		} else {
			logger.G(ctx).WithField("file", filename).WithField("model", alias).Debug("No model translation, omitting model")
		}
	}

	out.Set(KeyTemperature, frontmatter.Number(c.temperature(source.Get(KeyTemperature))))

	tools := source.Get(KeyTools)
	if list, ok := tools.(frontmatter.StringList); ok {
		if unknown := capability.Unknown(list); len(unknown) > 0 {
			logger.G(ctx).WithField("file", filename).WithField("tools", unknown).Debug("Ignoring tools without a capability translation")
		}
	}
	out.Set(KeyTools, capability.Translate(tools))

	return out
}

func (c *Converter) temperature(v frontmatter.Value) float64 {
	switch t := v.(type) {
	case frontmatter.Number:
		return float64(t)
	case frontmatter.Scalar:
		if f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return c.defaultTemperature
}
