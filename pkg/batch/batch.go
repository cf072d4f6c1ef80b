// Package batch converts every agent document of an input directory into an
// output directory. Failures are tracked per file and never abort the run.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"

	"github.com/jingkaihe/agentconv/pkg/agents"
	"github.com/jingkaihe/agentconv/pkg/fileset"
	"github.com/jingkaihe/agentconv/pkg/logger"
)

// ErrInputDirMissing is returned before any work when the input directory
// does not exist
var ErrInputDirMissing = errors.New("input directory does not exist")

// FileResult is the outcome for one input file
type FileResult struct {
	Name string
	// Err is set when the file was skipped
	Err error
	// Diff holds the unified diff in dry-run mode, empty when unchanged
	Diff string
}

// Skipped reports whether the file failed
func (f FileResult) Skipped() bool {
	return f.Err != nil
}

// Result aggregates a run
type Result struct {
	Files     []FileResult
	Converted int
	Skipped   int
	Unchanged int
	Err       *multierror.Error
}

// ErrorOrNil returns the combined per-file errors, or nil
func (r *Result) ErrorOrNil() error {
	return r.Err.ErrorOrNil()
}

func (r *Result) skip(ctx context.Context, name string, err error) {
	logger.G(ctx).WithError(err).WithField("file", name).Debug("Skipping agent file")
	r.Skipped++
	r.Err = multierror.Append(r.Err, errors.Wrap(err, name))
	r.Files = append(r.Files, FileResult{Name: name, Err: err})
}

// Driver converts the agent documents of one directory
type Driver struct {
	inputDir  string
	outputDir string
	filter    *fileset.Filter
	converter *agents.Converter
}

// Option configures a Driver
type Option func(*Driver)

// WithFilter selects the input files
func WithFilter(filter *fileset.Filter) Option {
	return func(d *Driver) {
		d.filter = filter
	}
}

// WithConverter sets the converter used for each file
func WithConverter(converter *agents.Converter) Option {
	return func(d *Driver) {
		d.converter = converter
	}
}

// NewDriver creates a driver from inputDir to outputDir
func NewDriver(inputDir, outputDir string, opts ...Option) (*Driver, error) {
	d := &Driver{
		inputDir:  inputDir,
		outputDir: outputDir,
		filter:    fileset.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.converter == nil {
		converter, err := agents.NewConverter()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create converter")
		}
		d.converter = converter
	}
	return d, nil
}

func (d *Driver) inputs() ([]string, error) {
	if !fileset.DirExists(d.inputDir) {
		return nil, errors.Wrapf(ErrInputDirMissing, "'%s'", d.inputDir)
	}
	names, err := fileset.List(d.inputDir, d.filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list agent files")
	}
	return names, nil
}

// Run converts every selected input file and writes it under the output
// directory, which is created when absent. Only a missing input directory or
// an uncreatable output directory is returned as an error; per-file failures
// are recorded on the Result.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	names, err := d.inputs()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory '%s'", d.outputDir)
	}

	log := logger.G(ctx).WithField("input_dir", d.inputDir).WithField("output_dir", d.outputDir)
	log.WithField("files", len(names)).Debug("Converting agent files")

	result := &Result{}
	for _, name := range names {
		converted, err := d.converter.ConvertFile(ctx, filepath.Join(d.inputDir, name))
		if err != nil {
			result.skip(ctx, name, err)
			continue
		}

		target := filepath.Join(d.outputDir, name)
		if err := lockedfile.Write(target, strings.NewReader(converted), 0o644); err != nil {
			result.skip(ctx, name, errors.Wrapf(err, "failed to write '%s'", target))
			continue
		}

		result.Converted++
		result.Files = append(result.Files, FileResult{Name: name})
		log.WithField("file", name).Debug("Converted agent file")
	}

	return result, nil
}

// Diff converts every selected input file without writing anything and
// returns a unified diff against the current output for each one
func (d *Driver) Diff(ctx context.Context) (*Result, error) {
	names, err := d.inputs()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, name := range names {
		converted, err := d.converter.ConvertFile(ctx, filepath.Join(d.inputDir, name))
		if err != nil {
			result.skip(ctx, name, err)
			continue
		}

		target := filepath.Join(d.outputDir, name)
		existing, err := os.ReadFile(target)
		if err != nil && !os.IsNotExist(err) {
			result.skip(ctx, name, errors.Wrapf(err, "failed to read '%s'", target))
			continue
		}

		diff := udiff.Unified(target, target, string(existing), converted)
		if diff == "" {
			result.Unchanged++
		} else {
			result.Converted++
		}
		result.Files = append(result.Files, FileResult{Name: name, Diff: diff})
	}

	return result, nil
}
