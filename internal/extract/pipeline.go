package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/pkg/logger"
)

// Generated table file names, fixed relative to the output directory.
const (
	ColorTableFile   = "colors.json"
	SpeciesTableFile = "species.json"
)

// DefaultPreset is used when the caller names none.
const DefaultPreset = "official"

const tableFilePermission = 0o644

// Pipeline is the one-shot batch transform from upstream dump plus named
// multiplier preset to the two generated tables. Re-running with identical
// inputs produces byte-identical tables.
type Pipeline struct {
	documentPath   string
	multiplierPath string
	outputDir      string
	preset         string
	logger         logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithDocumentPath sets the upstream dump location.
func WithDocumentPath(path string) Option {
	return func(p *Pipeline) {
		if path != "" {
			p.documentPath = path
		}
	}
}

// WithMultiplierPath sets the server-multiplier document location.
func WithMultiplierPath(path string) Option {
	return func(p *Pipeline) {
		if path != "" {
			p.multiplierPath = path
		}
	}
}

// WithOutputDir sets the directory the two tables are written to.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.outputDir = dir
		}
	}
}

// WithPreset selects the named server-multiplier preset.
func WithPreset(name string) Option {
	return func(p *Pipeline) {
		if name != "" {
			p.preset = name
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New constructs a Pipeline with default paths.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		documentPath:   filepath.Join("data", "upstream", "values.json"),
		multiplierPath: filepath.Join("data", "upstream", "server-multipliers.json"),
		outputDir:      "data",
		preset:         DefaultPreset,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("extract")
	}
	return p
}

// Summary reports what a pipeline run produced.
type Summary struct {
	Species      int
	Colors       int
	ColorBytes   int
	SpeciesBytes int
}

// Run executes the extraction. A missing or unparsable upstream document
// aborts the run entirely; missing multiplier data degrades to identity
// multipliers with a warning and the run still succeeds.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	doc, err := ReadDocument(p.documentPath)
	if err != nil {
		return sum, err
	}

	preset := p.resolvePreset(ctx)

	colors := BuildColorTable(doc.ColorDefinitions, doc.DyeDefinitions)
	species := make(map[string]model.SpeciesMeta, len(doc.Species))
	for _, sp := range doc.Species {
		species[sp.Name] = BuildSpeciesMeta(sp, preset)
	}

	colorBytes, err := p.writeTable(ColorTableFile, colors)
	if err != nil {
		return sum, err
	}
	speciesBytes, err := p.writeTable(SpeciesTableFile, species)
	if err != nil {
		return sum, err
	}

	sum = Summary{
		Species:      len(species),
		Colors:       len(colors),
		ColorBytes:   colorBytes,
		SpeciesBytes: speciesBytes,
	}
	p.logger.Info(ctx, "extraction complete",
		logger.Int("species", sum.Species),
		logger.Int("colors", sum.Colors),
		logger.Int("colorBytes", sum.ColorBytes),
		logger.Int("speciesBytes", sum.SpeciesBytes),
	)
	return sum, nil
}

// resolvePreset loads the named multiplier preset. Extraction never aborts
// solely due to missing multiplier data; identity multipliers are a safe,
// documented fallback.
func (p *Pipeline) resolvePreset(ctx context.Context) []*model.StatMultiplier {
	doc, err := ReadMultiplierDocument(p.multiplierPath)
	if err != nil {
		p.logger.Warn(ctx, "multiplier document unavailable; using identity multipliers",
			logger.String("path", p.multiplierPath),
			logger.Error(err),
		)
		return nil
	}
	preset, ok := doc.Presets[p.preset]
	if !ok {
		p.logger.Warn(ctx, "multiplier preset not found; using identity multipliers",
			logger.String("preset", p.preset),
		)
		return nil
	}
	return preset
}

// writeTable serializes a table to the output directory and returns its size.
func (p *Pipeline) writeTable(name string, v any) (int, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWriteTable, name, err)
	}
	path := filepath.Join(p.outputDir, name)
	if err := os.WriteFile(path, raw, tableFilePermission); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWriteTable, name, err)
	}
	return len(raw), nil
}
