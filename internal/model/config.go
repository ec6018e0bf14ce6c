package model

// Config holds all runtime configuration for an analysis run.
// It is resolved once by the CLI (flags > env > config file > defaults)
// and passed down immutably; components never read ambient state.
type Config struct {
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Bands       BandsConfig       `yaml:"bands"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ExtractionConfig tunes the geometry clustering of the cell extractor.
type ExtractionConfig struct {
	RowTolerance    float64 `yaml:"row_tolerance"`    // max Y drift within one logical row, in points
	ColumnTolerance float64 `yaml:"column_tolerance"` // max X drift within one column stop, in points
	MaxContinuation int     `yaml:"max_continuation"` // pages to probe for multi-page tables
}

// BandsConfig carries the default tolerance band plus per-heuristic
// overrides keyed by heuristic ID.
type BandsConfig struct {
	Default   Bands            `yaml:"default"`
	Overrides map[string]Bands `yaml:"overrides,omitempty"`
}

// For returns the band for a heuristic, falling back to the default.
func (b BandsConfig) For(heuristicID string) Bands {
	if band, ok := b.Overrides[heuristicID]; ok {
		return band
	}
	return b.Default
}

// ConcurrencyConfig bounds the parallel stages of the pipeline.
type ConcurrencyConfig struct {
	ExtractionWorkers int `yaml:"extraction_workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	JSONIndent    bool `yaml:"json_indent"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			RowTolerance:    3.0,
			ColumnTolerance: 6.0,
			MaxContinuation: 3,
		},
		Bands: BandsConfig{
			Default: DefaultBands(),
		},
		Concurrency: ConcurrencyConfig{
			ExtractionWorkers: 8,
		},
		Output: OutputConfig{
			JSONIndent:    true,
			IncludeFooter: true,
		},
	}
}
