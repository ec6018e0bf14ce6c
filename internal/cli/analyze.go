package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/pipeline"
)

var (
	outJSON       string
	outMD         string
	constantsPath string
	overrides     []string
	timeout       time.Duration
	noFooter      bool
	noIndent      bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <petition.pdf>",
	Short: "Analyze a truing-up petition and generate a findings report",
	Long: `Analyze locates the generation unit's financial tables in the petition,
recomputes every claimed line item against the published constants, and
writes a graded findings report.

Example:
  trueup analyze petition-2024-25.pdf
  trueup analyze petition.pdf --json report.json --md report.md
  trueup analyze petition.pdf --constants kserc.yaml --set roe.rate=0.145`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&constantsPath, "constants", "", "constants YAML file (default: built-in registry)")
	analyzeCmd.Flags().StringArrayVar(&overrides, "set", nil, "override a constant, name=value (repeatable)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&noIndent, "compact", false, "write compact JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if noIndent {
		cfg.Output.JSONIndent = false
	}

	log := zap.NewNop()
	if verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()
	}

	p := pipeline.NewPipeline(cfg, registry, log)
	report, err := p.Analyze(ctx, path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	exitDegraded = report.Degraded

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		data, err := renderer.RenderJSON(report, cfg.Output.JSONIndent)
		if err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outJSON, err)
		}
	}
	if outMD != "" {
		if err := os.WriteFile(outMD, renderer.RenderMarkdown(report), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outMD, err)
		}
	}
	renderer.WriteSummary(os.Stdout, report)
	return nil
}

// loadRegistry resolves the constant registry: built-in defaults, an
// optional YAML file, then any --set overrides on top.
func loadRegistry() (*constants.Registry, error) {
	registry := constants.Defaults()
	if constantsPath != "" {
		loaded, err := constants.LoadFile(constantsPath)
		if err != nil {
			return nil, fmt.Errorf("load constants: %w", err)
		}
		registry = loaded
	}
	if len(overrides) == 0 {
		return registry, nil
	}
	values := make(map[string]float64, len(overrides))
	for _, kv := range overrides {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", kv, err)
		}
		values[strings.TrimSpace(name)] = v
	}
	return registry.With(values), nil
}
