// Package pipeline orchestrates the complete analysis of one filing: open
// and validate, find the generation chapter, locate and extract the
// tables, map them to canonical records, evaluate the heuristic bank and
// fold the results into a report.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/regulint/trueup/internal/aggregate"
	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/document"
	"github.com/regulint/trueup/internal/extract"
	"github.com/regulint/trueup/internal/heuristics"
	"github.com/regulint/trueup/internal/locate"
	"github.com/regulint/trueup/internal/mapper"
	"github.com/regulint/trueup/internal/model"
	"github.com/regulint/trueup/internal/worker"
)

// sniffPages bounds the metadata scan at the front of the document.
const sniffPages = 10

// Pipeline runs the full analysis for one filing.
type Pipeline struct {
	config   *model.Config
	registry *constants.Registry
	engine   *heuristics.Engine
	pool     *worker.Pool
	log      *zap.Logger
}

// NewPipeline creates a pipeline with the given configuration and constant
// registry. A nil logger disables logging.
func NewPipeline(cfg *model.Config, reg *constants.Registry, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		config:   cfg,
		registry: reg,
		engine:   heuristics.NewEngine(),
		pool:     worker.NewPool(cfg.Concurrency.ExtractionWorkers),
		log:      log,
	}
}

// Analyze runs the pipeline over the filing at path. Missing tables and
// skipped heuristics degrade the report; only an unreadable document, an
// unlocatable generation chapter or an absent summary table are fatal.
func (p *Pipeline) Analyze(ctx context.Context, path string) (*model.OverallReport, error) {
	reader, err := document.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return p.AnalyzeReader(ctx, reader, path)
}

// AnalyzeReader runs the pipeline over an already opened document. The
// path appears only in log output.
func (p *Pipeline) AnalyzeReader(ctx context.Context, reader document.Reader, path string) (*model.OverallReport, error) {
	if err := p.registry.Validate(heuristics.RequiredConstants()); err != nil {
		return nil, fmt.Errorf("constants registry %s: %w", p.registry.Version(), err)
	}

	md, err := document.Sniff(reader, sniffPages)
	if err != nil {
		p.log.Warn("metadata sniff failed", zap.Error(err))
	}
	p.log.Info("document opened",
		zap.String("path", path),
		zap.Int("pages", md.Pages),
		zap.String("fiscal_year", md.FiscalYear),
		zap.String("document_type", md.DocumentType))

	chapter, err := locate.FindGenerationChapter(reader)
	if err != nil {
		return nil, fmt.Errorf("find generation chapter: %w", err)
	}
	p.log.Info("generation chapter found",
		zap.Int("start_page", chapter.StartPage),
		zap.Int("end_page", chapter.EndPage))

	locator := locate.NewLocator(reader, p.config.Extraction)
	regions, missing, err := locator.LocateAll(ctx, chapter, locate.Fingerprints())
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		p.log.Warn("table not found", zap.String("table", string(id)))
	}

	tables, extractFailed := p.extractAll(ctx, reader, regions)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	missing = append(missing, extractFailed...)

	arr, ok := tables[model.TableARRSummary]
	if !ok {
		return nil, fmt.Errorf("ARR summary table not found in pages %d-%d", chapter.StartPage, chapter.EndPage)
	}
	items, err := mapper.MapARR(arr)
	if err != nil {
		return nil, fmt.Errorf("map ARR summary: %w", err)
	}
	p.attachNarratives(reader, regions, items)

	data := &model.Dataset{
		Items:         items,
		Schedules:     mapper.MapSchedules(tables),
		MissingTables: missing,
	}

	results, err := p.engine.EvaluateAll(ctx, heuristics.Input{
		Data:      data,
		Constants: p.registry,
		Bands:     p.config.Bands,
	})
	if err != nil {
		return nil, err
	}

	report := aggregate.BuildReport(data, results, aggregate.ReportMeta{
		FiscalYear:       md.FiscalYear,
		DocumentType:     md.DocumentType,
		Pages:            md.Pages,
		ConstantsVersion: p.registry.Version(),
	})
	p.log.Info("analysis complete",
		zap.String("overall", string(report.Overall)),
		zap.Float64("total_excess", report.TotalExcess),
		zap.Bool("degraded", report.Degraded))
	return report, nil
}

// extractAll pulls every located region into a grid through the worker
// pool. Failed extractions are logged and reported as missing tables.
func (p *Pipeline) extractAll(ctx context.Context, reader document.Reader, regions map[model.TableID]locate.Region) (map[model.TableID]*model.RawTable, []model.TableID) {
	ordered := make([]locate.Region, 0, len(regions))
	for _, fp := range locate.Fingerprints() {
		if r, ok := regions[fp.ID]; ok {
			ordered = append(ordered, r)
		}
	}

	extractor := extract.NewExtractor(reader, p.config.Extraction)
	results := p.pool.ExtractAll(ctx, ordered, extractor.Extract)

	tables := make(map[model.TableID]*model.RawTable, len(results))
	var failed []model.TableID
	for _, res := range results {
		if res.Err != nil {
			p.log.Warn("table extraction failed", zap.String("table", string(res.ID)), zap.Error(res.Err))
			failed = append(failed, res.ID)
			continue
		}
		tables[res.ID] = res.Table
	}
	return tables, failed
}

// attachNarratives parses each item's variance explanation from the text
// around its supporting table, falling back to the summary table's pages.
func (p *Pipeline) attachNarratives(reader document.Reader, regions map[model.TableID]locate.Region, items map[model.LineItem]*model.LineItemRecord) {
	for li, rec := range items {
		region, ok := regions[narrativeSource(li)]
		if !ok {
			region, ok = regions[model.TableARRSummary]
			if !ok {
				continue
			}
		}
		rec.Narrative = mapper.ParseNarrative(p.regionText(reader, region))
	}
}

// narrativeSource maps a line item to the table whose surrounding text
// carries its variance discussion.
func narrativeSource(li model.LineItem) model.TableID {
	switch li {
	case model.ItemDepreciation:
		return model.TableDepSchedule
	case model.ItemFuel:
		return model.TableFuelStations
	case model.ItemOM:
		return model.TableOMSummary
	case model.ItemIFC:
		return model.TableIFCSBUG
	case model.ItemMasterTrust:
		return model.TableMTBondInt
	case model.ItemNTI:
		return model.TableNTIAccounts
	case model.ItemIntangibles:
		return model.TableIntangiblesA
	case model.ItemOtherExp, model.ItemExceptional:
		return model.TableARRSummary
	default:
		return model.TableARRSummary
	}
}

func (p *Pipeline) regionText(reader document.Reader, region locate.Region) string {
	text := ""
	for n := region.StartPage; n <= region.EndPage+1 && n <= reader.NumPages(); n++ {
		page, err := reader.Page(n)
		if err != nil {
			continue
		}
		if text != "" {
			text += "\n"
		}
		text += page.Text
	}
	return text
}
