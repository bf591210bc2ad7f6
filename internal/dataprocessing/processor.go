package dataprocessing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/amount"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/canonical"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/infrastructure"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/investors"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/outlier"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Options configure a Processor
type Options struct {
	Outlier           outlier.Config
	Strict            bool
	NormalizeMissing  bool
	MissingTokens     []string
	StripNameSuffixes bool
	// Aliases are tried before DefaultAliases for the same field
	Aliases map[string][]string
}

// DefaultOptions returns lenient options with missing-token cleaning on
func DefaultOptions() Options {
	return Options{
		Outlier:          outlier.DefaultConfig(),
		NormalizeMissing: true,
	}
}

// Result is the outcome of one run
type Result struct {
	RunID      string
	Table      *Table
	Records    []domain.FundingRecord
	Report     *summary.Report
	Resolution Resolution
}

// Processor runs the cleaning pipeline over tables
type Processor struct {
	logger   *slog.Logger
	opts     Options
	detector *outlier.Detector
	aliases  Aliases
	missing  MissingTokens
	metrics  *infrastructure.PipelineMetrics
	tracer   trace.Tracer
}

// NewProcessor creates a processor. metrics may be nil.
func NewProcessor(logger *slog.Logger, opts Options, metrics *infrastructure.PipelineMetrics) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	tokens := opts.MissingTokens
	if len(tokens) == 0 {
		tokens = DefaultMissingTokens()
	}

	return &Processor{
		logger:   infrastructure.WithComponent(logger, "processor"),
		opts:     opts,
		detector: outlier.NewDetector(opts.Outlier),
		aliases:  DefaultAliases().Merge(opts.Aliases),
		missing:  NewMissingTokens(tokens),
		metrics:  metrics,
		tracer:   otel.Tracer(infrastructure.InstrumentationName),
	}
}

// stage outputs, each written by exactly one goroutine
type stages struct {
	amounts   []domain.Number
	detection outlier.Result
	buckets   []domain.Bucket
	stats     domain.SummaryStatistics

	labels map[string][]string

	investors investors.Column
	names     []string
	dates     DateColumns
}

// canonicalFields are the columns rewritten through a vocabulary
var canonicalFields = []string{FieldInvestmentType, FieldIndustry, FieldCity}

// Process cleans a copy of input and returns the augmented table with its
// records and report. The input table is not modified.
func (p *Processor) Process(ctx context.Context, input *Table) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	if infrastructure.GetTraceID(ctx) == "" {
		ctx = infrastructure.WithTraceID(ctx, runID)
	}

	ctx, span := p.tracer.Start(ctx, "funding.process",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("rows", input.Len()),
		))
	defer span.End()

	result, err := p.process(ctx, runID, input)
	infrastructure.RecordRun(ctx, p.metrics, time.Since(start), input.Len(), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		p.logger.ErrorContext(ctx, "transformation failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()))
		return nil, err
	}

	p.logger.InfoContext(ctx, "transformation complete",
		slog.String("run_id", runID),
		slog.Int("rows", input.Len()),
		slog.Int("outliers", derefInt(result.Report.Amount.OutlierCount)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

func (p *Processor) process(ctx context.Context, runID string, input *Table) (*Result, error) {
	t := input.Clone()
	res := ResolveColumns(t, p.aliases)

	for _, field := range res.Missing {
		if p.opts.Strict && isCanonicalField(field) {
			return nil, fmt.Errorf("%s: %w", field, ErrColumnMissing)
		}
		p.logger.WarnContext(ctx, "column absent, skipping", slog.String("field", field))
		if p.metrics != nil {
			p.metrics.ColumnsSkipped.Add(ctx, 1)
		}
	}

	if p.opts.NormalizeMissing {
		for field := range res.Columns {
			if field == FieldAmount {
				continue
			}
			cells, _ := t.Column(field)
			if err := t.SetColumn(field, p.missing.Clean(cells)); err != nil {
				return nil, err
			}
		}
	}

	out := stages{labels: make(map[string][]string, len(canonicalFields))}
	rows := t.Len()
	var labelsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.stage(gctx, "amount", func(ctx context.Context) {
			cells, _ := t.Column(FieldAmount)
			out.amounts = make([]domain.Number, rows)
			for i := range out.amounts {
				if i < len(cells) {
					out.amounts[i] = amount.Normalize(cells[i])
				}
			}
			out.detection = p.detector.Detect(out.amounts)
			out.buckets = amount.BucketColumn(out.amounts)
			out.stats = summary.Summarize(out.amounts, out.detection.Flags)
		})
	})

	for _, field := range canonicalFields {
		cells, ok := t.Column(field)
		if !ok {
			continue
		}
		vocab, err := canonical.ForField(field)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			return p.stage(gctx, field, func(ctx context.Context) {
				labels := canonical.Apply(vocab, cells)
				infrastructure.RecordFallbacks(ctx, p.metrics, field, countFallbacks(vocab, cells, labels))
				labelsMu.Lock()
				out.labels[field] = labels
				labelsMu.Unlock()
			})
		})
	}

	g.Go(func() error {
		return p.stage(gctx, "investors", func(context.Context) {
			cells, ok := t.Column(FieldInvestor)
			out.investors = investors.ParseColumn(cells, ok, rows)
		})
	})

	if cells, ok := t.Column(FieldStartup); ok {
		g.Go(func() error {
			return p.stage(gctx, "startup", func(context.Context) {
				out.names = make([]string, len(cells))
				for i, c := range cells {
					out.names[i] = CleanStartupName(c, p.opts.StripNameSuffixes)
				}
			})
		})
	}

	g.Go(func() error {
		return p.stage(gctx, "date", func(context.Context) {
			cells, ok := t.Column(FieldDate)
			if !ok {
				cells = make([]string, rows)
			}
			out.dates = ParseDateColumn(cells)
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := p.assemble(t, res, &out); err != nil {
		return nil, fmt.Errorf("assemble output: %w", err)
	}

	zscore, iqr, total := outlier.Count(out.detection.Flags)
	infrastructure.RecordOutliers(ctx, p.metrics, zscore, iqr, total)
	if p.metrics != nil {
		p.metrics.MissingAmounts.Add(ctx, int64(rows-out.stats.Count))
	}

	withNames, names, maxPerRow := out.investors.Totals()
	categories := make(map[string]map[string]int, len(out.labels))
	for field, labels := range out.labels {
		categories[field] = canonical.Counts(labels)
	}

	report := &summary.Report{
		RunID:          runID,
		GeneratedAt:    time.Now().UTC(),
		Amount:         out.stats,
		ZScoreOutliers: zscore,
		IQROutliers:    iqr,
		Buckets:        amount.CountBuckets(out.buckets),
		Categories:     categories,
		Investors: summary.InvestorStats{
			Present:       t.HasColumn(FieldInvestor),
			RowsWithNames: withNames,
			TotalNames:    names,
			MaxPerRow:     maxPerRow,
		},
		SkippedColumns: res.Missing,
	}

	return &Result{
		RunID:      runID,
		Table:      t,
		Records:    buildRecords(rows, &out),
		Report:     report,
		Resolution: res,
	}, nil
}

// stage runs fn inside a span and records its duration
func (p *Processor) stage(ctx context.Context, name string, fn func(context.Context)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := p.tracer.Start(ctx, "funding.stage."+name)
	defer span.End()

	start := time.Now()
	fn(ctx)
	elapsed := time.Since(start)

	infrastructure.RecordStage(ctx, p.metrics, name, elapsed)
	p.logger.DebugContext(ctx, "stage complete",
		slog.String("stage", name),
		slog.Duration("duration", elapsed))

	return nil
}

type outputColumn struct {
	name   string
	values []string
}

// assemble writes the stage outputs into t. Columns whose stage did not run
// are left out, except that year and date_missing are always written.
func (p *Processor) assemble(t *Table, res Resolution, out *stages) error {
	rows := t.Len()
	cols := []outputColumn{
		{FieldAmount, amount.FormatColumn(out.amounts)},
		{FieldStartup, out.names},
	}
	if _, ok := res.Columns[FieldDate]; ok {
		cols = append(cols, outputColumn{FieldDate, out.dates.Dates})
	}
	for _, field := range canonicalFields {
		cols = append(cols, outputColumn{field, out.labels[field]})
	}

	zscores := make([]string, rows)
	zFlags := make([]string, rows)
	iqrFlags := make([]string, rows)
	anyFlags := make([]string, rows)
	buckets := make([]string, rows)
	lists := make([]string, rows)
	counts := make([]string, rows)
	dateMissing := make([]string, rows)
	for i := 0; i < rows; i++ {
		flag := out.detection.Flags[i]
		zscores[i] = out.detection.ZScores[i].String()
		zFlags[i] = strconv.FormatBool(flag.ZScoreOutlier)
		iqrFlags[i] = strconv.FormatBool(flag.IQROutlier)
		anyFlags[i] = strconv.FormatBool(flag.IsOutlier)
		buckets[i] = string(out.buckets[i])
		encoded, err := json.Marshal(out.investors.Lists[i])
		if err != nil {
			return err
		}
		lists[i] = string(encoded)
		counts[i] = strconv.Itoa(out.investors.Counts[i])
		dateMissing[i] = strconv.FormatBool(out.dates.Missing[i])
	}

	cols = append(cols,
		outputColumn{ColumnZScore, zscores},
		outputColumn{ColumnZScoreOutlier, zFlags},
		outputColumn{ColumnIQROutlier, iqrFlags},
		outputColumn{ColumnIsOutlier, anyFlags},
		outputColumn{ColumnAmountBucket, buckets},
		outputColumn{ColumnInvestorList, lists},
		outputColumn{ColumnInvestorCount, counts},
		outputColumn{ColumnYear, out.dates.Years},
		outputColumn{ColumnDateMissing, dateMissing},
	)

	for _, c := range cols {
		if c.values == nil {
			continue
		}
		if err := t.SetColumn(c.name, c.values); err != nil {
			return err
		}
	}
	return nil
}

func buildRecords(rows int, out *stages) []domain.FundingRecord {
	records := make([]domain.FundingRecord, rows)
	for i := range records {
		r := domain.FundingRecord{
			Row:           i + 1,
			Amount:        out.amounts[i],
			ZScore:        out.detection.ZScores[i],
			AmountBucket:  out.buckets[i],
			Investors:     out.investors.Lists[i],
			InvestorCount: out.investors.Counts[i],
			DateMissing:   out.dates.Missing[i],
			OutlierFlag:   out.detection.Flags[i],
		}
		if out.names != nil {
			r.Startup = out.names[i]
		}
		if !out.dates.Missing[i] {
			r.Date = out.dates.Dates[i]
			r.Year, _ = strconv.Atoi(out.dates.Years[i])
		}
		if labels, ok := out.labels[FieldInvestmentType]; ok {
			r.InvestmentType = labels[i]
		}
		if labels, ok := out.labels[FieldIndustry]; ok {
			r.Industry = labels[i]
		}
		if labels, ok := out.labels[FieldCity]; ok {
			r.City = labels[i]
		}
		records[i] = r
	}
	return records
}

// countFallbacks counts non-empty values that no rule or table entry matched
func countFallbacks(c canonical.Canonicalizer, cells, labels []string) int {
	n := 0
	switch v := c.(type) {
	case *canonical.PatternVocabulary:
		for i, label := range labels {
			if label == v.Fallback() && cells[i] != "" {
				n++
			}
		}
	case *canonical.LookupVocabulary:
		for _, cell := range cells {
			if cell != "" && !v.Known(cell) {
				n++
			}
		}
	}
	return n
}

func isCanonicalField(field string) bool {
	for _, f := range canonicalFields {
		if f == field {
			return true
		}
	}
	return false
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
