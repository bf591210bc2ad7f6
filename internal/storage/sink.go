package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/infrastructure"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	batchSize    = 50
	pingAttempts = 5
	pingBackoff  = time.Second
)

// ErrUnsupportedDriver is returned by Open for unknown drivers
var ErrUnsupportedDriver = errors.New("unsupported storage driver")

// ErrRunNotFound is returned when no summary exists for a run id
var ErrRunNotFound = errors.New("run not found")

// SQLSink persists cleaned rows and their summary
type SQLSink struct {
	db      *sql.DB
	dialect dialect
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
}

// Open connects to the configured database and runs schema migrations.
// metrics may be nil.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) (*SQLSink, error) {
	var d dialect
	switch cfg.Driver {
	case DriverSQLite:
		d = sqliteDialect
	case DriverPostgres:
		d = postgresDialect
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Driver, ErrUnsupportedDriver)
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open(d.driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", d.name, err)
	}
	if d.name == DriverSQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
	}

	if err := ping(ctx, db, d); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLSink{
		db:      db,
		dialect: d,
		logger:  logger.With(slog.String("component", "storage"), slog.String("driver", d.name)),
		metrics: metrics,
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", d.name, err)
	}

	return s, nil
}

func ping(ctx context.Context, db *sql.DB, d dialect) error {
	attempts := 1
	if d.name == DriverPostgres {
		attempts = pingAttempts
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingBackoff):
		}
	}
	return fmt.Errorf("%s: ping failed after %d attempts: %w", d.name, attempts, err)
}

func (s *SQLSink) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Write stores the report summary and records of one run in a single
// transaction. Writing the same run id again replaces the earlier rows.
func (s *SQLSink) Write(ctx context.Context, report *summary.Report, records []domain.FundingRecord) (err error) {
	if report == nil || report.RunID == "" {
		return fmt.Errorf("%s: write: missing run id", s.dialect.name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", s.dialect.name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"funding_rounds", "amount_summaries"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE run_id = %s", table, s.dialect.placeholder(1))
		if _, err = tx.ExecContext(ctx, query, report.RunID); err != nil {
			return fmt.Errorf("%s: clear run: %w", s.dialect.name, err)
		}
	}

	if err = s.insertSummary(ctx, tx, report); err != nil {
		return err
	}

	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		if err = s.insertBatch(ctx, tx, report.RunID, records[i:end]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.dialect.name, err)
	}

	if s.metrics != nil {
		s.metrics.RowsPersisted.Add(ctx, int64(len(records)))
	}
	s.logger.InfoContext(ctx, "run persisted",
		slog.String("run_id", report.RunID),
		slog.Int("rows", len(records)))

	return nil
}

func (s *SQLSink) insertSummary(ctx context.Context, tx *sql.Tx, report *summary.Report) error {
	st := report.Amount
	query := fmt.Sprintf("INSERT INTO amount_summaries (%s) VALUES %s",
		strings.Join(summaryColumns, ", "), s.dialect.placeholders(0, len(summaryColumns)))

	_, err := tx.ExecContext(ctx, query,
		report.RunID, report.Source, report.GeneratedAt.UTC(), st.TotalRows, st.Count,
		nullFloat(st.Min), nullFloat(st.Max), nullFloat(st.Mean), nullFloat(st.Median), nullFloat(st.StdDev),
		nullFloat(st.Q1), nullFloat(st.Q3), nullFloat(st.IQR),
		nullIntPtr(st.OutlierCount), nullFloatPtr(st.OutlierPct),
	)
	if err != nil {
		return fmt.Errorf("%s: insert summary: %w", s.dialect.name, err)
	}
	return nil
}

func (s *SQLSink) insertBatch(ctx context.Context, tx *sql.Tx, runID string, batch []domain.FundingRecord) error {
	width := len(roundColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)

	for idx, r := range batch {
		investors, err := json.Marshal(nonNil(r.Investors))
		if err != nil {
			return fmt.Errorf("%s: encode investors: %w", s.dialect.name, err)
		}

		valueStrings = append(valueStrings, s.dialect.placeholders(idx*width, width))
		valueArgs = append(valueArgs,
			runID, r.Row, r.Startup, nullString(r.Date), nullInt(r.Year), r.DateMissing,
			r.InvestmentType, r.Industry, r.City, nullFloat(r.Amount), nullFloat(r.ZScore), string(r.AmountBucket),
			string(investors), r.InvestorCount, r.ZScoreOutlier, r.IQROutlier, r.IsOutlier,
		)
	}

	query := fmt.Sprintf("INSERT INTO funding_rounds (%s) VALUES %s",
		strings.Join(roundColumns, ", "), strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("%s: insert rounds: %w", s.dialect.name, err)
	}
	return nil
}

// Rounds reads back the records of a run ordered by row
func (s *SQLSink) Rounds(ctx context.Context, runID string) ([]domain.FundingRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM funding_rounds WHERE run_id = %s ORDER BY row_num",
		strings.Join(roundColumns[1:], ", "), s.dialect.placeholder(1))

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("%s: query rounds: %w", s.dialect.name, err)
	}
	defer rows.Close()

	var records []domain.FundingRecord
	for rows.Next() {
		var (
			r         domain.FundingRecord
			date      sql.NullString
			year      sql.NullInt64
			amount    sql.NullFloat64
			zscore    sql.NullFloat64
			bucket    string
			investors string
		)
		if err := rows.Scan(
			&r.Row, &r.Startup, &date, &year, &r.DateMissing,
			&r.InvestmentType, &r.Industry, &r.City, &amount, &zscore, &bucket,
			&investors, &r.InvestorCount, &r.ZScoreOutlier, &r.IQROutlier, &r.IsOutlier,
		); err != nil {
			return nil, fmt.Errorf("%s: scan round: %w", s.dialect.name, err)
		}

		r.Date = date.String
		r.Year = int(year.Int64)
		r.Amount = fromNullFloat(amount)
		r.ZScore = fromNullFloat(zscore)
		r.AmountBucket = domain.Bucket(bucket)
		if err := json.Unmarshal([]byte(investors), &r.Investors); err != nil {
			return nil, fmt.Errorf("%s: decode investors: %w", s.dialect.name, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Summary reads back the amount statistics of a run
func (s *SQLSink) Summary(ctx context.Context, runID string) (domain.SummaryStatistics, error) {
	query := fmt.Sprintf("SELECT %s FROM amount_summaries WHERE run_id = %s",
		strings.Join(summaryColumns[3:], ", "), s.dialect.placeholder(1))

	var (
		st       domain.SummaryStatistics
		vals     [8]sql.NullFloat64
		outliers sql.NullInt64
		pct      sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, query, runID).Scan(
		&st.TotalRows, &st.Count,
		&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5], &vals[6], &vals[7],
		&outliers, &pct,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return st, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return st, fmt.Errorf("%s: query summary: %w", s.dialect.name, err)
	}

	st.Min, st.Max, st.Mean, st.Median = fromNullFloat(vals[0]), fromNullFloat(vals[1]), fromNullFloat(vals[2]), fromNullFloat(vals[3])
	st.StdDev, st.Q1, st.Q3, st.IQR = fromNullFloat(vals[4]), fromNullFloat(vals[5]), fromNullFloat(vals[6]), fromNullFloat(vals[7])
	if outliers.Valid {
		n := int(outliers.Int64)
		st.OutlierCount = &n
	}
	if pct.Valid {
		p := pct.Float64
		st.OutlierPct = &p
	}
	return st, nil
}

// Ping checks the database connection
func (s *SQLSink) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Driver names the configured driver
func (s *SQLSink) Driver() string {
	return s.dialect.name
}

// Close closes the database
func (s *SQLSink) Close() error {
	return s.db.Close()
}

func nullFloat(n domain.Number) sql.NullFloat64 {
	v, ok := n.Float64()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func fromNullFloat(n sql.NullFloat64) domain.Number {
	if !n.Valid {
		return domain.Missing()
	}
	return domain.Known(n.Float64)
}

func nullFloatPtr(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullIntPtr(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
