package storage

import "fmt"

// dialect holds the driver-specific SQL
type dialect struct {
	name       string
	driverName string
	floatType  string
	timeType   string
}

var (
	sqliteDialect   = dialect{name: DriverSQLite, driverName: "sqlite", floatType: "REAL", timeType: "TIMESTAMP"}
	postgresDialect = dialect{name: DriverPostgres, driverName: "postgres", floatType: "DOUBLE PRECISION", timeType: "TIMESTAMPTZ"}
)

// placeholder returns the n-th (1-based) bind parameter
func (d dialect) placeholder(n int) string {
	if d.name == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// placeholders returns "(p1,p2,...)" for one row starting after offset
func (d dialect) placeholders(offset, count int) string {
	buf := make([]byte, 0, count*4+2)
	buf = append(buf, '(')
	for i := 1; i <= count; i++ {
		if i > 1 {
			buf = append(buf, ',')
		}
		buf = append(buf, d.placeholder(offset+i)...)
	}
	return string(append(buf, ')'))
}

func (d dialect) schema() []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS amount_summaries (
			run_id       TEXT PRIMARY KEY,
			source       TEXT NOT NULL DEFAULT '',
			generated_at %[2]s NOT NULL,
			total_rows   INTEGER NOT NULL,
			amount_count INTEGER NOT NULL,
			min_amount   %[1]s,
			max_amount   %[1]s,
			mean_amount  %[1]s,
			median       %[1]s,
			std_dev      %[1]s,
			q1           %[1]s,
			q3           %[1]s,
			iqr          %[1]s,
			outliers     INTEGER,
			pct_outliers %[1]s
		)`, d.floatType, d.timeType),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS funding_rounds (
			run_id          TEXT    NOT NULL,
			row_num         INTEGER NOT NULL,
			startup         TEXT    NOT NULL DEFAULT '',
			funding_date    TEXT,
			funding_year    INTEGER,
			date_missing    BOOLEAN NOT NULL,
			investment_type TEXT    NOT NULL DEFAULT '',
			industry        TEXT    NOT NULL DEFAULT '',
			city            TEXT    NOT NULL DEFAULT '',
			amount          %[1]s,
			z_score         %[1]s,
			amount_bucket   TEXT    NOT NULL,
			investors       TEXT    NOT NULL DEFAULT '[]',
			investor_count  INTEGER NOT NULL DEFAULT 0,
			zscore_outlier  BOOLEAN NOT NULL,
			iqr_outlier     BOOLEAN NOT NULL,
			is_outlier      BOOLEAN NOT NULL,
			PRIMARY KEY (run_id, row_num)
		)`, d.floatType),
		`CREATE INDEX IF NOT EXISTS idx_funding_rounds_city ON funding_rounds(city)`,
		`CREATE INDEX IF NOT EXISTS idx_funding_rounds_investment_type ON funding_rounds(investment_type)`,
		`CREATE INDEX IF NOT EXISTS idx_funding_rounds_industry ON funding_rounds(industry)`,
	}
}

// roundColumns is the insert order of funding_rounds
var roundColumns = []string{
	"run_id", "row_num", "startup", "funding_date", "funding_year", "date_missing",
	"investment_type", "industry", "city", "amount", "z_score", "amount_bucket",
	"investors", "investor_count", "zscore_outlier", "iqr_outlier", "is_outlier",
}

// summaryColumns is the insert order of amount_summaries
var summaryColumns = []string{
	"run_id", "source", "generated_at", "total_rows", "amount_count",
	"min_amount", "max_amount", "mean_amount", "median", "std_dev",
	"q1", "q3", "iqr", "outliers", "pct_outliers",
}
