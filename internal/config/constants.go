package config

// Application constants
const (
	AppName = "funding-transform"

	// EnvPrefix namespaces every environment variable, e.g. FUNDING_SERVER_PORT
	EnvPrefix = "FUNDING"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultOutputDir = "data/processed"

	DefaultRateLimit    = 20 // requests per second
	DefaultBurstSize    = 40
	DefaultMaxBodyBytes = 32 << 20

	// Output file names inside the output directory
	TableFileSuffix       = "_transformed.csv"
	SummaryJSONFileSuffix = "_summary.json"
	SummaryTextFileSuffix = "_summary.txt"
	RecordsFileSuffix     = "_records.json"
	BreakdownFileExt      = ".csv"
)

// DefaultConfigLocations are searched when no config path is given
var DefaultConfigLocations = []string{
	"config.yaml",
	"configs/config.yaml",
}

// LogicalFields are the column names the pipeline resolves through aliases
var LogicalFields = []string{
	"amount",
	"investment_type",
	"industry",
	"city",
	"investor",
	"startup",
	"date",
}

func isLogicalField(name string) bool {
	for _, f := range LogicalFields {
		if f == name {
			return true
		}
	}
	return false
}
