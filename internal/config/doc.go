// Package config loads the configuration of the funding transformation tool.
//
// # Configuration Sources
//
// Configuration is resolved from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A .env file in the working directory
//  3. A YAML configuration file
//  4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FUNDING_<SECTION>_<FIELD>:
//
//	FUNDING_LOGGING_LEVEL=debug
//	FUNDING_PIPELINE_STRICT=true
//	FUNDING_PIPELINE_OUTLIER_Z_THRESHOLD=3.5
//	FUNDING_STORAGE_DRIVER=sqlite
//	FUNDING_STORAGE_DSN=data/funding.db
//	FUNDING_SERVER_PORT=8080
//
// Column aliases can only be set from the YAML file:
//
//	columns:
//	  aliases:
//	    amount: [amount_in_inr]
//
// # Validation
//
// Load validates every section with go-playground/validator and rejects
// unknown logical fields in column aliases.
package config
