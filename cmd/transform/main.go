// Command funding cleans the Indian startup funding dataset.
//
//	funding transform startup_funding.csv --output-dir out
//	funding summary startup_funding.csv
//	funding vocab city Bangalore "New Delhi"
//	funding serve --port 8080
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
