// Package dataprocessing loads raw startup funding tables and runs the
// cleaning pipeline over them.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: reads CSV or XLSX input into a Table of string cells
// 2. Column resolution: snake_cases headers and maps them onto logical fields
// 3. Processor: runs the amount, categorical, investor, name and date stages
//
// # Usage
//
//	table, err := dataprocessing.LoadFile("startup_funding.csv")
//	if err != nil {
//	    return err
//	}
//
//	processor := dataprocessing.NewProcessor(logger, dataprocessing.DefaultOptions(), metrics)
//	result, err := processor.Process(ctx, table)
//
// # Data Flow
//
//	CSV/XLSX → Table → snake_case headers → alias resolution → stages → augmented Table + Report
//
// The amount stages run in order (normalize, detect, bucket, summarize);
// every other stage is independent and runs concurrently.
//
// # Error Handling
//
// Dirty values never fail a run: they degrade to missing or to a fallback
// label. Only structural problems surface as errors, such as an unreadable
// file, an unsupported format, or an absent column in strict mode.
package dataprocessing
