// Package exporter writes the results of a transformation run to disk.
//
// CSVWriter writes the augmented table, optionally prefixed with a UTF-8 BOM
// for Excel. CategoryExporter aggregates cleaned records per investment type,
// industry, city or year. Exporter ties them together with the JSON and text
// summary reports and the JSON record dump:
//
//	exp := exporter.NewExporter(logger, exporter.Options{BOM: true, Records: true})
//	written, err := exp.Export(ctx, config.ResolveOutputPaths(input, outDir), exporter.Output{
//		Table:   result.Table,
//		Records: result.Records,
//		Report:  result.Report,
//	})
package exporter
