package exporter

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Grouping keys understood by GenerateCategorySummaries
const (
	GroupInvestmentType = "investment_type"
	GroupIndustry       = "industry"
	GroupCity           = "city"
	GroupYear           = "year"
)

// CategoryExporter writes per-category breakdowns of cleaned records
type CategoryExporter struct {
	csvWriter *CSVWriter
}

// NewCategoryExporter creates a category breakdown exporter
func NewCategoryExporter(csvWriter *CSVWriter) *CategoryExporter {
	return &CategoryExporter{csvWriter: csvWriter}
}

// CategorySummary aggregates the rounds that share one label
type CategorySummary struct {
	Group       string
	Label       string
	Rounds      int
	WithAmount  int
	TotalAmount float64
	MeanAmount  domain.Number
	MaxAmount   domain.Number
	Outliers    int
	FirstYear   int
	LastYear    int
}

// GroupKey returns the label of r under group, "" when r has none
func GroupKey(r domain.FundingRecord, group string) (string, error) {
	switch group {
	case GroupInvestmentType:
		return r.InvestmentType, nil
	case GroupIndustry:
		return r.Industry, nil
	case GroupCity:
		return r.City, nil
	case GroupYear:
		return formatYear(r.Year), nil
	default:
		return "", fmt.Errorf("unknown grouping %q", group)
	}
}

// GenerateCategorySummaries groups records by group, sorted by descending
// round count and then label. Records without a label are grouped under "".
func (c *CategoryExporter) GenerateCategorySummaries(records []domain.FundingRecord, group string) ([]CategorySummary, error) {
	byLabel := make(map[string]*CategorySummary)
	for _, r := range records {
		label, err := GroupKey(r, group)
		if err != nil {
			return nil, err
		}

		s, ok := byLabel[label]
		if !ok {
			s = &CategorySummary{Group: group, Label: label}
			byLabel[label] = s
		}

		s.Rounds++
		if r.IsOutlier {
			s.Outliers++
		}
		if r.Year != 0 {
			if s.FirstYear == 0 || r.Year < s.FirstYear {
				s.FirstYear = r.Year
			}
			if r.Year > s.LastYear {
				s.LastYear = r.Year
			}
		}

		v, ok := r.Amount.Float64()
		if !ok {
			continue
		}
		s.WithAmount++
		s.TotalAmount += v
		if top, ok := s.MaxAmount.Float64(); !ok || v > top {
			s.MaxAmount = domain.Known(v)
		}
	}

	summaries := make([]CategorySummary, 0, len(byLabel))
	for _, s := range byLabel {
		if s.WithAmount > 0 {
			s.MeanAmount = domain.Known(s.TotalAmount / float64(s.WithAmount))
		}
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Rounds != summaries[j].Rounds {
			return summaries[i].Rounds > summaries[j].Rounds
		}
		return summaries[i].Label < summaries[j].Label
	})

	return summaries, nil
}

// ExportCategorySummary writes summaries as CSV to outputPath
func (c *CategoryExporter) ExportCategorySummary(summaries []CategorySummary, outputPath string, bom bool) error {
	csvRecords := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		csvRecords = append(csvRecords, c.summaryToCSVRow(s))
	}

	headers := []string{
		"group", "label", "rounds", "with_amount", "total_amount",
		"mean_amount", "max_amount", "outliers", "first_year", "last_year",
	}

	return c.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   headers,
		Records:   csvRecords,
		BOMPrefix: bom,
	})
}

// summaryToCSVRow converts a category summary to a CSV row
func (c *CategoryExporter) summaryToCSVRow(s CategorySummary) []string {
	return []string{
		s.Group,
		s.Label,
		strconv.Itoa(s.Rounds),
		strconv.Itoa(s.WithAmount),
		formatFloat(s.TotalAmount),
		formatAmount(s.MeanAmount),
		formatAmount(s.MaxAmount),
		strconv.Itoa(s.Outliers),
		formatYear(s.FirstYear),
		formatYear(s.LastYear),
	}
}
