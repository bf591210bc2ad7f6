package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// DatasetHeader is the header row of the public Indian startup funding CSV
var DatasetHeader = []string{
	"Sr No",
	"Date dd/mm/yyyy",
	"Startup Name",
	"Industry Vertical",
	"SubVertical",
	"City  Location",
	"Investors Name",
	"InvestmentnType",
	"Amount in USD",
	"Remarks",
}

var (
	investmentTypes = []string{
		"Seed Funding", "Private Equity", "Seed/ Angel Funding", "Series A",
		"Debt Funding", "Pre-Series A", "Venture Round", "Crowd funding", "",
	}
	industries = []string{
		"Consumer Internet", "Technology", "eCommerce", "E-Commerce", "Ed-Tech",
		"FinTech", "Food & Beverage", "Health and Wellness", "Logistics", "",
	}
	cities = []string{
		"Bangalore", "Bengaluru", "Mumbai", "New Delhi", "Gurgaon", "Pune",
		"Hyderabad", "Chennai", "Noida", "",
	}
	funds = []string{
		"Sequoia Capital", "Accel Partners", "Kalaari Capital", "SAIF Partners",
		"Tiger Global", "Blume Ventures", "Nexus Venture Partners", "Others",
	}
)

// FundingRow generates one raw dataset row in DatasetHeader order.
// Amounts mix thousands separators, blanks and "undisclosed".
func FundingRow(f *gofakeit.Faker, srNo int) []string {
	return []string{
		fmt.Sprint(srNo),
		fmt.Sprintf("%02d/%02d/%d", f.Number(1, 28), f.Number(1, 12), f.Number(2015, 2020)),
		f.Company(),
		f.RandomString(industries),
		f.BS(),
		f.RandomString(cities),
		investorField(f),
		f.RandomString(investmentTypes),
		rawAmount(f),
		"",
	}
}

// FundingRows generates n rows
func FundingRows(f *gofakeit.Faker, n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = FundingRow(f, i+1)
	}
	return rows
}

// FundingCSV renders header and rows as CSV text
func FundingCSV(header []string, rows [][]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	return buf.String()
}

// RawAmount generates one dirty amount cell
func RawAmount(f *gofakeit.Faker) string {
	return rawAmount(f)
}

func rawAmount(f *gofakeit.Faker) string {
	switch f.Number(0, 9) {
	case 0:
		return ""
	case 1:
		return "undisclosed"
	case 2:
		return "N/A"
	case 3:
		return fmt.Sprintf("$ %s", withThousands(f.Number(10_000, 900_000_000)))
	case 4:
		return fmt.Sprintf("%.2f", f.Float64Range(1000, 5_000_000))
	default:
		return withThousands(f.Number(50_000, 200_000_000))
	}
}

func investorField(f *gofakeit.Faker) string {
	n := f.Number(0, 3)
	names := make([]string, n)
	for i := range names {
		names[i] = f.RandomString(funds)
	}
	switch f.Number(0, 2) {
	case 0:
		return strings.Join(names, ", ")
	case 1:
		return strings.Join(names, " and ")
	default:
		return strings.Join(names, "; ")
	}
}

func withThousands(n int) string {
	s := fmt.Sprint(n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
