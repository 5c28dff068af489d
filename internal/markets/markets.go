// Package markets holds the sample weekly housing market report shown on the
// markets dashboard.
package markets

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Trend is the direction of a metric's change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Health thresholds for the market health score.
const (
	strongScore = 70
	stableScore = 40
)

// Metric is one headline figure on the report.
type Metric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
	Period string `json:"period"`
}

// PricePoint compares local, regional and national average prices for a month.
type PricePoint struct {
	Month          string `json:"month"`
	WiganPrice     int    `json:"wigan_price"`
	NorthWestPrice int    `json:"north_west_price"`
	UKPrice        int    `json:"uk_price"`
}

// Transactions counts weekly sales and lettings.
type Transactions struct {
	Week     string `json:"week"`
	Sales    int    `json:"sales"`
	Lettings int    `json:"lettings"`
}

// PropertyType summarises sales for one type of home.
type PropertyType struct {
	Type       string  `json:"type"`
	Sales      int     `json:"sales"`
	Percentage float64 `json:"percentage"`
	AvgPrice   int     `json:"avg_price"`
}

// Lettings summarises the rental market for one bedroom count.
type Lettings struct {
	Type    string  `json:"type"`
	AvgRent int     `json:"avg_rent"`
	Yield   float64 `json:"yield"`
	Demand  string  `json:"demand"`
}

// Mortgage tracks the average rate and approvals for a month.
type Mortgage struct {
	Month     string  `json:"month"`
	Rate      float64 `json:"rate"`
	Approvals int     `json:"approvals"`
}

// Report is the weekly market report.
type Report struct {
	WeekEnding    string         `json:"week_ending"`
	WeekNumber    int            `json:"week_number"`
	HealthScore   int            `json:"health_score"`
	KeyMetrics    []Metric       `json:"key_metrics"`
	Prices        []PricePoint   `json:"prices"`
	Transactions  []Transactions `json:"transactions"`
	PropertyTypes []PropertyType `json:"property_types"`
	Lettings      []Lettings     `json:"lettings"`
	Mortgages     []Mortgage     `json:"mortgages"`
}

// Health returns the status label for the report's health score.
func (r *Report) Health() string { return HealthStatus(r.HealthScore) }

// HealthStatus maps a 0-100 score to STRONG, STABLE or WEAK.
func HealthStatus(score int) string {
	switch {
	case score >= strongScore:
		return "STRONG"
	case score >= stableScore:
		return "STABLE"
	default:
		return "WEAK"
	}
}

var printer = message.NewPrinter(language.BritishEnglish)

// FormatNumber groups digits the en-GB way: 10800 -> "10,800".
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatCurrency formats whole pounds: 185000 -> "£185,000".
func FormatCurrency(n int) string {
	if n < 0 {
		return "-£" + FormatNumber(-n)
	}
	return "£" + FormatNumber(n)
}

// Sample returns the sample report. Each call returns a fresh copy.
func Sample() *Report {
	return &Report{
		WeekEnding:  "June 2, 2025",
		WeekNumber:  23,
		HealthScore: 78,
		KeyMetrics: []Metric{
			{Label: "Median Sale Price", Value: FormatCurrency(185000), Change: "+2.3%", Trend: TrendUp, Period: "MoM"},
			{Label: "Properties Sold", Value: FormatNumber(247), Change: "+12%", Trend: TrendUp, Period: "vs last week"},
			{Label: "Days on Market", Value: FormatNumber(28), Change: "-3", Trend: TrendDown, Period: "vs last month"},
			{Label: "New Instructions", Value: FormatNumber(312), Change: "+8%", Trend: TrendUp, Period: "vs last week"},
		},
		Prices: []PricePoint{
			{Month: "Dec 2024", WiganPrice: 178000, NorthWestPrice: 195000, UKPrice: 285000},
			{Month: "Jan 2025", WiganPrice: 181000, NorthWestPrice: 198000, UKPrice: 289000},
			{Month: "Feb 2025", WiganPrice: 180500, NorthWestPrice: 197500, UKPrice: 287500},
			{Month: "Mar 2025", WiganPrice: 183000, NorthWestPrice: 200000, UKPrice: 291000},
			{Month: "Apr 2025", WiganPrice: 184500, NorthWestPrice: 201500, UKPrice: 293500},
			{Month: "May 2025", WiganPrice: 185000, NorthWestPrice: 203000, UKPrice: 295000},
		},
		Transactions: []Transactions{
			{Week: "Week 19", Sales: 198, Lettings: 156},
			{Week: "Week 20", Sales: 215, Lettings: 142},
			{Week: "Week 21", Sales: 203, Lettings: 168},
			{Week: "Week 22", Sales: 221, Lettings: 175},
			{Week: "Week 23", Sales: 247, Lettings: 189},
		},
		PropertyTypes: []PropertyType{
			{Type: "Terraced", Sales: 112, Percentage: 45.3, AvgPrice: 165000},
			{Type: "Semi-Detached", Sales: 78, Percentage: 31.6, AvgPrice: 195000},
			{Type: "Detached", Sales: 35, Percentage: 14.2, AvgPrice: 285000},
			{Type: "Flat/Apartment", Sales: 22, Percentage: 8.9, AvgPrice: 125000},
		},
		Lettings: []Lettings{
			{Type: "1 Bed", AvgRent: 550, Yield: 6.8, Demand: "High"},
			{Type: "2 Bed", AvgRent: 675, Yield: 7.2, Demand: "Very High"},
			{Type: "3 Bed", AvgRent: 825, Yield: 6.9, Demand: "High"},
			{Type: "4+ Bed", AvgRent: 1100, Yield: 6.1, Demand: "Medium"},
		},
		Mortgages: []Mortgage{
			{Month: "Dec", Rate: 5.2, Approvals: 8500},
			{Month: "Jan", Rate: 5.1, Approvals: 9200},
			{Month: "Feb", Rate: 4.9, Approvals: 9800},
			{Month: "Mar", Rate: 4.8, Approvals: 10100},
			{Month: "Apr", Rate: 4.7, Approvals: 10400},
			{Month: "May", Rate: 4.6, Approvals: 10800},
		},
	}
}
