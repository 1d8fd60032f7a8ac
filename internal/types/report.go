// Package types provides type definitions for structured data used throughout the equity-insight system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strconv"
	"strings"
)

// Report is the fully validated output of the extraction pipeline.
// Its JSON tags are the wire contract between the prompt and the extractor.
// A Report is an immutable value once extraction succeeds; nothing downstream
// mutates it.
type Report struct {
	Banner         Banner          `json:"banner"`
	Overview       Overview        `json:"overview"`
	BusinessModel  BusinessModel   `json:"businessModel"`
	GrowthStrategy []GrowthCylinder `json:"growthStrategy"`
	Financials     Financials      `json:"financials"`
	Sources        []string        `json:"sources"`
}

// Banner holds the identity and snapshot facts shown at the top of a report
type Banner struct {
	CompanyName string `json:"companyName"`
	Ticker      string `json:"ticker"`
	Exchange    string `json:"exchange"`
	Industry    string `json:"industry"`
	Established string `json:"established"`
	HQ          string `json:"hq"`
	Employees   string `json:"employees"`
	Revenue     string `json:"revenue"` // e.g. "$12.5B (+5% YoY)"
	CAGR5Year   string `json:"cagr5Year"`
}

// Overview holds the narrative summary, key financials and geographic split
type Overview struct {
	Summary       string          `json:"summary"`
	KeyFinancials KeyFinancials   `json:"keyFinancials"`
	CXFootprint   string          `json:"cxFootprint"`
	GeoSplit      []GeoSplitEntry `json:"geoSplit"`
}

// KeyFinancials holds headline financial figures as display strings
type KeyFinancials struct {
	Revenue   string `json:"revenue"`
	PAT       string `json:"pat"`
	PATMargin string `json:"patMargin"`
	OrderBook string `json:"orderBook,omitempty"`
}

// GeoSplitEntry is one region's share of revenue. Percentages are
// model-sourced estimates and are not renormalized to sum to 100.
type GeoSplitEntry struct {
	Region     string  `json:"region"`
	Percentage float64 `json:"percentage"`
}

// BusinessModel describes how the company makes money
type BusinessModel struct {
	Segments         []string     `json:"segments"`
	Customers        []string     `json:"customers"`
	RevenueStreams   []string     `json:"revenueStreams"`
	ValueProposition []string     `json:"valueProposition"`
	Channels         []string     `json:"channels"`
	KeyActivities    []string     `json:"keyActivities"`
	MA               []string     `json:"ma"` // Mergers & Acquisitions
	SegmentTable     []SegmentRow `json:"segmentTable"`
}

// SegmentRow is one row of the business-segment breakdown table
type SegmentRow struct {
	Segment      string `json:"segment"`
	RevenueShare string `json:"revenueShare"`
	Products     string `json:"products"`
}

// GrowthCylinder is one named strategy cluster with its ordered bullet points
type GrowthCylinder struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// Financials holds the time series history, segment comparison and analysis
type Financials struct {
	History       []HistoryPoint       `json:"history"`
	SegmentGrowth []SegmentGrowthEntry `json:"segmentGrowth"`
	Analysis      Analysis             `json:"analysis"`
	Projections   []string             `json:"projections"`
	CreditRatings string               `json:"creditRatings,omitempty"`
}

// HistoryPoint is one fiscal year of headline figures
type HistoryPoint struct {
	Year         string  `json:"year"`
	Revenue      float64 `json:"revenue"`
	NetIncome    float64 `json:"netIncome"`
	EBITDAMargin float64 `json:"ebitdaMargin"`
}

// SegmentGrowthEntry compares one segment's revenue to the prior period
type SegmentGrowthEntry struct {
	Segment        string  `json:"segment"`
	CurrentRevenue float64 `json:"currentRevenue"`
	PrevRevenue    float64 `json:"prevRevenue"`
	Growth         float64 `json:"growth"`
}

// Analysis holds the narrative financial commentary
type Analysis struct {
	RevenueGrowthFactors    string `json:"revenueGrowthFactors"`
	Trend5Year              string `json:"trend5Year"`
	CAGRAnalysis            string `json:"cagrAnalysis"`
	SegmentYoYAnalysis      string `json:"segmentYoYAnalysis"`
	NetIncomeEBITDAAnalysis string `json:"netIncomeEbitdaAnalysis"`
	GeoBifurcation          string `json:"geoBifurcation,omitempty"`
}

// ChronologicalHistory returns the fiscal-year history in ascending order.
// The model frequently returns the most recent year first; chart consumers
// need ascending order, so a descending series is reversed. Series whose
// years do not parse are returned unchanged.
func (f Financials) ChronologicalHistory() []HistoryPoint {
	if len(f.History) < 2 {
		return f.History
	}

	first, okFirst := yearValue(f.History[0].Year)
	last, okLast := yearValue(f.History[len(f.History)-1].Year)
	if !okFirst || !okLast || first <= last {
		return f.History
	}

	reversed := make([]HistoryPoint, len(f.History))
	for i, p := range f.History {
		reversed[len(f.History)-1-i] = p
	}
	return reversed
}

// yearValue extracts the leading 4-digit year from strings like
// "2024", "FY2024" or "2024-25".
func yearValue(s string) (int, bool) {
	s = strings.TrimSpace(s)
	for i := 0; i+4 <= len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			continue
		}
		n, err := strconv.Atoi(s[i : i+4])
		if err == nil && n >= 1000 {
			return n, true
		}
	}
	return 0, false
}
