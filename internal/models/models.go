package models

import "strings"

// ProjectConfig is one configured spreadsheet source. The core only ever
// consumes the resolved (Key, export URL) pair.
type ProjectConfig struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	URL   string `json:"url"`
	GID   string `json:"gid"`
}

// ExportURL resolves the CSV export endpoint for the project's sheet.
// A bare spreadsheet ID (no docs.google.com host, longer than 20 chars)
// is expanded to the full document URL first.
func (p ProjectConfig) ExportURL() string {
	base := p.URL
	if base != "" && !strings.Contains(base, "docs.google.com") && len(base) > 20 {
		base = "https://docs.google.com/spreadsheets/d/" + base
	}
	return base + "/export?format=csv&gid=" + p.GID
}

// Observation is one (row, slot) occurrence of a creative.
type Observation struct {
	Date    string `json:"date"`
	Account string `json:"account"`
	Users   int    `json:"users"`
}

// CreativeHistory accumulates every occurrence of one creative within a
// single project's sheet.
type CreativeHistory struct {
	Creative       string        `json:"creative"`
	TotalUsers     int           `json:"total_users"`
	DaysActive     int           `json:"days_active"`
	AvgUsersPerDay float64       `json:"avg_users_per_day"`
	Accounts       []string      `json:"accounts"` // distinct, insertion order
	History        []Observation `json:"history"`  // row order
	LastActiveDate string        `json:"last_active_date"`
	Project        string        `json:"project"`
}

// ActiveSlot is one occupied slot on the latest-date row of a project.
type ActiveSlot struct {
	Creative string `json:"creative"`
	Account  string `json:"account"`
	Users    int    `json:"users"`
	Project  string `json:"project"`
}

// ProjectAggregate is the output of aggregating one project's CSV.
type ProjectAggregate struct {
	Project            string
	LatestDate         string
	CreativeOrder      []string // first-appearance order, drives merge determinism
	CreativeHistory    map[string]*CreativeHistory
	Accounts           []string
	ActiveSlots        []ActiveSlot
	AccountColumnCount int
}

// CurrentAccount is one account a creative is running under right now.
type CurrentAccount struct {
	Account string `json:"account"`
	Project string `json:"project"`
	Users   int    `json:"users"`
}

// Creative status values.
const (
	StatusActive = "active"
	StatusFree   = "free"
)

// Performance tiers.
const (
	PerformanceHigh   = "high"
	PerformanceMedium = "medium"
	PerformanceLow    = "low"
)

// CreativeAnalytics is the merged, render-ready record for one creative.
type CreativeAnalytics struct {
	ID              string           `json:"id"`
	Creative        string           `json:"creative"`
	Status          string           `json:"status"`
	TotalUsers      int              `json:"total_users"`
	CurrentUsers    int              `json:"current_users"`
	DaysActive      int              `json:"days_active"`
	Accounts        []string         `json:"accounts"`
	CurrentAccounts []CurrentAccount `json:"current_accounts"`
	LastActiveDate  string           `json:"last_active_date"`
	AvgUsersPerDay  float64          `json:"avg_users_per_day"`
	Performance     string           `json:"performance"`
	Project         string           `json:"project"`
}

type ProjectSummary struct {
	TotalCreatives  int `json:"total_creatives"`
	ActiveCreatives int `json:"active_creatives"`
	TotalUsers      int `json:"total_users"`
	CurrentUsers    int `json:"current_users"`
	TotalAccounts   int `json:"total_accounts"`
}

type GlobalSummary struct {
	TotalCreatives      int     `json:"total_creatives"`
	ActiveCreatives     int     `json:"active_creatives"`
	FreeCreatives       int     `json:"free_creatives"`
	TotalAccounts       int     `json:"total_accounts"`
	AccountColumns      int     `json:"account_columns"`
	TotalUsersAllTime   int     `json:"total_users_all_time"`
	TotalCurrentUsers   int     `json:"total_current_users"`
	AvgUsersPerCreative float64 `json:"avg_users_per_creative"`
}

// DashboardView is the immutable result of one full aggregation run.
type DashboardView struct {
	LatestDate        string                    `json:"latest_date"`
	CreativeAnalytics []CreativeAnalytics       `json:"creative_analytics"`
	AllAccounts       []string                  `json:"all_accounts"`
	ActiveSlots       []ActiveSlot              `json:"active_slots"`
	ProjectStats      map[string]ProjectSummary `json:"project_stats"`
	Summary           GlobalSummary             `json:"summary"`
}
