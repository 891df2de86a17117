package models

// TodayStats is the reception dashboard snapshot for the current day.
type TodayStats struct {
	Date              string `json:"date"`
	VisitorCount      int    `json:"visitorCount"`
	StudentEntryCount int    `json:"studentEntryCount"`
	ActiveVisitors    int    `json:"activeVisitors"`
}

// DailyStats is the admin daily report (no active-visitor count).
type DailyStats struct {
	Date              string `json:"date"`
	VisitorCount      int    `json:"visitorCount"`
	StudentEntryCount int    `json:"studentEntryCount"`
}

// ChartPoint is one calendar day in the entry time series.
type ChartPoint struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Visitors int    `json:"visitors"`
	Students int    `json:"students"`
}
