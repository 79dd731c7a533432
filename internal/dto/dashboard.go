package dto

// DashboardResponse is the aggregate payload behind GET /dashboard.
type DashboardResponse struct {
	Stats  DashboardStats  `json:"stats"`
	Charts DashboardCharts `json:"charts"`
}

// DashboardStats carries the headline counters.
type DashboardStats struct {
	TotalEmployees  int `json:"totalEmployees"`
	ActiveEmployees int `json:"activeEmployees"`
	TodayAttendance int `json:"todayAttendance"`
	MonthlyRate     int `json:"monthlyRate"`
}

// DashboardCharts groups the chart datasets.
type DashboardCharts struct {
	WeeklyTrend        []WeeklyTrendPoint       `json:"weeklyTrend"`
	StatusDistribution []StatusDistributionSlice `json:"statusDistribution"`
	MonthlyComparison  []MonthlyComparisonPoint `json:"monthlyComparison"`
}

// WeeklyTrendPoint is one day of the trailing 7-day trend. NotPresent is
// activeEmployees minus present and may go negative after deactivations.
type WeeklyTrendPoint struct {
	Date       string `json:"date"`
	Present    int    `json:"present"`
	NotPresent int    `json:"notPresent"`
}

// StatusDistributionSlice is one slice of the current-month status pie.
type StatusDistributionSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MonthlyComparisonPoint is one month of the trailing 6-month comparison.
type MonthlyComparisonPoint struct {
	Month string `json:"month"`
	Rate  int    `json:"rate"`
}
