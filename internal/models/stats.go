package models

// DashboardStats represents aggregate statistics over a user's applications
type DashboardStats struct {
	TotalApplications   int            `json:"totalApplications"`
	ActiveInterviews    int            `json:"activeInterviews"`
	ResponseRate        int            `json:"responseRate"` // % of applications past Applied
	OfferRate           int            `json:"offerRate"`    // % of applications with an offer
	StatusBreakdown     []StatusCount  `json:"statusBreakdown"`
	MonthlyApplications []MonthlyCount `json:"monthlyApplications"`
}

// StatusCount represents the number of applications in one status
type StatusCount struct {
	Status ApplicationStatus `json:"status"`
	Count  int               `json:"count"`
}

// MonthlyCount represents applications submitted in one month
type MonthlyCount struct {
	Month string `json:"month"` // Format: YYYY-MM
	Count int    `json:"count"`
}
