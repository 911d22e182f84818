package dto

// GainLossQuery is the query for the gain/loss report. Both bounds are
// optional; an open range covers the full history up to today.
type GainLossQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
