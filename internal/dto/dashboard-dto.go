package dto

import (
	"dispatch-dashboard/internal/entities"
)

// DashboardSummaryDTO is the headline view after a fetch: overall counters
// plus the merged per-route table. NoData distinguishes "the API returned
// zero jobs for this date" from a fetch failure, which never produces a
// summary at all.
type DashboardSummaryDTO struct {
	Date               string                     `json:"date"`
	NoData             bool                       `json:"no_data"`
	TotalJobs          int                        `json:"total_jobs"`
	TotalCompleted     int                        `json:"total_completed"`
	TotalFailed        int                        `json:"total_failed"`
	OverallSuccessRate float64                    `json:"overall_success_rate"`
	Routes             []entities.MergedRouteView `json:"routes"`
	FetchedAt          string                     `json:"fetched_at"`
}

type RoutePlotDTO struct {
	Route string               `json:"route"`
	Stops []entities.RouteStop `json:"stops"`
}
