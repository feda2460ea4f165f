package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// RouteMetrics is the per-route aggregation row. RunNumber is the raw route
// id (quotes stripped), not the normalized join key.
type RouteMetrics struct {
	RunNumber   string  `json:"run_number"`
	Total       int     `json:"total"`
	Completed   int     `json:"completed"`
	Failed      int     `json:"failed"`
	FailedTime  int     `json:"failed_time"`
	InProgress  int     `json:"in_progress"`
	SuccessRate float64 `json:"success_rate"`
}

// MergedRouteView is RouteMetrics joined to the dispatch roster on the
// normalized route key. Dispatch and driver fields are invalid when no roster
// row matched.
type MergedRouteView struct {
	RouteMetrics
	RouteKey             string      `json:"route_key"`
	DispatchName         null.String `json:"dispatch_name"`
	DriverName           null.String `json:"driver_name"`
	DriverTitle          null.String `json:"driver_title"`
	ShiftStart           null.String `json:"shift_start"`
	ShiftEnd             null.String `json:"shift_end"`
	ShiftDurationMinutes null.Int64  `json:"shift_duration_minutes"`
}

// MergedStop is a job joined to its waypoint (inner join); only matched rows
// exist, so coordinates may still be invalid but the waypoint itself is real.
type MergedStop struct {
	Job          JobRecord    `json:"job"`
	WaypointID   string       `json:"waypoint_id"`
	Latitude     null.Float64 `json:"latitude"`
	Longitude    null.Float64 `json:"longitude"`
	LocationName null.String  `json:"location_name"`
}

// RouteStop is one plotted marker: stops are numbered 1..N in ascending POD
// time order for the selected route.
type RouteStop struct {
	StopNumber   int         `json:"stop_number"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	LocationName null.String `json:"location_name"`
	Status       string      `json:"status"`
	ColorClass   string      `json:"color_class"`
	PodTime      null.String `json:"pod_time"`
	Reason       null.String `json:"reason"`
}

// Stop marker color classes.
const (
	ColorPositive = "positive"
	ColorNegative = "negative"
	ColorNeutral  = "neutral"
)

// FailedJob is the failure-list projection of a failed JobRecord.
type FailedJob struct {
	ID                   string      `json:"id"`
	DONumber             null.String `json:"do_number"`
	Customer             null.String `json:"customer"`
	Address              null.String `json:"address"`
	PostalCode           null.String `json:"postal_code"`
	AssignTo             null.String `json:"assign_to"`
	RunNumber            null.String `json:"run_number"`
	Reason               null.String `json:"reason"`
	FirstItemDescription null.String `json:"first_item_description"`
}

// DashboardSnapshot is the whole per-session dashboard state, recomputed on
// every fetch trigger and replaced wholesale in the session store.
type DashboardSnapshot struct {
	Date          string            `json:"date"`
	NoData        bool              `json:"no_data"`
	Jobs          []JobRecord       `json:"jobs"`
	Metrics       []RouteMetrics    `json:"metrics"`
	MergedRoutes  []MergedRouteView `json:"merged_routes"`
	FailedJobs    []FailedJob       `json:"failed_jobs"`
	Stops         []MergedStop      `json:"stops"`
	SelectedRoute null.String       `json:"selected_route"`
	FetchedAt     time.Time         `json:"fetched_at"`
}
