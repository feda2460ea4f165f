package entities

import (
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
)

// DispatchRecord is one dispatch shift from the CRM mirror.
type DispatchRecord struct {
	Name         string
	StartTime    null.Time
	EndTime      null.Time
	DriverID     null.String
	DispatchDate time.Time
}

// DurationMinutes is end-start; invalid when either endpoint is missing.
func (d DispatchRecord) DurationMinutes() null.Int64 {
	if !d.StartTime.Valid || !d.EndTime.Valid {
		return null.Int64{}
	}
	return null.Int64From(int64(d.EndTime.Time.Sub(d.StartTime.Time).Minutes()))
}

// StartHHMM and EndHHMM render the shift window for the summary table.
func (d DispatchRecord) StartHHMM() null.String { return formatHHMM(d.StartTime) }
func (d DispatchRecord) EndHHMM() null.String   { return formatHHMM(d.EndTime) }

func formatHHMM(t null.Time) null.String {
	if !t.Valid {
		return null.String{}
	}
	return null.StringFrom(fmt.Sprintf("%02d:%02d", t.Time.Hour(), t.Time.Minute()))
}

type DriverRecord struct {
	ID       string
	Name     string
	JobTitle null.String
}

// DispatchRosterRow is a dispatch shift joined to its driver; driver fields
// are invalid when the shift has no assigned driver.
type DispatchRosterRow struct {
	Dispatch    DispatchRecord
	DriverName  null.String
	DriverTitle null.String
}

// WaypointRecord is a geocoded stop from the CRM. The raw CRM id carries a
// 3-character suffix that the job-side linkage key does not.
type WaypointRecord struct {
	ID           string
	Latitude     null.Float64
	Longitude    null.Float64
	LocationName null.String
	RouteDate    time.Time
}
