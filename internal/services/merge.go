package services

import (
	"strings"

	"dispatch-dashboard/internal/entities"
	"dispatch-dashboard/pkg/constants"
)

// routeKeyReplacements are lexical fixups for a known naming inconsistency
// between the jobs API and the CRM: some routes were registered without the
// dot ("EM11" instead of "EM1.1"). The replacement value ends with a space so
// that any run suffix ("EM11.3" -> "EM1.1 .3") falls off at tokenization.
var routeKeyReplacements = []struct {
	from string
	to   string
}{
	{"EM11", "EM1.1 "},
	{"EM12", "EM1.2 "},
}

// NormalizeRouteKey turns a raw job-side run number into the canonical short
// route code used for joining with the dispatch roster: apply the fixup
// table, then keep everything up to the first space.
func NormalizeRouteKey(raw string) string {
	s := raw
	for _, r := range routeKeyReplacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return firstToken(s)
}

// NormalizeDispatchKey turns a CRM dispatch name into the same canonical
// route code: strip the "DELIVERY - " prefix, trim, first token.
func NormalizeDispatchKey(name string) string {
	s := strings.TrimPrefix(name, constants.DispatchNamePrefix)
	return firstToken(strings.TrimSpace(s))
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// MergeRoutes is the job-preserving join of route metrics with the dispatch
// roster. Every metrics row survives; roster fields are null when nothing
// matched. Duplicate normalized roster keys resolve last-match-wins.
func MergeRoutes(metrics []entities.RouteMetrics, roster []entities.DispatchRosterRow) []entities.MergedRouteView {
	byKey := make(map[string]entities.DispatchRosterRow, len(roster))
	for _, row := range roster {
		byKey[NormalizeDispatchKey(row.Dispatch.Name)] = row
	}

	merged := make([]entities.MergedRouteView, 0, len(metrics))
	for _, m := range metrics {
		view := entities.MergedRouteView{
			RouteMetrics: m,
			RouteKey:     NormalizeRouteKey(m.RunNumber),
		}
		if row, ok := byKey[view.RouteKey]; ok {
			view.DispatchName.SetValid(row.Dispatch.Name)
			view.DriverName = row.DriverName
			view.DriverTitle = row.DriverTitle
			view.ShiftStart = row.Dispatch.StartHHMM()
			view.ShiftEnd = row.Dispatch.EndHHMM()
			view.ShiftDurationMinutes = row.Dispatch.DurationMinutes()
		}
		merged = append(merged, view)
	}

	return merged
}

// waypointIDSuffixLen is the length of the CRM-side id suffix absent from the
// job-side linkage key.
const waypointIDSuffixLen = 3

// MergeWaypoints inner-joins jobs to waypoints on the truncated waypoint id.
// Unmatched rows on either side are dropped: a stop without coordinates
// cannot be plotted, and a waypoint without a job is noise.
func MergeWaypoints(jobs []entities.JobRecord, waypoints []entities.WaypointRecord) []entities.MergedStop {
	byID := make(map[string]entities.WaypointRecord, len(waypoints))
	for _, wp := range waypoints {
		id := wp.ID
		if len(id) > waypointIDSuffixLen {
			id = id[:len(id)-waypointIDSuffixLen]
		}
		byID[id] = wp
	}

	var stops []entities.MergedStop
	for _, job := range jobs {
		if !job.DeliverToCollectFrom.Valid {
			continue
		}
		wp, ok := byID[job.DeliverToCollectFrom.String]
		if !ok {
			continue
		}
		stops = append(stops, entities.MergedStop{
			Job:          job,
			WaypointID:   wp.ID,
			Latitude:     wp.Latitude,
			Longitude:    wp.Longitude,
			LocationName: wp.LocationName,
		})
	}

	return stops
}
