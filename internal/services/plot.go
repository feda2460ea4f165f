package services

import (
	"sort"

	"dispatch-dashboard/internal/entities"
	"dispatch-dashboard/pkg/constants"
)

// PlotRoute prepares the marker sequence for one route: keep only stops of
// that route with coordinates, order them by POD time ascending (stops
// without a POD time go last, stable), and number them 1..N.
func PlotRoute(stops []entities.MergedStop, routeName string) []entities.RouteStop {
	var filtered []entities.MergedStop
	for _, stop := range stops {
		if !stop.Latitude.Valid || !stop.Longitude.Valid {
			continue
		}
		if !stop.Job.RunNumber.Valid || stop.Job.RunNumber.String != routeName {
			continue
		}
		filtered = append(filtered, stop)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i].Job.PodTime, filtered[j].Job.PodTime
		if a.Valid != b.Valid {
			return a.Valid
		}
		if !a.Valid {
			return false
		}
		return a.String < b.String
	})

	plotted := make([]entities.RouteStop, 0, len(filtered))
	for i, stop := range filtered {
		plotted = append(plotted, entities.RouteStop{
			StopNumber:   i + 1,
			Latitude:     stop.Latitude.Float64,
			Longitude:    stop.Longitude.Float64,
			LocationName: stop.LocationName,
			Status:       stop.Job.PrimaryJobStatus,
			ColorClass:   statusColor(stop.Job.PrimaryJobStatus),
			PodTime:      stop.Job.PodTime,
			Reason:       stop.Job.Reason,
		})
	}

	return plotted
}

func statusColor(status string) string {
	switch status {
	case constants.JobStatusCompleted:
		return entities.ColorPositive
	case constants.JobStatusFailed:
		return entities.ColorNegative
	default:
		return entities.ColorNeutral
	}
}

// RouteOptions lists the distinct plottable route names in the merged
// waypoint view, sorted for a stable selector.
func RouteOptions(stops []entities.MergedStop) []string {
	seen := make(map[string]struct{})
	var options []string
	for _, stop := range stops {
		if !stop.Job.RunNumber.Valid {
			continue
		}
		name := stop.Job.RunNumber.String
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		options = append(options, name)
	}
	sort.Strings(options)
	return options
}
