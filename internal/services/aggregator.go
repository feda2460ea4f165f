package services

import (
	"sort"
	"strings"

	"dispatch-dashboard/internal/entities"
	"dispatch-dashboard/pkg/constants"
)

// AggregateRoutes groups jobs by their raw run number and computes the
// per-route counters. Records without a run number are skipped: they cannot
// belong to any route row. Output is sorted by run number for determinism,
// but callers must not depend on the order.
func AggregateRoutes(jobs []entities.JobRecord) []entities.RouteMetrics {
	groups := make(map[string][]entities.JobRecord)
	for _, job := range jobs {
		if !job.RunNumber.Valid {
			continue
		}
		key := job.RunNumber.String
		groups[key] = append(groups[key], job)
	}

	metrics := make([]entities.RouteMetrics, 0, len(groups))
	for runNumber, group := range groups {
		row := entities.RouteMetrics{
			// Upstream sometimes wraps run numbers in literal quotes.
			RunNumber: strings.ReplaceAll(runNumber, `"`, ""),
			Total:     len(group),
		}

		for _, job := range group {
			switch job.PrimaryJobStatus {
			case constants.JobStatusCompleted:
				row.Completed++
			case constants.JobStatusFailed:
				row.Failed++
				if job.Reason.Valid && job.Reason.String == constants.ReasonRanOutOfTime {
					row.FailedTime++
				}
			case constants.JobStatusDispatched:
				row.InProgress++
			}
		}

		if denom := row.Completed + row.Failed; denom > 0 {
			row.SuccessRate = float64(row.Completed) / float64(denom)
		}

		metrics = append(metrics, row)
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].RunNumber < metrics[j].RunNumber
	})

	return metrics
}
