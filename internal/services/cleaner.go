package services

import (
	"encoding/json"

	"dispatch-dashboard/internal/entities"

	"github.com/aarondl/null/v8"
)

// missingColumnThreshold: a column is dropped when its missing fraction is
// strictly greater than this. Exactly at the threshold it survives.
const missingColumnThreshold = 0.6

// ExportColumn is one column of the flat job table used by the CSV/XLSX
// export. Value returns the rendered cell and whether the underlying field
// was present at all.
type ExportColumn struct {
	Name  string
	Value func(entities.JobRecord) (string, bool)
}

func nullStringColumn(name string, get func(entities.JobRecord) null.String) ExportColumn {
	return ExportColumn{
		Name: name,
		Value: func(j entities.JobRecord) (string, bool) {
			v := get(j)
			return v.String, v.Valid
		},
	}
}

// ExportColumns is the fixed projection of job fields retained for downstream
// use, in display order.
func ExportColumns() []ExportColumn {
	return []ExportColumn{
		{Name: "id", Value: func(j entities.JobRecord) (string, bool) { return j.ID, j.ID != "" }},
		{Name: "primary_job_status", Value: func(j entities.JobRecord) (string, bool) {
			return j.PrimaryJobStatus, j.PrimaryJobStatus != ""
		}},
		nullStringColumn("do_number", func(j entities.JobRecord) null.String { return j.DONumber }),
		nullStringColumn("tracking_number", func(j entities.JobRecord) null.String { return j.TrackingNumber }),
		nullStringColumn("job_sequence", func(j entities.JobRecord) null.String { return j.JobSequence }),
		nullStringColumn("assign_to", func(j entities.JobRecord) null.String { return j.AssignTo }),
		nullStringColumn("address", func(j entities.JobRecord) null.String { return j.Address }),
		nullStringColumn("postal_code", func(j entities.JobRecord) null.String { return j.PostalCode }),
		nullStringColumn("customer", func(j entities.JobRecord) null.String { return j.Customer }),
		nullStringColumn("detrack_number", func(j entities.JobRecord) null.String { return j.DetrackNumber }),
		nullStringColumn("reason", func(j entities.JobRecord) null.String { return j.Reason }),
		nullStringColumn("pod_time", func(j entities.JobRecord) null.String { return j.PodTime }),
		nullStringColumn("run_number", func(j entities.JobRecord) null.String { return j.RunNumber }),
		{Name: "items", Value: func(j entities.JobRecord) (string, bool) {
			if len(j.Items) == 0 {
				return "", false
			}
			b, err := json.Marshal(j.Items)
			if err != nil {
				return "", false
			}
			return string(b), true
		}},
		{Name: "milestones", Value: func(j entities.JobRecord) (string, bool) {
			if len(j.Milestones) == 0 {
				return "", false
			}
			b, err := json.Marshal(j.Milestones)
			if err != nil {
				return "", false
			}
			return string(b), true
		}},
	}
}

// CleanColumns drops every column whose fraction of missing values across the
// record set exceeds the threshold. Column order is preserved and no rows are
// touched. With no records there is nothing to measure, so all columns stay.
func CleanColumns(jobs []entities.JobRecord, columns []ExportColumn) []ExportColumn {
	if len(jobs) == 0 {
		return columns
	}

	kept := make([]ExportColumn, 0, len(columns))
	for _, col := range columns {
		missing := 0
		for _, job := range jobs {
			if _, present := col.Value(job); !present {
				missing++
			}
		}
		fraction := float64(missing) / float64(len(jobs))
		if fraction > missingColumnThreshold {
			continue
		}
		kept = append(kept, col)
	}

	return kept
}
