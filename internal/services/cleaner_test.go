package services

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"

	"dispatch-dashboard/internal/entities"
)

func columnNames(cols []ExportColumn) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// Boundary direction: a column missing in exactly 60% of records must stay;
// only strictly-greater fractions are dropped.
func TestCleanColumns_ThresholdBoundary(t *testing.T) {
	presentIn := func(n int) []entities.JobRecord {
		jobs := make([]entities.JobRecord, 10)
		for i := range jobs {
			jobs[i].ID = "job"
			jobs[i].PrimaryJobStatus = "completed"
			if i < n {
				jobs[i].PostalCode = null.StringFrom("N1 9GU")
			}
		}
		return jobs
	}

	// Present in 4 of 10: missing fraction exactly 0.6 -> kept.
	kept := CleanColumns(presentIn(4), ExportColumns())
	assert.Contains(t, columnNames(kept), "postal_code")

	// Present in 3 of 10: missing fraction 0.7 -> dropped.
	kept = CleanColumns(presentIn(3), ExportColumns())
	assert.NotContains(t, columnNames(kept), "postal_code")
}

func TestCleanColumns_PreservesOrderAndRows(t *testing.T) {
	jobs := []entities.JobRecord{
		{ID: "a", PrimaryJobStatus: "completed", Customer: null.StringFrom("ACME")},
		{ID: "b", PrimaryJobStatus: "failed", Customer: null.StringFrom("Globex")},
	}

	kept := CleanColumns(jobs, ExportColumns())
	names := columnNames(kept)

	// Fully-populated columns keep their relative order from the projection.
	assert.Equal(t, []string{"id", "primary_job_status", "customer"}, names)
}

func TestCleanColumns_EmptyRecordSetKeepsEverything(t *testing.T) {
	all := ExportColumns()
	kept := CleanColumns(nil, all)
	assert.Len(t, kept, len(all))
}
