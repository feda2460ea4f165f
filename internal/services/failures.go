package services

import (
	"dispatch-dashboard/internal/entities"
	"dispatch-dashboard/pkg/constants"
)

// ExtractFailed projects the failed-status jobs into the failure list shown
// to dispatch staff. The first item description is null when the item list is
// empty or its first entry is malformed.
func ExtractFailed(jobs []entities.JobRecord) []entities.FailedJob {
	var failed []entities.FailedJob
	for _, job := range jobs {
		if job.PrimaryJobStatus != constants.JobStatusFailed {
			continue
		}
		failed = append(failed, entities.FailedJob{
			ID:                   job.ID,
			DONumber:             job.DONumber,
			Customer:             job.Customer,
			Address:              job.Address,
			PostalCode:           job.PostalCode,
			AssignTo:             job.AssignTo,
			RunNumber:            job.RunNumber,
			Reason:               job.Reason,
			FirstItemDescription: job.FirstItemDescription(),
		})
	}
	return failed
}
