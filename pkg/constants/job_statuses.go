package constants

// Primary job statuses as reported by the jobs API. Anything else is counted
// toward a route's total but excluded from the success/failure ratio.
const (
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
	JobStatusDispatched = "dispatched"
)

// ReasonRanOutOfTime is the free-text failure reason tracked separately on the
// dashboard (end-of-shift failures).
const ReasonRanOutOfTime = "Ran out of Time"

// DispatchNamePrefix is prepended to delivery dispatch names in the CRM.
const DispatchNamePrefix = "DELIVERY - "
