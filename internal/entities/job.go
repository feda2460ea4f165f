package entities

import (
	"encoding/json"

	"github.com/aarondl/null/v8"
)

// JobRecord is one delivery job as returned by the jobs API. Required fields
// are plain strings; everything the API may omit or null out is a null type so
// the cleaner can measure per-column missingness.
type JobRecord struct {
	ID                   string      `json:"id"`
	PrimaryJobStatus     string      `json:"primary_job_status"`
	DONumber             null.String `json:"do_number"`
	TrackingNumber       null.String `json:"tracking_number"`
	JobSequence          null.String `json:"job_sequence"`
	AssignTo             null.String `json:"assign_to"`
	Address              null.String `json:"address"`
	PostalCode           null.String `json:"postal_code"`
	Customer             null.String `json:"customer"`
	DetrackNumber        null.String `json:"detrack_number"`
	Reason               null.String `json:"reason"`
	PodTime              null.String `json:"pod_time"`
	RunNumber            null.String `json:"run_number"`
	DeliverToCollectFrom null.String `json:"deliver_to_collect_from"`
	Items                JobItemList `json:"items"`
	Milestones           []Milestone `json:"milestones"`
}

type JobItem struct {
	SKU         null.String `json:"sku"`
	Description null.String `json:"description"`
	Quantity    null.Int    `json:"quantity"`
}

type Milestone struct {
	Status    string      `json:"status"`
	PodAt     null.String `json:"pod_at"`
	CreatedAt null.String `json:"created_at"`
}

// JobItemList tolerates malformed entries: an element that is not a JSON
// object decodes to a zero JobItem instead of failing the whole record.
type JobItemList []JobItem

func (l *JobItemList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an array at all: treat as no items.
		*l = nil
		return nil
	}

	items := make([]JobItem, 0, len(raw))
	for _, r := range raw {
		var item JobItem
		if err := json.Unmarshal(r, &item); err != nil {
			item = JobItem{}
		}
		items = append(items, item)
	}
	*l = items
	return nil
}

// FirstItemDescription returns the description of the first item, invalid
// when the item list is empty or the first item is malformed.
func (j JobRecord) FirstItemDescription() null.String {
	if len(j.Items) == 0 {
		return null.String{}
	}
	return j.Items[0].Description
}
