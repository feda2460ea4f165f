package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-dashboard/internal/entities"
)

func TestNormalizeRouteKey(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"EM11 AM", "EM1.1"},
		{"EM12 PM", "EM1.2"},
		{"EM11.3 Morning", "EM1.1"},
		{"ZR5 Route", "ZR5"},
		{"EM1.1 Standard", "EM1.1"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeRouteKey(tc.raw), "raw=%q", tc.raw)
	}
}

func TestNormalizeDispatchKey(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"DELIVERY - EM1.1 Morning Shift", "EM1.1"},
		{"DELIVERY -  ZR5 Evening", "ZR5"},
		{"EM1.2 no prefix", "EM1.2"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeDispatchKey(tc.name), "name=%q", tc.name)
	}
}

func rosterRow(dispatchName, driverName string) entities.DispatchRosterRow {
	start := time.Date(2026, 8, 27, 7, 30, 0, 0, time.UTC)
	end := time.Date(2026, 8, 27, 16, 0, 0, 0, time.UTC)
	return entities.DispatchRosterRow{
		Dispatch: entities.DispatchRecord{
			Name:         dispatchName,
			StartTime:    null.TimeFrom(start),
			EndTime:      null.TimeFrom(end),
			DispatchDate: start,
		},
		DriverName:  null.StringFrom(driverName),
		DriverTitle: null.StringFrom("Delivery Driver"),
	}
}

func TestMergeRoutes_IsJobPreserving(t *testing.T) {
	metrics := []entities.RouteMetrics{
		{RunNumber: "EM11 AM", Total: 3, Completed: 2, Failed: 1, SuccessRate: 2.0 / 3.0},
		{RunNumber: "ZR5 Route", Total: 1, Completed: 1, SuccessRate: 1},
	}
	roster := []entities.DispatchRosterRow{
		rosterRow("DELIVERY - EM1.1 Morning", "Sam Carter"),
	}

	merged := MergeRoutes(metrics, roster)
	require.Len(t, merged, 2, "every metrics row survives the join")

	matched := merged[0]
	assert.Equal(t, "EM1.1", matched.RouteKey)
	assert.Equal(t, "DELIVERY - EM1.1 Morning", matched.DispatchName.String)
	assert.Equal(t, "Sam Carter", matched.DriverName.String)
	assert.Equal(t, "07:30", matched.ShiftStart.String)
	assert.Equal(t, "16:00", matched.ShiftEnd.String)
	assert.Equal(t, int64(510), matched.ShiftDurationMinutes.Int64)

	unmatched := merged[1]
	assert.Equal(t, "ZR5", unmatched.RouteKey)
	assert.False(t, unmatched.DispatchName.Valid)
	assert.False(t, unmatched.DriverName.Valid)
	assert.False(t, unmatched.ShiftDurationMinutes.Valid)
}

func TestMergeRoutes_DuplicateKeyLastMatchWins(t *testing.T) {
	metrics := []entities.RouteMetrics{{RunNumber: "EM11 AM", Total: 1}}
	roster := []entities.DispatchRosterRow{
		rosterRow("DELIVERY - EM1.1 First", "First Driver"),
		rosterRow("DELIVERY - EM1.1 Second", "Second Driver"),
	}

	merged := MergeRoutes(metrics, roster)
	require.Len(t, merged, 1)
	assert.Equal(t, "Second Driver", merged[0].DriverName.String)
}

func TestMergeRoutes_MissingShiftEndGivesNullDuration(t *testing.T) {
	row := rosterRow("DELIVERY - EM1.1", "Sam Carter")
	row.Dispatch.EndTime = null.Time{}

	merged := MergeRoutes([]entities.RouteMetrics{{RunNumber: "EM11"}}, []entities.DispatchRosterRow{row})
	require.Len(t, merged, 1)
	assert.False(t, merged[0].ShiftDurationMinutes.Valid)
	assert.False(t, merged[0].ShiftEnd.Valid)
	assert.Equal(t, "07:30", merged[0].ShiftStart.String)
}

func TestMergeWaypoints_TruncatedInnerJoin(t *testing.T) {
	jobs := []entities.JobRecord{
		{ID: "j1", DeliverToCollectFrom: null.StringFrom("abc")},
		{ID: "j2", DeliverToCollectFrom: null.StringFrom("nomatch")},
		{ID: "j3"}, // no linkage key at all
	}
	waypoints := []entities.WaypointRecord{
		{
			ID:           "abcXXX",
			Latitude:     null.Float64From(51.5),
			Longitude:    null.Float64From(-0.1),
			LocationName: null.StringFrom("Kings Cross"),
		},
		{ID: "orphanYYY"},
	}

	stops := MergeWaypoints(jobs, waypoints)
	require.Len(t, stops, 1, "unmatched rows on either side are dropped")
	assert.Equal(t, "j1", stops[0].Job.ID)
	assert.Equal(t, "abcXXX", stops[0].WaypointID)
	assert.Equal(t, "Kings Cross", stops[0].LocationName.String)
}
