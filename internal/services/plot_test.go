package services

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-dashboard/internal/entities"
)

func stop(id, run, status, podTime string, hasCoords bool) entities.MergedStop {
	s := entities.MergedStop{
		Job: entities.JobRecord{
			ID:               id,
			PrimaryJobStatus: status,
			RunNumber:        null.StringFrom(run),
		},
		WaypointID: id + "XXX",
	}
	if podTime != "" {
		s.Job.PodTime = null.StringFrom(podTime)
	}
	if hasCoords {
		s.Latitude = null.Float64From(51.5)
		s.Longitude = null.Float64From(-0.1)
	}
	return s
}

func TestPlotRoute_NumbersStopsByPodTime(t *testing.T) {
	// Input order is T2, T1, T3; plotted order must be ascending by POD time.
	stops := []entities.MergedStop{
		stop("s2", "EM1.1 AM", "completed", "2026-08-27T10:30:00Z", true),
		stop("s1", "EM1.1 AM", "completed", "2026-08-27T09:15:00Z", true),
		stop("s3", "EM1.1 AM", "failed", "2026-08-27T11:45:00Z", true),
	}

	plotted := PlotRoute(stops, "EM1.1 AM")
	require.Len(t, plotted, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{plotted[0].StopNumber, plotted[1].StopNumber, plotted[2].StopNumber})
	assert.Equal(t, "2026-08-27T09:15:00Z", plotted[0].PodTime.String)
	assert.Equal(t, "2026-08-27T10:30:00Z", plotted[1].PodTime.String)
	assert.Equal(t, "2026-08-27T11:45:00Z", plotted[2].PodTime.String)
}

func TestPlotRoute_FiltersRouteAndMissingCoordinates(t *testing.T) {
	stops := []entities.MergedStop{
		stop("a", "EM1.1 AM", "completed", "2026-08-27T09:00:00Z", true),
		stop("b", "ZR5 Route", "completed", "2026-08-27T09:30:00Z", true),
		stop("c", "EM1.1 AM", "completed", "2026-08-27T10:00:00Z", false),
	}

	plotted := PlotRoute(stops, "EM1.1 AM")
	require.Len(t, plotted, 1)
	assert.Equal(t, 1, plotted[0].StopNumber)
}

func TestPlotRoute_NullPodTimesSortLast(t *testing.T) {
	stops := []entities.MergedStop{
		stop("late", "R1", "dispatched", "", true),
		stop("early", "R1", "completed", "2026-08-27T08:00:00Z", true),
	}

	plotted := PlotRoute(stops, "R1")
	require.Len(t, plotted, 2)
	assert.True(t, plotted[0].PodTime.Valid)
	assert.False(t, plotted[1].PodTime.Valid)
}

func TestPlotRoute_ColorClasses(t *testing.T) {
	stops := []entities.MergedStop{
		stop("a", "R1", "completed", "2026-08-27T08:00:00Z", true),
		stop("b", "R1", "failed", "2026-08-27T09:00:00Z", true),
		stop("c", "R1", "dispatched", "2026-08-27T10:00:00Z", true),
	}

	plotted := PlotRoute(stops, "R1")
	require.Len(t, plotted, 3)
	assert.Equal(t, entities.ColorPositive, plotted[0].ColorClass)
	assert.Equal(t, entities.ColorNegative, plotted[1].ColorClass)
	assert.Equal(t, entities.ColorNeutral, plotted[2].ColorClass)
}

func TestRouteOptions_SortedDistinct(t *testing.T) {
	stops := []entities.MergedStop{
		stop("a", "ZR5 Route", "completed", "", true),
		stop("b", "EM1.1 AM", "completed", "", true),
		stop("c", "ZR5 Route", "failed", "", true),
	}

	assert.Equal(t, []string{"EM1.1 AM", "ZR5 Route"}, RouteOptions(stops))
}
